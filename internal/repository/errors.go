package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned when the store rejects a write. Lookups that find nothing
// return nil results instead of an error.
var (
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrInvalidSortField    = errors.New("invalid sort field")
	ErrInvalidSortOrder    = errors.New("invalid sort order")
	ErrDuplicatePID        = errors.New("pid already exists")
	ErrUnknownNeighborhood = errors.New("neighborhood does not exist")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already exists")
	ErrAlreadyInWatchlist  = errors.New("property already in watchlist")
	ErrUnknownReference    = errors.New("referenced record does not exist")
	ErrHasDependents       = errors.New("record has dependent rows")
	ErrNegativeValue       = errors.New("monetary values must be non-negative")
)

// updateSet accumulates "column = $n" assignments for partial updates.
// Column names always come from code, never from request input.
type updateSet struct {
	assignments []string
	args        []interface{}
}

func (u *updateSet) add(column string, value interface{}) {
	u.args = append(u.args, value)
	u.assignments = append(u.assignments, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func (u *updateSet) empty() bool {
	return len(u.assignments) == 0
}

// build renders the UPDATE statement. touch lists extra assignments without
// parameters, such as "updated_at = now()".
func (u *updateSet) build(table, keyColumn string, key interface{}, touch ...string) (string, []interface{}) {
	assignments := append(append([]string{}, u.assignments...), touch...)
	args := append(append([]interface{}{}, u.args...), key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(assignments, ", "), keyColumn, len(args))
	return query, args
}

// likePattern wraps a search term for a substring ILIKE match, escaping wildcards.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}
