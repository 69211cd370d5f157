package services

import (
	"errors"
	"fmt"

	"github.com/stwalsh4118/vanprop/internal/repository"
)

// Service-level errors. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrPropertyNotFound      = errors.New("property not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrWatchlistItemNotFound = errors.New("watchlist item not found")
	ErrNotInWatchlist        = errors.New("property not found in watchlist")
	ErrSavedSearchNotFound   = errors.New("saved search not found")

	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	ErrDuplicatePID           = errors.New("property with this pid already exists")
	ErrUnknownNeighborhood    = errors.New("neighborhood does not exist")
	ErrNegativeValue          = errors.New("monetary values must be non-negative")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrEmailTaken             = errors.New("email already exists")
	ErrAlreadyInWatchlist     = errors.New("property already in watchlist")
	ErrUserOrPropertyNotFound = errors.New("user or property not found")
	ErrUserHasDependents      = errors.New("user has dependent records")
	ErrPropertyHasDependents  = errors.New("property has dependent records")
)

// repositoryErrors translates store sentinels that mean the same thing in every service.
var repositoryErrors = map[error]error{
	repository.ErrNoFieldsToUpdate:    ErrNoFieldsToUpdate,
	repository.ErrDuplicatePID:        ErrDuplicatePID,
	repository.ErrUnknownNeighborhood: ErrUnknownNeighborhood,
	repository.ErrNegativeValue:       ErrNegativeValue,
	repository.ErrUsernameTaken:       ErrUsernameTaken,
	repository.ErrEmailTaken:          ErrEmailTaken,
	repository.ErrAlreadyInWatchlist:  ErrAlreadyInWatchlist,
}

// translate maps a repository sentinel to its service counterpart. Sort
// errors become ErrInvalidArgument with the original detail kept in the message.
// Anything else is wrapped with the operation description.
func translate(err error, op string) error {
	for repoErr, svcErr := range repositoryErrors {
		if errors.Is(err, repoErr) {
			return svcErr
		}
	}
	if errors.Is(err, repository.ErrInvalidSortField) || errors.Is(err, repository.ErrInvalidSortOrder) {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrWatchlistItemNotFound) ||
		errors.Is(err, ErrNotInWatchlist) ||
		errors.Is(err, ErrSavedSearchNotFound) ||
		errors.Is(err, ErrUserOrPropertyNotFound)
}

// IsConflict reports whether err is any of the conflict sentinels.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicatePID) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAlreadyInWatchlist) ||
		errors.Is(err, ErrUserHasDependents) ||
		errors.Is(err, ErrPropertyHasDependents)
}

// IsValidation reports whether err should be reported to the caller as a bad request.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNoFieldsToUpdate) ||
		errors.Is(err, ErrUnknownNeighborhood) ||
		errors.Is(err, ErrNegativeValue)
}
