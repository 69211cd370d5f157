package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/vanprop/internal/errors"
	"github.com/stwalsh4118/vanprop/internal/services"
)

// ok writes {success: true, data} plus any extra top-level fields.
func ok(c *gin.Context, data interface{}, extra gin.H) {
	body := gin.H{"success": true, "data": data}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// list writes {success: true, data, count}.
func list[T any](c *gin.Context, items []T, extra gin.H) {
	if items == nil {
		items = []T{}
	}
	body := gin.H{"success": true, "data": items, "count": len(items)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// message writes a write acknowledgement with the given status.
func message(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{"success": true, "message": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// idParam parses a positive integer path parameter. On failure it writes a
// 400 and returns false.
func idParam(c *gin.Context, name string) (int64, bool) {
	return labeledIDParam(c, name, name)
}

// labeledIDParam is idParam for routes whose wildcard name is shared with
// other routes; label is the name reported to the client.
func labeledIDParam(c *gin.Context, name, label string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Invalid "+label+": must be a positive integer", map[string]interface{}{
			"param": label,
			"value": raw,
		})
		return 0, false
	}
	return id, true
}

// intParam parses an integer path parameter. On failure it writes a 400 and returns false.
func intParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+": must be an integer", map[string]interface{}{
			"param": name,
			"value": raw,
		})
		return 0, false
	}
	return n, true
}

// notFoundMessages holds the client message for each not-found sentinel.
var notFoundMessages = []struct {
	err error
	msg string
}{
	{services.ErrPropertyNotFound, "Property not found"},
	{services.ErrUserNotFound, "User not found"},
	{services.ErrWatchlistItemNotFound, "Watchlist item not found"},
	{services.ErrNotInWatchlist, "Property not found in watchlist"},
	{services.ErrSavedSearchNotFound, "Saved search not found"},
	{services.ErrUserOrPropertyNotFound, "User or property not found"},
}

var conflictMessages = []struct {
	err error
	msg string
}{
	{services.ErrDuplicatePID, "Property with this PID already exists"},
	{services.ErrUsernameTaken, "Username already exists"},
	{services.ErrEmailTaken, "Email already exists"},
	{services.ErrAlreadyInWatchlist, "Property already in watchlist"},
	{services.ErrUserHasDependents, "User has dependent records"},
	{services.ErrPropertyHasDependents, "Property has dependent records"},
}

// handleServiceError maps a service error to its HTTP response. Errors that
// are not service sentinels become a 500 with failMsg.
func handleServiceError(c *gin.Context, err error, failMsg string) {
	for _, m := range notFoundMessages {
		if errors.Is(err, m.err) {
			apierrors.NotFound(c, m.msg)
			return
		}
	}
	for _, m := range conflictMessages {
		if errors.Is(err, m.err) {
			apierrors.Conflict(c, m.msg)
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, "No fields to update", nil)
	case errors.Is(err, services.ErrUnknownNeighborhood):
		apierrors.BadRequest(c, "Neighborhood does not exist", nil)
	case errors.Is(err, services.ErrNegativeValue):
		apierrors.BadRequest(c, "Monetary values must be non-negative", nil)
	case errors.Is(err, services.ErrInvalidArgument):
		apierrors.BadRequest(c, capitalize(err.Error()), nil)
	default:
		apierrors.InternalServerError(c, failMsg, err)
	}
}

// handleUpdateError is handleServiceError with the "or no changes made"
// wording used when an update touched no rows.
func handleUpdateError(c *gin.Context, err, notFound error, what, failMsg string) {
	if errors.Is(err, notFound) {
		apierrors.NotFound(c, what+" not found or no changes made")
		return
	}
	handleServiceError(c, err, failMsg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
