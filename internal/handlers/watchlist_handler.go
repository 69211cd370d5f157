package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/vanprop/internal/errors"
	"github.com/stwalsh4118/vanprop/internal/middleware"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/services"
)

// WatchlistHandler handles watchlist requests. DELETE routes share the
// ":id" wildcard, which is the watchlist id on the item route and the user
// id on the per-user routes.
type WatchlistHandler struct {
	service services.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler instance.
func NewWatchlistHandler(service services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// List handles GET /watchlist/:userId.
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, valid := idParam(c, "userId")
	if !valid {
		return
	}

	items, err := h.service.GetWatchlist(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Error fetching watchlist")
		return
	}
	list(c, items, nil)
}

// Get handles GET /watchlist/item/:watchlistId.
func (h *WatchlistHandler) Get(c *gin.Context) {
	id, valid := idParam(c, "watchlistId")
	if !valid {
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Error fetching watchlist item")
		return
	}
	ok(c, item, nil)
}

// Check handles GET /watchlist/check/:userId/:propertyId.
func (h *WatchlistHandler) Check(c *gin.Context) {
	userID, valid := idParam(c, "userId")
	if !valid {
		return
	}
	propertyID, valid := idParam(c, "propertyId")
	if !valid {
		return
	}

	present, err := h.service.IsInWatchlist(c.Request.Context(), userID, propertyID)
	if err != nil {
		handleServiceError(c, err, "Error checking watchlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "in_watchlist": present})
}

// Stats handles GET /watchlist/:userId/stats.
func (h *WatchlistHandler) Stats(c *gin.Context) {
	userID, valid := idParam(c, "userId")
	if !valid {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Error fetching watchlist statistics")
		return
	}
	ok(c, stats, nil)
}

// ByNeighborhood handles GET /watchlist/:userId/by-neighborhood.
func (h *WatchlistHandler) ByNeighborhood(c *gin.Context) {
	userID, valid := idParam(c, "userId")
	if !valid {
		return
	}

	groups, err := h.service.ByNeighborhood(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Error fetching watchlist by neighborhood")
		return
	}
	list(c, groups, nil)
}

// Add handles POST /watchlist.
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req models.AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	item, err := h.service.AddProperty(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Error adding to watchlist")
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Property added to watchlist", map[string]interface{}{
			"watchlist_id": item.ID,
			"user_id":      item.UserID,
			"property_id":  item.PropertyID,
		})
	}
	message(c, http.StatusCreated, "Property added to watchlist", gin.H{
		"watchlist_id": item.ID,
		"data":         item,
	})
}

// Update handles PUT /watchlist/:watchlistId.
func (h *WatchlistHandler) Update(c *gin.Context) {
	id, valid := idParam(c, "watchlistId")
	if !valid {
		return
	}

	var req models.UpdateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	if err := h.service.UpdateItem(c.Request.Context(), id, req); err != nil {
		handleUpdateError(c, err, services.ErrWatchlistItemNotFound, "Watchlist item", "Error updating watchlist item")
		return
	}
	message(c, http.StatusOK, "Watchlist item updated successfully", gin.H{"changes": 1})
}

// Remove handles DELETE /watchlist/:id.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	id, valid := labeledIDParam(c, "id", "watchlistId")
	if !valid {
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Error removing from watchlist")
		return
	}
	message(c, http.StatusOK, "Property removed from watchlist", nil)
}

// RemoveProperty handles DELETE /watchlist/:id/property/:propertyId.
func (h *WatchlistHandler) RemoveProperty(c *gin.Context) {
	userID, valid := labeledIDParam(c, "id", "userId")
	if !valid {
		return
	}
	propertyID, valid := idParam(c, "propertyId")
	if !valid {
		return
	}

	if err := h.service.RemoveProperty(c.Request.Context(), userID, propertyID); err != nil {
		handleServiceError(c, err, "Error removing from watchlist")
		return
	}
	message(c, http.StatusOK, "Property removed from watchlist", nil)
}

// Clear handles DELETE /watchlist/:id/clear.
func (h *WatchlistHandler) Clear(c *gin.Context) {
	userID, valid := labeledIDParam(c, "id", "userId")
	if !valid {
		return
	}

	n, err := h.service.ClearWatchlist(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Error clearing watchlist")
		return
	}
	message(c, http.StatusOK, fmt.Sprintf("Cleared %d items from watchlist", n), gin.H{"count": n})
}
