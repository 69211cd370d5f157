package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/vanprop/internal/errors"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/services"
)

// SavedSearchHandler handles saved-search requests.
type SavedSearchHandler struct {
	service services.SavedSearchService
}

// NewSavedSearchHandler creates a new SavedSearchHandler instance.
func NewSavedSearchHandler(service services.SavedSearchService) *SavedSearchHandler {
	return &SavedSearchHandler{service: service}
}

// userSearches runs a per-user listing and writes it as a list response.
func (h *SavedSearchHandler) userSearches(c *gin.Context, failMsg string,
	fetch func(c *gin.Context, userID int64) ([]models.SavedSearch, error)) {
	userID, valid := idParam(c, "userId")
	if !valid {
		return
	}

	searches, err := fetch(c, userID)
	if err != nil {
		handleServiceError(c, err, failMsg)
		return
	}
	list(c, searches, nil)
}

// List handles GET /saved-searches/:userId.
func (h *SavedSearchHandler) List(c *gin.Context) {
	h.userSearches(c, "Error fetching saved searches", func(c *gin.Context, userID int64) ([]models.SavedSearch, error) {
		return h.service.ListSearches(c.Request.Context(), userID)
	})
}

// MostUsed handles GET /saved-searches/:userId/most-used.
func (h *SavedSearchHandler) MostUsed(c *gin.Context) {
	h.userSearches(c, "Error fetching most used searches", func(c *gin.Context, userID int64) ([]models.SavedSearch, error) {
		return h.service.MostUsed(c.Request.Context(), userID)
	})
}

// Recent handles GET /saved-searches/:userId/recent.
func (h *SavedSearchHandler) Recent(c *gin.Context) {
	h.userSearches(c, "Error fetching recent searches", func(c *gin.Context, userID int64) ([]models.SavedSearch, error) {
		return h.service.Recent(c.Request.Context(), userID)
	})
}

// SearchByName handles GET /saved-searches/:userId/search/:term.
func (h *SavedSearchHandler) SearchByName(c *gin.Context) {
	h.userSearches(c, "Error searching saved searches", func(c *gin.Context, userID int64) ([]models.SavedSearch, error) {
		return h.service.SearchByName(c.Request.Context(), userID, c.Param("term"))
	})
}

// Stats handles GET /saved-searches/:userId/stats.
func (h *SavedSearchHandler) Stats(c *gin.Context) {
	userID, valid := idParam(c, "userId")
	if !valid {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Error fetching search statistics")
		return
	}
	ok(c, stats, nil)
}

// Get handles GET /saved-searches/search/:searchId.
func (h *SavedSearchHandler) Get(c *gin.Context) {
	id, valid := idParam(c, "searchId")
	if !valid {
		return
	}

	search, err := h.service.GetSearch(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Error fetching saved search")
		return
	}
	ok(c, search, nil)
}

// Create handles POST /saved-searches.
func (h *SavedSearchHandler) Create(c *gin.Context) {
	var req models.CreateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	id, err := h.service.CreateSearch(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Error creating saved search")
		return
	}
	message(c, http.StatusCreated, "Search saved successfully", gin.H{"search_id": id})
}

// Update handles PUT /saved-searches/:searchId.
func (h *SavedSearchHandler) Update(c *gin.Context) {
	id, valid := idParam(c, "searchId")
	if !valid {
		return
	}

	var req models.UpdateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	search, err := h.service.UpdateSearch(c.Request.Context(), id, req)
	if err != nil {
		handleUpdateError(c, err, services.ErrSavedSearchNotFound, "Saved search", "Error updating saved search")
		return
	}
	message(c, http.StatusOK, "Saved search updated successfully", gin.H{"changes": 1, "data": search})
}

// Execute handles PUT /saved-searches/:searchId/execute.
func (h *SavedSearchHandler) Execute(c *gin.Context) {
	id, valid := idParam(c, "searchId")
	if !valid {
		return
	}

	var req models.ExecuteSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	search, err := h.service.ExecuteSearch(c.Request.Context(), id, *req.ResultCount)
	if err != nil {
		handleServiceError(c, err, "Error executing saved search")
		return
	}
	message(c, http.StatusOK, "Search execution recorded", gin.H{"data": search})
}

// Delete handles DELETE /saved-searches/:searchId.
func (h *SavedSearchHandler) Delete(c *gin.Context) {
	id, valid := idParam(c, "searchId")
	if !valid {
		return
	}

	if err := h.service.DeleteSearch(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Error deleting saved search")
		return
	}
	message(c, http.StatusOK, "Saved search deleted successfully", nil)
}
