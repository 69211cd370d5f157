package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apierrors "github.com/stwalsh4118/vanprop/internal/errors"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/services"
)

// PropertyHandler handles property-related HTTP requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /properties.
func (h *PropertyHandler) List(c *gin.Context) {
	var filter models.PropertyFilter
	if err := bindNonEmptyQuery(c, &filter); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters", map[string]interface{}{"reason": err.Error()})
		return
	}

	properties, err := h.service.ListProperties(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err, "Error fetching properties")
		return
	}
	list(c, properties, nil)
}

// bindNonEmptyQuery binds query parameters into obj, treating blank values
// such as "?max_value=" as absent.
func bindNonEmptyQuery(c *gin.Context, obj interface{}) error {
	values := c.Request.URL.Query()
	for key, vals := range values {
		if strings.TrimSpace(strings.Join(vals, "")) == "" {
			values.Del(key)
		}
	}

	req := c.Request.Clone(c.Request.Context())
	req.URL.RawQuery = values.Encode()
	return binding.Query.Bind(req, obj)
}

// Get handles GET /properties/:id and includes the tax history.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}

	property, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Error fetching property")
		return
	}
	ok(c, property, nil)
}

// GetByPID handles GET /properties/pid/:pid.
func (h *PropertyHandler) GetByPID(c *gin.Context) {
	property, err := h.service.GetPropertyByPID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		handleServiceError(c, err, "Error fetching property")
		return
	}
	ok(c, property, nil)
}

// Search handles GET /properties/search/:term.
func (h *PropertyHandler) Search(c *gin.Context) {
	properties, err := h.service.SearchProperties(c.Request.Context(), c.Param("term"))
	if err != nil {
		handleServiceError(c, err, "Error searching properties")
		return
	}
	list(c, properties, nil)
}

// History handles GET /properties/:id/history.
func (h *PropertyHandler) History(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}

	history, err := h.service.GetTaxHistory(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Error fetching tax history")
		return
	}
	list(c, history, nil)
}

// ByNeighborhood handles GET /properties/neighborhood/:name.
func (h *PropertyHandler) ByNeighborhood(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	properties, err := h.service.ListByNeighborhood(c.Request.Context(), name)
	if err != nil {
		handleServiceError(c, err, "Error fetching properties by neighborhood")
		return
	}
	list(c, properties, gin.H{"neighborhood": name})
}

// Top handles GET /properties/top and GET /properties/top/:limit.
func (h *PropertyHandler) Top(c *gin.Context) {
	limit := 0
	if c.Param("limit") != "" {
		n, valid := intParam(c, "limit")
		if !valid {
			return
		}
		limit = n
	}

	properties, err := h.service.TopProperties(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err, "Error fetching top properties")
		return
	}
	list(c, properties, nil)
}

// Neighborhoods handles GET /properties/neighborhoods.
func (h *PropertyHandler) Neighborhoods(c *gin.Context) {
	neighborhoods, err := h.service.Neighborhoods(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Error fetching neighborhoods")
		return
	}
	list(c, neighborhoods, nil)
}

// PropertyTypes handles GET /properties/property-types.
func (h *PropertyHandler) PropertyTypes(c *gin.Context) {
	types, err := h.service.PropertyTypes(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Error fetching property types")
		return
	}
	list(c, types, nil)
}

// FilterOptions handles GET /properties/filter-options.
func (h *PropertyHandler) FilterOptions(c *gin.Context) {
	opts, err := h.service.FilterOptions(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Error fetching filter options")
		return
	}
	ok(c, opts, nil)
}

// NeighborhoodStats handles GET /properties/stats/neighborhoods.
func (h *PropertyHandler) NeighborhoodStats(c *gin.Context) {
	stats, err := h.service.NeighborhoodStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Error fetching neighborhood statistics")
		return
	}
	list(c, stats, nil)
}

// TypeStats handles GET /properties/stats/types.
func (h *PropertyHandler) TypeStats(c *gin.Context) {
	stats, err := h.service.PropertyTypeStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Error fetching property type statistics")
		return
	}
	list(c, stats, nil)
}

// Create handles POST /properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	id, err := h.service.CreateProperty(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Error creating property")
		return
	}
	message(c, http.StatusCreated, "Property created successfully", gin.H{"property_id": id})
}

// Update handles PUT /properties/:id.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}

	var req models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	if err := h.service.UpdateProperty(c.Request.Context(), id, req); err != nil {
		handleUpdateError(c, err, services.ErrPropertyNotFound, "Property", "Error updating property")
		return
	}
	message(c, http.StatusOK, "Property updated successfully", gin.H{"changes": 1})
}

// Delete handles DELETE /properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Error deleting property")
		return
	}
	message(c, http.StatusOK, "Property deleted successfully", nil)
}
