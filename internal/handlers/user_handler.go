package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/vanprop/internal/errors"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/services"
)

// UserHandler handles user account requests.
type UserHandler struct {
	service services.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Error fetching users")
		return
	}
	list(c, users, nil)
}

// Get handles GET /users/:userId.
func (h *UserHandler) Get(c *gin.Context) {
	id, valid := idParam(c, "userId")
	if !valid {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Error fetching user")
		return
	}
	ok(c, user, nil)
}

// GetByUsername handles GET /users/username/:username.
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.service.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err, "Error fetching user")
		return
	}
	ok(c, user, nil)
}

// Activity handles GET /users/:userId/activity.
func (h *UserHandler) Activity(c *gin.Context) {
	id, valid := idParam(c, "userId")
	if !valid {
		return
	}

	activity, err := h.service.GetActivity(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Error fetching user activity")
		return
	}
	ok(c, activity, nil)
}

// Inactive handles GET /users/inactive and GET /users/inactive/:days.
func (h *UserHandler) Inactive(c *gin.Context) {
	days := models.DefaultInactiveDays
	if c.Param("days") != "" {
		n, valid := intParam(c, "days")
		if !valid {
			return
		}
		days = n
	}

	users, err := h.service.InactiveUsers(c.Request.Context(), days)
	if err != nil {
		handleServiceError(c, err, "Error fetching inactive users")
		return
	}
	list(c, users, gin.H{"criteria": fmt.Sprintf("Inactive for %d+ days", days)})
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	id, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Error creating user")
		return
	}
	message(c, http.StatusCreated, "User created successfully", gin.H{"user_id": id})
}

// Update handles PUT /users/:userId.
func (h *UserHandler) Update(c *gin.Context) {
	id, valid := idParam(c, "userId")
	if !valid {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	if err := h.service.UpdateUser(c.Request.Context(), id, req); err != nil {
		handleUpdateError(c, err, services.ErrUserNotFound, "User", "Error updating user")
		return
	}
	message(c, http.StatusOK, "User updated successfully", gin.H{"changes": 1})
}

// Login handles PUT /users/:userId/login.
func (h *UserHandler) Login(c *gin.Context) {
	id, valid := idParam(c, "userId")
	if !valid {
		return
	}

	if err := h.service.RecordLogin(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Error updating last login")
		return
	}
	message(c, http.StatusOK, "Last login updated", nil)
}

// Delete handles DELETE /users/:userId.
func (h *UserHandler) Delete(c *gin.Context) {
	id, valid := idParam(c, "userId")
	if !valid {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Error deleting user")
		return
	}
	message(c, http.StatusOK, "User deleted successfully", nil)
}
