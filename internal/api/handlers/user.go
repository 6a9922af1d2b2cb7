package handlers

import (
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateProfile handles POST /users/me
// @Summary Create my profile
// @Description Create the profile of the authenticated identity
// @Tags users
// @Accept json
// @Produce json
// @Param profile body service.CreateUserRequest true "Profile data"
// @Success 201 {object} SuccessResponse{data=models.User} "Profile created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 409 {object} ErrorResponse "Profile or email already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /users/me [post]
func (h *UserHandler) CreateProfile(c *gin.Context) {
	var req service.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateProfile(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Profile created", user)
}

// GetMe handles GET /users/me
// @Summary Get my profile
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.User} "Profile of the caller"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Profile not created yet"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	h.respondProfile(c, callerID(c))
}

// GetUser handles GET /users/:id
// @Summary Get a profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse{data=models.User} "Profile"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	h.respondProfile(c, c.Param("id"))
}

func (h *UserHandler) respondProfile(c *gin.Context, id string) {
	user, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", user)
}

// UpdateProfile handles PATCH /users/me
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body service.UpdateUserRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=models.User} "Profile updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile updated", user)
}

// DeleteProfile handles DELETE /users/me
// @Summary Delete my profile
// @Description Delete the caller's profile, dissolving the teams they lead
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse "Profile deleted"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /users/me [delete]
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	if err := h.userService.DeleteProfile(c.Request.Context(), callerID(c)); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile deleted", nil)
}
