package handlers

import (
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
)

// ClubHandler handles HTTP requests for clubs
type ClubHandler struct {
	clubService service.ClubServiceInterface
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService service.ClubServiceInterface) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
	}
}

// CreateClub handles POST /clubs
// @Summary Create a club
// @Description Create a club and link the upcoming or ongoing events named in event_links. Unknown titles are skipped.
// @Tags clubs
// @Accept json
// @Produce json
// @Param club body service.ClubRequest true "Club data"
// @Success 201 {object} SuccessResponse{data=models.Club} "Club created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /clubs [post]
func (h *ClubHandler) CreateClub(c *gin.Context) {
	var req service.ClubRequest
	if !bindJSON(c, &req) {
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Club created", club)
}

// GetClub handles GET /clubs/:id
// @Summary Get a club with its events
// @Tags clubs
// @Produce json
// @Param id path string true "Club ID (UUID)"
// @Success 200 {object} SuccessResponse{data=models.Club} "Club"
// @Failure 400 {object} ErrorResponse "Invalid club ID"
// @Failure 404 {object} ErrorResponse "Club not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /clubs/{id} [get]
func (h *ClubHandler) GetClub(c *gin.Context) {
	id, ok := pathUUID(c, "id", "club")
	if !ok {
		return
	}

	club, err := h.clubService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", club)
}

// ListClubs handles GET /clubs
// @Summary List clubs
// @Tags clubs
// @Produce json
// @Param college query string false "Only clubs of this college"
// @Success 200 {object} SuccessResponse{data=[]models.Club} "Clubs"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /clubs [get]
func (h *ClubHandler) ListClubs(c *gin.Context) {
	clubs, err := h.clubService.List(c.Request.Context(), c.Query("college"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", clubs)
}

// UpdateClub handles PUT /clubs/:id
// @Summary Update a club
// @Description Replace the club's fields and link any newly named events. Existing links are kept. Only the creator can update it.
// @Tags clubs
// @Accept json
// @Produce json
// @Param id path string true "Club ID (UUID)"
// @Param club body service.ClubRequest true "Club data"
// @Success 200 {object} SuccessResponse{data=models.Club} "Club updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Club not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /clubs/{id} [put]
func (h *ClubHandler) UpdateClub(c *gin.Context) {
	id, ok := pathUUID(c, "id", "club")
	if !ok {
		return
	}

	var req service.ClubRequest
	if !bindJSON(c, &req) {
		return
	}

	club, err := h.clubService.Update(c.Request.Context(), callerID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Club updated", club)
}

// DeleteClub handles DELETE /clubs/:id
// @Summary Delete a club
// @Tags clubs
// @Produce json
// @Param id path string true "Club ID (UUID)"
// @Success 200 {object} SuccessResponse "Club deleted"
// @Failure 400 {object} ErrorResponse "Invalid club ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Club not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /clubs/{id} [delete]
func (h *ClubHandler) DeleteClub(c *gin.Context) {
	id, ok := pathUUID(c, "id", "club")
	if !ok {
		return
	}

	if err := h.clubService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Club deleted", nil)
}
