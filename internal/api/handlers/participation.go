package handlers

import (
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
)

// ParticipationHandler handles HTTP requests for event registrations and teams
type ParticipationHandler struct {
	participationService service.ParticipationServiceInterface
}

// NewParticipationHandler creates a new participation handler
func NewParticipationHandler(participationService service.ParticipationServiceInterface) *ParticipationHandler {
	return &ParticipationHandler{
		participationService: participationService,
	}
}

// Register handles POST /participations
// @Summary Register for an event
// @Description Register the caller for an event, individually or as the leader of a new team with members resolved by email
// @Tags participations
// @Accept json
// @Produce json
// @Param registration body service.RegisterParticipationRequest true "Registration data"
// @Success 201 {object} SuccessResponse{data=service.RegistrationResult} "Registration persisted"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 409 {object} ErrorResponse "Team capacity exceeded"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /participations [post]
func (h *ParticipationHandler) Register(c *gin.Context) {
	var req service.RegisterParticipationRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.participationService.Register(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	message := "Registered successfully"
	if result.AlreadyRegistered {
		status = http.StatusOK
		message = "Already registered for this event"
	}
	respondOK(c, status, message, result)
}

// Update handles PATCH /participations/:id
// @Summary Update a registration
// @Description Update the caller's registration. Team name and size can only be changed by the team leader.
// @Tags participations
// @Accept json
// @Produce json
// @Param id path string true "Participation ID (UUID)"
// @Param update body service.UpdateParticipationRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=models.EventParticipation} "Registration updated"
// @Failure 400 {object} ErrorResponse "Invalid request or not the team leader"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Registration not found"
// @Failure 409 {object} ErrorResponse "New size is below the member count"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /participations/{id} [patch]
func (h *ParticipationHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id", "participation")
	if !ok {
		return
	}

	var req service.UpdateParticipationRequest
	if !bindJSON(c, &req) {
		return
	}

	participation, err := h.participationService.Update(c.Request.Context(), callerID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Registration updated", participation)
}

// Withdraw handles DELETE /participations/:id
// @Summary Withdraw from an event
// @Description Delete the caller's registration. A leader's withdrawal dissolves the team and keeps the members registered individually.
// @Tags participations
// @Produce json
// @Param id path string true "Participation ID (UUID)"
// @Success 200 {object} SuccessResponse{data=service.WithdrawalResult} "Registration withdrawn"
// @Failure 400 {object} ErrorResponse "Invalid participation ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Registration not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /participations/{id} [delete]
func (h *ParticipationHandler) Withdraw(c *gin.Context) {
	id, ok := pathUUID(c, "id", "participation")
	if !ok {
		return
	}

	result, err := h.participationService.Withdraw(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Registration withdrawn", result)
}

// ListMine handles GET /participations/me
// @Summary List my registrations
// @Tags participations
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.EventParticipation} "Registrations of the caller"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /participations/me [get]
func (h *ParticipationHandler) ListMine(c *gin.Context) {
	participations, err := h.participationService.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", participations)
}

// ListByEvent handles GET /events/:id/participations
// @Summary List registrations of an event
// @Tags participations
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} SuccessResponse{data=[]models.EventParticipation} "Registrations of the event"
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events/{id}/participations [get]
func (h *ParticipationHandler) ListByEvent(c *gin.Context) {
	eventID, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}

	participations, err := h.participationService.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", participations)
}

// GetTeam handles GET /teams/:id
// @Summary Get a team with its members
// @Tags teams
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Success 200 {object} SuccessResponse{data=service.TeamDetail} "Team and members"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{id} [get]
func (h *ParticipationHandler) GetTeam(c *gin.Context) {
	teamID, ok := pathUUID(c, "id", "team")
	if !ok {
		return
	}

	team, err := h.participationService.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", team)
}
