package handlers

import (
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
)

// ResultHandler handles HTTP requests for event results
type ResultHandler struct {
	resultService service.ResultServiceInterface
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService service.ResultServiceInterface) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
	}
}

// CreateResult handles POST /results
// @Summary Announce a result
// @Tags results
// @Accept json
// @Produce json
// @Param result body service.ResultRequest true "Result data"
// @Success 201 {object} SuccessResponse{data=models.Result} "Result announced"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /results [post]
func (h *ResultHandler) CreateResult(c *gin.Context) {
	var req service.ResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.resultService.Create(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Result announced", result)
}

// GetResult handles GET /results/:id
// @Summary Get a result
// @Description Results outside the caller's audience answer 404.
// @Tags results
// @Produce json
// @Param id path string true "Result ID (UUID)"
// @Success 200 {object} SuccessResponse{data=models.Result} "Result"
// @Failure 400 {object} ErrorResponse "Invalid result ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Result not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := pathUUID(c, "id", "result")
	if !ok {
		return
	}

	result, err := h.resultService.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", result)
}

// ListByEvent handles GET /events/:id/results
// @Summary List an event's results visible to me
// @Tags results
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} SuccessResponse{data=[]models.Result} "Results"
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events/{id}/results [get]
func (h *ResultHandler) ListByEvent(c *gin.Context) {
	eventID, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}

	results, err := h.resultService.ListByEvent(c.Request.Context(), callerID(c), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", results)
}

// UpdateResult handles PUT /results/:id
// @Summary Update a result
// @Description Replace the editable fields of a result. Only its announcer can update it.
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Result ID (UUID)"
// @Param result body service.ResultRequest true "Result data"
// @Success 200 {object} SuccessResponse{data=models.Result} "Result updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Result or event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /results/{id} [put]
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	id, ok := pathUUID(c, "id", "result")
	if !ok {
		return
	}

	var req service.ResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.resultService.Update(c.Request.Context(), callerID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Result updated", result)
}

// DeleteResult handles DELETE /results/:id
// @Summary Delete a result
// @Tags results
// @Produce json
// @Param id path string true "Result ID (UUID)"
// @Success 200 {object} SuccessResponse "Result deleted"
// @Failure 400 {object} ErrorResponse "Invalid result ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Result not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /results/{id} [delete]
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id, ok := pathUUID(c, "id", "result")
	if !ok {
		return
	}

	if err := h.resultService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Result deleted", nil)
}
