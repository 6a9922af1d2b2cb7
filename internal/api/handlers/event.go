package handlers

import (
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles HTTP requests for events
type EventHandler struct {
	eventService service.EventServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService service.EventServiceInterface) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent handles POST /events
// @Summary Create an event
// @Description Create an event organised by the caller
// @Tags events
// @Accept json
// @Produce json
// @Param event body service.EventRequest true "Event data"
// @Success 201 {object} SuccessResponse{data=models.Event} "Event created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req service.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Event created", event)
}

// GetEvent handles GET /events/:id
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} SuccessResponse{data=models.Event} "Event"
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", event)
}

// ListMyEvents handles GET /events/mine
// @Summary List events I organise
// @Tags events
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Event} "Events organised by the caller"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events/mine [get]
func (h *EventHandler) ListMyEvents(c *gin.Context) {
	events, err := h.eventService.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", events)
}

// UpdateEvent handles PUT /events/:id
// @Summary Update an event
// @Description Replace the editable fields of an event. Only the organiser can update it.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param event body service.EventRequest true "Event data"
// @Success 200 {object} SuccessResponse{data=models.Event} "Event updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}

	var req service.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), callerID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Event updated", event)
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete an event
// @Description Delete an event with its registrations and teams. Only the organiser can delete it.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} SuccessResponse "Event deleted"
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Event deleted", nil)
}
