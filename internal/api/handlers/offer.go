package handlers

import (
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
)

// OfferHandler handles HTTP requests for offers
type OfferHandler struct {
	offerService service.OfferServiceInterface
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerService service.OfferServiceInterface) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// CreateOffer handles POST /offers
// @Summary Post an offer
// @Description Post a team recruitment call or an announcement. The target event is named by title and must be upcoming or ongoing.
// @Tags offers
// @Accept json
// @Produce json
// @Param offer body service.OfferRequest true "Offer data"
// @Success 201 {object} SuccessResponse{data=models.Offer} "Offer created"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown event name"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /offers [post]
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var req service.OfferRequest
	if !bindJSON(c, &req) {
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Offer created", offer)
}

// GetOffer handles GET /offers/:id
// @Summary Get an offer
// @Description Offers not addressed to the caller answer 404.
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID (UUID)"
// @Success 200 {object} SuccessResponse{data=models.Offer} "Offer"
// @Failure 400 {object} ErrorResponse "Invalid offer ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Offer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /offers/{id} [get]
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, ok := pathUUID(c, "id", "offer")
	if !ok {
		return
	}

	offer, err := h.offerService.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", offer)
}

// ListMyOffers handles GET /offers/mine
// @Summary List offers I posted
// @Tags offers
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Offer} "Offers posted by the caller"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /offers/mine [get]
func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	offers, err := h.offerService.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", offers)
}

// OfferFeed handles GET /offers/feed
// @Summary List offers addressed to me
// @Description Offers for everyone, for the caller's college and for events the caller is registered for
// @Tags offers
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Offer} "Offers addressed to the caller"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /offers/feed [get]
func (h *OfferHandler) OfferFeed(c *gin.Context) {
	offers, err := h.offerService.Feed(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", offers)
}

// UpdateOffer handles PUT /offers/:id
// @Summary Update an offer
// @Description Replace the editable fields of an offer. Only its creator can update it.
// @Tags offers
// @Accept json
// @Produce json
// @Param id path string true "Offer ID (UUID)"
// @Param offer body service.OfferRequest true "Offer data"
// @Success 200 {object} SuccessResponse{data=models.Offer} "Offer updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Offer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /offers/{id} [put]
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	id, ok := pathUUID(c, "id", "offer")
	if !ok {
		return
	}

	var req service.OfferRequest
	if !bindJSON(c, &req) {
		return
	}

	offer, err := h.offerService.Update(c.Request.Context(), callerID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Offer updated", offer)
}

// DeleteOffer handles DELETE /offers/:id
// @Summary Delete an offer
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID (UUID)"
// @Success 200 {object} SuccessResponse "Offer deleted"
// @Failure 400 {object} ErrorResponse "Invalid offer ID"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Offer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /offers/{id} [delete]
func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	id, ok := pathUUID(c, "id", "offer")
	if !ok {
		return
	}

	if err := h.offerService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Offer deleted", nil)
}
