package handlers

import (
	"errors"
	"net/http"

	"github.com/KartikTulsian/karyasetu/internal/auth"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Kind    string `json:"kind" example:"ValidationError"`
	Error   string `json:"error" example:"validation error: team_name - team name is required when creating a team"`
}

// SuccessResponse wraps successful payloads
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// statusForKind maps an error kind to its HTTP status
func statusForKind(kind string) int {
	switch kind {
	case apperrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindCapacityExceeded, apperrors.KindAlreadyExists:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for err. Storage details never reach the caller.
func respondError(c *gin.Context, err error) {
	kind := apperrors.Kind(err)
	status := statusForKind(kind)

	message := err.Error()
	var persistErr *apperrors.PersistenceError
	if status == http.StatusInternalServerError && !errors.As(err, &persistErr) {
		message = "internal server error"
	}
	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(err).Error("request failed")
	}

	_ = c.Error(err)
	c.JSON(status, ErrorResponse{Success: false, Kind: kind, Error: message})
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

// bindJSON decodes the body into dst, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperrors.NewValidationError("body", "invalid request body: "+err.Error()))
		return false
	}
	return true
}

// pathUUID parses the named path parameter, answering 400 when it is not a UUID
func pathUUID(c *gin.Context, name, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperrors.NewValidationError(name, "invalid "+entity+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the verified identity, or "" so the service reports Unauthenticated
func callerID(c *gin.Context) string {
	id, _ := auth.GetUserID(c)
	return id
}
