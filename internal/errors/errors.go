package errors

import (
	"errors"
	"fmt"
)

// Caller-facing error kinds
const (
	KindUnauthenticated  = "Unauthenticated"
	KindValidation       = "ValidationError"
	KindCapacityExceeded = "CapacityExceeded"
	KindNotFound         = "NotFound"
	KindAlreadyExists    = "AlreadyExists"
	KindPersistence      = "PersistenceError"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this email"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents a missing or unverifiable caller identity
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// CapacityExceededError is returned when a team would hold more members than its limit allows
type CapacityExceededError struct {
	Limit int
	Count int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("team capacity exceeded: %d members for a limit of %d", e.Count, e.Limit)
}

// PersistenceError wraps a storage failure. The cause is kept for logs, the message shown to callers stays generic.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("failed to %s", e.Op)
	}
	return "storage failure"
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound          = &NotFoundError{Entity: "user"}
	ErrEventNotFound         = &NotFoundError{Entity: "event"}
	ErrTeamNotFound          = &NotFoundError{Entity: "team"}
	ErrParticipationNotFound = &NotFoundError{Entity: "participation"}
	ErrOfferNotFound         = &NotFoundError{Entity: "offer"}
	ErrClubNotFound          = &NotFoundError{Entity: "club"}
	ErrResultNotFound        = &NotFoundError{Entity: "result"}
)

// Already Exists Errors
var (
	ErrUserExists          = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrParticipationExists = &AlreadyExistsError{Entity: "participation", Context: "for this event"}
)

// Authentication Errors
var (
	ErrUnauthenticated    = &AuthenticationError{Message: "authentication required"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
	ErrMissingAuthHeader  = &AuthenticationError{Message: "authorization header required"}
	ErrMalformedAuthToken = &AuthenticationError{Message: "authorization header format must be Bearer {token}"}
)

// Business Logic Errors
var (
	ErrTeamNameRequired        = &ValidationError{Field: "team_name", Message: "team name is required when creating a team"}
	ErrNotTeamLeader           = &ValidationError{Field: "team", Message: "only the team leader can edit the team"}
	ErrRegistrationClosed      = &ValidationError{Field: "event_id", Message: "registration deadline has passed"}
	ErrEventCompleted          = &ValidationError{Field: "event_id", Message: "event has already completed"}
	ErrDeadlineAfterEventDate  = &ValidationError{Field: "registration_deadline", Message: "registration deadline must be on or before the event date"}
	ErrLeaderAlreadyRegistered = &ValidationError{Field: "event_id", Message: "you are already registered for this event"}
	ErrAlreadyRegisteredTeam   = &ValidationError{Field: "event_id", Message: "already_registered: you are already registered for this event, withdraw before creating a team"}
	ErrTeamCapacityAboveEvent  = &ValidationError{Field: "max_team_size", Message: "team size exceeds the event's maximum team size"}
	ErrProfileRequired         = &ValidationError{Field: "user", Message: "create your profile before registering"}
	ErrOfferEventInvalid       = &ValidationError{Field: "target_event_name", Message: "no upcoming or ongoing event has this name"}
	ErrOfferCollegeRequired    = &ValidationError{Field: "target_college_name", Message: "a college is required for college offers"}
	ErrOfferEventRequired      = &ValidationError{Field: "target_event_name", Message: "an event is required for event participant offers"}
)

// Configuration Errors
var (
	ErrDefaultJWTSecret = &ConfigurationError{Message: "AUTH_JWT_SECRET must be set in production"}
	ErrDatabaseURLEmpty = &ConfigurationError{Message: "database URL is required"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsCapacityExceeded checks if an error is a CapacityExceededError
func IsCapacityExceeded(err error) bool {
	var capErr *CapacityExceededError
	return errors.As(err, &capErr)
}

// IsPersistence checks if an error is a PersistenceError
func IsPersistence(err error) bool {
	var persistErr *PersistenceError
	return errors.As(err, &persistErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// Kind classifies err into one of the caller-facing kinds.
// Errors outside the taxonomy are reported as persistence failures.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsAuthentication(err):
		return KindUnauthenticated
	case IsValidation(err):
		return KindValidation
	case IsCapacityExceeded(err):
		return KindCapacityExceeded
	case IsNotFound(err):
		return KindNotFound
	case IsAlreadyExists(err):
		return KindAlreadyExists
	default:
		return KindPersistence
	}
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewCapacityExceededError creates a new CapacityExceededError
func NewCapacityExceededError(limit, count int) error {
	return &CapacityExceededError{Limit: limit, Count: count}
}

// NewPersistenceError wraps a storage failure for operation op
func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
