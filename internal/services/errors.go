package services

import (
	"errors"
	"fmt"

	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

// Common service errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
)

// Template errors
var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateNotPersisted  = errors.New("template has no persisted identifier")
	ErrTemplateDeleted       = errors.New("template has been deleted")
	ErrQuestionNotFound      = errors.New("question not found in template")
	ErrWriteFailedEverywhere = errors.New("write failed on server and local store")
)

// Job and candidate errors
var (
	ErrJobNotFound        = errors.New("job not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrDuplicateCandidate = errors.New("candidate already exists")
)

// Generation errors
var (
	ErrGenerationUnavailable = errors.New("generation provider unavailable")
)

// ValidationError mirrors the validator package error shape for handlers.
type ValidationError = validator.ValidationError

// ValidationErrors mirrors the validator package error slice for handlers.
type ValidationErrors = validator.ValidationErrors

// BusinessRuleError marks a request that is well-formed but breaks a domain
// rule (bad status transition, publishing a local-only template, ...).
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Message)
}

// PermissionError marks a request the caller is not allowed to make.
type PermissionError struct {
	Action  string
	Message string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s: %s", e.Action, e.Message)
}
