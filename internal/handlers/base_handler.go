package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

type ErrorResponse = models.ErrorResponse
type SuccessResponse = models.SuccessResponse

// BaseHandler carries the shared request logging and error translation
// used by every resource handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...interface{}) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...interface{}) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, append(args, "error", err)...)
}

func (h *BaseHandler) RespondWithError(c *gin.Context, status int, message string, err error) {
	resp := h.newErrorResponse(c, http.StatusText(status), message)
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

func (h *BaseHandler) newErrorResponse(c *gin.Context, code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	}
}

// parseIDParam reads a numeric path parameter. On failure it writes the 400
// response itself and returns 0; callers just return.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) identity.ID {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, err)
		return 0
	}
	return identity.ID(id)
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	raw := c.Query(param)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// handleServiceError translates service errors into HTTP responses. Backend
// 4xx codes pass through unchanged so the caller sees what the upstream said.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		resp := h.newErrorResponse(c, "validation_failed", "Validation failed")
		resp.ValidationErrors = toValidationResponses(validationErrors)
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		resp := h.newErrorResponse(c, "business_rule_violation", businessRuleError.Message)
		resp.BusinessRuleViolations = []models.BusinessRuleViolation{{
			Rule:     businessRuleError.Rule,
			Message:  businessRuleError.Message,
			Severity: "error",
		}}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		resp := h.newErrorResponse(c, "forbidden", "Access denied")
		resp.Details = map[string]interface{}{
			"action": permissionError.Action,
			"reason": permissionError.Message,
		}
		c.JSON(http.StatusForbidden, resp)
		return
	}

	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		c.JSON(apiErr.Status, h.newErrorResponse(c, "backend_rejected", apiErr.Detail))
		return
	}

	switch {
	case errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrDepartmentNotFound),
		errors.Is(err, services.ErrCandidateNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, h.newErrorResponse(c, "not_found", err.Error()))
	case errors.Is(err, services.ErrTemplateDeleted):
		c.JSON(http.StatusGone, h.newErrorResponse(c, "gone", "Template has been deleted"))
	case errors.Is(err, services.ErrTemplateNotPersisted):
		c.JSON(http.StatusBadRequest, h.newErrorResponse(c, "bad_request", "Template has not been saved yet"))
	case errors.Is(err, services.ErrDuplicateCandidate), errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, h.newErrorResponse(c, "conflict", err.Error()))
	case errors.Is(err, services.ErrValidationFailed), errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, h.newErrorResponse(c, "bad_request", err.Error()))
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, h.newErrorResponse(c, "unauthorized", "Unauthorized access"))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, h.newErrorResponse(c, "forbidden", "Forbidden"))
	case errors.Is(err, services.ErrWriteFailedEverywhere):
		c.JSON(http.StatusServiceUnavailable, h.newErrorResponse(c, "storage_unavailable", "Could not save to server or local store"))
	case errors.Is(err, services.ErrGenerationUnavailable):
		c.JSON(http.StatusServiceUnavailable, h.newErrorResponse(c, "generation_unavailable", "Content generation is currently unavailable"))
	case errors.Is(err, remote.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, h.newErrorResponse(c, "backend_unavailable", "Recruiting backend is unreachable"))
	default:
		h.LogError(c, err, "Unexpected service error")
		resp := h.newErrorResponse(c, "internal_error", "Internal server error")
		resp.Details = err.Error()
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func toValidationResponses(verrs services.ValidationErrors) []models.ValidationErrorResponse {
	out := make([]models.ValidationErrorResponse, 0, len(verrs))
	for _, v := range verrs {
		value := ""
		if v.Value != nil {
			value = fmt.Sprintf("%v", v.Value)
		}
		out = append(out, models.ValidationErrorResponse{
			Field:   v.Field,
			Message: v.Message,
			Value:   value,
			Code:    v.Rule,
		})
	}
	return out
}
