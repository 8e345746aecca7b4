package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

// ResponseHandler serves the per-question answer ledger nested under a
// feedback template.
type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
}

func NewResponseHandler(responseService services.ResponseService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
	}
}

// SaveResponse upserts one answer keyed by (form, question). The form id in
// the path wins over whatever the body carries.
func (h *ResponseHandler) SaveResponse(c *gin.Context) {
	formID := h.parseIDParam(c, "id")
	if formID == 0 {
		return
	}

	var req services.SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	req.FormID = formID

	h.LogRequest(c, "Saving form response", "form_id", formID, "question_id", req.QuestionID)

	result, err := h.responseService.Save(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListResponses returns the backend's answers for a form. Locally saved
// answers are not merged in; an unreachable backend yields an empty list.
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID := h.parseIDParam(c, "id")
	if formID == 0 {
		return
	}

	responses, err := h.responseService.ListForForm(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(responses),
		"results": responses,
	})
}
