package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type TemplateHandler struct {
	BaseHandler
	templateService services.TemplateService
	validator       *validator.Validator
}

func NewTemplateHandler(
	templateService services.TemplateService,
	validator *validator.Validator,
	logger utils.Logger,
) *TemplateHandler {
	return &TemplateHandler{
		BaseHandler:     NewBaseHandler(logger),
		templateService: templateService,
		validator:       validator,
	}
}

// ListTemplates merges backend and locally saved templates. Filtering by
// status or search term happens after the merge so local drafts show up too.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	h.LogRequest(c, "Listing feedback templates")

	templates, offline, err := h.templateService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	params := models.ListTemplatesParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	templates = filterTemplates(templates, params)

	c.JSON(http.StatusOK, gin.H{
		"count":   len(templates),
		"results": templates,
		"offline": offline,
	})
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	template, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req services.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating feedback template", "name", req.Name)

	result, err := h.templateService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating feedback template", "template_id", id)

	result, err := h.templateService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting feedback template", "template_id", id)

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TemplateHandler) PublishTemplate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Publishing feedback template", "template_id", id)

	template, err := h.templateService.Publish(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Template published successfully",
		Data:      template,
		Timestamp: time.Now().UTC(),
	})
}

func (h *TemplateHandler) UnpublishTemplate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Unpublishing feedback template", "template_id", id)

	template, err := h.templateService.Unpublish(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Template unpublished successfully",
		Data:      template,
		Timestamp: time.Now().UTC(),
	})
}

// SyncTemplates retries pending local deletes against the backend. The same
// pass runs automatically at startup.
func (h *TemplateHandler) SyncTemplates(c *gin.Context) {
	h.LogRequest(c, "Syncing local template state")

	if err := h.templateService.SyncLocal(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Local template state synced",
		Timestamp: time.Now().UTC(),
	})
}

func filterTemplates(templates []models.FeedbackTemplate, params models.ListTemplatesParams) []models.FeedbackTemplate {
	if params.Status == "" && params.Search == "" {
		return templates
	}
	search := strings.ToLower(params.Search)
	filtered := make([]models.FeedbackTemplate, 0, len(templates))
	for _, t := range templates {
		if params.Status != "" && string(t.Status) != params.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
