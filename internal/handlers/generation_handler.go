package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

// GenerationHandler serves AI-assisted content: interview questions for a
// template, job title suggestions, and job description drafts.
type GenerationHandler struct {
	BaseHandler
	generationService services.GenerationService
}

func NewGenerationHandler(generationService services.GenerationService, logger utils.Logger) *GenerationHandler {
	return &GenerationHandler{
		BaseHandler:       NewBaseHandler(logger),
		generationService: generationService,
	}
}

func (h *GenerationHandler) GenerateQuestions(c *gin.Context) {
	var req models.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Generating interview questions", "job_title", req.JobTitle)

	questions, err := h.generationService.GenerateQuestions(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(questions),
		"questions": questions,
	})
}

func (h *GenerationHandler) GenerateJobTitles(c *gin.Context) {
	var req models.GenerateJobTitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Generating job titles", "department", req.Department, "keyword", req.Keyword)

	titles, err := h.generationService.GenerateJobTitles(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(titles),
		"titles": titles,
	})
}

func (h *GenerationHandler) GenerateJobDetails(c *gin.Context) {
	var req models.GenerateJobDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Generating job details", "job_title", req.JobTitle)

	details, err := h.generationService.GenerateJobDetails(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
