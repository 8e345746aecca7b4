package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type JobHandler struct {
	BaseHandler
	jobService services.JobService
	validator  *validator.Validator
}

func NewJobHandler(jobService services.JobService, validator *validator.Validator, logger utils.Logger) *JobHandler {
	return &JobHandler{
		BaseHandler: NewBaseHandler(logger),
		jobService:  jobService,
		validator:   validator,
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(jobs),
		"results": jobs,
	})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	job, err := h.jobService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req services.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating job", "title", req.Title)

	job, err := h.jobService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating job", "job_id", id)

	job, err := h.jobService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting job", "job_id", id)

	if err := h.jobService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) PublishJob(c *gin.Context) {
	h.lifecycleAction(c, h.jobService.Publish, "Job published successfully")
}

func (h *JobHandler) PauseJob(c *gin.Context) {
	h.lifecycleAction(c, h.jobService.Pause, "Job paused successfully")
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	h.lifecycleAction(c, h.jobService.Close, "Job closed successfully")
}

func (h *JobHandler) JobStatistics(c *gin.Context) {
	stats, err := h.jobService.Statistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *JobHandler) lifecycleAction(c *gin.Context, action func(context.Context, identity.ID) (*models.Job, error), message string) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, message, "job_id", id)

	job, err := action(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   message,
		Data:      job,
		Timestamp: time.Now().UTC(),
	})
}
