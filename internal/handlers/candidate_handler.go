package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

type CandidateHandler struct {
	BaseHandler
	candidateService services.CandidateService
	importService    services.ImportService
	parseTimeout     time.Duration
}

func NewCandidateHandler(
	candidateService services.CandidateService,
	importService services.ImportService,
	parseTimeout time.Duration,
	logger utils.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      NewBaseHandler(logger),
		candidateService: candidateService,
		importService:    importService,
		parseTimeout:     parseTimeout,
	}
}

func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	params := &models.ListCandidatesParams{
		Page:   h.parseIntQuery(c, "page", 1),
		Size:   h.parseIntQuery(c, "page_size", 20),
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if jobStr := c.Query("job"); jobStr != "" {
		if jobID, err := strconv.ParseInt(jobStr, 10, 64); err == nil {
			params.JobID = identity.ID(jobID)
		}
	}

	candidates, total, err := h.candidateService.List(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": candidates,
	})
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	candidate, err := h.candidateService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req services.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating candidate", "email", req.Email)

	candidate, err := h.candidateService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating candidate", "candidate_id", id)

	candidate, err := h.candidateService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting candidate", "candidate_id", id)

	if err := h.candidateService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CandidateHandler) CandidateStatistics(c *gin.Context) {
	stats, err := h.candidateService.Statistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// BulkCreateCandidates uploads candidate rows from a JSON body. Valid rows
// land even when siblings fail; the result reports each row's outcome.
func (h *CandidateHandler) BulkCreateCandidates(c *gin.Context) {
	var req services.BulkCreateCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Bulk creating candidates", "rows", len(req.Candidates))

	result, err := h.candidateService.BulkCreate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportCandidates accepts a multipart .xlsx upload and feeds the parsed
// rows through the same bulk-create path. Parsing runs under its own
// timeout so a huge workbook cannot pin the request forever.
func (h *CandidateHandler) ImportCandidates(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing spreadsheet upload under field 'file'", err)
		return
	}

	var jobID identity.ID
	if jobStr := c.PostForm("job"); jobStr != "" {
		parsed, err := strconv.ParseInt(jobStr, 10, 64)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid job id", err)
			return
		}
		jobID = identity.ID(parsed)
	}

	h.LogRequest(c, "Importing candidates from spreadsheet", "file", fileHeader.Filename, "job_id", jobID)

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Could not read uploaded file", err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	if h.parseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.parseTimeout)
		defer cancel()
	}

	result, err := h.importService.ImportWorkbook(ctx, file, jobID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
