package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

type DepartmentHandler struct {
	BaseHandler
	departmentService services.DepartmentService
	jobService        services.JobService
}

func NewDepartmentHandler(
	departmentService services.DepartmentService,
	jobService services.JobService,
	logger utils.Logger,
) *DepartmentHandler {
	return &DepartmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		departmentService: departmentService,
		jobService:        jobService,
	}
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(departments),
		"results": departments,
	})
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	department, err := h.departmentService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req services.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating department", "name", req.Name)

	department, err := h.departmentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, department)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating department", "department_id", id)

	department, err := h.departmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting department", "department_id", id)

	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DepartmentJobs lists the jobs attached to one department.
func (h *DepartmentHandler) DepartmentJobs(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	jobs, err := h.jobService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filtered := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.DepartmentID == id {
			filtered = append(filtered, j)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(filtered),
		"results": filtered,
	})
}
