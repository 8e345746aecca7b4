package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/config"
	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type HandlerManager struct {
	templateHandler   *TemplateHandler
	responseHandler   *ResponseHandler
	jobHandler        *JobHandler
	departmentHandler *DepartmentHandler
	candidateHandler  *CandidateHandler
	dashboardHandler  *DashboardHandler
	generationHandler *GenerationHandler
	authMiddleware    *CasdoorAuthMiddleware
	serviceManager    services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	cfg *config.Config,
) *HandlerManager {
	return &HandlerManager{
		templateHandler:   NewTemplateHandler(serviceManager.Template(), validator, logger),
		responseHandler:   NewResponseHandler(serviceManager.Response(), logger),
		jobHandler:        NewJobHandler(serviceManager.Job(), validator, logger),
		departmentHandler: NewDepartmentHandler(serviceManager.Department(), serviceManager.Job(), logger),
		candidateHandler:  NewCandidateHandler(serviceManager.Candidate(), serviceManager.Import(), cfg.ParseTimeout, logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
		generationHandler: NewGenerationHandler(serviceManager.Generation(), logger),
		authMiddleware:    NewCasdoorAuthMiddleware(cfg.Casdoor),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		templates := v1.Group("/feedback-templates")
		{
			templates.POST("", hm.templateHandler.CreateTemplate)
			templates.GET("", hm.templateHandler.ListTemplates)
			templates.POST("/sync", hm.templateHandler.SyncTemplates)
			templates.POST("/generate-questions", hm.generationHandler.GenerateQuestions)
			templates.GET("/:id", hm.templateHandler.GetTemplate)
			templates.PATCH("/:id", hm.templateHandler.UpdateTemplate)
			templates.DELETE("/:id", hm.templateHandler.DeleteTemplate)
			templates.POST("/:id/publish", hm.templateHandler.PublishTemplate)
			templates.POST("/:id/unpublish", hm.templateHandler.UnpublishTemplate)

			// Per-question answer ledger
			templates.POST("/:id/responses", hm.responseHandler.SaveResponse)
			templates.GET("/:id/responses", hm.responseHandler.ListResponses)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", hm.jobHandler.CreateJob)
			jobs.GET("", hm.jobHandler.ListJobs)
			jobs.GET("/statistics", hm.jobHandler.JobStatistics)
			jobs.GET("/:id", hm.jobHandler.GetJob)
			jobs.PATCH("/:id", hm.jobHandler.UpdateJob)
			jobs.DELETE("/:id", hm.jobHandler.DeleteJob)
			jobs.POST("/:id/publish", hm.jobHandler.PublishJob)
			jobs.POST("/:id/pause", hm.jobHandler.PauseJob)
			jobs.POST("/:id/close", hm.jobHandler.CloseJob)
		}

		departments := v1.Group("/departments")
		{
			departments.POST("", hm.departmentHandler.CreateDepartment)
			departments.GET("", hm.departmentHandler.ListDepartments)
			departments.GET("/:id", hm.departmentHandler.GetDepartment)
			departments.PATCH("/:id", hm.departmentHandler.UpdateDepartment)
			departments.DELETE("/:id", hm.departmentHandler.DeleteDepartment)
			departments.GET("/:id/jobs", hm.departmentHandler.DepartmentJobs)
		}

		candidates := v1.Group("/candidates")
		{
			candidates.POST("", hm.candidateHandler.CreateCandidate)
			candidates.GET("", hm.candidateHandler.ListCandidates)
			candidates.GET("/statistics", hm.candidateHandler.CandidateStatistics)
			candidates.POST("/bulk", hm.candidateHandler.BulkCreateCandidates)
			candidates.POST("/import", hm.candidateHandler.ImportCandidates)
			candidates.GET("/:id", hm.candidateHandler.GetCandidate)
			candidates.PATCH("/:id", hm.candidateHandler.UpdateCandidate)
			candidates.DELETE("/:id", hm.candidateHandler.DeleteCandidate)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("", hm.dashboardHandler.Overview)
			dashboard.GET("/recent-activities", hm.dashboardHandler.RecentActivities)
		}

		v1.POST("/generate-job-titles", hm.generationHandler.GenerateJobTitles)
		v1.POST("/generate-job-details", hm.generationHandler.GenerateJobDetails)
	}

	router.GET("/health", hm.healthCheck)
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"service":   "recruit-gateway",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
