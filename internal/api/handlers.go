package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"followup-report/internal/models"
	"followup-report/internal/services"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	reportService *services.ReportService
	taskService   *services.TaskService
}

// NewHandlers creates a new handlers instance
func NewHandlers(reportService *services.ReportService, taskService *services.TaskService) *Handlers {
	return &Handlers{
		reportService: reportService,
		taskService:   taskService,
	}
}

// GenerateReportHandler handles POST /api/reports/generate
func (h *Handlers) GenerateReportHandler(c *gin.Context) {
	var req models.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	// Start async report generation
	go func() {
		_ = h.taskService.UpdateTaskStatus(task.ID, models.TaskStatusProcessing)

		result, err := h.reportService.GenerateReport(req)
		if err != nil {
			_ = h.taskService.SetTaskError(task.ID, err)
			return
		}

		_ = h.taskService.SetTaskResult(task.ID, result)
	}()

	// Return task ID immediately
	c.JSON(http.StatusAccepted, models.TaskResponse{
		TaskID: task.ID,
		Status: string(task.Status),
	})
}

// GenerateReportSyncHandler handles POST /api/reports/generate-sync
// Synchronously generates the report and returns the run summary
func (h *Handlers) GenerateReportSyncHandler(c *gin.Context) {
	var req models.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reportService.GenerateReport(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTaskStatusHandler handles GET /api/reports/status/:taskId
func (h *Handlers) GetTaskStatusHandler(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	response := models.StatusResponse{
		TaskID: task.ID,
		Status: string(task.Status),
	}

	if task.Status == models.TaskStatusCompleted {
		response.Result = task.Result
	} else if task.Status == models.TaskStatusFailed {
		response.Error = task.Error
	}

	c.JSON(http.StatusOK, response)
}
