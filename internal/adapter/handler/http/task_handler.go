package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/middleware/auth"
	"github.com/growvest/wallet-service/internal/usecase"
)

// TaskHandler handles achievement task requests
type TaskHandler struct {
	logger      *zap.Logger
	taskService *usecase.TaskService
}

// NewTaskHandler creates a new task handler instance
func NewTaskHandler(logger *zap.Logger, taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{
		logger:      logger,
		taskService: taskService,
	}
}

// GetTasks handles GET /api/v1/tasks
func (h *TaskHandler) GetTasks(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to list tasks",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "failed to retrieve tasks", Code: "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}
