package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TaskQueue enqueues pagination tasks and reports their status.
type TaskQueue interface {
	EnqueueBook(ctx context.Context, bookID uint) (string, error)
	EnqueueLibrary(ctx context.Context) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

type TasksController struct {
	queue TaskQueue
}

func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// TaskTypeInfo describes a task type that can be run over the API.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	NeedsBookID bool   `json:"needs_book_id"`
}

var taskTypes = []TaskTypeInfo{
	{
		Type:        tasks.PaginateBookTask{}.Config().Name,
		Description: "Paginate a single book and reconcile its reading position",
		NeedsBookID: true,
	},
	{
		Type:        tasks.PaginateAllTask{}.Config().Name,
		Description: "Paginate every book with an ebook file",
	},
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"task_types": taskTypes,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTaskRequest is the optional body of POST /api/tasks/:type/run.
type RunTaskRequest struct {
	BookID uint `json:"book_id,omitempty"`
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	ctx := c.Request.Context()
	var (
		taskID string
		err    error
	)
	switch taskType {
	case tasks.PaginateBookTask{}.Config().Name:
		if req.BookID == 0 {
			respondBadRequest(c, "book_id is required for paginate_book task")
			return
		}
		taskID, err = tc.queue.EnqueueBook(ctx, req.BookID)

	case tasks.PaginateAllTask{}.Config().Name:
		taskID, err = tc.queue.EnqueueLibrary(ctx)

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": taskID,
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
