package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todolist/internal/apperr"
	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/service"
)

type taskHandler struct {
	tasks    *service.TaskService
	projects *service.ProjectService
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	ProjectID   uint       `json:"project_id"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func (h *taskHandler) create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), service.TaskInput{
		Title:       req.Title,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondTask(c, http.StatusCreated, "Task created successfully", *task)
}

func (h *taskHandler) list(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTaskList(c, "Tasks retrieved successfully", tasks)
}

func (h *taskHandler) listByProject(c *gin.Context) {
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTaskList(c, "Tasks retrieved successfully", tasks)
}

func (h *taskHandler) listOverdue(c *gin.Context) {
	tasks, err := h.tasks.ListOverdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTaskList(c, "Overdue tasks retrieved successfully", tasks)
}

func (h *taskHandler) get(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTask(c, http.StatusOK, "Task retrieved successfully", *task)
}

func (h *taskHandler) update(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), id, repository.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTask(c, http.StatusOK, "Task updated successfully", *task)
}

func (h *taskHandler) changeStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	task, err := h.tasks.ChangeStatus(c.Request.Context(), id, model.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTask(c, http.StatusOK, "Task status updated successfully", *task)
}

func (h *taskHandler) close(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.tasks.Close(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTask(c, http.StatusOK, "Task closed successfully", *task)
}

func (h *taskHandler) delete(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task deleted successfully", nil)
}

func (h *taskHandler) respondTask(c *gin.Context, code int, message string, task model.Task) {
	name, err := h.projectName(c.Request.Context(), task.ProjectID, map[uint]string{})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, code, message, newTaskResponse(task, name))
}

func (h *taskHandler) respondTaskList(c *gin.Context, message string, tasks []model.Task) {
	names := make(map[uint]string)
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		name, err := h.projectName(c.Request.Context(), task.ProjectID, names)
		if err != nil {
			respondError(c, err)
			return
		}
		responses = append(responses, newTaskResponse(task, name))
	}

	respond(c, http.StatusOK, message, TaskListResponse{Tasks: responses, Total: len(responses)})
}

// projectName resolves a project's name through a per-request cache. A
// task whose project vanished underneath it gets an empty name rather
// than failing the whole response.
func (h *taskHandler) projectName(ctx context.Context, projectID uint, cache map[uint]string) (string, error) {
	if name, ok := cache[projectID]; ok {
		return name, nil
	}

	project, err := h.projects.Get(ctx, projectID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			cache[projectID] = ""
			return "", nil
		}
		return "", err
	}

	cache[projectID] = project.Name
	return project.Name, nil
}
