package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todolist/internal/apperr"
	"todolist/internal/repository"
	"todolist/internal/service"
)

type projectHandler struct {
	projects *service.ProjectService
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *projectHandler) create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Project created successfully", newProjectResponse(*project))
}

func (h *projectHandler) list(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, newProjectResponse(project))
	}

	respond(c, http.StatusOK, "Projects retrieved successfully", ProjectListResponse{
		Projects: responses,
		Total:    len(responses),
	})
}

func (h *projectHandler) get(c *gin.Context) {
	id, ok := paramID(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Project retrieved successfully", newProjectResponse(*project))
}

func (h *projectHandler) update(c *gin.Context) {
	id, ok := paramID(c, "id", "project")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	project, err := h.projects.Update(c.Request.Context(), id, repository.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Project updated successfully", newProjectResponse(*project))
}

func (h *projectHandler) delete(c *gin.Context) {
	id, ok := paramID(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Project deleted successfully", nil)
}

// paramID parses an integer path parameter, responding with a validation
// error on malformed input.
func paramID(c *gin.Context, name, entity string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(c, apperr.Validationf("invalid %s id %q", entity, raw))
		return 0, false
	}
	return uint(id), true
}
