package service

import (
	"context"
	"fmt"

	"todolist/internal/apperr"
	"todolist/internal/config"
	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/validation"
)

// ProjectService wraps project-related business rules around the store.
// Checks run in a fixed order and the first failing check wins.
type ProjectService struct {
	store  repository.Store
	limits config.Limits
}

func NewProjectService(store repository.Store, limits config.Limits) *ProjectService {
	return &ProjectService{store: store, limits: limits}
}

// Create validates the fields, the project ceiling and name uniqueness,
// then delegates to storage. The description is optional.
func (s *ProjectService) Create(ctx context.Context, name, description string) (*model.Project, error) {
	if err := validation.NonEmpty("project name", name); err != nil {
		return nil, err
	}
	if err := validation.MaxLength("project name", name, s.limits.MaxProjectNameLength); err != nil {
		return nil, err
	}
	if err := validation.MaxLength("project description", description, s.limits.MaxProjectDescriptionLength); err != nil {
		return nil, err
	}

	count, err := s.store.CountProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if err := validation.CountCeiling("projects", count, s.limits.MaxProjects); err != nil {
		return nil, err
	}

	exists, err := s.store.ProjectNameExists(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("check project name: %w", err)
	}
	if exists {
		return nil, apperr.Duplicatef("project with name %q already exists", name)
	}

	project := &model.Project{Name: name, Description: description}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns the project or a NotFound error when the id is absent.
func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFoundf("project with id %d not found", id)
	}
	return project, nil
}

// GetByName returns the project or a NotFound error when no project uses
// the name.
func (s *ProjectService) GetByName(ctx context.Context, name string) (*model.Project, error) {
	project, err := s.store.GetProjectByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFoundf("project with name %q not found", name)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.store.GetAllProjects(ctx)
}

// Update applies a partial update. Supplied fields are validated before
// anything is written; uniqueness is re-checked excluding the project's
// own id.
func (s *ProjectService) Update(ctx context.Context, id uint, patch repository.ProjectPatch) (*model.Project, error) {
	if patch.Name != nil {
		if err := validation.NonEmpty("project name", *patch.Name); err != nil {
			return nil, err
		}
		if err := validation.MaxLength("project name", *patch.Name, s.limits.MaxProjectNameLength); err != nil {
			return nil, err
		}
		exists, err := s.store.ProjectNameExists(ctx, *patch.Name, id)
		if err != nil {
			return nil, fmt.Errorf("check project name: %w", err)
		}
		if exists {
			return nil, apperr.Duplicatef("project with name %q already exists", *patch.Name)
		}
	}
	if patch.Description != nil {
		if err := validation.MaxLength("project description", *patch.Description, s.limits.MaxProjectDescriptionLength); err != nil {
			return nil, err
		}
	}

	return s.store.UpdateProject(ctx, id, patch)
}

// Delete removes a project. A project that still owns tasks cannot be
// deleted.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperr.NotFoundf("project with id %d not found", id)
	}

	taskCount, err := s.store.CountTasks(ctx, id)
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if taskCount > 0 {
		return apperr.BusinessRulef("cannot delete project with existing tasks")
	}

	return s.store.DeleteProject(ctx, id)
}
