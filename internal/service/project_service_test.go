package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"todolist/internal/apperr"
	"todolist/internal/config"
	"todolist/internal/repository"
)

func testLimits() config.Limits {
	return config.Limits{
		MaxProjects:                 3,
		MaxTasksPerProject:          2,
		MaxProjectNameLength:        30,
		MaxProjectDescriptionLength: 150,
		MaxTaskTitleLength:          30,
		MaxTaskDescriptionLength:    150,
	}
}

func newProjectService() (*ProjectService, repository.Store) {
	store := repository.NewMemoryStore()
	return NewProjectService(store, testLimits()), store
}

func TestProjectServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	first, err := svc.Create(ctx, "Work", "desc")
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Equal(t, "Work", first.Name)

	second, err := svc.Create(ctx, "Home", "")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestProjectServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	_, err := svc.Create(ctx, "  ", "desc")
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
	require.Contains(t, err.Error(), "project name cannot be empty")

	_, err = svc.Create(ctx, strings.Repeat("x", 31), "desc")
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Create(ctx, "Work", strings.Repeat("x", 151))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestProjectServiceCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	_, err := svc.Create(ctx, "Work", "desc")
	require.NoError(t, err)

	// Uniqueness is case-insensitive.
	_, err = svc.Create(ctx, "WORK", "other")
	require.Equal(t, apperr.Duplicate, apperr.KindOf(err))
}

func TestProjectServiceCreateCeiling(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, name, "")
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, "d", "")
	require.Equal(t, apperr.BusinessRule, apperr.KindOf(err))
	require.Contains(t, err.Error(), "cannot create more than 3 projects")
}

func TestProjectServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	work, err := svc.Create(ctx, "Work", "desc")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Home", "")
	require.NoError(t, err)

	// Renaming over another project's name fails.
	name := "home"
	_, err = svc.Update(ctx, work.ID, repository.ProjectPatch{Name: &name})
	require.Equal(t, apperr.Duplicate, apperr.KindOf(err))

	// Renaming to the project's own name (different case) is allowed.
	own := "WORK"
	updated, err := svc.Update(ctx, work.ID, repository.ProjectPatch{Name: &own})
	require.NoError(t, err)
	require.Equal(t, "WORK", updated.Name)

	// Description-only update leaves the name alone.
	description := "new description"
	updated, err = svc.Update(ctx, work.ID, repository.ProjectPatch{Description: &description})
	require.NoError(t, err)
	require.Equal(t, "WORK", updated.Name)
	require.Equal(t, description, updated.Description)
}

func TestProjectServiceUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	before, err := svc.Create(ctx, "Work", "desc")
	require.NoError(t, err)

	name := "Other"
	_, err = svc.Update(ctx, 999, repository.ProjectPatch{Name: &name})
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// The failed update must not have altered any other row.
	after, err := svc.Get(ctx, before.ID)
	require.NoError(t, err)
	require.Equal(t, before.Name, after.Name)
}

func TestProjectServiceDelete(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	projects := NewProjectService(store, testLimits())
	tasks := NewTaskService(store, testLimits())

	project, err := projects.Create(ctx, "Work", "desc")
	require.NoError(t, err)

	_, err = tasks.Create(ctx, TaskInput{Title: "Write report", ProjectID: project.ID})
	require.NoError(t, err)

	err = projects.Delete(ctx, project.ID)
	require.Equal(t, apperr.BusinessRule, apperr.KindOf(err))
	require.Contains(t, err.Error(), "cannot delete project with existing tasks")

	empty, err := projects.Create(ctx, "Empty", "")
	require.NoError(t, err)
	require.NoError(t, projects.Delete(ctx, empty.ID))

	err = projects.Delete(ctx, 999)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestProjectServiceGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProjectService()

	created, err := svc.Create(ctx, "Work", "desc")
	require.NoError(t, err)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, found.Name)

	byName, err := svc.GetByName(ctx, "work")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	_, err = svc.Get(ctx, 999)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
