package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todolist/internal/apperr"
	"todolist/internal/model"
)

// runStoreTests exercises the Store contract. Both implementations must
// pass the same suite.
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	createProject := func(t *testing.T, store Store, name string) *model.Project {
		t.Helper()
		project := &model.Project{Name: name, Description: "desc"}
		require.NoError(t, store.CreateProject(ctx, project))
		return project
	}

	createTask := func(t *testing.T, store Store, projectID uint, title string, deadline *time.Time) *model.Task {
		t.Helper()
		task := &model.Task{ProjectID: projectID, Title: title, Deadline: deadline}
		require.NoError(t, store.CreateTask(ctx, task))
		return task
	}

	t.Run("create project assigns monotonic ids and timestamps", func(t *testing.T) {
		store := newStore(t)

		first := createProject(t, store, "Work")
		second := createProject(t, store, "Home")

		require.NotZero(t, first.ID)
		require.Greater(t, second.ID, first.ID)
		require.False(t, first.CreatedAt.IsZero())
	})

	t.Run("get absent project returns nil without error", func(t *testing.T) {
		store := newStore(t)

		project, err := store.GetProject(ctx, 999)
		require.NoError(t, err)
		require.Nil(t, project)
	})

	t.Run("get project by name is case-insensitive", func(t *testing.T) {
		store := newStore(t)
		created := createProject(t, store, "Work")

		found, err := store.GetProjectByName(ctx, "wOrK")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, created.ID, found.ID)

		missing, err := store.GetProjectByName(ctx, "nothing")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("project name exists honors exclude id", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")

		exists, err := store.ProjectNameExists(ctx, "WORK", 0)
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = store.ProjectNameExists(ctx, "work", project.ID)
		require.NoError(t, err)
		require.False(t, exists)

		exists, err = store.ProjectNameExists(ctx, "other", 0)
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("duplicate project name is rejected", func(t *testing.T) {
		store := newStore(t)
		createProject(t, store, "Work")

		err := store.CreateProject(ctx, &model.Project{Name: "Work"})
		require.Error(t, err)
		require.Equal(t, apperr.Duplicate, apperr.KindOf(err))
	})

	t.Run("update project applies only supplied fields", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")

		name := "Renamed"
		updated, err := store.UpdateProject(ctx, project.ID, ProjectPatch{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Renamed", updated.Name)
		require.Equal(t, "desc", updated.Description)

		_, err = store.UpdateProject(ctx, 999, ProjectPatch{Name: &name})
		require.Error(t, err)
		require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("delete project", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")

		require.NoError(t, store.DeleteProject(ctx, project.ID))

		gone, err := store.GetProject(ctx, project.ID)
		require.NoError(t, err)
		require.Nil(t, gone)

		err = store.DeleteProject(ctx, project.ID)
		require.Error(t, err)
		require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("deleted name becomes available again", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")
		require.NoError(t, store.DeleteProject(ctx, project.ID))

		replacement := createProject(t, store, "Work")
		require.Greater(t, replacement.ID, project.ID)
	})

	t.Run("create task defaults to todo", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")

		task := createTask(t, store, project.ID, "Write report", nil)
		require.NotZero(t, task.ID)
		require.Equal(t, model.StatusTodo, task.Status)
		require.Nil(t, task.ClosedAt)
	})

	t.Run("get tasks by project", func(t *testing.T) {
		store := newStore(t)
		work := createProject(t, store, "Work")
		home := createProject(t, store, "Home")

		createTask(t, store, work.ID, "a", nil)
		createTask(t, store, work.ID, "b", nil)
		createTask(t, store, home.ID, "c", nil)

		tasks, err := store.GetTasksByProject(ctx, work.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		count, err := store.CountTasks(ctx, work.ID)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		total, err := store.CountTasks(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, 3, total)
	})

	t.Run("overdue query filters by deadline, status and closed_at", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")
		now := time.Now()
		past := now.Add(-time.Hour)
		future := now.Add(time.Hour)

		overdue := createTask(t, store, project.ID, "overdue", &past)
		createTask(t, store, project.ID, "future", &future)
		createTask(t, store, project.ID, "no deadline", nil)

		doneTask := createTask(t, store, project.ID, "done", &past)
		done := model.StatusDone
		_, err := store.UpdateTask(ctx, doneTask.ID, TaskPatch{Status: &done})
		require.NoError(t, err)

		closedTask := createTask(t, store, project.ID, "closed", &past)
		_, err = store.CloseTask(ctx, closedTask.ID, now)
		require.NoError(t, err)

		tasks, err := store.GetOverdueTasks(ctx, now)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, overdue.ID, tasks[0].ID)
	})

	t.Run("close task stamps closed_at once", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")
		task := createTask(t, store, project.ID, "Write report", nil)

		now := time.Now()
		closed, err := store.CloseTask(ctx, task.ID, now)
		require.NoError(t, err)
		require.Equal(t, model.StatusDone, closed.Status)
		require.NotNil(t, closed.ClosedAt)

		again, err := store.CloseTask(ctx, task.ID, now.Add(time.Hour))
		require.NoError(t, err)
		require.NotNil(t, again.ClosedAt)
		require.WithinDuration(t, *closed.ClosedAt, *again.ClosedAt, time.Second)

		_, err = store.CloseTask(ctx, 999, now)
		require.Error(t, err)
		require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("status update to done stamps closed_at", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")
		task := createTask(t, store, project.ID, "Write report", nil)

		done := model.StatusDone
		updated, err := store.UpdateTask(ctx, task.ID, TaskPatch{Status: &done})
		require.NoError(t, err)
		require.Equal(t, model.StatusDone, updated.Status)
		require.NotNil(t, updated.ClosedAt)
	})

	t.Run("partial task update leaves other fields untouched", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")
		task := createTask(t, store, project.ID, "Write report", nil)

		description := "for the weekly sync"
		updated, err := store.UpdateTask(ctx, task.ID, TaskPatch{Description: &description})
		require.NoError(t, err)
		require.Equal(t, "Write report", updated.Title)
		require.Equal(t, description, updated.Description)
		require.Equal(t, model.StatusTodo, updated.Status)

		_, err = store.UpdateTask(ctx, 999, TaskPatch{Description: &description})
		require.Error(t, err)
		require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("delete task", func(t *testing.T) {
		store := newStore(t)
		project := createProject(t, store, "Work")
		task := createTask(t, store, project.ID, "Write report", nil)

		require.NoError(t, store.DeleteTask(ctx, task.ID))

		gone, err := store.GetTask(ctx, task.ID)
		require.NoError(t, err)
		require.Nil(t, gone)

		err = store.DeleteTask(ctx, task.ID)
		require.Error(t, err)
		require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}
