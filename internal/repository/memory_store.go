package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"todolist/internal/apperr"
	"todolist/internal/model"
)

// MemoryStore is a volatile map-based Store implementation. Ids are
// monotonic per entity type and never reused within the store's lifetime.
// It is meant for a single-process, single-goroutine CLI session and is
// not safe for concurrent mutation.
type MemoryStore struct {
	projects       map[uint]model.Project
	tasks          map[uint]model.Task
	projectCounter uint
	taskCounter    uint
	nameIndex      map[string]uint // lowercased project name -> id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:  make(map[uint]model.Project),
		tasks:     make(map[uint]model.Task),
		nameIndex: make(map[string]uint),
	}
}

func (s *MemoryStore) CreateProject(_ context.Context, p *model.Project) error {
	key := strings.ToLower(p.Name)
	if _, ok := s.nameIndex[key]; ok {
		return apperr.Duplicatef("project with name %q already exists", p.Name)
	}

	s.projectCounter++
	p.ID = s.projectCounter
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	s.projects[p.ID] = *p
	s.nameIndex[key] = p.ID
	return nil
}

func (s *MemoryStore) GetProject(_ context.Context, id uint) (*model.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	s.attachTasks(&project)
	return &project, nil
}

func (s *MemoryStore) GetAllProjects(_ context.Context) ([]model.Project, error) {
	projects := make([]model.Project, 0, len(s.projects))
	for _, project := range s.projects {
		s.attachTasks(&project)
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (s *MemoryStore) GetProjectByName(_ context.Context, name string) (*model.Project, error) {
	id, ok := s.nameIndex[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	project := s.projects[id]
	s.attachTasks(&project)
	return &project, nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, id uint, patch ProjectPatch) (*model.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, apperr.NotFoundf("project with id %d not found", id)
	}

	if patch.Name != nil {
		delete(s.nameIndex, strings.ToLower(project.Name))
		project.Name = *patch.Name
		s.nameIndex[strings.ToLower(project.Name)] = id
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	project.UpdatedAt = time.Now()

	s.projects[id] = project
	return &project, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id uint) error {
	project, ok := s.projects[id]
	if !ok {
		return apperr.NotFoundf("project with id %d not found", id)
	}

	delete(s.nameIndex, strings.ToLower(project.Name))
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) ProjectNameExists(_ context.Context, name string, excludeID uint) (bool, error) {
	id, ok := s.nameIndex[strings.ToLower(name)]
	if !ok {
		return false, nil
	}
	if excludeID != 0 && id == excludeID {
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) CountProjects(_ context.Context) (int, error) {
	return len(s.projects), nil
}

func (s *MemoryStore) CreateTask(_ context.Context, t *model.Task) error {
	if t.Status == "" {
		t.Status = model.StatusTodo
	}

	s.taskCounter++
	t.ID = s.taskCounter
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt

	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStore) GetTask(_ context.Context, id uint) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (s *MemoryStore) GetAllTasks(_ context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sortTasks(tasks)
	return tasks, nil
}

func (s *MemoryStore) GetTasksByProject(_ context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, task)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

func (s *MemoryStore) GetOverdueTasks(_ context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	for _, task := range s.tasks {
		if task.OverdueAt(now) {
			tasks = append(tasks, task)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, apperr.NotFoundf("task with id %d not found", id)
	}

	now := time.Now()
	applyTaskPatch(&task, patch, now)
	task.UpdatedAt = now

	s.tasks[id] = task
	return &task, nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id uint) error {
	if _, ok := s.tasks[id]; !ok {
		return apperr.NotFoundf("task with id %d not found", id)
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) CloseTask(_ context.Context, id uint, now time.Time) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, apperr.NotFoundf("task with id %d not found", id)
	}

	if task.Status == model.StatusDone && task.ClosedAt != nil {
		return &task, nil
	}

	task.Status = model.StatusDone
	if task.ClosedAt == nil {
		task.ClosedAt = &now
	}
	task.UpdatedAt = now

	s.tasks[id] = task
	return &task, nil
}

func (s *MemoryStore) CountTasks(_ context.Context, projectID uint) (int, error) {
	if projectID == 0 {
		return len(s.tasks), nil
	}
	count := 0
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) attachTasks(p *model.Project) {
	tasks, _ := s.GetTasksByProject(context.Background(), p.ID)
	p.Tasks = tasks
}

func sortTasks(tasks []model.Task) {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
}
