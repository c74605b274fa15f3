package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/service"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run an interactive menu session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := &interactiveSession{
				app:     a,
				cmd:     cmd,
				scanner: bufio.NewScanner(cmd.InOrStdin()),
			}
			session.run()
			return nil
		},
	}
}

// interactiveSession drives a menu loop over stdin. With the in-memory
// store, data lives only for the session.
type interactiveSession struct {
	app     *app
	cmd     *cobra.Command
	scanner *bufio.Scanner
	done    bool
}

func (s *interactiveSession) run() {
	for !s.done {
		s.printMenu()
		switch strings.ToLower(s.prompt("Select an option: ")) {
		case "1":
			s.createProject()
		case "2":
			s.listProjects()
		case "3":
			s.editProject()
		case "4":
			s.deleteProject()
		case "5":
			s.addTask()
		case "6":
			s.listTasks()
		case "7":
			s.changeTaskStatus()
		case "8":
			s.closeTask()
		case "9":
			s.deleteTask()
		case "o":
			s.listOverdue()
		case "l":
			s.showLimits()
		case "0":
			s.cmd.Println("Goodbye!")
			s.done = true
		default:
			if !s.done {
				s.cmd.Println("Unknown option.")
			}
		}
	}
}

func (s *interactiveSession) printMenu() {
	s.cmd.Println("\n=== TodoList ===")
	s.cmd.Println("1. Create Project")
	s.cmd.Println("2. List Projects")
	s.cmd.Println("3. Edit Project")
	s.cmd.Println("4. Delete Project")
	s.cmd.Println("5. Add Task")
	s.cmd.Println("6. List Tasks")
	s.cmd.Println("7. Change Task Status")
	s.cmd.Println("8. Close Task")
	s.cmd.Println("9. Delete Task")
	s.cmd.Println("O. List Overdue Tasks")
	s.cmd.Println("L. Show Validation Limits")
	s.cmd.Println("0. Exit")
}

func (s *interactiveSession) prompt(label string) string {
	s.cmd.Print(label)
	if !s.scanner.Scan() {
		s.done = true
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

func (s *interactiveSession) promptID(label, entity string) (uint, bool) {
	id, err := parseID(s.prompt(label), entity)
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return 0, false
	}
	return id, true
}

func (s *interactiveSession) createProject() {
	name := s.prompt("Project name: ")
	description := s.prompt("Project description: ")

	project, err := s.app.projects.Create(s.cmd.Context(), name, description)
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Printf("Project %q created (id %d)\n", project.Name, project.ID)
}

func (s *interactiveSession) listProjects() {
	projects, err := s.app.projects.List(s.cmd.Context())
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	if len(projects) == 0 {
		s.cmd.Println("No projects found.")
		return
	}
	for _, project := range projects {
		printProject(s.cmd, project)
	}
}

func (s *interactiveSession) editProject() {
	id, ok := s.promptID("Project ID to edit: ", "project")
	if !ok {
		return
	}
	name := s.prompt("New project name: ")
	description := s.prompt("New project description: ")

	project, err := s.app.projects.Update(s.cmd.Context(), id, repository.ProjectPatch{
		Name:        &name,
		Description: &description,
	})
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Printf("Project %q updated\n", project.Name)
}

func (s *interactiveSession) deleteProject() {
	id, ok := s.promptID("Project ID to delete: ", "project")
	if !ok {
		return
	}
	if !strings.EqualFold(s.prompt("Are you sure? (y/N): "), "y") {
		s.cmd.Println("Deletion cancelled.")
		return
	}
	if err := s.app.projects.Delete(s.cmd.Context(), id); err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Println("Project deleted")
}

func (s *interactiveSession) addTask() {
	projectID, ok := s.promptID("Project ID: ", "project")
	if !ok {
		return
	}
	title := s.prompt("Task title: ")
	description := s.prompt("Task description: ")
	deadline, err := parseDeadline(s.prompt("Deadline (optional, e.g. 2006-01-02 15:04): "))
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}

	task, err := s.app.tasks.Create(s.cmd.Context(), service.TaskInput{
		Title:       title,
		ProjectID:   projectID,
		Description: description,
		Deadline:    deadline,
	})
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Printf("Task %q created (id %d)\n", task.Title, task.ID)
}

func (s *interactiveSession) listTasks() {
	projectID, ok := s.promptID("Project ID: ", "project")
	if !ok {
		return
	}
	tasks, err := s.app.tasks.ListByProject(s.cmd.Context(), projectID)
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		s.cmd.Println("No tasks found.")
		return
	}
	for _, task := range tasks {
		printTask(s.cmd, task)
	}
}

func (s *interactiveSession) changeTaskStatus() {
	id, ok := s.promptID("Task ID: ", "task")
	if !ok {
		return
	}
	status := s.prompt("New status (todo/doing/done): ")

	task, err := s.app.tasks.ChangeStatus(s.cmd.Context(), id, model.Status(status))
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Printf("Task %q is now %s\n", task.Title, task.Status)
}

func (s *interactiveSession) closeTask() {
	id, ok := s.promptID("Task ID to close: ", "task")
	if !ok {
		return
	}
	task, err := s.app.tasks.Close(s.cmd.Context(), id)
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Printf("Task %q closed\n", task.Title)
}

func (s *interactiveSession) deleteTask() {
	id, ok := s.promptID("Task ID to delete: ", "task")
	if !ok {
		return
	}
	if err := s.app.tasks.Delete(s.cmd.Context(), id); err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	s.cmd.Println("Task deleted")
}

func (s *interactiveSession) listOverdue() {
	tasks, err := s.app.tasks.ListOverdue(s.cmd.Context())
	if err != nil {
		s.cmd.Printf("Error: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		s.cmd.Println("No overdue tasks.")
		return
	}
	for _, task := range tasks {
		printTask(s.cmd, task)
	}
}

func (s *interactiveSession) showLimits() {
	limits := s.app.cfg.Limits
	s.cmd.Printf("Max projects: %d\n", limits.MaxProjects)
	s.cmd.Printf("Max tasks per project: %d\n", limits.MaxTasksPerProject)
	s.cmd.Printf("Max project name length: %d\n", limits.MaxProjectNameLength)
	s.cmd.Printf("Max project description length: %d\n", limits.MaxProjectDescriptionLength)
	s.cmd.Printf("Max task title length: %d\n", limits.MaxTaskTitleLength)
	s.cmd.Printf("Max task description length: %d\n", limits.MaxTaskDescriptionLength)
}
