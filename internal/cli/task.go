package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/service"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskEditCmd(a),
		newTaskStatusCmd(a),
		newTaskCloseCmd(a),
		newTaskDeleteCmd(a),
		newTaskOverdueCmd(a),
	)
	return cmd
}

func newTaskAddCmd(a *app) *cobra.Command {
	var (
		projectID   uint
		description string
		deadline    string
	)
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := parseDeadline(deadline)
			if err != nil {
				return err
			}

			task, err := a.tasks.Create(cmd.Context(), service.TaskInput{
				Title:       args[0],
				ProjectID:   projectID,
				Description: description,
				Deadline:    due,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Task %q created (id %d)\n", task.Title, task.ID)
			return nil
		},
	}
	cmd.Flags().UintVar(&projectID, "project", 0, "id of the owning project")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "task deadline, e.g. \"2006-01-02 15:04\"")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	var projectID uint
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally for one project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tasks []model.Task
				err   error
			)
			if cmd.Flags().Changed("project") {
				tasks, err = a.tasks.ListByProject(cmd.Context(), projectID)
			} else {
				tasks, err = a.tasks.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				cmd.Println("No tasks found.")
				return nil
			}
			for _, task := range tasks {
				printTask(cmd, task)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&projectID, "project", 0, "only list tasks of this project")
	return cmd
}

func newTaskEditCmd(a *app) *cobra.Command {
	var (
		title       string
		description string
		deadline    string
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			var patch repository.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("deadline") {
				due, err := parseDeadline(deadline)
				if err != nil {
					return err
				}
				patch.Deadline = due
			}
			if patch.Title == nil && patch.Description == nil && patch.Deadline == nil {
				return fmt.Errorf("nothing to update, pass --title, --description or --deadline")
			}

			task, err := a.tasks.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			cmd.Printf("Task %q updated\n", task.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new task title")
	cmd.Flags().StringVar(&description, "description", "", "new task description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "new task deadline")
	return cmd
}

func newTaskStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Change a task's status (todo, doing or done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			task, err := a.tasks.ChangeStatus(cmd.Context(), id, model.Status(args[1]))
			if err != nil {
				return err
			}
			cmd.Printf("Task %q is now %s\n", task.Title, task.Status)
			return nil
		},
	}
}

func newTaskCloseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "close ID",
		Short: "Close a task (mark done and stamp the close time)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			task, err := a.tasks.Close(cmd.Context(), id)
			if err != nil {
				return err
			}
			cmd.Printf("Task %q closed\n", task.Title)
			return nil
		},
	}
}

func newTaskDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			if err := a.tasks.Delete(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Println("Task deleted")
			return nil
		},
	}
}

func newTaskOverdueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.tasks.ListOverdue(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				cmd.Println("No overdue tasks.")
				return nil
			}
			for _, task := range tasks {
				printTask(cmd, task)
			}
			return nil
		},
	}
}

func printTask(cmd *cobra.Command, task model.Task) {
	line := fmt.Sprintf("ID: %d | [%s] %s | Project: %d", task.ID, task.Status, task.Title, task.ProjectID)
	if task.Deadline != nil {
		line += " | Deadline: " + task.Deadline.Format("2006-01-02 15:04")
	}
	cmd.Println(line)
	if task.Description != "" {
		cmd.Printf("   Description: %s\n", task.Description)
	}
}
