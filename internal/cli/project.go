package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"todolist/internal/model"
	"todolist/internal/repository"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectCreateCmd(a),
		newProjectListCmd(a),
		newProjectEditCmd(a),
		newProjectDeleteCmd(a),
	)
	return cmd
}

func newProjectCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME [DESCRIPTION]",
		Short: "Create a new project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) == 2 {
				description = args[1]
			}

			project, err := a.projects.Create(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			cmd.Printf("Project %q created (id %d)\n", project.Name, project.ID)
			return nil
		},
	}
}

func newProjectListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				cmd.Println("No projects found.")
				return nil
			}
			for _, project := range projects {
				printProject(cmd, project)
			}
			return nil
		},
	}
}

func newProjectEditCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "project")
			if err != nil {
				return err
			}

			var patch repository.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if patch.Name == nil && patch.Description == nil {
				return fmt.Errorf("nothing to update, pass --name or --description")
			}

			project, err := a.projects.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			cmd.Printf("Project %q updated\n", project.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new project name")
	cmd.Flags().StringVar(&description, "description", "", "new project description")
	return cmd
}

func newProjectDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project without tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "project")
			if err != nil {
				return err
			}
			if err := a.projects.Delete(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Println("Project deleted")
			return nil
		},
	}
}

func printProject(cmd *cobra.Command, project model.Project) {
	cmd.Printf("ID: %d | Name: %s | Tasks: %d | Created: %s\n",
		project.ID, project.Name, len(project.Tasks), project.CreatedAt.Format("2006-01-02"))
	if project.Description != "" {
		cmd.Printf("   Description: %s\n", project.Description)
	}
}

func parseID(raw, entity string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", entity, raw)
	}
	return uint(id), nil
}
