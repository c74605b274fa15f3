// Package cli wires configuration, storage and services into the cobra
// command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"todolist/internal/config"
	"todolist/internal/repository"
	"todolist/internal/service"
)

// app holds the shared dependencies built once per invocation and torn
// down when the command finishes.
type app struct {
	cfg      config.Config
	store    repository.Store
	projects *service.ProjectService
	tasks    *service.TaskService
	closer   func() error
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		database string
		memory   bool
	)

	root := &cobra.Command{
		Use:          "todolist",
		Short:        "Manage projects and tasks",
		Long:         "A task tracker exposing projects and tasks over a REST API and this command-line tool.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if database != "" {
				cfg.DatabaseURL = database
			}
			if memory {
				cfg.StorageDriver = config.DriverMemory
			}
			a.cfg = cfg
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&database, "database", "", "path to the SQLite database (overrides DATABASE_URL)")
	root.PersistentFlags().BoolVar(&memory, "memory", false, "use the volatile in-memory store")

	root.AddCommand(
		newServeCmd(a),
		newProjectCmd(a),
		newTaskCmd(a),
		newAutocloseCmd(a),
		newLimitsCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

func (a *app) open() error {
	switch a.cfg.StorageDriver {
	case config.DriverMemory:
		a.store = repository.NewMemoryStore()
	default:
		db, err := repository.NewDB(a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.store = repository.NewGormStore(db)
		a.closer = func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
	}

	a.projects = service.NewProjectService(a.store, a.cfg.Limits)
	a.tasks = service.NewTaskService(a.store, a.cfg.Limits)
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDeadline accepts RFC3339, "YYYY-MM-DD HH:MM" or a bare date in
// local time. Empty input means no deadline.
func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid deadline %q, expected e.g. 2006-01-02 15:04", raw)
}
