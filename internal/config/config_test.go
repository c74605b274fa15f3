package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "todolist.db", cfg.DatabaseURL)
	require.Equal(t, DriverSQLite, cfg.StorageDriver)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Zero(t, cfg.AutocloseInterval)

	require.Equal(t, 10, cfg.Limits.MaxProjects)
	require.Equal(t, 50, cfg.Limits.MaxTasksPerProject)
	require.Equal(t, 30, cfg.Limits.MaxProjectNameLength)
	require.Equal(t, 150, cfg.Limits.MaxProjectDescriptionLength)
	require.Equal(t, 30, cfg.Limits.MaxTaskTitleLength)
	require.Equal(t, 150, cfg.Limits.MaxTaskDescriptionLength)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_NUMBER_OF_PROJECTS", "3")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("AUTOCLOSE_INTERVAL_MINUTES", "15")
	t.Setenv("DATABASE_URL", "data/app.db")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 3, cfg.Limits.MaxProjects)
	require.Equal(t, DriverMemory, cfg.StorageDriver)
	require.Equal(t, 15*time.Minute, cfg.AutocloseInterval)
	require.Equal(t, "data/app.db", cfg.DatabaseURL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown STORAGE_DRIVER")
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("MAX_NUMBER_OF_PROJECTS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Limits.MaxProjects)
}
