package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Limits holds the configured validation ceilings. They are read once at
// startup and passed to the services, never consulted globally.
type Limits struct {
	MaxProjects                 int
	MaxTasksPerProject          int
	MaxProjectNameLength        int
	MaxProjectDescriptionLength int
	MaxTaskTitleLength          int
	MaxTaskDescriptionLength    int
}

// Config keeps runtime settings for the application.
type Config struct {
	DatabaseURL       string
	StorageDriver     string
	HTTPAddr          string
	AutocloseInterval time.Duration
	Limits            Limits
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:       getEnv("DATABASE_URL", "todolist.db"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		AutocloseInterval: time.Duration(getEnvAsInt("AUTOCLOSE_INTERVAL_MINUTES", 0)) * time.Minute,
		Limits: Limits{
			MaxProjects:                 getEnvAsInt("MAX_NUMBER_OF_PROJECTS", 10),
			MaxTasksPerProject:          getEnvAsInt("MAX_NUMBER_OF_TASKS_PER_PROJECT", 50),
			MaxProjectNameLength:        getEnvAsInt("MAX_PROJECT_NAME_LENGTH", 30),
			MaxProjectDescriptionLength: getEnvAsInt("MAX_PROJECT_DESCRIPTION_LENGTH", 150),
			MaxTaskTitleLength:          getEnvAsInt("MAX_TASK_TITLE_LENGTH", 30),
			MaxTaskDescriptionLength:    getEnvAsInt("MAX_TASK_DESCRIPTION_LENGTH", 150),
		},
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverMemory:
	default:
		return cfg, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
