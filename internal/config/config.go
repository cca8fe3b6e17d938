package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the planner.
type Config struct {
	DBPath           string
	OwnerID          string
	HorizonDays      int
	BatchSize        int
	FetchConcurrency int
	LogUseCases      bool
	Location         *time.Location
}

// Default returns a Config with the built-in defaults. DBPath is empty
// until Load resolves it against the home directory.
func Default() Config {
	return Config{
		OwnerID:          "local",
		HorizonDays:      365,
		BatchSize:        50,
		FetchConcurrency: 4,
		Location:         time.Local,
	}
}

// Load reads configuration from the environment, falling back to defaults
// for unset or invalid values. A .env file in the working directory is
// loaded first when present; variables already set in the process win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	cfg := Default()

	if v := os.Getenv("STUDYPLANNER_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = filepath.Join(home, ".studyplanner", "planner.db")
	}
	if v := os.Getenv("STUDYPLANNER_OWNER"); v != "" {
		cfg.OwnerID = v
	}
	applyPositiveInt(&cfg.HorizonDays, "STUDYPLANNER_HORIZON_DAYS")
	applyPositiveInt(&cfg.BatchSize, "STUDYPLANNER_BATCH_SIZE")
	applyPositiveInt(&cfg.FetchConcurrency, "STUDYPLANNER_FETCH_CONCURRENCY")
	if v := os.Getenv("STUDYPLANNER_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYPLANNER_TZ"); v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			cfg.Location = loc
		}
	}

	return cfg, nil
}

func applyPositiveInt(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
