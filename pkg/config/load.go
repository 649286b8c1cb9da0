package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. The first of envFilePath
// that can be found (searching parent directories) is loaded first; with
// no paths a .env in the working directory is tried. A missing file is
// not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Debug("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		foundPath, err := findEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Warn("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Debug("Loaded environment file", "path", foundPath)
		return loadFromEnv()
	}

	logger.Debug("No environment file found, using process environment")
	return loadFromEnv()
}

// findEnvFile resolves name against the working directory and then each
// of its parents. An absolute name is only checked for existence.
func findEnvFile(name string) (string, error) {
	if name == "" {
		name = ".env"
	}
	if filepath.IsAbs(name) {
		_, err := os.Stat(name)
		return name, err
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for ; ; dir = filepath.Dir(dir) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		if filepath.Dir(dir) == dir {
			return "", os.ErrNotExist
		}
	}
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"db_driver", cfg.DB.Driver,
		"db_path", cfg.DB.Path,
		"db_url", maskValue(cfg.DB.Url),
		"log_level", cfg.Log.Level,
		"log_file", cfg.Log.File,
	)
	return &cfg, nil
}

func (a *App) validate() error {
	if !slices.Contains([]string{DriverSQLite, DriverPostgres}, a.DB.Driver) {
		return fmt.Errorf("unsupported database driver %q", a.DB.Driver)
	}
	if a.DB.Driver == DriverSQLite && a.DB.Path == "" {
		return fmt.Errorf("%s_DATABASE_PATH must not be empty", envPrefix)
	}
	if a.DB.Driver == DriverPostgres && a.DB.Url == "" {
		return fmt.Errorf("%s_DATABASE_URL is required for the postgres driver", envPrefix)
	}
	if !slices.Contains([]string{"text", "json", "logfmt"}, a.Log.Format) {
		return fmt.Errorf("unsupported log format %q", a.Log.Format)
	}
	return nil
}

func maskValue(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
