package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Report: entities.ReportConfig{
			Format:       string(entities.FormatText),
			SummaryWidth: 8,
			TableWidth:   11,
			Strict:       false,
		},
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 5,
			CORSOrigins: []string{
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			},
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: 500,
			DebounceMs: 500,
		},
		Logging: entities.LoggingConfig{
			Level:      string(entities.LogLevelWarn),
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 5,
		},
	}
}

// getEnvInt returns an environment variable as int
func getEnvInt(key string) (int, bool) {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue, true
		}
	}
	return 0, false
}

// getEnvBool returns an environment variable as bool
func getEnvBool(key string) (bool, bool) {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue, true
		}
	}
	return false, false
}

// getEnvSlice splits a comma separated environment variable
func getEnvSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
