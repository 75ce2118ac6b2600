package ports

import (
	"context"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// ConfigLoader reads configuration files
type ConfigLoader interface {
	// LoadGlobal loads the per-user configuration file; nil if absent
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads simreport.toml from the directory holding the log; nil if absent
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// LoadFile loads an explicitly named configuration file
	LoadFile(ctx context.Context, path string) (*entities.Config, error)

	// CreateDefaults writes a default configuration file at path
	CreateDefaults(ctx context.Context, path string) error

	// GetGlobalPath returns the path to the global configuration file
	GetGlobalPath() string
}

// ConfigMerger combines configuration layers
type ConfigMerger interface {
	// Merge merges configurations with later configs taking precedence
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies CLI flag overrides to a configuration
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies SIMREPORT_* environment overrides to a configuration
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService resolves the effective configuration for a run
type ConfigService interface {
	// LoadConfig resolves defaults, files, environment and flags for a log directory
	LoadConfig(ctx context.Context, opts LoadOptions) (*entities.Config, error)

	// GetDefaultConfig returns the default configuration
	GetDefaultConfig() *entities.Config

	// CreateGlobalConfig writes the global configuration file with defaults
	CreateGlobalConfig(ctx context.Context) (string, error)
}

// LoadOptions selects the configuration sources for LoadConfig
type LoadOptions struct {
	// LogDir is searched for a local simreport.toml
	LogDir string
	// ExplicitPath replaces the global file when set
	ExplicitPath string
	// Flags holds CLI overrides keyed by flag name
	Flags map[string]interface{}
}
