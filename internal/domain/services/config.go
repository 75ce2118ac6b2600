package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// ConfigService implements the configuration service business logic
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig resolves the effective configuration.
// Precedence: defaults → global (or explicit file) → local → environment → flags.
func (s *ConfigService) LoadConfig(ctx context.Context, opts ports.LoadOptions) (*entities.Config, error) {
	configs := []*entities.Config{s.GetDefaultConfig()}

	var (
		fileConfig *entities.Config
		err        error
	)
	if opts.ExplicitPath != "" {
		fileConfig, err = s.loader.LoadFile(ctx, opts.ExplicitPath)
	} else {
		fileConfig, err = s.loader.LoadGlobal(ctx)
	}
	if err != nil {
		return nil, entities.NewReportError(entities.KindConfiguration, "loading config file", err)
	}
	if fileConfig != nil {
		configs = append(configs, fileConfig)
	}

	if opts.LogDir != "" {
		localConfig, err := s.loader.LoadLocal(ctx, opts.LogDir)
		if err != nil {
			return nil, entities.NewReportError(entities.KindConfiguration, "loading local config", err)
		}
		if localConfig != nil {
			configs = append(configs, localConfig)
		}
	}

	merged := s.merger.Merge(configs...)
	withEnv := s.merger.ApplyEnvVars(merged)
	final := s.merger.ApplyFlags(withEnv, opts.Flags)

	if err := s.ValidateConfig(final); err != nil {
		return nil, entities.NewReportError(entities.KindConfiguration, "final config validation", err)
	}

	return final, nil
}

// GetDefaultConfig returns the default configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	// Merge with no arguments returns the adapter's defaults
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateGlobalConfig writes the global configuration file with defaults and returns its path
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) (string, error) {
	globalPath := s.loader.GetGlobalPath()
	if err := s.loader.CreateDefaults(ctx, globalPath); err != nil {
		return "", fmt.Errorf("creating %s: %w", globalPath, err)
	}
	return globalPath, nil
}

// Ensure ConfigService implements ports.ConfigService
var _ ports.ConfigService = (*ConfigService)(nil)
