package config

import (
	"os"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	if result == nil {
		result = GetDefaultConfig()
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Report.Format = format
	}

	if strict, ok := flags["strict"].(bool); ok {
		result.Report.Strict = strict
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
	}

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if format := os.Getenv("SIMREPORT_FORMAT"); format != "" {
		result.Report.Format = format
	}
	if width, ok := getEnvInt("SIMREPORT_SUMMARY_WIDTH"); ok && width > 0 {
		result.Report.SummaryWidth = width
	}
	if width, ok := getEnvInt("SIMREPORT_TABLE_WIDTH"); ok && width > 0 {
		result.Report.TableWidth = width
	}
	if strict, ok := getEnvBool("SIMREPORT_STRICT"); ok {
		result.Report.Strict = strict
	}

	if host := os.Getenv("SIMREPORT_HOST"); host != "" {
		result.Server.Host = host
	}
	if port, ok := getEnvInt("SIMREPORT_PORT"); ok && port > 0 {
		result.Server.Port = port
	}
	if origins := getEnvSlice("SIMREPORT_CORS_ORIGINS"); len(origins) > 0 {
		result.Server.CORSOrigins = origins
	}

	if interval, ok := getEnvInt("SIMREPORT_WATCH_INTERVAL"); ok && interval > 0 {
		result.Watcher.IntervalMs = interval
	}

	if level := os.Getenv("SIMREPORT_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}
	if jsonFormat, ok := getEnvBool("SIMREPORT_LOG_JSON"); ok {
		result.Logging.JSONFormat = jsonFormat
	}
	if file := os.Getenv("SIMREPORT_LOG_FILE"); file != "" {
		result.Logging.File = file
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	if source.Report.Format != "" {
		target.Report.Format = source.Report.Format
	}
	if source.Report.SummaryWidth != 0 {
		target.Report.SummaryWidth = source.Report.SummaryWidth
	}
	if source.Report.TableWidth != 0 {
		target.Report.TableWidth = source.Report.TableWidth
	}
	// TOML cannot tell false from unset, so a file can only switch strict mode on
	target.Report.Strict = target.Report.Strict || source.Report.Strict

	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = append([]string(nil), source.Server.CORSOrigins...)
	}

	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	target.Logging.Verbose = target.Logging.Verbose || source.Logging.Verbose
	target.Logging.JSONFormat = target.Logging.JSONFormat || source.Logging.JSONFormat
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
	if source.Logging.MaxSize != 0 {
		target.Logging.MaxSize = source.Logging.MaxSize
	}
	if source.Logging.MaxAge != 0 {
		target.Logging.MaxAge = source.Logging.MaxAge
	}
	if source.Logging.MaxBackups != 0 {
		target.Logging.MaxBackups = source.Logging.MaxBackups
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = append([]string(nil), src.Server.CORSOrigins...)
	}
	return &dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
