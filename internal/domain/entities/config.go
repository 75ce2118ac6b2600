package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Report  ReportConfig  `toml:"report"`
	Server  ServerConfig  `toml:"server"`
	Watcher WatcherConfig `toml:"watcher"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Report.Validate(); err != nil {
		return fmt.Errorf("report config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// OutputFormat names a report rendering
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
)

// OutputFormats lists every supported format
var OutputFormats = []OutputFormat{FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}

// ReportConfig contains report rendering configuration
type ReportConfig struct {
	Format       string `toml:"format"`
	SummaryWidth int    `toml:"summary_width"`
	TableWidth   int    `toml:"table_width"`
	Strict       bool   `toml:"strict"`
}

// Validate validates report configuration
func (r ReportConfig) Validate() error {
	if r.Format != "" {
		valid := false
		for _, f := range OutputFormats {
			if OutputFormat(r.Format) == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid format: %s (must be text, markdown, html, json, or yaml)", r.Format)
		}
	}

	if r.SummaryWidth < 0 {
		return errors.New("summary width must be non-negative")
	}

	if r.TableWidth < 0 {
		return errors.New("table width must be non-negative")
	}

	return nil
}

// GetFormat returns the output format with default
func (r ReportConfig) GetFormat() OutputFormat {
	if r.Format == "" {
		return FormatText
	}
	return OutputFormat(r.Format)
}

// GetSummaryWidth returns the summary column width with default (8)
func (r ReportConfig) GetSummaryWidth() int {
	if r.SummaryWidth <= 0 {
		return 8
	}
	return r.SummaryWidth
}

// GetTableWidth returns the table column width with default (11)
func (r ReportConfig) GetTableWidth() int {
	if r.TableWidth <= 0 {
		return 11
	}
	return r.TableWidth
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if strings.ContainsAny(s.Host, " !/") {
				return fmt.Errorf("invalid host: %s", s.Host)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// WatcherConfig contains log file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.IntervalMs != 0 && w.IntervalMs < 50 {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Force debug level
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Log to file (optional)
	MaxSize    int    `toml:"max_size"`    // Maximum log file size in MB
	MaxAge     int    `toml:"max_age"`     // Maximum age in days
	MaxBackups int    `toml:"max_backups"` // Maximum number of backup files
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}

		if l.MaxSize < 0 {
			return errors.New("max log file size must be non-negative")
		}

		if l.MaxAge < 0 {
			return errors.New("max log file age must be non-negative")
		}

		if l.MaxBackups < 0 {
			return errors.New("max log backups must be non-negative")
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Verbose {
		return LogLevelDebug
	}
	if l.Level == "" {
		return LogLevelWarn
	}
	return LogLevel(l.Level)
}

// GetMaxSize returns the max file size with default (100MB)
func (l LoggingConfig) GetMaxSize() int {
	if l.MaxSize <= 0 {
		return 100
	}
	return l.MaxSize
}

// GetMaxAge returns the max age with default (7 days)
func (l LoggingConfig) GetMaxAge() int {
	if l.MaxAge <= 0 {
		return 7
	}
	return l.MaxAge
}

// GetMaxBackups returns the max backups with default (5)
func (l LoggingConfig) GetMaxBackups() int {
	if l.MaxBackups <= 0 {
		return 5
	}
	return l.MaxBackups
}
