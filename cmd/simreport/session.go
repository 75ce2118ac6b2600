package main

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/config"
	"github.com/fredcamaral/simreport/internal/adapters/secondary/logfile"
	"github.com/fredcamaral/simreport/internal/adapters/secondary/parser"
	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
	"github.com/fredcamaral/simreport/internal/domain/services"
	"github.com/fredcamaral/simreport/internal/logging"
)

// session holds everything a command needs to report on one log
type session struct {
	config  *entities.Config
	logger  *slog.Logger
	service *services.ReportService
	closer  io.Closer
}

// logPathFromArgs returns the last positional argument; earlier ones are ignored
func logPathFromArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", entities.ErrMissingArgument
	}
	return args[len(args)-1], nil
}

// overrideFlags collects the explicitly set flags that override configuration
func overrideFlags(cmd *cobra.Command) map[string]interface{} {
	fs := cmd.Flags()
	flags := make(map[string]interface{})

	if fs.Changed("format") {
		format, _ := fs.GetString("format")
		flags["format"] = format
	}
	if fs.Changed("strict") {
		strict, _ := fs.GetBool("strict")
		flags["strict"] = strict
	}
	if fs.Changed("verbose") {
		verbose, _ := fs.GetBool("verbose")
		flags["verbose"] = verbose
	}
	if fs.Changed("port") {
		port, _ := fs.GetInt("port")
		flags["port"] = port
	}
	if fs.Changed("host") {
		host, _ := fs.GetString("host")
		flags["host"] = host
	}

	return flags
}

func newConfigService() *services.ConfigService {
	return services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
}

// loadConfig resolves the configuration for a log, picking up simreport.toml
// from the directory holding it
func loadConfig(cmd *cobra.Command, logPath string) (*entities.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")

	return newConfigService().LoadConfig(cmd.Context(), ports.LoadOptions{
		LogDir:       filepath.Dir(logPath),
		ExplicitPath: explicit,
		Flags:        overrideFlags(cmd),
	})
}

// newSession loads configuration and wires the report pipeline for a log
func newSession(cmd *cobra.Command, logPath string) (*session, error) {
	cfg, err := loadConfig(cmd, logPath)
	if err != nil {
		return nil, err
	}

	logger, closer := logging.New(cfg.Logging, cmd.ErrOrStderr())
	strict := cfg.Report.Strict

	service := services.NewReportService(
		logfile.NewReader(logger),
		parser.NewSummaryExtractor(logger),
		parser.NewTableExtractor(strict, logger),
		services.NewAssembler(strict, logger),
		logger,
	)

	logger.Debug("Session ready",
		slog.String("log", logPath),
		slog.String("format", string(cfg.Report.GetFormat())),
		slog.Bool("strict", strict),
	)

	return &session{config: cfg, logger: logger, service: service, closer: closer}, nil
}

// Close releases the log sink
func (s *session) Close() error {
	return s.closer.Close()
}
