package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/simreport/internal/adapters/primary/http"
	"github.com/fredcamaral/simreport/internal/adapters/secondary/browser"
	"github.com/fredcamaral/simreport/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/simreport/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

var (
	// Serve command flags
	port        int
	host        string
	reportKind  string
	openBrowser bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [flags] <log>",
	Short: "Serve the report of a benchmark log over HTTP",
	Long: `Start a local HTTP server showing the report of a benchmark log.
The page reloads itself whenever the log changes, and the report is also
available as JSON and text for scripts.

Example:
  simreport serve results.log
  simreport serve results.log --report summary --port 9000`,
	Args: cobra.ArbitraryArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Add command flags - defaults will be overridden by config loading
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().StringVarP(&reportKind, "report", "r", string(entities.ReportTable), "Report to serve: summary or table")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "Open the report in a browser once the server is up")
}

// validateServeConfig validates configuration after it's loaded
func validateServeConfig(config *entities.Config) error {
	// Port validation
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Server.Port)
	}

	// Host validation
	if strings.Contains(config.Server.Host, " ") || strings.Contains(config.Server.Host, "!") {
		return fmt.Errorf("invalid host: %s", config.Server.Host)
	}

	return nil
}

// parseReportType validates the --report flag
func parseReportType(value string) (entities.ReportType, error) {
	kind := entities.ReportType(value)
	if !kind.Valid() {
		return "", fmt.Errorf("invalid report type: %s (must be summary or table)", value)
	}
	return kind, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logPath, err := logPathFromArgs(args)
	if err != nil {
		return err
	}

	kind, err := parseReportType(reportKind)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, logPath)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := validateServeConfig(s.config); err != nil {
		return err
	}

	ctx := cmd.Context()

	opts := renderer.OptionsFromConfig(s.config.Report, s.logger)
	opts.LiveReload = true
	renderers := func(format entities.OutputFormat) (ports.ReportRenderer, error) {
		return renderer.New(format, opts)
	}

	store := httpadapter.NewReportStore(s.service, kind, logPath)
	server := httpadapter.NewServer(store, renderers, s.config.Server, s.logger)

	if err := store.Refresh(ctx); err != nil {
		if errors.Is(err, entities.ErrIO) {
			return err
		}
		// Serve anyway; the log may still be growing
		s.logger.Warn("Initial report build failed", slog.String("error", err.Error()))
	}

	if err := server.Start(ctx); err != nil {
		return err
	}

	poller := watcher.NewLogPoller(s.config.Watcher, s.logger)
	events, err := poller.Watch(ctx, logPath)
	if err != nil {
		_ = server.Stop(context.Background())
		return err
	}
	go server.Follow(ctx, events)

	url := "http://" + server.Addr()
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s report of %s at %s\n", kind, logPath, url)

	if openBrowser {
		openInBrowser(browser.NewLauncher(), url, s.logger)
	}

	<-ctx.Done()
	s.logger.Info("Shutting down server")

	if err := poller.Stop(); err != nil {
		s.logger.Warn("Stopping watcher", slog.String("error", err.Error()))
	}

	// The command context is already cancelled; Stop applies the shutdown timeout
	if err := server.Stop(context.Background()); err != nil {
		return err
	}
	return nil
}

// openInBrowser opens the served report; failing to do so is not fatal
func openInBrowser(launcher ports.BrowserLauncher, url string, logger *slog.Logger) {
	if err := launcher.Launch(url); err != nil {
		logger.Warn("Failed to open browser", slog.String("url", url), slog.String("error", err.Error()))
	}
}
