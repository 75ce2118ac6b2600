package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/simreport/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

var (
	// summaryCmd prints the hit rate of every algorithm per trace and memory size
	summaryCmd = newReportCommand(entities.ReportSummary)

	// tableCmd prints the eviction statistics of every run
	tableCmd = newReportCommand(entities.ReportTable)
)

func init() {
	rootCmd.AddCommand(summaryCmd, tableCmd)
}

// newReportCommand creates the summary or table command
func newReportCommand(kind entities.ReportType) *cobra.Command {
	cmd := &cobra.Command{
		Use:  string(kind) + " [flags] <log>",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, kind)
		},
	}

	switch kind {
	case entities.ReportSummary:
		cmd.Short = "Print the hit rate summary of a benchmark log"
		cmd.Long = `Print one table per trace with a row per replacement algorithm and a
column per memory size, holding the hit rate of that run.

Example:
  simreport summary results.log
  simreport summary results.log --format markdown -o summary.md`
	case entities.ReportTable:
		cmd.Short = "Print the eviction statistics of a benchmark log"
		cmd.Long = `Print the hit rate, hit count, miss count and evictions of every run,
grouped by trace file and memory size.

Example:
  simreport table results.log
  simreport table results.log --watch`
	}

	cmd.Flags().BoolP("watch", "w", false, "Re-render whenever the log changes")
	return cmd
}

func runReport(cmd *cobra.Command, args []string, kind entities.ReportType) error {
	logPath, err := logPathFromArgs(args)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, logPath)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	r, err := renderer.New(s.config.Report.GetFormat(), renderer.OptionsFromConfig(s.config.Report, s.logger))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	emit := func(ctx context.Context) error {
		data, err := buildReport(ctx, s.service, r, kind, logPath)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), output, data)
	}

	ctx := cmd.Context()
	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return emit(ctx)
	}

	if err := emit(ctx); err != nil {
		s.logger.Error("Building report", slog.String("error", err.Error()))
	}
	return watchLog(ctx, s.config.Watcher, s.logger, logPath, emit)
}

// buildReport runs the pipeline for one report type and renders it in full,
// so nothing is written when any stage fails
func buildReport(ctx context.Context, service ports.ReportService, r ports.ReportRenderer, kind entities.ReportType, path string) ([]byte, error) {
	var buf bytes.Buffer

	switch kind {
	case entities.ReportSummary:
		report, err := service.BuildSummary(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := r.RenderSummary(ctx, &buf, report); err != nil {
			return nil, err
		}
	case entities.ReportTable:
		report, err := service.BuildTable(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := r.RenderTable(ctx, &buf, report); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown report type: %s", kind)
	}

	return buf.Bytes(), nil
}

// writeOutput writes a rendered report to path, or to stdout when path is empty
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return entities.NewReportError(entities.KindIO, "writing report", err).WithDetails("%s", path)
	}
	return nil
}

// watchLog calls onChange after every settled modification of the log until
// ctx is cancelled. Rebuild failures are logged and watching continues.
func watchLog(ctx context.Context, cfg entities.WatcherConfig, logger *slog.Logger, path string, onChange func(context.Context) error) error {
	poller := watcher.NewLogPoller(cfg, logger)

	events, err := poller.Watch(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = poller.Stop() }()

	logger.Info("Watching log", slog.String("path", path), slog.Duration("interval", cfg.GetInterval()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Type == ports.Deleted {
				logger.Warn("Log file removed, waiting for it to reappear", slog.String("path", event.Path))
				continue
			}
			if err := onChange(ctx); err != nil {
				logger.Error("Rebuilding report", slog.String("error", err.Error()))
			}
		}
	}
}
