package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// ReportService runs read, extract and assemble for a single log
type ReportService struct {
	reader    ports.LogReader
	summary   ports.SummaryExtractor
	table     ports.TableExtractor
	assembler *Assembler
	logger    *slog.Logger
}

// NewReportService creates a report service
func NewReportService(
	reader ports.LogReader,
	summary ports.SummaryExtractor,
	table ports.TableExtractor,
	assembler *Assembler,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	if assembler == nil {
		assembler = NewAssembler(false, logger)
	}
	return &ReportService{
		reader:    reader,
		summary:   summary,
		table:     table,
		assembler: assembler,
		logger:    logger.With("service", "report"),
	}
}

// BuildSummary produces the hit rate summary of a log
func (s *ReportService) BuildSummary(ctx context.Context, path string) (*entities.SummaryReport, error) {
	start := time.Now()

	text, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	rates, err := s.summary.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extracting hit rates: %w", err)
	}

	report, err := s.assembler.AssembleSummary(path, rates)
	if err != nil {
		return nil, fmt.Errorf("assembling summary of %s: %w", path, err)
	}

	s.logger.Debug("Built summary report",
		slog.String("path", path),
		slog.Int("hit_rates", len(rates)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// BuildTable produces the statistics table of a log
func (s *ReportService) BuildTable(ctx context.Context, path string) (*entities.TableReport, error) {
	start := time.Now()

	text, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	grid, err := s.table.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extracting statistics from %s: %w", path, err)
	}

	report, err := s.assembler.AssembleTable(path, grid)
	if err != nil {
		return nil, fmt.Errorf("assembling table of %s: %w", path, err)
	}

	s.logger.Debug("Built table report",
		slog.String("path", path),
		slog.Int("cells", grid.Len()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// Ensure ReportService implements ports.ReportService
var _ ports.ReportService = (*ReportService)(nil)
