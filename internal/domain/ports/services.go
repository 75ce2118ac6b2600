package ports

import (
	"context"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// ReportService runs the read, extract and assemble pipeline for a log file
type ReportService interface {
	// BuildSummary produces the hit rate summary of a log
	BuildSummary(ctx context.Context, path string) (*entities.SummaryReport, error)

	// BuildTable produces the statistics table of a log
	BuildTable(ctx context.Context, path string) (*entities.TableReport, error)
}
