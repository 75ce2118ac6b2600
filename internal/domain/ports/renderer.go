package ports

import (
	"context"
	"io"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// ReportRenderer writes assembled reports in one output format
type ReportRenderer interface {
	RenderSummary(ctx context.Context, w io.Writer, report *entities.SummaryReport) error
	RenderTable(ctx context.Context, w io.Writer, report *entities.TableReport) error
	Format() entities.OutputFormat
	ContentType() string
}
