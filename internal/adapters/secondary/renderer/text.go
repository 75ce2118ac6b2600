package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// Fixed parts of the plain text layout
const (
	summaryIndent    = "       "
	summaryAlgoWidth = 5
	summaryGap       = "    "
	tableIndent      = "      "
	tableAlgoWidth   = 6
	tableGap         = " "
)

// TextRenderer writes the fixed-width plain text reports
type TextRenderer struct {
	summaryWidth int
	tableWidth   int
	strict       bool
	logger       *slog.Logger
}

// NewTextRenderer creates a plain text renderer
func NewTextRenderer(opts Options) *TextRenderer {
	summaryWidth := opts.SummaryWidth
	if summaryWidth <= 0 {
		summaryWidth = entities.ReportConfig{}.GetSummaryWidth()
	}
	tableWidth := opts.TableWidth
	if tableWidth <= 0 {
		tableWidth = entities.ReportConfig{}.GetTableWidth()
	}
	return &TextRenderer{
		summaryWidth: summaryWidth,
		tableWidth:   tableWidth,
		strict:       opts.Strict,
		logger:       opts.logger().With("component", "text-renderer"),
	}
}

// RenderSummary writes one block per workload: a blank line, the trace name,
// the memory size header and one row per algorithm.
func (r *TextRenderer) RenderSummary(ctx context.Context, w io.Writer, report *entities.SummaryReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := hitRateHeaders(report)
	var buf bytes.Buffer

	for _, section := range report.Sections {
		values := make([]string, 0, len(section.Rows)*len(headers))
		for _, row := range section.Rows {
			values = append(values, row.HitRates...)
		}
		width, err := r.columnWidth(section.Trace, r.summaryWidth, values)
		if err != nil {
			return err
		}
		width = fitLabels(width, headers)

		buf.WriteString("\n")
		buf.WriteString(section.Trace)
		buf.WriteString("\n")

		buf.WriteString(summaryIndent)
		for _, h := range headers {
			buf.WriteString(summaryGap)
			buf.WriteString(padLeft(h, width))
		}
		buf.WriteString("\n")

		for _, row := range section.Rows {
			buf.WriteString("  ")
			buf.WriteString(padRight(row.Algorithm.String(), summaryAlgoWidth))
			for _, rate := range row.HitRates {
				buf.WriteString(summaryGap)
				buf.WriteString(padLeft(rate, width))
			}
			buf.WriteString("\n")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderTable writes one block per workload, each holding one sub-table per
// memory size.
func (r *TextRenderer) RenderTable(ctx context.Context, w io.Writer, report *entities.TableReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	columns := tableColumns(report)
	var buf bytes.Buffer

	for _, section := range report.Sections {
		var values []string
		for _, block := range section.Blocks {
			for _, row := range block.Rows {
				values = append(values, row.Stats.Fields()...)
			}
		}
		width, err := r.columnWidth(section.Workload.String(), r.tableWidth, values)
		if err != nil {
			return err
		}
		width = fitLabels(width, columns)

		fmt.Fprintf(&buf, "\n\ntrace file:  %s\n", section.Workload)

		for _, block := range section.Blocks {
			fmt.Fprintf(&buf, "\nmemsize:  %d\n\n", block.MemorySize)

			buf.WriteString(tableIndent)
			for _, c := range columns {
				buf.WriteString(tableGap)
				buf.WriteString(padLeft(c, width))
			}
			buf.WriteString("\n")

			for _, row := range block.Rows {
				buf.WriteString(padLeft(row.Algorithm.String(), tableAlgoWidth))
				for _, v := range row.Stats.Fields() {
					buf.WriteString(tableGap)
					buf.WriteString(padLeft(v, width))
				}
				buf.WriteString("\n")
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// columnWidth widens a section's columns to its widest value. In strict mode
// a value wider than the configured width is an overflow error.
func (r *TextRenderer) columnWidth(section string, configured int, values []string) (int, error) {
	width := configured
	for _, v := range values {
		if len(v) <= width {
			continue
		}
		if r.strict {
			return 0, entities.NewReportError(entities.KindOverflow, "value wider than column", nil).
				WithDetails("section %s, value %q, width %d", section, v, configured)
		}
		width = len(v)
	}

	if width != configured {
		r.logger.Debug("Widened columns",
			slog.String("section", section),
			slog.Int("configured", configured),
			slog.Int("width", width),
		)
	}
	return width, nil
}

// Format returns the output format
func (r *TextRenderer) Format() entities.OutputFormat {
	return entities.FormatText
}

// ContentType returns the MIME type of the output
func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// fitLabels keeps column headers from overrunning their column
func fitLabels(width int, labels []string) int {
	for _, l := range labels {
		if len(l) > width {
			width = len(l)
		}
	}
	return width
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Ensure TextRenderer implements ports.ReportRenderer
var _ ports.ReportRenderer = (*TextRenderer)(nil)
