package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

const (
	summaryTitle = "hit rate summary"
	tableTitle   = "eviction statistics"
)

// MarkdownRenderer writes reports as GitHub flavoured markdown tables
type MarkdownRenderer struct {
	title cases.Caser
}

// NewMarkdownRenderer creates a markdown renderer
func NewMarkdownRenderer(_ Options) *MarkdownRenderer {
	return &MarkdownRenderer{title: cases.Title(language.English)}
}

// RenderSummary writes one table per workload
func (r *MarkdownRenderer) RenderSummary(ctx context.Context, w io.Writer, report *entities.SummaryReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	r.writePreamble(&buf, summaryTitle, report.Source)

	headers := append([]string{"Algorithm"}, hitRateHeaders(report)...)
	for _, section := range report.Sections {
		fmt.Fprintf(&buf, "## %s\n\n", section.Trace)
		writeTableHead(&buf, headers)
		for _, row := range section.Rows {
			writeTableRow(&buf, row.Algorithm.String(), row.HitRates)
		}
		buf.WriteString("\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderTable writes one table per workload and memory size
func (r *MarkdownRenderer) RenderTable(ctx context.Context, w io.Writer, report *entities.TableReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	r.writePreamble(&buf, tableTitle, report.Source)

	headers := append([]string{"Algorithm"}, tableColumns(report)...)
	for _, section := range report.Sections {
		fmt.Fprintf(&buf, "## %s\n\n", r.title.String(section.Workload.String()))
		for _, block := range section.Blocks {
			fmt.Fprintf(&buf, "### %s %d\n\n", r.title.String("memory size"), block.MemorySize)
			writeTableHead(&buf, headers)
			for _, row := range block.Rows {
				writeTableRow(&buf, row.Algorithm.String(), row.Stats.Fields())
			}
			buf.WriteString("\n")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func (r *MarkdownRenderer) writePreamble(buf *bytes.Buffer, title, source string) {
	fmt.Fprintf(buf, "# %s\n\n", r.title.String(title))
	if source != "" {
		fmt.Fprintf(buf, "Source: `%s`\n\n", source)
	}
}

func writeTableHead(buf *bytes.Buffer, headers []string) {
	buf.WriteString("|")
	for _, h := range headers {
		buf.WriteString(" " + escapeCell(h) + " |")
	}
	buf.WriteString("\n|")
	for i := range headers {
		if i == 0 {
			buf.WriteString(" :--- |")
		} else {
			buf.WriteString(" ---: |")
		}
	}
	buf.WriteString("\n")
}

func writeTableRow(buf *bytes.Buffer, label string, values []string) {
	buf.WriteString("| " + escapeCell(label) + " |")
	for _, v := range values {
		buf.WriteString(" " + escapeCell(v) + " |")
	}
	buf.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Format returns the output format
func (r *MarkdownRenderer) Format() entities.OutputFormat {
	return entities.FormatMarkdown
}

// ContentType returns the MIME type of the output
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Ensure MarkdownRenderer implements ports.ReportRenderer
var _ ports.ReportRenderer = (*MarkdownRenderer)(nil)
