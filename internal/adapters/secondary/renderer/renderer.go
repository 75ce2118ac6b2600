package renderer

import (
	"fmt"
	"log/slog"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// Options configures every renderer
type Options struct {
	// SummaryWidth is the minimum hit rate column width of the summary report
	SummaryWidth int
	// TableWidth is the minimum statistics column width of the table report
	TableWidth int
	// Strict turns a value wider than its configured column into an error
	Strict bool
	// LiveReload adds the websocket reload script to HTML pages
	LiveReload bool
	Logger     *slog.Logger
}

// OptionsFromConfig derives renderer options from the report configuration
func OptionsFromConfig(cfg entities.ReportConfig, logger *slog.Logger) Options {
	return Options{
		SummaryWidth: cfg.GetSummaryWidth(),
		TableWidth:   cfg.GetTableWidth(),
		Strict:       cfg.Strict,
		Logger:       logger,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// New returns the renderer for a format
func New(format entities.OutputFormat, opts Options) (ports.ReportRenderer, error) {
	switch format {
	case entities.FormatText, "":
		return NewTextRenderer(opts), nil
	case entities.FormatMarkdown:
		return NewMarkdownRenderer(opts), nil
	case entities.FormatHTML:
		return NewHTMLRenderer(opts)
	case entities.FormatJSON:
		return NewJSONRenderer(), nil
	case entities.FormatYAML:
		return NewYAMLRenderer(), nil
	default:
		return nil, entities.NewReportError(entities.KindConfiguration, "unsupported output format", nil).
			WithDetails("%s", format)
	}
}

// hitRateHeaders returns the memory size column labels of a summary report
func hitRateHeaders(report *entities.SummaryReport) []string {
	sizes := report.MemorySizes
	if len(sizes) == 0 {
		sizes = entities.MemorySizes
	}
	headers := make([]string, len(sizes))
	for i, size := range sizes {
		headers[i] = fmt.Sprint(size)
	}
	return headers
}

// tableColumns returns the statistics column labels of a table report
func tableColumns(report *entities.TableReport) []string {
	if len(report.Columns) == 0 {
		return entities.TableColumns
	}
	return report.Columns
}
