package renderer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// HTMLRenderer converts the markdown report into a standalone HTML page
type HTMLRenderer struct {
	markdown   *MarkdownRenderer
	md         goldmark.Markdown
	policy     *bluemonday.Policy
	page       *template.Template
	liveReload bool
	logger     *slog.Logger
}

// NewHTMLRenderer creates an HTML renderer
func NewHTMLRenderer(opts Options) (*HTMLRenderer, error) {
	page, err := template.New("report").Parse(reportPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	return &HTMLRenderer{
		markdown: NewMarkdownRenderer(opts),
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.NewTable(extension.WithTableCellAlignMethod(extension.TableCellAlignAttribute)),
			),
		),
		policy:     createReportSanitizer(),
		page:       page,
		liveReload: opts.LiveReload,
		logger:     opts.logger().With("component", "html-renderer"),
	}, nil
}

// RenderSummary writes the summary as an HTML page
func (r *HTMLRenderer) RenderSummary(ctx context.Context, w io.Writer, report *entities.SummaryReport) error {
	var md bytes.Buffer
	if err := r.markdown.RenderSummary(ctx, &md, report); err != nil {
		return err
	}
	return r.renderPage(w, r.markdown.title.String(summaryTitle), md.Bytes())
}

// RenderTable writes the statistics table as an HTML page
func (r *HTMLRenderer) RenderTable(ctx context.Context, w io.Writer, report *entities.TableReport) error {
	var md bytes.Buffer
	if err := r.markdown.RenderTable(ctx, &md, report); err != nil {
		return err
	}
	return r.renderPage(w, r.markdown.title.String(tableTitle), md.Bytes())
}

func (r *HTMLRenderer) renderPage(w io.Writer, title string, markdown []byte) error {
	var body bytes.Buffer
	if err := r.md.Convert(markdown, &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	data := struct {
		Title      string
		Body       template.HTML
		LiveReload bool
	}{
		Title:      title,
		Body:       template.HTML(r.policy.SanitizeBytes(body.Bytes())), // #nosec G203 - sanitized by bluemonday
		LiveReload: r.liveReload,
	}

	var page bytes.Buffer
	if err := r.page.Execute(&page, data); err != nil {
		return fmt.Errorf("executing report template: %w", err)
	}

	r.logger.Debug("Rendered HTML page", slog.String("title", title), slog.Int("bytes", page.Len()))
	_, err := w.Write(page.Bytes())
	return err
}

// createReportSanitizer allows the headings, tables and inline code a report produces
func createReportSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("h1", "h2", "h3", "p", "code")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("align").Matching(bluemonday.CellAlign).OnElements("th", "td")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3")

	return p
}

// Format returns the output format
func (r *HTMLRenderer) Format() entities.OutputFormat {
	return entities.FormatHTML
}

// ContentType returns the MIME type of the output
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

const reportPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 2em; color: #2c3e50; }
        table { border-collapse: collapse; margin-bottom: 1.5em; }
        th, td { border: 1px solid #ddd; padding: 0.3em 0.8em; font-family: monospace; }
        th { background: #f4f4f4; }
    </style>
</head>
<body>
    <main class="report">
{{.Body}}
    </main>
{{- if .LiveReload}}
    <script>
        (function () {
            var proto = location.protocol === "https:" ? "wss://" : "ws://";
            var ws = new WebSocket(proto + location.host + "/ws");
            ws.onmessage = function (msg) {
                var event = JSON.parse(msg.data);
                if (event.type === "reload") {
                    location.reload();
                }
            };
        })();
    </script>
{{- end}}
</body>
</html>
`

// Ensure HTMLRenderer implements ports.ReportRenderer
var _ ports.ReportRenderer = (*HTMLRenderer)(nil)
