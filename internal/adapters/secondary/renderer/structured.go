package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// JSONRenderer writes the assembled report structures as indented JSON
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) RenderSummary(ctx context.Context, w io.Writer, report *entities.SummaryReport) error {
	return r.encode(ctx, w, report)
}

func (r *JSONRenderer) RenderTable(ctx context.Context, w io.Writer, report *entities.TableReport) error {
	return r.encode(ctx, w, report)
}

func (r *JSONRenderer) encode(ctx context.Context, w io.Writer, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func (r *JSONRenderer) Format() entities.OutputFormat { return entities.FormatJSON }

func (r *JSONRenderer) ContentType() string { return "application/json" }

// YAMLRenderer writes the assembled report structures as YAML
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAML renderer
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

func (r *YAMLRenderer) RenderSummary(ctx context.Context, w io.Writer, report *entities.SummaryReport) error {
	return r.encode(ctx, w, report)
}

func (r *YAMLRenderer) RenderTable(ctx context.Context, w io.Writer, report *entities.TableReport) error {
	return r.encode(ctx, w, report)
}

func (r *YAMLRenderer) encode(ctx context.Context, w io.Writer, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

func (r *YAMLRenderer) Format() entities.OutputFormat { return entities.FormatYAML }

func (r *YAMLRenderer) ContentType() string { return "application/yaml" }

var (
	_ ports.ReportRenderer = (*JSONRenderer)(nil)
	_ ports.ReportRenderer = (*YAMLRenderer)(nil)
)
