package renderer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRenderer_RenderSummary(t *testing.T) {
	r, err := NewHTMLRenderer(Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, r.RenderSummary(context.Background(), &out, sampleSummary()))

	page := out.String()
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>Hit Rate Summary</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<th align=\"right\">100</th>")
	assert.Contains(t, page, "<td align=\"right\">95.25%</td>")
	assert.NotContains(t, page, "new WebSocket")
}

func TestHTMLRenderer_RenderTable(t *testing.T) {
	r, err := NewHTMLRenderer(Options{LiveReload: true})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, r.RenderTable(context.Background(), &out, sampleTable()))

	page := out.String()
	assert.Contains(t, page, "<title>Eviction Statistics</title>")
	assert.Contains(t, page, "<h2>Matmul</h2>")
	assert.Contains(t, page, "<td align=\"right\">120</td>")
	assert.Contains(t, page, "new WebSocket")
}

func TestHTMLRenderer_SanitizesLogValues(t *testing.T) {
	r, err := NewHTMLRenderer(Options{})
	require.NoError(t, err)

	report := sampleSummary()
	report.Sections[0].Rows[0].HitRates[0] = "<script>alert(1)</script>"

	var out bytes.Buffer
	require.NoError(t, r.RenderSummary(context.Background(), &out, report))

	assert.NotContains(t, out.String(), "<script>alert(1)</script>")
}
