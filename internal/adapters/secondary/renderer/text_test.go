package renderer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

func TestTextRenderer_RenderSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("fixed width layout", func(t *testing.T) {
		r := NewTextRenderer(Options{SummaryWidth: 8})
		var out bytes.Buffer

		require.NoError(t, r.RenderSummary(ctx, &out, sampleSummary()))

		expected := "\n" +
			"tr-simpleloop\n" +
			"                 50         100         150         200\n" +
			"  rand        1.00%       2.00%       3.00%       4.00%\n" +
			"  clock      95.25%     100.00%        7.5%       0.01%\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("wide value widens its section", func(t *testing.T) {
		report := sampleSummary()
		report.Sections[0].Rows = report.Sections[0].Rows[:1]
		report.Sections[0].Rows[0].HitRates[0] = "123456789%"

		r := NewTextRenderer(Options{SummaryWidth: 8})
		var out bytes.Buffer
		require.NoError(t, r.RenderSummary(ctx, &out, report))

		lines := strings.Split(out.String(), "\n")
		assert.Equal(t, "                   50           100           150           200", lines[2])
		assert.Equal(t, "  rand     123456789%         2.00%         3.00%         4.00%", lines[3])
	})

	t.Run("wide value is an overflow in strict mode", func(t *testing.T) {
		report := sampleSummary()
		report.Sections[0].Rows[0].HitRates[0] = "123456789%"

		r := NewTextRenderer(Options{SummaryWidth: 8, Strict: true})
		var out bytes.Buffer
		err := r.RenderSummary(ctx, &out, report)

		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrOverflow))
		assert.Contains(t, err.Error(), "tr-simpleloop")
		assert.Empty(t, out.String())
	})

	t.Run("zero width uses defaults", func(t *testing.T) {
		r := NewTextRenderer(Options{})
		var out bytes.Buffer

		require.NoError(t, r.RenderSummary(ctx, &out, sampleSummary()))
		assert.Contains(t, out.String(), "                 50         100")
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := NewTextRenderer(Options{}).RenderSummary(canceled, &bytes.Buffer{}, sampleSummary())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTextRenderer_RenderTable(t *testing.T) {
	ctx := context.Background()

	t.Run("fixed width layout", func(t *testing.T) {
		r := NewTextRenderer(Options{TableWidth: 11})
		var out bytes.Buffer

		require.NoError(t, r.RenderTable(ctx, &out, sampleTable()))

		expected := "\n\n" +
			"trace file:  matmul\n" +
			"\n" +
			"memsize:  50\n" +
			"\n" +
			"           HitRate    HitCount   MissCount  TotalEvict  CleanEvict  DirtyEvict\n" +
			"   lru       80.0%         120          30           7           5           2\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("headers never overrun narrow columns", func(t *testing.T) {
		r := NewTextRenderer(Options{TableWidth: 4})
		var out bytes.Buffer

		require.NoError(t, r.RenderTable(ctx, &out, sampleTable()))

		lines := strings.Split(out.String(), "\n")
		header, row := lines[6], lines[7]
		assert.Equal(t, len(header), len(row))
		assert.True(t, strings.HasSuffix(header, " DirtyEvict"))
	})

	t.Run("large count is an overflow in strict mode", func(t *testing.T) {
		report := sampleTable()
		report.Sections[0].Blocks[0].Rows[0].Stats = entities.NewEvictionStats("80.0%", 123456789012, 30, 5, 2)

		err := NewTextRenderer(Options{TableWidth: 11, Strict: true}).RenderTable(ctx, &bytes.Buffer{}, report)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrOverflow))
	})
}
