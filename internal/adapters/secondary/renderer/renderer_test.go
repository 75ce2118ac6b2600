package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

func sampleSummary() *entities.SummaryReport {
	return &entities.SummaryReport{
		Source:      "run.log",
		MemorySizes: []int{50, 100, 150, 200},
		Sections: []entities.SummarySection{
			{
				Workload: entities.WorkloadSimple,
				Trace:    entities.WorkloadSimple.TraceName(),
				Rows: []entities.SummaryRow{
					{Algorithm: entities.AlgorithmRandom, HitRates: []string{"1.00%", "2.00%", "3.00%", "4.00%"}},
					{Algorithm: entities.AlgorithmClock, HitRates: []string{"95.25%", "100.00%", "7.5%", "0.01%"}},
				},
			},
		},
	}
}

func sampleTable() *entities.TableReport {
	return &entities.TableReport{
		Source:  "run.log",
		Columns: entities.TableColumns,
		Sections: []entities.TableSection{
			{
				Workload: entities.WorkloadMatmul,
				Blocks: []entities.TableBlock{
					{
						MemorySize: 50,
						Rows: []entities.TableRow{
							{Algorithm: entities.AlgorithmLRU, Stats: entities.NewEvictionStats("80.0%", 120, 30, 5, 2)},
						},
					},
				},
			},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format      entities.OutputFormat
		contentType string
	}{
		{entities.FormatText, "text/plain; charset=utf-8"},
		{entities.FormatMarkdown, "text/markdown; charset=utf-8"},
		{entities.FormatHTML, "text/html; charset=utf-8"},
		{entities.FormatJSON, "application/json"},
		{entities.FormatYAML, "application/yaml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, err := New(tt.format, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.format, r.Format())
			assert.Equal(t, tt.contentType, r.ContentType())
		})
	}

	t.Run("empty format falls back to text", func(t *testing.T) {
		r, err := New("", Options{})
		require.NoError(t, err)
		assert.Equal(t, entities.FormatText, r.Format())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New("pdf", Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(entities.ReportConfig{Strict: true}, nil)

	assert.Equal(t, 8, opts.SummaryWidth)
	assert.Equal(t, 11, opts.TableWidth)
	assert.True(t, opts.Strict)
}
