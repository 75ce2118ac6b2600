package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/test/builders"
)

func TestSummaryExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	extractor := NewSummaryExtractor(nil)

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "Hit rate: 99.9%",
			expected: []string{"99.9%"},
		},
		{
			name:     "last token of trailing content",
			input:    "run 1\nHit rate: of workload 42.5%\n",
			expected: []string{"42.5%"},
		},
		{
			name:     "label in the middle of a line",
			input:    "[lru] Hit rate: 12.0%\nMiss rate: 88.0%\n",
			expected: []string{"12.0%"},
		},
		{
			name:     "source order is preserved",
			input:    "Hit rate: 3\nHit rate: 1\nother\nHit rate: 2\n",
			expected: []string{"3", "1", "2"},
		},
		{
			name:     "no matches",
			input:    "Hit count: 10\nhit rate: 5%\n",
			expected: []string{},
		},
		{
			name:     "label without a value yields the label token",
			input:    "Hit rate: \n",
			expected: []string{"rate:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates, err := extractor.Extract(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rates)
		})
	}
}

func TestSummaryExtractor_FullLog(t *testing.T) {
	log := builders.NewSummaryLogBuilder().WithNoise().Build()

	rates, err := NewSummaryExtractor(nil).Extract(context.Background(), log)
	require.NoError(t, err)
	require.Len(t, rates, entities.ExpectedHitRates())
	assert.Equal(t, "10.00%", rates[0])
	assert.Equal(t, "10.10%", rates[1])
}
