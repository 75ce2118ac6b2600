package parser

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// hitRatePattern matches a labelled hit rate line up to the end of the line
var hitRatePattern = regexp.MustCompile(`Hit rate: .*`)

// SummaryExtractor collects hit rate tokens from a simulator log
type SummaryExtractor struct {
	logger *slog.Logger
}

// NewSummaryExtractor creates a hit rate extractor
func NewSummaryExtractor(logger *slog.Logger) *SummaryExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExtractor{logger: logger.With("component", "summary-extractor")}
}

// Extract returns the last token of every "Hit rate: " match, in source order.
// Token format is not checked.
func (e *SummaryExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := hitRatePattern.FindAllString(text, -1)
	rates := make([]string, 0, len(matches))
	for _, match := range matches {
		fields := strings.Fields(match)
		rates = append(rates, fields[len(fields)-1])
	}

	e.logger.Debug("Extracted hit rates", slog.Int("count", len(rates)))
	return rates, nil
}

// Ensure SummaryExtractor implements ports.SummaryExtractor
var _ ports.SummaryExtractor = (*SummaryExtractor)(nil)
