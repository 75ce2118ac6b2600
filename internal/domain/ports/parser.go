package ports

import (
	"context"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// LogReader loads the raw text of a simulator log
type LogReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// SummaryExtractor pulls hit rate tokens out of a log in source order
type SummaryExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// TableExtractor pulls per-run statistics out of a chunked log
type TableExtractor interface {
	Extract(ctx context.Context, text string) (*entities.TableGrid, error)
}
