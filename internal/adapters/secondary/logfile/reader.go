package logfile

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// Reader loads simulator logs from the local filesystem
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a log reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger.With("component", "logfile")}
}

// Read returns the whole file as text with CRLF line endings normalised
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if path == "" {
		return "", entities.ErrMissingArgument
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is the user-named log file
	if err != nil {
		return "", entities.NewReportError(entities.KindIO, "reading log", err).WithDetails("%s", path)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	r.logger.Debug("Read log file",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)

	return text, nil
}

// Ensure Reader implements ports.LogReader
var _ ports.LogReader = (*Reader)(nil)
