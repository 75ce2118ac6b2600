package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

const chunkSeparator = "\n\n"

// Line offsets inside a workload statistics block. Line 4 is not reported.
const (
	lineHitCount   = 0
	lineMissCount  = 1
	lineCleanEvict = 2
	lineDirtyEvict = 3
	lineHitRate    = 5
	blockLines     = 6
)

// TableExtractor reads per-run statistics from a blank-line separated log.
//
// The log starts with one chunk of build output, followed by one group per
// simulator run: a "<size> <algorithm>" header chunk and one statistics
// chunk per workload in entities.Workloads order.
type TableExtractor struct {
	strict bool
	logger *slog.Logger
}

// NewTableExtractor creates a statistics extractor. In strict mode a log
// with a partial trailing group or an unexpected number of runs is rejected.
func NewTableExtractor(strict bool, logger *slog.Logger) *TableExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableExtractor{
		strict: strict,
		logger: logger.With("component", "table-extractor"),
	}
}

// Extract builds the statistics grid of a log
func (e *TableExtractor) Extract(ctx context.Context, text string) (*entities.TableGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks := splitChunks(text)
	groupSize := 1 + len(entities.Workloads)
	groups := len(chunks) / groupSize

	if rem := len(chunks) % groupSize; rem != 0 {
		if err := e.mismatch("partial run group at end of log", "%d trailing chunks", rem); err != nil {
			return nil, err
		}
	}
	if groups != entities.ExpectedGroups() {
		if err := e.mismatch("unexpected number of runs", "found %d, expected %d", groups, entities.ExpectedGroups()); err != nil {
			return nil, err
		}
	}

	grid := entities.NewTableGrid()
	for g := 0; g < groups; g++ {
		base := g * groupSize

		key, err := parseRunHeader(chunks[base])
		if err != nil {
			return nil, withLocation(err, "run %d header", g)
		}

		for i, workload := range entities.Workloads {
			stats, err := parseStatsBlock(chunks[base+1+i])
			if err != nil {
				return nil, withLocation(err, "run %d (%s), workload %s", g, key, workload)
			}
			if err := grid.Put(workload, key, stats); err != nil {
				return nil, err
			}
		}
	}

	e.logger.Debug("Extracted run statistics",
		slog.Int("chunks", len(chunks)),
		slog.Int("runs", groups),
		slog.Int("cells", grid.Len()),
	)
	return grid, nil
}

// mismatch reports a structural deviation as an error in strict mode and a warning otherwise
func (e *TableExtractor) mismatch(message, format string, args ...interface{}) error {
	err := entities.NewReportError(entities.KindStructure, message, nil).WithDetails(format, args...)
	if e.strict {
		return err
	}
	e.logger.Warn("Log structure mismatch", slog.String("error", err.Error()))
	return nil
}

// splitChunks splits the log on blank lines, dropping the leading build
// output and any whitespace-only chunks at the end
func splitChunks(text string) []string {
	chunks := strings.Split(text, chunkSeparator)
	if len(chunks) <= 1 {
		return nil
	}
	chunks = chunks[1:]

	for len(chunks) > 0 && strings.TrimSpace(chunks[len(chunks)-1]) == "" {
		chunks = chunks[:len(chunks)-1]
	}
	return chunks
}

// parseRunHeader parses a "<size> <algorithm>" chunk
func parseRunHeader(chunk string) (entities.GridKey, error) {
	fields := strings.Fields(chunk)
	if len(fields) != 2 {
		return entities.GridKey{}, entities.NewReportError(entities.KindStructure, "malformed run header", nil).
			WithDetails("want \"<size> <algorithm>\", got %q", chunk)
	}

	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return entities.GridKey{}, entities.NewReportError(entities.KindMalformedNumber, "memory size", err)
	}

	return entities.GridKey{MemorySize: size, Algorithm: entities.Algorithm(fields[1])}, nil
}

// parseStatsBlock parses one workload's six line statistics chunk
func parseStatsBlock(chunk string) (entities.EvictionStats, error) {
	lines := strings.Split(chunk, "\n")
	if len(lines) < blockLines {
		return entities.EvictionStats{}, entities.NewReportError(entities.KindStructure, "short statistics block", nil).
			WithDetails("want %d lines, got %d", blockLines, len(lines))
	}

	counts := make(map[int]int64, 4)
	for _, idx := range []int{lineHitCount, lineMissCount, lineCleanEvict, lineDirtyEvict} {
		token, err := lastToken(lines, idx)
		if err != nil {
			return entities.EvictionStats{}, err
		}
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return entities.EvictionStats{}, entities.NewReportError(entities.KindMalformedNumber, "statistics count", err).
				WithDetails("line %d", idx)
		}
		counts[idx] = n
	}

	hitRate, err := lastToken(lines, lineHitRate)
	if err != nil {
		return entities.EvictionStats{}, err
	}

	return entities.NewEvictionStats(
		hitRate,
		counts[lineHitCount],
		counts[lineMissCount],
		counts[lineCleanEvict],
		counts[lineDirtyEvict],
	), nil
}

// lastToken returns the final whitespace-delimited token of a line
func lastToken(lines []string, idx int) (string, error) {
	fields := strings.Fields(lines[idx])
	if len(fields) == 0 {
		return "", entities.NewReportError(entities.KindStructure, "empty statistics line", nil).
			WithDetails("line %d", idx)
	}
	return fields[len(fields)-1], nil
}

// withLocation prefixes a report error's details with where in the log it occurred
func withLocation(err error, format string, args ...interface{}) error {
	reportErr, ok := err.(*entities.ReportError)
	if !ok {
		return fmt.Errorf(format+": %w", append(args, err)...)
	}
	location := fmt.Sprintf(format, args...)
	if reportErr.Details != "" {
		location += ", " + reportErr.Details
	}
	return reportErr.WithDetails("%s", location)
}

// Ensure TableExtractor implements ports.TableExtractor
var _ ports.TableExtractor = (*TableExtractor)(nil)
