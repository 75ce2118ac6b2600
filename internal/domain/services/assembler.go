package services

import (
	"log/slog"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// strideCursor walks every stride-th element of an immutable sequence
// starting at offset, i.e. the view seq[offset::stride].
type strideCursor struct {
	seq    []string
	offset int
	stride int
	pos    int
}

func newStrideCursor(seq []string, offset, stride int) *strideCursor {
	return &strideCursor{seq: seq, offset: offset, stride: stride}
}

// Next returns the next element of the view
func (c *strideCursor) Next() (string, bool) {
	idx := c.offset + c.pos*c.stride
	if idx >= len(c.seq) {
		return "", false
	}
	c.pos++
	return c.seq[idx], true
}

// Assembler reshapes extracted values into report grids
type Assembler struct {
	strict bool
	logger *slog.Logger
}

// NewAssembler creates an assembler. In strict mode surplus values and
// unexpected runs are errors instead of warnings.
func NewAssembler(strict bool, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{strict: strict, logger: logger.With("service", "assembler")}
}

// AssembleSummary deinterleaves hit rates logged with the workloads innermost.
// Workload w reads rates[w::len(Workloads)]; within it each algorithm row takes
// the next len(MemorySizes) values in memory size order.
func (a *Assembler) AssembleSummary(source string, rates []string) (*entities.SummaryReport, error) {
	expected := entities.ExpectedHitRates()
	if len(rates) < expected {
		return nil, entities.NewReportError(entities.KindStructure, "too few hit rates", nil).
			WithDetails("found %d, expected %d", len(rates), expected)
	}
	if len(rates) > expected {
		err := entities.NewReportError(entities.KindStructure, "too many hit rates", nil).
			WithDetails("found %d, expected %d", len(rates), expected)
		if a.strict {
			return nil, err
		}
		a.logger.Warn("Ignoring surplus hit rates", slog.String("error", err.Error()))
		rates = rates[:expected]
	}

	report := &entities.SummaryReport{
		Source:      source,
		MemorySizes: append([]int(nil), entities.MemorySizes...),
		Sections:    make([]entities.SummarySection, 0, len(entities.Workloads)),
	}

	stride := len(entities.Workloads)
	for w, workload := range entities.Workloads {
		cursor := newStrideCursor(rates, w, stride)
		section := entities.SummarySection{
			Workload: workload,
			Trace:    workload.TraceName(),
			Rows:     make([]entities.SummaryRow, 0, len(entities.Algorithms)),
		}

		for _, algo := range entities.Algorithms {
			row := entities.SummaryRow{Algorithm: algo, HitRates: make([]string, 0, len(entities.MemorySizes))}
			for range entities.MemorySizes {
				rate, ok := cursor.Next()
				if !ok {
					return nil, entities.NewReportError(entities.KindStructure, "hit rate sequence exhausted", nil).
						WithDetails("workload %s, algorithm %s", workload, algo)
				}
				row.HitRates = append(row.HitRates, rate)
			}
			section.Rows = append(section.Rows, row)
		}

		report.Sections = append(report.Sections, section)
	}

	a.logger.Debug("Assembled summary", slog.Int("values", report.ValueCount()))
	return report, nil
}

// AssembleTable looks up every (workload, memory size, algorithm) cell of the
// grid in report order
func (a *Assembler) AssembleTable(source string, grid *entities.TableGrid) (*entities.TableReport, error) {
	if err := a.checkUnexpectedRuns(grid); err != nil {
		return nil, err
	}

	report := &entities.TableReport{
		Source:   source,
		Columns:  append([]string(nil), entities.TableColumns...),
		Sections: make([]entities.TableSection, 0, len(entities.Workloads)),
	}

	for _, workload := range entities.Workloads {
		section := entities.TableSection{
			Workload: workload,
			Blocks:   make([]entities.TableBlock, 0, len(entities.MemorySizes)),
		}

		for _, size := range entities.MemorySizes {
			block := entities.TableBlock{
				MemorySize: size,
				Rows:       make([]entities.TableRow, 0, len(entities.Algorithms)),
			}

			for _, algo := range entities.Algorithms {
				key := entities.GridKey{MemorySize: size, Algorithm: algo}
				stats, ok := grid.Lookup(workload, key)
				if !ok {
					return nil, entities.NewReportError(entities.KindStructure, "missing run", nil).
						WithDetails("workload %s, run %s", workload, key)
				}
				block.Rows = append(block.Rows, entities.TableRow{Algorithm: algo, Stats: stats})
			}

			section.Blocks = append(section.Blocks, block)
		}

		report.Sections = append(report.Sections, section)
	}

	a.logger.Debug("Assembled table", slog.Int("rows", report.RowCount()))
	return report, nil
}

// checkUnexpectedRuns reports runs outside the fixed size and algorithm cross product
func (a *Assembler) checkUnexpectedRuns(grid *entities.TableGrid) error {
	for _, key := range grid.Keys() {
		if key.Algorithm.Valid() && knownSize(key.MemorySize) {
			continue
		}
		err := entities.NewReportError(entities.KindStructure, "unexpected run", nil).WithDetails("%s", key)
		if a.strict {
			return err
		}
		a.logger.Warn("Ignoring run outside the report grid", slog.String("run", key.String()))
	}
	return nil
}

func knownSize(size int) bool {
	for _, s := range entities.MemorySizes {
		if s == size {
			return true
		}
	}
	return false
}
