package builders

import (
	"fmt"
	"strings"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// BuildPreamble is the compiler output that precedes simulator runs in a log
const BuildPreamble = "gcc -Wall -g -c sim.c\ngcc -Wall -g -o sim sim.o pagetable.o swap.o rand.o fifo.o lru.o clock.o opt.o"

// RunStats describes one statistics block of a table log
type RunStats struct {
	Hits, Misses, Clean, Dirty int64
	HitRate                    string
}

// SummaryLogBuilder generates hit rate logs in simulator output order
type SummaryLogBuilder struct {
	value func(w, a, s int) string
	count int
	noise bool
}

// NewSummaryLogBuilder creates a builder for a complete summary log
func NewSummaryLogBuilder() *SummaryLogBuilder {
	return &SummaryLogBuilder{
		value: func(w, a, s int) string {
			return fmt.Sprintf("%d.%d%d%%", 10*(a+1)+s, w, s)
		},
		count: entities.ExpectedHitRates(),
	}
}

// WithValue sets the hit rate reported for (workload, algorithm, size) indices
func (b *SummaryLogBuilder) WithValue(fn func(w, a, s int) string) *SummaryLogBuilder {
	b.value = fn
	return b
}

// WithFlatValues reports the i-th value in log order as fn(i)
func (b *SummaryLogBuilder) WithFlatValues(fn func(i int) string) *SummaryLogBuilder {
	nw, ns := len(entities.Workloads), len(entities.MemorySizes)
	b.value = func(w, a, s int) string {
		return fn(w + nw*(a*ns+s))
	}
	return b
}

// WithCount truncates or extends the log to n hit rate lines
func (b *SummaryLogBuilder) WithCount(n int) *SummaryLogBuilder {
	b.count = n
	return b
}

// WithNoise interleaves the other statistics lines the simulator prints
func (b *SummaryLogBuilder) WithNoise() *SummaryLogBuilder {
	b.noise = true
	return b
}

// Build renders the log text. Runs are emitted algorithm-major, then memory
// size, with the four workloads innermost.
func (b *SummaryLogBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(BuildPreamble)
	sb.WriteString("\n")

	nw, ns, na := len(entities.Workloads), len(entities.MemorySizes), len(entities.Algorithms)
	for i := 0; i < b.count; i++ {
		w := i % nw
		s := (i / nw) % ns
		a := (i / (nw * ns)) % na
		if b.noise {
			fmt.Fprintf(&sb, "Running %s with %d frames on %s\n",
				entities.Algorithms[a], entities.MemorySizes[s], entities.Workloads[w].TraceName())
			sb.WriteString("Hit count: 1000\nMiss count: 200\n")
		}
		fmt.Fprintf(&sb, "Hit rate: %s\n", b.value(w, a, s))
	}
	return sb.String()
}

// TableLogBuilder generates chunked statistics logs
type TableLogBuilder struct {
	stats func(w int, key entities.GridKey) RunStats
	keys  []entities.GridKey
	tail  string
}

// NewTableLogBuilder creates a builder for a complete table log
func NewTableLogBuilder() *TableLogBuilder {
	keys := make([]entities.GridKey, 0, entities.ExpectedGroups())
	for _, size := range entities.MemorySizes {
		for _, algo := range entities.Algorithms {
			keys = append(keys, entities.GridKey{MemorySize: size, Algorithm: algo})
		}
	}

	return &TableLogBuilder{
		stats: func(w int, key entities.GridKey) RunStats {
			hits := int64(key.MemorySize*10 + w)
			return RunStats{
				Hits:    hits,
				Misses:  int64(5000) - hits,
				Clean:   int64(w + 1),
				Dirty:   int64(key.MemorySize / 50),
				HitRate: fmt.Sprintf("%.1f%%", float64(hits)/10),
			}
		},
		keys: keys,
	}
}

// WithStats sets the statistics reported for a workload index and run
func (b *TableLogBuilder) WithStats(fn func(w int, key entities.GridKey) RunStats) *TableLogBuilder {
	b.stats = fn
	return b
}

// WithRuns replaces the list of runs written to the log
func (b *TableLogBuilder) WithRuns(keys ...entities.GridKey) *TableLogBuilder {
	b.keys = keys
	return b
}

// WithTail appends raw text after the last run
func (b *TableLogBuilder) WithTail(tail string) *TableLogBuilder {
	b.tail = tail
	return b
}

// Build renders the log text
func (b *TableLogBuilder) Build() string {
	chunks := []string{BuildPreamble}
	for _, key := range b.keys {
		chunks = append(chunks, fmt.Sprintf("%d %s", key.MemorySize, key.Algorithm))
		for w := range entities.Workloads {
			chunks = append(chunks, StatsBlock(b.stats(w, key)))
		}
	}
	return strings.Join(chunks, "\n\n") + "\n" + b.tail
}

// StatsBlock renders one six line statistics chunk
func StatsBlock(s RunStats) string {
	return strings.Join([]string{
		fmt.Sprintf("Hit count: %d", s.Hits),
		fmt.Sprintf("Miss count: %d", s.Misses),
		fmt.Sprintf("Clean evictions: %d", s.Clean),
		fmt.Sprintf("Dirty evictions: %d", s.Dirty),
		fmt.Sprintf("Total references : %d", s.Hits+s.Misses),
		fmt.Sprintf("Hit rate: %s", s.HitRate),
	}, "\n")
}
