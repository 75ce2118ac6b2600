package entities

import (
	"fmt"
	"strconv"
)

// SummaryRow holds one algorithm's hit rates, one per memory size
type SummaryRow struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	HitRates  []string  `json:"hit_rates" yaml:"hit_rates"`
}

// SummarySection holds the hit rate grid of a single workload
type SummarySection struct {
	Workload Workload     `json:"workload" yaml:"workload"`
	Trace    string       `json:"trace" yaml:"trace"`
	Rows     []SummaryRow `json:"rows" yaml:"rows"`
}

// SummaryReport is the assembled hit rate summary of a simulator log
type SummaryReport struct {
	Source      string           `json:"source" yaml:"source"`
	MemorySizes []int            `json:"memory_sizes" yaml:"memory_sizes"`
	Sections    []SummarySection `json:"sections" yaml:"sections"`
}

// ValueCount returns the number of hit rates held by the report
func (r *SummaryReport) ValueCount() int {
	n := 0
	for _, section := range r.Sections {
		for _, row := range section.Rows {
			n += len(row.HitRates)
		}
	}
	return n
}

// TableColumns names the statistics columns of the table report in order
var TableColumns = []string{"HitRate", "HitCount", "MissCount", "TotalEvict", "CleanEvict", "DirtyEvict"}

// EvictionStats holds the statistics of one simulator run over one workload
type EvictionStats struct {
	HitRate        string `json:"hit_rate" yaml:"hit_rate"`
	HitCount       int64  `json:"hit_count" yaml:"hit_count"`
	MissCount      int64  `json:"miss_count" yaml:"miss_count"`
	TotalEvictions int64  `json:"total_evictions" yaml:"total_evictions"`
	CleanEvictions int64  `json:"clean_evictions" yaml:"clean_evictions"`
	DirtyEvictions int64  `json:"dirty_evictions" yaml:"dirty_evictions"`
}

// NewEvictionStats builds stats with the total derived from clean and dirty evictions
func NewEvictionStats(hitRate string, hits, misses, clean, dirty int64) EvictionStats {
	return EvictionStats{
		HitRate:        hitRate,
		HitCount:       hits,
		MissCount:      misses,
		TotalEvictions: clean + dirty,
		CleanEvictions: clean,
		DirtyEvictions: dirty,
	}
}

// Fields returns the display values in TableColumns order
func (s EvictionStats) Fields() []string {
	return []string{
		s.HitRate,
		strconv.FormatInt(s.HitCount, 10),
		strconv.FormatInt(s.MissCount, 10),
		strconv.FormatInt(s.TotalEvictions, 10),
		strconv.FormatInt(s.CleanEvictions, 10),
		strconv.FormatInt(s.DirtyEvictions, 10),
	}
}

// GridKey identifies one simulator run
type GridKey struct {
	MemorySize int
	Algorithm  Algorithm
}

func (k GridKey) String() string {
	return fmt.Sprintf("%d/%s", k.MemorySize, k.Algorithm)
}

// TableGrid maps each workload to the statistics of every run over it
type TableGrid struct {
	cells map[Workload]map[GridKey]EvictionStats
	order []GridKey
}

// NewTableGrid creates an empty grid
func NewTableGrid() *TableGrid {
	return &TableGrid{cells: make(map[Workload]map[GridKey]EvictionStats)}
}

// Put stores the stats of a run; a key may be written only once per workload
func (g *TableGrid) Put(w Workload, key GridKey, stats EvictionStats) error {
	byKey, ok := g.cells[w]
	if !ok {
		byKey = make(map[GridKey]EvictionStats)
		g.cells[w] = byKey
	}
	if _, exists := byKey[key]; exists {
		return NewReportError(KindStructure, "duplicate run", nil).
			WithDetails("workload %s, run %s", w, key)
	}
	byKey[key] = stats
	if !g.seen(key) {
		g.order = append(g.order, key)
	}
	return nil
}

func (g *TableGrid) seen(key GridKey) bool {
	for _, k := range g.order {
		if k == key {
			return true
		}
	}
	return false
}

// Lookup returns the stats of a run over a workload
func (g *TableGrid) Lookup(w Workload, key GridKey) (EvictionStats, bool) {
	stats, ok := g.cells[w][key]
	return stats, ok
}

// Keys returns the distinct runs in the order they were first stored
func (g *TableGrid) Keys() []GridKey {
	out := make([]GridKey, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of stored cells across all workloads
func (g *TableGrid) Len() int {
	n := 0
	for _, byKey := range g.cells {
		n += len(byKey)
	}
	return n
}

// TableRow is one algorithm row of a memory size block
type TableRow struct {
	Algorithm Algorithm     `json:"algorithm" yaml:"algorithm"`
	Stats     EvictionStats `json:"stats" yaml:"stats"`
}

// TableBlock holds the rows for one memory size
type TableBlock struct {
	MemorySize int        `json:"memory_size" yaml:"memory_size"`
	Rows       []TableRow `json:"rows" yaml:"rows"`
}

// TableSection holds every memory size block of one workload
type TableSection struct {
	Workload Workload     `json:"workload" yaml:"workload"`
	Blocks   []TableBlock `json:"blocks" yaml:"blocks"`
}

// TableReport is the assembled statistics table of a simulator log
type TableReport struct {
	Source   string         `json:"source" yaml:"source"`
	Columns  []string       `json:"columns" yaml:"columns"`
	Sections []TableSection `json:"sections" yaml:"sections"`
}

// RowCount returns the number of algorithm rows in the report
func (r *TableReport) RowCount() int {
	n := 0
	for _, section := range r.Sections {
		for _, block := range section.Blocks {
			n += len(block.Rows)
		}
	}
	return n
}
