package entities

import "fmt"

// Workload identifies a benchmark trace replayed through the simulator
type Workload string

const (
	WorkloadSimple  Workload = "simple"
	WorkloadMatmul  Workload = "matmul"
	WorkloadBlocked Workload = "blocked"
	WorkloadMine    Workload = "mine"
)

// Workloads lists every workload in the order the simulator runs them
var Workloads = []Workload{WorkloadSimple, WorkloadMatmul, WorkloadBlocked, WorkloadMine}

// String returns the short workload label used by the table report
func (w Workload) String() string {
	return string(w)
}

// TraceName returns the trace file name used as the summary section title
func (w Workload) TraceName() string {
	switch w {
	case WorkloadSimple:
		return "tr-simpleloop"
	case WorkloadMatmul:
		return "tr-matmul"
	case WorkloadBlocked:
		return "tr-blocked"
	case WorkloadMine:
		return "tr-mine"
	default:
		return "tr-" + string(w)
	}
}

// Valid reports whether w is one of the known workloads
func (w Workload) Valid() bool {
	for _, known := range Workloads {
		if w == known {
			return true
		}
	}
	return false
}

// ParseWorkload converts a label into a Workload
func ParseWorkload(s string) (Workload, error) {
	w := Workload(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown workload: %s", s)
	}
	return w, nil
}

// Algorithm names a page replacement policy
type Algorithm string

const (
	AlgorithmRandom  Algorithm = "rand"
	AlgorithmFIFO    Algorithm = "fifo"
	AlgorithmLRU     Algorithm = "lru"
	AlgorithmClock   Algorithm = "clock"
	AlgorithmOptimal Algorithm = "opt"
)

// Algorithms lists every algorithm in report row order
var Algorithms = []Algorithm{AlgorithmRandom, AlgorithmFIFO, AlgorithmLRU, AlgorithmClock, AlgorithmOptimal}

// String returns the algorithm name
func (a Algorithm) String() string {
	return string(a)
}

// Valid reports whether a is one of the known algorithms
func (a Algorithm) Valid() bool {
	for _, known := range Algorithms {
		if a == known {
			return true
		}
	}
	return false
}

// MemorySizes lists the simulated memory sizes, in frames, in column order
var MemorySizes = []int{50, 100, 150, 200}

// ExpectedGroups is the number of (memory size, algorithm) runs in a complete log
func ExpectedGroups() int {
	return len(MemorySizes) * len(Algorithms)
}

// ExpectedHitRates is the number of hit rate lines in a complete summary log
func ExpectedHitRates() int {
	return len(Workloads) * ExpectedGroups()
}

// ReportType names one of the two reports built from a log
type ReportType string

const (
	ReportSummary ReportType = "summary"
	ReportTable   ReportType = "table"
)

// Valid reports whether t is a known report type
func (t ReportType) Valid() bool {
	return t == ReportSummary || t == ReportTable
}
