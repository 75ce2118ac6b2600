package monitoring

import (
	"math"
	"runtime"
	"sync"
	"time"
)

// buildAlpha weights the newest build in the moving average
const buildAlpha = 0.1

// Metrics is a point in time view of a report server
type Metrics struct {
	Uptime               string `json:"uptime"`
	Builds               int64  `json:"builds"`
	BuildFailures        int64  `json:"build_failures"`
	LastBuildMs          int64  `json:"last_build_ms"`
	AverageBuildMs       int64  `json:"avg_build_ms"`
	HTTPRequests         int64  `json:"http_requests"`
	WebSocketConnections int64  `json:"websocket_connections"`
	Goroutines           int    `json:"goroutines"`
	HeapMB               int64  `json:"heap_mb"`
	GCCycles             uint32 `json:"gc_cycles"`
}

// Monitor counts report builds and server traffic
type Monitor struct {
	mu          sync.RWMutex
	startTime   time.Time
	builds      int64
	failures    int64
	lastBuild   time.Duration
	avgBuild    time.Duration
	requests    int64
	connections int64
}

// NewMonitor creates a monitor whose uptime starts now
func NewMonitor() *Monitor {
	return &Monitor{startTime: time.Now()}
}

// RecordBuild records one report build. Failed builds are counted but do
// not move the build time average.
func (m *Monitor) RecordBuild(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.failures++
		return
	}

	m.builds++
	m.lastBuild = duration

	// Exponential moving average
	if m.avgBuild == 0 {
		m.avgBuild = duration
	} else {
		m.avgBuild = time.Duration(float64(m.avgBuild)*(1-buildAlpha) + float64(duration)*buildAlpha)
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Monitor) RecordHTTPRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
}

// RecordWebSocketConnection records an accepted WebSocket connection
func (m *Monitor) RecordWebSocketConnection() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connections++
}

// Uptime returns the time since the monitor was created
func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// Snapshot returns the counters together with current runtime statistics
func (m *Monitor) Snapshot() Metrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.mu.RLock()
	defer m.mu.RUnlock()

	return Metrics{
		Uptime:               m.Uptime().Round(time.Second).String(),
		Builds:               m.builds,
		BuildFailures:        m.failures,
		LastBuildMs:          m.lastBuild.Milliseconds(),
		AverageBuildMs:       m.avgBuild.Milliseconds(),
		HTTPRequests:         m.requests,
		WebSocketConnections: m.connections,
		Goroutines:           runtime.NumGoroutine(),
		HeapMB:               safeUint64ToInt64(memStats.HeapAlloc) / (1024 * 1024),
		GCCycles:             memStats.NumGC,
	}
}

// safeUint64ToInt64 safely converts uint64 to int64, capping at max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}
