package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// ErrNoReport is returned while no report has been built successfully
var ErrNoReport = errors.New("no report available")

// ReportStore holds the most recent report built from the served log. A
// failed rebuild keeps the previous report and records the error.
type ReportStore struct {
	service ports.ReportService
	kind    entities.ReportType
	path    string
	monitor *monitoring.Monitor

	mu      sync.RWMutex
	summary *entities.SummaryReport
	table   *entities.TableReport
	builtAt time.Time
	lastErr error
}

// StoreStatus describes the state of a ReportStore
type StoreStatus struct {
	Source    string              `json:"source"`
	Report    entities.ReportType `json:"report"`
	BuiltAt   time.Time           `json:"built_at"`
	LastError string              `json:"last_error,omitempty"`
}

// NewReportStore creates a store for one log and report type
func NewReportStore(service ports.ReportService, kind entities.ReportType, path string) *ReportStore {
	return &ReportStore{service: service, kind: kind, path: path}
}

// Refresh rebuilds the report from the log
func (s *ReportStore) Refresh(ctx context.Context) error {
	var (
		summary *entities.SummaryReport
		table   *entities.TableReport
		err     error
	)
	start := time.Now()

	switch s.kind {
	case entities.ReportSummary:
		summary, err = s.service.BuildSummary(ctx, s.path)
	case entities.ReportTable:
		table, err = s.service.BuildTable(ctx, s.path)
	default:
		err = fmt.Errorf("unknown report type: %s", s.kind)
	}

	if s.monitor != nil {
		s.monitor.RecordBuild(time.Since(start), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	if err != nil {
		return err
	}
	s.summary, s.table = summary, table
	s.builtAt = time.Now()
	return nil
}

// Render writes the current report with the given renderer
func (s *ReportStore) Render(ctx context.Context, w io.Writer, r ports.ReportRenderer) error {
	s.mu.RLock()
	summary, table := s.summary, s.table
	s.mu.RUnlock()

	switch {
	case summary != nil:
		return r.RenderSummary(ctx, w, summary)
	case table != nil:
		return r.RenderTable(ctx, w, table)
	default:
		return ErrNoReport
	}
}

// Status returns the source, build time and last error of the store
func (s *ReportStore) Status() StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := StoreStatus{Source: s.path, Report: s.kind, BuiltAt: s.builtAt}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}
