package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// MockReportService is a mock implementation of ports.ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) BuildSummary(ctx context.Context, path string) (*entities.SummaryReport, error) {
	args := m.Called(ctx, path)
	if report := args.Get(0); report != nil {
		return report.(*entities.SummaryReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportService) BuildTable(ctx context.Context, path string) (*entities.TableReport, error) {
	args := m.Called(ctx, path)
	if report := args.Get(0); report != nil {
		return report.(*entities.TableReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func testSummary(rate string) *entities.SummaryReport {
	rows := make([]entities.SummaryRow, 0, len(entities.Algorithms))
	for _, algo := range entities.Algorithms {
		rows = append(rows, entities.SummaryRow{Algorithm: algo, HitRates: []string{rate, rate, rate, rate}})
	}
	return &entities.SummaryReport{
		Source:      "run.log",
		MemorySizes: entities.MemorySizes,
		Sections: []entities.SummarySection{
			{Workload: entities.WorkloadSimple, Trace: entities.WorkloadSimple.TraceName(), Rows: rows},
		},
	}
}

func testServerConfig() entities.ServerConfig {
	return entities.ServerConfig{
		Host:        "127.0.0.1",
		Port:        0,
		CORSOrigins: []string{"http://localhost:8080"},
	}
}

func testRenderers(format entities.OutputFormat) (ports.ReportRenderer, error) {
	return renderer.New(format, renderer.Options{LiveReload: format == entities.FormatHTML})
}

// newTestServer returns a server over a summary store that has been built once
func newTestServer(t *testing.T, service *MockReportService) *Server {
	t.Helper()
	store := NewReportStore(service, entities.ReportSummary, "run.log")
	return NewServer(store, testRenderers, testServerConfig(), nil)
}
