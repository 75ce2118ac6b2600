package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

type MockLogReader struct {
	mock.Mock
}

func (m *MockLogReader) Read(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

type MockSummaryExtractor struct {
	mock.Mock
}

func (m *MockSummaryExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	args := m.Called(ctx, text)
	if rates := args.Get(0); rates != nil {
		return rates.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTableExtractor struct {
	mock.Mock
}

func (m *MockTableExtractor) Extract(ctx context.Context, text string) (*entities.TableGrid, error) {
	args := m.Called(ctx, text)
	if grid := args.Get(0); grid != nil {
		return grid.(*entities.TableGrid), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReportService_BuildSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("runs read, extract and assemble", func(t *testing.T) {
		reader := &MockLogReader{}
		summary := &MockSummaryExtractor{}
		service := NewReportService(reader, summary, &MockTableExtractor{}, nil, nil)

		reader.On("Read", ctx, "run.log").Return("log text", nil)
		summary.On("Extract", ctx, "log text").Return(flatSequence(80), nil)

		report, err := service.BuildSummary(ctx, "run.log")
		require.NoError(t, err)
		assert.Equal(t, "run.log", report.Source)
		assert.Equal(t, 80, report.ValueCount())

		reader.AssertExpectations(t)
		summary.AssertExpectations(t)
	})

	t.Run("read failure stops the pipeline", func(t *testing.T) {
		reader := &MockLogReader{}
		summary := &MockSummaryExtractor{}
		service := NewReportService(reader, summary, &MockTableExtractor{}, nil, nil)

		readErr := entities.NewReportError(entities.KindIO, "reading log", errors.New("no such file"))
		reader.On("Read", ctx, "missing.log").Return("", readErr)

		_, err := service.BuildSummary(ctx, "missing.log")
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrIO))
		summary.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("short log is a structure error", func(t *testing.T) {
		reader := &MockLogReader{}
		summary := &MockSummaryExtractor{}
		service := NewReportService(reader, summary, &MockTableExtractor{}, nil, nil)

		reader.On("Read", ctx, "short.log").Return("Hit rate: 99.9%", nil)
		summary.On("Extract", ctx, "Hit rate: 99.9%").Return([]string{"99.9%"}, nil)

		_, err := service.BuildSummary(ctx, "short.log")
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrStructure))
		assert.Contains(t, err.Error(), "assembling summary of short.log")
	})
}

func TestReportService_BuildTable(t *testing.T) {
	ctx := context.Background()

	t.Run("runs read, extract and assemble", func(t *testing.T) {
		reader := &MockLogReader{}
		table := &MockTableExtractor{}
		service := NewReportService(reader, &MockSummaryExtractor{}, table, NewAssembler(true, nil), nil)

		reader.On("Read", ctx, "table.log").Return("chunks", nil)
		table.On("Extract", ctx, "chunks").Return(fullGrid(t), nil)

		report, err := service.BuildTable(ctx, "table.log")
		require.NoError(t, err)
		assert.Equal(t, 80, report.RowCount())

		table.AssertExpectations(t)
	})

	t.Run("extract failure is wrapped", func(t *testing.T) {
		reader := &MockLogReader{}
		table := &MockTableExtractor{}
		service := NewReportService(reader, &MockSummaryExtractor{}, table, nil, nil)

		parseErr := entities.NewReportError(entities.KindMalformedNumber, "statistics count", errors.New("invalid syntax"))
		reader.On("Read", ctx, "bad.log").Return("chunks", nil)
		table.On("Extract", ctx, "chunks").Return(nil, parseErr)

		_, err := service.BuildTable(ctx, "bad.log")
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrMalformedNumber))
		assert.Contains(t, err.Error(), "extracting statistics from bad.log")
	})
}
