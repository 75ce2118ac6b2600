package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/test/builders"
)

func TestTableExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("complete log fills every cell", func(t *testing.T) {
		log := builders.NewTableLogBuilder().Build()

		grid, err := NewTableExtractor(true, nil).Extract(ctx, log)
		require.NoError(t, err)
		assert.Equal(t, entities.ExpectedGroups()*len(entities.Workloads), grid.Len())

		for _, w := range entities.Workloads {
			for _, size := range entities.MemorySizes {
				for _, algo := range entities.Algorithms {
					stats, ok := grid.Lookup(w, entities.GridKey{MemorySize: size, Algorithm: algo})
					require.True(t, ok, "%s %d %s", w, size, algo)
					assert.Equal(t, stats.CleanEvictions+stats.DirtyEvictions, stats.TotalEvictions)
				}
			}
		}
	})

	t.Run("statistics block fields", func(t *testing.T) {
		log := builders.NewTableLogBuilder().
			WithRuns(entities.GridKey{MemorySize: 50, Algorithm: entities.AlgorithmLRU}).
			WithStats(func(w int, key entities.GridKey) builders.RunStats {
				return builders.RunStats{Hits: 120, Misses: 30, Clean: 5, Dirty: 2, HitRate: "80.0%"}
			}).
			Build()

		grid, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.NoError(t, err)

		stats, ok := grid.Lookup(entities.WorkloadMatmul, entities.GridKey{MemorySize: 50, Algorithm: entities.AlgorithmLRU})
		require.True(t, ok)
		assert.Equal(t, entities.EvictionStats{
			HitRate:        "80.0%",
			HitCount:       120,
			MissCount:      30,
			TotalEvictions: 7,
			CleanEvictions: 5,
			DirtyEvictions: 2,
		}, stats)
		assert.Equal(t, []string{"80.0%", "120", "30", "7", "5", "2"}, stats.Fields())
	})

	t.Run("line four is ignored", func(t *testing.T) {
		block := "hits 1\nmisses 2\nclean 3\ndirty 4\n\tgarbage that is not a number\nrate 50%"
		stats, err := parseStatsBlock(block)
		require.NoError(t, err)
		assert.Equal(t, "50%", stats.HitRate)
		assert.Equal(t, int64(7), stats.TotalEvictions)
	})

	t.Run("malformed count", func(t *testing.T) {
		log := builders.NewTableLogBuilder().
			WithRuns(entities.GridKey{MemorySize: 100, Algorithm: entities.AlgorithmClock}).
			Build()
		log = strings.Replace(log, "Dirty evictions: 2", "Dirty evictions: two", 1)

		_, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrMalformedNumber))
		assert.Contains(t, err.Error(), "run 0 (100/clock), workload simple")
	})

	t.Run("malformed memory size", func(t *testing.T) {
		log := builders.NewTableLogBuilder().Build()
		log = strings.Replace(log, "\n\n50 rand\n\n", "\n\nfifty rand\n\n", 1)

		_, err := NewTableExtractor(false, nil).Extract(ctx, log)
		assert.True(t, errors.Is(err, entities.ErrMalformedNumber))
	})

	t.Run("malformed header", func(t *testing.T) {
		log := builders.NewTableLogBuilder().Build()
		log = strings.Replace(log, "\n\n50 rand\n\n", "\n\n50 rand extra\n\n", 1)

		_, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrStructure))
		assert.Contains(t, err.Error(), "malformed run header")
	})

	t.Run("short block", func(t *testing.T) {
		log := builders.BuildPreamble + "\n\n50 rand\n\nHit count: 1\nMiss count: 2\n\nx\n\ny\n\nz\n"

		_, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrStructure))
		assert.Contains(t, err.Error(), "short statistics block")
	})

	t.Run("duplicate run", func(t *testing.T) {
		key := entities.GridKey{MemorySize: 50, Algorithm: entities.AlgorithmFIFO}
		log := builders.NewTableLogBuilder().WithRuns(key, key).Build()

		_, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate run")
	})

	t.Run("wrong run count warns unless strict", func(t *testing.T) {
		log := builders.NewTableLogBuilder().
			WithRuns(entities.GridKey{MemorySize: 50, Algorithm: entities.AlgorithmRandom}).
			Build()

		grid, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.NoError(t, err)
		assert.Equal(t, len(entities.Workloads), grid.Len())

		_, err = NewTableExtractor(true, nil).Extract(ctx, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected number of runs")
	})

	t.Run("partial trailing group", func(t *testing.T) {
		log := builders.NewTableLogBuilder().WithTail("\n200 opt\n\nHit count: 1\n").Build()

		grid, err := NewTableExtractor(false, nil).Extract(ctx, log)
		require.NoError(t, err)
		assert.Equal(t, entities.ExpectedGroups()*len(entities.Workloads), grid.Len())

		_, err = NewTableExtractor(true, nil).Extract(ctx, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "partial run group")
	})

	t.Run("trailing blank chunks are ignored", func(t *testing.T) {
		log := builders.NewTableLogBuilder().WithTail("\n\n  \n").Build()

		_, err := NewTableExtractor(true, nil).Extract(ctx, log)
		require.NoError(t, err)
	})
}

func TestSplitChunks(t *testing.T) {
	assert.Nil(t, splitChunks("only build output"))
	assert.Equal(t, []string{"a", "b\nc"}, splitChunks("build\n\na\n\nb\nc\n\n"))
}
