package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"chessmcts/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts episodes and full playouts concurrently", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 100, 5, 1.5)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					c.AddEpisode()
					if j%5 == 0 {
						c.AddFullPlayout()
					}
				}
			}()
		}
		wg.Wait()
		c.SetTreeReset(true)

		got := c.Complete()

		require.Equal(t, 100, got.Episodes)
		require.Equal(t, 20, got.FullPlayouts)
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 100, got.Iterations)
		require.Equal(t, 5, got.Cutoff)
		require.Equal(t, 1.5, got.Exploration)
		require.True(t, got.IsTreeReset)
	})

	t.Run("restarting clears counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1, 1, 1)
		c.AddEpisode()
		c.Start(1, 1, 1, 1)

		require.Equal(t, 0, c.Complete().Episodes)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(1, 1, 1, 1)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "unit")
	require.NoError(t, err)

	now := time.Now()
	exploration := 1.4
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Goroutines: 2, Iterations: 10, Cutoff: 5, Exploration: &exploration}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{ID: 1, Agent1: 1, Agent2: 1, GameMetric: GameMetric{
		StartingPlayer: game.PlayerOne, Winner: game.PlayerTwo, StartTime: now, EndTime: now, TotalMoves: 12,
	}}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: game.PlayerOne}},
		{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: game.PlayerTwo}},
	}))

	for file, lines := range map[string]int{"agent_configs.csv": 2, "game_records.csv": 2, "move_records.csv": 3} {
		f, err := os.Open(filepath.Join(w.Dir(), file))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		require.Len(t, records, lines, "File %s should have a header and one line per record", file)
	}
}
