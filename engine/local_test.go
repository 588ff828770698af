package engine

import (
	"errors"
	"math"
	"testing"

	"chessmcts/experiments/metrics"
	"chessmcts/game"
	"chessmcts/game/chess"
	"chessmcts/game/tictactoe"

	"github.com/stretchr/testify/require"
)

type failingAgent struct{}

func (failingAgent) FindMove(state game.State) (game.State, metrics.SearchMetric, error) {
	return nil, metrics.SearchMetric{}, errors.New("no move")
}

func mctsAgents(config metrics.AgentConfig) []Agent {
	second := config
	second.Seed++
	return []Agent{
		NewMCTSAgent(game.PlayerOne, config),
		NewMCTSAgent(game.PlayerTwo, second),
	}
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("plays tic-tac-toe to the end", func(t *testing.T) {
		config := metrics.AgentConfig{Iterations: 50, Cutoff: 9, Seed: 1}
		var observed []game.State
		e := NewLocalEngine(mctsAgents(config), tictactoe.NewGame(), WithObserver(func(turn int, state game.State) {
			observed = append(observed, state)
		}))

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.True(t, e.State.IsTerminal(), "Game should be over")
		require.Equal(t, game.Winner(e.State), winner)
		require.Equal(t, game.PlayerOne, gameMetric.StartingPlayer)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.LessOrEqual(t, gameMetric.TotalMoves, 9)
		require.Len(t, observed, gameMetric.TotalMoves)
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, 50, mm.Episodes, "Every move should run the configured iterations")
		}
		require.Equal(t, game.PlayerOne, moveMetrics[0].Player)
		require.Equal(t, game.PlayerTwo, moveMetrics[1].Player)
	})

	t.Run("reusing the tree", func(t *testing.T) {
		// Enough iterations that every child of the root gets expanded
		config := metrics.AgentConfig{Iterations: 500, Cutoff: 9, Seed: 2, ReuseRoot: true}
		e := NewLocalEngine(mctsAgents(config), tictactoe.NewGame())

		_, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.True(t, e.State.IsTerminal())
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Greater(t, len(moveMetrics), 2)
		require.True(t, moveMetrics[0].IsTreeReset, "First search of player one starts from a fresh tree")
		require.True(t, moveMetrics[1].IsTreeReset, "First search of player two starts from a fresh tree")
		for _, mm := range moveMetrics[2:] {
			require.False(t, mm.IsTreeReset, "Step %d should continue the previous tree", mm.Step)
		}
	})

	t.Run("turn limit", func(t *testing.T) {
		config := metrics.AgentConfig{Iterations: 2, Cutoff: 1, Seed: 3}
		e := NewLocalEngine(mctsAgents(config), chess.NewGame(), WithMaxTurns(2))

		winner, gameMetric, _, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.NoPlayer, winner)
		require.Equal(t, 2, gameMetric.TotalMoves)
		require.Equal(t, game.PlayerOne, e.State.Player(), "Two moves should hand the turn back")
	})

	t.Run("agent errors stop the game", func(t *testing.T) {
		e := NewLocalEngine([]Agent{failingAgent{}, failingAgent{}}, tictactoe.NewGame())

		_, _, _, err := e.Run()

		require.Error(t, err)
	})

	t.Run("terminal start has no moves", func(t *testing.T) {
		board := tictactoe.Board{{1, 1, 1}, {2, 2, 0}, {0, 0, 0}}
		e := NewLocalEngine([]Agent{failingAgent{}, failingAgent{}}, tictactoe.NewState(board, game.PlayerTwo))

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.PlayerOne, winner)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics)
	})
}

func TestMCTSAgent(t *testing.T) {
	t.Run("terminal state is an error", func(t *testing.T) {
		board := tictactoe.Board{{1, 1, 1}, {2, 2, 0}, {0, 0, 0}}
		agent := NewMCTSAgent(game.PlayerTwo, metrics.AgentConfig{Iterations: 5})

		_, _, err := agent.FindMove(tictactoe.NewState(board, game.PlayerTwo))

		require.Error(t, err)
	})

	t.Run("exploration defaults unless configured", func(t *testing.T) {
		agent := NewMCTSAgent(game.PlayerOne, metrics.AgentConfig{Iterations: 5, Seed: 5})
		_, metric, err := agent.FindMove(tictactoe.NewGame())
		require.NoError(t, err)
		require.Equal(t, math.Sqrt2, metric.Exploration)

		zero := 0.0
		agent = NewMCTSAgent(game.PlayerOne, metrics.AgentConfig{Iterations: 5, Seed: 5, Exploration: &zero})
		_, metric, err = agent.FindMove(tictactoe.NewGame())
		require.NoError(t, err)
		require.Zero(t, metric.Exploration, "Zero exploration should reach the searcher")
	})

	t.Run("move hands the turn to the opponent", func(t *testing.T) {
		agent := NewMCTSAgent(game.PlayerOne, metrics.AgentConfig{Iterations: 5, Seed: 4})

		next, metric, err := agent.FindMove(tictactoe.NewGame())

		require.NoError(t, err)
		require.Equal(t, game.PlayerTwo, next.Player())
		require.Equal(t, 5, metric.Episodes)
	})
}
