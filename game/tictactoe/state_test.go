package tictactoe

import (
	"testing"

	"chessmcts/game"

	"github.com/stretchr/testify/require"
)

const (
	x = game.PlayerOne
	o = game.PlayerTwo
)

func TestSuccessors(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		state := NewGame()

		successors := state.Successors()

		require.Len(t, successors, 9)
		for _, s := range successors {
			require.Equal(t, o, s.Player())
			require.False(t, s.IsTerminal())
		}
	})

	t.Run("won board is terminal without successors", func(t *testing.T) {
		state := NewState(Board{{x, x, x}, {o, o, 0}, {0, 0, 0}}, o)

		require.True(t, state.IsTerminal())
		require.Empty(t, state.Successors())
		require.Equal(t, 1.0, state.Value(x))
		require.Equal(t, -1.0, state.Value(o))
		require.Equal(t, x, game.Winner(state))
	})
}

func TestTerminal(t *testing.T) {
	t.Run("diagonal win", func(t *testing.T) {
		state := NewState(Board{{o, x, x}, {x, o, 0}, {0, 0, o}}, x)

		require.True(t, state.IsTerminal())
		require.Equal(t, o, game.Winner(state))
	})

	t.Run("full board draw", func(t *testing.T) {
		state := NewState(Board{{x, o, x}, {x, o, o}, {o, x, x}}, o)

		require.True(t, state.IsTerminal())
		require.Equal(t, 0.0, state.Value(x))
		require.Equal(t, 0.0, state.Value(o))
		require.Equal(t, game.NoPlayer, game.Winner(state))
	})

	t.Run("open board", func(t *testing.T) {
		state := NewState(Board{{x, o, 0}, {0, 0, 0}, {0, 0, 0}}, x)

		require.False(t, state.IsTerminal())
		require.Len(t, state.Successors(), 7)
	})
}

func TestEquality(t *testing.T) {
	a := NewState(Board{{x, 0, 0}, {0, 0, 0}, {0, 0, 0}}, o)
	b := NewState(Board{{x, 0, 0}, {0, 0, 0}, {0, 0, 0}}, o)

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.Equal(NewGame()))
}
