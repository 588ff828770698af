package engine

import (
	"chessmcts/experiments/metrics"
	"chessmcts/game"
)

// MaxTurns bounds a game when no limit is configured
const MaxTurns = 10000

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

type Agent interface {
	// FindMove returns the state after the agent's move and the metrics of the search behind it
	FindMove(state game.State) (game.State, metrics.SearchMetric, error)
}
