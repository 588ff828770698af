package engine

import (
	"fmt"
	"time"

	"chessmcts/experiments/metrics"
	"chessmcts/game"
	"chessmcts/searcher"

	"golang.org/x/exp/rand"
)

// numPlayers is how deep a reused tree is searched for the state after the opponent's reply
const numPlayers = 2

// MCTSAgent searches a fresh tree every turn, or keeps its tree across turns when ReuseRoot is set.
type MCTSAgent struct {
	player game.Player
	config metrics.AgentConfig
	rng    *rand.Rand
	mcts   *searcher.MCTS
}

func NewMCTSAgent(player game.Player, config metrics.AgentConfig) *MCTSAgent {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &MCTSAgent{
		player: player,
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (a *MCTSAgent) options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithRand(rand.New(rand.NewSource(a.rng.Uint64()))),
		searcher.WithMetrics(),
	}
	if a.config.Iterations > 0 {
		options = append(options, searcher.WithIterations(a.config.Iterations))
	}
	if a.config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(a.config.Cutoff))
	}
	if a.config.Exploration != nil {
		options = append(options, searcher.WithExploration(*a.config.Exploration))
	}
	if a.config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(a.config.Goroutines))
	}
	return options
}

func (a *MCTSAgent) FindMove(state game.State) (game.State, metrics.SearchMetric, error) {
	if a.mcts == nil || !a.config.ReuseRoot {
		a.mcts = searcher.NewMCTS(a.player, state, a.options()...)
	} else {
		a.mcts.UpdateRoot(state, numPlayers)
	}

	next, metric, err := a.mcts.Search()
	if err != nil {
		return nil, metric, fmt.Errorf("%s failed to find a move: %w", a.player, err)
	}
	if a.config.ReuseRoot {
		// Keep the subtree of the chosen move for the next turn
		a.mcts.UpdateRoot(next, 1)
	}
	return next, metric, nil
}
