package engine

import (
	"fmt"
	"time"

	"chessmcts/experiments/metrics"
	"chessmcts/game"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	State    game.State
	agents   map[game.Player]Agent
	maxTurns int
	observer func(turn int, state game.State)
}

type EngineOption func(e *LocalEngine)

func WithMaxTurns(maxTurns int) EngineOption {
	return func(e *LocalEngine) {
		if maxTurns > 0 {
			e.maxTurns = maxTurns
		}
	}
}

// WithObserver registers a callback receiving the state after every turn
func WithObserver(observer func(turn int, state game.State)) EngineOption {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

// NewLocalEngine pairs agents[0] with player one and agents[1] with player two
func NewLocalEngine(agents []Agent, state game.State, options ...EngineOption) *LocalEngine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}

	e := &LocalEngine{
		State: state,
		agents: map[game.Player]Agent{
			game.PlayerOne: agents[0],
			game.PlayerTwo: agents[1],
		},
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the state is terminal or the turn limit is reached.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.State.Player())

	turn := 0
	for !e.State.IsTerminal() && turn < e.maxTurns {
		player := e.State.Player()
		agent, ok := e.agents[player]
		if !ok {
			return game.NoPlayer, gameMetric, moveMetrics, fmt.Errorf("no agent for %s", player)
		}

		next, searchMetric, err := agent.FindMove(e.State)
		if err != nil {
			return game.NoPlayer, gameMetric, moveMetrics, fmt.Errorf("turn %d: %w", turn+1, err)
		}
		turn++

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			SearchMetric: searchMetric,
		})
		e.State = next

		log.Debug().Msgf("turn %d: %s moved, value for %s is %.4f", turn, player, player, next.Value(player))
		if e.observer != nil {
			e.observer(turn, next)
		}
	}

	winner := game.Winner(e.State)
	if e.State.IsTerminal() {
		log.Info().Msgf("game over after %d turns, winner: %s", turn, winner)
	} else {
		log.Info().Msgf("stopped after %d turns without a winner", turn)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn
	return winner, gameMetric, moveMetrics, nil
}
