package experiments

import (
	"fmt"

	"chessmcts/engine"
	"chessmcts/experiments/metrics"
	"chessmcts/game"
	"chessmcts/game/chess"
	"chessmcts/meta"

	"github.com/rs/zerolog/log"
)

const (
	NumGames = 10 // Per match up
	RootDir  = "experiments"
)

type experiment struct {
	name     string
	configs  []metrics.AgentConfig
	matchUps [][]metrics.AgentConfig
	numGames int
	maxTurns int
	newGame  func() game.State
}

func newChessGame() game.State {
	return chess.NewGame()
}

func RunIterationsExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Iterations: meta.ITERATIONS, Cutoff: meta.WITH_CUTOFF}
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Iterations: 50, Cutoff: meta.WITH_CUTOFF},
		{ID: 2, Goroutines: 1, Iterations: 100, Cutoff: meta.WITH_CUTOFF},
		{ID: 3, Goroutines: 1, Iterations: 200, Cutoff: meta.WITH_CUTOFF},
		{ID: 4, Goroutines: 1, Iterations: 400, Cutoff: meta.WITH_CUTOFF},
	}

	return run(experiment{
		name:     "iterations",
		configs:  append(configs, baseline),
		matchUps: againstBaseline(baseline, configs),
		numGames: NumGames,
		maxTurns: meta.MAX_TURNS,
		newGame:  newChessGame,
	}, RootDir)
}

func RunCutoffExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 4, Iterations: 100, Cutoff: 1}
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: baseline.Goroutines, Iterations: baseline.Iterations, Cutoff: 5},
		{ID: 2, Goroutines: baseline.Goroutines, Iterations: baseline.Iterations, Cutoff: 10},
		{ID: 3, Goroutines: baseline.Goroutines, Iterations: baseline.Iterations, Cutoff: 25},
		{ID: 4, Goroutines: baseline.Goroutines, Iterations: baseline.Iterations, Cutoff: 50},
	}

	return run(experiment{
		name:     "cutoff",
		configs:  append(configs, baseline),
		matchUps: againstBaseline(baseline, configs),
		numGames: NumGames,
		maxTurns: meta.MAX_TURNS,
		newGame:  newChessGame,
	}, RootDir)
}

func RunParallelizationExperiment() error {
	// Same iteration budget per goroutine so extra workers buy extra search
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Iterations: 100, Cutoff: meta.WITH_CUTOFF}
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 2, Iterations: 200, Cutoff: meta.WITH_CUTOFF},
		{ID: 2, Goroutines: 4, Iterations: 400, Cutoff: meta.WITH_CUTOFF},
		{ID: 3, Goroutines: 8, Iterations: 800, Cutoff: meta.WITH_CUTOFF},
	}

	return run(experiment{
		name:     "parallelization",
		configs:  append(configs, baseline),
		matchUps: againstBaseline(baseline, configs),
		numGames: NumGames,
		maxTurns: meta.MAX_TURNS,
		newGame:  newChessGame,
	}, RootDir)
}

// againstBaseline pairs each config with the baseline, alternating who moves first
func againstBaseline(baseline metrics.AgentConfig, configs []metrics.AgentConfig) [][]metrics.AgentConfig {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps,
			[]metrics.AgentConfig{baseline, config},
			[]metrics.AgentConfig{config, baseline},
		)
	}
	return matchUps
}

func run(e experiment, root string) error {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", e.name)

	for mi, matchup := range e.matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.matchUps), config1, config2)

		for i := 0; i < e.numGames; i++ {
			winner, gameMetric, moveMetrics, err := runGame(e, config1, config2, uint64(count))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(e.matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", e.name)

	writer, err := metrics.NewWriter(root, e.name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %d games and %d moves in %s", len(gameRecords), len(moveRecords), writer.Dir())
	return nil
}

// runGame plays config1 as player one against config2 as player two
func runGame(e experiment, config1, config2 metrics.AgentConfig, offset uint64) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	// Distinct seeds per game so repeated games differ
	if config1.Seed != 0 {
		config1.Seed += 2 * offset
	}
	if config2.Seed != 0 {
		config2.Seed += 2*offset + 1
	}
	agents := []engine.Agent{
		engine.NewMCTSAgent(game.PlayerOne, config1),
		engine.NewMCTSAgent(game.PlayerTwo, config2),
	}
	local := engine.NewLocalEngine(agents, e.newGame(), engine.WithMaxTurns(e.maxTurns))
	return local.Run()
}
