package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"chessmcts/engine"
	"chessmcts/experiments"
	"chessmcts/game"
	"chessmcts/game/chess"
	"chessmcts/game/tictactoe"
	"chessmcts/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML file with search settings")
	iterations := flag.Int("iterations", meta.ITERATIONS, "Number of MCTS iterations per move")
	cutoff := flag.Int("cutoff", meta.WITH_CUTOFF, "Rollout depth cutoff")
	exploration := flag.Float64("exploration", math.Sqrt2, "UCB1 exploration constant, 0 for pure exploitation")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel rollouts")
	seed := flag.Uint64("seed", 0, "Random seed, 0 for a time based seed")
	gameName := flag.String("game", "chess", "Game to play: chess or tictactoe")
	fen := flag.String("fen", "", "Chess starting position in FEN")
	reuse := flag.Bool("reuse", false, "Keep the search tree between turns")
	experiment := flag.String("experiment", "", "Run an experiment instead: iterations, cutoff or parallel")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *experiment != "" {
		if err := runExperiment(*experiment); err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
		}
		return
	}

	config := meta.Default()
	if *configPath != "" {
		loaded, err := meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		config = loaded
	}
	// Flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iterations":
			config.Iterations = *iterations
		case "cutoff":
			config.Cutoff = *cutoff
		case "exploration":
			config.Exploration = *exploration
		case "goroutines":
			config.Goroutines = *goroutines
		case "seed":
			config.Seed = *seed
		case "reuse":
			config.ReuseRoot = *reuse
		}
	})
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	state, err := initialState(*gameName, *fen)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up the game")
	}

	second := config.AgentConfig(2)
	if second.Seed != 0 {
		second.Seed++
	}
	agents := []engine.Agent{
		engine.NewMCTSAgent(game.PlayerOne, config.AgentConfig(1)),
		engine.NewMCTSAgent(game.PlayerTwo, second),
	}

	fmt.Println(state)
	e := engine.NewLocalEngine(agents, state,
		engine.WithMaxTurns(config.MaxTurns),
		engine.WithObserver(func(turn int, state game.State) {
			fmt.Printf("Turn %d:\n%s\n", turn, state)
		}),
	)

	winner, gameMetric, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	if winner == game.NoPlayer {
		fmt.Printf("No winner after %d turns (%s)\n", gameMetric.TotalMoves, gameMetric.Duration)
		return
	}
	fmt.Printf("%s wins after %d turns (%s)\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
}

func initialState(name, fen string) (game.State, error) {
	switch name {
	case "chess":
		if fen == "" {
			return chess.NewGame(), nil
		}
		board, player, err := chess.ParseFEN(fen)
		if err != nil {
			return nil, err
		}
		return chess.NewState(board, player), nil
	case "tictactoe":
		return tictactoe.NewGame(), nil
	default:
		return nil, fmt.Errorf("unknown game %q", name)
	}
}

func runExperiment(name string) error {
	switch name {
	case "iterations":
		return experiments.RunIterationsExperiment()
	case "cutoff":
		return experiments.RunCutoffExperiment()
	case "parallel":
		return experiments.RunParallelizationExperiment()
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
}
