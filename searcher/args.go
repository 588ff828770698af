package searcher

import "math"

// Hyperparameters for MCTS

const DefaultIterations = 10 // Iterations per search
const DefaultCutoff = 5      // Rollout depth before evaluating a non-terminal state
const DefaultGoroutines = 1

var DefaultExploration = math.Sqrt2 // Exploration constant c in UCB1

// Epsilon keeps UCB1 and average values finite for unvisited nodes
const Epsilon = 1e-6
