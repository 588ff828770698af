package metrics

// AgentConfig describes the search settings of one agent in a match-up
type AgentConfig struct {
	ID          int
	Goroutines  int
	Iterations  int
	Cutoff      int
	Exploration *float64 // nil keeps the searcher's default
	Seed        uint64
	ReuseRoot   bool
}
