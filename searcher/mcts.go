package searcher

import (
	"errors"
	"sync"
	"time"

	"chessmcts/experiments/metrics"
	"chessmcts/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNoChildren = errors.New("root has no children: search started from a terminal state")

type Option func(mcts *MCTS)

// MCTS searches for the best next state of player, starting from a root state.
type MCTS struct {
	player      game.Player
	goroutines  int
	iterations  int
	cutoff      int
	exploration float64
	rng         *rand.Rand
	root        *node
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithCutoff bounds rollouts to depth random moves. A depth of 0 evaluates the expanded child directly.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		m.cutoff = depth
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.exploration = c
	}
}

// WithGoroutines runs rollouts in parallel. Backups stay serialized per node.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		m.goroutines = goroutines
	}
}

// WithSeed makes a single goroutine search reproducible
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(player game.Player, state game.State, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		player:      player,
		goroutines:  DefaultGoroutines,
		iterations:  DefaultIterations,
		cutoff:      DefaultCutoff,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.iterations <= 0 {
		panic("Must specify a positive number of search iterations")
	}
	if m.cutoff < 0 {
		panic("Rollout cutoff must not be negative")
	}
	if m.exploration < 0 {
		panic("Exploration constant must not be negative")
	}
	if m.goroutines <= 0 {
		panic("Must specify a positive number of goroutines")
	}
	m.root = newNode(nil, state)
	m.metrics.SetTreeReset(true)
	return m
}

// Root returns the state the next search starts from
func (m *MCTS) Root() game.State {
	return m.root.state
}

// BestAction runs the search and returns the root's child with the highest average value.
func (m *MCTS) BestAction() (game.State, error) {
	state, _, err := m.Search()
	return state, err
}

// Search runs the configured number of iterations and reports the best next state with the search metrics.
// It fails with ErrNoChildren when the root state has no successors.
func (m *MCTS) Search() (game.State, metrics.SearchMetric, error) {
	m.metrics.Start(m.goroutines, m.iterations, m.cutoff, m.exploration)
	m.iterate()
	metric := m.metrics.Complete()

	best := m.root.bestChild()
	if best == nil {
		return nil, metric, ErrNoChildren
	}

	log.Debug().Msgf("search for %s finished after %d visits: best average value %.4f over %d visits",
		m.player, m.root.Visits(), best.AverageValue(), best.Visits())
	return best.state, metric, nil
}

func (m *MCTS) iterate() {
	task := make(chan any, m.iterations)
	for i := 0; i < m.iterations; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.rng.Uint64()))
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(rng)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) simulate(rng *rand.Rand) {
	leaf := selection(m.root, m.exploration)
	child := expansion(leaf, rng)
	if child == nil { // Terminal leaf
		return
	}
	value, full := rollout(child.state, m.player, m.cutoff, rng)
	if full {
		m.metrics.AddFullPlayout()
	}
	backup(child, value)
}

// selection descends by maximum UCB1 until it reaches a leaf
func selection(root *node, c float64) *node {
	n := root
	for !n.IsLeaf() {
		n = n.selectChild(c)
	}
	return n
}

// expansion attaches the leaf's successors and picks one of them at random
func expansion(leaf *node, rng *rand.Rand) *node {
	children := leaf.expand()
	if len(children) == 0 {
		return nil
	}
	return children[rng.Intn(len(children))]
}

// rollout plays random successors until a terminal state or the cutoff depth,
// then evaluates the reached state from player's perspective. It also reports
// whether the rollout reached a terminal state.
func rollout(state game.State, player game.Player, cutoff int, rng *rand.Rand) (float64, bool) {
	for depth := 0; !state.IsTerminal() && depth < cutoff; depth++ {
		next, err := game.RandomSuccessor(state, rng)
		if err != nil { // Game without moves that does not flag itself terminal
			break
		}
		state = next
	}
	return state.Value(player), state.IsTerminal()
}

func backup(n *node, value float64) {
	for n != nil {
		n = n.Backup(value)
	}
}

// UpdateRoot moves the root to the node holding state if it lies within
// numPlayers levels below the current root, keeping its statistics. Deeper
// matches are not found and a fresh root is created instead.
func (m *MCTS) UpdateRoot(state game.State, numPlayers int) bool {
	nodes := m.root.Children()
	for depth := 0; depth < numPlayers; depth++ {
		var next []*node
		for _, n := range nodes {
			if n.state.Equal(state) {
				n.parent = nil
				m.root = n
				m.metrics.SetTreeReset(false)
				return true
			}
			next = append(next, n.Children()...)
		}
		nodes = next
	}

	log.Warn().Msgf("state not found within %d levels of the search tree, starting a fresh tree", numPlayers)
	m.root = newNode(nil, state)
	m.metrics.SetTreeReset(true)
	return false
}
