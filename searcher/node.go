package searcher

import (
	"math"
	"sync"

	"chessmcts/game"
)

// node holds the statistics of one state in the search tree. Statistics and
// children are guarded by the embedded lock so rollouts may back up concurrently.
type node struct {
	sync.RWMutex
	parent   *node
	children []*node
	state    game.State
	score    float64 // Sum of backed up values
	visits   int
}

func newNode(parent *node, state game.State) *node {
	return &node{
		parent: parent,
		state:  state,
	}
}

func (n *node) stats() (score float64, visits int) {
	n.RLock()
	defer n.RUnlock()

	return n.score, n.visits
}

func (n *node) Visits() int {
	n.RLock()
	defer n.RUnlock()

	return n.visits
}

// UCB1 balances the node's average value against an exploration bonus that
// grows with the parent's visits. Unvisited nodes score close to +Inf once the
// parent has been visited more than once.
func (n *node) UCB1(c float64) float64 {
	score, visits := n.stats()

	parentVisits := 1.0 // Root
	if n.parent != nil {
		parentVisits = math.Max(1, float64(n.parent.Visits()))
	}

	v := float64(visits) + Epsilon
	return score/v + c*math.Sqrt(math.Log(parentVisits)/v)
}

func (n *node) AverageValue() float64 {
	score, visits := n.stats()
	return score / (float64(visits) + Epsilon)
}

func (n *node) IsLeaf() bool {
	n.RLock()
	defer n.RUnlock()

	return len(n.children) == 0
}

func (n *node) Children() []*node {
	n.RLock()
	defer n.RUnlock()

	children := make([]*node, len(n.children))
	copy(children, n.children)
	return children
}

// AddChildren adds the children whose state is not already represented
func (n *node) AddChildren(children []*node) {
	n.Lock()
	defer n.Unlock()

	n.addChildren(children)
}

func (n *node) addChildren(children []*node) {
	existing := make(map[game.StateHash][]game.State, len(n.children))
	for _, child := range n.children {
		h := child.state.Hash()
		existing[h] = append(existing[h], child.state)
	}

	for _, child := range children {
		h := child.state.Hash()
		if containsState(existing[h], child.state) {
			continue
		}
		existing[h] = append(existing[h], child.state)
		child.parent = n
		n.children = append(n.children, child)
	}
}

func containsState(states []game.State, state game.State) bool {
	for _, s := range states {
		if s.Equal(state) {
			return true
		}
	}
	return false
}

// expand attaches a child per successor if no other rollout expanded the node first.
// It returns the node's children afterwards.
func (n *node) expand() []*node {
	n.Lock()
	defer n.Unlock()

	if len(n.children) == 0 {
		successors := n.state.Successors()
		children := make([]*node, 0, len(successors))
		for _, s := range successors {
			children = append(children, newNode(n, s))
		}
		n.addChildren(children)
	}

	children := make([]*node, len(n.children))
	copy(children, n.children)
	return children
}

// Backup records a rollout value and returns the parent
func (n *node) Backup(value float64) *node {
	n.Lock()
	defer n.Unlock()

	n.score += value
	n.visits++

	return n.parent
}

// bestChild returns the child with the highest average value, or nil for a leaf
func (n *node) bestChild() *node {
	var best *node
	bestValue := math.Inf(-1)
	for _, child := range n.Children() {
		if v := child.AverageValue(); v > bestValue {
			bestValue = v
			best = child
		}
	}
	return best
}

// selectChild returns the child with the highest UCB1 score
func (n *node) selectChild(c float64) *node {
	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.Children() {
		if score := child.UCB1(c); score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}
