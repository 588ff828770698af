package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// Player identifies one of the two sides of a game.
type Player int

const (
	NoPlayer  Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 3 - p
}

func (p Player) String() string {
	switch p {
	case PlayerOne, PlayerTwo:
		return fmt.Sprintf("player%d", int(p))
	default:
		return "none"
	}
}

type StateHash uint64

var ErrNoSuccessors = errors.New("state has no successors")

// State should be immutable - operations on State always return a new copy
type State interface {
	// Player returns the player to move.
	Player() Player
	// Successors returns every state reachable by exactly one legal move, without duplicates.
	Successors() []State
	// Value evaluates the state from perspective's point of view, between -1 and 1.
	// Terminal states evaluate to exactly -1, 0 or 1.
	Value(perspective Player) float64
	// IsTerminal is computed once when the state is constructed.
	IsTerminal() bool
	Hash() StateHash
	Equal(other State) bool
	String() string
}

// randomSuccessor is implemented by states that can build a single random
// successor without building all of them first
type randomSuccessor interface {
	RandomSuccessor(rng *rand.Rand) (State, error)
}

// RandomSuccessor picks one of the state's successors uniformly at random
func RandomSuccessor(s State, rng *rand.Rand) (State, error) {
	if r, ok := s.(randomSuccessor); ok {
		return r.RandomSuccessor(rng)
	}
	successors := s.Successors()
	if len(successors) == 0 {
		return nil, ErrNoSuccessors
	}
	return successors[rng.Intn(len(successors))], nil
}

// Winner derives the winner of a terminal state from its exact value.
// Non-terminal states and draws have no winner.
func Winner(s State) Player {
	if !s.IsTerminal() {
		return NoPlayer
	}
	switch v := s.Value(PlayerOne); {
	case v >= 1:
		return PlayerOne
	case v <= -1:
		return PlayerTwo
	default:
		return NoPlayer
	}
}
