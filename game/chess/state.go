package chess

import (
	"encoding/binary"
	"hash/fnv"

	"chessmcts/game"

	"golang.org/x/exp/rand"
)

type Option func(s *State)

// WithMaterial replaces the piece values used to evaluate non-terminal states
func WithMaterial(material Material) Option {
	return func(s *State) {
		s.material = material
	}
}

// State is an immutable chess position together with the player to move.
type State struct {
	board    Board
	player   game.Player
	material Material
	next     []Board // legal successor boards, computed once
	terminal bool
}

func NewState(board Board, player game.Player, options ...Option) *State {
	s := &State{
		board:    board,
		player:   player,
		material: DefaultMaterial,
	}
	for _, option := range options {
		option(s)
	}
	if s.material.Divisor <= 0 {
		panic("Material divisor must be positive")
	}
	s.next = legalBoards(&s.board, player)
	s.terminal = s.IsInStalemate(game.PlayerOne) || s.IsInStalemate(game.PlayerTwo) ||
		s.IsInCheckmate(game.PlayerOne) || s.IsInCheckmate(game.PlayerTwo)
	return s
}

// NewGame returns the starting position with player one to move
func NewGame(options ...Option) *State {
	return NewState(DefaultBoard(), game.PlayerOne, options...)
}

func (s *State) Board() Board {
	return s.board
}

func (s *State) Player() game.Player {
	return s.player
}

func (s *State) IsTerminal() bool {
	return s.terminal
}

func (s *State) Successors() []game.State {
	opponent := s.player.Opponent()
	states := make([]game.State, 0, len(s.next))
	for _, board := range s.next {
		states = append(states, NewState(board, opponent, WithMaterial(s.material)))
	}
	return states
}

// RandomSuccessor builds only the chosen successor, which keeps rollouts
// from running the legality scans of every sibling
func (s *State) RandomSuccessor(rng *rand.Rand) (game.State, error) {
	if len(s.next) == 0 {
		return nil, game.ErrNoSuccessors
	}
	board := s.next[rng.Intn(len(s.next))]
	return NewState(board, s.player.Opponent(), WithMaterial(s.material)), nil
}

func (s *State) Value(player game.Player) float64 {
	opponent := player.Opponent()
	if s.IsInCheckmate(player) {
		return -1
	}
	if s.IsInCheckmate(opponent) {
		return 1
	}
	if s.IsInStalemate(player) || s.IsInStalemate(opponent) {
		return 0
	}
	return s.material.Balance(&s.board, player)
}

func (s *State) Hash() game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.player))
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := s.board[row][col]
			binary.Write(hasher, binary.LittleEndian, int64(piece.Kind))
			binary.Write(hasher, binary.LittleEndian, int64(piece.Owner))
			binary.Write(hasher, binary.LittleEndian, piece.HasMoved)
		}
	}

	return game.StateHash(hasher.Sum64())
}

func (s *State) Equal(other game.State) bool {
	o, ok := other.(*State)
	if !ok {
		return false
	}
	return s.board == o.board && s.player == o.player
}

func (s *State) String() string {
	return s.board.String()
}
