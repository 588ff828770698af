package tictactoe

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"chessmcts/game"
)

const Size = 3

// Board cells hold the owning player, or game.NoPlayer when empty
type Board [Size][Size]game.Player

type State struct {
	board    Board
	player   game.Player
	winner   game.Player
	terminal bool
}

func NewState(board Board, player game.Player) *State {
	s := &State{board: board, player: player}
	s.winner = board.winner()
	s.terminal = s.winner != game.NoPlayer || board.full()
	return s
}

// NewGame returns an empty board with player one to move
func NewGame() *State {
	return NewState(Board{}, game.PlayerOne)
}

func (b *Board) winner() game.Player {
	lines := [][Size][2]int{}
	for i := 0; i < Size; i++ {
		lines = append(lines,
			[Size][2]int{{i, 0}, {i, 1}, {i, 2}},
			[Size][2]int{{0, i}, {1, i}, {2, i}})
	}
	lines = append(lines,
		[Size][2]int{{0, 0}, {1, 1}, {2, 2}},
		[Size][2]int{{0, 2}, {1, 1}, {2, 0}})

	for _, line := range lines {
		first := b[line[0][0]][line[0][1]]
		if first == game.NoPlayer {
			continue
		}
		if b[line[1][0]][line[1][1]] == first && b[line[2][0]][line[2][1]] == first {
			return first
		}
	}
	return game.NoPlayer
}

func (b *Board) full() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == game.NoPlayer {
				return false
			}
		}
	}
	return true
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
	if s.terminal {
		return nil
	}
	var states []game.State
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if s.board[i][j] != game.NoPlayer {
				continue
			}
			next := s.board
			next[i][j] = s.player
			states = append(states, NewState(next, s.player.Opponent()))
		}
	}
	return states
}

// Value is 1 for a win, -1 for a loss and 0 otherwise
func (s *State) Value(player game.Player) float64 {
	switch s.winner {
	case game.NoPlayer:
		return 0
	case player:
		return 1
	default:
		return -1
	}
}

func (s *State) Hash() game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.player))
	for _, row := range s.board {
		for _, cell := range row {
			binary.Write(hasher, binary.LittleEndian, int64(cell))
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
	var sb strings.Builder
	for i, row := range s.board {
		cells := make([]string, 0, Size)
		for _, cell := range row {
			switch cell {
			case game.PlayerOne:
				cells = append(cells, "X")
			case game.PlayerTwo:
				cells = append(cells, "O")
			default:
				cells = append(cells, " ")
			}
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + " \n")
		if i < Size-1 {
			sb.WriteString("-----------\n")
		}
	}
	return sb.String()
}
