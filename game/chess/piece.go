package chess

import (
	"strings"

	"chessmcts/game"
)

type Kind int

const (
	None Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var symbols = map[Kind]string{
	Pawn:   "p",
	Knight: "n",
	Bishop: "b",
	Rook:   "r",
	Queen:  "q",
	King:   "k",
}

// Piece is stored by value in every board cell. The zero Piece is an empty square.
type Piece struct {
	Kind     Kind
	Owner    game.Player
	HasMoved bool
}

func NewPiece(kind Kind, owner game.Player) Piece {
	return Piece{Kind: kind, Owner: owner}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == None
}

// Symbol renders the piece as p/n/b/r/q/k, uppercase for player one and a space for an empty square
func (p Piece) Symbol() string {
	symbol, ok := symbols[p.Kind]
	if !ok {
		return " "
	}
	if p.Owner == game.PlayerOne {
		return strings.ToUpper(symbol)
	}
	return symbol
}

func (p Piece) String() string {
	return p.Symbol()
}

func kindFromSymbol(r rune) (Kind, game.Player, bool) {
	owner := game.PlayerTwo
	if r >= 'A' && r <= 'Z' {
		owner = game.PlayerOne
	}
	lower := strings.ToLower(string(r))
	for kind, symbol := range symbols {
		if symbol == lower {
			return kind, owner, true
		}
	}
	return None, game.NoPlayer, false
}

// Material holds the heuristic piece values used by State.Value.
// Kings carry no material value.
type Material struct {
	Values  map[Kind]float64
	Divisor float64
}

// DefaultMaterial divides by 38, the most material one side can hold besides its king
var DefaultMaterial = Material{
	Values: map[Kind]float64{
		Pawn:   1,
		Knight: 3,
		Bishop: 3,
		Rook:   5,
		Queen:  8,
	},
	Divisor: 38,
}

func (m Material) value(kind Kind) float64 {
	if kind == King {
		return 0
	}
	return m.Values[kind]
}

// Balance sums player's material minus the opponent's, normalized by the divisor
func (m Material) Balance(b *Board, player game.Player) float64 {
	value := 0.0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				continue
			}
			if piece.Owner == player {
				value += m.value(piece.Kind)
			} else {
				value -= m.value(piece.Kind)
			}
		}
	}
	return value / m.Divisor
}
