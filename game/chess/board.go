package chess

import (
	"strings"

	"chessmcts/game"
)

const Size = 8

// Square addresses a board cell. Row 0 is player two's home row.
type Square struct {
	Row int
	Col int
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// Board is a value type: assigning or passing a Board copies every cell,
// so no two boards ever share a Piece.
type Board [Size][Size]Piece

var backRank = [Size]Kind{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// DefaultBoard returns the starting layout. Player one moves first, from row 7 towards row 0.
func DefaultBoard() Board {
	var b Board
	for col := 0; col < Size; col++ {
		b[0][col] = NewPiece(backRank[col], game.PlayerTwo)
		b[1][col] = NewPiece(Pawn, game.PlayerTwo)
		b[6][col] = NewPiece(Pawn, game.PlayerOne)
		b[7][col] = NewPiece(backRank[col], game.PlayerOne)
	}
	return b
}

func (b *Board) At(s Square) Piece {
	return b[s.Row][s.Col]
}

// Apply returns the board after move. The receiver is left untouched.
func (b Board) Apply(move Move) Board {
	piece := b[move.From.Row][move.From.Col]
	piece.HasMoved = true
	b[move.From.Row][move.From.Col] = Piece{}
	if move.Castle {
		rook := b[move.RookFrom.Row][move.RookFrom.Col]
		rook.HasMoved = true
		b[move.RookFrom.Row][move.RookFrom.Col] = Piece{}
		b[move.RookTo.Row][move.RookTo.Col] = rook
	}
	b[move.To.Row][move.To.Col] = piece
	return b
}

func (b *Board) findKing(player game.Player) (Square, bool) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece.Kind == King && piece.Owner == player {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteString(" " + b[row][col].Symbol() + " ")
			if col < Size-1 {
				sb.WriteString("|")
			}
		}
		if row < Size-1 {
			sb.WriteString("\n-------------------------------\n")
		}
	}
	return sb.String()
}
