package chess

import "chessmcts/game"

// Move is a pseudo-legal move: consistent with the piece's movement pattern
// but not yet checked for leaving its own king capturable.
type Move struct {
	From     Square
	To       Square
	Castle   bool
	RookFrom Square
	RookTo   Square
}

type direction struct {
	dRow, dCol int
}

var (
	orthogonal = []direction{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allAround  = append(append([]direction{}, orthogonal...), diagonal...)
	jumps      = []direction{{2, 1}, {2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {-2, 1}, {-2, -1}}
)

// PotentialMoves lists the pseudo-legal moves of the piece standing on from.
// An empty square yields no moves.
func (b *Board) PotentialMoves(from Square) []Move {
	piece := b.At(from)
	switch piece.Kind {
	case Pawn:
		return b.pawnMoves(from, piece)
	case Knight:
		return b.directionalMoves(from, piece, jumps, 1)
	case Bishop:
		return b.directionalMoves(from, piece, diagonal, Size)
	case Rook:
		return b.directionalMoves(from, piece, orthogonal, Size)
	case Queen:
		return b.directionalMoves(from, piece, allAround, Size)
	case King:
		return append(b.directionalMoves(from, piece, allAround, 1), b.castlingMoves(from, piece)...)
	default:
		return nil
	}
}

// PotentialBoards applies every pseudo-legal move of the piece on from.
func (b *Board) PotentialBoards(from Square) []Board {
	moves := b.PotentialMoves(from)
	boards := make([]Board, 0, len(moves))
	for _, move := range moves {
		boards = append(boards, b.Apply(move))
	}
	return boards
}

// directionalMoves walks each direction up to spaces steps, stopping at the
// first occupied square. Captures of an enemy piece are included.
func (b *Board) directionalMoves(from Square, piece Piece, directions []direction, spaces int) []Move {
	var moves []Move
	for _, dir := range directions {
		for space := 1; space <= spaces; space++ {
			to := from.offset(dir.dRow*space, dir.dCol*space)
			if !to.InBounds() {
				break
			}
			target := b.At(to)
			if target.IsEmpty() {
				moves = append(moves, Move{From: from, To: to})
				continue
			}
			if target.Owner != piece.Owner {
				moves = append(moves, Move{From: from, To: to})
			}
			break
		}
	}
	return moves
}

func homeRow(player game.Player) int {
	if player == game.PlayerOne {
		return Size - 1
	}
	return 0
}

// castlingMoves requires an unmoved king, an unmoved rook of the same owner in
// a corner of the home row and empty squares between them. Squares the king
// passes through are not checked for attacks.
func (b *Board) castlingMoves(from Square, king Piece) []Move {
	row := homeRow(king.Owner)
	if king.HasMoved || from.Row != row {
		return nil
	}

	var moves []Move
	sides := []struct {
		rookCol, kingTo, rookTo int
	}{
		{rookCol: 0, kingTo: 1, rookTo: 2},
		{rookCol: Size - 1, kingTo: Size - 2, rookTo: Size - 3},
	}
	for _, side := range sides {
		rookSq := Square{Row: row, Col: side.rookCol}
		rook := b.At(rookSq)
		if rook.Kind != Rook || rook.Owner != king.Owner || rook.HasMoved {
			continue
		}
		if !b.emptyBetween(row, from.Col, side.rookCol) {
			continue
		}
		moves = append(moves, Move{
			From:     from,
			To:       Square{Row: row, Col: side.kingTo},
			Castle:   true,
			RookFrom: rookSq,
			RookTo:   Square{Row: row, Col: side.rookTo},
		})
	}
	return moves
}

func (b *Board) emptyBetween(row, colA, colB int) bool {
	lo, hi := min(colA, colB), max(colA, colB)
	for col := lo + 1; col < hi; col++ {
		if !b[row][col].IsEmpty() {
			return false
		}
	}
	return true
}

// pawnMoves: player one advances towards row 0, player two towards row 7.
// Pawns reaching the last row stay pawns.
func (b *Board) pawnMoves(from Square, pawn Piece) []Move {
	forward, startRow := -1, Size-2
	if pawn.Owner == game.PlayerTwo {
		forward, startRow = 1, 1
	}

	var moves []Move
	one := from.offset(forward, 0)
	if one.InBounds() && b.At(one).IsEmpty() {
		moves = append(moves, Move{From: from, To: one})

		two := from.offset(2*forward, 0)
		if from.Row == startRow && two.InBounds() && b.At(two).IsEmpty() {
			moves = append(moves, Move{From: from, To: two})
		}
	}

	for _, dCol := range []int{-1, 1} {
		to := from.offset(forward, dCol)
		if !to.InBounds() {
			continue
		}
		target := b.At(to)
		if !target.IsEmpty() && target.Owner != pawn.Owner {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}
