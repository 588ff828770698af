package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chessmcts/game"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// FEN renders the board in Forsyth-Edwards notation. Row 0 is rank 8 and
// player one plays white. Castling rights follow the unmoved king and corner
// rook flags; en passant is never available.
func (b Board) FEN(player game.Player) string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.Symbol())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if player == game.PlayerTwo {
		side = "b"
	}
	return fmt.Sprintf("%s %s %s - 0 1", sb.String(), side, b.castlingRights())
}

func (b *Board) castlingRights() string {
	rights := ""
	for _, player := range []game.Player{game.PlayerOne, game.PlayerTwo} {
		row := homeRow(player)
		king, found := b.findKing(player)
		if !found || king.Row != row || b.At(king).HasMoved {
			continue
		}
		for _, corner := range []struct {
			col    int
			symbol string
		}{{Size - 1, "k"}, {0, "q"}} {
			rook := b[row][corner.col]
			if rook.Kind == Rook && rook.Owner == player && !rook.HasMoved {
				if player == game.PlayerOne {
					rights += strings.ToUpper(corner.symbol)
				} else {
					rights += corner.symbol
				}
			}
		}
	}
	if rights == "" {
		return "-"
	}
	return rights
}

// ParseFEN reads the placement, side to move and castling fields. Pawns off
// their starting row, kings without castling rights and rooks without the
// matching right are marked as moved. Remaining fields are ignored.
func ParseFEN(fen string) (Board, game.Player, error) {
	var b Board
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return b, game.NoPlayer, fmt.Errorf("%w: expected at least 2 fields, got %d", ErrInvalidFEN, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != Size {
		return b, game.NoPlayer, fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidFEN, Size, len(ranks))
	}
	for row, rank := range ranks {
		col := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				col += int(r - '0')
				continue
			}
			kind, owner, ok := kindFromSymbol(r)
			if !ok {
				return b, game.NoPlayer, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, r)
			}
			if col >= Size {
				return b, game.NoPlayer, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, Size-row)
			}
			moved := kind == Pawn || kind == Rook || kind == King
			b[row][col] = Piece{Kind: kind, Owner: owner, HasMoved: moved}
			col++
		}
		if col != Size {
			return b, game.NoPlayer, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, Size-row, col)
		}
	}

	var player game.Player
	switch fields[1] {
	case "w":
		player = game.PlayerOne
	case "b":
		player = game.PlayerTwo
	default:
		return b, game.NoPlayer, fmt.Errorf("%w: unknown side to move %q", ErrInvalidFEN, fields[1])
	}

	castling := "-"
	if len(fields) > 2 {
		castling = fields[2]
	}
	b.restoreFlags(castling)
	return b, player, nil
}

func (b *Board) restoreFlags(castling string) {
	for col := 0; col < Size; col++ {
		if p := &b[Size-2][col]; p.Kind == Pawn && p.Owner == game.PlayerOne {
			p.HasMoved = false
		}
		if p := &b[1][col]; p.Kind == Pawn && p.Owner == game.PlayerTwo {
			p.HasMoved = false
		}
	}

	for _, r := range castling {
		player := game.PlayerTwo
		if r >= 'A' && r <= 'Z' {
			player = game.PlayerOne
		}
		col := -1
		switch r {
		case 'K', 'k':
			col = Size - 1
		case 'Q', 'q':
			col = 0
		}
		if col < 0 {
			continue
		}
		row := homeRow(player)
		rook := &b[row][col]
		king, found := b.findKing(player)
		if rook.Kind != Rook || rook.Owner != player || !found || king.Row != row {
			continue
		}
		rook.HasMoved = false
		b[king.Row][king.Col].HasMoved = false
	}
}
