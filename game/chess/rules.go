package chess

import "chessmcts/game"

// IsInCheck reports whether some opposing piece could capture player's king
// on its next move. A board without player's king counts as in check as soon
// as the opponent has any move at all.
func IsInCheck(b *Board, player game.Player) bool {
	king, found := b.findKing(player)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece.IsEmpty() || piece.Owner == player {
				continue
			}
			for _, move := range b.PotentialMoves(Square{Row: row, Col: col}) {
				if !found || move.To == king {
					return true
				}
			}
		}
	}
	return false
}

// legalBoards applies every pseudo-legal move of the player to move and keeps
// the boards that do not leave that player's king capturable.
func legalBoards(b *Board, player game.Player) []Board {
	var boards []Board
	seen := make(map[Board]struct{})
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece.IsEmpty() || piece.Owner != player {
				continue
			}
			for _, move := range b.PotentialMoves(Square{Row: row, Col: col}) {
				next := b.Apply(move)
				if IsInCheck(&next, player) {
					continue
				}
				if _, ok := seen[next]; ok {
					continue
				}
				seen[next] = struct{}{}
				boards = append(boards, next)
			}
		}
	}
	return boards
}

// IsInCheckmate reports whether player is in check and no successor of the
// player to move gets player out of check. The successors considered are
// always those of the player to move, even when player is the opponent.
func (s *State) IsInCheckmate(player game.Player) bool {
	if !IsInCheck(&s.board, player) {
		return false
	}
	return s.allLeaveInCheck(player)
}

// IsInStalemate reports whether every successor of the player to move leaves
// player in check. It holds vacuously when there are no successors and does
// not require player to be out of check now.
func (s *State) IsInStalemate(player game.Player) bool {
	return s.allLeaveInCheck(player)
}

func (s *State) allLeaveInCheck(player game.Player) bool {
	for i := range s.next {
		if !IsInCheck(&s.next[i], player) {
			return false
		}
	}
	return true
}
