package chess

import (
	"testing"

	"chessmcts/game"

	"github.com/dylhunn/dragontoothmg"
	notnil "github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

const openingFEN = "rnbkqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKQBNR w KQkq - 0 1"

func TestFEN(t *testing.T) {
	t.Run("opening position round trip", func(t *testing.T) {
		require.Equal(t, openingFEN, DefaultBoard().FEN(game.PlayerOne))

		board, player, err := ParseFEN(openingFEN)

		require.NoError(t, err)
		require.Equal(t, game.PlayerOne, player)
		require.Equal(t, DefaultBoard(), board, "Parsed board should restore unmoved flags")
	})

	t.Run("missing castling rights mark kings and rooks as moved", func(t *testing.T) {
		board, player, err := ParseFEN("r2k3r/8/8/8/8/8/8/R2K3R b - - 0 1")

		require.NoError(t, err)
		require.Equal(t, game.PlayerTwo, player)
		require.True(t, board[0][3].HasMoved)
		require.True(t, board[7][0].HasMoved)
		for _, m := range board.PotentialMoves(sq(0, 3)) {
			require.False(t, m.Castle)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, fen := range []string{
			"",
			"8/8/8/8/8/8/8 w - - 0 1",
			"8/8/8/8/8/8/8/7x w - - 0 1",
			"8/8/8/8/8/8/8/9 w - - 0 1",
			"8/8/8/8/8/8/8/8 x - - 0 1",
		} {
			_, _, err := ParseFEN(fen)
			require.ErrorIs(t, err, ErrInvalidFEN, "FEN %q should be rejected", fen)
		}
	})
}

// Positions without castling rights, en passant or promotions, where the
// legality rules here coincide with the full rules of chess.
var sharedRulePositions = []string{
	"rnbkqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKQBNR w - - 0 1",
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w - - 2 3",
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/5Q2/PPPP1PPP/RNB1KBNR b - - 1 2",
	"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
	"4k3/8/8/8/1b6/8/3P4/4K3 w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
}

func TestSuccessorsAgreeWithReferenceGenerators(t *testing.T) {
	for _, fen := range sharedRulePositions {
		t.Run(fen, func(t *testing.T) {
			board, player, err := ParseFEN(fen)
			require.NoError(t, err)
			state := NewState(board, player)

			position, err := notnil.FEN(fen)
			require.NoError(t, err)
			reference := notnil.NewGame(position)
			require.Len(t, state.Successors(), len(reference.ValidMoves()), "Move count should match notnil/chess")

			dragon := dragontoothmg.ParseFen(fen)
			require.Len(t, state.Successors(), len(dragon.GenerateLegalMoves()), "Move count should match dragontoothmg")
		})
	}
}
