package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMove(t *testing.T) {
	state := NewGameState()
	pawn := state.PieceAt(mustSquare(t, "e2"))

	result := state.ApplyMove(pawn, mustSquare(t, "e4"), "")
	require.True(t, result.Moved)
	assert.Nil(t, result.Captured)
	assert.False(t, result.Promoted)
	assert.Same(t, pawn, result.Piece)
	assert.Equal(t, mustSquare(t, "e4"), pawn.Position)
	assert.Nil(t, state.PieceAt(mustSquare(t, "e2")))
	assert.Equal(t, PlayerColorBlack, state.CurrentPlayer)
	assert.Equal(t, PlayerColorWhite, state.Opponent)
}

func TestApplyMoveRejectsWithoutChangingState(t *testing.T) {
	state := NewGameState()
	before := state.FEN()

	blackPawn := state.PieceAt(mustSquare(t, "e7"))
	assert.False(t, state.ApplyMove(blackPawn, mustSquare(t, "e5"), "").Moved, "out of turn")

	rook := state.PieceAt(mustSquare(t, "a1"))
	assert.False(t, state.ApplyMove(rook, mustSquare(t, "a4"), "").Moved, "blocked")

	stray := NewPiece(Queen, PlayerColorWhite, mustSquare(t, "d4"))
	assert.False(t, state.ApplyMove(stray, mustSquare(t, "d5"), "").Moved, "not on the board")

	assert.False(t, state.ApplyMove(nil, mustSquare(t, "d5"), "").Moved)
	assert.Equal(t, before, state.FEN())
	assert.Equal(t, PlayerColorWhite, state.CurrentPlayer)
}

func TestApplyMoveCaptureCreditsScore(t *testing.T) {
	state := stateOf(t, PlayerColorWhite, "wKe1", "wRa1", "bNa6", "bKe8")
	rook := state.PieceAt(mustSquare(t, "a1"))

	result := state.ApplyMove(rook, mustSquare(t, "a6"), "")
	require.True(t, result.Moved)
	require.NotNil(t, result.Captured)
	assert.Equal(t, Knight, result.Captured.Type)
	assert.Equal(t, 3, state.Scores.White)
	assert.Equal(t, 0, state.Scores.Black)
	assert.Len(t, state.Board.Black, 1)
	assert.Same(t, rook, state.PieceAt(mustSquare(t, "a6")))
}

func TestApplyMovePromotion(t *testing.T) {
	tests := []struct {
		name     string
		choice   string
		target   string
		want     PieceType
		points   int
		captured bool
	}{
		{name: "rook", choice: "rook", target: "d1", want: Rook, points: 5},
		{name: "short knight", choice: "N", target: "d1", want: Knight, points: 3},
		{name: "unrecognised defaults to queen", choice: "dragon", target: "d1", want: Queen, points: 9},
		{name: "empty defaults to queen", choice: "", target: "d1", want: Queen, points: 9},
		{name: "capture and promote", choice: "bishop", target: "c1", want: Bishop, points: 3, captured: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := stateOf(t, PlayerColorBlack, "bKa8", "bNg8", "bPd2", "wKh1", "wRc1")
			pawn := state.PieceAt(mustSquare(t, "d2"))
			index := state.Board.indexOf(pawn)
			target := mustSquare(t, tt.target)
			require.True(t, NeedsPromotion(pawn, target))

			result := state.ApplyMove(pawn, target, tt.choice)
			require.True(t, result.Moved)
			assert.True(t, result.Promoted)

			promoted := state.PieceAt(target)
			require.NotNil(t, promoted)
			assert.Same(t, promoted, result.Piece)
			assert.Equal(t, tt.want, promoted.Type)
			assert.Equal(t, PlayerColorBlack, promoted.Color)
			assert.Equal(t, tt.points, promoted.Points)
			assert.True(t, promoted.Promoted)
			assert.Same(t, promoted, state.Board.Black[index], "promotion keeps the pawn's slot")
			assert.Len(t, state.Board.Black, 3)
			for _, p := range state.Board.Black {
				assert.NotEqual(t, Pawn, p.Type)
			}
			if tt.captured {
				assert.Equal(t, 5, state.Scores.Black)
				assert.Len(t, state.Board.White, 1)
			}
			assert.Equal(t, PlayerColorWhite, state.CurrentPlayer)
		})
	}
}

func TestApplyMoveHasNoUndo(t *testing.T) {
	state := NewGameState()
	pawn := state.PieceAt(mustSquare(t, "e2"))
	require.True(t, state.ApplyMove(pawn, mustSquare(t, "e4"), "").Moved)
	assert.False(t, state.IsLegalMove(pawn, mustSquare(t, "e2")), "pawns never retreat")

	state = stateOf(t, PlayerColorWhite, "wKe1", "wRa1", "bKe8")
	rook := state.PieceAt(mustSquare(t, "a1"))
	require.True(t, state.ApplyMove(rook, mustSquare(t, "a4"), "").Moved)
	assert.True(t, state.IsLegalMove(rook, mustSquare(t, "a1")))
	assert.Equal(t, mustSquare(t, "a4"), rook.Position)
}

func TestParsePromotion(t *testing.T) {
	tests := map[string]PieceType{
		"queen":  Queen,
		"Q":      Queen,
		"ROOK":   Rook,
		"r":      Rook,
		"Bishop": Bishop,
		"b":      Bishop,
		"knight": Knight,
		"n":      Knight,
		"k":      Knight,
		"king":   Queen,
		"pawn":   Queen,
		"":       Queen,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePromotion(in), in)
	}
}

func TestStrictRejectsSelfCheck(t *testing.T) {
	state := stateOf(t, PlayerColorWhite, "wKe1", "wBe2", "bRe8", "bKa8")
	bishop := state.PieceAt(mustSquare(t, "e2"))
	target := mustSquare(t, "d3")

	assert.True(t, state.IsMoveAllowed(bishop, target), "pins are not screened by default")
	state.Strict = true
	assert.False(t, state.IsMoveAllowed(bishop, target))
	assert.Empty(t, state.AllowedMoves(bishop))
}

func TestStrictCloseDefendingLoophole(t *testing.T) {
	state := stateOf(t, PlayerColorBlack, "bKe8", "bRa5", "wRe1", "wKa1")
	rook := state.PieceAt(mustSquare(t, "a5"))

	assert.True(t, state.IsMoveAllowed(rook, mustSquare(t, "a4")))
	state.Strict = true
	assert.False(t, state.IsMoveAllowed(rook, mustSquare(t, "a4")))
	assert.Equal(t, []Square{mustSquare(t, "e5")}, state.AllowedMoves(rook))
}

func TestClone(t *testing.T) {
	state := NewGameState()
	clone := state.Clone()
	pawn := clone.PieceAt(mustSquare(t, "d2"))
	require.True(t, clone.ApplyMove(pawn, mustSquare(t, "d4"), "").Moved)

	assert.NotNil(t, state.PieceAt(mustSquare(t, "d2")))
	assert.Equal(t, PlayerColorWhite, state.CurrentPlayer)
	assert.Equal(t, PlayerColorBlack, clone.CurrentPlayer)
}
