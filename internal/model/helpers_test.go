package model

import (
	"testing"
)

var pieceLetters = map[byte]PieceType{
	'K': King, 'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight, 'P': Pawn,
}

// boardOf builds a board from codes like "wKe1" or "bPd7".
func boardOf(t *testing.T, codes ...string) *BoardState {
	t.Helper()
	board := &BoardState{White: []*Piece{}, Black: []*Piece{}}
	for _, code := range codes {
		if len(code) != 4 {
			t.Fatalf("bad piece code %q", code)
		}
		kind, ok := pieceLetters[code[1]]
		if !ok {
			t.Fatalf("bad piece type in %q", code)
		}
		sq := mustSquare(t, code[2:])
		switch code[0] {
		case 'w':
			board.White = append(board.White, NewPiece(kind, PlayerColorWhite, sq))
		case 'b':
			board.Black = append(board.Black, NewPiece(kind, PlayerColorBlack, sq))
		default:
			t.Fatalf("bad colour in %q", code)
		}
	}
	return board
}

func stateOf(t *testing.T, toMove PlayerColor, codes ...string) *GameState {
	t.Helper()
	return newGameStateFrom(boardOf(t, codes...), toMove)
}

func mustSquare(t *testing.T, s string) Square {
	t.Helper()
	sq, ok := ParseSquare(s)
	if !ok {
		t.Fatalf("bad square %q", s)
	}
	return sq
}

func squares(t *testing.T, names ...string) []Square {
	t.Helper()
	out := make([]Square, 0, len(names))
	for _, n := range names {
		out = append(out, mustSquare(t, n))
	}
	return out
}
