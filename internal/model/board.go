package model

import (
	"fmt"
	"strings"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Points is the capture value of a piece of this type. The king's value is
// a bookkeeping sentinel; a king is never captured under correct play.
func (p PieceType) Points() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 100
	}
	return 0
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

const boardSize = 8

// Square is a board coordinate. X is the file (0 = a), Y the rank (0 = rank 1).
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsValidSquare reports whether sq lies on the board.
func IsValidSquare(sq Square) bool {
	return sq.X >= 0 && sq.X < boardSize && sq.Y >= 0 && sq.Y < boardSize
}

func (sq Square) String() string {
	return sq.getSquareNotation()
}

func (sq Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", sq.X+'a', sq.Y+1)
}

func (sq Square) getFileNotation() string {
	return fmt.Sprintf("%c", sq.X+'a')
}

// ParseSquare reads algebraic notation such as "e2".
func ParseSquare(s string) (Square, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Square{}, false
	}
	sq := Square{X: int(s[0] - 'a'), Y: int(s[1] - '1')}
	if !IsValidSquare(sq) {
		return Square{}, false
	}
	return sq, true
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Square      `json:"position"`
	Promoted bool        `json:"promoted"`
	Points   int         `json:"points"`
}

func NewPiece(t PieceType, color PlayerColor, sq Square) *Piece {
	return &Piece{Type: t, Color: color, Position: sq, Points: t.Points()}
}

// BoardState holds the live pieces of each side. The two collections are the
// board: there is no separate grid, occupancy is found by scanning them.
type BoardState struct {
	White []*Piece `json:"white"`
	Black []*Piece `json:"black"`
}

func (b *BoardState) Pieces(color PlayerColor) []*Piece {
	if color == PlayerColorWhite {
		return b.White
	}
	return b.Black
}

func (b *BoardState) setPieces(color PlayerColor, pieces []*Piece) {
	if color == PlayerColorWhite {
		b.White = pieces
	} else {
		b.Black = pieces
	}
}

// PieceAt returns the piece standing on sq, or nil.
func (b *BoardState) PieceAt(sq Square) *Piece {
	for _, p := range b.White {
		if p.Position == sq {
			return p
		}
	}
	for _, p := range b.Black {
		if p.Position == sq {
			return p
		}
	}
	return nil
}

// King returns the king of the given colour, or nil if the collection has none.
func (b *BoardState) King(color PlayerColor) *Piece {
	for _, p := range b.Pieces(color) {
		if p.Type == King {
			return p
		}
	}
	return nil
}

func (b *BoardState) indexOf(p *Piece) int {
	for i, q := range b.Pieces(p.Color) {
		if q == p {
			return i
		}
	}
	return -1
}

func (b *BoardState) remove(p *Piece) {
	i := b.indexOf(p)
	if i < 0 {
		return
	}
	pieces := b.Pieces(p.Color)
	next := make([]*Piece, 0, len(pieces)-1)
	next = append(next, pieces[:i]...)
	next = append(next, pieces[i+1:]...)
	b.setPieces(p.Color, next)
}

// clone deep-copies the board. The returned lookup maps each original piece
// to its copy so callers can follow a piece into the hypothetical board.
func (b *BoardState) clone() (*BoardState, map[*Piece]*Piece) {
	lookup := make(map[*Piece]*Piece, len(b.White)+len(b.Black))
	cp := func(src []*Piece) []*Piece {
		dst := make([]*Piece, len(src))
		for i, p := range src {
			q := *p
			dst[i] = &q
			lookup[p] = &q
		}
		return dst
	}
	return &BoardState{White: cp(b.White), Black: cp(b.Black)}, lookup
}

func newBoard() *BoardState {
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	board := &BoardState{}
	for x, t := range backRank {
		board.White = append(board.White, NewPiece(t, PlayerColorWhite, Square{X: x, Y: 0}))
		board.Black = append(board.Black, NewPiece(t, PlayerColorBlack, Square{X: x, Y: 7}))
	}
	for x := 0; x < boardSize; x++ {
		board.White = append(board.White, NewPiece(Pawn, PlayerColorWhite, Square{X: x, Y: 1}))
		board.Black = append(board.Black, NewPiece(Pawn, PlayerColorBlack, Square{X: x, Y: 6}))
	}
	return board
}
