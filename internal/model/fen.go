package model

import (
	"fmt"
	"sort"

	"github.com/notnil/chess"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var (
	fromChessType = map[chess.PieceType]PieceType{
		chess.King: King, chess.Queen: Queen, chess.Rook: Rook,
		chess.Bishop: Bishop, chess.Knight: Knight, chess.Pawn: Pawn,
	}
	whitePieces = map[PieceType]chess.Piece{
		King: chess.WhiteKing, Queen: chess.WhiteQueen, Rook: chess.WhiteRook,
		Bishop: chess.WhiteBishop, Knight: chess.WhiteKnight, Pawn: chess.WhitePawn,
	}
	blackPieces = map[PieceType]chess.Piece{
		King: chess.BlackKing, Queen: chess.BlackQueen, Rook: chess.BlackRook,
		Bishop: chess.BlackBishop, Knight: chess.BlackKnight, Pawn: chess.BlackPawn,
	}
)

// LoadFEN builds a game state from a FEN string. Castling and en passant
// fields are accepted but ignored. The position must hold exactly one king
// per side.
func LoadFEN(fen string) (*GameState, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	pos := chess.NewGame(opt).Position()

	squares := make([]chess.Square, 0, 32)
	squareMap := pos.Board().SquareMap()
	for sq := range squareMap {
		squares = append(squares, sq)
	}
	sort.Slice(squares, func(i, j int) bool { return squares[i] < squares[j] })

	board := &BoardState{White: []*Piece{}, Black: []*Piece{}}
	for _, sq := range squares {
		cp := squareMap[sq]
		t, ok := fromChessType[cp.Type()]
		if !ok {
			continue
		}
		at := Square{X: int(sq.File()), Y: int(sq.Rank())}
		switch cp.Color() {
		case chess.White:
			board.White = append(board.White, NewPiece(t, PlayerColorWhite, at))
		case chess.Black:
			board.Black = append(board.Black, NewPiece(t, PlayerColorBlack, at))
		}
	}
	if countKings(board.White) != 1 || countKings(board.Black) != 1 {
		return nil, fmt.Errorf("%w: need exactly one king per side", ErrInvalidPosition)
	}

	toMove := PlayerColorWhite
	if pos.Turn() == chess.Black {
		toMove = PlayerColorBlack
	}
	return newGameStateFrom(board, toMove), nil
}

// FEN renders the position. Castling and en passant are always "-" and the
// move counters are fixed since the engine tracks neither.
func (s *GameState) FEN() string {
	squareMap := make(map[chess.Square]chess.Piece, len(s.Board.White)+len(s.Board.Black))
	for _, p := range s.Board.White {
		squareMap[toChessSquare(p.Position)] = whitePieces[p.Type]
	}
	for _, p := range s.Board.Black {
		squareMap[toChessSquare(p.Position)] = blackPieces[p.Type]
	}
	turn := "w"
	if s.CurrentPlayer == PlayerColorBlack {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(squareMap).String(), turn)
}

func toChessSquare(sq Square) chess.Square {
	return chess.Square(sq.Y*boardSize + sq.X)
}

func countKings(pieces []*Piece) int {
	n := 0
	for _, p := range pieces {
		if p.Type == King {
			n++
		}
	}
	return n
}
