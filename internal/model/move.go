package model

// WSMove is a move request as sent by clients, squares in algebraic notation.
type WSMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

type Ply struct {
	Piece         *Piece    `json:"piece"`
	From          Square    `json:"from"`
	To            Square    `json:"to"`
	CapturedPiece *Piece    `json:"capturedPiece"`
	Promotion     PieceType `json:"promotion"`
	Notation      string    `json:"notation"`
}

// Move pairs a white and a black ply. Either may be nil: a game loaded with
// black to move starts with an empty white half.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func appendPly(history []Move, color PlayerColor, ply Ply) []Move {
	if color == PlayerColorWhite {
		return append(history, Move{WhitePly: &ply})
	}
	last := len(history) - 1
	if last < 0 || history[last].BlackPly != nil {
		return append(history, Move{BlackPly: &ply})
	}
	history[last].BlackPly = &ply
	return history
}
