package model

import "strings"

type Scores struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func (s *Scores) credit(color PlayerColor, points int) {
	if color == PlayerColorWhite {
		s.White += points
	} else {
		s.Black += points
	}
}

// GameState is everything the rules engine reads and writes: the board, whose
// turn it is and the running capture scores.
type GameState struct {
	Board         *BoardState `json:"boardState"`
	CurrentPlayer PlayerColor `json:"currentPlayer"`
	Opponent      PlayerColor `json:"opponent"`
	Scores        Scores      `json:"scores"`
	// Strict additionally rejects moves that leave the mover's king attacked,
	// including moves of pinned pieces and king steps taken out of check.
	Strict bool `json:"strict"`
}

func NewGameState() *GameState {
	return newGameStateFrom(newBoard(), PlayerColorWhite)
}

func newGameStateFrom(board *BoardState, toMove PlayerColor) *GameState {
	return &GameState{
		Board:         board,
		CurrentPlayer: toMove,
		Opponent:      toMove.Opponent(),
	}
}

// Clone returns an independent copy of the state.
func (s *GameState) Clone() *GameState {
	board, _ := s.Board.clone()
	clone := *s
	clone.Board = board
	return &clone
}

type MoveResult struct {
	Moved    bool   `json:"moved"`
	Captured *Piece `json:"captured"`
	Promoted bool   `json:"promoted"`
	// Piece is the piece standing on the target after the move; for a
	// promotion that is the replacement, not the pawn.
	Piece *Piece `json:"piece"`
}

func (s *GameState) PieceAt(sq Square) *Piece {
	return s.Board.PieceAt(sq)
}

func (s *GameState) LegalMoves(piece *Piece) []Square {
	return s.Board.LegalMoves(piece)
}

func (s *GameState) IsLegalMove(piece *Piece, target Square) bool {
	return s.Board.IsLegalMove(piece, target)
}

func (s *GameState) IsMoveAllowed(piece *Piece, target Square) bool {
	if !s.Board.IsMoveAllowed(piece, target) {
		return false
	}
	if s.Strict && s.Board.LeavesKingInCheck(piece, target) {
		return false
	}
	return true
}

// AllowedMoves filters piece's legal moves through IsMoveAllowed.
func (s *GameState) AllowedMoves(piece *Piece) []Square {
	allowed := []Square{}
	for _, sq := range s.Board.LegalMoves(piece) {
		if s.IsMoveAllowed(piece, sq) {
			allowed = append(allowed, sq)
		}
	}
	return allowed
}

func (s *GameState) IsInCheck(color PlayerColor) bool {
	return s.Board.IsInCheck(color)
}

func (s *GameState) IsCheckmate(color PlayerColor) bool {
	return s.Board.IsCheckmate(color)
}

// NeedsPromotion reports whether moving piece to target reaches the last rank
// with a pawn, in which case a promotion choice is consumed by ApplyMove.
func NeedsPromotion(piece *Piece, target Square) bool {
	return piece != nil && piece.Type == Pawn && (target.Y == 0 || target.Y == boardSize-1)
}

// ParsePromotion maps a free-form choice to a promotion piece type. Anything
// unrecognised promotes to a queen.
func ParsePromotion(choice string) PieceType {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "rook", "r":
		return Rook
	case "bishop", "b":
		return Bishop
	case "knight", "n", "k":
		return Knight
	default:
		return Queen
	}
}

// ApplyMove executes a legal move for the side to move and flips the turn.
// If piece does not belong to the current player or target is not one of its
// legal moves, nothing changes and Moved is false. IsMoveAllowed is not
// consulted; callers gate on it first.
func (s *GameState) ApplyMove(piece *Piece, target Square, promotion string) MoveResult {
	if piece == nil || piece.Color != s.CurrentPlayer || s.Board.indexOf(piece) < 0 {
		return MoveResult{}
	}
	if !s.Board.IsLegalMove(piece, target) {
		return MoveResult{}
	}

	result := MoveResult{Moved: true, Piece: piece}
	victim := s.Board.PieceAt(target)

	if NeedsPromotion(piece, target) {
		promoted := NewPiece(ParsePromotion(promotion), piece.Color, target)
		promoted.Promoted = true
		pieces := s.Board.Pieces(piece.Color)
		pieces[s.Board.indexOf(piece)] = promoted
		result.Piece = promoted
		result.Promoted = true
	} else {
		piece.Position = target
	}

	if victim != nil && victim.Color == s.Opponent {
		s.Board.remove(victim)
		s.Scores.credit(s.CurrentPlayer, victim.Points)
		result.Captured = victim
	}

	s.switchTurn()
	return result
}

func (s *GameState) switchTurn() {
	s.CurrentPlayer, s.Opponent = s.Opponent, s.CurrentPlayer
}
