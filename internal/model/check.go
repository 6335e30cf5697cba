package model

// IsSquareCovered reports whether any of enemies lists sq among its legal
// moves, each generated from the enemy's own square.
func (b *BoardState) IsSquareCovered(sq Square, enemies []*Piece) bool {
	for _, enemy := range enemies {
		for _, move := range b.LegalMoves(enemy) {
			if move == sq {
				return true
			}
		}
	}
	return false
}

// IsSquareAttacked reports whether a piece of colour by could move onto sq.
func (b *BoardState) IsSquareAttacked(sq Square, by PlayerColor) bool {
	return b.IsSquareCovered(sq, b.Pieces(by))
}

// IsInCheck reports whether the king of color is attacked. A side without a
// king is never in check.
func (b *BoardState) IsInCheck(color PlayerColor) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	return b.IsSquareAttacked(king.Position, color.Opponent())
}

// WithMove returns a copy of the board with piece relocated to target and any
// enemy on target removed. b is left untouched.
func (b *BoardState) WithMove(piece *Piece, target Square) *BoardState {
	next, lookup := b.clone()
	moved, ok := lookup[piece]
	if !ok {
		return next
	}
	if victim := next.PieceAt(target); victim != nil && victim.Color != moved.Color {
		next.remove(victim)
	}
	moved.Position = target
	return next
}

// LeavesKingInCheck reports whether moving piece to target would leave its
// own king attacked.
func (b *BoardState) LeavesKingInCheck(piece *Piece, target Square) bool {
	if piece == nil {
		return false
	}
	return b.WithMove(piece, target).IsInCheck(piece.Color)
}

// IsMoveAllowed is the check-aware gate run before a move is applied.
// With the mover's king out of check every legal move passes. In check, the
// king may only step to a square that is safe both on the resulting board
// and against the enemy's current reach; any other piece must qualify as a
// defending piece.
func (b *BoardState) IsMoveAllowed(piece *Piece, target Square) bool {
	if piece == nil {
		return false
	}
	king := b.King(piece.Color)
	if king == nil {
		return true
	}
	enemies := b.Pieces(piece.Color.Opponent())
	if !b.IsSquareCovered(king.Position, enemies) {
		return true
	}

	if piece == king {
		if b.WithMove(king, target).IsInCheck(king.Color) {
			return false
		}
		return !b.IsSquareCovered(target, enemies)
	}
	return b.isDefendingPiece(piece, target)
}

// isDefendingPiece approximates block-or-capture: some enemy attacks the
// king and piece can reach target. Whether target actually lies between the
// checker and the king is not verified.
func (b *BoardState) isDefendingPiece(piece *Piece, target Square) bool {
	king := b.King(piece.Color)
	if king == nil {
		return false
	}
	checked := false
	for _, enemy := range b.Pieces(piece.Color.Opponent()) {
		if b.IsLegalMove(enemy, king.Position) {
			checked = true
			break
		}
	}
	return checked && b.IsLegalMove(piece, target)
}

// IsCheckmate reports whether color's king is in check with every adjacent
// square off the board, held by its own side, or covered by the enemy.
// Only king escapes are considered; blocking or capturing the checker with
// another piece is not searched.
func (b *BoardState) IsCheckmate(color PlayerColor) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	enemies := b.Pieces(color.Opponent())
	if !b.IsSquareCovered(king.Position, enemies) {
		return false
	}
	for _, dir := range kingDirs {
		escape := Square{X: king.Position.X + dir.X, Y: king.Position.Y + dir.Y}
		if !IsValidSquare(escape) {
			continue
		}
		if occupant := b.PieceAt(escape); occupant != nil && occupant.Color == color {
			continue
		}
		if !b.IsSquareCovered(escape, enemies) {
			return false
		}
	}
	return true
}
