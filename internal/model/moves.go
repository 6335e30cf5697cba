package model

var (
	rookDirs   = []Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Square{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Square{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: -2, Y: 1}, {X: -1, Y: 2}, {X: 2, Y: -1}, {X: 1, Y: -2}, {X: -2, Y: -1}, {X: -1, Y: -2}}
	kingDirs   = []Square{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1}}
)

// LegalMoves lists the squares piece may move to from where it stands,
// honouring obstruction and the capture rule but not check.
func (b *BoardState) LegalMoves(piece *Piece) []Square {
	if piece == nil {
		return []Square{}
	}
	return b.LegalMovesFrom(piece, piece.Position)
}

// LegalMovesFrom is LegalMoves with piece standing on from instead of its
// own square. The board is not modified.
func (b *BoardState) LegalMovesFrom(piece *Piece, from Square) []Square {
	if piece == nil || !IsValidSquare(from) {
		return []Square{}
	}
	switch piece.Type {
	case Pawn:
		return b.pawnMoves(piece, from)
	case Knight:
		return b.stepMoves(piece, from, knightDirs)
	case Bishop:
		return b.slidingMoves(piece, from, bishopDirs)
	case Rook:
		return b.slidingMoves(piece, from, rookDirs)
	case Queen:
		return append(b.slidingMoves(piece, from, rookDirs), b.slidingMoves(piece, from, bishopDirs)...)
	case King:
		return b.stepMoves(piece, from, kingDirs)
	default:
		return []Square{}
	}
}

// IsLegalMove reports whether target is among piece's legal moves.
func (b *BoardState) IsLegalMove(piece *Piece, target Square) bool {
	for _, sq := range b.LegalMoves(piece) {
		if sq == target {
			return true
		}
	}
	return false
}

// IsPathClear reports whether every square strictly between from and to is
// empty. The target square itself is not inspected.
func (b *BoardState) IsPathClear(from, to Square) bool {
	return b.pathClear(from, to, nil)
}

func (b *BoardState) pathClear(from, to Square, lifted *Piece) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	stepX, stepY := sign(dx), sign(dy)
	for i := 1; i < max(abs(dx), abs(dy)); i++ {
		between := Square{X: from.X + i*stepX, Y: from.Y + i*stepY}
		if b.occupant(between, lifted) != nil {
			return false
		}
	}
	return true
}

// occupant is PieceAt with lifted treated as absent, so a piece probed from
// a hypothetical square does not block itself.
func (b *BoardState) occupant(sq Square, lifted *Piece) *Piece {
	p := b.PieceAt(sq)
	if p != nil && p == lifted {
		return nil
	}
	return p
}

// isMoveValid applies the bounds, path and capture rules to a single target.
func (b *BoardState) isMoveValid(piece *Piece, from, target Square, slides bool) bool {
	if !IsValidSquare(target) || target == from {
		return false
	}
	if slides && !b.pathClear(from, target, piece) {
		return false
	}
	occupant := b.occupant(target, piece)
	return occupant == nil || occupant.Color != piece.Color
}

func (b *BoardState) slidingMoves(piece *Piece, from Square, dirs []Square) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		for i := 1; i < boardSize; i++ {
			target := Square{X: from.X + i*dir.X, Y: from.Y + i*dir.Y}
			if !IsValidSquare(target) {
				break
			}
			if b.isMoveValid(piece, from, target, true) {
				moves = append(moves, target)
			}
		}
	}
	return moves
}

// stepMoves covers knights and kings: fixed offsets, no path to clear.
func (b *BoardState) stepMoves(piece *Piece, from Square, offsets []Square) []Square {
	moves := []Square{}
	for _, off := range offsets {
		target := Square{X: from.X + off.X, Y: from.Y + off.Y}
		if b.isMoveValid(piece, from, target, false) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (b *BoardState) pawnMoves(piece *Piece, from Square) []Square {
	moves := []Square{}
	dir := piece.Color.pawnDirection()

	forward := Square{X: from.X, Y: from.Y + dir}
	if IsValidSquare(forward) && b.occupant(forward, piece) == nil {
		moves = append(moves, forward)
		double := Square{X: from.X, Y: from.Y + 2*dir}
		if from.Y == piece.Color.pawnStartRank() && IsValidSquare(double) && b.occupant(double, piece) == nil {
			moves = append(moves, double)
		}
	}

	for _, dx := range []int{-1, 1} {
		diagonal := Square{X: from.X + dx, Y: from.Y + dir}
		if !IsValidSquare(diagonal) {
			continue
		}
		if occupant := b.occupant(diagonal, piece); occupant != nil && occupant.Color != piece.Color {
			moves = append(moves, diagonal)
		}
	}
	return moves
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
