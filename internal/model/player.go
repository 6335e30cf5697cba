package model

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// pawnDirection is the rank step a pawn of this colour advances by.
func (c PlayerColor) pawnDirection() int {
	if c == PlayerColorWhite {
		return 1
	}
	return -1
}

func (c PlayerColor) pawnStartRank() int {
	if c == PlayerColorWhite {
		return 1
	}
	return 6
}
