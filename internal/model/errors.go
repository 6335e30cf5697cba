package model

import "errors"

var (
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNoPiece         = errors.New("no piece at from square")
	ErrInvalidSquare   = errors.New("invalid square")
	ErrIllegalMove     = errors.New("invalid move, not legal")
	ErrMoveNotAllowed  = errors.New("move not allowed while in check")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPosition = errors.New("invalid position")

	ErrAlreadyConnected = errors.New("connection already exists")
)
