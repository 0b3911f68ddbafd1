package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidVote  = errors.New("invalid replay vote")
	ErrConnClosed   = errors.New("connection is closed")
)
