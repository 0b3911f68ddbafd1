package usecase

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// decision is the arbiter's verdict on one line of input.
type decision struct {
	accepted bool
	reply    string
	err      error
}

// arbitrate - decides whether input from player `from` is an accepted move while `turn` holds the turn.
// A rejected input never touches the round and never consumes a turn.
func arbitrate(round entity.Round, hint string, turn, from *entity.Player, input string) decision {
	if from != turn {
		return decision{reply: msgNotYourTurn, err: apperror.ErrNotYourTurn}
	}

	err := round.Move(from.Mark, input)
	switch {
	case err == nil:
		return decision{accepted: true}
	case errors.Is(err, apperror.ErrCellOccupied):
		return decision{reply: msgCellTaken, err: err}
	default:
		return decision{reply: invalidMoveNotice(hint), err: err}
	}
}
