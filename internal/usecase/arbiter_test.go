package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/tictactoe"
)

func TestArbitrate(t *testing.T) {
	rules := tictactoe.NewRules()
	x := entity.NewPlayer(entity.Client{ID: "x"}, entity.MarkX)
	o := entity.NewPlayer(entity.Client{ID: "o"}, entity.MarkO)

	t.Run("Accepts a valid move from the player holding the turn", func(t *testing.T) {
		round := rules.NewRound()

		verdict := arbitrate(round, rules.MoveHint(), x, x, "5")

		require.True(t, verdict.accepted)
		assert.Equal(t, "X", round.Cells()[4])
	})

	t.Run("Rejects input from the other player without touching the board", func(t *testing.T) {
		round := rules.NewRound()

		verdict := arbitrate(round, rules.MoveHint(), x, o, "5")

		assert.False(t, verdict.accepted)
		assert.Equal(t, msgNotYourTurn, verdict.reply)
		assert.ErrorIs(t, verdict.err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.NewBoard().Cells(), round.Cells())
	})

	t.Run("Rejects malformed input", func(t *testing.T) {
		round := rules.NewRound()

		verdict := arbitrate(round, rules.MoveHint(), x, x, "ten")

		assert.False(t, verdict.accepted)
		assert.Equal(t, "Invalid move. Please enter a number between 1-9.", verdict.reply)
		assert.ErrorIs(t, verdict.err, apperror.ErrInvalidMove)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		round := rules.NewRound()
		require.True(t, arbitrate(round, rules.MoveHint(), x, x, "1").accepted)

		verdict := arbitrate(round, rules.MoveHint(), o, o, "1")

		assert.False(t, verdict.accepted)
		assert.Equal(t, msgCellTaken, verdict.reply)
		assert.ErrorIs(t, verdict.err, apperror.ErrCellOccupied)
	})
}
