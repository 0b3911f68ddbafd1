package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// Rules is the classic 3x3 grid game.
type Rules struct{}

func NewRules() *Rules {
	return &Rules{}
}

func (that *Rules) Marks() [2]entity.Mark {
	return [2]entity.Mark{entity.MarkX, entity.MarkO}
}

func (that *Rules) MoveHint() string {
	return fmt.Sprintf("1-%d", entity.BoardSize)
}

func (that *Rules) NewRound() entity.Round {
	return &Round{board: entity.NewBoard()}
}

// Round holds the board of a single game.
type Round struct {
	board entity.Board
}

// Move - parses a 1-based cell number and applies it to the board.
func (that *Round) Move(mark entity.Mark, input string) error {
	cell, err := ParseCell(input)
	if err != nil {
		return err
	}

	next, err := that.board.Apply(cell, mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.board = next

	return nil
}

func (that *Round) Outcome() entity.Outcome {
	return that.board.Outcome()
}

func (that *Round) Render() string {
	return Render(that.board)
}

func (that *Round) Cells() []string {
	return that.board.Cells()
}

func (that *Round) Board() entity.Board {
	return that.board
}

// ParseCell - maps protocol input "1".."9" to a 0-based cell index.
func ParseCell(input string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || number < 1 || number > entity.BoardSize {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, input)
	}

	return number - 1, nil
}
