package tictactoe

import (
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	cellSeparator = " | "
	rowSeparator  = "\n- + - + -\n"
)

// Render - draws the board; free cells show their 1-based number, taken cells show the owner's mark.
func Render(board entity.Board) string {
	var sb strings.Builder

	for i, cell := range board {
		if cell == entity.EmptyCell {
			sb.WriteString(strconv.Itoa(i + 1))
		} else {
			sb.WriteString(string(cell))
		}

		switch {
		case i == len(board)-1:
		case (i+1)%3 == 0:
			sb.WriteString(rowSeparator)
		default:
			sb.WriteString(cellSeparator)
		}
	}

	return sb.String()
}
