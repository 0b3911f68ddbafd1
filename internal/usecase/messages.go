package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	msgWelcome              = "Welcome! Waiting for an opponent..."
	msgNotYourTurn          = "Not your turn."
	msgCellTaken            = "Cell already taken. Try again."
	msgTie                  = "It's a tie!"
	msgReplayPrompt         = "Play again? (yes/no):"
	msgInvalidVote          = "Please answer yes or no."
	msgRestarting           = "Restarting game..."
	msgOpponentLeft         = "Opponent left. Waiting for a new opponent..."
	msgOpponentDisconnected = "Opponent disconnected. You win by default."
	msgStillWaiting         = "Still waiting for your move."
	msgGoodbye              = "Goodbye!"
	msgShutdown             = "Server is shutting down."
)

func pairingNotice(number int, mark entity.Mark, first bool) string {
	if first {
		return fmt.Sprintf("Opponent found! You are player %d (%s) and you move first.", number, mark)
	}

	return fmt.Sprintf("Opponent found! You are player %d (%s). Your opponent moves first.", number, mark)
}

func turnPrompt(number int, mark entity.Mark, hint string) string {
	return fmt.Sprintf("Player %d (%s) - Enter your move (%s):", number, mark, hint)
}

func invalidMoveNotice(hint string) string {
	return fmt.Sprintf("Invalid move. Please enter a number between %s.", hint)
}

func winNotice(number int, mark entity.Mark) string {
	return fmt.Sprintf("Player %d (%s) wins!", number, mark)
}
