package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
)

type vote int

const (
	votePending vote = iota
	voteYes
	voteNo
)

// parseVote - maps a reply to yes/no, ignoring case and surrounding spaces.
func parseVote(input string) (vote, error) {
	switch cases.Fold().String(strings.TrimSpace(input)) {
	case "yes", "y":
		return voteYes, nil
	case "no", "n":
		return voteNo, nil
	default:
		return votePending, fmt.Errorf("%w: %q", apperror.ErrInvalidVote, input)
	}
}

// ballot collects one vote from each player. A closed channel counts as "no".
type ballot struct {
	votes [2]vote
	gone  [2]bool
}

func (that *ballot) complete() bool {
	return that.votes[0] != votePending && that.votes[1] != votePending
}

// record - registers the reply of player i; returns an error for an unrecognized token.
func (that *ballot) record(i int, line string, ok bool) error {
	if !ok {
		that.votes[i] = voteNo
		that.gone[i] = true

		return nil
	}

	v, err := parseVote(line)
	if err != nil {
		return err
	}

	that.votes[i] = v

	return nil
}

// yesCount - number of players who want another round.
func (that *ballot) yesCount() int {
	count := 0
	for _, v := range that.votes {
		if v == voteYes {
			count++
		}
	}

	return count
}
