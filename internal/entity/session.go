package entity

const (
	PhaseAwaitingMove  = "awaiting_move"
	PhaseRoundOver     = "round_over"
	PhaseAwaitingVotes = "awaiting_votes"
	PhaseRestarting    = "restarting"
	PhaseTerminated    = "terminated"
)

type SessionPlayer struct {
	ID   string `json:"id"`
	Mark Mark   `json:"mark"`
}

// SessionState is a snapshot of a live session.
type SessionState struct {
	ID      string          `json:"id"`
	Players []SessionPlayer `json:"players"`
	Round   int             `json:"round"`
	Board   []string        `json:"board"`
	Turn    Mark            `json:"turn,omitempty"`
	Phase   string          `json:"phase"`
	Outcome Outcome         `json:"outcome"`
}
