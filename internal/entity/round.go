package entity

// Round is one game from an empty board to a terminal outcome.
type Round interface {
	// Move validates the raw input of the player holding mark and applies it.
	Move(mark Mark, input string) error
	Outcome() Outcome
	Render() string
	Cells() []string
}

// Rules plugs a concrete game into the session coordinator.
type Rules interface {
	Marks() [2]Mark
	MoveHint() string
	NewRound() Round
}
