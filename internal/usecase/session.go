package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
)

const repoTimeout = 2 * time.Second

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, state *entity.SessionState) error
	DeleteByID(ctx context.Context, id string) error
}

// lobby takes back a player who wants to keep playing after the session ends.
type lobby interface {
	Requeue(ctx context.Context, client entity.Client)
}

type SessionOptions struct {
	// MoveTimeout re-prompts the player holding the turn after each idle interval. Zero disables it.
	MoveTimeout time.Duration
	// RequeueOnDisconnect returns the surviving player to the waiting pool when the opponent drops mid-round.
	RequeueOnDisconnect bool
}

// Session coordinates one match between two players over one or more rounds.
// All of its state is owned by the goroutine running Run.
type Session struct {
	id     string
	logger *slog.Logger
	rules  entity.Rules
	repo   sessionRepo
	lobby  lobby
	opts   SessionOptions

	players [2]*entity.Player
	start   int
	turn    int
	round   entity.Round
	rounds  int
	phase   string
	outcome entity.Outcome

	// deadline is when the turn holder is next re-prompted; zero when MoveTimeout is off.
	deadline time.Time
}

func NewSession(logger *slog.Logger, rules entity.Rules, repo sessionRepo, lobby lobby, opts SessionOptions, first, second entity.Client) *Session {
	id := uuid.NewString()
	marks := rules.Marks()

	return &Session{
		id:     id,
		logger: logger.With("component", "session", "session_id", id),
		rules:  rules,
		repo:   repo,
		lobby:  lobby,
		opts:   opts,

		players: [2]*entity.Player{
			entity.NewPlayer(first, marks[0]),
			entity.NewPlayer(second, marks[1]),
		},
	}
}

func (that *Session) ID() string {
	return that.id
}

// Run - drives the session until it terminates. Both connections are either closed or handed back to the lobby on return.
func (that *Session) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("session started", "first", that.players[0].ID, "second", that.players[1].ID)

	for i, player := range that.players {
		that.send(i, pairingNotice(i+1, player.Mark, i == that.start))
	}

	that.beginRound(ctx)

	for that.phase != entity.PhaseTerminated {
		switch that.phase {
		case entity.PhaseAwaitingMove:
			that.awaitMove(ctx)
		case entity.PhaseRoundOver:
			that.finishRound(ctx)
		case entity.PhaseAwaitingVotes:
			that.negotiateReplay(ctx)
		case entity.PhaseRestarting:
			that.broadcast(msgRestarting)
			that.beginRound(ctx)
		}
	}

	that.forget(ctx)

	log.Info("session terminated", "rounds", that.rounds)
}

func (that *Session) beginRound(ctx context.Context) {
	that.round = that.rules.NewRound()
	that.turn = that.start
	that.outcome = entity.Outcome{}
	that.rounds++
	that.phase = entity.PhaseAwaitingMove

	that.broadcast(that.round.Render())
	that.promptTurn()
	that.armTimeout()
	that.sync(ctx)
}

// armTimeout - restarts the idle interval of the turn holder.
func (that *Session) armTimeout() {
	if that.opts.MoveTimeout > 0 {
		that.deadline = time.Now().Add(that.opts.MoveTimeout)
	}
}

// awaitMove - waits for exactly one event from either player and handles it.
// Input that does not advance the game leaves the deadline where it is.
func (that *Session) awaitMove(ctx context.Context) {
	var timeout <-chan time.Time
	if !that.deadline.IsZero() {
		timer := time.NewTimer(time.Until(that.deadline))
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		that.shutdown()
	case line, ok := <-that.players[0].Inbound:
		that.handleMove(ctx, 0, line, ok)
	case line, ok := <-that.players[1].Inbound:
		that.handleMove(ctx, 1, line, ok)
	case <-timeout:
		that.send(that.turn, msgStillWaiting)
		that.promptTurn()
		that.armTimeout()
	}
}

func (that *Session) handleMove(ctx context.Context, from int, line string, ok bool) {
	if !ok {
		that.abandon(ctx, from)
		return
	}

	verdict := arbitrate(that.round, that.rules.MoveHint(), that.players[that.turn], that.players[from], line)
	if !verdict.accepted {
		that.logger.Debug("move rejected", "player", that.players[from].ID, "input", line, "error", verdict.err)

		that.send(from, verdict.reply)
		if from == that.turn {
			that.promptTurn()
		}

		return
	}

	that.turn = 1 - that.turn
	that.outcome = that.round.Outcome()
	that.armTimeout()

	if that.outcome.Finished {
		that.phase = entity.PhaseRoundOver
	} else {
		that.broadcast(that.round.Render())
		that.promptTurn()
	}

	that.sync(ctx)
}

// abandon - the player `gone` disconnected mid-round; the survivor wins by default.
func (that *Session) abandon(ctx context.Context, gone int) {
	survivor := 1 - gone

	that.logger.Info("player disconnected", "player", that.players[gone].ID)

	that.drop(gone)
	that.send(survivor, msgOpponentDisconnected)

	if that.opts.RequeueOnDisconnect {
		that.requeue(ctx, survivor)
	} else {
		that.send(survivor, msgGoodbye)
		that.drop(survivor)
	}

	that.phase = entity.PhaseTerminated
}

func (that *Session) finishRound(ctx context.Context) {
	var notice string
	if that.outcome.IsDraw() {
		notice = msgTie
	} else {
		winner := that.playerByMark(that.outcome.Winner)
		notice = winNotice(winner+1, that.outcome.Winner)
	}

	that.logger.Info("round over", "round", that.rounds, "winner", that.outcome.Winner)

	that.broadcast(that.round.Render())
	that.broadcast(notice)

	that.phase = entity.PhaseAwaitingVotes
	that.sync(ctx)
}

// negotiateReplay - asks both players whether to play again and waits for both answers in any order.
func (that *Session) negotiateReplay(ctx context.Context) {
	that.broadcast(msgReplayPrompt)

	var votes ballot
	pending := [2]<-chan string{that.players[0].Inbound, that.players[1].Inbound}

	for !votes.complete() {
		var (
			from int
			line string
			ok   bool
		)

		select {
		case <-ctx.Done():
			that.shutdown()
			return
		case line, ok = <-pending[0]:
			from = 0
		case line, ok = <-pending[1]:
			from = 1
		}

		if err := votes.record(from, line, ok); err != nil {
			that.send(from, msgInvalidVote)
			that.send(from, msgReplayPrompt)
			continue
		}

		// a nil channel is never selected again
		pending[from] = nil
	}

	switch votes.yesCount() {
	case 2:
		that.phase = entity.PhaseRestarting
	case 1:
		stay := 0
		if votes.votes[1] == voteYes {
			stay = 1
		}
		leave := 1 - stay

		that.release(leave, votes.gone[leave])
		that.send(stay, msgOpponentLeft)
		that.requeue(ctx, stay)
		that.phase = entity.PhaseTerminated
	default:
		that.release(0, votes.gone[0])
		that.release(1, votes.gone[1])
		that.phase = entity.PhaseTerminated
	}
}

// shutdown - the server is stopping; both players are told and disconnected.
func (that *Session) shutdown() {
	that.broadcast(msgShutdown)
	that.drop(0)
	that.drop(1)
	that.phase = entity.PhaseTerminated
}

func (that *Session) requeue(ctx context.Context, i int) {
	player := that.players[i]

	that.logger.Info("player returned to the waiting pool", "player", player.ID)

	that.lobby.Requeue(ctx, player.ToClient())
}

// release - says goodbye to a player who is still connected, then closes the connection.
func (that *Session) release(i int, gone bool) {
	if !gone {
		that.send(i, msgGoodbye)
	}

	that.drop(i)
}

func (that *Session) drop(i int) {
	if err := that.players[i].Conn.Close(); err != nil {
		that.logger.Debug("failed to close connection", "player", that.players[i].ID, "error", err)
	}
}

func (that *Session) promptTurn() {
	player := that.players[that.turn]

	that.send(that.turn, turnPrompt(that.turn+1, player.Mark, that.rules.MoveHint()))
}

func (that *Session) broadcast(msg string) {
	that.send(0, msg)
	that.send(1, msg)
}

// send - write failures are not acted on here; a dead peer shows up as a closed inbound channel.
func (that *Session) send(i int, msg string) {
	if err := that.players[i].Conn.Send(msg); err != nil {
		that.logger.Debug("failed to send message", "player", that.players[i].ID, "error", err)
	}
}

func (that *Session) playerByMark(mark entity.Mark) int {
	if that.players[1].Mark == mark {
		return 1
	}

	return 0
}

func (that *Session) state() *entity.SessionState {
	state := &entity.SessionState{
		ID:      that.id,
		Round:   that.rounds,
		Board:   that.round.Cells(),
		Phase:   that.phase,
		Outcome: that.outcome,
	}

	for _, player := range that.players {
		state.Players = append(state.Players, entity.SessionPlayer{ID: player.ID, Mark: player.Mark})
	}

	if that.phase == entity.PhaseAwaitingMove {
		state.Turn = that.players[that.turn].Mark
	}

	return state
}

// sync - mirrors the live state into the registry; failures never affect the match.
func (that *Session) sync(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), repoTimeout)
	defer cancel()

	if err := that.repo.CreateOrUpdate(ctx, that.state()); err != nil {
		that.logger.Warn("failed to store session state", "error", err)
	}
}

func (that *Session) forget(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), repoTimeout)
	defer cancel()

	err := that.repo.DeleteByID(ctx, that.id)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		that.logger.Warn("failed to delete session state", "error", err)
	}
}
