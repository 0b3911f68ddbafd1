package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

type waitingPool interface {
	Enqueue(client entity.Client)
	TryDequeuePair() (entity.Client, entity.Client, bool)
	Drain() []entity.Client
	Len() int
}

// Stats is a point-in-time view of the lobby.
type Stats struct {
	Waiting        int   `json:"waiting"`
	ActiveSessions int64 `json:"active_sessions"`
	TotalSessions  int64 `json:"total_sessions"`
}

// Matchmaker pairs waiting clients and runs a Session for every pair.
type Matchmaker struct {
	logger *slog.Logger
	pool   waitingPool
	rules  entity.Rules
	repo   sessionRepo
	opts   SessionOptions

	// mu orders pairing against Close so no session starts once Close has begun waiting.
	mu     sync.Mutex
	closed bool

	sessions sync.WaitGroup
	active   atomic.Int64
	total    atomic.Int64
}

func NewMatchmaker(logger *slog.Logger, pool waitingPool, rules entity.Rules, repo sessionRepo, opts SessionOptions) *Matchmaker {
	return &Matchmaker{
		logger: logger.With("component", "matchmaker"),
		pool:   pool,
		rules:  rules,
		repo:   repo,
		opts:   opts,
	}
}

// Join - greets a freshly accepted client and puts it in the waiting pool.
func (that *Matchmaker) Join(ctx context.Context, client entity.Client) {
	if err := client.Conn.Send(msgWelcome); err != nil {
		that.logger.Debug("failed to greet client", "client_id", client.ID, "error", err)
	}

	that.Requeue(ctx, client)
}

// Requeue - puts client at the tail of the waiting pool and starts sessions for every available pair.
// After Close the client is told the server is stopping and disconnected instead.
func (that *Matchmaker) Requeue(ctx context.Context, client entity.Client) {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		that.reject(client)

		return
	}

	that.pool.Enqueue(client)
	that.logger.Info("client waiting", "client_id", client.ID, "waiting", that.pool.Len())

	that.pair(ctx)
	that.mu.Unlock()
}

// pair must be called with mu held.
func (that *Matchmaker) pair(ctx context.Context) {
	for {
		first, second, ok := that.pool.TryDequeuePair()
		if !ok {
			return
		}

		session := NewSession(that.logger, that.rules, that.repo, that, that.opts, first, second)

		that.sessions.Add(1)
		that.active.Add(1)
		that.total.Add(1)

		go func() {
			defer that.sessions.Done()
			defer that.active.Add(-1)

			session.Run(ctx)
		}()
	}
}

// Close - disconnects everyone still waiting, refuses later arrivals and blocks until running sessions have ended.
// Sessions end on their own once ctx is cancelled.
func (that *Matchmaker) Close() {
	that.mu.Lock()
	that.closed = true
	waiting := that.pool.Drain()
	that.mu.Unlock()

	for _, client := range waiting {
		that.reject(client)
	}

	that.sessions.Wait()
}

func (that *Matchmaker) reject(client entity.Client) {
	if err := client.Conn.Send(msgShutdown); err != nil {
		that.logger.Debug("failed to send shutdown notice", "client_id", client.ID, "error", err)
	}

	_ = client.Conn.Close()
}

func (that *Matchmaker) Stats() Stats {
	return Stats{
		Waiting:        that.pool.Len(),
		ActiveSessions: that.active.Load(),
		TotalSessions:  that.total.Load(),
	}
}
