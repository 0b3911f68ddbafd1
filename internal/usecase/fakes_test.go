package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-lobby/mocks/usecase"
)

const waitTimeout = 2 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeConn records everything sent to a client.
type fakeConn struct {
	messages  chan string
	done      chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
	doneOnce  sync.Once
}

func (that *fakeConn) Send(msg string) error {
	select {
	case <-that.closed:
		return apperror.ErrConnClosed
	default:
	}

	that.messages <- msg

	return nil
}

func (that *fakeConn) Close() error {
	that.closeOnce.Do(func() { close(that.closed) })

	return nil
}

func (that *fakeConn) Done() <-chan struct{} {
	return that.done
}

func (that *fakeConn) isClosed() bool {
	select {
	case <-that.closed:
		return true
	default:
		return false
	}
}

// testClient is the far end of a fake connection.
type testClient struct {
	t       *testing.T
	inbound chan string
	conn    *fakeConn
	client  entity.Client
}

func newTestClient(t *testing.T, id string) *testClient {
	t.Helper()

	inbound := make(chan string, 32)
	conn := &fakeConn{
		messages: make(chan string, 1024),
		done:     make(chan struct{}),
		closed:   make(chan struct{}),
	}

	return &testClient{
		t:       t,
		inbound: inbound,
		conn:    conn,
		client:  entity.Client{ID: id, Inbound: inbound, Conn: conn},
	}
}

func (that *testClient) say(line string) {
	that.inbound <- line
}

func (that *testClient) disconnect() {
	that.conn.doneOnce.Do(func() {
		close(that.inbound)
		close(that.conn.done)
	})
}

// expect - skips messages until one contains substr.
func (that *testClient) expect(substr string) string {
	that.t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case msg := <-that.conn.messages:
			if strings.Contains(msg, substr) {
				return msg
			}
		case <-deadline:
			require.FailNowf(that.t, "message not received", "%s never got %q", that.client.ID, substr)
		}
	}
}

// expectClosed - waits until the session closed the connection.
func (that *testClient) expectClosed() {
	that.t.Helper()

	require.Eventually(that.t, that.conn.isClosed, waitTimeout, 5*time.Millisecond)
}

// registry keeps the latest snapshot of every session written through a mocked repository.
type registry struct {
	mu      sync.Mutex
	states  map[string]entity.SessionState
	deleted map[string]bool
}

// newRegistryRepo - a repository mock that accepts any number of writes and records them.
func newRegistryRepo(t *testing.T) (*mockedUseCase.MocksessionRepo, *registry) {
	t.Helper()

	reg := &registry{
		states:  make(map[string]entity.SessionState),
		deleted: make(map[string]bool),
	}

	repo := mockedUseCase.NewMocksessionRepo(t)
	repo.EXPECT().
		CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		RunAndReturn(reg.store).
		Maybe()
	repo.EXPECT().
		DeleteByID(mock.Anything, mock.AnythingOfType("string")).
		RunAndReturn(reg.remove).
		Maybe()

	return repo, reg
}

func (that *registry) store(_ context.Context, state *entity.SessionState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.states[state.ID] = *state

	return nil
}

func (that *registry) remove(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.states[id]; !ok {
		return repository.ErrSessionNotFound
	}

	delete(that.states, id)
	that.deleted[id] = true

	return nil
}

func (that *registry) get(id string) (entity.SessionState, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, ok := that.states[id]

	return state, ok
}

func (that *registry) isDeleted(id string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.deleted[id]
}

func (that *registry) all() []entity.SessionState {
	that.mu.Lock()
	defer that.mu.Unlock()

	states := make([]entity.SessionState, 0, len(that.states))
	for _, state := range that.states {
		states = append(states, state)
	}

	return states
}
