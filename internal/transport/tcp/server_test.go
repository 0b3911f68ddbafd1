package tcp

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/pool"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

type player struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func dial(t *testing.T, addr string) *player {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, waitTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &player{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

func (that *player) say(line string) {
	that.t.Helper()

	_, err := that.conn.Write([]byte(line + "\n"))
	require.NoError(that.t, err)
}

// expect - reads lines until one contains substr.
func (that *player) expect(substr string) {
	that.t.Helper()

	require.NoError(that.t, that.conn.SetReadDeadline(time.Now().Add(waitTimeout)))

	for {
		line, err := that.reader.ReadString('\n')
		require.NoError(that.t, err, "waiting for %q", substr)

		if strings.Contains(line, substr) {
			return
		}
	}
}

// expectEOF - drains remaining output until the server closes the socket.
func (that *player) expectEOF() {
	that.t.Helper()

	require.NoError(that.t, that.conn.SetReadDeadline(time.Now().Add(waitTimeout)))

	_, err := io.Copy(io.Discard, that.reader)
	require.NoError(that.t, err)
}

func startServer(t *testing.T) (*Server, *usecase.Matchmaker, string, context.CancelFunc) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	matchmaker := usecase.NewMatchmaker(logger, pool.New(), tictactoe.NewRules(), repository.NewNopSessionRepository(),
		usecase.SessionOptions{RequeueOnDisconnect: true})
	server := New(logger, matchmaker, 32)

	ln, err := server.Listen("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	served := make(chan error, 1)
	go func() { served <- server.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-served)
		matchmaker.Close()
	})

	return server, matchmaker, ln.Addr().String(), cancel
}

func TestServer_FullGame(t *testing.T) {
	server, _, addr, _ := startServer(t)

	// Given: two clients connect in order
	alice := dial(t, addr)
	alice.expect("Waiting for an opponent")

	bob := dial(t, addr)
	bob.expect("Waiting for an opponent")

	// Then: the first one plays X and moves first
	alice.expect("You are player 1 (X)")
	bob.expect("You are player 2 (O)")
	alice.expect("Player 1 (X) - Enter your move (1-9):")

	// When: X takes the left column
	for i, move := range []string{"1", "2", "4", "5", "7"} {
		if i%2 == 0 {
			alice.say(move)
			if i < 4 {
				bob.expect("Player 2 (O) - Enter your move")
			}
		} else {
			bob.say(move)
			alice.expect("Player 1 (X) - Enter your move")
		}
	}

	alice.expect("Player 1 (X) wins!")
	bob.expect("Player 1 (X) wins!")
	alice.expect("Play again? (yes/no):")
	bob.expect("Play again? (yes/no):")

	// When: both decline
	alice.say("no")
	bob.say("n")

	// Then: both are told goodbye and disconnected
	alice.expect("Goodbye!")
	bob.expect("Goodbye!")
	alice.expectEOF()
	bob.expectEOF()

	assert.EqualValues(t, 2, server.Connections())
}

func TestServer_Shutdown(t *testing.T) {
	_, matchmaker, addr, cancel := startServer(t)

	// Given: one client waiting for an opponent
	carol := dial(t, addr)
	carol.expect("Waiting for an opponent")

	require.Eventually(t, func() bool { return matchmaker.Stats().Waiting == 1 }, waitTimeout, 5*time.Millisecond)

	// When: the server stops
	cancel()
	matchmaker.Close()

	// Then: the waiting client is told and disconnected
	carol.expect("Server is shutting down.")
	carol.expectEOF()

	// And: new connections are refused
	assert.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		if err != nil {
			return true
		}
		_ = conn.Close()
		return false
	}, waitTimeout, 10*time.Millisecond)
}
