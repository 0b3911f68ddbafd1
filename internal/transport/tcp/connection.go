package tcp

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const writeTimeout = 10 * time.Second

// Connection is one accepted socket split into an inbound line stream and a write half.
type Connection struct {
	id   string
	conn net.Conn

	mu     sync.Mutex
	writer *bufio.Writer

	lines     chan string
	done      chan struct{}
	closing   chan struct{}
	closeOnce sync.Once
}

// NewConnection - wraps conn and starts its ingress goroutine. Up to bufferSize lines are queued ahead of the reader.
func NewConnection(conn net.Conn, bufferSize int) *Connection {
	that := &Connection{
		id:      uuid.NewString(),
		conn:    conn,
		writer:  bufio.NewWriter(conn),
		lines:   make(chan string, bufferSize),
		done:    make(chan struct{}),
		closing: make(chan struct{}),
	}

	go that.ingest()

	return that
}

func (that *Connection) ID() string {
	return that.id
}

// Client - the idle view of this connection handed to the lobby.
func (that *Connection) Client() entity.Client {
	return entity.Client{
		ID:      that.id,
		Inbound: that.lines,
		Conn:    that,
	}
}

// Send - writes msg followed by a newline and flushes it.
func (that *Connection) Send(msg string) error {
	select {
	case <-that.closing:
		return apperror.ErrConnClosed
	default:
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := that.writer.WriteString(msg + "\n"); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := that.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush message: %w", err)
	}

	return nil
}

// Close - closes the socket. Safe to call more than once.
func (that *Connection) Close() error {
	var err error

	that.closeOnce.Do(func() {
		close(that.closing)
		err = that.conn.Close()
	})

	if err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

// Done - closed after the inbound channel has been closed.
func (that *Connection) Done() <-chan struct{} {
	return that.done
}

// ingest - relays newline-terminated lines in arrival order until EOF, a read error or Close.
func (that *Connection) ingest() {
	defer close(that.done)
	defer close(that.lines)

	scanner := bufio.NewScanner(that.conn)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		select {
		case that.lines <- line:
		case <-that.closing:
			return
		}
	}
}
