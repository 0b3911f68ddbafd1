// Package pool holds idle clients waiting for an opponent.
package pool

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// Pool is a FIFO of idle clients guarded by a single mutex.
// The lock is never held across I/O.
type Pool struct {
	mu      sync.Mutex
	clients []entity.Client
}

func New() *Pool {
	return &Pool{}
}

// Enqueue - appends client to the tail. A client already waiting is not added twice.
func (that *Pool) Enqueue(client entity.Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, waiting := range that.clients {
		if waiting.ID == client.ID {
			return
		}
	}

	that.clients = append(that.clients, client)
}

// TryDequeuePair - atomically removes the two oldest live clients, if there are two.
// Clients whose inbound stream ended while waiting are dropped and closed.
func (that *Pool) TryDequeuePair() (entity.Client, entity.Client, bool) {
	that.mu.Lock()
	gone := that.prune()

	var first, second entity.Client
	ok := len(that.clients) >= 2
	if ok {
		first, second = that.clients[0], that.clients[1]
		that.clients[0], that.clients[1] = entity.Client{}, entity.Client{}
		that.clients = that.clients[2:]
	}
	that.mu.Unlock()

	closeAll(gone)

	return first, second, ok
}

// Drain - removes and returns every waiting client.
func (that *Pool) Drain() []entity.Client {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients := that.clients
	that.clients = nil

	return clients
}

// Len - number of live waiting clients. Clients found dead are dropped and closed.
func (that *Pool) Len() int {
	that.mu.Lock()
	gone := that.prune()
	n := len(that.clients)
	that.mu.Unlock()

	closeAll(gone)

	return n
}

func closeAll(clients []entity.Client) {
	for _, client := range clients {
		if client.Conn != nil {
			_ = client.Conn.Close()
		}
	}
}

// prune must be called with mu held.
func (that *Pool) prune() []entity.Client {
	var gone []entity.Client

	alive := that.clients[:0]
	for _, client := range that.clients {
		if client.Alive() {
			alive = append(alive, client)
			continue
		}
		gone = append(gone, client)
	}

	for i := len(alive); i < len(that.clients); i++ {
		that.clients[i] = entity.Client{}
	}
	that.clients = alive

	return gone
}
