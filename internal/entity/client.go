package entity

// Conn is the write half of an accepted connection.
// Done is closed once the inbound line stream has ended.
type Conn interface {
	Send(msg string) error
	Close() error
	Done() <-chan struct{}
}

// Client is an idle connection: the inbound line source and the outbound handle travel together.
type Client struct {
	ID      string
	Inbound <-chan string
	Conn    Conn
}

// Alive - reports whether the inbound stream is still open.
func (that Client) Alive() bool {
	if that.Conn == nil {
		return false
	}

	select {
	case <-that.Conn.Done():
		return false
	default:
		return true
	}
}

// Player is a Client paired into a session with an assigned mark.
type Player struct {
	Client
	Mark Mark
}

func NewPlayer(client Client, mark Mark) *Player {
	return &Player{
		Client: client,
		Mark:   mark,
	}
}

// ToClient - strips the mark; the channel and connection are carried over unchanged.
func (that *Player) ToClient() Client {
	return that.Client
}
