package room

import (
	"sync"

	"github.com/google/uuid"

	"blackjack-server/internal/util"
)

// sendBuffer is how many undelivered messages a client may accumulate before
// it's considered too slow and marked for teardown
const sendBuffer = 256

// Client is one connected participant's session, independent of transport.
// The transport's write loop drains SendChan and closes the underlying
// connection once Done fires.
type Client struct {
	// ID identifies the participant at the table
	ID string

	// Name is the display name assigned at connection time; the table owns
	// any later renames
	Name string

	send      chan interface{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient returns a new client with a generated ID and display name
func NewClient() *Client {
	return &Client{
		ID:   uuid.New().String(),
		Name: util.GetRandomName(),
		send: make(chan interface{}, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send queues a message for delivery to the client.
// Sends are best-effort: a full queue marks the client for teardown instead
// of blocking the caller, and the failure never propagates.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		c.CloseNow()
		return false
	}
}

// SendChan returns the outbound queue drained by the transport's write loop
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Done is closed once the client should be torn down
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// CloseNow marks the client for teardown. Safe to call more than once.
func (c *Client) CloseNow() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
