package room

import (
	"sync"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/protocol"
)

// Room binds connected clients to the table. All table access runs under one
// exclusive lock, so command handling is serialized: each handler performs
// its full read-modify-write plus broadcast decision before the next command
// can run. Sends are buffered channel writes, so holding the lock across the
// broadcast is cheap and keeps event order consistent with state changes.
type Room struct {
	log     logrus.FieldLogger
	mu      sync.Mutex
	table   *blackjack.Table
	clients map[string]*Client
}

// New returns a room hosting a single freshly created table
func New(log logrus.FieldLogger, startingBalance int) *Room {
	return &Room{
		log:     log,
		table:   blackjack.New(log, startingBalance),
		clients: make(map[string]*Client),
	}
}

// Table returns the room's table
// This should only be used by tests.
func (r *Room) Table() *blackjack.Table {
	return r.table
}

// Connect seats the client at the table.
// Returns blackjack.ErrTableFull when every seat is taken; the transport is
// expected to report the error to the connection and close it.
func (r *Room) Connect(c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.table.Join(c.ID, c.Name)
	if err != nil {
		return err
	}

	r.clients[c.ID] = c
	r.deliver(events)
	return nil
}

// Disconnect unseats the client and repairs turn order and betting state.
// Safe to call for a client that never connected or already disconnected.
func (r *Room) Disconnect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.ID]; !ok {
		return
	}

	delete(r.clients, c.ID)
	r.deliver(r.table.Leave(c.ID))
	c.CloseNow()
}

// HandleRecord decodes and applies one raw inbound record.
// Malformed records are dropped without affecting the connection.
func (r *Room) HandleRecord(c *Client, data []byte) {
	cmd, err := protocol.ParseCommand(data)
	if err != nil {
		r.log.WithError(err).WithField("client", c.ID).Debug("dropping malformed record")
		return
	}

	r.HandleCommand(c, cmd)
}

// HandleCommand applies one decoded command under the room lock.
// A rule violation is reported to the sender only; table state is untouched.
func (r *Room) HandleCommand(c *Client, cmd *protocol.Command) {
	if cmd.Type == protocol.CmdLeave {
		// the transport tears the connection down, which runs Disconnect
		c.CloseNow()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.table.Action(c.ID, cmd)
	if err != nil {
		c.Send(protocol.NewError(err))
		return
	}

	r.deliver(events)
}

// deliver fans events out to their recipients.
// Must be called with the room lock held so every broadcast reflects a
// single consistent snapshot.
func (r *Room) deliver(events []blackjack.Envelope) {
	for _, ev := range events {
		if ev.To == "" {
			for _, client := range r.clients {
				client.Send(ev.Msg)
			}
			continue
		}

		if client, ok := r.clients[ev.To]; ok {
			client.Send(ev.Msg)
		}
	}
}
