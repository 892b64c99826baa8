// Package bus provides the shared lobby message channel: an unordered,
// best-effort, fan-out publish/subscribe bus. Every published message is
// delivered to every other current subscriber; the publisher never receives
// its own messages, delivery is unacknowledged, and subscribers that attach
// late never see earlier traffic.
package bus

import (
	"log/slog"
	"sync"

	"github.com/mememaster/lobby/internal/protocol"
)

// sendBufferSize is the per-subscriber buffer. A subscriber that falls this
// far behind starts losing messages rather than blocking publishers.
const sendBufferSize = 64

// Bus is an in-process implementation of the lobby channel
type Bus struct {
	mu     sync.RWMutex
	conns  map[*Conn]bool
	logger *slog.Logger
}

// New creates an empty bus
func New(logger *slog.Logger) *Bus {
	return &Bus{
		conns:  make(map[*Conn]bool),
		logger: logger.With(slog.String("component", "bus")),
	}
}

// Conn is one participant's attachment to the bus. It is the thin seam
// between the state machines and the transport: participants address rooms
// by embedding the room code in the message and receivers self-filter, but
// nothing outside this package depends on that being a broadcast underneath.
type Conn struct {
	bus  *Bus
	name string
	send chan protocol.Message
}

// Subscribe attaches a new participant. The name is used only for logging.
func (b *Bus) Subscribe(name string) *Conn {
	c := &Conn{
		bus:  b,
		name: name,
		send: make(chan protocol.Message, sendBufferSize),
	}

	b.mu.Lock()
	b.conns[c] = true
	total := len(b.conns)
	b.mu.Unlock()

	b.logger.Debug("subscriber attached",
		slog.String("subscriber", name),
		slog.Int("total", total))
	return c
}

// publish fans a message out to every subscriber except the sender.
// Best-effort: subscribers with a full buffer miss the message.
func (b *Bus) publish(sender *Conn, msg protocol.Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := range b.conns {
		if c == sender {
			continue
		}
		select {
		case c.send <- msg:
		default:
			b.logger.Warn("message dropped - subscriber buffer full",
				slog.String("subscriber", c.name),
				slog.String("type", msg.Type()))
		}
	}
}

// SubscriberCount returns the number of attached participants
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.conns)
}

// Close detaches every subscriber
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.conns {
		close(c.send)
		delete(b.conns, c)
	}
}

// Send publishes a message to all other subscribers
func (c *Conn) Send(msg protocol.Message) {
	c.bus.publish(c, msg)
}

// Messages returns the subscriber's delivery channel. The channel is closed
// when the connection is closed; in-flight messages already fanned out may
// still be read before that and must be ignored if no longer relevant.
func (c *Conn) Messages() <-chan protocol.Message {
	return c.send
}

// Close detaches the subscriber from the bus and closes its channel
func (c *Conn) Close() {
	c.bus.mu.Lock()
	defer c.bus.mu.Unlock()
	if _, ok := c.bus.conns[c]; ok {
		delete(c.bus.conns, c)
		close(c.send)
	}
}
