// Package client implements the receiving half of the sync protocol: it
// joins a server, keeps a local snapshot of the latest broadcast state, and
// forwards input intents. Rendering and input capture live elsewhere; this
// package ends at the snapshot and the intent list.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"syncarena/server/internal/protocol"
	"syncarena/server/proto"
)

// ErrQuitTimeout reports that the server's disconnect acknowledgement did
// not arrive within the bounded wait; the connection is torn down anyway.
var ErrQuitTimeout = errors.New("timed out waiting for quit acknowledgement")

// Snapshot is the client's view of one full state broadcast. It is replaced
// wholesale on every receive; readers never observe a partially applied
// broadcast.
type Snapshot struct {
	Players map[string]proto.PlayerEntry
	Layout  map[string]proto.ObstacleEntry
}

// Client runs the sync loop for one connection.
type Client struct {
	conn net.Conn
	id   string
	log  *zap.SugaredLogger

	mu   sync.RWMutex
	snap *Snapshot

	done chan struct{}
}

// Dial connects to a server, completes the identity handshake, and starts
// the background sync loop.
func Dial(addr string, log *zap.SugaredLogger) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c, err := Attach(conn, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Attach runs the handshake over an established connection and starts the
// sync loop. The first message on the wire must be the issued identity.
func Attach(conn net.Conn, log *zap.SugaredLogger) (*Client, error) {
	payload, err := protocol.Receive(conn)
	if err != nil {
		return nil, fmt.Errorf("receive identity: %w", err)
	}
	var join proto.JoinMessage
	if err := json.Unmarshal(payload, &join); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if err := join.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		conn: conn,
		id:   join.ID,
		log:  log,
		snap: &Snapshot{
			Players: map[string]proto.PlayerEntry{},
			Layout:  map[string]proto.ObstacleEntry{},
		},
		done: make(chan struct{}),
	}
	go c.syncLoop()
	return c, nil
}

// ID returns the identity the server issued for this connection.
func (c *Client) ID() string { return c.id }

// Done closes when the sync loop ends: on the quit acknowledgement or when
// the peer vanishes.
func (c *Client) Done() <-chan struct{} { return c.done }

// Snapshot returns the most recent state. The maps belong to a single
// broadcast and are never mutated after publication.
func (c *Client) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.snap
}

// SendIntents submits this tick's input intents.
func (c *Client) SendIntents(intents []string) error {
	data, err := json.Marshal(intents)
	if err != nil {
		return fmt.Errorf("encode intents: %w", err)
	}
	return protocol.Send(c.conn, data)
}

// Quit requests a graceful disconnect and waits, bounded, for the sync loop
// to observe the acknowledgement. The connection is closed either way.
func (c *Client) Quit(timeout time.Duration) error {
	err := c.SendIntents([]string{string(quitIntent)})

	select {
	case <-c.done:
	case <-time.After(timeout):
		c.conn.Close()
		return ErrQuitTimeout
	}
	c.conn.Close()
	if err != nil && !errors.Is(err, protocol.ErrDisconnected) {
		return err
	}
	return nil
}

const quitIntent = "QUIT"

// syncLoop pulls framed broadcasts and republishes each as a whole-snapshot
// replace until the quit ack arrives or the peer is gone.
func (c *Client) syncLoop() {
	defer close(c.done)
	for {
		payload, err := protocol.Receive(c.conn)
		if err != nil {
			return
		}
		if bytes.Equal(payload, proto.QuitAck) {
			return
		}

		var msg proto.StateMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.log.Warnw("discarding malformed broadcast", "err", err)
			continue
		}

		snap := &Snapshot{Players: msg.Players, Layout: msg.LevelLayout}
		c.mu.Lock()
		c.snap = snap
		c.mu.Unlock()
	}
}
