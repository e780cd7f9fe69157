package server

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/google/uuid"

	"syncarena/server/internal/protocol"
	"syncarena/server/internal/sim"
	"syncarena/server/proto"
)

// Serve accepts connections until the listener closes. Each accepted peer
// gets a fresh identity as its very first framed message and is signaled to
// the tick loop through the join channel; this goroutine never touches the
// roster directly and never removes anything.
func (h *Hub) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		go h.admit(conn)
	}
}

// admit performs the identity handshake and hands the session to the loop.
func (h *Hub) admit(conn net.Conn) {
	id := uuid.New()

	data, err := json.Marshal(proto.JoinMessage{ID: id.String()})
	if err != nil {
		h.log.Errorw("encoding join message", "err", err)
		_ = conn.Close()
		return
	}
	if err := protocol.Send(conn, data); err != nil {
		h.log.Warnw("handshake failed", "remote", conn.RemoteAddr(), "err", err)
		_ = conn.Close()
		return
	}

	player := sim.NewPlayer(id, provisionalX, provisionalY, colorFor(id.String()))
	sess := newSession(id, conn, player)
	go sess.readLoop(h.log)
	h.joinCh <- sess
}
