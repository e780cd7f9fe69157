package server

import (
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"syncarena/server/internal/protocol"
	"syncarena/server/internal/sim"
)

// session couples one live connection with its player. The read pump is the
// only writer to pending; the tick loop is the only reader.
type session struct {
	id     uuid.UUID
	conn   net.Conn
	player *sim.Player

	// pending holds at most one intent list; the newest list wins. The tick
	// loop drains it non-blocking, so a silent or slow peer never stalls
	// ticking for the others.
	pending chan []sim.Intent
}

func newSession(id uuid.UUID, conn net.Conn, player *sim.Player) *session {
	return &session{
		id:      id,
		conn:    conn,
		player:  player,
		pending: make(chan []sim.Intent, 1),
	}
}

// readLoop blocks on framed receives for the life of the connection. A
// vanished peer or a payload outside the protocol becomes a quit intent;
// the tick loop handles the actual removal.
func (s *session) readLoop(log *zap.SugaredLogger) {
	for {
		payload, err := protocol.Receive(s.conn)
		if err != nil {
			s.post([]sim.Intent{sim.IntentQuit})
			return
		}
		intents, err := parseIntents(payload)
		if err != nil {
			log.Warnw("dropping connection on bad payload", "id", s.id, "err", err)
			s.post([]sim.Intent{sim.IntentQuit})
			return
		}
		s.post(intents)
	}
}

// post replaces any not-yet-consumed intent list. Safe because readLoop is
// the sole writer.
func (s *session) post(intents []sim.Intent) {
	select {
	case s.pending <- intents:
	default:
		select {
		case <-s.pending:
		default:
		}
		s.pending <- intents
	}
}
