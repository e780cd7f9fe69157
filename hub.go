// Package server is the authoritative core: it owns the true simulation
// state and streams it to every connected client each tick, while clients
// only ever submit input intents.
package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"syncarena/server/internal/protocol"
	"syncarena/server/internal/sim"
	"syncarena/server/proto"
)

// Hub owns the roster of live connections and drives the fixed-rate tick
// loop. The roster map belongs to the loop alone: the accept goroutine only
// inserts through joinCh, consumed at tick boundaries, and readers outside
// the loop see published snapshots instead of the map itself.
type Hub struct {
	log      *zap.SugaredLogger
	metrics  *Metrics
	tickRate int

	obstacles []sim.Obstacle
	roster    map[uuid.UUID]*session
	joinCh    chan *session
	tick      uint64

	// publish-side state for diagnostics and /watch spectators.
	mu          sync.Mutex
	lastState   []byte
	lastPlayers []string
	lastTick    uint64
	watchers    map[*watcher]struct{}
}

func NewHub(log *zap.SugaredLogger, tickRate int) *Hub {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Hub{
		log:       log,
		metrics:   &Metrics{},
		tickRate:  tickRate,
		obstacles: defaultLevel(),
		roster:    make(map[uuid.UUID]*session),
		joinCh:    make(chan *session, joinBacklog),
		watchers:  make(map[*watcher]struct{}),
	}
}

// Metrics exposes the hub's counters.
func (h *Hub) Metrics() *Metrics { return h.metrics }

// Run drives the authoritative loop at the hub's tick rate until stop
// closes. Each tick: admit joins, collect buffered input, step the
// simulation, broadcast the full state.
func (h *Hub) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			start := time.Now()
			h.step()
			h.metrics.AddTick(time.Since(start).Nanoseconds())
		}
	}
}

// step runs exactly one tick. Exported behavior is identical whether driven
// by Run's ticker or directly (tests).
func (h *Hub) step() {
	h.admitJoins()
	inputs := h.collectInputs()
	for id, sess := range h.roster {
		sim.Step(sess.player, inputs[id], h.obstacles)
	}
	h.broadcast()
	h.tick++
}

// admitJoins drains the join channel and places each new player at the
// spawn point, so insertion only ever happens at a tick boundary.
func (h *Hub) admitJoins() {
	for {
		select {
		case sess := <-h.joinCh:
			h.roster[sess.id] = sess
			sess.player.SetPos(spawnX, spawnY)
			h.metrics.IncJoin()
			h.log.Infow("player connected", "id", sess.id, "active", len(h.roster))
		default:
			return
		}
	}
}

// collectInputs polls every session without blocking. No buffered message
// means an empty intent set for this tick. A quit intent is acknowledged,
// the connection closed, and the identity removed before the physics step,
// so later stages never reference it.
func (h *Hub) collectInputs() map[uuid.UUID][]sim.Intent {
	inputs := make(map[uuid.UUID][]sim.Intent, len(h.roster))
	for _, id := range h.rosterIDs() {
		sess := h.roster[id]
		select {
		case intents := <-sess.pending:
			if hasQuit(intents) {
				h.drop(sess, "quit")
				continue
			}
			h.metrics.IncInput()
			inputs[id] = intents
		default:
			inputs[id] = nil
		}
	}
	return inputs
}

// rosterIDs materializes the key list so removals mid-tick cannot corrupt
// iteration.
func (h *Hub) rosterIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(h.roster))
	for id := range h.roster {
		ids = append(ids, id)
	}
	return ids
}

// drop acknowledges, closes, and removes one session. Failures here are
// already disconnects; nothing propagates.
func (h *Hub) drop(sess *session, reason string) {
	sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = protocol.Send(sess.conn, proto.QuitAck)
	_ = sess.conn.Close()
	delete(h.roster, sess.id)
	h.metrics.IncLeave()
	h.log.Infow("player disconnected", "id", sess.id, "reason", reason, "active", len(h.roster))
}

// broadcast serializes the entity model once and sends the same bytes to
// every roster connection. A failed send removes only that one peer.
func (h *Hub) broadcast() {
	ids := h.rosterIDs()
	players := make([]*sim.Player, 0, len(ids))
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		players = append(players, h.roster[id].player)
		names = append(names, id.String())
	}

	data, err := marshalState(buildState(players, h.obstacles))
	if err != nil {
		h.log.Errorw("skipping broadcast", "err", err)
		return
	}
	h.publish(data, names)

	for _, id := range ids {
		sess, ok := h.roster[id]
		if !ok {
			continue
		}
		sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := protocol.Send(sess.conn, data); err != nil {
			h.metrics.IncSendFailure()
			h.drop(sess, "send failed")
		}
	}
	h.metrics.IncBroadcast()
}
