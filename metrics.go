package server

import "sync/atomic"

// Metrics tracks loop health counters for the diagnostics endpoint.
type Metrics struct {
	TickCount     int64
	Joins         int64
	Leaves        int64
	InputsApplied int64
	Broadcasts    int64
	SendFailures  int64
	TotalTickNs   int64
}

func (m *Metrics) IncJoin()        { atomic.AddInt64(&m.Joins, 1) }
func (m *Metrics) IncLeave()       { atomic.AddInt64(&m.Leaves, 1) }
func (m *Metrics) IncInput()       { atomic.AddInt64(&m.InputsApplied, 1) }
func (m *Metrics) IncBroadcast()   { atomic.AddInt64(&m.Broadcasts, 1) }
func (m *Metrics) IncSendFailure() { atomic.AddInt64(&m.SendFailures, 1) }

func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot returns a read-only copy for HTTP output.
func (m *Metrics) Snapshot() map[string]any {
	ticks := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":     ticks,
		"joins":          atomic.LoadInt64(&m.Joins),
		"leaves":         atomic.LoadInt64(&m.Leaves),
		"inputs_applied": atomic.LoadInt64(&m.InputsApplied),
		"broadcasts":     atomic.LoadInt64(&m.Broadcasts),
		"send_failures":  atomic.LoadInt64(&m.SendFailures),
		"avg_tick_ms":    avgMs,
	}
}
