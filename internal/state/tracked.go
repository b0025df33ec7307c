package state

import (
	"github.com/yegors/atc24-radar/internal/ptfs"
)

// historyDistanceStuds is the decimation threshold: a history point is
// recorded only once the aircraft has moved farther than this from the last
// recorded position (~54 m), so stationary traffic does not bloat the trail.
const historyDistanceStuds = 100.0

// HistoryPoint is one retained trail position
type HistoryPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"` // Unix ms
}

// TrackedAircraft is the internal state for one aircraft, keyed by callsign.
// Instances handed out by the Store are independent copies.
type TrackedAircraft struct {
	Callsign   string              `json:"callsign"`
	Sample     ptfs.AircraftSample `json:"sample"`
	FlightPlan *ptfs.FlightPlan    `json:"flight_plan,omitempty"`
	History    []HistoryPoint      `json:"history"`
	LastUpdate int64               `json:"last_update"` // Unix ms
}

func newTrackedAircraft(callsign string, sample ptfs.AircraftSample, now int64) *TrackedAircraft {
	return &TrackedAircraft{
		Callsign:   callsign,
		Sample:     sample,
		LastUpdate: now,
	}
}

// update replaces the current sample and records the previous position in
// the history trail when the aircraft has moved beyond the decimation
// threshold. The trail is bounded FIFO at maxHistory points.
func (t *TrackedAircraft) update(sample ptfs.AircraftSample, maxHistory int, now int64) {
	if t.movedBeyondThreshold(sample) {
		t.History = append(t.History, HistoryPoint{
			X:         t.Sample.Position.X,
			Y:         t.Sample.Position.Y,
			Timestamp: t.LastUpdate,
		})
		for len(t.History) > maxHistory {
			t.History = t.History[1:]
		}
	}

	t.Sample = sample
	t.LastUpdate = now
}

func (t *TrackedAircraft) movedBeyondThreshold(next ptfs.AircraftSample) bool {
	dx := next.Position.X - t.Sample.Position.X
	dy := next.Position.Y - t.Sample.Position.Y
	return dx*dx+dy*dy > historyDistanceStuds*historyDistanceStuds
}

// clone returns an independent copy safe to hand to callers
func (t *TrackedAircraft) clone() TrackedAircraft {
	out := *t
	if t.History != nil {
		out.History = make([]HistoryPoint, len(t.History))
		copy(out.History, t.History)
	}
	if t.FlightPlan != nil {
		fp := *t.FlightPlan
		out.FlightPlan = &fp
	}
	return out
}
