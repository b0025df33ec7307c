// Package state holds the shared radar picture: tracked aircraft, controller
// positions, ATIS broadcasts, the active configuration snapshot and the feed
// connection status. The Store is the only shared mutable structure in the
// process; every accessor returns an owned copy so no caller ever holds a
// lock across further processing.
package state

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yegors/atc24-radar/internal/config"
	"github.com/yegors/atc24-radar/internal/ptfs"
)

// ConnectionStatus is derived observability state updated by the streaming
// client and the message router.
type ConnectionStatus struct {
	StreamConnected    bool  `json:"stream_connected"`
	LastDataReceived   int64 `json:"last_data_received"` // Unix ms, 0 = never
	AircraftCount      int   `json:"aircraft_count"`
	EventAircraftCount int   `json:"event_aircraft_count"`
}

// Store is the concurrency-safe repository shared between the network loops,
// the staleness sweeper and the render/API readers. Each logical collection
// has its own lock; locks are never held across I/O.
type Store struct {
	aircraftMu sync.RWMutex
	aircraft   map[string]*TrackedAircraft

	controllersMu sync.RWMutex
	controllers   []ptfs.ControllerPosition

	atisMu sync.RWMutex
	atis   map[string]ptfs.Atis

	statusMu sync.RWMutex
	status   ConnectionStatus

	// The active config is an immutable snapshot swapped as a whole, so
	// readers observe either the old or the new value, never a mixture.
	config atomic.Pointer[config.Config]

	nowFn func() int64 // Unix ms clock, overridable in tests
}

// NewStore creates a store with the given initial configuration snapshot
func NewStore(cfg *config.Config) *Store {
	s := &Store{
		aircraft: make(map[string]*TrackedAircraft),
		atis:     make(map[string]ptfs.Atis),
		nowFn:    func() int64 { return time.Now().UnixMilli() },
	}
	s.config.Store(cfg)
	return s
}

// UpdateAircraftBatch applies a batch of samples keyed by callsign. Unknown
// callsigns create new tracked aircraft; known ones are updated in place with
// history decimation. Samples within one batch are applied independently per
// callsign; per-callsign ordering follows router arrival order.
func (s *Store) UpdateAircraftBatch(batch ptfs.AircraftBatch, source string) {
	maxHistory := s.Config().Display.HistoryLength
	now := s.nowFn()

	s.aircraftMu.Lock()
	for callsign, sample := range batch {
		if tracked, ok := s.aircraft[callsign]; ok {
			tracked.update(sample, maxHistory, now)
		} else {
			s.aircraft[callsign] = newTrackedAircraft(callsign, sample, now)
		}
	}
	total := len(s.aircraft)
	s.aircraftMu.Unlock()

	s.statusMu.Lock()
	s.status.LastDataReceived = now
	s.status.AircraftCount = total
	if source == ptfs.SourceEvent {
		s.status.EventAircraftCount = len(batch)
	}
	s.statusMu.Unlock()
}

// Aircraft returns an owned snapshot of all tracked aircraft
func (s *Store) Aircraft() map[string]TrackedAircraft {
	s.aircraftMu.RLock()
	defer s.aircraftMu.RUnlock()

	out := make(map[string]TrackedAircraft, len(s.aircraft))
	for callsign, tracked := range s.aircraft {
		out[callsign] = tracked.clone()
	}
	return out
}

// AircraftByCallsign returns a copy of one tracked aircraft; the second
// result reports whether the callsign is currently tracked.
func (s *Store) AircraftByCallsign(callsign string) (TrackedAircraft, bool) {
	s.aircraftMu.RLock()
	defer s.aircraftMu.RUnlock()

	tracked, ok := s.aircraft[callsign]
	if !ok {
		return TrackedAircraft{}, false
	}
	return tracked.clone(), true
}

// UpdateFlightPlan attaches a flight plan to the matching aircraft. Plans
// for callsigns not currently tracked are dropped, not buffered.
func (s *Store) UpdateFlightPlan(plan ptfs.FlightPlan) {
	s.aircraftMu.Lock()
	defer s.aircraftMu.Unlock()

	if tracked, ok := s.aircraft[plan.Callsign]; ok {
		tracked.FlightPlan = &plan
	}
}

// ClearStaleAircraft evicts aircraft not updated within maxAge and returns
// the number removed. Intended to run on a periodic timer.
func (s *Store) ClearStaleAircraft(maxAge time.Duration) int {
	now := s.nowFn()
	cutoff := now - maxAge.Milliseconds()

	s.aircraftMu.Lock()
	removed := 0
	for callsign, tracked := range s.aircraft {
		if tracked.LastUpdate < cutoff {
			delete(s.aircraft, callsign)
			removed++
		}
	}
	total := len(s.aircraft)
	s.aircraftMu.Unlock()

	if removed > 0 {
		s.statusMu.Lock()
		s.status.AircraftCount = total
		s.statusMu.Unlock()
	}
	return removed
}

// UpdateControllers replaces the controller position list wholesale
func (s *Store) UpdateControllers(positions []ptfs.ControllerPosition) {
	list := make([]ptfs.ControllerPosition, len(positions))
	copy(list, positions)

	s.controllersMu.Lock()
	s.controllers = list
	s.controllersMu.Unlock()
}

// Controllers returns an owned copy of the controller position list
func (s *Store) Controllers() []ptfs.ControllerPosition {
	s.controllersMu.RLock()
	defer s.controllersMu.RUnlock()

	out := make([]ptfs.ControllerPosition, len(s.controllers))
	copy(out, s.controllers)
	for i := range out {
		if out[i].Queue != nil {
			queue := make([]string, len(out[i].Queue))
			copy(queue, out[i].Queue)
			out[i].Queue = queue
		}
		if out[i].Holder != nil {
			holder := *out[i].Holder
			out[i].Holder = &holder
		}
		if out[i].HeldSince != nil {
			held := *out[i].HeldSince
			out[i].HeldSince = &held
		}
	}
	return out
}

// UpdateATIS upserts the ATIS for one airport; last write wins. Airport keys
// are normalized to upper case so lookups are case-insensitive regardless of
// how the feed spells them; the record itself is stored verbatim.
func (s *Store) UpdateATIS(atis ptfs.Atis) {
	s.atisMu.Lock()
	s.atis[strings.ToUpper(atis.Airport)] = atis
	s.atisMu.Unlock()
}

// ATIS returns the ATIS for one airport; the lookup is case-insensitive
func (s *Store) ATIS(airport string) (ptfs.Atis, bool) {
	s.atisMu.RLock()
	defer s.atisMu.RUnlock()

	atis, ok := s.atis[strings.ToUpper(airport)]
	if !ok {
		return ptfs.Atis{}, false
	}
	return cloneAtis(atis), true
}

// AllATIS returns an owned copy of every stored ATIS keyed by airport
func (s *Store) AllATIS() map[string]ptfs.Atis {
	s.atisMu.RLock()
	defer s.atisMu.RUnlock()

	out := make(map[string]ptfs.Atis, len(s.atis))
	for airport, atis := range s.atis {
		out[airport] = cloneAtis(atis)
	}
	return out
}

// UpdateConfig atomically swaps in a new configuration snapshot
func (s *Store) UpdateConfig(cfg *config.Config) {
	s.config.Store(cfg)
}

// Config returns the active configuration snapshot. The returned value must
// be treated as read-only.
func (s *Store) Config() *config.Config {
	return s.config.Load()
}

// SetStreamConnected records the streaming client's connection state
func (s *Store) SetStreamConnected(connected bool) {
	s.statusMu.Lock()
	s.status.StreamConnected = connected
	s.statusMu.Unlock()
}

// StreamConnected reports whether the streaming client currently holds a
// live connection.
func (s *Store) StreamConnected() bool {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status.StreamConnected
}

// ConnectionStatus returns a copy of the current connection status
func (s *Store) ConnectionStatus() ConnectionStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

func cloneAtis(a ptfs.Atis) ptfs.Atis {
	if a.Lines != nil {
		lines := make([]string, len(a.Lines))
		copy(lines, a.Lines)
		a.Lines = lines
	}
	if a.Editor != nil {
		editor := *a.Editor
		a.Editor = &editor
	}
	return a
}
