package ptfs

import (
	"encoding/json"
	"fmt"

	"github.com/yegors/atc24-radar/internal/config"
	"github.com/yegors/atc24-radar/pkg/logger"
)

// Store is the sink the router and streaming client apply feed data to.
// Implemented by *state.Store.
type Store interface {
	UpdateAircraftBatch(batch AircraftBatch, source string)
	UpdateFlightPlan(plan FlightPlan)
	UpdateControllers(positions []ControllerPosition)
	UpdateATIS(atis Atis)
	SetStreamConnected(connected bool)
	StreamConnected() bool
	Config() *config.Config
}

// Router classifies inbound stream frames by their declared type, decodes
// the payload and applies it to the store. Every failure here is recoverable:
// the offending frame is dropped and processing continues.
type Router struct {
	store  Store
	logger *logger.Logger
}

// NewRouter creates a message router backed by the given store
func NewRouter(store Store, log *logger.Logger) *Router {
	return &Router{
		store:  store,
		logger: log.Named("router"),
	}
}

// HandleFrame processes one raw text frame from the stream. A returned error
// means the frame was dropped; it is never fatal to the read loop.
func (r *Router) HandleFrame(frame []byte) error {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return fmt.Errorf("failed to parse envelope: %w", err)
	}

	network := r.store.Config().Network

	switch env.Type {
	case MsgAircraftData:
		if !network.EnableMainServer {
			return nil
		}
		return r.applyAircraftBatch(env.Data, SourceMain)

	case MsgEventAircraftData:
		if !network.EnableEventServer {
			return nil
		}
		return r.applyAircraftBatch(env.Data, SourceEvent)

	case MsgFlightPlan, MsgEventFlightPlan:
		if env.Type == MsgEventFlightPlan && !network.EnableEventServer {
			return nil
		}
		var plan FlightPlan
		if err := json.Unmarshal(env.Data, &plan); err != nil {
			return fmt.Errorf("failed to parse flight plan: %w", err)
		}
		r.store.UpdateFlightPlan(plan)
		return nil

	case MsgControllers:
		var positions []ControllerPosition
		if err := json.Unmarshal(env.Data, &positions); err != nil {
			return fmt.Errorf("failed to parse controller positions: %w", err)
		}
		r.store.UpdateControllers(positions)
		return nil

	case MsgATIS:
		var atis Atis
		if err := json.Unmarshal(env.Data, &atis); err != nil {
			return fmt.Errorf("failed to parse ATIS: %w", err)
		}
		r.store.UpdateATIS(atis)
		return nil

	default:
		// Forward compatibility: unknown message kinds must never crash or
		// desynchronize the client.
		r.logger.Warn("Unknown event type", logger.String("type", env.Type))
		return nil
	}
}

func (r *Router) applyAircraftBatch(data json.RawMessage, source string) error {
	var batch AircraftBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("failed to parse aircraft data: %w", err)
	}
	r.store.UpdateAircraftBatch(batch, source)

	r.logger.Debug("Applied aircraft batch",
		logger.String("source", source),
		logger.Int("aircraft_count", len(batch)),
	)
	return nil
}
