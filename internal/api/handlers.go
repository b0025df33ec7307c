// Package api serves the local read-only snapshot API: JSON views of the
// tracked aircraft picture, controller roster, ATIS broadcasts, connection
// status and the active configuration.
package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/atc24-radar/internal/ptfs"
	"github.com/yegors/atc24-radar/internal/state"
	"github.com/yegors/atc24-radar/pkg/logger"
)

// Handler contains the API handlers
type Handler struct {
	store  *state.Store
	logger *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(store *state.Store, logger *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.Named("api-handler"),
	}
}

// GetAllAircraft returns all tracked aircraft, sorted by callsign
func (h *Handler) GetAllAircraft(w http.ResponseWriter, r *http.Request) {
	aircraft := h.store.Aircraft()

	list := make([]state.TrackedAircraft, 0, len(aircraft))
	for _, ac := range aircraft {
		list = append(list, ac)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Callsign < list[j].Callsign })

	h.logger.Debug("Aircraft snapshot served", logger.Int("count", len(list)))
	WriteJSON(w, http.StatusOK, list)
}

// GetAircraftByCallsign returns a single aircraft by callsign
func (h *Handler) GetAircraftByCallsign(w http.ResponseWriter, r *http.Request) {
	callsign := chi.URLParam(r, "callsign")
	if callsign == "" {
		http.Error(w, "Missing callsign", http.StatusBadRequest)
		return
	}

	aircraft, found := h.store.AircraftByCallsign(callsign)
	if !found {
		http.Error(w, "Aircraft not found", http.StatusNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, aircraft)
}

// GetControllers returns the current controller roster
func (h *Handler) GetControllers(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Controllers())
}

// GetAllATIS returns the latest ATIS broadcast for every airport,
// sorted by airport code
func (h *Handler) GetAllATIS(w http.ResponseWriter, r *http.Request) {
	byAirport := h.store.AllATIS()

	airports := make([]string, 0, len(byAirport))
	for airport := range byAirport {
		airports = append(airports, airport)
	}
	sort.Strings(airports)

	list := make([]ptfs.Atis, 0, len(airports))
	for _, airport := range airports {
		list = append(list, byAirport[airport])
	}

	WriteJSON(w, http.StatusOK, list)
}

// GetATISByAirport returns the latest ATIS broadcast for one airport
func (h *Handler) GetATISByAirport(w http.ResponseWriter, r *http.Request) {
	airport := chi.URLParam(r, "airport")
	if airport == "" {
		http.Error(w, "Missing airport", http.StatusBadRequest)
		return
	}

	atis, found := h.store.ATIS(airport)
	if !found {
		http.Error(w, "ATIS not found", http.StatusNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, atis)
}

// GetStatus returns the feed connection status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.ConnectionStatus())
}

// GetConfig returns the active configuration snapshot
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Config())
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
