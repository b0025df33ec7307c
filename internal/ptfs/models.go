// Package ptfs implements the client side of the PTFS (ATC 24) data feed:
// wire models, the streaming websocket client, the message router and the
// REST fallback client.
package ptfs

import "encoding/json"

// Data source labels for applied aircraft batches
const (
	SourceMain  = "main"
	SourceEvent = "event"
)

// Stream message type strings as sent in the envelope "t" field
const (
	MsgAircraftData      = "ACFT_DATA"
	MsgEventAircraftData = "EVENT_ACFT_DATA"
	MsgFlightPlan        = "FLIGHT_PLAN"
	MsgEventFlightPlan   = "EVENT_FLIGHT_PLAN"
	MsgControllers       = "CONTROLLERS"
	MsgATIS              = "ATIS"
)

// Envelope is the websocket message envelope. The payload under "d" varies
// by event type and is deserialized by the router.
type Envelope struct {
	Type      string          `json:"t"`
	Data      json.RawMessage `json:"d"`
	Timestamp string          `json:"s,omitempty"` // ISO 8601, optional
}

// Position is a point in studs, the simulation's planar coordinate system.
// -y is North, -x is West.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AircraftSample is a single aircraft state update. The batch payload is a
// map keyed by callsign.
type AircraftSample struct {
	Heading      float64  `json:"heading"`    // Degrees, 0-360 with 360 = North
	PlayerName   string   `json:"playerName"` // Pilot identity
	Altitude     float64  `json:"altitude"`   // Feet
	AircraftType string   `json:"aircraftType"`
	Position     Position `json:"position"`
	Speed        float64  `json:"speed"` // Indicated airspeed, knots
	Wind         string   `json:"wind"`  // e.g. "357/15"
	// Absent for rotorcraft, hence the pointer.
	IsOnGround  *bool   `json:"isOnGround,omitempty"`
	GroundSpeed float64 `json:"groundSpeed"` // Knots
	// Field name carries the feed's spelling.
	IsEmergencyOccuring bool `json:"isEmergencyOccuring"`
}

// OnGround reports whether the aircraft is in taxiing mode; aircraft that
// never report the flag (rotorcraft) count as airborne.
func (s *AircraftSample) OnGround() bool {
	return s.IsOnGround != nil && *s.IsOnGround
}

// AircraftBatch maps callsign to the latest sample for that aircraft
type AircraftBatch map[string]AircraftSample

// FlightPlan is filed independently of position samples and joined to a
// tracked aircraft by callsign.
type FlightPlan struct {
	RobloxName   string `json:"robloxName"`
	Callsign     string `json:"callsign"`
	RealCallsign string `json:"realcallsign"`
	Aircraft     string `json:"aircraft"`
	FlightRules  string `json:"flightrules"` // "IFR" or "VFR"
	Departing    string `json:"departing"`   // Airport ICAO
	Arriving     string `json:"arriving"`    // Airport ICAO
	Route        string `json:"route"`
	FlightLevel  string `json:"flightlevel"`
}

// ControllerPosition is an ATC position slot. The controller list is always
// replaced wholesale, never merged.
type ControllerPosition struct {
	Holder    *string  `json:"holder"`              // nil if unclaimed
	HeldSince *int64   `json:"heldSince,omitempty"` // Unix ms when claimed
	Claimable bool     `json:"claimable"`
	Airport   string   `json:"airport"`  // Airport ICAO or area control centre
	Position  string   `json:"position"` // GND, TWR, CTR
	Queue     []string `json:"queue"`    // Usernames waiting for the position
}

// Atis is the ATIS broadcast for one airport; last write wins per airport
type Atis struct {
	Airport string   `json:"airport"`
	Letter  string   `json:"letter"`
	Content string   `json:"content"` // Full text with embedded newlines
	Lines   []string `json:"lines"`
	Editor  *string  `json:"editor"` // Username of last editor, can be null
}
