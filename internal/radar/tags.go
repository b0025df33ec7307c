package radar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yegors/atc24-radar/internal/state"
)

// FormatTagLine expands a data tag template for one aircraft. Recognized
// tokens: {callsign}, {altitude}, {altitude:03}, {speed}, {speed:03}, {gs},
// {gs:03}, {heading}, {heading:03}, {type}. Altitude is expressed in flight
// levels (feet / 100); the :03 variants zero-pad to three digits. Unknown
// tokens are left verbatim.
//
// Single pass over the template, so cost stays linear at high aircraft
// counts regardless of how many tokens a line uses.
func FormatTagLine(template string, aircraft *state.TrackedAircraft) string {
	var b strings.Builder
	b.Grow(len(template) + 16)

	for i := 0; i < len(template); {
		if template[i] != '{' {
			b.WriteByte(template[i])
			i++
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			// Unterminated brace: emit the remainder as-is.
			b.WriteString(template[i:])
			break
		}

		token := template[i+1 : i+end]
		if value, ok := expandToken(token, aircraft); ok {
			b.WriteString(value)
		} else {
			b.WriteString(template[i : i+end+1])
		}
		i += end + 1
	}

	return b.String()
}

func expandToken(token string, aircraft *state.TrackedAircraft) (string, bool) {
	sample := &aircraft.Sample

	switch token {
	case "callsign":
		return aircraft.Callsign, true
	case "type":
		return sample.AircraftType, true
	}

	name, padded := token, false
	if cut, found := strings.CutSuffix(token, ":03"); found {
		name, padded = cut, true
	}

	var value int
	switch name {
	case "altitude":
		value = int(sample.Altitude / 100) // flight level
	case "speed":
		value = int(sample.Speed)
	case "gs":
		value = int(sample.GroundSpeed)
	case "heading":
		value = int(sample.Heading)
	default:
		return "", false
	}

	if padded {
		return fmt.Sprintf("%03d", value), true
	}
	return strconv.Itoa(value), true
}
