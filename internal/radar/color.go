package radar

// Transparent is the zero color; instructions carrying it draw nothing
var Transparent = RGBA{}

// White is the fallback for malformed color strings
var White = RGBA{R: 255, G: 255, B: 255, A: 255}

// ParseHexColor parses a "#RRGGBB" string into an opaque RGBA. Malformed
// input yields white rather than an error; colors come from the validated
// config snapshot, so this is a belt of last resort.
func ParseHexColor(hex string) RGBA {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return White
	}

	var out [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(hex[2*i])
		lo, ok2 := hexNibble(hex[2*i+1])
		if !ok1 || !ok2 {
			return White
		}
		out[i] = hi<<4 | lo
	}
	return RGBA{R: out[0], G: out[1], B: out[2], A: 255}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
