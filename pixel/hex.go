package pixel

import (
	"fmt"
	"strconv"
	"strings"

	"blendy/blend"
)

// ParseHex reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA. Missing alpha is opaque.
func ParseHex(s string) (blend.Rgba8, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return blend.Rgba8{}, fmt.Errorf("invalid color %q: missing '#'", s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return blend.Rgba8{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	switch len(digits) {
	case 3:
		v = v<<4 | 0xf
		fallthrough
	case 4:
		var p blend.Rgba8
		p.R = nibble(v >> 12)
		p.G = nibble(v >> 8)
		p.B = nibble(v >> 4)
		p.A = nibble(v)
		return p, nil
	case 6:
		v = v<<8 | 0xff
		fallthrough
	case 8:
		return blend.Rgba8{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	default:
		return blend.Rgba8{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}
}

func nibble(v uint64) uint8 {
	n := uint8(v & 0xf)
	return n<<4 | n
}

// FormatHex is the #RRGGBBAA form of p.
func FormatHex(p blend.Rgba8) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", p.R, p.G, p.B, p.A)
}
