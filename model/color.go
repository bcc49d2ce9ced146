package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// ParseHex parses "RRGGBB" or "#RRGGBB" (case-insensitive).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as uppercase "RRGGBB", the form used by DrawingML.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the color as "#RRGGBB".
func (c RGB) String() string {
	return "#" + c.Hex()
}

// Within reports whether every component lies in [lo, hi].
func (c RGB) Within(lo, hi uint8) bool {
	for _, v := range []uint8{c.R, c.G, c.B} {
		if v < lo || v > hi {
			return false
		}
	}
	return true
}
