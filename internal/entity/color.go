package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// Color is an RGB display color attached to a player.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Silver     = Color{R: 0xC0, G: 0xC0, B: 0xC0}
	Gray       = Color{R: 0x80, G: 0x80, B: 0x80}
	Gold       = Color{R: 0xFF, G: 0xD7, B: 0x00}
	DarkOrange = Color{R: 0xFF, G: 0x8C, B: 0x00}
)

// Hex formats the color as #RRGGBB.
func (that Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", that.R, that.G, that.B)
}

// ParseHexColor parses #RRGGBB (the leading # is optional).
func ParseHexColor(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	rgb, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}, nil
}
