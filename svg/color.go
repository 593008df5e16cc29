// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color value: the #rgb and #rrggbb hex
// forms and the named colors of the SVG 1.1 specification plus
// rebeccapurple. The second return value reports whether s was
// recognized.
func ParseColor(s string) (color.NRGBA, bool) {
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	name := strings.ToLower(s)
	// colornames carries the SVG 1.1 keyword table; rebeccapurple
	// was added in CSS Color 4.
	if name == "rebeccapurple" {
		return color.NRGBA{R: 0x66, G: 0x33, B: 0x99, A: 0xff}, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

func parseHexColor(s string) (color.NRGBA, bool) {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	switch len(s) {
	case 3:
		r := uint8(n >> 8 & 0xf)
		g := uint8(n >> 4 & 0xf)
		b := uint8(n & 0xf)
		return color.NRGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 0xff}, true
	case 6:
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, true
	}
	return color.NRGBA{}, false
}

// FormatColor returns the #rrggbb form of c. Alpha is not encoded;
// the engines only produce opaque colors.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
