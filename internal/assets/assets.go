package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ScenesDir is where scene files live relative to the working directory.
const ScenesDir = "assets/scenes"

// Color name mapping for scene files and config
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
	"Magenta":   rl.Magenta,
	"Violet":    rl.Violet,
}

var nameByColor = func() map[rl.Color]string {
	m := make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		m[c] = name
	}
	return m
}()

// LookupColor returns a raylib color from a name or a "#rrggbb[aa]" string.
// Unknown names fall back to White.
func LookupColor(name string) rl.Color {
	if c, ok := ParseColor(name); ok {
		return c
	}
	return rl.White
}

// ParseColor is LookupColor with an explicit ok. An empty string is not a color.
func ParseColor(name string) (rl.Color, bool) {
	if c, ok := colorByName[name]; ok {
		return c, true
	}
	if !strings.HasPrefix(name, "#") {
		return rl.Color{}, false
	}
	var r, g, b uint8
	a := uint8(255)
	hex := name[1:]
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return rl.Color{}, false
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return rl.Color{}, false
		}
	default:
		return rl.Color{}, false
	}
	return rl.Color{R: r, G: g, B: b, A: a}, true
}

// ColorName is the inverse of LookupColor: a palette name when there is one,
// otherwise "#rrggbbaa".
func ColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ScenePath resolves a scene argument. Bare names are looked up in ScenesDir
// with a .json extension; anything that exists as given is used as is.
func ScenePath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if filepath.Dir(name) == "." {
		return filepath.Join(ScenesDir, name)
	}
	return name
}
