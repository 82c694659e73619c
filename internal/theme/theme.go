// Package theme holds the fixed catalog of clock color themes.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	ErrUnknownMode  = errors.New("unknown display mode")
	ErrUnknownTheme = errors.New("unknown theme")
)

// Mode selects which variant of a theme is active.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Label is the text shown in the mode selector.
func (m Mode) Label() string {
	if m == Light {
		return "Light Mode"
	}
	return "Dark Mode"
}

// ModeLabels lists the selector options in display order.
func ModeLabels() []string { return []string{Dark.Label(), Light.Label()} }

// ParseMode accepts "dark", "light" or their selector labels, ignoring case.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dark", "dark mode":
		return Dark, nil
	case "light", "light mode":
		return Light, nil
	}
	return Dark, fmt.Errorf("%w: %q", ErrUnknownMode, value)
}

// Palette is one background/foreground pair.
type Palette struct {
	BG color.RGBA
	FG color.RGBA
}

type Theme struct {
	Name  string
	Dark  Palette
	Light Palette
}

// Variant returns the palette for the given mode.
func (t Theme) Variant(mode Mode) Palette {
	if mode == Light {
		return t.Light
	}
	return t.Dark
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

func gray(v uint8) color.RGBA { return rgb(v, v, v) }

var catalog = []Theme{
	{
		Name:  "Green",
		Dark:  Palette{BG: rgb(0, 50, 0), FG: rgb(0, 255, 9)},
		Light: Palette{BG: rgb(200, 255, 200), FG: rgb(0, 100, 0)},
	},
	{
		Name:  "Pink",
		Dark:  Palette{BG: rgb(100, 0, 50), FG: rgb(255, 0, 157)},
		Light: Palette{BG: rgb(255, 200, 225), FG: rgb(150, 0, 75)},
	},
	{
		Name:  "Salmon",
		Dark:  Palette{BG: rgb(120, 50, 40), FG: rgb(240, 106, 91)},
		Light: Palette{BG: rgb(255, 200, 190), FG: rgb(150, 70, 60)},
	},
	{
		Name:  "Blue",
		Dark:  Palette{BG: rgb(0, 0, 100), FG: rgb(0, 0, 255)},
		Light: Palette{BG: rgb(200, 220, 255), FG: rgb(50, 50, 150)},
	},
	{
		Name:  "B&W",
		Dark:  Palette{BG: gray(0), FG: gray(255)},
		Light: Palette{BG: gray(255), FG: gray(0)},
	},
}

// Default is the theme used when a name is not in the catalog.
func Default() Theme { return catalog[0] }

// Names returns the theme names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}

func find(name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	for _, t := range catalog {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

// Has reports whether name is a catalog key.
func Has(name string) bool {
	_, ok := find(name)
	return ok
}

// Get returns the named theme, or the default theme for unknown names.
func Get(name string) Theme {
	if t, ok := find(name); ok {
		return t
	}
	return Default()
}

// Lookup returns the palette for name and mode. Unknown names never fail;
// they resolve to the default theme.
func Lookup(name string, mode Mode) Palette {
	return Get(name).Variant(mode)
}

// Resolve returns the canonical catalog name for name.
func Resolve(name string) string { return Get(name).Name }
