package grid

import (
	"fmt"

	"github.com/dshills/trilex/internal/renderer/core"
)

// Theme holds the styles the grid draws with.
type Theme struct {
	Header    core.Style
	Row       core.Style
	RowAlt    core.Style
	Cursor    core.Style
	Selected  core.Style
	Block     core.Style
	Invalid   core.Style
	Displaced core.Style
	Handle    core.Style
	Marker    core.Style
	Verified  core.Style
	Busy      core.Style
}

// ThemeColors is the user-facing theme configuration: hex colours from
// which every style is derived.
type ThemeColors struct {
	Background string
	Foreground string
	Accent     string
	Error      string
}

// DefaultColors returns the built-in palette.
func DefaultColors() ThemeColors {
	return ThemeColors{
		Background: "#1e1f29",
		Foreground: "#d8dee9",
		Accent:     "#3b82f6",
		Error:      "#e5484d",
	}
}

// DefaultTheme returns the theme derived from DefaultColors.
func DefaultTheme() Theme {
	t, err := NewTheme(DefaultColors())
	if err != nil {
		panic(err)
	}
	return t
}

// NewTheme derives a theme from a palette. Empty colours fall back to the
// defaults.
func NewTheme(c ThemeColors) (Theme, error) {
	def := DefaultColors()
	pick := func(name, v, fallback string) (core.Color, error) {
		if v == "" {
			v = fallback
		}
		col, err := core.ColorFromHex(v)
		if err != nil {
			return core.Color{}, fmt.Errorf("theme %s: %w", name, err)
		}
		return col, nil
	}

	bg, err := pick("background", c.Background, def.Background)
	if err != nil {
		return Theme{}, err
	}
	fg, err := pick("foreground", c.Foreground, def.Foreground)
	if err != nil {
		return Theme{}, err
	}
	accent, err := pick("accent", c.Accent, def.Accent)
	if err != nil {
		return Theme{}, err
	}
	bad, err := pick("error", c.Error, def.Error)
	if err != nil {
		return Theme{}, err
	}

	// Tints are blended in Lab space so they stay readable on both light
	// and dark backgrounds.
	base := core.Style{Foreground: fg, Background: bg}
	return Theme{
		Header:    base.WithBackground(bg.Blend(fg, 0.15)).Bold(),
		Row:       base,
		RowAlt:    base.WithBackground(bg.Blend(fg, 0.05)),
		Cursor:    base.WithAttributes(core.AttrReverse),
		Selected:  base.WithBackground(bg.Blend(accent, 0.25)),
		Block:     base.WithBackground(bg.Blend(accent, 0.45)).Bold(),
		Invalid:   base.WithBackground(bg.Blend(bad, 0.35)).WithAttributes(core.AttrStrikethrough),
		Displaced: base.WithBackground(bg.Blend(accent, 0.12)).Dim(),
		Handle:    base.WithForeground(accent).Bold(),
		Marker:    base.WithForeground(accent).Bold(),
		Verified:  base.WithForeground(accent.Rotate(120)),
		Busy:      base.WithAttributes(core.AttrItalic).Dim(),
	}, nil
}
