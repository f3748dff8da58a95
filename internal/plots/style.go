package plots

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// palettes maps palette names to hex colors.
var palettes = map[string][]string{
	"tab10":      {"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf"},
	"deep":       {"4c72b0", "dd8452", "55a868", "c44e52", "8172b3", "937860", "da8bc3", "8c8c8c", "ccb974", "64b5cd"},
	"muted":      {"4878d0", "ee854a", "6acc64", "d65f5f", "956cb4", "8c613c", "dc7ec0", "797979", "d5bb67", "82c6e2"},
	"pastel":     {"a1c9f4", "ffb482", "8de5a1", "ff9f9b", "d0bbff", "debb9b", "fab0e4", "cfcfcf", "fffea3", "b9f2f0"},
	"dark":       {"001c7f", "b1400d", "12711c", "8c0800", "591e71", "592f0d", "a23582", "3c3c3c", "b8850a", "006374"},
	"colorblind": {"0173b2", "de8f05", "029e73", "d55e00", "cc78bc", "ca9161", "fbafe4", "949494", "ece133", "56b4e9"},
}

// DefaultPalette is used when no palette is named.
const DefaultPalette = "tab10"

// Palettes returns the known palette names.
func Palettes() []string {
	out := make([]string, 0, len(palettes))
	for k := range palettes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Style carries the visual settings for every chart of a summary.
type Style struct {
	Palette  string
	FontSize float64 // points
	DPI      int
}

// DefaultStyle returns the styling used when none is configured.
func DefaultStyle() Style {
	return Style{Palette: DefaultPalette, FontSize: 15, DPI: 96}
}

// Validate checks the palette name and sizes.
func (s Style) Validate() error {
	if s.Palette != "" {
		if _, ok := palettes[strings.ToLower(s.Palette)]; !ok {
			return fmt.Errorf("unknown color palette %q (available: %s)", s.Palette, strings.Join(Palettes(), ", "))
		}
	}
	if s.FontSize < 0 {
		return fmt.Errorf("font size must be non-negative, got %v", s.FontSize)
	}
	return nil
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Palette == "" {
		s.Palette = d.Palette
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.DPI <= 0 {
		s.DPI = d.DPI
	}
	return s
}

// Color returns the i-th palette color, cycling.
func (s Style) Color(i int) color.RGBA {
	hexes, ok := palettes[strings.ToLower(s.Palette)]
	if !ok {
		hexes = palettes[DefaultPalette]
	}
	return hexColor(hexes[i%len(hexes)])
}

// BarColor is the fill used for single-series bars, histograms and boxes.
func (s Style) BarColor() color.RGBA { return s.Color(0) }

// AccentColor is used for overlays such as density curves and trend lines.
func (s Style) AccentColor() color.RGBA { return s.Color(1) }

func hexColor(h string) color.RGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(h, "#"), 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// apply sets the font sizes of p.
func (s Style) apply(p *plot.Plot) {
	s = s.withDefaults()
	fs := vg.Points(s.FontSize)
	tick := vg.Points(s.FontSize * 0.8)
	p.Title.TextStyle.Font.Size = fs
	p.X.Label.TextStyle.Font.Size = fs
	p.Y.Label.TextStyle.Font.Size = fs
	p.X.Tick.Label.Font.Size = tick
	p.Y.Tick.Label.Font.Size = tick
}

func newPlot(title string, st Style) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	st.apply(p)
	return p
}
