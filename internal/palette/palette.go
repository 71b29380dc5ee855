// Package palette maps arbitrary colors to named reference fabrics using
// perceptual (CIELAB) distance.
package palette

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/Emeier2/quiltify/pkg/colorutil"
)

// Entry is one named reference color.
type Entry struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Palette is an immutable named color table with precomputed Lab
// coordinates. Build one at startup and share it freely; lookups perform no
// writes, so unsynchronized concurrent use is safe.
type Palette struct {
	entries []Entry
	labs    [][3]float64
}

// New builds a palette from entries. Entries with unparseable hex values
// are rejected.
func New(entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("palette needs at least one entry")
	}
	p := &Palette{
		entries: make([]Entry, len(entries)),
		labs:    make([][3]float64, len(entries)),
	}
	copy(p.entries, entries)
	for i, e := range entries {
		c, err := colorutil.ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", e.Name, err)
		}
		l, a, b := colorutil.Lab(c)
		p.labs[i] = [3]float64{l, a, b}
	}
	return p, nil
}

// Load reads a palette from a JSON file of [{"name": ..., "hex": ...}]
// entries. Any failure falls back to the builtin palette so the caller
// always gets a usable table.
func Load(path string) *Palette {
	data, err := os.ReadFile(path)
	if err != nil {
		return Builtin()
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return Builtin()
	}
	p, err := New(entries)
	if err != nil {
		return Builtin()
	}
	return p
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the palette entries.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Nearest returns the entry with the smallest CIELAB Euclidean distance to
// the given color.
func (p *Palette) Nearest(c color.RGBA) Entry {
	l, a, b := colorutil.Lab(c)
	best := 0
	bestDist := labDistSq(p.labs[0], [3]float64{l, a, b})
	for i := 1; i < len(p.labs); i++ {
		if d := labDistSq(p.labs[i], [3]float64{l, a, b}); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return p.entries[best]
}

// NearestHex is Nearest for a hex color string.
func (p *Palette) NearestHex(hex string) (Entry, error) {
	c, err := colorutil.ParseHex(hex)
	if err != nil {
		return Entry{}, err
	}
	return p.Nearest(c), nil
}

func labDistSq(p, q [3]float64) float64 {
	dl := p[0] - q[0]
	da := p[1] - q[1]
	db := p[2] - q[2]
	return dl*dl + da*da + db*db
}

// Builtin returns the fixed 30-entry Kona Cotton fallback palette, used
// when no palette data file is available.
func Builtin() *Palette {
	p, err := New(builtinEntries)
	if err != nil {
		// The builtin table is a compile-time constant; a parse failure
		// here is a programming error.
		panic(err)
	}
	return p
}

var builtinEntries = []Entry{
	{Name: "Kona Cotton - Black", Hex: "#1a1a1a"},
	{Name: "Kona Cotton - White", Hex: "#f5f5f5"},
	{Name: "Kona Cotton - Cream", Hex: "#f5f0dc"},
	{Name: "Kona Cotton - Navy", Hex: "#1b2d5b"},
	{Name: "Kona Cotton - Cobalt", Hex: "#2c5fa6"},
	{Name: "Kona Cotton - Sky", Hex: "#7db8d8"},
	{Name: "Kona Cotton - Grass", Hex: "#4a7c3f"},
	{Name: "Kona Cotton - Lime", Hex: "#98c44a"},
	{Name: "Kona Cotton - Tomato", Hex: "#c43428"},
	{Name: "Kona Cotton - Tangerine", Hex: "#e87535"},
	{Name: "Kona Cotton - Gold", Hex: "#d4a42a"},
	{Name: "Kona Cotton - Sand", Hex: "#c8b585"},
	{Name: "Kona Cotton - Chocolate", Hex: "#5e3a1e"},
	{Name: "Kona Cotton - Charcoal", Hex: "#4a4a4a"},
	{Name: "Kona Cotton - Fog", Hex: "#9eadb5"},
	{Name: "Kona Cotton - Dusty Blue", Hex: "#6b8fa8"},
	{Name: "Kona Cotton - Sage", Hex: "#8a9e7e"},
	{Name: "Kona Cotton - Khaki", Hex: "#c4b98a"},
	{Name: "Kona Cotton - Mushroom", Hex: "#a08070"},
	{Name: "Kona Cotton - Eggplant", Hex: "#4a2060"},
	{Name: "Kona Cotton - Bordeaux", Hex: "#7a1f2e"},
	{Name: "Kona Cotton - Teal", Hex: "#2a7a6e"},
	{Name: "Kona Cotton - Aqua", Hex: "#40b4b0"},
	{Name: "Kona Cotton - Maize", Hex: "#f0c040"},
	{Name: "Kona Cotton - Coral", Hex: "#e8705a"},
	{Name: "Kona Cotton - Rose", Hex: "#d87090"},
	{Name: "Kona Cotton - Lavender", Hex: "#a080c0"},
	{Name: "Kona Cotton - Periwinkle", Hex: "#7080c0"},
	{Name: "Kona Cotton - Ivory", Hex: "#f8f0e0"},
	{Name: "Kona Cotton - Natural", Hex: "#e8dcc0"},
}
