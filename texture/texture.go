// Package texture maps archive material names onto terminal glyph patterns
// and palette colors.
package texture

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// PatternWidth is the number of glyphs in every pattern
const PatternWidth = 16

// Pattern is a repeating row of glyphs sampled across a wall face
type Pattern [PatternWidth]rune

// At returns the glyph for a fractional position along a face, u in [0,1)
func (p *Pattern) At(u float64) rune {
	i := int(u * PatternWidth)
	if i < 0 {
		i = 0
	}
	if i >= PatternWidth {
		i = PatternWidth - 1
	}
	return p[i]
}

// Kind names a pattern family
type Kind uint8

const (
	Brick Kind = iota
	Tech
	Door
	Stone
	Metal
	Flesh
	Solid
	kindCount
)

var kindNames = [kindCount]string{"brick", "tech", "door", "stone", "metal", "flesh", "solid"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

func makePattern(s string) Pattern {
	var p Pattern
	rs := []rune(s)
	for i := range p {
		p[i] = rs[i%len(rs)]
	}
	return p
}

// Pattern rows, repeated to PatternWidth where shorter
var patterns = [kindCount]Pattern{
	Brick: makePattern("##==##==++..++.."),
	Tech:  makePattern("1010101001001011"),
	Door:  makePattern("[][]..[][]..===="),
	Stone: makePattern(".,.,.,.,`'`'.,.,"),
	Metal: makePattern("||//||//||--||--"),
	Flesh: makePattern("%%$$%%$$@@&&@@&&"),
	Solid: makePattern("################"),
}

// xterm-256 palette entries
var (
	ColorBrownWall  = tcell.PaletteColor(94)
	ColorGreyWall   = tcell.PaletteColor(248)
	ColorSlimeGreen = tcell.PaletteColor(118)
	ColorBloodRed   = tcell.PaletteColor(196)
	ColorDarkRed    = tcell.PaletteColor(52)
	ColorSilver     = tcell.PaletteColor(250)
	ColorWhite      = tcell.PaletteColor(255)
	ColorDimBrown   = tcell.PaletteColor(58)
	ColorDimGrey    = tcell.PaletteColor(240)
	ColorDimSilver  = tcell.PaletteColor(245)
)

// Style is the classification result for one material
type Style struct {
	Kind    Kind
	Pattern *Pattern
	Color   tcell.Color
}

// Rule pairs a name predicate with the style it selects
type Rule struct {
	Match func(upper string) bool
	Kind  Kind
	Color tcell.Color
}

// ContainsAny builds a predicate matching names that contain any of the keys
func ContainsAny(keys ...string) func(string) bool {
	return func(name string) bool {
		for _, k := range keys {
			if strings.Contains(name, k) {
				return true
			}
		}
		return false
	}
}

// Catalog is the read-only pattern and rule table. Build once, share freely.
type Catalog struct {
	rules    []Rule
	empty    Style
	fallback Style
}

// DefaultRules is the ordered rule list; narrower keys precede their family
func DefaultRules() []Rule {
	return []Rule{
		{ContainsAny("LITE"), Tech, ColorWhite},
		{ContainsAny("TEK", "COMP", "LITE", "SHAWN", "SILVER", "SUPPORT", "PLAT"), Tech, ColorGreyWall},
		{ContainsAny("DOOR", "GATE", "BIGDOOR"), Door, ColorSilver},
		{ContainsAny("WOOD"), Brick, ColorDimBrown},
		{ContainsAny("BRICK", "TAN", "BROWN", "WOOD", "PANEL", "STARTAN"), Brick, ColorBrownWall},
		{ContainsAny("MARB"), Stone, ColorSlimeGreen},
		{ContainsAny("STONE", "ROCK", "ASH", "MARB"), Stone, ColorGreyWall},
		{ContainsAny("SKIN", "FLESH", "SLIME", "BLOOD"), Flesh, ColorBloodRed},
		{ContainsAny("METAL", "PIPE", "STEEL", "IRON"), Metal, ColorSilver},
	}
}

// NewCatalog returns a catalog using DefaultRules
func NewCatalog() *Catalog {
	return NewCatalogWithRules(DefaultRules())
}

// NewCatalogWithRules returns a catalog over a caller-supplied ordered rule list
func NewCatalogWithRules(rules []Rule) *Catalog {
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &Catalog{
		rules:    r,
		empty:    Style{Kind: Solid, Pattern: &patterns[Solid], Color: ColorWhite},
		fallback: Style{Kind: Brick, Pattern: &patterns[Brick], Color: ColorGreyWall},
	}
}

// Classify returns the style of the first rule matching name, case-insensitively.
// Empty names are solid white; unmatched names fall back to grey brick.
func (c *Catalog) Classify(name string) Style {
	if name == "" {
		return c.empty
	}
	upper := strings.ToUpper(name)
	for _, r := range c.rules {
		if r.Match(upper) {
			return Style{Kind: r.Kind, Pattern: &patterns[r.Kind], Color: r.Color}
		}
	}
	return c.fallback
}
