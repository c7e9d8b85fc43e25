package ot

// Font is what a shaper needs to know about a font. Implementations are expected to
// be immutable after construction and safe for concurrent reads.
//
// Package otfont provides an implementation on top of go-text/typesetting; tests
// use synthetic fonts built in memory.
type Font interface {
	// GlyphIndex maps a code-point to a glyph via the font's cmap. Unmapped
	// code-points return NotDef.
	GlyphIndex(r rune) GlyphIndex
	// GlyphAdvance returns the horizontal advance of g in design units, adjusted
	// for the font's current variation coordinates.
	GlyphAdvance(g GlyphIndex) int32
	// GlyphSideBearing returns the left side bearing of g in design units.
	GlyphSideBearing(g GlyphIndex) int32
	// Layout returns the font's GDEF, GSUB and GPOS tables, any of which may be nil.
	Layout() LayoutTables
	// Kern returns the legacy 'kern' table, or nil.
	Kern() KernTable
	// Morx returns an engine for AAT 'morx' substitution, or nil.
	Morx() MorxShaper
	// Coords returns the normalized design-space coordinates of a variable font,
	// one per axis. Non-variable fonts return nil.
	Coords() []float32
	// UnitsPerEm returns the design units per em.
	UnitsPerEm() uint16
}

// VariantGlyphs is implemented by fonts able to resolve Unicode variation sequences
// (cmap format 14).
type VariantGlyphs interface {
	GlyphVariant(r, selector rune) (GlyphIndex, bool)
}

// PPEMSource is implemented by fonts which are instantiated at a pixel size. Device
// table deltas are applied only for fonts implementing it.
type PPEMSource interface {
	PPEM() uint16
}

// KernTable gives access to pair kerning of a legacy 'kern' (or 'kerx') table.
type KernTable interface {
	// KernPair returns the kerning value for the ordered pair (left, right),
	// in design units, or 0.
	KernPair(left, right GlyphIndex) int16
}

// KernPairs is a KernTable held in memory.
type KernPairs map[[2]GlyphIndex]int16

// KernPair looks up the pair (left, right).
func (kp KernPairs) KernPair(left, right GlyphIndex) int16 {
	return kp[[2]GlyphIndex{left, right}]
}

// MorxGlyph is a glyph produced by an AAT morx engine.
type MorxGlyph struct {
	Glyph   GlyphIndex
	Cluster uint32
}

// MorxRequest describes a run of text to be shaped by an AAT morx engine.
type MorxRequest struct {
	Runes       []rune
	Clusters    []uint32 // parallel to Runes
	Script      Tag      // ISO 15924 script tag, e.g. 'Arab'
	Language    string   // BCP 47
	RightToLeft bool
	Features    []MorxFeature
}

// MorxFeature is an OpenType feature setting, mapped by the engine to AAT feature
// types and selectors.
type MorxFeature struct {
	Tag   Tag
	Value uint32
}

// MorxShaper is the boundary to an AAT 'morx' substitution engine. Implementations
// return glyphs in logical order.
type MorxShaper interface {
	ShapeMorx(req MorxRequest) []MorxGlyph
}
