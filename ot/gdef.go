package ot

// --- GDEF table ------------------------------------------------------------

// GlyphClass is a glyph class value from the GDEF glyph class definition table.
type GlyphClass uint16

// Glyph classes as defined by GDEF.
const (
	UnclassifiedGlyph GlyphClass = 0
	BaseGlyph         GlyphClass = 1 // Base glyph (single character, spacing glyph)
	LigatureGlyph     GlyphClass = 2 // Ligature glyph (multiple character, spacing glyph)
	MarkGlyph         GlyphClass = 3 // Mark glyph (non-spacing combining glyph)
	ComponentGlyph    GlyphClass = 4 // Component glyph (part of single character, spacing glyph)
)

func (gc GlyphClass) String() string {
	switch gc {
	case BaseGlyph:
		return "base"
	case LigatureGlyph:
		return "ligature"
	case MarkGlyph:
		return "mark"
	case ComponentGlyph:
		return "component"
	}
	return "unclassified"
}

// GDefTable, the Glyph Definition (GDEF) table, provides various glyph properties
// used in OpenType Layout processing.
//
// See also
// https://docs.microsoft.com/en-us/typography/opentype/spec/gdef
//
// A nil *GDefTable is valid and answers every query as if the font had no GDEF.
type GDefTable struct {
	GlyphClassDef          ClassDefinitions
	MarkAttachmentClassDef ClassDefinitions
	MarkGlyphSets          []Coverage
}

// GlyphClass returns the GDEF glyph class of g.
func (t *GDefTable) GlyphClass(g GlyphIndex) GlyphClass {
	if t == nil {
		return UnclassifiedGlyph
	}
	return GlyphClass(t.GlyphClassDef.Lookup(g))
}

// HasGlyphClasses is true if the font defines GDEF glyph classes.
func (t *GDefTable) HasGlyphClasses() bool {
	return t != nil && !t.GlyphClassDef.IsEmpty()
}

// IsMark is true if g is classified as a mark glyph.
func (t *GDefTable) IsMark(g GlyphIndex) bool {
	return t.GlyphClass(g) == MarkGlyph
}

// MarkAttachClass returns the mark attachment class of g, or 0.
func (t *GDefTable) MarkAttachClass(g GlyphIndex) uint16 {
	if t == nil {
		return 0
	}
	return t.MarkAttachmentClassDef.Lookup(g)
}

// InMarkGlyphSet is true if g is contained in the mark glyph set with index set.
// Sets not present in the font contain no glyphs.
func (t *GDefTable) InMarkGlyphSet(set int, g GlyphIndex) bool {
	if t == nil || set < 0 || set >= len(t.MarkGlyphSets) {
		return false
	}
	return t.MarkGlyphSets[set].Contains(g)
}
