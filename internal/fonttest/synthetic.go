/*
Package fonttest provides fonts for tests: synthetic fonts assembled from
layout tables in memory, and real fonts from the go-text test font collection.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fonttest

import (
	"github.com/npillmayer/textshaping/ot"
)

// Font is a synthetic font implementing ot.Font. It is assembled with builder
// methods and holds only what a test needs.
type Font struct {
	CMap           map[rune]ot.GlyphIndex
	Advances       map[ot.GlyphIndex]int32
	DefaultAdvance int32
	Tables         ot.LayoutTables
	KernPairs      ot.KernPairs
	MorxEngine     ot.MorxShaper
	Variations     []float32
	Variants       map[[2]rune]ot.GlyphIndex
	Upem           uint16
	PPEMValue      uint16
}

var _ ot.Font = (*Font)(nil)

// New creates an empty synthetic font with 1000 units per em and a default
// advance of 500.
func New() *Font {
	return &Font{
		CMap:           make(map[rune]ot.GlyphIndex),
		Advances:       make(map[ot.GlyphIndex]int32),
		DefaultAdvance: 500,
		Upem:           1000,
	}
}

// Map maps a rune to a glyph.
func (f *Font) Map(r rune, g ot.GlyphIndex) *Font {
	f.CMap[r] = g
	return f
}

// MapRange maps runes from…to (inclusive) to consecutive glyphs starting at first.
func (f *Font) MapRange(from, to rune, first ot.GlyphIndex) *Font {
	for r := from; r <= to; r++ {
		f.CMap[r] = first + ot.GlyphIndex(r-from)
	}
	return f
}

// Advance sets the advance width of glyphs.
func (f *Font) Advance(adv int32, glyphs ...ot.GlyphIndex) *Font {
	for _, g := range glyphs {
		f.Advances[g] = adv
	}
	return f
}

// Variant maps a (rune, variation selector) pair to a glyph.
func (f *Font) Variant(r, selector rune, g ot.GlyphIndex) *Font {
	if f.Variants == nil {
		f.Variants = make(map[[2]rune]ot.GlyphIndex)
	}
	f.Variants[[2]rune{r, selector}] = g
	return f
}

// WithGDEF sets the glyph definition table.
func (f *Font) WithGDEF(gdef *ot.GDefTable) *Font {
	f.Tables.GDEF = gdef
	return f
}

// WithGSUB sets the glyph substitution table.
func (f *Font) WithGSUB(t *ot.LayoutTable) *Font {
	f.Tables.GSUB = t
	return f
}

// WithGPOS sets the glyph positioning table.
func (f *Font) WithGPOS(t *ot.LayoutTable) *Font {
	f.Tables.GPOS = t
	return f
}

// WithKern sets kerning pairs of a 'kern' table.
func (f *Font) WithKern(pairs ot.KernPairs) *Font {
	f.KernPairs = pairs
	return f
}

// --- ot.Font ---------------------------------------------------------------

func (f *Font) GlyphIndex(r rune) ot.GlyphIndex {
	return f.CMap[r]
}

func (f *Font) GlyphAdvance(g ot.GlyphIndex) int32 {
	if adv, ok := f.Advances[g]; ok {
		return adv
	}
	return f.DefaultAdvance
}

func (f *Font) GlyphSideBearing(g ot.GlyphIndex) int32 {
	return 0
}

func (f *Font) Layout() ot.LayoutTables {
	return f.Tables
}

func (f *Font) Kern() ot.KernTable {
	if f.KernPairs == nil {
		return nil
	}
	return f.KernPairs
}

func (f *Font) Morx() ot.MorxShaper {
	return f.MorxEngine
}

func (f *Font) Coords() []float32 {
	return f.Variations
}

func (f *Font) UnitsPerEm() uint16 {
	return f.Upem
}

// GlyphVariant implements ot.VariantGlyphs.
func (f *Font) GlyphVariant(r, selector rune) (ot.GlyphIndex, bool) {
	g, ok := f.Variants[[2]rune{r, selector}]
	return g, ok
}

// PPEM implements ot.PPEMSource.
func (f *Font) PPEM() uint16 {
	return f.PPEMValue
}

// --- Layout tables ---------------------------------------------------------

// Feature binds lookups to a feature tag, for assembling layout tables.
type Feature struct {
	Tag     ot.Tag
	Lookups []*ot.Lookup
}

// Layout assembles a layout table. Every script given gets a default language
// system listing all features. Lookups are numbered in order of appearance.
func Layout(typ ot.LayoutTagType, scripts []ot.Tag, features ...Feature) *ot.LayoutTable {
	t := &ot.LayoutTable{Type: typ}
	indices := make([]int, len(features))
	for i, feat := range features {
		rec := ot.FeatureRecord{Tag: feat.Tag}
		for _, l := range feat.Lookups {
			rec.LookupIndices = append(rec.LookupIndices, len(t.Lookups))
			t.Lookups = append(t.Lookups, l)
		}
		t.Features = append(t.Features, rec)
		indices[i] = i
	}
	for _, s := range scripts {
		t.Scripts = append(t.Scripts, ot.ScriptRecord{
			Tag:         s,
			DefaultLang: &ot.LangSys{RequiredFeature: ot.NoRequiredFeature, FeatureIndices: indices},
		})
	}
	return t
}

// Single creates a lookup with a single substitution for glyph pairs
// from, to, from, to, …
func Single(pairs ...ot.GlyphIndex) *ot.Lookup {
	from := make([]ot.GlyphIndex, 0, len(pairs)/2)
	subst := make(map[ot.GlyphIndex]ot.GlyphIndex, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		from = append(from, pairs[i])
		subst[pairs[i]] = pairs[i+1]
	}
	cov := ot.NewGlyphCoverage(from...)
	to := make([]ot.GlyphIndex, 0, len(from))
	cov.Glyphs(func(g ot.GlyphIndex, _ int) {
		to = append(to, subst[g])
	})
	return &ot.Lookup{
		Type:      ot.GSubLookupTypeSingle,
		Subtables: []ot.Subtable{&ot.SingleSubstFmt2{Cov: cov, SubstituteGlyphIDs: to}},
	}
}

// Ligature creates a lookup with a single ligature.
func Ligature(flag ot.LayoutTableLookupFlag, lig ot.GlyphIndex, components ...ot.GlyphIndex) *ot.Lookup {
	return &ot.Lookup{
		Type: ot.GSubLookupTypeLigature,
		Flag: flag,
		Subtables: []ot.Subtable{
			&ot.LigatureSubst{
				Cov: ot.NewGlyphCoverage(components[0]),
				LigatureSets: [][]ot.LigatureRule{{
					{Components: components[1:], Ligature: lig},
				}},
			},
		},
	}
}

// PairKern creates a lookup adjusting the advance of the first glyph of a pair.
func PairKern(first, second ot.GlyphIndex, adv int16) *ot.Lookup {
	return &ot.Lookup{
		Type: ot.GPosLookupTypePair,
		Subtables: []ot.Subtable{
			&ot.PairPosFmt1{
				Cov:          ot.NewGlyphCoverage(first),
				ValueFormat1: ot.ValueFormatXAdvance,
				PairSets: []ot.PairSet{ot.PairValueRecords{
					{SecondGlyph: second, Value1: ot.ValueRecord{XAdvance: adv}},
				}},
			},
		},
	}
}

// MarkToBase creates a lookup attaching mark glyphs to base glyphs, with a
// single anchor per glyph.
func MarkToBase(marks []ot.GlyphIndex, markAnchor ot.Anchor, bases []ot.GlyphIndex, baseAnchor ot.Anchor) *ot.Lookup {
	st := &ot.MarkBasePos{
		MarkCoverage: ot.NewGlyphCoverage(marks...),
		BaseCoverage: ot.NewGlyphCoverage(bases...),
		ClassCount:   1,
	}
	for range st.MarkCoverage.Len() {
		st.Marks = append(st.Marks, ot.MarkRecord{Class: 0, Anchor: markAnchor})
	}
	for range st.BaseCoverage.Len() {
		st.Bases = append(st.Bases, []ot.Option[ot.Anchor]{ot.Some(baseAnchor)})
	}
	return &ot.Lookup{Type: ot.GPosLookupTypeMarkToBase, Subtables: []ot.Subtable{st}}
}
