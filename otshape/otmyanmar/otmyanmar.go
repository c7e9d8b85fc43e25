/*
Package otmyanmar provides the shaping engine for Myanmar.

The preprocessor splits the buffer into syllables, moves the pre-base vowel E
(U+1031) and the medial Ra (U+103C) in front of the base consonant, and moves
Kinzi behind it. Glyphs are flagged for the rphf, pref, blwf and pstf features.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otmyanmar

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
)

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}

// Feature flags, as script feature bits.
const (
	rphf uint16 = 1 << iota // Kinzi
	pref
	blwf
	pstf
)

// position is the visual position of a glyph relative to the base consonant.
// Reordering sorts a syllable by position.
type position uint8

const (
	posStart position = iota
	posPreM
	posPreC
	posBase
	posAfterMain
	posBeforeSub
	posBelow
	posAfterSub
)

// Shaper is the Myanmar shaping engine.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEngineFeatureHook = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns the Myanmar shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "myanmar"
}

// Match returns certain confidence for Myanmar runs.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if ctx.Script == language.Myanmar {
		return otshape.ShaperConfidenceCertain
	}
	return otshape.ShaperConfidenceNone
}

// New returns a new independent engine instance.
func (Shaper) New() otshape.ShapingEngine {
	return Shaper{}
}

// ZeroMarkWidths reports how advances of unattached marks are handled.
func (Shaper) ZeroMarkWidths() otshape.ZeroWidthMarksMode {
	return otshape.ZeroWidthMarksByGDEF
}

// FeatureSpecs returns the Myanmar features.
func (Shaper) FeatureSpecs(otshape.SelectionContext) []otshape.FeatureSpec {
	gate := func(bit uint16) func(otlayout.ScriptFeatures) bool {
		return func(sf otlayout.ScriptFeatures) bool {
			return sf.Has(otlayout.MyanmarFamily, bit)
		}
	}
	return []otshape.FeatureSpec{
		{Tag: ot.T("rphf"), Gate: gate(rphf)},
		{Tag: ot.T("pref"), Gate: gate(pref)},
		{Tag: ot.T("blwf"), Gate: gate(blwf)},
		{Tag: ot.T("pstf"), Gate: gate(pstf)},
		{Tag: ot.T("pres")},
		{Tag: ot.T("abvs")},
		{Tag: ot.T("blws")},
		{Tag: ot.T("psts")},
	}
}

// Preprocess finds syllables and reorders them.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.MyanmarFamily)
	syllables := syllabic.Segment(buf.Len(), func(i int) (int, syllabic.Kind) {
		return scanSyllable(buf.Info, i)
	})
	syllables = syllabic.InsertDottedCircles(buf, syllables, ctx)
	merge := ctx.MergeOnReorder()
	for _, s := range syllables {
		if s.Kind == syllabic.Valid {
			reorderSyllable(buf, s, merge)
		}
	}
	syllabic.MergeClusters(buf, syllables, ctx)
}

// scanSyllable recognizes a syllable at position i:
//
//	kinzi? base (VIRAMA base | dependent)*
//
// where kinzi is a consonant followed by ASAT and VIRAMA. A syllable
// starting with a dependent sign is broken.
func scanSyllable(infos []otlayout.GlyphInfo, i int) (int, syllabic.Kind) {
	cat := func(j int) category {
		if j >= len(infos) {
			return catOther
		}
		return categoryOf(infos[j].Codepoint)
	}
	kind := syllabic.Valid
	j := i
	switch c := cat(i); {
	case isKinzi(c, cat(i+1), cat(i+2)) && isBase(cat(i+3)):
		j += 4
	case isBase(c):
		j++
	case isDependent(c):
		kind = syllabic.Broken
	default:
		return 1, syllabic.Other
	}
	for j < len(infos) {
		c := cat(j)
		switch {
		case c == catVirama && isBase(cat(j+1)):
			j += 2
		case isDependent(c), c == catZWJ, c == catZWNJ:
			j++
		default:
			return j - i, kind
		}
	}
	return j - i, kind
}

func isKinzi(c0, c1, c2 category) bool {
	return (c0 == catConsonant || c0 == catRa) && c1 == catAsat && c2 == catVirama
}

// reorderSyllable sorts the glyphs of a syllable by visual position.
func reorderSyllable(buf *otlayout.Buffer, s syllabic.Syllable, merge bool) {
	n := s.Len()
	cat := func(i int) category {
		return categoryOf(buf.Info[s.Start+i].Codepoint)
	}
	kinzi := n >= 3 && isKinzi(cat(0), cat(1), cat(2))
	limit := 0
	if kinzi {
		limit = 3
		syllabic.Mark(buf, otlayout.MyanmarFamily, s.Start, s.Start+3, rphf)
	}
	base := n
	for i := limit; i < n; i++ {
		if isBase(cat(i)) {
			base = i
			break
		}
	}
	pos := make([]position, n)
	i := 0
	if kinzi {
		for ; i < 3; i++ {
			pos[i] = posAfterMain
		}
	}
	for ; i < base; i++ {
		pos[i] = posPreC
	}
	if i < n {
		pos[i] = posBase
		i++
	}
	p := posAfterMain
	for ; i < n; i++ {
		c := cat(i)
		switch {
		case c == catMedialRa:
			pos[i] = posPreC
			syllabic.Mark(buf, otlayout.MyanmarFamily, s.Start+i, s.Start+i+1, pref)
			continue
		case c == catVPre:
			pos[i] = posPreM
			continue
		case c == catVS:
			pos[i] = pos[i-1]
			continue
		case p == posAfterMain && c == catVBlw:
			p = posBelow
		case p == posBelow && c == catAnusvara:
			pos[i] = posBeforeSub
			continue
		case p == posBelow && c != catVBlw:
			p = posAfterSub
		}
		pos[i] = p
		switch {
		case c == catMedialWa, c == catMedialHa, c == catMedialLa:
			syllabic.Mark(buf, otlayout.MyanmarFamily, s.Start+i, s.Start+i+1, blwf)
		case c == catMedialYa:
			syllabic.Mark(buf, otlayout.MyanmarFamily, s.Start+i, s.Start+i+1, pstf)
		case c == catVirama && i+1 < n && isBase(cat(i+1)):
			syllabic.Mark(buf, otlayout.MyanmarFamily, s.Start+i, s.Start+i+2, blwf)
		}
	}
	if sortByPosition(buf, s.Start, pos) && merge {
		buf.MergeClusters(s.Start, s.End-1)
	}
	reverseLeftMatras(buf, s, pos)
}

// sortByPosition is a stable insertion sort of the glyphs starting at start.
// It reports if any glyph has been moved.
func sortByPosition(buf *otlayout.Buffer, start int, pos []position) bool {
	moved := false
	for i := 1; i < len(pos); i++ {
		for j := i; j > 0 && pos[j-1] > pos[j]; j-- {
			pos[j-1], pos[j] = pos[j], pos[j-1]
			buf.MoveGlyph(start+j, start+j-1)
			moved = true
		}
	}
	if moved {
		tracer().Debugf("myanmar: reordered syllable at %d", start)
	}
	return moved
}

// reverseLeftMatras puts multiple pre-base vowels into visual order: each
// vowel with the signs attached to it goes in front of the ones typed
// before.
func reverseLeftMatras(buf *otlayout.Buffer, s syllabic.Syllable, pos []position) {
	first, last := -1, -1
	for i, p := range pos {
		if p == posPreM {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || first == last {
		return
	}
	first, last = s.Start+first, s.Start+last
	buf.ReverseRange(first, last+1)
	i := first
	for j := first; j <= last; j++ {
		if categoryOf(buf.Info[j].Codepoint) == catVPre {
			buf.ReverseRange(i, j+1)
			i = j + 1
		}
	}
}
