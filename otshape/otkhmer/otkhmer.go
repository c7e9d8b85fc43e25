/*
Package otkhmer provides the shaping engine for Khmer.

Khmer forms subscript consonants with COENG (U+17D2). The preprocessor splits
the buffer into syllables, decomposes split vowels, moves pre-base vowels and
COENG+RO to the front of their syllable, and flags glyphs for the pref, blwf,
abvf, pstf and cfar features.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otkhmer

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
	pref uint16 = 1 << iota
	blwf
	abvf
	pstf
	cfar
)

const (
	coeng = 0x17D2
	ro    = 0x179A
)

// Shaper is the Khmer shaping engine.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEngineFeatureHook = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns the Khmer shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "khmer"
}

// Match returns certain confidence for Khmer runs.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if ctx.Script == language.Khmer {
		return otshape.ShaperConfidenceCertain
	}
	return otshape.ShaperConfidenceNone
}

// New returns a new independent engine instance.
func (Shaper) New() otshape.ShapingEngine {
	return Shaper{}
}

// ZeroMarkWidths keeps the advances of marks.
func (Shaper) ZeroMarkWidths() otshape.ZeroWidthMarksMode {
	return otshape.ZeroWidthMarksNone
}

// FeatureSpecs returns the Khmer features. The basic shaping features are
// gated by flags set in Preprocess, the presentation features apply to every
// glyph.
func (Shaper) FeatureSpecs(otshape.SelectionContext) []otshape.FeatureSpec {
	gate := func(bit uint16) func(otlayout.ScriptFeatures) bool {
		return func(sf otlayout.ScriptFeatures) bool {
			return sf.Has(otlayout.KhmerFamily, bit)
		}
	}
	return []otshape.FeatureSpec{
		{Tag: ot.T("pref"), Gate: gate(pref)},
		{Tag: ot.T("blwf"), Gate: gate(blwf)},
		{Tag: ot.T("abvf"), Gate: gate(abvf)},
		{Tag: ot.T("pstf"), Gate: gate(pstf)},
		{Tag: ot.T("cfar"), Gate: gate(cfar)},
		{Tag: ot.T("pres")},
		{Tag: ot.T("abvs")},
		{Tag: ot.T("blws")},
		{Tag: ot.T("psts")},
		{Tag: ot.T("clig")},
	}
}

// Preprocess decomposes split vowels, finds syllables and reorders them.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.KhmerFamily)
	decomposeSplitVowels(buf, ctx)
	syllables := syllabic.Segment(buf.Len(), func(i int) (int, syllabic.Kind) {
		return scanSyllable(buf.Info, i)
	})
	syllables = syllabic.InsertDottedCircles(buf, syllables, ctx)
	merge := ctx.MergeOnReorder()
	for _, s := range syllables {
		if s.Kind != syllabic.Valid {
			continue
		}
		syllabic.Mark(buf, otlayout.KhmerFamily, s.Start, s.End, blwf|abvf|pstf)
		reorderSyllable(buf, s, merge)
	}
	syllabic.MergeClusters(buf, syllables, ctx)
}

// decomposeSplitVowels splits two-part vowels into the pre-base vowel E
// (U+17C1) and their post-base part.
func decomposeSplitVowels(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	for i := 0; i < buf.Len(); i++ {
		switch buf.Info[i].Codepoint {
		case 0x17BE, 0x17BF, 0x17C0, 0x17C4, 0x17C5:
			info := buf.Info[i]
			info.Codepoint, info.GlyphID = 0x17C1, ctx.Glyph(0x17C1)
			buf.InsertGlyph(i, info, buf.Pos[i])
			i++
		}
	}
}

// scanSyllable recognizes a syllable at position i:
//
//	base (ZWJ|ZWNJ)? (COENG consonant)* (COENG)? dependent*
//
// A syllable starting with a COENG or dependent sign has no base and is
// broken.
func scanSyllable(infos []otlayout.GlyphInfo, i int) (int, syllabic.Kind) {
	kind := syllabic.Valid
	j := i
	switch c := categoryOf(infos[i].Codepoint); {
	case isBase(c):
		j++
	case c == catCoeng || isDependent(c):
		kind = syllabic.Broken
	default:
		return 1, syllabic.Other
	}
	for j < len(infos) {
		c := categoryOf(infos[j].Codepoint)
		switch {
		case c == catZWJ || c == catZWNJ:
			j++
		case c == catCoeng:
			if j+1 < len(infos) && isBase(categoryOf(infos[j+1].Codepoint)) {
				j += 2
			} else {
				j++
			}
		case isDependent(c):
			j++
		default:
			return j - i, kind
		}
	}
	return j - i, kind
}

// reorderSyllable moves COENG+RO and pre-base vowels to the start of the
// syllable.
func reorderSyllable(buf *otlayout.Buffer, s syllabic.Syllable, merge bool) {
	coengs := 0
	for i := s.Start + 1; i < s.End; i++ {
		c := categoryOf(buf.Info[i].Codepoint)
		if c == catCoeng && coengs <= 2 && i+1 < s.End {
			coengs++
			if buf.Info[i+1].Codepoint != ro {
				continue
			}
			syllabic.Mark(buf, otlayout.KhmerFamily, i, i+2, pref)
			syllabic.Move(buf, i, s.Start, merge)
			syllabic.Move(buf, i+1, s.Start+1, merge)
			syllabic.Mark(buf, otlayout.KhmerFamily, i+2, s.End, cfar)
			tracer().Debugf("khmer: moved COENG+RO to start of syllable at %d", s.Start)
			coengs = 2
		} else if c == catVPre {
			syllabic.Move(buf, i, s.Start, merge)
		}
	}
}
