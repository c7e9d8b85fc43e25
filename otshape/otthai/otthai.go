/*
Package otthai provides the shaping engine for Thai and Lao.

Thai and Lao are stored in visual order and need little preprocessing.
The engine classifies characters by their role in a syllable, swaps a
leading vowel with the consonant following it, and decomposes SARA AM for
fonts which do not have a glyph for it.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otthai

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
)

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}

// role is the role of a character in a Thai or Lao syllable. Roles are
// stored as script features of a glyph.
type role uint16

const (
	roleOther role = 1 << iota
	roleConsonant
	roleLeadingVowel
	roleAboveVowel
	roleBelowVowel
	roleFollowingVowel
	roleTone
	roleAboveSign
)

// roleOf classifies Thai and Lao characters. Lao characters are mapped onto
// their Thai counterparts, which live 0x80 code-points lower.
func roleOf(r rune) role {
	switch {
	case r >= 0x0E01 && r <= 0x0E2E, r >= 0x0E81 && r <= 0x0EAE, r >= 0x0EDC && r <= 0x0EDF:
		return roleConsonant
	case r < 0x0E00 || r > 0x0EFF:
		return roleOther
	}
	u := r &^ 0x0080
	switch {
	case u >= 0x0E40 && u <= 0x0E44:
		return roleLeadingVowel
	case u == 0x0E31, u >= 0x0E34 && u <= 0x0E37, u == 0x0E47 && r == u, u == 0x0E3B && r != u:
		return roleAboveVowel
	case u >= 0x0E38 && u <= 0x0E3A, r == 0x0EBC:
		return roleBelowVowel
	case u == 0x0E30, u == 0x0E32, u == 0x0E33, u == 0x0E45 && r == u:
		return roleFollowingVowel
	case u >= 0x0E48 && u <= 0x0E4B:
		return roleTone
	case u >= 0x0E4C && u <= 0x0E4E:
		return roleAboveSign
	}
	return roleOther
}

func isAboveBase(r rune) bool {
	return roleOf(r)&(roleAboveVowel|roleTone|roleAboveSign) != 0
}

func isSaraAm(r rune) bool {
	return r&^0x0080 == 0x0E33
}

// Shaper is the Thai and Lao shaping engine.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns the Thai shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "thai"
}

// Match returns certain confidence for Thai and Lao runs.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if ctx.Script == language.Thai || ctx.Script == language.Lao {
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

// Preprocess decomposes SARA AM if needed, swaps leading vowels with their
// consonant and records the role of every character.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.ThaiFamily)
	merge := ctx.MergeOnReorder()
	for i := 0; i < buf.Len(); i++ {
		if isSaraAm(buf.Info[i].Codepoint) && !ctx.HasGlyph(buf.Info[i].Codepoint) {
			decomposeSaraAm(buf, i, ctx)
			i++
		}
	}
	for i := 0; i+1 < buf.Len(); i++ {
		if roleOf(buf.Info[i].Codepoint) == roleLeadingVowel && roleOf(buf.Info[i+1].Codepoint) == roleConsonant {
			if merge {
				buf.MergeClusters(i, i+1)
			}
			buf.MoveGlyph(i, i+1)
			i++
		}
	}
	for i, info := range buf.Info {
		buf.SetScriptFeatures(i, otlayout.MakeScriptFeatures(otlayout.ThaiFamily, uint16(roleOf(info.Codepoint))))
	}
}

// decomposeSaraAm replaces SARA AM at i by NIKHAHIT and SARA AA. NIKHAHIT is
// moved in front of any above-base marks preceding it.
func decomposeSaraAm(buf *otlayout.Buffer, i int, ctx otshape.PreprocessContext) {
	am := buf.Info[i].Codepoint
	nikhahit, aa := am-0x0E33+0x0E4D, am-1
	info, pos := buf.Info[i], buf.Pos[i]
	buf.Info[i].Codepoint, buf.Info[i].GlyphID = nikhahit, ctx.Glyph(nikhahit)
	info.Codepoint, info.GlyphID = aa, ctx.Glyph(aa)
	buf.InsertGlyph(i+1, info, pos)
	start := i
	for start > 0 && isAboveBase(buf.Info[start-1].Codepoint) {
		start--
	}
	if start < i {
		buf.MergeClusters(start, i+1)
		buf.MoveGlyph(i, start)
		tracer().Debugf("thai: moved NIKHAHIT of SARA AM over %d above-base marks", i-start)
	} else if start > 0 {
		buf.MergeClusters(start-1, i+1)
	}
}
