package otindic

import (
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
	"golang.org/x/text/unicode/norm"
)

// Feature flags of the USE engine.
const (
	useRphf uint16 = 1 << iota
	usePref
	useAbvf
	useBlwf
	usePstf
)

// USEShaper is the Universal Shaping Engine for complex scripts without an
// engine of their own.
type USEShaper struct{}

var _ otshape.ShapingEngine = USEShaper{}
var _ otshape.ShapingEngineFeatureHook = USEShaper{}
var _ otshape.ShapingEnginePreprocessHook = USEShaper{}
var _ otshape.ShapingEnginePolicy = USEShaper{}

// NewUSE returns the Universal Shaping Engine.
func NewUSE() otshape.ShapingEngine {
	return USEShaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (USEShaper) Name() string {
	return "use"
}

// Match returns certain confidence for the scripts shaped by USE.
func (USEShaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if isUSEScript(ctx.Script) {
		return otshape.ShaperConfidenceCertain
	}
	return otshape.ShaperConfidenceNone
}

// New returns a new independent engine instance.
func (USEShaper) New() otshape.ShapingEngine {
	return USEShaper{}
}

// ZeroMarkWidths reports how advances of unattached marks are handled.
func (USEShaper) ZeroMarkWidths() otshape.ZeroWidthMarksMode {
	return otshape.ZeroWidthMarksByGDEF
}

// FeatureSpecs returns the USE features.
func (USEShaper) FeatureSpecs(otshape.SelectionContext) []otshape.FeatureSpec {
	gate := func(bit uint16) func(otlayout.ScriptFeatures) bool {
		return func(sf otlayout.ScriptFeatures) bool {
			return sf.Has(otlayout.USEFamily, bit)
		}
	}
	return []otshape.FeatureSpec{
		{Tag: ot.T("nukt")},
		{Tag: ot.T("akhn")},
		{Tag: ot.T("rphf"), Gate: gate(useRphf)},
		{Tag: ot.T("pref"), Gate: gate(usePref)},
		{Tag: ot.T("rkrf")},
		{Tag: ot.T("abvf"), Gate: gate(useAbvf)},
		{Tag: ot.T("blwf"), Gate: gate(useBlwf)},
		{Tag: ot.T("half")},
		{Tag: ot.T("pstf"), Gate: gate(usePstf)},
		{Tag: ot.T("vatu")},
		{Tag: ot.T("cjct")},
		{Tag: ot.T("abvs")},
		{Tag: ot.T("blws")},
		{Tag: ot.T("haln")},
		{Tag: ot.T("pres")},
		{Tag: ot.T("psts")},
	}
}

// Preprocess decomposes split vowels, finds syllables and reorders pre-base
// vowels and Reph of every syllable.
func (USEShaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.USEFamily)
	decomposeUSEVowels(buf, ctx)
	syllables := syllabic.Segment(buf.Len(), func(i int) (int, syllabic.Kind) {
		return scanUSESyllable(buf.Info, i)
	})
	syllables = syllabic.InsertDottedCircles(buf, syllables, ctx)
	merge := ctx.MergeOnReorder()
	for _, s := range syllables {
		if s.Kind == syllabic.Valid {
			reorderUSE(buf, s, ctx, merge)
		}
	}
	syllabic.MergeClusters(buf, syllables, ctx)
}

// decomposeUSEVowels splits vowel signs whose first part is a pre-base
// vowel, e.g. Sinhala O (U+0DDC) into E (U+0DD9) and AA (U+0DCF).
func decomposeUSEVowels(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	for i := 0; i < buf.Len(); i++ {
		r := buf.Info[i].Codepoint
		if useCategoryOf(r) != uDependent {
			continue
		}
		parts := []rune(norm.NFD.String(string(r)))
		if len(parts) < 2 || useCategoryOf(parts[0]) != uVPre {
			continue
		}
		info := buf.Info[i]
		buf.Info[i].Codepoint, buf.Info[i].GlyphID = parts[0], ctx.Glyph(parts[0])
		for k, part := range parts[1:] {
			info.Codepoint, info.GlyphID = part, ctx.Glyph(part)
			buf.InsertGlyph(i+1+k, info, buf.Pos[i])
		}
		i += len(parts) - 1
	}
}

func useCat(infos []otlayout.GlyphInfo, i int) useCategory {
	if i < 0 || i >= len(infos) {
		return uOther
	}
	return useCategoryOf(infos[i].Codepoint)
}

// scanUSESyllable recognizes a syllable at position i:
//
//	repha? base nukta* (halant (ZWJ|ZWNJ)? base nukta*)* dependent*
//
// Variation selectors, joiners and CGJ may follow any part.
func scanUSESyllable(infos []otlayout.GlyphInfo, i int) (int, syllabic.Kind) {
	kind := syllabic.Valid
	j := i
	if useCat(infos, j) == uRepha && useCat(infos, j+1) == uBase {
		j++
	}
	switch c := useCat(infos, j); {
	case c == uBase:
		j = useBaseCluster(infos, j)
	case isUSEDependent(c) || c == uRepha:
		kind = syllabic.Broken
	default:
		return 1, syllabic.Other
	}
	for {
		switch c := useCat(infos, j); {
		case isUSEDependent(c), c == uZWJ, c == uZWNJ, c == uCGJ:
			j++
		default:
			return j - i, kind
		}
	}
}

// useBaseCluster returns the end of the cluster of the base at j together
// with the consonants subjoined to it by halants.
func useBaseCluster(infos []otlayout.GlyphInfo, j int) int {
	skipNuktas := func(k int) int {
		for c := useCat(infos, k); c == uNukta || c == uVS; c = useCat(infos, k) {
			k++
		}
		return k
	}
	j = skipNuktas(j + 1)
	for useCat(infos, j) == uHalant {
		k := j + 1
		if c := useCat(infos, k); c == uZWJ || c == uZWNJ {
			k++
		}
		if useCat(infos, k) != uBase {
			break
		}
		j = skipNuktas(k + 1)
	}
	return j
}

// useRephLength returns the number of glyphs at the start of s forming a
// Reph: a repha character, or base+halant if the font has a Reph form for it.
func useRephLength(buf *otlayout.Buffer, s syllabic.Syllable, ctx otshape.PreprocessContext) int {
	start := s.Start
	switch {
	case useCat(buf.Info, start) == uRepha:
		return 1
	case s.Len() >= 3 && useCat(buf.Info, start+1) == uHalant &&
		useCat(buf.Info, start+2) == uBase && would(buf, ctx, "rphf", start, start+2):
		return 2
	}
	return 0
}

// reorderUSE flags the glyphs of a syllable and moves Reph behind the base
// cluster and pre-base vowels in front of it.
func reorderUSE(buf *otlayout.Buffer, s syllabic.Syllable, ctx otshape.PreprocessContext, merge bool) {
	start, end := s.Start, s.End
	rephLen := useRephLength(buf, s, ctx)
	base := start + rephLen
	clusterEnd := useBaseCluster(buf.Info, base)
	mark := func(from, to int, bits uint16) {
		syllabic.Mark(buf, otlayout.USEFamily, from, to, bits)
	}
	if rephLen > 0 {
		mark(start, base, useRphf)
	}
	mark(base+1, end, useAbvf|useBlwf|usePstf)
	for i := base + 1; i+1 < clusterEnd; i++ {
		if useCat(buf.Info, i) == uHalant && would(buf, ctx, "pref", i, i+2) {
			mark(i, i+2, usePref)
		}
	}
	moved := false
	if rephLen > 0 {
		for range rephLen {
			buf.MoveGlyph(start, clusterEnd-1)
		}
		moved = true
		tracer().Debugf("use: moved reph of syllable at %d behind position %d", start, clusterEnd-1)
	}
	to := start
	for i := start; i < end; i++ {
		if useCat(buf.Info, i) == uVPre && i > to {
			buf.MoveGlyph(i, to)
			to, moved = to+1, true
		}
	}
	if moved && merge {
		buf.MergeClusters(start, end-1)
	}
}
