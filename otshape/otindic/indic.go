package otindic

import (
	"unicode"

	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
	"golang.org/x/text/unicode/norm"
)

// Feature flags of the Indic engine, as script feature bits.
const (
	nukt uint16 = 1 << iota
	rphf
	half
	blwf
	abvf
	pstf
	vatu
	pref
	initf
)

// Shaper is the Indic shaping engine.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEngineFeatureHook = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns the Indic shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "indic"
}

// Match returns certain confidence for scripts of the Devanagari family.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if isIndicScript(ctx.Script) {
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
	return otshape.ZeroWidthMarksNone
}

// FeatureSpecs returns the Indic features. Basic shaping features are gated
// by the flags Preprocess sets, presentation features apply to every glyph.
func (Shaper) FeatureSpecs(otshape.SelectionContext) []otshape.FeatureSpec {
	gate := func(bit uint16) func(otlayout.ScriptFeatures) bool {
		return func(sf otlayout.ScriptFeatures) bool {
			return sf.Has(otlayout.IndicFamily, bit)
		}
	}
	return []otshape.FeatureSpec{
		{Tag: ot.T("nukt"), Gate: gate(nukt)},
		{Tag: ot.T("akhn")},
		{Tag: ot.T("rphf"), Gate: gate(rphf)},
		{Tag: ot.T("rkrf")},
		{Tag: ot.T("pref"), Gate: gate(pref)},
		{Tag: ot.T("blwf"), Gate: gate(blwf)},
		{Tag: ot.T("abvf"), Gate: gate(abvf)},
		{Tag: ot.T("half"), Gate: gate(half)},
		{Tag: ot.T("pstf"), Gate: gate(pstf)},
		{Tag: ot.T("vatu"), Gate: gate(vatu)},
		{Tag: ot.T("cjct")},
		{Tag: ot.T("init"), Gate: gate(initf)},
		{Tag: ot.T("pres")},
		{Tag: ot.T("abvs")},
		{Tag: ot.T("blws")},
		{Tag: ot.T("psts")},
		{Tag: ot.T("haln")},
	}
}

// Preprocess decomposes split matras, finds syllables, flags glyphs for the
// basic shaping features and reorders every syllable.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.IndicFamily)
	p := &indicPreprocessor{
		buf:   buf,
		sc:    scriptFor(ctx.Selection.Script),
		ctx:   ctx,
		merge: ctx.MergeOnReorder(),
	}
	p.decomposeSplitMatras()
	syllables := syllabic.Segment(buf.Len(), func(i int) (int, syllabic.Kind) {
		return p.scanSyllable(i)
	})
	syllables = syllabic.InsertDottedCircles(buf, syllables, ctx)
	for _, s := range syllables {
		if s.Kind == syllabic.Valid {
			p.reorder(s)
		}
	}
	syllabic.MergeClusters(buf, syllables, ctx)
}

type indicPreprocessor struct {
	buf   *otlayout.Buffer
	sc    *indicScript
	ctx   otshape.PreprocessContext
	merge bool
}

func (p *indicPreprocessor) cat(i int) category {
	if i < 0 || i >= p.buf.Len() {
		return catOther
	}
	return p.sc.category(p.buf.Info[i].Codepoint)
}

// decomposeSplitMatras decomposes two-part matras with a pre-base part, e.g.
// Bengali O (U+09CB) into E (U+09C7) and AA (U+09BE).
func (p *indicPreprocessor) decomposeSplitMatras() {
	buf := p.buf
	for i := 0; i < buf.Len(); i++ {
		r := buf.Info[i].Codepoint
		if p.sc.category(r) != catMatra {
			continue
		}
		parts := []rune(norm.NFD.String(string(r)))
		if len(parts) != 2 || p.sc.matraPosition(parts[0]) != matraPre {
			continue
		}
		buf.Info[i].Codepoint, buf.Info[i].GlyphID = parts[1], p.ctx.Glyph(parts[1])
		info := buf.Info[i]
		info.Codepoint, info.GlyphID = parts[0], p.ctx.Glyph(parts[0])
		buf.InsertGlyph(i, info, buf.Pos[i])
		i++
	}
}

// scanSyllable recognizes a syllable at position i:
//
//	repha? base nukta* (halant (ZWJ|ZWNJ)? consonant nukta*)* dependent*
//
// A syllable starting with a dependent sign has no base and is broken.
func (p *indicPreprocessor) scanSyllable(i int) (int, syllabic.Kind) {
	kind := syllabic.Valid
	j := i
	if p.cat(j) == catRepha && isBase(p.cat(j+1)) {
		j++
	}
	switch c := p.cat(j); {
	case isBase(c):
		j = p.consonantRun(j)
	case isDependent(c):
		kind = syllabic.Broken
	default:
		return 1, syllabic.Other
	}
	for {
		switch p.cat(j) {
		case catMatra, catModifier, catAccent, catNukta, catHalant, catZWJ, catZWNJ:
			j++
		default:
			return j - i, kind
		}
	}
}

// consonantRun returns the end of the consonant cluster starting with the base
// candidate at j.
func (p *indicPreprocessor) consonantRun(j int) int {
	j++
	for p.cat(j) == catNukta {
		j++
	}
	for p.cat(j) == catHalant {
		k := j + 1
		if c := p.cat(k); c == catZWJ || c == catZWNJ {
			k++
		}
		if !isConsonant(p.cat(k)) {
			break
		}
		j = k + 1
		for p.cat(j) == catNukta {
			j++
		}
	}
	return j
}

func (p *indicPreprocessor) would(feature string, from, to int) bool {
	return would(p.buf, p.ctx, feature, from, to)
}

// would tells if the font substitutes the glyphs [from, to) with feature.
// Without a font nothing is substituted.
func would(buf *otlayout.Buffer, ctx otshape.PreprocessContext, feature string, from, to int) bool {
	if ctx.Font == nil || from < 0 || to > buf.Len() || from >= to {
		return false
	}
	glyphs := make([]ot.GlyphIndex, 0, to-from)
	for i := from; i < to; i++ {
		glyphs = append(glyphs, buf.Info[i].GlyphID)
	}
	return otlayout.WouldSubstitute(ctx.Font.Layout(), ot.T(feature), glyphs...)
}

// belowOrPostBase tells if the consonant at c, preceded by a halant, takes a
// below-base or post-base form and therefore cannot be the base.
func (p *indicPreprocessor) belowOrPostBase(c int) bool {
	if p.cat(c-1) != catHalant {
		return false
	}
	if p.sc.belowRa && p.cat(c) == catRa {
		return true
	}
	return p.would("blwf", c-1, c+1) || p.would("pstf", c-1, c+1)
}

// rephLength returns the number of glyphs at the start of a syllable which
// form a Reph, or 0.
func (p *indicPreprocessor) rephLength(s syllabic.Syllable) int {
	start := s.Start
	switch {
	case p.cat(start) == catRepha:
		return 1
	case s.Len() < 3 || p.cat(start) != catRa || p.cat(start+1) != catHalant:
		return 0
	case p.sc.explicitReph:
		if p.cat(start+2) == catZWJ && s.Len() > 3 {
			return 3
		}
	case p.cat(start+2) != catZWJ && p.would("rphf", start, start+2):
		return 2
	}
	return 0
}

// reorder finds the base of a syllable, flags its glyphs and moves pre-base
// matras and Reph into visual order.
func (p *indicPreprocessor) reorder(s syllabic.Syllable) {
	buf := p.buf
	start, end := s.Start, s.End
	rephLen := p.rephLength(s)
	base := -1
	for i := end - 1; i >= start+rephLen; i-- {
		if !isBase(p.cat(i)) {
			continue
		}
		base = i
		if !p.belowOrPostBase(i) {
			break
		}
	}
	if base < 0 { // Ra+Halant without a consonant to attach to
		rephLen, base = 0, start
	}
	limit := start + rephLen
	mark := func(from, to int, bits uint16) {
		syllabic.Mark(buf, otlayout.IndicFamily, from, to, bits)
	}
	if rephLen > 0 {
		mark(start, limit, rphf)
	}
	mark(limit, base, half)
	mark(base+1, end, blwf|abvf|pstf)
	for i := base + 1; i+1 < end; i++ {
		if p.cat(i) != catHalant || !isConsonant(p.cat(i+1)) {
			continue
		}
		if p.cat(i+1) == catRa {
			mark(i, i+2, vatu)
		}
		if p.would("pref", i, i+2) {
			mark(i, i+2, pref)
		}
	}
	for i := start + 1; i < end; i++ {
		if p.cat(i) == catNukta {
			mark(i-1, i+1, nukt)
		}
	}
	moved := false
	to := limit
	for i := base + 1; i < end; i++ {
		if p.cat(i) == catMatra && p.sc.matraPosition(buf.Info[i].Codepoint) == matraPre {
			buf.MoveGlyph(i, to)
			to, moved = to+1, true
		}
	}
	if rephLen > 0 {
		target := base
		for i := base + 1; i < end; i++ {
			if !p.followsReph(i) {
				target = i
			}
		}
		for range rephLen {
			buf.MoveGlyph(start, target)
		}
		moved = true
		tracer().Debugf("indic: moved reph of syllable at %d behind position %d", start, target)
	}
	if moved && p.merge {
		buf.MergeClusters(start, end-1)
	}
	if p.cat(start) == catMatra && p.wordInitial(start) {
		mark(start, start+1, initf)
	}
}

// followsReph is true for glyphs which stay behind a relocated Reph:
// post-base matras and syllable modifiers.
func (p *indicPreprocessor) followsReph(i int) bool {
	switch p.cat(i) {
	case catModifier, catAccent:
		return true
	case catMatra:
		return p.sc.matraPosition(p.buf.Info[i].Codepoint) == matraPost
	}
	return false
}

// wordInitial is true if the glyph at i does not follow a letter or a mark.
func (p *indicPreprocessor) wordInitial(i int) bool {
	var prev rune
	if i > 0 {
		prev = p.buf.Info[i-1].Codepoint
	} else if n := len(p.ctx.PreContext); n > 0 {
		prev = p.ctx.PreContext[n-1]
	} else {
		return true
	}
	return !unicode.IsLetter(prev) && !unicode.IsMark(prev)
}
