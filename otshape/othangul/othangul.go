/*
Package othangul provides the Hangul shaping engine for package otshape.

Hangul text may be encoded as precomposed syllables or as sequences of
conjoining jamo. The engine converts between the two, depending on which
glyphs a font provides, and marks jamo left over for the ljmo, vjmo and tjmo
features. Tone marks are moved in front of their syllable.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package othangul

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}

// Jamo roles, as script feature bits.
const (
	ljmo uint16 = 1 << iota // leading consonant
	vjmo                    // vowel
	tjmo                    // trailing consonant
)

const (
	sBase  = 0xAC00
	tBase  = 0x11A7
	sCount = 19 * 21 * 28

	dottedCircle = 0x25CC
)

// The composable jamo ranges are narrower than the jamo ranges, which include
// Old Hangul.
func isCombiningL(u rune) bool { return u >= 0x1100 && u <= 0x1112 }
func isCombiningV(u rune) bool { return u >= 0x1161 && u <= 0x1175 }
func isCombiningT(u rune) bool { return u >= 0x11A8 && u <= 0x11C2 }

func isL(u rune) bool { return (u >= 0x1100 && u <= 0x115F) || (u >= 0xA960 && u <= 0xA97C) }
func isV(u rune) bool { return (u >= 0x1160 && u <= 0x11A7) || (u >= 0xD7B0 && u <= 0xD7C6) }
func isT(u rune) bool { return (u >= 0x11A8 && u <= 0x11FF) || (u >= 0xD7CB && u <= 0xD7FB) }

func isSyllable(u rune) bool { return u >= sBase && u < sBase+sCount }
func isTone(u rune) bool     { return u == 0x302E || u == 0x302F }

// Shaper is the Hangul shaping engine.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEngineFeatureHook = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns the Hangul shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "hangul"
}

// Match returns certain confidence for Hangul runs.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if ctx.Script == language.Hangul {
		return otshape.ShaperConfidenceCertain
	}
	return otshape.ShaperConfidenceNone
}

// New returns a new independent engine instance.
func (Shaper) New() otshape.ShapingEngine {
	return Shaper{}
}

// ZeroMarkWidths keeps the advances of tone marks.
func (Shaper) ZeroMarkWidths() otshape.ZeroWidthMarksMode {
	return otshape.ZeroWidthMarksNone
}

// FeatureSpecs returns the jamo features, gated by the role of a jamo.
func (Shaper) FeatureSpecs(otshape.SelectionContext) []otshape.FeatureSpec {
	gate := func(bit uint16) func(otlayout.ScriptFeatures) bool {
		return func(sf otlayout.ScriptFeatures) bool {
			return sf.Has(otlayout.HangulFamily, bit)
		}
	}
	return []otshape.FeatureSpec{
		{Tag: ot.T("ljmo"), Gate: gate(ljmo)},
		{Tag: ot.T("vjmo"), Gate: gate(vjmo)},
		{Tag: ot.T("tjmo"), Gate: gate(tjmo)},
	}
}

// Preprocess composes jamo sequences into syllables if the font has a glyph
// for the syllable, and decomposes syllables the font has no glyph for.
// The buffer may shrink or grow.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.HangulFamily)
	p := preprocessor{ctx: ctx, in: buf.Info, out: make([]otlayout.GlyphInfo, 0, buf.Len())}
	p.run()
	if len(p.out) != buf.Len() {
		tracer().Debugf("hangul: %d code-points shaped into %d glyphs", buf.Len(), len(p.out))
	}
	buf.InitFromInfos(p.out)
}

type preprocessor struct {
	ctx        otshape.PreprocessContext
	in, out    []otlayout.GlyphInfo
	start, end int // last syllable in out
}

func (p *preprocessor) run() {
	for i := 0; i < len(p.in); {
		u := p.in[i].Codepoint
		if isTone(u) {
			p.tone(p.in[i])
			i++
			continue
		}
		p.start = len(p.out)
		var n int
		switch {
		case isL(u) && i+1 < len(p.in) && isV(p.in[i+1].Codepoint):
			n = p.jamo(i)
		case isSyllable(u):
			n = p.syllable(i)
		}
		if n == 0 {
			p.out = append(p.out, p.in[i])
			n = 1
		}
		i += n
	}
}

// jamo handles L V (T) at position i and returns the number of code-points
// consumed.
func (p *preprocessor) jamo(i int) int {
	l, v, t := p.in[i].Codepoint, p.in[i+1].Codepoint, rune(0)
	n := 2
	if i+2 < len(p.in) && isT(p.in[i+2].Codepoint) {
		t, n = p.in[i+2].Codepoint, 3
	}
	if isCombiningL(l) && isCombiningV(v) && (t == 0 || isCombiningT(t)) {
		if s := compose(l, v, t); s != 0 && p.ctx.HasGlyph(s) {
			p.emitSyllable(s, p.in[i:i+n])
			return n
		}
	}
	roles := [3]uint16{ljmo, vjmo, tjmo}
	for k := range n {
		p.emitJamo(p.in[i+k], roles[k])
	}
	p.close()
	return n
}

// syllable handles a precomposed syllable at position i and returns the number
// of code-points consumed, or 0 if the syllable is kept as is.
func (p *preprocessor) syllable(i int) int {
	u := p.in[i].Codepoint
	hasGlyph := p.ctx.HasGlyph(u)
	jamos := decompose(u)
	var next rune
	if i+1 < len(p.in) {
		next = p.in[i+1].Codepoint
	}
	if len(jamos) == 2 && isCombiningT(next) {
		if s := u + next - tBase; p.ctx.HasGlyph(s) {
			p.emitSyllable(s, p.in[i:i+2])
			return 2
		}
	}
	if !hasGlyph || (len(jamos) == 2 && isT(next)) {
		decomposable := true
		for _, j := range jamos {
			decomposable = decomposable && p.ctx.HasGlyph(j)
		}
		if decomposable {
			roles := [3]uint16{ljmo, vjmo, tjmo}
			for k, j := range jamos {
				info := p.in[i]
				info.Codepoint, info.GlyphID = j, p.ctx.Glyph(j)
				p.emitJamo(info, roles[k])
			}
			n := 1
			if hasGlyph && len(jamos) == 2 {
				p.emitJamo(p.in[i+1], tjmo)
				n = 2
			}
			p.close()
			return n
		}
	}
	if hasGlyph {
		p.out = append(p.out, p.in[i])
		p.end = p.start + 1
		return 1
	}
	return 0
}

// tone places a tone mark. A tone mark following a syllable is moved in front
// of it, unless its glyph has no advance. A lone tone mark gets a dotted
// circle as its base.
func (p *preprocessor) tone(info otlayout.GlyphInfo) {
	zeroWidth := p.zeroWidth(info.GlyphID)
	if p.start < p.end && p.end == len(p.out) {
		p.out = append(p.out, info)
		if !zeroWidth {
			syl := p.out[p.start:]
			mergeClusters(syl)
			copy(syl[1:], syl[:len(syl)-1])
			syl[0] = info
			syl[0].Cluster = syl[1].Cluster
		}
	} else if p.ctx.HasGlyph(dottedCircle) {
		dc := info
		dc.Codepoint, dc.GlyphID = dottedCircle, p.ctx.Glyph(dottedCircle)
		if zeroWidth {
			p.out = append(p.out, dc, info)
		} else {
			p.out = append(p.out, info, dc)
		}
	} else {
		p.out = append(p.out, info)
	}
	p.start, p.end = len(p.out), len(p.out)
}

func (p *preprocessor) zeroWidth(g ot.GlyphIndex) bool {
	return g != ot.NotDef && p.ctx.Font != nil && p.ctx.Font.GlyphAdvance(g) == 0
}

func (p *preprocessor) emitSyllable(s rune, from []otlayout.GlyphInfo) {
	info := from[0]
	for _, f := range from[1:] {
		info.Cluster = min(info.Cluster, f.Cluster)
	}
	info.Codepoint, info.GlyphID = s, p.ctx.Glyph(s)
	p.out = append(p.out, info)
	p.end = p.start + 1
}

func (p *preprocessor) emitJamo(info otlayout.GlyphInfo, role uint16) {
	info.Mask = otlayout.MakeScriptFeatures(otlayout.HangulFamily, role)
	p.out = append(p.out, info)
}

// close ends a syllable of jamo and merges its clusters.
func (p *preprocessor) close() {
	p.end = len(p.out)
	mergeClusters(p.out[p.start:p.end])
}

func mergeClusters(infos []otlayout.GlyphInfo) {
	if len(infos) == 0 {
		return
	}
	cl := infos[0].Cluster
	for _, info := range infos[1:] {
		cl = min(cl, info.Cluster)
	}
	for i := range infos {
		infos[i].Cluster = cl
	}
}

// compose returns the syllable for L V (T), or 0. t may be 0.
func compose(l, v, t rune) rune {
	seq := []rune{l, v}
	if t != 0 {
		seq = append(seq, t)
	}
	s := []rune(norm.NFC.String(string(seq)))
	if len(s) != 1 || !isSyllable(s[0]) {
		return 0
	}
	return s[0]
}

// decompose returns the jamo of a syllable, either L V or L V T.
func decompose(s rune) []rune {
	return []rune(norm.NFD.String(string(s)))
}
