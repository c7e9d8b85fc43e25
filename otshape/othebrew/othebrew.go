package othebrew

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"golang.org/x/text/unicode/norm"
)

// Hebrew presentation forms with dagesh, for characters U+05D0..U+05EA.
// Some letters map to zero because no encoded form exists.
var dageshForms = [0x05EA - 0x05D0 + 1]rune{
	0xFB30, // ALEF
	0xFB31, // BET
	0xFB32, // GIMEL
	0xFB33, // DALET
	0xFB34, // HE
	0xFB35, // VAV
	0xFB36, // ZAYIN
	0x0000, // HET
	0xFB38, // TET
	0xFB39, // YOD
	0xFB3A, // FINAL KAF
	0xFB3B, // KAF
	0xFB3C, // LAMED
	0x0000, // FINAL MEM
	0xFB3E, // MEM
	0x0000, // FINAL NUN
	0xFB40, // NUN
	0xFB41, // SAMEKH
	0x0000, // AYIN
	0xFB43, // FINAL PE
	0xFB44, // PE
	0x0000, // FINAL TSADI
	0xFB46, // TSADI
	0xFB47, // QOF
	0xFB48, // RESH
	0xFB49, // SHIN
	0xFB4A, // TAV
}

// Modified combining classes of the Hebrew points which take part in
// reordering.
const (
	mccSheva  = 10
	mccHiriq  = 14
	mccPatah  = 17
	mccQamats = 18
	mccMeteg  = 22

	combiningClassBelow = 220
)

// Shaper is the Hebrew shaping engine.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}

// New returns the Hebrew shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "hebrew"
}

// Match returns certain confidence for Hebrew runs, none otherwise.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	if ctx.Script == language.Hebrew || ctx.ScriptTag == ot.T("hebr") {
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

// Preprocess reorders marks of every mark sequence. Fonts without a GPOS
// 'mark' feature get letters and points composed into presentation forms,
// where the font has glyphs for them.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	merge := ctx.MergeOnReorder()
	for start := 0; start < buf.Len(); {
		end := start
		for end < buf.Len() && isMark(buf.Info[end].Codepoint) {
			end++
		}
		if end > start {
			reorderMarks(buf, start, end, merge)
			start = end
		} else {
			start++
		}
	}
	if ctx.Font == nil || ctx.Font.Layout().GPOS.HasFeature(ot.T("mark")) {
		return
	}
	composePresentationForms(buf, ctx)
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// reorderMarks moves meteg or a below-mark in front of sheva or hiriq, if
// these follow patah or qamats. Canonical ordering puts them the other way
// round, which is not how fonts expect them.
func reorderMarks(buf *otlayout.Buffer, start, end int, merge bool) {
	if end-start < 3 {
		return
	}
	for i := start + 2; i < end; i++ {
		c0 := modifiedCombiningClass(buf.Info[i-2].Codepoint)
		c1 := modifiedCombiningClass(buf.Info[i-1].Codepoint)
		c2 := modifiedCombiningClass(buf.Info[i].Codepoint)
		if (c0 == mccPatah || c0 == mccQamats) &&
			(c1 == mccSheva || c1 == mccHiriq) &&
			(c2 == mccMeteg || c2 == combiningClassBelow) {
			if merge {
				buf.MergeClusters(i-1, i)
			}
			buf.MoveGlyph(i, i-1)
			tracer().Debugf("hebrew: moved %U before %U", buf.Info[i-1].Codepoint, buf.Info[i].Codepoint)
			break
		}
	}
}

func modifiedCombiningClass(r rune) uint8 {
	switch r {
	case 0x05B0: // SHEVA
		return mccSheva
	case 0x05B4: // HIRIQ
		return mccHiriq
	case 0x05B7: // PATAH
		return mccPatah
	case 0x05B8: // QAMATS
		return mccQamats
	case 0x05BD: // METEG
		return mccMeteg
	}
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// composePresentationForms composes each letter with the marks following
// it, as long as the composition has a glyph in the font.
func composePresentationForms(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	for i := 0; i+1 < buf.Len(); i++ {
		for i+1 < buf.Len() && isMark(buf.Info[i+1].Codepoint) {
			ab, ok := compose(buf.Info[i].Codepoint, buf.Info[i+1].Codepoint)
			if !ok {
				break
			}
			g := ctx.Glyph(ab)
			if g == ot.NotDef {
				break
			}
			buf.Info[i].Codepoint, buf.Info[i].GlyphID = ab, g
			buf.MergeClusters(i, i+1)
			buf.RemoveRange(i+1, i+2)
		}
	}
}

// compose composes a letter and a point. Canonical compositions are tried
// first, then the Hebrew presentation forms, which are excluded from
// canonical composition.
func compose(a, b rune) (rune, bool) {
	if ab := []rune(norm.NFC.String(string([]rune{a, b}))); len(ab) == 1 {
		return ab[0], true
	}
	switch b {
	case 0x05B4: // HIRIQ
		if a == 0x05D9 { // YOD
			return 0xFB1D, true
		}
	case 0x05B7: // PATAH
		if a == 0x05F2 { // YIDDISH YOD YOD
			return 0xFB1F, true
		}
		if a == 0x05D0 { // ALEF
			return 0xFB2E, true
		}
	case 0x05B8: // QAMATS
		if a == 0x05D0 { // ALEF
			return 0xFB2F, true
		}
	case 0x05B9: // HOLAM
		if a == 0x05D5 { // VAV
			return 0xFB4B, true
		}
	case 0x05BC: // DAGESH
		if a >= 0x05D0 && a <= 0x05EA {
			ab := dageshForms[a-0x05D0]
			return ab, ab != 0
		}
		if a == 0xFB2A { // SHIN WITH SHIN DOT
			return 0xFB2C, true
		}
		if a == 0xFB2B { // SHIN WITH SIN DOT
			return 0xFB2D, true
		}
	case 0x05BF: // RAFE
		switch a {
		case 0x05D1: // BET
			return 0xFB4C, true
		case 0x05DB: // KAF
			return 0xFB4D, true
		case 0x05E4: // PE
			return 0xFB4E, true
		}
	case 0x05C1: // SHIN DOT
		if a == 0x05E9 { // SHIN
			return 0xFB2A, true
		}
		if a == 0xFB49 { // SHIN WITH DAGESH
			return 0xFB2C, true
		}
	case 0x05C2: // SIN DOT
		if a == 0x05E9 { // SHIN
			return 0xFB2B, true
		}
		if a == 0xFB49 { // SHIN WITH DAGESH
			return 0xFB2D, true
		}
	}
	return 0, false
}
