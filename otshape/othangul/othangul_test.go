package othangul_test

import (
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/othangul"
)

const (
	kiyeok  = '\u1100' // leading consonant
	a       = '\u1161' // vowel
	tKiyeok = '\u11A8' // trailing consonant
	ga      = '\uAC00'
	gak     = '\uAC01'
	tone    = '\u302E'
)

// jamoFont maps the jamo to 1, 2 and 3, and has jamo features mapping them
// to 21, 22 and 23.
func jamoFont() *fonttest.Font {
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("hang")},
		fonttest.Feature{Tag: ot.T("ljmo"), Lookups: []*ot.Lookup{fonttest.Single(1, 21)}},
		fonttest.Feature{Tag: ot.T("vjmo"), Lookups: []*ot.Lookup{fonttest.Single(2, 22)}},
		fonttest.Feature{Tag: ot.T("tjmo"), Lookups: []*ot.Lookup{fonttest.Single(3, 23)}},
	)
	return fonttest.New().Map(kiyeok, 1).Map(a, 2).Map(tKiyeok, 3).WithGSUB(gsub)
}

func shape(t *testing.T, font ot.Font, text string) *otlayout.Buffer {
	t.Helper()
	shaper := otshape.NewShaper(othangul.New())
	buf := otshape.NewUnicodeBuffer(text)
	buf.GuessSegmentProperties()
	out, err := shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	return out
}

func clusters(buf *otlayout.Buffer) []uint32 {
	cl := make([]uint32, buf.Len())
	for i, info := range buf.Info {
		cl[i] = info.Cluster
	}
	return cl
}

func TestComposeJamo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := jamoFont().Map(gak, 10)
	out := shape(t, font, string([]rune{kiyeok, a, tKiyeok}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{10}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	// no syllable glyph: jamo stay and get their features
	out = shape(t, jamoFont(), string([]rune{kiyeok, a, tKiyeok, 'x'}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{21, 22, 23, 0}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	if got, want := clusters(out), []uint32{0, 0, 0, 3}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
}

func TestDecomposeSyllable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	out := shape(t, jamoFont(), string([]rune{gak, gak}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{21, 22, 23, 21, 22, 23}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	if got, want := clusters(out), []uint32{0, 0, 0, 1, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	// LV syllable followed by a trailing jamo
	font := jamoFont().Map(ga, 9)
	out = shape(t, font, string([]rune{ga, tKiyeok}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{21, 22, 23}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	font.Map(gak, 10)
	out = shape(t, font, string([]rune{ga, tKiyeok}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{10}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
}

func TestToneMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := fonttest.New().Map(ga, 9).Map(tone, 30).Map('\u25CC', 40)
	out := shape(t, font, string([]rune{ga, tone}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{30, 9}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	if got, want := clusters(out), []uint32{0, 0}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	if out.Pos[0].XAdvance != 500 {
		t.Errorf("tone mark advance = %d, want 500", out.Pos[0].XAdvance)
	}
	out = shape(t, font, string([]rune{tone}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{30, 40}; !slices.Equal(got, want) {
		t.Errorf("lone tone mark: glyphs = %v, want %v", got, want)
	}
	font.Advance(0, 30)
	out = shape(t, font, string([]rune{ga, tone}))
	if got, want := out.Glyphs(), []ot.GlyphIndex{9, 30}; !slices.Equal(got, want) {
		t.Errorf("zero-width tone mark: glyphs = %v, want %v", got, want)
	}
}
