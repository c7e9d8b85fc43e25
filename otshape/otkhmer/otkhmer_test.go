package otkhmer

import (
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
)

const (
	ka = 0x1780
	e  = 0x17C1 // pre-base vowel
	aa = 0x17B6 // post-base vowel
	oe = 0x17BE // split vowel
)

func khmerBuffer(runes ...rune) *otlayout.Buffer {
	infos := make([]otlayout.GlyphInfo, len(runes))
	for i, r := range runes {
		infos[i] = otlayout.GlyphInfo{GlyphID: ot.GlyphIndex(i + 1), Cluster: uint32(i), Codepoint: r}
	}
	buf := otlayout.NewBuffer(len(runes))
	buf.InitFromInfos(infos)
	return buf
}

func codepoints(buf *otlayout.Buffer) []rune {
	cps := make([]rune, buf.Len())
	for i, info := range buf.Info {
		cps[i] = info.Codepoint
	}
	return cps
}

func TestScanSyllables(t *testing.T) {
	buf := khmerBuffer(ka, coeng, ro, aa, ' ', e, ka)
	syllables := syllabic.Segment(buf.Len(), func(i int) (int, syllabic.Kind) {
		return scanSyllable(buf.Info, i)
	})
	want := []syllabic.Syllable{
		{Start: 0, End: 4, Kind: syllabic.Valid},
		{Start: 4, End: 5, Kind: syllabic.Other},
		{Start: 5, End: 6, Kind: syllabic.Broken},
		{Start: 6, End: 7, Kind: syllabic.Valid},
	}
	if !slices.Equal(syllables, want) {
		t.Errorf("syllables = %v, want %v", syllables, want)
	}
}

func TestReorderCoengRo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := khmerBuffer(ka, coeng, ro, e)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{e, coeng, ro, ka}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	for i := 1; i <= 2; i++ {
		if !buf.Info[i].Mask.Has(otlayout.KhmerFamily, pref) {
			t.Errorf("expected pref flag at %d, have %v", i, buf.Info[i].Mask)
		}
	}
	if buf.Info[3].Mask.Has(otlayout.KhmerFamily, pref) {
		t.Errorf("did not expect pref flag for base, have %v", buf.Info[3].Mask)
	}
	for i, info := range buf.Info {
		if info.Cluster != 0 {
			t.Errorf("expected syllable cluster 0 at %d, have %d", i, info.Cluster)
		}
	}
}

func TestSplitVowel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := khmerBuffer(ka, oe)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{e, ka, oe}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}

func TestBrokenSyllable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := fonttest.New().Map(aa, 2).Map(syllabic.DottedCircle, 9)
	buf := khmerBuffer(aa)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{Font: font})
	if got, want := codepoints(buf), []rune{syllabic.DottedCircle, aa}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if buf.Info[0].GlyphID != 9 {
		t.Errorf("dotted circle glyph = %d, want 9", buf.Info[0].GlyphID)
	}
	// without a dotted circle glyph the buffer stays as is
	buf = khmerBuffer(aa)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{Font: fonttest.New()})
	if got, want := codepoints(buf), []rune{aa}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}

func TestPrefFeatureIsGated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("khmr")},
		fonttest.Feature{Tag: ot.T("pref"), Lookups: []*ot.Lookup{fonttest.Single(3, 30)}},
	)
	font := fonttest.New().Map(ka, 1).Map(coeng, 2).Map(ro, 3).WithGSUB(gsub)
	shaper := otshape.NewShaper(New())
	for _, x := range []struct {
		text string
		want []ot.GlyphIndex
	}{
		{"\u1780\u17D2\u179A", []ot.GlyphIndex{2, 30, 1}},
		{"\u179A", []ot.GlyphIndex{3}},
	} {
		buf := otshape.NewUnicodeBuffer(x.text)
		buf.GuessSegmentProperties()
		out, err := shaper.Shape(shaper.NewFace(font), buf, nil)
		if err != nil {
			t.Fatalf("shape failed: %v", err)
		}
		if got := out.Glyphs(); !slices.Equal(got, x.want) {
			t.Errorf("%q: glyphs = %v, want %v", x.text, got, x.want)
		}
	}
}
