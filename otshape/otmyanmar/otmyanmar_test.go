package otmyanmar

import (
	"slices"
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
)

const (
	ka     = 0x1000
	nga    = 0x1004
	vowelI = 0x102D // above-base
)

func myanmarBuffer(runes ...rune) *otlayout.Buffer {
	infos := make([]otlayout.GlyphInfo, len(runes))
	for k, r := range runes {
		infos[k] = otlayout.GlyphInfo{GlyphID: ot.GlyphIndex(k + 1), Cluster: uint32(k), Codepoint: r}
	}
	buf := otlayout.NewBuffer(len(runes))
	buf.InitFromInfos(infos)
	return buf
}

func codepoints(buf *otlayout.Buffer) []rune {
	cps := make([]rune, buf.Len())
	for k, info := range buf.Info {
		cps[k] = info.Codepoint
	}
	return cps
}

func clusters(buf *otlayout.Buffer) []uint32 {
	cl := make([]uint32, buf.Len())
	for k, info := range buf.Info {
		cl[k] = info.Cluster
	}
	return cl
}

func TestMatchMyanmar(t *testing.T) {
	if got := New().Match(otshape.SelectionContext{Script: language.Myanmar}); got != otshape.ShaperConfidenceCertain {
		t.Errorf("expected Myanmar match, got %d", got)
	}
	if got := New().Match(otshape.SelectionContext{Script: language.Thai}); got != otshape.ShaperConfidenceNone {
		t.Errorf("expected Thai non-match, got %d", got)
	}
}

func TestScanSyllables(t *testing.T) {
	buf := myanmarBuffer(ka, virama, ka, vowelI, ' ', nga, asat, virama, ka, vowelE)
	syllables := syllabic.Segment(buf.Len(), func(k int) (int, syllabic.Kind) {
		return scanSyllable(buf.Info, k)
	})
	want := []syllabic.Syllable{
		{Start: 0, End: 4, Kind: syllabic.Valid},
		{Start: 4, End: 5, Kind: syllabic.Other},
		{Start: 5, End: 10, Kind: syllabic.Valid},
	}
	if !slices.Equal(syllables, want) {
		t.Errorf("syllables = %v, want %v", syllables, want)
	}
}

func TestReorderPreBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := myanmarBuffer(ka, vowelE)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{vowelE, ka}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if got, want := clusters(buf), []uint32{0, 0}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	buf = myanmarBuffer(ka, medialRa, vowelE)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{vowelE, medialRa, ka}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if !buf.Info[1].Mask.Has(otlayout.MyanmarFamily, pref) {
		t.Errorf("expected pref flag for medial Ra, have %v", buf.Info[1].Mask)
	}
	buf = myanmarBuffer(ka, vowelE)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{ClusterLevel: otshape.Characters})
	if got, want := clusters(buf), []uint32{1, 0}; !slices.Equal(got, want) {
		t.Errorf("character-level clusters = %v, want %v", got, want)
	}
}

func TestKinzi(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := myanmarBuffer(nga, asat, virama, ka)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{ka, nga, asat, virama}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if buf.Info[0].Mask.Has(otlayout.MyanmarFamily, rphf) {
		t.Errorf("base must not be flagged rphf")
	}
	for k := 1; k < 4; k++ {
		if !buf.Info[k].Mask.Has(otlayout.MyanmarFamily, rphf) {
			t.Errorf("expected rphf flag at %d, have %v", k, buf.Info[k].Mask)
		}
	}
}

func TestBrokenSyllable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := fonttest.New().Map(vowelE, 1).Map(syllabic.DottedCircle, 9)
	buf := myanmarBuffer(vowelE)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{Font: font})
	if got, want := codepoints(buf), []rune{vowelE, syllabic.DottedCircle}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}

func TestStackedConsonantIsBelowBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("mym2")},
		fonttest.Feature{Tag: ot.T("blwf"), Lookups: []*ot.Lookup{fonttest.Single(1, 11)}},
	)
	font := fonttest.New().Map(ka, 1).Map(virama, 2).WithGSUB(gsub)
	shaper := otshape.NewShaper(New())
	buf := otshape.NewUnicodeBuffer("\u1000\u1039\u1000")
	buf.GuessSegmentProperties()
	out, err := shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if got, want := out.Glyphs(), []ot.GlyphIndex{1, 2, 11}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
}
