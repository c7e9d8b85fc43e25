package otindic

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
	balineseKa = 0x1B13
	balineseRa = 0x1B2D
	adegAdeg   = 0x1B44 // Balinese virama
	taling     = 0x1B3E // Balinese pre-base vowel E
	sinhalaKa  = 0x0D9A
	kombuva    = 0x0DD9 // Sinhala pre-base vowel E
)

func TestMatchUSE(t *testing.T) {
	for _, script := range []language.Script{language.Sinhala, language.Balinese, language.Tai_Tham} {
		if got := NewUSE().Match(otshape.SelectionContext{Script: script}); got != otshape.ShaperConfidenceCertain {
			t.Errorf("expected match for %s, got %d", script, got)
		}
	}
	if got := NewUSE().Match(otshape.SelectionContext{Script: language.Devanagari}); got != otshape.ShaperConfidenceNone {
		t.Errorf("expected Devanagari non-match, got %d", got)
	}
}

func TestUSECategories(t *testing.T) {
	for _, x := range []struct {
		r   rune
		cat useCategory
	}{
		{sinhalaKa, uBase},
		{0x0DCA, uHalant},
		{kombuva, uVPre},
		{0x0DCF, uDependent},
		{0x1B34, uNukta},
		{adegAdeg, uHalant},
		{0x11A3A, uRepha},
		{0x200D, uZWJ},
		{0xFE00, uVS},
		{'3', uBase},
		{' ', uOther},
	} {
		if got := useCategoryOf(x.r); got != x.cat {
			t.Errorf("category(%U) = %d, want %d", x.r, got, x.cat)
		}
	}
}

func TestScanUSESyllables(t *testing.T) {
	buf := testBuffer(balineseKa, adegAdeg, balineseKa, 0x1B38, ' ', adegAdeg)
	syllables := syllabic.Segment(buf.Len(), func(k int) (int, syllabic.Kind) {
		return scanUSESyllable(buf.Info, k)
	})
	want := []syllabic.Syllable{
		{Start: 0, End: 4, Kind: syllabic.Valid},
		{Start: 4, End: 5, Kind: syllabic.Other},
		{Start: 5, End: 6, Kind: syllabic.Broken},
	}
	if !slices.Equal(syllables, want) {
		t.Errorf("syllables = %v, want %v", syllables, want)
	}
}

func TestSinhalaSplitVowels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	for _, x := range []struct {
		vowel rune
		want  []rune
	}{
		{0x0DDC, []rune{kombuva, sinhalaKa, 0x0DCF}},
		{0x0DDD, []rune{kombuva, sinhalaKa, 0x0DCF, 0x0DCA}},
		{0x0DDA, []rune{kombuva, sinhalaKa, 0x0DCA}},
		{0x0DD2, []rune{sinhalaKa, 0x0DD2}},
	} {
		buf := testBuffer(sinhalaKa, x.vowel)
		USEShaper{}.Preprocess(buf, otshape.PreprocessContext{})
		if got := codepoints(buf); !slices.Equal(got, x.want) {
			t.Errorf("%U: code-points = %U, want %U", x.vowel, got, x.want)
		}
		for k, cl := range clusters(buf) {
			if cl != 0 {
				t.Errorf("%U: glyph %d has cluster %d, want 0", x.vowel, k, cl)
			}
		}
	}
}

func TestUSEReph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("bali")},
		fonttest.Feature{Tag: ot.T("rphf"), Lookups: []*ot.Lookup{fonttest.Ligature(0, 50, 1, 2)}},
	)
	font := fonttest.New().Map(balineseRa, 1).Map(adegAdeg, 2).Map(balineseKa, 3).Map(taling, 4).WithGSUB(gsub)
	buf := testBuffer(balineseRa, adegAdeg, balineseKa, taling)
	USEShaper{}.Preprocess(buf, otshape.PreprocessContext{Font: font})
	if got, want := codepoints(buf), []rune{taling, balineseKa, balineseRa, adegAdeg}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if !buf.Info[2].Mask.Has(otlayout.USEFamily, useRphf) || !buf.Info[3].Mask.Has(otlayout.USEFamily, useRphf) {
		t.Errorf("expected reph glyphs to be flagged for 'rphf'")
	}
	// without a reph form, Ra is the base and the vowel moves in front of it
	buf = testBuffer(balineseRa, adegAdeg, balineseKa, taling)
	USEShaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{taling, balineseRa, adegAdeg, balineseKa}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if buf.Info[1].Mask.Has(otlayout.USEFamily, useRphf) {
		t.Errorf("Ra flagged for 'rphf' without a reph form")
	}
}

func TestUSEBrokenSyllable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := fonttest.New().Map(kombuva, 4).Map(syllabic.DottedCircle, 9)
	buf := testBuffer(kombuva)
	USEShaper{}.Preprocess(buf, otshape.PreprocessContext{Font: font})
	if got, want := codepoints(buf), []rune{kombuva, syllabic.DottedCircle}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}
