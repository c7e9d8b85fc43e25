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

// testBuffer creates a buffer with glyph k+1 for the k-th rune.
func testBuffer(runes ...rune) *otlayout.Buffer {
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

func devanagari() otshape.PreprocessContext {
	return otshape.PreprocessContext{
		Selection: otshape.SelectionContext{Script: language.Devanagari},
	}
}

func TestMatchIndic(t *testing.T) {
	for _, script := range []language.Script{language.Devanagari, language.Bengali, language.Malayalam} {
		if got := New().Match(otshape.SelectionContext{Script: script}); got != otshape.ShaperConfidenceCertain {
			t.Errorf("expected match for %s, got %d", script, got)
		}
	}
	if got := New().Match(otshape.SelectionContext{Script: language.Sinhala}); got != otshape.ShaperConfidenceNone {
		t.Errorf("expected Sinhala non-match, got %d", got)
	}
}

func TestIndicCategories(t *testing.T) {
	dev := scriptFor(language.Devanagari)
	for _, x := range []struct {
		r   rune
		cat category
	}{
		{0x0915, catConsonant},
		{0x0930, catRa},
		{0x0905, catVowel},
		{0x093F, catMatra},
		{0x094D, catHalant},
		{0x093C, catNukta},
		{0x0902, catModifier},
		{0x0966, catPlaceholder},
		{0x200D, catZWJ},
		{syllabic.DottedCircle, catDottedCircle},
		{'A', catOther},
	} {
		if got := dev.category(x.r); got != x.cat {
			t.Errorf("category(%U) = %d, want %d", x.r, got, x.cat)
		}
	}
	if got := scriptFor(language.Malayalam).category(0x0D4E); got != catRepha {
		t.Errorf("Malayalam dot reph has category %d", got)
	}
	if got := scriptFor(language.Tamil).matraPosition(0x0BC6); got != matraPre {
		t.Errorf("Tamil E has matra position %d, want pre-base", got)
	}
	if got := dev.matraPosition(0x0941); got != matraBelow {
		t.Errorf("Devanagari U has matra position %d, want below-base", got)
	}
}

func TestScanIndicSyllables(t *testing.T) {
	buf := testBuffer(0x0915, 0x094D, 0x0937, 0x093F, ' ', 0x0930, 0x094D, ' ', 0x093F)
	p := &indicPreprocessor{buf: buf, sc: scriptFor(language.Devanagari)}
	syllables := syllabic.Segment(buf.Len(), p.scanSyllable)
	want := []syllabic.Syllable{
		{Start: 0, End: 4, Kind: syllabic.Valid},
		{Start: 4, End: 5, Kind: syllabic.Other},
		{Start: 5, End: 7, Kind: syllabic.Valid},
		{Start: 7, End: 8, Kind: syllabic.Other},
		{Start: 8, End: 9, Kind: syllabic.Broken},
	}
	if !slices.Equal(syllables, want) {
		t.Errorf("syllables = %v, want %v", syllables, want)
	}
}

func TestPreBaseMatra(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := testBuffer(0x0915, 0x093F)
	Shaper{}.Preprocess(buf, devanagari())
	if got, want := codepoints(buf), []rune{0x093F, 0x0915}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if got, want := clusters(buf), []uint32{0, 0}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	if !buf.Info[0].Mask.Has(otlayout.IndicFamily, initf) {
		t.Errorf("expected word-initial matra to be flagged for 'init'")
	}
	ctx := devanagari()
	ctx.PreContext = []rune{0x0915}
	buf = testBuffer(0x0915, 0x093F)
	Shaper{}.Preprocess(buf, ctx)
	if buf.Info[0].Mask.Has(otlayout.IndicFamily, initf) {
		t.Errorf("matra following a letter flagged for 'init'")
	}
}

func TestSplitMatra(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := testBuffer(0x0995, 0x09CB)
	ctx := otshape.PreprocessContext{Selection: otshape.SelectionContext{Script: language.Bengali}}
	Shaper{}.Preprocess(buf, ctx)
	if got, want := codepoints(buf), []rune{0x09C7, 0x0995, 0x09BE}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}

func TestConsonantForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	has := func(buf *otlayout.Buffer, i int, bit uint16) bool {
		return buf.Info[i].Mask.Has(otlayout.IndicFamily, bit)
	}
	// KA+HALANT+RA: Ra takes its below-base form
	buf := testBuffer(0x0915, 0x094D, 0x0930)
	Shaper{}.Preprocess(buf, devanagari())
	if has(buf, 0, half) || !has(buf, 1, blwf) || !has(buf, 2, blwf) || !has(buf, 2, vatu) {
		t.Errorf("expected KA to be the base with Ra below")
	}
	// KA+HALANT+SSA: KA takes its half form
	buf = testBuffer(0x0915, 0x094D, 0x0937)
	Shaper{}.Preprocess(buf, devanagari())
	if !has(buf, 0, half) || !has(buf, 1, half) || has(buf, 2, half) {
		t.Errorf("expected KA to take its half form")
	}
}

func TestReph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("dev2")},
		fonttest.Feature{Tag: ot.T("rphf"), Lookups: []*ot.Lookup{fonttest.Ligature(0, 50, 1, 2)}},
	)
	font := fonttest.New().Map(0x0930, 1).Map(0x094D, 2).Map(0x0915, 3).Map(0x093F, 4).WithGSUB(gsub)
	ctx := devanagari()
	ctx.Font = font
	buf := testBuffer(0x0930, 0x094D, 0x0915, 0x093F)
	Shaper{}.Preprocess(buf, ctx)
	if got, want := codepoints(buf), []rune{0x093F, 0x0915, 0x0930, 0x094D}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if !buf.Info[2].Mask.Has(otlayout.IndicFamily, rphf) || !buf.Info[3].Mask.Has(otlayout.IndicFamily, rphf) {
		t.Errorf("expected reph glyphs to be flagged for 'rphf'")
	}
	// a font without a reph form keeps Ra as a half consonant
	buf = testBuffer(0x0930, 0x094D, 0x0915)
	Shaper{}.Preprocess(buf, devanagari())
	if got, want := codepoints(buf), []rune{0x0930, 0x094D, 0x0915}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if !buf.Info[0].Mask.Has(otlayout.IndicFamily, half) {
		t.Errorf("expected Ra to be flagged for 'half'")
	}
}

func TestIndicBrokenSyllable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	ctx := devanagari()
	ctx.Font = fonttest.New().Map(0x093F, 4).Map(syllabic.DottedCircle, 9)
	buf := testBuffer(0x093F)
	Shaper{}.Preprocess(buf, ctx)
	if got, want := codepoints(buf), []rune{0x093F, syllabic.DottedCircle}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}

func TestHalfFeatureIsGated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("dev2")},
		fonttest.Feature{Tag: ot.T("half"), Lookups: []*ot.Lookup{fonttest.Single(1, 10)}},
	)
	font := fonttest.New().Map(0x0915, 1).Map(0x094D, 2).Map(0x0937, 3).WithGSUB(gsub)
	shaper := otshape.NewShaper(New())
	for _, x := range []struct {
		text string
		want []ot.GlyphIndex
	}{
		{"\u0915\u094D\u0937", []ot.GlyphIndex{10, 2, 3}},
		{"\u0915", []ot.GlyphIndex{1}},
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
