package othebrew

import (
	"slices"
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
)

func markBuffer(runes ...rune) *otlayout.Buffer {
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

func TestMatchHebrew(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	var s Shaper
	if got := s.Match(otshape.SelectionContext{Script: language.Hebrew}); got != otshape.ShaperConfidenceCertain {
		t.Fatalf("expected Hebrew match, got %d", got)
	}
	if got := s.Match(otshape.SelectionContext{Script: language.Arabic}); got != otshape.ShaperConfidenceNone {
		t.Fatalf("expected Arabic non-match, got %d", got)
	}
	if got := New().Name(); got != "hebrew" {
		t.Fatalf("New().Name() = %q, want %q", got, "hebrew")
	}
}

func TestComposePresentationForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	for _, x := range []struct {
		a, b, want rune
	}{
		{0x05D9, 0x05B4, 0xFB1D}, // YOD + HIRIQ
		{0x05D1, 0x05BC, 0xFB31}, // BET + DAGESH
		{0x05E9, 0x05C1, 0xFB2A}, // SHIN + SHIN DOT
		{0xFB2A, 0x05BC, 0xFB2C}, // SHIN WITH SHIN DOT + DAGESH
		{0xFB49, 0x05C2, 0xFB2D}, // SHIN WITH DAGESH + SIN DOT
		{'e', 0x0301, 0x00E9},    // canonical composition
	} {
		if got, ok := compose(x.a, x.b); !ok || got != x.want {
			t.Errorf("compose(%U, %U) = (%U, %t), want %U", x.a, x.b, got, ok, x.want)
		}
	}
	if got, ok := compose(0x05D7, 0x05BC); ok { // HET has no dagesh form
		t.Errorf("compose(HET, DAGESH) = %U, want no composition", got)
	}
}

func TestReorderMarksSwapsMetegAfterPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := markBuffer(0x05D1, 0x05B7, 0x05B0, 0x05BD) // BET, PATAH, SHEVA, METEG
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	want := []rune{0x05D1, 0x05B7, 0x05BD, 0x05B0}
	if got := codepoints(buf); !slices.Equal(got, want) {
		t.Fatalf("reordered code-points = %U, want %U", got, want)
	}
	if buf.Info[2].Cluster != buf.Info[3].Cluster {
		t.Errorf("expected merged clusters at reordered pair, got [%d,%d]", buf.Info[2].Cluster, buf.Info[3].Cluster)
	}
	// character-level clusters are not merged
	buf = markBuffer(0x05D1, 0x05B7, 0x05B0, 0x05BD)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{ClusterLevel: otshape.Characters})
	if buf.Info[2].Cluster != 3 || buf.Info[3].Cluster != 2 {
		t.Errorf("clusters = [%d,%d], want [3,2]", buf.Info[2].Cluster, buf.Info[3].Cluster)
	}
}

func TestReorderMarksNoopWithoutPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := markBuffer(0x05D1, 0x05B0, 0x05B7, 0x05BD) // BET, SHEVA, PATAH, METEG
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	want := []rune{0x05D1, 0x05B0, 0x05B7, 0x05BD}
	if got := codepoints(buf); !slices.Equal(got, want) {
		t.Fatalf("unexpected reorder for non-matching pattern: %U", got)
	}
}

func TestShapeComposesWithoutGPOS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := fonttest.New().
		Map(0x05E9, 1). // SHIN
		Map(0x05BC, 2). // DAGESH
		Map(0x05C1, 3). // SHIN DOT
		Map(0xFB49, 4). // SHIN WITH DAGESH
		Map(0xFB2C, 5)  // SHIN WITH DAGESH AND SHIN DOT
	shaper := otshape.NewShaper(New())
	buf := otshape.NewUnicodeBuffer("\u05E9\u05BC\u05C1\u05E9")
	buf.GuessSegmentProperties()
	out, err := shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if got, want := out.Glyphs(), []ot.GlyphIndex{1, 5}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	if out.Info[1].Cluster != 0 || out.Info[0].Cluster != 3 {
		t.Errorf("unexpected clusters %d, %d", out.Info[0].Cluster, out.Info[1].Cluster)
	}
	// a font with mark positioning keeps the marks
	gpos := fonttest.Layout(ot.GPosFeatureType, []ot.Tag{ot.T("hebr")},
		fonttest.Feature{Tag: ot.T("mark"), Lookups: []*ot.Lookup{
			fonttest.MarkToBase([]ot.GlyphIndex{2, 3}, ot.Anchor{}, []ot.GlyphIndex{1}, ot.Anchor{X: 200}),
		}},
	)
	font.WithGPOS(gpos)
	out, err = shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if got, want := out.Glyphs(), []ot.GlyphIndex{1, 3, 2, 1}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
}
