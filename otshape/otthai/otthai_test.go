package otthai

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

func thaiBuffer(runes ...rune) *otlayout.Buffer {
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

func clusters(buf *otlayout.Buffer) []uint32 {
	cl := make([]uint32, buf.Len())
	for i, info := range buf.Info {
		cl[i] = info.Cluster
	}
	return cl
}

func TestMatchThaiAndLao(t *testing.T) {
	var s Shaper
	for _, script := range []language.Script{language.Thai, language.Lao} {
		if got := s.Match(otshape.SelectionContext{Script: script}); got != otshape.ShaperConfidenceCertain {
			t.Errorf("expected match for %v, got %d", script, got)
		}
	}
	if got := s.Match(otshape.SelectionContext{Script: language.Khmer}); got != otshape.ShaperConfidenceNone {
		t.Errorf("expected Khmer non-match, got %d", got)
	}
}

func TestRoles(t *testing.T) {
	for _, x := range []struct {
		r    rune
		want role
	}{
		{0x0E01, roleConsonant},
		{0x0E81, roleConsonant},
		{0x0E40, roleLeadingVowel},
		{0x0EC0, roleLeadingVowel},
		{0x0E34, roleAboveVowel},
		{0x0EBB, roleAboveVowel},
		{0x0E38, roleBelowVowel},
		{0x0EBC, roleBelowVowel},
		{0x0E32, roleFollowingVowel},
		{0x0E48, roleTone},
		{0x0EC8, roleTone},
		{0x0E4C, roleAboveSign},
		{0x0E3F, roleOther}, // BAHT
		{'a', roleOther},
	} {
		if got := roleOf(x.r); got != x.want {
			t.Errorf("roleOf(%U) = %d, want %d", x.r, got, x.want)
		}
	}
}

func TestDecomposeSaraAm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := thaiBuffer(0x0E14, 0x0E4B, 0x0E33) // DO DEK, MAI CHATTAWA, SARA AM
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{0x0E14, 0x0E4D, 0x0E4B, 0x0E32}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if got, want := clusters(buf), []uint32{0, 1, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	buf = thaiBuffer(0x0E01, 0x0E33)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{0x0E01, 0x0E4D, 0x0E32}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if got, want := clusters(buf), []uint32{0, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	buf = thaiBuffer(0x0E81, 0x0EB3) // Lao KO, SIGN AM
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{0x0E81, 0x0ECD, 0x0EB2}; !slices.Equal(got, want) {
		t.Errorf("Lao code-points = %U, want %U", got, want)
	}
}

func TestKeepSaraAmIfFontHasGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	font := fonttest.New().Map(0x0E01, 1).Map(0x0E33, 2).Map(0x0E4D, 3).Map(0x0E32, 4)
	shaper := otshape.NewShaper(New())
	buf := otshape.NewUnicodeBuffer("\u0E01\u0E33")
	buf.GuessSegmentProperties()
	out, err := shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if got, want := out.Glyphs(), []ot.GlyphIndex{1, 2}; !slices.Equal(got, want) {
		t.Errorf("glyphs = %v, want %v", got, want)
	}
	font = fonttest.New().Map(0x0E01, 1).Map(0x0E4D, 3).Map(0x0E32, 4)
	out, err = shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if got, want := out.Glyphs(), []ot.GlyphIndex{1, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("decomposed glyphs = %v, want %v", got, want)
	}
}

func TestSwapLeadingVowel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	buf := thaiBuffer(0x0E40, 0x0E01, 0x0E32) // SARA E, KO KAI, SARA AA
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{0x0E01, 0x0E40, 0x0E32}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
	if got, want := clusters(buf), []uint32{0, 0, 2}; !slices.Equal(got, want) {
		t.Errorf("clusters = %v, want %v", got, want)
	}
	if !buf.Info[0].Mask.Has(otlayout.ThaiFamily, uint16(roleConsonant)) {
		t.Errorf("expected consonant role for first glyph, have %v", buf.Info[0].Mask)
	}
	if !buf.Info[1].Mask.Has(otlayout.ThaiFamily, uint16(roleLeadingVowel)) {
		t.Errorf("expected leading vowel role for second glyph, have %v", buf.Info[1].Mask)
	}
	buf = thaiBuffer(0x0E40, 0x0E01)
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{ClusterLevel: otshape.Characters})
	if got, want := clusters(buf), []uint32{1, 0}; !slices.Equal(got, want) {
		t.Errorf("character-level clusters = %v, want %v", got, want)
	}
	buf = thaiBuffer(0x0E40, 0x0E32) // no consonant follows
	Shaper{}.Preprocess(buf, otshape.PreprocessContext{})
	if got, want := codepoints(buf), []rune{0x0E40, 0x0E32}; !slices.Equal(got, want) {
		t.Errorf("code-points = %U, want %U", got, want)
	}
}
