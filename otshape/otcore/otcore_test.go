package otcore_test

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/otcore"
	"golang.org/x/text/unicode/bidi"
)

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	core := otcore.New()
	if got := core.Match(otshape.SelectionContext{Script: language.Latin}); got != otshape.ShaperConfidenceHigh {
		t.Errorf("confidence for Latin = %d, want high", got)
	}
	ctx := otshape.SelectionContext{Script: language.Hebrew, Direction: bidi.RightToLeft}
	if got := core.Match(ctx); got != otshape.ShaperConfidenceLow {
		t.Errorf("confidence for Hebrew = %d, want low", got)
	}
	if core.Name() != "core" {
		t.Errorf("unexpected engine name %q", core.Name())
	}
}

func TestShapeAppliesGSUBFromCoreShaper(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.T("latn")},
		fonttest.Feature{Tag: ot.T("test"), Lookups: []*ot.Lookup{fonttest.Single(18, 20)}},
	)
	font := fonttest.New().Map('x', 18).WithGSUB(gsub)
	shaper := otshape.NewShaper(otcore.New())
	buf := otshape.NewUnicodeBuffer("xx")
	buf.Script = language.Latin
	features := []otshape.FeatureRange{{Feature: ot.T("test"), On: true}}
	out, err := shaper.Shape(shaper.NewFace(font), buf, features)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("shaped glyph count = %d, want 2", out.Len())
	}
	for i, info := range out.Info {
		if info.GlyphID != 20 {
			t.Errorf("shaped glyph id at %d = %d, want 20", i, info.GlyphID)
		}
	}
	// without the feature toggle, the lookup is not applied
	out, err = shaper.Shape(shaper.NewFace(font), buf, nil)
	if err != nil {
		t.Fatalf("shape failed: %v", err)
	}
	if got := out.Info[0].GlyphID; got != 18 {
		t.Errorf("shaped glyph id = %d, want 18", got)
	}
}

func TestShapeIsRepeatable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	kern := fonttest.Layout(ot.GPosFeatureType, []ot.Tag{ot.T("DFLT")},
		fonttest.Feature{Tag: ot.T("kern"), Lookups: []*ot.Lookup{fonttest.PairKern(1, 2, -50)}},
	)
	font := fonttest.New().Map('A', 1).Map('V', 2).WithGPOS(kern)
	shaper := otshape.NewShaper(otcore.New())
	face := shaper.NewFace(font)
	var first []otshape.GlyphRecord
	for i := range 3 {
		buf := otshape.NewUnicodeBuffer("AVAV")
		buf.GuessSegmentProperties()
		out, err := shaper.Shape(face, buf, nil)
		if err != nil {
			t.Fatalf("shape failed: %v", err)
		}
		records := otshape.GlyphRecords(out)
		if i == 0 {
			first = records
			if records[0].Pos.XAdvance != 450 || records[1].Pos.XAdvance != 500 {
				t.Fatalf("unexpected kerning: %v", records)
			}
			continue
		}
		for j := range records {
			if records[j] != first[j] {
				t.Fatalf("shaping run %d differs at glyph %d: %v != %v", i, j, records[j], first[j])
			}
		}
	}
	if face.Plans().Len() != 1 {
		t.Errorf("expected a single cached plan, have %d", face.Plans().Len())
	}
}
