package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/textshaping"
	"github.com/npillmayer/textshaping/internal/hbcmp"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otfont"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/bidi"
)

func runShapeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontPath(args)
	varOpts, err := parseVariations(flagString(flags["variations"], "variations"))
	if err != nil {
		fatalf("%v", err)
	}
	otf := mustLoadFont(fontPath, varOpts...)
	ts, err := parseTypesetFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	features, err := parseFeatureList(flags["features"])
	if err != nil {
		fatalf("%v", err)
	}
	input, err := parseShapeInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	buf := ts.buffer(input)
	glyphs, err := doShape(otf, buf, features)
	if err != nil {
		fatalf("shape failed: %v", err)
	}
	var names func(int) string
	if mustFlagBool(flags["names"], "names") {
		names = func(gid int) string { return otf.GlyphName(ot.GlyphIndex(gid)) }
	}
	fmt.Println(formatGlyphOutput(glyphs, names))
	if verbose(flags) {
		fmt.Printf("script=%s direction=%s advance=%d\n", buf.Script, directionString(buf.Direction),
			totalAdvance(glyphs))
	}
	if mustFlagBool(flags["harfbuzz"], "harfbuzz") {
		compareWithHarfBuzz(fontPath, input, buf, flagString(flags["features"], "features"), glyphs)
	}
}

func doShape(otf *otfont.Font, buf otshape.UnicodeBuffer, features []otshape.FeatureRange) ([]hbcmp.ShapedGlyph, error) {
	shaper := textshaping.NewShaper()
	out, err := shaper.Shape(shaper.NewFace(otf), buf, features)
	if err != nil {
		return nil, err
	}
	records := otshape.GlyphRecords(out)
	glyphs := make([]hbcmp.ShapedGlyph, len(records))
	for i, g := range records {
		glyphs[i] = hbcmp.ShapedGlyph{
			G:  int(g.GID),
			Cl: g.Cluster,
			DX: g.Pos.XOffset,
			DY: g.Pos.YOffset,
			AX: g.Pos.XAdvance,
			AY: g.Pos.YAdvance,
		}
	}
	return glyphs, nil
}

func compareWithHarfBuzz(fontPath, input string, buf otshape.UnicodeBuffer, features string, glyphs []hbcmp.ShapedGlyph) {
	f, err := os.Open(fontPath)
	if err != nil {
		fatalf("cannot open font: %v", err)
	}
	defer f.Close()
	face, err := font.ParseTTF(f)
	if err != nil {
		fatalf("go-text cannot parse font: %v", err)
	}
	c := hbcmp.Case{
		Text:     input,
		Script:   buf.Script.String(),
		Language: buf.Language.String(),
		Dir:      directionString(buf.Direction),
		Features: splitCSVSpace(features),
	}
	want, err := hbcmp.ShapeHarfBuzz(face, c)
	if err != nil {
		fatalf("harfbuzz: %v", err)
	}
	fmt.Println(formatGlyphOutput(want, nil))
	if err := hbcmp.Compare(glyphs, want, true); err != nil {
		fmt.Printf("differs from HarfBuzz: %v\n", err)
		return
	}
	fmt.Println("identical to HarfBuzz")
}

// formatGlyphOutput prints glyphs in the notation of hb-shape.
func formatGlyphOutput(glyphs []hbcmp.ShapedGlyph, names func(int) string) string {
	var b strings.Builder
	b.WriteString("[")
	for i, g := range glyphs {
		if i > 0 {
			b.WriteString("|")
		}
		if names != nil {
			b.WriteString(names(g.G))
		} else {
			fmt.Fprintf(&b, "%d", g.G)
		}
		fmt.Fprintf(&b, "=%d+%d", g.Cl, g.AX)
		if g.AY != 0 {
			fmt.Fprintf(&b, ",%d", g.AY)
		}
		if g.DX != 0 || g.DY != 0 {
			fmt.Fprintf(&b, "@%d,%d", g.DX, g.DY)
		}
	}
	b.WriteString("]")
	return b.String()
}

func totalAdvance(glyphs []hbcmp.ShapedGlyph) int32 {
	var w int32
	for _, g := range glyphs {
		w += g.AX
	}
	return w
}

func directionString(dir bidi.Direction) string {
	if dir == bidi.RightToLeft {
		return "rtl"
	}
	return "ltr"
}
