/*
Package hbcmp compares the output of this module's shaper with the output of
go-text's port of HarfBuzz, for the same font and text.

HarfBuzz serves as the reference: for fonts and texts covered by the tests of
this package, glyph indices, clusters and (optionally) positions must match.
*/
package hbcmp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/harfbuzz"
	glanguage "github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping"
	"github.com/npillmayer/textshaping/otfont"
	"github.com/npillmayer/textshaping/otshape"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// ShapedGlyph is one positioned glyph, in the notation of hb-shape's JSON
// output.
type ShapedGlyph struct {
	G  int    `json:"g"`  // glyph index
	Cl uint32 `json:"cl"` // cluster index
	DX int32  `json:"dx"` // x offset
	DY int32  `json:"dy"` // y offset
	AX int32  `json:"ax"` // x advance
	AY int32  `json:"ay"` // y advance
}

// Case is a run of text to shape with both shapers.
type Case struct {
	Text     string
	Script   string // ISO 15924 script code, e.g. "Latn"
	Language string // BCP 47 language tag
	Dir      string // "ltr" or "rtl"
	Features []string
}

// Fonts holds a font parsed both by go-text and by this module.
type Fonts struct {
	HB  *font.Face
	Own *otfont.Font
}

// LoadFonts parses font data for both shapers.
func LoadFonts(data []byte) (Fonts, error) {
	hb, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return Fonts{}, fmt.Errorf("go-text: %w", err)
	}
	own, err := otfont.Parse(data)
	if err != nil {
		return Fonts{}, err
	}
	return Fonts{HB: hb, Own: own}, nil
}

// ShapeHarfBuzz shapes c with go-text's HarfBuzz. Glyphs are returned in
// visual order.
func ShapeHarfBuzz(face *font.Face, c Case) ([]ShapedGlyph, error) {
	dir, err := parseDirection(c.Dir)
	if err != nil {
		return nil, err
	}
	script, err := glanguage.ParseScript(c.Script)
	if err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", c.Script, err)
	}
	features := make([]harfbuzz.Feature, 0, len(c.Features))
	for _, f := range c.Features {
		hbf, err := harfbuzz.ParseFeature(f)
		if err != nil {
			return nil, fmt.Errorf("invalid feature %q: %w", f, err)
		}
		features = append(features, hbf)
	}
	buf := harfbuzz.NewBuffer()
	runes := []rune(c.Text)
	buf.AddRunes(runes, 0, len(runes))
	buf.Props.Direction = harfbuzz.LeftToRight
	if dir == bidi.RightToLeft {
		buf.Props.Direction = harfbuzz.RightToLeft
	}
	buf.Props.Script = script
	buf.Props.Language = glanguage.NewLanguage(c.Language)
	buf.Shape(harfbuzz.NewFont(face), features)
	out := make([]ShapedGlyph, len(buf.Info))
	for i, info := range buf.Info {
		pos := buf.Pos[i]
		out[i] = ShapedGlyph{
			G:  int(info.Glyph),
			Cl: uint32(info.Cluster),
			DX: pos.XOffset,
			DY: pos.YOffset,
			AX: pos.XAdvance,
			AY: pos.YAdvance,
		}
	}
	return out, nil
}

// ShapeOwn shapes c with all shaping engines of this module.
func ShapeOwn(f *otfont.Font, c Case) ([]ShapedGlyph, error) {
	dir, err := parseDirection(c.Dir)
	if err != nil {
		return nil, err
	}
	script, err := glanguage.ParseScript(c.Script)
	if err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", c.Script, err)
	}
	features, err := otshape.ParseFeatures(strings.Join(c.Features, ","))
	if err != nil {
		return nil, err
	}
	face := textshaping.NewFace(f)
	records, err := textshaping.ShapeRun(face, c.Text, dir, script, language.Make(c.Language), features...)
	if err != nil {
		return nil, err
	}
	out := make([]ShapedGlyph, len(records))
	for i, g := range records {
		out[i] = ShapedGlyph{
			G:  int(g.GID),
			Cl: g.Cluster,
			DX: g.Pos.XOffset,
			DY: g.Pos.YOffset,
			AX: g.Pos.XAdvance,
			AY: g.Pos.YAdvance,
		}
	}
	return out, nil
}

// Compare checks glyph indices and clusters of got against want. If
// positions is true, offsets and advances must match as well.
func Compare(got, want []ShapedGlyph, positions bool) error {
	if len(got) != len(want) {
		return fmt.Errorf("unequal number of glyphs: got %d, want %d\ngot =%s\nwant=%s",
			len(got), len(want), dump(got), dump(want))
	}
	for i := range got {
		g, w := got[i], want[i]
		if !positions {
			g.DX, g.DY, g.AX, g.AY = 0, 0, 0, 0
			w.DX, w.DY, w.AX, w.AY = 0, 0, 0, 0
		}
		if g != w {
			return fmt.Errorf("glyph[%d] mismatch: got=%+v want=%+v\ngot =%s\nwant=%s",
				i, got[i], want[i], dump(got), dump(want))
		}
	}
	return nil
}

func dump(glyphs []ShapedGlyph) string {
	b, err := json.Marshal(glyphs)
	if err != nil {
		return fmt.Sprintf("%v", glyphs)
	}
	return string(b)
}

func parseDirection(s string) (bidi.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "left-to-right", "":
		return bidi.LeftToRight, nil
	case "rtl", "right-to-left":
		return bidi.RightToLeft, nil
	default:
		return bidi.LeftToRight, fmt.Errorf("invalid direction %q (expected ltr|rtl)", s)
	}
}
