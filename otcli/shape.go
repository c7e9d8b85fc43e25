package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/pterm/pterm"
)

// glyphOp prints glyph index and metrics for a character, given either
// literally or as a hex code-point ("glyph:U+0628").
func glyphOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return ErrNoFont, false
	}
	r, err := parseRune(op.arg)
	if err != nil {
		return err, false
	}
	gid := intp.font.GlyphIndex(r)
	if gid == ot.NotDef {
		pterm.Printf("U+%04X is not mapped\n", r)
		return nil, false
	}
	gm := intp.font.GlyphMetrics(gid)
	data := [][]string{
		{"Code-point", "Glyph", "Name", "Advance", "LSB", "RSB", "BBox"},
		{
			fmt.Sprintf("U+%04X", r),
			strconv.Itoa(int(gid)),
			intp.font.GlyphName(gid),
			strconv.Itoa(int(gm.Advance)),
			strconv.Itoa(int(gm.LSB)),
			strconv.Itoa(int(gm.RSB)),
			fmt.Sprintf("(%d,%d)-(%d,%d)", gm.BBox.MinX, gm.BBox.MinY, gm.BBox.MaxX, gm.BBox.MaxY),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// shapeOp shapes the rest of the command line with the current font.
func shapeOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return ErrNoFont, false
	}
	if op.noArg() {
		return fmt.Errorf("usage: shape <text>"), false
	}
	buf := otshape.NewUnicodeBuffer(op.arg)
	buf.GuessSegmentProperties()
	out, err := intp.shaper.Shape(intp.face, buf, nil)
	if err != nil {
		return err, false
	}
	pterm.Println(formatGlyphRecords(otshape.GlyphRecords(out), intp.font.GlyphName))
	pterm.Printf("script=%s glyphs=%d advance=%d plans=%d\n", buf.Script, out.Len(),
		otshape.TotalAdvance(out), intp.face.Plans().Len())
	return nil, false
}

// formatGlyphRecords prints shaping output like hb-shape does, with glyph
// names if names is non-nil.
func formatGlyphRecords(glyphs []otshape.GlyphRecord, names func(ot.GlyphIndex) string) string {
	var b strings.Builder
	b.WriteString("[")
	for i, g := range glyphs {
		if i > 0 {
			b.WriteString("|")
		}
		name := ""
		if names != nil {
			name = names(g.GID)
		}
		if name == "" {
			name = strconv.Itoa(int(g.GID))
		}
		b.WriteString(name)
		fmt.Fprintf(&b, "=%d+%d", g.Cluster, g.Pos.XAdvance)
		if g.Pos.XOffset != 0 || g.Pos.YOffset != 0 {
			fmt.Fprintf(&b, "@%d,%d", g.Pos.XOffset, g.Pos.YOffset)
		}
	}
	b.WriteString("]")
	return b.String()
}

func parseRune(s string) (rune, error) {
	if r := []rune(s); len(r) == 1 {
		return r[0], nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "U+"), "u+")
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || n > 0x10FFFF {
		return 0, fmt.Errorf("not a character or code-point: '%s'", s)
	}
	return rune(n), nil
}
