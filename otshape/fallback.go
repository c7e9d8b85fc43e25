package otshape

import (
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"golang.org/x/text/unicode/norm"
)

// fallbackKern applies pair kerning of a legacy 'kern' table to adjacent
// non-mark glyphs. The buffer is in logical order; for right-to-left runs the
// visual left glyph of a pair is the logically following one.
func fallbackKern(buf *otlayout.Buffer, kern ot.KernTable, rtl bool) {
	if kern == nil {
		return
	}
	prev := -1
	for i := range buf.Info {
		if buf.Info[i].IsMark() {
			continue
		}
		if prev >= 0 {
			if rtl {
				buf.Pos[i].XAdvance += int32(kern.KernPair(buf.Info[i].GlyphID, buf.Info[prev].GlyphID))
			} else {
				buf.Pos[prev].XAdvance += int32(kern.KernPair(buf.Info[prev].GlyphID, buf.Info[i].GlyphID))
			}
		}
		prev = i
	}
}

// markPlacement is the horizontal placement of a mark relative to its base,
// derived from its canonical combining class.
type markPlacement uint8

const (
	placeCentered markPlacement = iota
	placeLeft
	placeRight
)

func placementOf(r rune) markPlacement {
	switch norm.NFD.PropertiesString(string(r)).CCC() {
	case 200, 208, 218, 224, 228: // attached below left, attached left, below left, left, above left
		return placeLeft
	case 204, 210, 222, 226, 232: // attached below right, attached right, below right, right, above right
		return placeRight
	}
	return placeCentered
}

// fallbackMarks positions marks heuristically on their base glyph, for fonts
// without GPOS and without GDEF mark classes. Marks are placed horizontally by
// their combining class, and lose their advance.
// It runs after kerning: the base is measured by its nominal advance, while
// the pen distance to the mark uses the kerned advances.
func fallbackMarks(buf *otlayout.Buffer, font ot.Font, rtl bool) {
	base := -1
	for i := range buf.Info {
		if !buf.Info[i].IsMark() {
			base = i
			continue
		}
		if base < 0 {
			continue
		}
		baseAdv, markAdv := font.GlyphAdvance(buf.Info[base].GlyphID), buf.Pos[i].XAdvance
		var baseX, markX int32
		switch placementOf(buf.Info[i].Codepoint) {
		case placeLeft:
			baseX, markX = 0, 0
		case placeRight:
			baseX, markX = baseAdv, markAdv
		default:
			baseX, markX = baseAdv/2, markAdv/2
		}
		x := baseX - markX
		if rtl {
			for k := base + 1; k < i; k++ {
				x += buf.Pos[k].XAdvance
			}
		} else {
			for k := base; k < i; k++ {
				x -= buf.Pos[k].XAdvance
			}
		}
		buf.Pos[i].XOffset = x
		buf.Pos[i].XAdvance = 0
	}
}

// zeroUnattachedMarks zeroes the advances of mark glyphs which GPOS did not
// attach to a base.
func zeroUnattachedMarks(buf *otlayout.Buffer) {
	for i := range buf.Info {
		if buf.Info[i].IsMark() && !buf.Info[i].IsAttached() {
			buf.Pos[i].XAdvance = 0
		}
	}
}
