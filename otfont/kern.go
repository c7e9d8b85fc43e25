package otfont

import (
	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/textshaping/ot"
)

// kernTable sums the pair values of the horizontal subtables of a 'kern' or
// 'kerx' table. Subtables driven by a state machine are not supported.
type kernTable []font.SimpleKerns

func newKernTable(kx font.Kernx) kernTable {
	var kt kernTable
	for i, st := range kx {
		if !st.IsHorizontal() || st.IsCrossStream() || st.IsVariation() {
			continue
		}
		if pairs, ok := st.Data.(font.SimpleKerns); ok {
			kt = append(kt, pairs)
			continue
		}
		tracer().Debugf("kern subtable %d of type %T skipped", i, st.Data)
	}
	return kt
}

// KernPair returns the kerning value of (left, right) in design units.
func (kt kernTable) KernPair(left, right ot.GlyphIndex) int16 {
	var v int16
	for _, pairs := range kt {
		v += pairs.KernPair(font.GID(left), font.GID(right))
	}
	return v
}
