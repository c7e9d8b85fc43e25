/*
Package syllabic holds helpers shared by the preprocessors of syllable-based
scripts: segmentation of a buffer into syllables, dotted circles for broken
syllables, and reordering of glyphs within a syllable.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package syllabic

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
)

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}

// DottedCircle is the placeholder base for broken syllables.
const DottedCircle = 0x25CC

// Kind classifies a syllable.
type Kind uint8

const (
	Valid  Kind = iota // a well-formed syllable with a base
	Broken             // marks without a base
	Other              // a character not belonging to the script
)

func (k Kind) String() string {
	switch k {
	case Valid:
		return "valid"
	case Broken:
		return "broken"
	}
	return "other"
}

// Syllable is a range [Start, End) of a buffer.
type Syllable struct {
	Start, End int
	Kind       Kind
}

// Len returns the number of glyphs in the syllable.
func (s Syllable) Len() int {
	return s.End - s.Start
}

// Scanner returns the length and kind of the syllable starting at position i.
// The length has to be at least 1.
type Scanner func(i int) (int, Kind)

// Segment splits a buffer of n glyphs into syllables.
func Segment(n int, scan Scanner) []Syllable {
	var syllables []Syllable
	for i := 0; i < n; {
		l, kind := scan(i)
		if l < 1 {
			l = 1
		}
		l = min(l, n-i)
		syllables = append(syllables, Syllable{Start: i, End: i + l, Kind: kind})
		i += l
	}
	return syllables
}

// InsertDottedCircles inserts a dotted circle in front of every broken
// syllable, if the font has a glyph for it. Broken syllables become valid
// syllables with the dotted circle as their base. The returned syllables
// reflect the new buffer positions.
func InsertDottedCircles(buf *otlayout.Buffer, syllables []Syllable, ctx otshape.PreprocessContext) []Syllable {
	if !ctx.HasGlyph(DottedCircle) {
		return syllables
	}
	g := ctx.Glyph(DottedCircle)
	shift := 0
	for k := range syllables {
		syllables[k].Start += shift
		syllables[k].End += shift
		s := syllables[k]
		if s.Kind != Broken {
			continue
		}
		info := buf.Info[s.Start]
		info.Codepoint, info.GlyphID = DottedCircle, g
		buf.InsertGlyph(s.Start, info, otlayout.GlyphPosition{})
		tracer().Debugf("syllabic: dotted circle inserted at %d", s.Start)
		syllables[k].End++
		syllables[k].Kind = Valid
		shift++
	}
	return syllables
}

// MergeClusters merges the clusters of every syllable if ctx asks for
// grapheme-level clusters.
func MergeClusters(buf *otlayout.Buffer, syllables []Syllable, ctx otshape.PreprocessContext) {
	if ctx.ClusterLevel != otshape.MonotoneGraphemes {
		return
	}
	for _, s := range syllables {
		buf.MergeClusters(s.Start, s.End-1)
	}
}

// Move moves the glyph at from to position to, within a syllable. The
// clusters of the glyphs passed over are merged if merge is set.
func Move(buf *otlayout.Buffer, from, to int, merge bool) {
	if from == to {
		return
	}
	if merge {
		buf.MergeClusters(min(from, to), max(from, to))
	}
	buf.MoveGlyph(from, to)
}

// Mark sets bits on the glyphs [start, end), keeping bits already set.
func Mark(buf *otlayout.Buffer, family otlayout.ScriptFamily, start, end int, bits uint16) {
	for i := start; i < end; i++ {
		sf := buf.Info[i].Mask
		if sf.Family() != family {
			sf = otlayout.MakeScriptFeatures(family, 0)
		}
		buf.SetScriptFeatures(i, sf.With(bits))
	}
}
