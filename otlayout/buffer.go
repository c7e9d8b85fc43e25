package otlayout

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/npillmayer/textshaping/ot"
)

// GlyphInfo describes a glyph in a buffer, together with the character it
// originates from.
type GlyphInfo struct {
	GlyphID   ot.GlyphIndex  // glyph in the font
	Cluster   uint32         // index of the first character of the cluster
	Mask      ScriptFeatures // per-glyph flags set by a script preprocessor
	Codepoint rune           // character the glyph has been mapped from

	class         ot.GlyphClass // synthesized glyph class, used for lookup flags
	ligComponents uint8         // number of components, for ligatures
	attached      bool          // set by GPOS mark attachment
}

// GlyphClass returns the glyph class as used for skipping glyphs during
// lookup application.
func (gi GlyphInfo) GlyphClass() ot.GlyphClass { return gi.class }

// SetGlyphClass overrides the synthesized glyph class.
func (gi *GlyphInfo) SetGlyphClass(c ot.GlyphClass) { gi.class = c }

// LigComponents returns the number of components of a ligature glyph,
// or 0 for glyphs not produced by a ligature substitution.
func (gi GlyphInfo) LigComponents() int { return int(gi.ligComponents) }

// IsAttached is true if GPOS has attached this glyph (as a mark) to another glyph.
func (gi GlyphInfo) IsAttached() bool { return gi.attached }

// IsMark is a shortcut for testing the glyph class.
func (gi GlyphInfo) IsMark() bool { return gi.class == ot.MarkGlyph }

// GlyphPosition holds positioning information for a glyph, in font design units.
type GlyphPosition struct {
	XAdvance, YAdvance int32
	XOffset, YOffset   int32
}

// Buffer is the glyph buffer of a shaping run. Info and Pos always have the
// same length, index for index.
//
// During a GSUB lookup the buffer works with a write cursor: glyphs at Info[idx:]
// are input, and processed glyphs are moved to an output sequence. SwapBuffers
// installs the output as the new Info.
type Buffer struct {
	Info []GlyphInfo
	Pos  []GlyphPosition

	family    ScriptFamily // activated script family, if any
	out       []GlyphInfo  // output sequence of the write cursor
	idx       int          // read position of the write cursor
	outActive bool         // ClearOutput has been called
}

// NewBuffer creates an empty buffer with room for n glyphs.
func NewBuffer(n int) *Buffer {
	return &Buffer{
		Info: make([]GlyphInfo, 0, n),
		Pos:  make([]GlyphPosition, 0, n),
	}
}

// Len returns the number of glyphs in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Info)
}

// InitFromInfos adopts a slice of glyph infos and zeroes all positions.
func (b *Buffer) InitFromInfos(infos []GlyphInfo) {
	b.Info = infos
	b.Pos = zeroPositions(b.Pos, len(infos))
	b.out = b.out[:0]
	b.idx, b.outActive = 0, false
}

func zeroPositions(pos []GlyphPosition, n int) []GlyphPosition {
	if cap(pos) < n {
		return make([]GlyphPosition, n)
	}
	pos = pos[:n]
	clear(pos)
	return pos
}

// InsertGlyph inserts a glyph before index.
func (b *Buffer) InsertGlyph(index int, info GlyphInfo, pos GlyphPosition) {
	assertThat(len(b.Info) == len(b.Pos), "glyph buffer out of sync")
	assertThat(index >= 0 && index <= len(b.Info), "glyph buffer insert position out of range")
	b.Info = slices.Insert(b.Info, index, info)
	b.Pos = slices.Insert(b.Pos, index, pos)
}

// RemoveRange removes glyphs [start, end) from the buffer.
func (b *Buffer) RemoveRange(start, end int) {
	assertThat(len(b.Info) == len(b.Pos), "glyph buffer out of sync")
	assertThat(start >= 0 && start <= end && end <= len(b.Info), "glyph buffer range out of bounds")
	b.Info = slices.Delete(b.Info, start, end)
	b.Pos = slices.Delete(b.Pos, start, end)
}

// MoveGlyph moves the glyph at index from to index to, shifting the glyphs
// in between by one. Script preprocessors use it for reordering.
func (b *Buffer) MoveGlyph(from, to int) {
	assertThat(from >= 0 && from < len(b.Info) && to >= 0 && to < len(b.Info), "glyph buffer move out of bounds")
	if from == to {
		return
	}
	info, pos := b.Info[from], b.Pos[from]
	if from < to {
		copy(b.Info[from:to], b.Info[from+1:to+1])
		copy(b.Pos[from:to], b.Pos[from+1:to+1])
	} else {
		copy(b.Info[to+1:from+1], b.Info[to:from])
		copy(b.Pos[to+1:from+1], b.Pos[to:from])
	}
	b.Info[to], b.Pos[to] = info, pos
}

// MergeClusters sets the cluster values of glyphs in range [start, end]
// (inclusive) to the minimum cluster value of the range.
func (b *Buffer) MergeClusters(start, end int) {
	if start < 0 {
		start = 0
	}
	if end >= len(b.Info) {
		end = len(b.Info) - 1
	}
	if end <= start {
		return
	}
	cl := b.Info[start].Cluster
	for i := start + 1; i <= end; i++ {
		cl = min(cl, b.Info[i].Cluster)
	}
	for i := start; i <= end; i++ {
		b.Info[i].Cluster = cl
	}
}

// Reverse reverses the order of glyphs in the buffer.
func (b *Buffer) Reverse() {
	b.ReverseRange(0, len(b.Info))
}

// ReverseRange reverses the order of glyphs in [start, end).
func (b *Buffer) ReverseRange(start, end int) {
	assertThat(len(b.Info) == len(b.Pos), "glyph buffer out of sync")
	if start < 0 || end > len(b.Info) || end-start < 2 {
		return
	}
	slices.Reverse(b.Info[start:end])
	slices.Reverse(b.Pos[start:end])
}

// Check reports an error wrapping ErrBufferInvariant if the buffer is not consistent.
func (b *Buffer) Check() error {
	if b == nil {
		return fmt.Errorf("%w: buffer is nil", ErrBufferInvariant)
	}
	if len(b.Info) != len(b.Pos) {
		return fmt.Errorf("%w: %d glyph infos vs %d positions", ErrBufferInvariant, len(b.Info), len(b.Pos))
	}
	for i, info := range b.Info {
		if f := info.Mask.Family(); f != NoScriptFamily && f != b.family {
			return fmt.Errorf("%w: glyph %d carries %s features in a %s buffer", ErrBufferInvariant,
				i, f, b.family)
		}
	}
	return nil
}

// Glyphs returns a copy of the glyph IDs in the buffer.
func (b *Buffer) Glyphs() []ot.GlyphIndex {
	glyphs := make([]ot.GlyphIndex, len(b.Info))
	for i, info := range b.Info {
		glyphs[i] = info.GlyphID
	}
	return glyphs
}

// --- Script features -------------------------------------------------------

// ActivateScript binds the buffer to a script family. Activating a buffer for a
// second, different family is a programming error.
func (b *Buffer) ActivateScript(family ScriptFamily) {
	assertThat(b.family == NoScriptFamily || b.family == family,
		fmt.Sprintf("buffer already activated for script family %s", b.family))
	b.family = family
}

// ScriptFamily returns the script family the buffer has been activated for.
func (b *Buffer) ScriptFamily() ScriptFamily {
	return b.family
}

// SetScriptFeatures sets the feature variant of glyph i. The variant has to
// belong to the family the buffer is activated for.
func (b *Buffer) SetScriptFeatures(i int, sf ScriptFeatures) {
	assertThat(sf.family == b.family, fmt.Sprintf("cannot set %s features in %s buffer", sf.family, b.family))
	b.Info[i].Mask = sf
}

// --- Glyph classes ---------------------------------------------------------

// Classify synthesizes glyph classes for all glyphs. If the font has GDEF glyph
// classes, these are used. Otherwise glyphs for non-spacing and enclosing marks
// are classified as marks, everything else as base glyphs.
func (b *Buffer) Classify(gdef *ot.GDefTable) {
	for i := range b.Info {
		b.Info[i].class = classifyGlyph(gdef, &b.Info[i])
	}
}

func classifyGlyph(gdef *ot.GDefTable, info *GlyphInfo) ot.GlyphClass {
	if gdef.HasGlyphClasses() {
		return gdef.GlyphClass(info.GlyphID)
	}
	if unicode.In(info.Codepoint, unicode.Mn, unicode.Me) {
		return ot.MarkGlyph
	}
	return ot.BaseGlyph
}

// --- Write cursor ----------------------------------------------------------

// ClearOutput starts a new output sequence and sets the read position to the
// start of the buffer.
func (b *Buffer) ClearOutput() {
	b.out = b.out[:0]
	b.idx = 0
	b.outActive = true
}

// Idx returns the read position of the write cursor.
func (b *Buffer) Idx() int {
	return b.idx
}

// Cur returns the glyph at the read position.
func (b *Buffer) Cur() *GlyphInfo {
	return &b.Info[b.idx]
}

// OutLen returns the length of the output sequence.
func (b *Buffer) OutLen() int {
	return len(b.out)
}

// NextGlyph copies the current glyph to the output and advances.
func (b *Buffer) NextGlyph() {
	b.out = append(b.out, b.Info[b.idx])
	b.idx++
}

// ReplaceGlyph outputs the current glyph with its glyph ID replaced and advances.
func (b *Buffer) ReplaceGlyph(g ot.GlyphIndex) {
	info := b.Info[b.idx]
	info.GlyphID = g
	b.out = append(b.out, info)
	b.idx++
}

// ReplaceGlyphs consumes n input glyphs and outputs glyphs in their place. All
// output glyphs are copies of the first consumed glyph, carrying the minimum
// cluster of the consumed glyphs.
func (b *Buffer) ReplaceGlyphs(n int, glyphs []ot.GlyphIndex) {
	assertThat(n > 0 && b.idx+n <= len(b.Info), "cannot consume beyond end of buffer")
	info := b.Info[b.idx]
	for _, in := range b.Info[b.idx+1 : b.idx+n] {
		info.Cluster = min(info.Cluster, in.Cluster)
	}
	for _, g := range glyphs {
		info.GlyphID = g
		b.out = append(b.out, info)
	}
	b.idx += n
}

// OutputGlyph outputs a copy of the current glyph with a different glyph ID,
// without advancing.
func (b *Buffer) OutputGlyph(g ot.GlyphIndex) {
	var info GlyphInfo
	if b.idx < len(b.Info) {
		info = b.Info[b.idx]
	} else if len(b.out) > 0 {
		info = b.out[len(b.out)-1]
	}
	info.GlyphID = g
	b.out = append(b.out, info)
}

// CopyGlyph outputs a copy of the current glyph without advancing.
func (b *Buffer) CopyGlyph() {
	b.out = append(b.out, b.Info[b.idx])
}

// SkipGlyph advances without output, removing the current glyph.
func (b *Buffer) SkipGlyph() {
	b.idx++
}

// outputInfo appends an arbitrary glyph info to the output.
func (b *Buffer) outputInfo(info GlyphInfo) {
	b.out = append(b.out, info)
}

// SwapBuffers copies unprocessed glyphs to the output and installs the output
// as the new glyph sequence. Positions are reset to zero.
func (b *Buffer) SwapBuffers() {
	if !b.outActive {
		return
	}
	b.out = append(b.out, b.Info[b.idx:]...)
	b.Info, b.out = b.out, b.Info[:0]
	b.Pos = zeroPositions(b.Pos, len(b.Info))
	b.idx, b.outActive = 0, false
}
