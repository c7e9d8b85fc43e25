package otlayout

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeBuffer creates a buffer of base glyphs with clusters 0…n-1.
func makeBuffer(glyphs ...ot.GlyphIndex) *Buffer {
	infos := make([]GlyphInfo, len(glyphs))
	for i, g := range glyphs {
		infos[i] = GlyphInfo{GlyphID: g, Cluster: uint32(i), class: ot.BaseGlyph}
	}
	buf := NewBuffer(len(glyphs))
	buf.InitFromInfos(infos)
	return buf
}

func clusters(buf *Buffer) []uint32 {
	cl := make([]uint32, buf.Len())
	for i, info := range buf.Info {
		cl[i] = info.Cluster
	}
	return cl
}

func TestBufferInitZeroesPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2, 3)
	buf.Pos[1].XAdvance = 500
	buf.InitFromInfos([]GlyphInfo{{GlyphID: 7}, {GlyphID: 8}, {GlyphID: 9}})
	require.Len(t, buf.Pos, 3)
	assert.Equal(t, GlyphPosition{}, buf.Pos[1])
}

func TestBufferLockStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2, 3, 4)
	buf.InsertGlyph(2, GlyphInfo{GlyphID: 99, Cluster: 1}, GlyphPosition{XAdvance: 10})
	assert.Equal(t, []ot.GlyphIndex{1, 2, 99, 3, 4}, buf.Glyphs())
	assert.Equal(t, int32(10), buf.Pos[2].XAdvance)
	assert.Equal(t, len(buf.Info), len(buf.Pos))
	buf.RemoveRange(1, 3)
	assert.Equal(t, []ot.GlyphIndex{1, 3, 4}, buf.Glyphs())
	assert.Equal(t, len(buf.Info), len(buf.Pos))
	assert.NoError(t, buf.Check())
	assert.Panics(t, func() { buf.RemoveRange(2, 7) })
}

func TestMoveGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2, 3, 4)
	buf.Pos[3].XAdvance = 7
	buf.MoveGlyph(3, 1)
	assert.Equal(t, []ot.GlyphIndex{1, 4, 2, 3}, buf.Glyphs())
	assert.Equal(t, int32(7), buf.Pos[1].XAdvance)
	buf.MoveGlyph(0, 2)
	assert.Equal(t, []ot.GlyphIndex{4, 2, 1, 3}, buf.Glyphs())
	assert.Equal(t, []uint32{3, 1, 0, 2}, clusters(buf))
}

func TestMergeClustersInclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2, 3, 4, 5)
	buf.Info[2].Cluster = 0
	buf.MergeClusters(1, 3)
	assert.Equal(t, []uint32{0, 0, 0, 0, 4}, clusters(buf))
	buf = makeBuffer(1, 2, 3)
	buf.MergeClusters(1, 1)
	assert.Equal(t, []uint32{0, 1, 2}, clusters(buf))
}

func TestReverseIsSymmetric(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2, 3, 4, 5)
	for i := range buf.Pos {
		buf.Pos[i].XAdvance = int32(100 * i)
	}
	buf.Reverse()
	assert.Equal(t, []ot.GlyphIndex{5, 4, 3, 2, 1}, buf.Glyphs())
	assert.Equal(t, int32(400), buf.Pos[0].XAdvance)
	buf.Reverse()
	assert.Equal(t, []ot.GlyphIndex{1, 2, 3, 4, 5}, buf.Glyphs())
	assert.Equal(t, int32(0), buf.Pos[0].XAdvance)
	buf.ReverseRange(1, 4)
	assert.Equal(t, []ot.GlyphIndex{1, 4, 3, 2, 5}, buf.Glyphs())
	assert.Equal(t, []uint32{0, 3, 2, 1, 4}, clusters(buf))
}

func TestBufferCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2)
	buf.Pos = buf.Pos[:1]
	err := buf.Check()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBufferInvariant))
	//
	buf = makeBuffer(1, 2)
	buf.Info[1].Mask = MakeScriptFeatures(ArabicFamily, 1)
	assert.ErrorIs(t, buf.Check(), ErrBufferInvariant)
	buf.ActivateScript(ArabicFamily)
	assert.NoError(t, buf.Check())
}

func TestScriptFeaturesAreExclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2)
	buf.ActivateScript(IndicFamily)
	buf.ActivateScript(IndicFamily) // idempotent
	buf.SetScriptFeatures(0, MakeScriptFeatures(IndicFamily, 0x3))
	assert.True(t, buf.Info[0].Mask.Has(IndicFamily, 0x2))
	assert.False(t, buf.Info[0].Mask.Has(ArabicFamily, 0x2))
	assert.Panics(t, func() { buf.SetScriptFeatures(1, MakeScriptFeatures(ThaiFamily, 1)) })
	assert.Panics(t, func() { buf.ActivateScript(HangulFamily) })
	sf := MakeScriptFeatures(KhmerFamily, 0x5).Without(0x1).With(0x8)
	assert.Equal(t, uint16(0xc), sf.Bits())
	assert.Equal(t, "Khmer:0x000c", sf.String())
}

func TestWriteCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := makeBuffer(1, 2, 3, 4)
	buf.ClearOutput()
	buf.NextGlyph()                               // 1
	buf.ReplaceGlyphs(2, []ot.GlyphIndex{20, 21}) // 2 3 -> 20 21
	buf.OutputGlyph(30)                           // insert before 4
	buf.SkipGlyph()                               // drop 4
	buf.SwapBuffers()
	assert.Equal(t, []ot.GlyphIndex{1, 20, 21, 30}, buf.Glyphs())
	assert.Equal(t, []uint32{0, 1, 1, 3}, clusters(buf))
	assert.Len(t, buf.Pos, 4)
	//
	buf.ClearOutput()
	buf.CopyGlyph()
	buf.ReplaceGlyph(5)
	buf.SwapBuffers() // copies the rest
	assert.Equal(t, []ot.GlyphIndex{1, 5, 20, 21, 30}, buf.Glyphs())
}

func TestClassifyWithoutGDEF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.layout")
	defer teardown()
	//
	buf := NewBuffer(2)
	buf.InitFromInfos([]GlyphInfo{{GlyphID: 1, Codepoint: 'a'}, {GlyphID: 2, Codepoint: '\u0301'}})
	buf.Classify(nil)
	assert.Equal(t, ot.BaseGlyph, buf.Info[0].GlyphClass())
	assert.True(t, buf.Info[1].IsMark())
	gdef := &ot.GDefTable{GlyphClassDef: ot.NewClassArray(1, 3, 1)}
	buf.Classify(gdef)
	assert.Equal(t, ot.MarkGlyph, buf.Info[0].GlyphClass())
	assert.Equal(t, ot.BaseGlyph, buf.Info[1].GlyphClass())
}
