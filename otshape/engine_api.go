package otshape

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// SelectionContext carries the segment metadata for shaper selection.
type SelectionContext struct {
	Direction bidi.Direction
	Script    language.Script // unicode.org/iso15924/iso15924-codes.html
	Language  xlanguage.Tag
	ScriptTag ot.Tag // OpenType script tag, resolved by the shaper
	LangTag   ot.Tag // OpenType language system tag, resolved by the shaper
}

// IsRightToLeft is true for right-to-left runs.
func (ctx SelectionContext) IsRightToLeft() bool {
	return ctx.Direction == bidi.RightToLeft
}

type ShaperConfidence int

const (
	ShaperConfidenceNone ShaperConfidence = iota
	ShaperConfidenceLow
	ShaperConfidenceMedium
	ShaperConfidenceHigh
	ShaperConfidenceCertain
)

// ShapingEngine is the mandatory minimal interface for shaper selection.
type ShapingEngine interface {
	Name() string
	Match(ctx SelectionContext) ShaperConfidence
	New() ShapingEngine
}

// FeatureSpec is a feature an engine contributes to the shape plan. Gate, if
// non-nil, decides per glyph whether the feature's lookups apply, looking at
// the script features the engine's preprocessor has set.
type FeatureSpec struct {
	Tag  ot.Tag
	Gate func(sf otlayout.ScriptFeatures) bool
}

// ShapingEngineFeatureHook exposes the script features of an engine.
type ShapingEngineFeatureHook interface {
	FeatureSpecs(ctx SelectionContext) []FeatureSpec
}

// ShapingEnginePreprocessHook exposes a hook running after glyph mapping and
// before GSUB. Preprocessors set script features, and may reorder, compose or
// decompose glyphs.
type ShapingEnginePreprocessHook interface {
	Preprocess(buf *otlayout.Buffer, ctx PreprocessContext)
}

// ShapingEnginePostprocessHook exposes a hook after positioning, before the
// buffer is put into visual order.
type ShapingEnginePostprocessHook interface {
	Postprocess(buf *otlayout.Buffer, ctx PreprocessContext)
}

// ZeroWidthMarksMode tells the pipeline how to treat advances of mark glyphs
// which GPOS did not attach.
type ZeroWidthMarksMode uint8

const (
	ZeroWidthMarksByGDEF ZeroWidthMarksMode = iota // zero advances of all unattached marks
	ZeroWidthMarksNone                             // keep advances as the font has them
)

// ShapingEnginePolicy exposes policy decisions used by the base pipeline.
type ShapingEnginePolicy interface {
	ZeroMarkWidths() ZeroWidthMarksMode
}

// PreprocessContext is the view of a run available to engine hooks.
type PreprocessContext struct {
	Font         ot.Font
	Selection    SelectionContext
	PreContext   []rune // text before the run, in logical order
	PostContext  []rune // text after the run, in logical order
	ClusterLevel ClusterLevel
}

// MergeOnReorder is true if clusters should be merged when glyphs are reordered.
func (ctx PreprocessContext) MergeOnReorder() bool {
	return ctx.ClusterLevel != Characters
}

// Glyph maps a code-point with the font's cmap.
func (ctx PreprocessContext) Glyph(r rune) ot.GlyphIndex {
	if ctx.Font == nil {
		return NOTDEF
	}
	return ctx.Font.GlyphIndex(r)
}

// HasGlyph is true if the font maps r to a glyph other than .notdef.
func (ctx PreprocessContext) HasGlyph(r rune) bool {
	return ctx.Glyph(r) != NOTDEF
}
