package otshape

import (
	"fmt"

	"github.com/go-text/typesetting/harfbuzz"
	"github.com/go-text/typesetting/segmenter"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
)

// Shaper is the injectable top-level shaping orchestrator.
//
// It intentionally has no global registry; callers provide candidate engines.
// A Shaper is immutable after configuration and may be used concurrently.
type Shaper struct {
	Engines []ShapingEngine
	Config  Config
}

// NewShaper creates a shaper from explicit candidate engines, with the
// default configuration.
//
// Nil entries in engines are ignored. The returned value keeps the candidate
// list and selects the best matching engine per [Shaper.Shape] call.
func NewShaper(engines ...ShapingEngine) *Shaper {
	list := make([]ShapingEngine, 0, len(engines))
	for _, sh := range engines {
		if sh != nil {
			list = append(list, sh)
		}
	}
	return &Shaper{Engines: list, Config: DefaultConfig()}
}

// Configure replaces the configuration of the shaper. If conf carries a trace
// level, it is applied to the shaper's tracer.
func (s *Shaper) Configure(conf Config) *Shaper {
	s.Config = conf
	if conf.SetTraceLevel {
		tracer().SetTraceLevel(conf.TraceLevel)
	}
	return s
}

// NewFace wraps a font for shaping, with a plan cache sized by the shaper's
// configuration.
func (s *Shaper) NewFace(font ot.Font) *Face {
	return NewFace(font, s.Config.PlanCacheSize)
}

// Shape shapes a run of text with face.
//
// Parameters:
//   - face provides the font and caches shape plans.
//   - buf holds the code-points in logical order, with segment metadata.
//   - features are user feature toggles; later toggles override earlier ones.
//
// Shaping degrades gracefully: missing glyphs map to .notdef and missing tables
// disable features. Errors are returned for a missing font, inconsistent
// buffer data, or if no shaping engine matches the run.
// The result holds positioned glyphs in visual order.
func (s *Shaper) Shape(face *Face, buf UnicodeBuffer, features []FeatureRange) (*otlayout.Buffer, error) {
	if face == nil || face.Font == nil {
		return nil, ErrNilFont
	}
	// 1. Validate
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	font := face.Font
	tables := font.Layout()
	sel := selectionContextFor(buf)
	engine, err := selectShapingEngine(s.Engines, sel)
	if err != nil {
		return nil, err
	}
	rtl := sel.IsRightToLeft()
	// 2. Map
	out := otlayout.NewBuffer(len(buf.Runes))
	mirror := rtl && !requestsMirroring(tables.GSUB)
	out.InitFromInfos(mapRunes(font, buf, mirror))
	mergeVariationSelectors(out)
	if buf.ClusterLevel == MonotoneGraphemes {
		formGraphemeClusters(out, buf.Runes)
	}
	// 3. Preprocess
	pctx := PreprocessContext{
		Font:         font,
		Selection:    sel,
		PreContext:   buf.PreContext,
		PostContext:  buf.PostContext,
		ClusterLevel: buf.ClusterLevel,
	}
	if hook, ok := engine.(ShapingEnginePreprocessHook); ok {
		hook.Preprocess(out, pctx)
		if err := out.Check(); err != nil {
			return nil, fmt.Errorf("otshape: engine %s broke the glyph buffer: %w", engine.Name(), err)
		}
	}
	// 4. Plan
	var specs []FeatureSpec
	if hook, ok := engine.(ShapingEngineFeatureHook); ok {
		specs = hook.FeatureSpecs(sel)
	}
	coords := font.Coords()
	key := MakePlanKey(engine.Name(), sel, features, coords)
	plan, err := face.plan(key, PlanRequest{
		Selection: sel,
		Features:  features,
		Coords:    coords,
		Specs:     specs,
	})
	if err != nil {
		return nil, err
	}
	// 5. Substitute
	out.Classify(tables.GDEF)
	if morx := font.Morx(); !plan.HasGSUB && !plan.HasGPOS && morx != nil {
		applyMorx(out, morx, sel, plan, tables.GDEF)
	} else {
		face.applyLookups(plan, plan.GSUB, tables.GSUB, ot.GSubFeatureType, out, rtl)
	}
	// 6. Advances
	for i := range out.Info {
		out.Pos[i].XAdvance = font.GlyphAdvance(out.Info[i].GlyphID)
	}
	// 7. Position
	if len(plan.GPOS) > 0 {
		face.applyLookups(plan, plan.GPOS, tables.GPOS, ot.GPosFeatureType, out, rtl)
		if s.Config.ZeroWidthMarks && zeroMarksMode(engine) == ZeroWidthMarksByGDEF {
			zeroUnattachedMarks(out)
		}
	} else if s.Config.FallbackPositioning {
		fallbackKern(out, font.Kern(), rtl)
		if !tables.GDEF.HasGlyphClasses() {
			fallbackMarks(out, font, rtl)
		}
	}
	remove := s.Config.RemoveDefaultIgnorables || buf.Flags&FlagRemoveDefaultIgnorables != 0
	hideDefaultIgnorables(out, font, remove)
	if hook, ok := engine.(ShapingEnginePostprocessHook); ok {
		hook.Postprocess(out, pctx)
	}
	// 8. Reverse
	if rtl {
		out.Reverse()
	}
	return out, nil
}

// mapRunes maps code-points to glyphs via the font's cmap. For right-to-left
// runs, mirrored characters are substituted if mirror is set.
// A base character followed by a variation selector is mapped with the font's
// variation sequences, if the font supports them.
func mapRunes(font ot.Font, buf UnicodeBuffer, mirror bool) []otlayout.GlyphInfo {
	variants, hasVariants := font.(ot.VariantGlyphs)
	infos := make([]otlayout.GlyphInfo, len(buf.Runes))
	for i, r := range buf.Runes {
		if mirror {
			if m, ok := mirrorRune(r); ok && font.GlyphIndex(m) != NOTDEF {
				r = m
			}
		}
		gid := font.GlyphIndex(r)
		if hasVariants && i+1 < len(buf.Runes) && isVariationSelector(buf.Runes[i+1]) {
			if g, ok := variants.GlyphVariant(r, buf.Runes[i+1]); ok {
				gid = g
			}
		}
		infos[i] = otlayout.GlyphInfo{
			GlyphID:   gid,
			Cluster:   buf.cluster(i),
			Codepoint: r,
		}
	}
	return infos
}

func isVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF) || (r >= 0x180B && r <= 0x180D) || r == 0x180F
}

// mergeVariationSelectors puts variation selectors into the cluster of their base.
func mergeVariationSelectors(buf *otlayout.Buffer) {
	for i := 1; i < buf.Len(); i++ {
		if isVariationSelector(buf.Info[i].Codepoint) {
			buf.MergeClusters(i-1, i)
		}
	}
}

// formGraphemeClusters merges the clusters of each grapheme, so that marks
// share the cluster of their base.
func formGraphemeClusters(buf *otlayout.Buffer, runes []rune) {
	if len(runes) != buf.Len() {
		return
	}
	var seg segmenter.Segmenter
	seg.Init(runes)
	iter := seg.GraphemeIterator()
	for iter.Next() {
		g := iter.Grapheme()
		if len(g.Text) > 1 {
			buf.MergeClusters(g.Offset, g.Offset+len(g.Text)-1)
		}
	}
}

// applyLookups applies plan lookups of one layout table, in order.
func (f *Face) applyLookups(plan *ShapePlan, lookups []PlanLookup, table *ot.LayoutTable,
	typ ot.LayoutTagType, buf *otlayout.Buffer, rtl bool) {
	//
	if table == nil || len(lookups) == 0 {
		return
	}
	ctx := &otlayout.ApplyContext{
		Buffer:      buf,
		GDEF:        f.Font.Layout().GDEF,
		Lookups:     table.Lookups,
		Table:       typ,
		PPEM:        f.ppem(),
		UnitsPerEm:  f.Font.UnitsPerEm(),
		RightToLeft: rtl,
	}
	for _, pl := range lookups {
		ctx.Gate = plan.gateFor(pl)
		ctx.Value = plan.valueFor(pl)
		otlayout.ApplyLookup(ctx, pl.Index, pl.Lookup)
	}
}

// applyMorx replaces GSUB by an AAT 'morx' engine, for fonts without OpenType
// layout tables.
func applyMorx(buf *otlayout.Buffer, morx ot.MorxShaper, sel SelectionContext, plan *ShapePlan,
	gdef *ot.GDefTable) {
	//
	req := ot.MorxRequest{
		Runes:       make([]rune, buf.Len()),
		Clusters:    make([]uint32, buf.Len()),
		Script:      ot.Tag(sel.Script),
		Language:    sel.Language.String(),
		RightToLeft: sel.IsRightToLeft(),
	}
	codepoints := make(map[uint32]rune, buf.Len())
	for i, info := range buf.Info {
		req.Runes[i], req.Clusters[i] = info.Codepoint, info.Cluster
		if _, ok := codepoints[info.Cluster]; !ok {
			codepoints[info.Cluster] = info.Codepoint
		}
	}
	for _, tag := range plan.order {
		if f := plan.features[tag]; f.global {
			req.Features = append(req.Features, ot.MorxFeature{Tag: tag, Value: f.value})
		}
	}
	glyphs := morx.ShapeMorx(req)
	tracer().Debugf("morx engine produced %d glyphs for %d code-points", len(glyphs), buf.Len())
	infos := make([]otlayout.GlyphInfo, len(glyphs))
	for i, g := range glyphs {
		infos[i] = otlayout.GlyphInfo{
			GlyphID:   g.Glyph,
			Cluster:   g.Cluster,
			Codepoint: codepoints[g.Cluster],
		}
	}
	buf.InitFromInfos(infos)
	buf.Classify(gdef)
}

// hideDefaultIgnorables hides glyphs of default ignorable characters (ZWJ,
// ZWNJ, variation selectors and the like) by replacing them with a zero-width
// space glyph, or removes them. Glyphs substituted by GSUB are left alone.
func hideDefaultIgnorables(buf *otlayout.Buffer, font ot.Font, remove bool) {
	space := font.GlyphIndex(' ')
	if space == NOTDEF {
		remove = true
	}
	for i := 0; i < buf.Len(); {
		info := &buf.Info[i]
		if !harfbuzz.IsDefaultIgnorable(info.Codepoint) || info.GlyphID != font.GlyphIndex(info.Codepoint) {
			i++
			continue
		}
		if remove {
			buf.RemoveRange(i, i+1)
			continue
		}
		info.GlyphID = space
		buf.Pos[i] = otlayout.GlyphPosition{}
		i++
	}
}

func zeroMarksMode(engine ShapingEngine) ZeroWidthMarksMode {
	if policy, ok := engine.(ShapingEnginePolicy); ok {
		return policy.ZeroMarkWidths()
	}
	return ZeroWidthMarksByGDEF
}
