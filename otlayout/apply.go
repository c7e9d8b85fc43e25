package otlayout

import (
	"github.com/npillmayer/textshaping/ot"
)

// maxContextWindow bounds the number of glyphs inspected when matching the
// components of a ligature or the input sequence of a contextual rule.
const maxContextWindow = 64

// maxNestingLevel bounds recursion of lookups called from contextual lookups.
const maxNestingLevel = 8

// ApplyContext carries everything the lookup engine needs to apply a lookup to
// a buffer.
type ApplyContext struct {
	Buffer  *Buffer          // glyph buffer to operate on
	GDEF    *ot.GDefTable    // glyph definitions of the font, may be nil
	Lookups []*ot.Lookup     // the complete lookup list, for nested lookups
	Table   ot.LayoutTagType // GSUB or GPOS
	// Gate tells if the current lookup is enabled for a glyph. A nil gate
	// enables the lookup for all glyphs.
	Gate func(info *GlyphInfo) bool
	// Value returns the feature value for a glyph, used for selecting
	// alternates. A nil function or 0 selects the first alternate.
	Value       func(info *GlyphInfo) uint32
	PPEM        uint16 // pixels per em for device tables; 0 disables device deltas
	UnitsPerEm  uint16
	RightToLeft bool // run direction, relevant for mark offsets

	lookup      *ot.Lookup // lookup currently applied
	lookupIndex int
	nesting     int
}

// ApplyLookup applies a single lookup to the whole buffer of ctx, respecting
// the gate of ctx. It returns true if the lookup changed anything.
func ApplyLookup(ctx *ApplyContext, lookupIndex int, lookup *ot.Lookup) bool {
	if ctx == nil || ctx.Buffer == nil || lookup == nil || ctx.Buffer.Len() == 0 {
		return false
	}
	lookup = lookup.Unwrapped()
	ctx.lookup, ctx.lookupIndex, ctx.nesting = lookup, lookupIndex, 0
	if ctx.Table == ot.GSubFeatureType {
		tracer().Debugf("apply GSUB lookup #%d of type %s", lookupIndex, lookup.Type.GSubString())
		if lookup.Type == ot.GSubLookupTypeReverseChaining {
			return applyReverseChaining(ctx)
		}
		return applyGSubLookup(ctx)
	}
	tracer().Debugf("apply GPOS lookup #%d of type %s", lookupIndex, lookup.Type.GPosString())
	return applyGPosLookup(ctx)
}

// applyGSubLookup runs the write cursor over the buffer and tries the lookup
// at every eligible position.
func applyGSubLookup(ctx *ApplyContext) bool {
	buf := ctx.Buffer
	buf.ClearOutput()
	applied := false
	for buf.idx < len(buf.Info) {
		info := &buf.Info[buf.idx]
		if ctx.gateOpen(info) && !ctx.skipGlyph(info) && applySubstAt(ctx) {
			applied = true
			continue
		}
		buf.NextGlyph()
	}
	buf.SwapBuffers()
	return applied
}

// applyGPosLookup iterates over the buffer in place. Lookup subtables return
// the position to continue with.
func applyGPosLookup(ctx *ApplyContext) bool {
	buf := ctx.Buffer
	assertThat(len(buf.Info) == len(buf.Pos), "glyph buffer out of sync")
	applied := false
	for i := 0; i < len(buf.Info); {
		info := &buf.Info[i]
		if ctx.gateOpen(info) && !ctx.skipGlyph(info) {
			if next, ok := applyPosAt(ctx, i); ok {
				applied = true
				i = max(next, i+1)
				continue
			}
		}
		i++
	}
	return applied
}

func (ctx *ApplyContext) gateOpen(info *GlyphInfo) bool {
	return ctx.Gate == nil || ctx.Gate(info)
}

func (ctx *ApplyContext) featureValue(info *GlyphInfo) uint32 {
	if ctx.Value == nil {
		return 0
	}
	return ctx.Value(info)
}

// nestedLookup returns a lookup referenced from a sequence lookup record.
func (ctx *ApplyContext) nestedLookup(inx uint16) *ot.Lookup {
	if int(inx) >= len(ctx.Lookups) || ctx.Lookups[inx] == nil {
		tracer().Debugf("nested lookup index %d out of range", inx)
		return nil
	}
	return ctx.Lookups[inx].Unwrapped()
}

// --- Glyph skipping --------------------------------------------------------

// skipGlyph checks if a glyph has to be skipped by the current lookup, as
// required by the lookup flags.
func (ctx *ApplyContext) skipGlyph(info *GlyphInfo) bool {
	if ctx.lookup == nil {
		return false
	}
	flag := ctx.lookup.Flag
	switch info.class {
	case ot.BaseGlyph:
		return flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0
	case ot.LigatureGlyph:
		return flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0
	case ot.MarkGlyph:
		if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
			return true
		}
		if flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
			return !ctx.GDEF.InMarkGlyphSet(int(ctx.lookup.MarkFilteringSet), info.GlyphID)
		}
		if matype := flag.MarkAttachmentType(); matype != 0 {
			return ctx.GDEF.MarkAttachClass(info.GlyphID) != matype
		}
	}
	return false
}

// nextEligible returns the first position >= from in infos which is not skipped,
// or -1. Positions at or beyond limit are not considered.
func (ctx *ApplyContext) nextEligible(infos []GlyphInfo, from, limit int) int {
	limit = min(limit, len(infos))
	for i := from; i < limit; i++ {
		if !ctx.skipGlyph(&infos[i]) {
			return i
		}
	}
	return -1
}

// prevEligible returns the last position <= from in infos which is not skipped,
// or -1.
func (ctx *ApplyContext) prevEligible(infos []GlyphInfo, from int) int {
	for i := min(from, len(infos)-1); i >= 0; i-- {
		if !ctx.skipGlyph(&infos[i]) {
			return i
		}
	}
	return -1
}

// reclassify updates the glyph class after a substitution.
func (ctx *ApplyContext) reclassify(info *GlyphInfo, fallback ot.GlyphClass) {
	if ctx.GDEF.HasGlyphClasses() {
		info.class = ctx.GDEF.GlyphClass(info.GlyphID)
	} else if fallback != ot.UnclassifiedGlyph {
		info.class = fallback
	}
}
