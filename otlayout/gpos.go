package otlayout

import "github.com/npillmayer/textshaping/ot"

// applyPosAt tries the subtables of the current GPOS lookup at position i. It
// returns the position to continue with.
func applyPosAt(ctx *ApplyContext, i int) (int, bool) {
	g := ctx.Buffer.Info[i].GlyphID
	for _, sub := range ctx.lookup.Subtables {
		var next int
		var ok bool
		switch st := sub.(type) {
		case *ot.SinglePosFmt1:
			next, ok = gposLookupType1Fmt1(ctx, st, g, i)
		case *ot.SinglePosFmt2:
			next, ok = gposLookupType1Fmt2(ctx, st, g, i)
		case *ot.PairPosFmt1:
			next, ok = gposLookupType2Fmt1(ctx, st, g, i)
		case *ot.PairPosFmt2:
			next, ok = gposLookupType2Fmt2(ctx, st, g, i)
		case *ot.CursivePos:
			next, ok = gposLookupType3Fmt1(ctx, st, g, i)
		case *ot.MarkBasePos:
			next, ok = gposLookupType4Fmt1(ctx, st, g, i)
		case *ot.MarkLigPos:
			next, ok = gposLookupType5Fmt1(ctx, st, g, i)
		case *ot.MarkMarkPos:
			next, ok = gposLookupType6Fmt1(ctx, st, g, i)
		case *ot.SequenceContextFmt1, *ot.SequenceContextFmt2, *ot.SequenceContextFmt3,
			*ot.ChainedSequenceContextFmt1, *ot.ChainedSequenceContextFmt2, *ot.ChainedSequenceContextFmt3:
			next, ok = gposContext(ctx, sub, i)
		default:
			tracer().Debugf("GPOS lookup #%d: subtable type %T not applicable", ctx.lookupIndex, sub)
		}
		if ok {
			return next, true
		}
	}
	return i, false
}

// --- Value records and anchors ---------------------------------------------

// deviceDelta scales a device table correction from pixels to design units.
func (ctx *ApplyContext) deviceDelta(dev *ot.DeviceTable) int32 {
	if dev == nil || ctx.PPEM == 0 {
		return 0
	}
	d := dev.Delta(ctx.PPEM)
	if d == 0 {
		return 0
	}
	if ctx.UnitsPerEm == 0 {
		return int32(d)
	}
	return int32(d * int(ctx.UnitsPerEm) / int(ctx.PPEM))
}

// applyValue adds a value record to a glyph position.
func (ctx *ApplyContext) applyValue(pos *GlyphPosition, v ot.ValueRecord) {
	pos.XOffset += int32(v.XPlacement) + ctx.deviceDelta(v.XPlaDevice)
	pos.YOffset += int32(v.YPlacement) + ctx.deviceDelta(v.YPlaDevice)
	pos.XAdvance += int32(v.XAdvance) + ctx.deviceDelta(v.XAdvDevice)
	pos.YAdvance += int32(v.YAdvance) + ctx.deviceDelta(v.YAdvDevice)
}

func (ctx *ApplyContext) anchorPoint(a ot.Anchor) (int32, int32) {
	return int32(a.X) + ctx.deviceDelta(a.XDevice), int32(a.Y) + ctx.deviceDelta(a.YDevice)
}

// GPOS LookupType 1: Single Adjustment Positioning Subtable
//
// A single adjustment positioning subtable (SinglePos) is used to adjust the placement or
// advance of a single glyph, such as a subscript or superscript. In addition, a SinglePos
// subtable is commonly used to implement lookup data for contextual positioning.

// GPOS LookupSubtable Type 1 Format 1 applies the same value record to every glyph
// in the Coverage table.
func gposLookupType1Fmt1(ctx *ApplyContext, st *ot.SinglePosFmt1, g ot.GlyphIndex, i int) (int, bool) {
	if !st.Cov.Contains(g) {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 1/1: adjust glyph %d at %d", g, i)
	ctx.applyValue(&ctx.Buffer.Pos[i], st.Value)
	return i + 1, true
}

// GPOS LookupSubtable Type 1 Format 2 provides an array of value records, one per
// glyph in the Coverage table.
func gposLookupType1Fmt2(ctx *ApplyContext, st *ot.SinglePosFmt2, g ot.GlyphIndex, i int) (int, bool) {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Values) {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 1/2: adjust glyph %d at %d", g, i)
	ctx.applyValue(&ctx.Buffer.Pos[i], st.Values[inx])
	return i + 1, true
}

// GPOS LookupType 2: Pair Adjustment Positioning Subtable
//
// A pair adjustment positioning subtable (PairPos) is used to adjust the placement or
// advances of two glyphs in relation to one another, for instance to specify kerning
// data for pairs of glyphs. The second glyph of a pair is the next glyph not skipped
// by the lookup flags.
//
// If the subtable carries a value record for the second glyph, the second glyph
// is consumed. Otherwise application continues with the second glyph, which may
// then start a pair of its own.

// GPOS LookupSubtable Type 2 Format 1 uses PairSet tables to identify the second
// glyph of a pair.
func gposLookupType2Fmt1(ctx *ApplyContext, st *ot.PairPosFmt1, g ot.GlyphIndex, i int) (int, bool) {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.PairSets) || st.PairSets[inx] == nil {
		return i, false
	}
	buf := ctx.Buffer
	j := ctx.nextEligible(buf.Info, i+1, len(buf.Info))
	if j < 0 {
		return i, false
	}
	rec, ok := st.PairSets[inx].FindGlyph(buf.Info[j].GlyphID)
	if !ok {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 2/1: pair %d|%d", g, buf.Info[j].GlyphID)
	return ctx.applyPair(i, j, rec.Value1, rec.Value2, st.ValueFormat2), true
}

// GPOS LookupSubtable Type 2 Format 2 defines pairs in terms of glyph classes.
// Class 1 applies to the first glyph, class 2 to the second glyph.
func gposLookupType2Fmt2(ctx *ApplyContext, st *ot.PairPosFmt2, g ot.GlyphIndex, i int) (int, bool) {
	if !st.Cov.Contains(g) || st.Records == nil {
		return i, false
	}
	buf := ctx.Buffer
	j := ctx.nextEligible(buf.Info, i+1, len(buf.Info))
	if j < 0 {
		return i, false
	}
	c1 := st.ClassDef1.Lookup(g)
	c2 := st.ClassDef2.Lookup(buf.Info[j].GlyphID)
	rec, ok := st.Records.Record(c1, c2)
	if !ok {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 2/2: pair %d|%d, classes %d|%d", g, buf.Info[j].GlyphID, c1, c2)
	return ctx.applyPair(i, j, rec.Value1, rec.Value2, st.ValueFormat2), true
}

func (ctx *ApplyContext) applyPair(i, j int, v1, v2 ot.ValueRecord, format2 ot.ValueFormat) int {
	ctx.applyValue(&ctx.Buffer.Pos[i], v1)
	ctx.applyValue(&ctx.Buffer.Pos[j], v2)
	if format2 != 0 {
		return j + 1
	}
	return j
}

// GPOS LookupType 3: Cursive Attachment Positioning Subtable
//
// Some cursive fonts are designed so that adjacent glyphs join when rendered with their
// default positioning. However, if positioning adjustments are needed to join the glyphs,
// a cursive attachment positioning (CursivePos) subtable can describe how to connect the
// glyphs by aligning two anchor points: the designated exit point of a glyph, and the
// designated entry point of the following glyph.
//
// Only the vertical offset of the following glyph is adjusted.
func gposLookupType3Fmt1(ctx *ApplyContext, st *ot.CursivePos, g ot.GlyphIndex, i int) (int, bool) {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.EntryExits) {
		return i, false
	}
	exit, ok := st.EntryExits[inx].Exit.Unwrap()
	if !ok {
		return i, false
	}
	buf := ctx.Buffer
	j := ctx.nextEligible(buf.Info, i+1, len(buf.Info))
	if j < 0 {
		return i, false
	}
	jnx, ok := st.Cov.Match(buf.Info[j].GlyphID)
	if !ok || jnx >= len(st.EntryExits) {
		return i, false
	}
	entry, ok := st.EntryExits[jnx].Entry.Unwrap()
	if !ok {
		return i, false
	}
	_, exitY := ctx.anchorPoint(exit)
	_, entryY := ctx.anchorPoint(entry)
	buf.Pos[j].YOffset = exitY - entryY
	tracer().Debugf("OT lookup GPOS 3/1: attach glyph at %d to %d, dy=%d", j, i, exitY-entryY)
	return j, true
}

// GPOS LookupType 4: Mark-to-Base Attachment Positioning Subtable
//
// The MarkToBase attachment (MarkBasePos) subtable is used to position combining mark
// glyphs with respect to base glyphs. The mark is positioned by aligning its anchor
// with the base anchor for the class of the mark.
//
// The base glyph is the nearest preceding glyph which is not a mark.
func gposLookupType4Fmt1(ctx *ApplyContext, st *ot.MarkBasePos, g ot.GlyphIndex, i int) (int, bool) {
	markInx, ok := st.MarkCoverage.Match(g)
	if !ok || markInx >= len(st.Marks) {
		return i, false
	}
	base := ctx.findMarkBase(i)
	if base < 0 {
		return i, false
	}
	baseInx, ok := st.BaseCoverage.Match(ctx.Buffer.Info[base].GlyphID)
	if !ok {
		return i, false
	}
	mark := st.Marks[markInx]
	baseAnchor, ok := st.Bases.Anchor(baseInx, int(mark.Class))
	if !ok {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 4/1: attach mark %d at %d to base at %d", g, i, base)
	ctx.attachMark(i, base, mark.Anchor, baseAnchor)
	return i + 1, true
}

// findMarkBase scans backwards from a mark for the nearest glyph which is not a
// mark and is not ignored by the current lookup's flags.
func (ctx *ApplyContext) findMarkBase(i int) int {
	infos := ctx.Buffer.Info
	for j := i - 1; j >= 0; j-- {
		if infos[j].class != ot.MarkGlyph && !ctx.skipGlyph(&infos[j]) {
			return j
		}
	}
	return -1
}

// GPOS LookupType 5: Mark-to-Ligature Attachment Positioning Subtable
//
// The MarkToLigature attachment (MarkLigPos) subtable is used to position combining
// mark glyphs with respect to ligature base glyphs. Each ligature component has its
// own set of anchors. The component a mark attaches to is given by the number of
// marks between the ligature and the mark, clamped to the number of components.
func gposLookupType5Fmt1(ctx *ApplyContext, st *ot.MarkLigPos, g ot.GlyphIndex, i int) (int, bool) {
	markInx, ok := st.MarkCoverage.Match(g)
	if !ok || markInx >= len(st.Marks) {
		return i, false
	}
	lig := ctx.findMarkBase(i)
	if lig < 0 {
		return i, false
	}
	ligInx, ok := st.LigatureCoverage.Match(ctx.Buffer.Info[lig].GlyphID)
	if !ok || ligInx >= len(st.Ligatures) {
		return i, false
	}
	components := st.Ligatures[ligInx]
	if len(components) == 0 {
		return i, false
	}
	comp := min(i-lig-1, len(components)-1)
	mark := st.Marks[markInx]
	ligAnchor, ok := components.Anchor(comp, int(mark.Class))
	if !ok {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 5/1: attach mark %d at %d to ligature at %d, component %d",
		g, i, lig, comp)
	ctx.attachMark(i, lig, mark.Anchor, ligAnchor)
	return i + 1, true
}

// GPOS LookupType 6: Mark-to-Mark Attachment Positioning Subtable
//
// The MarkToMark attachment (MarkMarkPos) subtable is identical in form to the
// MarkToBase attachment subtable, although its function is different. MarkToMark
// attachment defines the position of one mark relative to another mark, the
// immediately preceding one (with respect to the lookup flags).
func gposLookupType6Fmt1(ctx *ApplyContext, st *ot.MarkMarkPos, g ot.GlyphIndex, i int) (int, bool) {
	markInx, ok := st.Mark1Coverage.Match(g)
	if !ok || markInx >= len(st.Marks) {
		return i, false
	}
	infos := ctx.Buffer.Info
	prev := ctx.prevEligible(infos, i-1)
	if prev < 0 || infos[prev].class != ot.MarkGlyph {
		return i, false
	}
	mark2Inx, ok := st.Mark2Coverage.Match(infos[prev].GlyphID)
	if !ok {
		return i, false
	}
	mark := st.Marks[markInx]
	mark2Anchor, ok := st.Mark2s.Anchor(mark2Inx, int(mark.Class))
	if !ok {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS 6/1: attach mark %d at %d to mark at %d", g, i, prev)
	ctx.attachMark(i, prev, mark.Anchor, mark2Anchor)
	return i + 1, true
}

// attachMark positions the mark at index mark relative to the glyph at index base.
// The offset is relative to the pen position of the mark, which has zero advance.
// In logical order, the pen is moved by the glyphs between base and mark (and by
// the base itself, for left-to-right runs).
func (ctx *ApplyContext) attachMark(mark, base int, markAnchor, baseAnchor ot.Anchor) {
	pos := ctx.Buffer.Pos
	bx, by := ctx.anchorPoint(baseAnchor)
	mx, my := ctx.anchorPoint(markAnchor)
	p := &pos[mark]
	p.XOffset = bx - mx + pos[base].XOffset
	p.YOffset = by - my + pos[base].YOffset
	p.XAdvance, p.YAdvance = 0, 0
	if ctx.RightToLeft {
		for k := base + 1; k < mark; k++ {
			p.XOffset += pos[k].XAdvance
		}
	} else {
		for k := base; k < mark; k++ {
			p.XOffset -= pos[k].XAdvance
		}
	}
	ctx.Buffer.Info[mark].attached = true
}

// GPOS LookupType 7 and 8: Contextual and Chained Contexts Positioning
//
// Contextual positioning matches like contextual substitution and applies nested
// positioning lookups of any type at positions of the matched input sequence.
func gposContext(ctx *ApplyContext, sub ot.Subtable, i int) (int, bool) {
	positions, records, ok := ctx.matchContext(sub, i)
	if !ok {
		return i, false
	}
	tracer().Debugf("OT lookup GPOS context: matched %d glyphs, %d records", len(positions), len(records))
	if ctx.nesting < maxNestingLevel {
		saved := ctx.lookup
		ctx.nesting++
		for _, rec := range records {
			if int(rec.SequenceIndex) >= len(positions) {
				continue
			}
			nested := ctx.nestedLookup(rec.LookupListIndex)
			if nested == nil {
				continue
			}
			ctx.lookup = nested
			p := positions[rec.SequenceIndex]
			if !ctx.skipGlyph(&ctx.Buffer.Info[p]) {
				applyPosAt(ctx, p)
			}
			ctx.lookup = saved
		}
		ctx.nesting--
	}
	return positions[len(positions)-1] + 1, true
}
