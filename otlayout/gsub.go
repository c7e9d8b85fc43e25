package otlayout

import "github.com/npillmayer/textshaping/ot"

// applySubstAt tries the subtables of the current GSUB lookup at the read
// position of the write cursor. Subtables are tried in order, the first one
// which applies wins. A successful subtable has advanced the cursor.
func applySubstAt(ctx *ApplyContext) bool {
	buf := ctx.Buffer
	g := buf.Info[buf.idx].GlyphID
	for _, sub := range ctx.lookup.Subtables {
		switch st := sub.(type) {
		case *ot.SingleSubstFmt1:
			if gsubLookupType1Fmt1(ctx, st, g) {
				return true
			}
		case *ot.SingleSubstFmt2:
			if gsubLookupType1Fmt2(ctx, st, g) {
				return true
			}
		case *ot.MultipleSubst:
			if gsubLookupType2Fmt1(ctx, st, g) {
				return true
			}
		case *ot.AlternateSubst:
			if gsubLookupType3Fmt1(ctx, st, g) {
				return true
			}
		case *ot.LigatureSubst:
			if gsubLookupType4Fmt1(ctx, st, g) {
				return true
			}
		case *ot.SequenceContextFmt1, *ot.SequenceContextFmt2, *ot.SequenceContextFmt3,
			*ot.ChainedSequenceContextFmt1, *ot.ChainedSequenceContextFmt2, *ot.ChainedSequenceContextFmt3:
			if gsubContext(ctx, sub) {
				return true
			}
		default:
			tracer().Debugf("GSUB lookup #%d: subtable type %T not applicable", ctx.lookupIndex, sub)
		}
	}
	return false
}

// GSUB LookupType 1: Single Substitution Subtable
//
// Single substitution (SingleSubst) subtables tell a client to replace a single glyph
// with another glyph. The subtables can be either of two formats. Both formats require
// two distinct sets of glyph indices: one that defines input glyphs (specified in the
// Coverage table), and one that defines the output glyphs.

// GSUB LookupSubtable Type 1 Format 1 calculates the indices of the output glyphs, which
// are not explicitly defined in the subtable. To calculate an output glyph index,
// Format 1 adds a constant delta value to the input glyph index. Addition of deltas
// is modulo 65536.
func gsubLookupType1Fmt1(ctx *ApplyContext, st *ot.SingleSubstFmt1, g ot.GlyphIndex) bool {
	if !st.Cov.Contains(g) {
		return false
	}
	subst := ot.GlyphIndex(uint16(int(g) + int(st.DeltaGlyphID)))
	tracer().Debugf("OT lookup GSUB 1/1: subst %d for %d", subst, g)
	ctx.replaceGlyph(subst)
	return true
}

// GSUB LookupSubtable Type 1 Format 2 provides an array of output glyph indices
// (substituteGlyphIDs) explicitly matched to the input glyph indices specified in the
// Coverage table.
func gsubLookupType1Fmt2(ctx *ApplyContext, st *ot.SingleSubstFmt2, g ot.GlyphIndex) bool {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.SubstituteGlyphIDs) {
		return false
	}
	subst := st.SubstituteGlyphIDs[inx]
	tracer().Debugf("OT lookup GSUB 1/2: subst %d for %d", subst, g)
	ctx.replaceGlyph(subst)
	return true
}

// LookupType 2: Multiple Substitution Subtable
//
// A Multiple Substitution (MultipleSubst) subtable replaces a single glyph with more
// than one glyph, as when multiple glyphs replace a single ligature.
//
// For each input glyph listed in the Coverage table, a Sequence table defines the output
// glyphs. Inserted glyphs inherit the cluster of the input glyph. An empty sequence
// deletes the input glyph.
func gsubLookupType2Fmt1(ctx *ApplyContext, st *ot.MultipleSubst, g ot.GlyphIndex) bool {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Sequences) {
		return false
	}
	buf := ctx.Buffer
	seq := st.Sequences[inx]
	tracer().Debugf("OT lookup GSUB 2/1: subst %v for %d", seq, g)
	if len(seq) == 0 {
		buf.SkipGlyph()
		return true
	}
	class := buf.Info[buf.idx].class
	start := len(buf.out)
	buf.ReplaceGlyphs(1, seq)
	for i := start; i < len(buf.out); i++ {
		buf.out[i].ligComponents = 0
		ctx.reclassify(&buf.out[i], class)
	}
	return true
}

// LookupType 3: Alternate Substitution Subtable
//
// An Alternate Substitution (AlternateSubst) subtable identifies any number of aesthetic
// alternatives from which a user can choose a glyph variant to replace the input glyph.
//
// The feature value of the glyph selects the alternate: values 0 and 1 select the
// first alternate, value n selects alternate n-1. Selecting an alternate beyond
// the end of the set does not match.
func gsubLookupType3Fmt1(ctx *ApplyContext, st *ot.AlternateSubst, g ot.GlyphIndex) bool {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Alternates) || len(st.Alternates[inx]) == 0 {
		return false
	}
	alts := st.Alternates[inx]
	choice := 0
	if v := ctx.featureValue(&ctx.Buffer.Info[ctx.Buffer.idx]); v > 1 {
		choice = int(v) - 1
	}
	if choice >= len(alts) {
		tracer().Debugf("OT lookup GSUB 3/1: alternate %d of %d not present", choice, len(alts))
		return false
	}
	tracer().Debugf("OT lookup GSUB 3/1: subst %d for %d", alts[choice], g)
	ctx.replaceGlyph(alts[choice])
	return true
}

// LookupType 4: Ligature Substitution Subtable
//
// A Ligature Substitution (LigatureSubst) subtable identifies ligature substitutions where
// a single glyph replaces multiple glyphs. One LigatureSubst subtable can specify any number
// of ligature substitutions.
//
// The Coverage table specifies only the index of the first glyph component of each
// ligature set. Ligatures of a set are tried in order, the first complete match wins.
// Glyphs skipped by the lookup flags (usually marks) are kept and follow the ligature.
func gsubLookupType4Fmt1(ctx *ApplyContext, st *ot.LigatureSubst, g ot.GlyphIndex) bool {
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.LigatureSets) {
		return false
	}
	buf := ctx.Buffer
	for _, rule := range st.LigatureSets[inx] {
		positions, ok := ctx.matchInput(buf.Info, buf.idx, len(rule.Components), matchGlyphIDs(rule.Components))
		if !ok {
			continue
		}
		tracer().Debugf("OT lookup GSUB 4/1: ligature %d for %d glyphs", rule.Ligature, len(positions))
		ctx.ligate(positions, rule.Ligature)
		return true
	}
	return false
}

// ligate replaces the glyphs at positions with a ligature glyph. The ligature
// receives the minimum cluster of all glyphs in the matched range. Glyphs between
// the components are output after the ligature.
func (ctx *ApplyContext) ligate(positions []int, lig ot.GlyphIndex) {
	buf := ctx.Buffer
	first, last := positions[0], positions[len(positions)-1]
	cluster := buf.Info[first].Cluster
	for i := first + 1; i <= last; i++ {
		cluster = min(cluster, buf.Info[i].Cluster)
	}
	ligInfo := buf.Info[first]
	ligInfo.GlyphID = lig
	ligInfo.Cluster = cluster
	ligInfo.ligComponents = uint8(min(len(positions), 255))
	ctx.reclassify(&ligInfo, ot.LigatureGlyph)
	buf.outputInfo(ligInfo)
	for k := 1; k < len(positions); k++ {
		for j := positions[k-1] + 1; j < positions[k]; j++ {
			skipped := buf.Info[j]
			skipped.Cluster = cluster
			buf.outputInfo(skipped)
		}
	}
	buf.idx = last + 1
}

// LookupType 5 and 6: Contextual and Chained Contexts Substitution
//
// Contextual lookups match an input sequence, optionally surrounded by backtrack
// and lookahead sequences, and then apply nested lookups at positions of the
// input sequence. Nested lookups are restricted to single substitutions; they
// are applied in place, after which the matched input is moved to the output.
func gsubContext(ctx *ApplyContext, sub ot.Subtable) bool {
	buf := ctx.Buffer
	positions, records, ok := ctx.matchContext(sub, buf.idx)
	if !ok {
		return false
	}
	tracer().Debugf("OT lookup GSUB context: matched %d glyphs, %d records", len(positions), len(records))
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
			if nested.Type != ot.GSubLookupTypeSingle {
				tracer().Debugf("nested GSUB lookup #%d of type %s not executed",
					rec.LookupListIndex, nested.Type.GSubString())
				continue
			}
			ctx.lookup = nested
			ctx.substituteSingle(&buf.Info[positions[rec.SequenceIndex]])
			ctx.lookup = saved
		}
		ctx.nesting--
	}
	last := positions[len(positions)-1]
	for buf.idx <= last {
		buf.NextGlyph()
	}
	return true
}

// substituteSingle applies the single substitution subtables of the current
// lookup to a glyph in place.
func (ctx *ApplyContext) substituteSingle(info *GlyphInfo) bool {
	if ctx.skipGlyph(info) {
		return false
	}
	for _, sub := range ctx.lookup.Subtables {
		subst, ok := singleSubstitute(sub, info.GlyphID)
		if ok {
			tracer().Debugf("OT lookup GSUB 1 (nested): subst %d for %d", subst, info.GlyphID)
			info.GlyphID = subst
			ctx.reclassify(info, ot.UnclassifiedGlyph)
			return true
		}
	}
	return false
}

func singleSubstitute(sub ot.Subtable, g ot.GlyphIndex) (ot.GlyphIndex, bool) {
	switch st := sub.(type) {
	case *ot.SingleSubstFmt1:
		if st.Cov.Contains(g) {
			return ot.GlyphIndex(uint16(int(g) + int(st.DeltaGlyphID))), true
		}
	case *ot.SingleSubstFmt2:
		if inx, ok := st.Cov.Match(g); ok && inx < len(st.SubstituteGlyphIDs) {
			return st.SubstituteGlyphIDs[inx], true
		}
	}
	return 0, false
}

// LookupType 8: Reverse Chaining Contextual Single Substitution Subtable
//
// Reverse Chaining Contextual Single Substitution is applied in reverse logical order,
// from the end of the glyph sequence to its start. It substitutes a single glyph in
// place, and the substitution may be the context for preceding glyphs.
//
// Backtrack glyphs precede the current glyph in logical order (the right-to-left
// scan visits them after the current glyph), lookahead glyphs follow it.
func applyReverseChaining(ctx *ApplyContext) bool {
	buf := ctx.Buffer
	applied := false
	for i := len(buf.Info) - 1; i >= 0; i-- {
		info := &buf.Info[i]
		if !ctx.gateOpen(info) || ctx.skipGlyph(info) {
			continue
		}
		for _, sub := range ctx.lookup.Subtables {
			st, ok := sub.(*ot.ReverseChainSingleSubst)
			if !ok {
				continue
			}
			if gsubLookupType8Fmt1(ctx, st, i) {
				applied = true
				break
			}
		}
	}
	return applied
}

func gsubLookupType8Fmt1(ctx *ApplyContext, st *ot.ReverseChainSingleSubst, i int) bool {
	infos := ctx.Buffer.Info
	inx, ok := st.Cov.Match(infos[i].GlyphID)
	if !ok || inx >= len(st.SubstituteGlyphIDs) {
		return false
	}
	if !ctx.matchBacktrack(infos, i-1, len(st.BacktrackCoverages), matchCoverages(st.BacktrackCoverages)) {
		return false
	}
	if !ctx.matchLookahead(infos, i+1, len(st.LookaheadCoverages), matchCoverages(st.LookaheadCoverages)) {
		return false
	}
	tracer().Debugf("OT lookup GSUB 8/1: subst %d for %d", st.SubstituteGlyphIDs[inx], infos[i].GlyphID)
	infos[i].GlyphID = st.SubstituteGlyphIDs[inx]
	ctx.reclassify(&infos[i], ot.UnclassifiedGlyph)
	return true
}

// replaceGlyph substitutes the glyph at the read position of the write cursor
// and reclassifies the output glyph.
func (ctx *ApplyContext) replaceGlyph(g ot.GlyphIndex) {
	buf := ctx.Buffer
	buf.ReplaceGlyph(g)
	ctx.reclassify(&buf.out[len(buf.out)-1], ot.UnclassifiedGlyph)
}
