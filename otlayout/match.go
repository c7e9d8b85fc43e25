package otlayout

import "github.com/npillmayer/textshaping/ot"

// Glyph sequence matching for ligatures and contextual lookups. All matching is
// skip-aware: glyphs skipped by the lookup flags of the current lookup are
// stepped over and never take part in a match.

// glyphMatcher tests the k-th glyph of a sequence.
type glyphMatcher func(k int, info *GlyphInfo) bool

func matchGlyphIDs(glyphs []ot.GlyphIndex) glyphMatcher {
	return func(k int, info *GlyphInfo) bool {
		return info.GlyphID == glyphs[k]
	}
}

func matchClasses(cd ot.ClassDefinitions, classes []uint16) glyphMatcher {
	return func(k int, info *GlyphInfo) bool {
		return cd.Lookup(info.GlyphID) == classes[k]
	}
}

func matchCoverages(covs []ot.Coverage) glyphMatcher {
	return func(k int, info *GlyphInfo) bool {
		return covs[k].Contains(info.GlyphID)
	}
}

// matchInput matches count glyphs following the glyph at start. It returns the
// positions of all glyphs of the input sequence, including start. Matching
// stays within a window of maxContextWindow glyphs, and every matched glyph
// has to pass the gate of the lookup.
func (ctx *ApplyContext) matchInput(infos []GlyphInfo, start, count int, match glyphMatcher) ([]int, bool) {
	positions := make([]int, 1, count+1)
	positions[0] = start
	limit := start + maxContextWindow
	j := start + 1
	for k := 0; k < count; k++ {
		j = ctx.nextEligible(infos, j, limit)
		if j < 0 || !ctx.gateOpen(&infos[j]) || !match(k, &infos[j]) {
			return nil, false
		}
		positions = append(positions, j)
		j++
	}
	return positions, true
}

// matchBacktrack matches count glyphs backwards, starting at position from.
// The first glyph tested is the one nearest to the input sequence.
func (ctx *ApplyContext) matchBacktrack(infos []GlyphInfo, from, count int, match glyphMatcher) bool {
	j := from
	for k := 0; k < count; k++ {
		j = ctx.prevEligible(infos, j)
		if j < 0 || !match(k, &infos[j]) {
			return false
		}
		j--
	}
	return true
}

// matchLookahead matches count glyphs forward, starting at position from.
func (ctx *ApplyContext) matchLookahead(infos []GlyphInfo, from, count int, match glyphMatcher) bool {
	j := from
	for k := 0; k < count; k++ {
		j = ctx.nextEligible(infos, j, len(infos))
		if j < 0 || !match(k, &infos[j]) {
			return false
		}
		j++
	}
	return true
}

// backtrackView returns the glyph sequence preceding input position pos, and the
// position of the nearest glyph in it. While GSUB writes to an output
// sequence, the glyphs already processed live there.
func (ctx *ApplyContext) backtrackView(pos int) ([]GlyphInfo, int) {
	buf := ctx.Buffer
	if buf.outActive {
		return buf.out, len(buf.out) - 1
	}
	return buf.Info, pos - 1
}

// matchContext matches a (chained) sequence context subtable at input position
// pos. On success it returns the positions of the input sequence and the lookup
// records of the first matching rule.
func (ctx *ApplyContext) matchContext(sub ot.Subtable, pos int) ([]int, []ot.SequenceLookupRecord, bool) {
	infos := ctx.Buffer.Info
	g := infos[pos].GlyphID
	switch st := sub.(type) {
	case *ot.SequenceContextFmt1:
		inx, ok := st.Cov.Match(g)
		if !ok || inx >= len(st.RuleSets) {
			return nil, nil, false
		}
		for _, rule := range st.RuleSets[inx] {
			if positions, ok := ctx.matchInput(infos, pos, len(rule.Input), matchGlyphIDs(rule.Input)); ok {
				return positions, rule.Records, true
			}
		}
	case *ot.SequenceContextFmt2:
		if !st.Cov.Contains(g) {
			return nil, nil, false
		}
		cls := int(st.ClassDef.Lookup(g))
		if cls >= len(st.RuleSets) {
			return nil, nil, false
		}
		for _, rule := range st.RuleSets[cls] {
			if positions, ok := ctx.matchInput(infos, pos, len(rule.Input), matchClasses(st.ClassDef, rule.Input)); ok {
				return positions, rule.Records, true
			}
		}
	case *ot.SequenceContextFmt3:
		if len(st.InputCoverages) == 0 || !st.InputCoverages[0].Contains(g) {
			return nil, nil, false
		}
		rest := st.InputCoverages[1:]
		if positions, ok := ctx.matchInput(infos, pos, len(rest), matchCoverages(rest)); ok {
			return positions, st.Records, true
		}
	case *ot.ChainedSequenceContextFmt1:
		inx, ok := st.Cov.Match(g)
		if !ok || inx >= len(st.RuleSets) {
			return nil, nil, false
		}
		for _, rule := range st.RuleSets[inx] {
			positions, ok := ctx.matchChain(pos, len(rule.Input), len(rule.Backtrack), len(rule.Lookahead),
				matchGlyphIDs(rule.Input), matchGlyphIDs(rule.Backtrack), matchGlyphIDs(rule.Lookahead))
			if ok {
				return positions, rule.Records, true
			}
		}
	case *ot.ChainedSequenceContextFmt2:
		if !st.Cov.Contains(g) {
			return nil, nil, false
		}
		cls := int(st.InputClassDef.Lookup(g))
		if cls >= len(st.RuleSets) {
			return nil, nil, false
		}
		for _, rule := range st.RuleSets[cls] {
			positions, ok := ctx.matchChain(pos, len(rule.Input), len(rule.Backtrack), len(rule.Lookahead),
				matchClasses(st.InputClassDef, rule.Input),
				matchClasses(st.BacktrackClassDef, rule.Backtrack),
				matchClasses(st.LookaheadClassDef, rule.Lookahead))
			if ok {
				return positions, rule.Records, true
			}
		}
	case *ot.ChainedSequenceContextFmt3:
		if len(st.InputCoverages) == 0 || !st.InputCoverages[0].Contains(g) {
			return nil, nil, false
		}
		rest := st.InputCoverages[1:]
		positions, ok := ctx.matchChain(pos, len(rest), len(st.BacktrackCoverages), len(st.LookaheadCoverages),
			matchCoverages(rest), matchCoverages(st.BacktrackCoverages), matchCoverages(st.LookaheadCoverages))
		if ok {
			return positions, st.Records, true
		}
	}
	return nil, nil, false
}

// matchChain matches input, backtrack and lookahead of a chained rule. Input
// counts exclude the first glyph, at position pos.
func (ctx *ApplyContext) matchChain(pos, nInput, nBacktrack, nLookahead int,
	input, backtrack, lookahead glyphMatcher) ([]int, bool) {
	//
	infos := ctx.Buffer.Info
	positions, ok := ctx.matchInput(infos, pos, nInput, input)
	if !ok {
		return nil, false
	}
	bt, from := ctx.backtrackView(pos)
	if !ctx.matchBacktrack(bt, from, nBacktrack, backtrack) {
		return nil, false
	}
	last := positions[len(positions)-1]
	if !ctx.matchLookahead(infos, last+1, nLookahead, lookahead) {
		return nil, false
	}
	return positions, true
}
