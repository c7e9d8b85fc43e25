package otfont

import (
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/textshaping/ot"
)

// decoder converts go-text tables into the shaping model. Device tables of
// variable fonts are resolved against coords while decoding.
type decoder struct {
	store  tables.ItemVarStore
	coords []tables.Coord
	diag   *ot.Diagnostics
}

// coord converts a normalized F2Dot14 coordinate.
func coord(c tables.Coord) float32 {
	return float32(c) / (1 << 14)
}

func glyphs(gids []tables.GlyphID) []ot.GlyphIndex {
	if len(gids) == 0 {
		return nil
	}
	out := make([]ot.GlyphIndex, len(gids))
	for i, g := range gids {
		out[i] = ot.GlyphIndex(g)
	}
	return out
}

func indices(inx []uint16) []int {
	out := make([]int, len(inx))
	for i, x := range inx {
		out[i] = int(x)
	}
	return out
}

// --- Coverage and class definitions ----------------------------------------

func coverage(cov tables.Coverage) ot.Coverage {
	switch c := cov.(type) {
	case tables.Coverage1:
		return ot.NewGlyphCoverage(glyphs(c.Glyphs)...)
	case tables.Coverage2:
		ranges := make([]ot.CoverageRange, len(c.Ranges))
		for i, r := range c.Ranges {
			ranges[i] = ot.CoverageRange{
				Start:      ot.GlyphIndex(r.StartGlyphID),
				End:        ot.GlyphIndex(r.EndGlyphID),
				StartIndex: r.StartCoverageIndex,
			}
		}
		return ot.NewRangeCoverage(ranges...)
	}
	return ot.Coverage{}
}

func coverages(covs []tables.Coverage) []ot.Coverage {
	if len(covs) == 0 {
		return nil
	}
	out := make([]ot.Coverage, len(covs))
	for i, c := range covs {
		out[i] = coverage(c)
	}
	return out
}

func classDef(cdef tables.ClassDef) ot.ClassDefinitions {
	switch c := cdef.(type) {
	case tables.ClassDef1:
		return ot.NewClassArray(ot.GlyphIndex(c.StartGlyphID), c.ClassValueArray...)
	case tables.ClassDef2:
		ranges := make([]ot.ClassRange, len(c.ClassRangeRecords))
		for i, r := range c.ClassRangeRecords {
			ranges[i] = ot.ClassRange{
				Start: ot.GlyphIndex(r.StartGlyphID),
				End:   ot.GlyphIndex(r.EndGlyphID),
				Class: r.Class,
			}
		}
		return ot.NewClassRanges(ranges...)
	}
	return ot.ClassDefinitions{}
}

// classCount returns the number of classes of cdef, including class 0.
func classCount(cdef tables.ClassDef) int {
	if cdef == nil {
		return 1
	}
	return max(int(cdef.Extent()), 1)
}

// --- GDEF ------------------------------------------------------------------

func (d *decoder) gdef(t tables.GDEF) *ot.GDefTable {
	if t.GlyphClassDef == nil && t.MarkAttachClass == nil && len(t.MarkGlyphSetsDef.Coverages) == 0 {
		return nil
	}
	return &ot.GDefTable{
		GlyphClassDef:          classDef(t.GlyphClassDef),
		MarkAttachmentClassDef: classDef(t.MarkAttachClass),
		MarkGlyphSets:          coverages(t.MarkGlyphSetsDef.Coverages),
	}
}

// --- Script, feature and variation lists -----------------------------------

func langSys(ls tables.LangSys) ot.LangSys {
	req := ot.NoRequiredFeature
	if ls.RequiredFeatureIndex != 0xFFFF {
		req = int(ls.RequiredFeatureIndex)
	}
	return ot.LangSys{RequiredFeature: req, FeatureIndices: indices(ls.FeatureIndices)}
}

// layoutTable decodes the parts shared by GSUB and GPOS. Lookups are
// decoded by the caller.
func (d *decoder) layoutTable(typ ot.LayoutTagType, l font.Layout) *ot.LayoutTable {
	table := ot.T(typ.String())
	t := &ot.LayoutTable{Type: typ}
	for _, f := range l.Features {
		t.Features = append(t.Features, ot.FeatureRecord{
			Tag:           ot.Tag(f.Tag),
			LookupIndices: indices(f.LookupListIndices),
		})
	}
	checked := func(script ot.Tag, ls ot.LangSys) ot.LangSys {
		for _, fi := range ls.FeatureIndices {
			if fi >= len(t.Features) {
				d.diag.AddError(table, "ScriptList",
					fmt.Sprintf("script %s references feature %d of %d", script, fi, len(t.Features)),
					ot.SeverityMinor)
			}
		}
		return ls
	}
	for _, s := range l.Scripts {
		rec := ot.ScriptRecord{Tag: ot.Tag(s.Tag)}
		if s.DefaultLangSys != nil {
			ls := checked(rec.Tag, langSys(*s.DefaultLangSys))
			rec.DefaultLang = &ls
		}
		for i, r := range s.LangSysRecords {
			if i >= len(s.LangSys) {
				break
			}
			rec.LangSys = append(rec.LangSys, ot.LangSysRecord{
				Tag:     ot.Tag(r.Tag),
				LangSys: checked(rec.Tag, langSys(s.LangSys[i])),
			})
		}
		t.Scripts = append(t.Scripts, rec)
	}
	for _, fv := range l.FeatureVariations {
		var v ot.FeatureVariation
		for _, c := range fv.ConditionSet.Conditions {
			v.Conditions = append(v.Conditions, ot.AxisCondition{
				Axis: int(c.AxisIndex),
				Min:  coord(c.FilterRangeMinValue),
				Max:  coord(c.FilterRangeMaxValue),
			})
		}
		for _, s := range fv.Substitutions.Substitutions {
			v.Substitutions = append(v.Substitutions, ot.FeatureSubstitution{
				FeatureIndex:  int(s.FeatureIndex),
				LookupIndices: indices(s.AlternateFeature.LookupListIndices),
			})
		}
		t.FeatureVariations = append(t.FeatureVariations, v)
	}
	return t
}

// dropped records a subtable the decoder cannot represent.
func (d *decoder) dropped(table ot.Tag, lookup, subtable int, issue string) {
	tracer().Infof("%s lookup %d: subtable %d dropped: %s", table, lookup, subtable, issue)
	d.diag.AddError(table, fmt.Sprintf("lookup %d", lookup),
		fmt.Sprintf("subtable %d dropped: %s", subtable, issue), ot.SeverityMinor)
}

// --- Contextual subtables --------------------------------------------------

func lookupRecords(recs []tables.SequenceLookupRecord) []ot.SequenceLookupRecord {
	out := make([]ot.SequenceLookupRecord, len(recs))
	for i, r := range recs {
		out[i] = ot.SequenceLookupRecord{SequenceIndex: r.SequenceIndex, LookupListIndex: r.LookupListIndex}
	}
	return out
}

func classes(seq []tables.GlyphID) []uint16 {
	return append([]uint16(nil), seq...)
}

func sequenceContext1(cov tables.Coverage, t tables.SequenceContextFormat1) *ot.SequenceContextFmt1 {
	st := &ot.SequenceContextFmt1{Cov: coverage(cov), RuleSets: make([][]ot.SequenceRule, len(t.SeqRuleSet))}
	for i, set := range t.SeqRuleSet {
		for _, r := range set.SeqRule {
			st.RuleSets[i] = append(st.RuleSets[i], ot.SequenceRule{
				Input:   glyphs(r.InputSequence),
				Records: lookupRecords(r.SeqLookupRecords),
			})
		}
	}
	return st
}

func sequenceContext2(cov tables.Coverage, t tables.SequenceContextFormat2) *ot.SequenceContextFmt2 {
	st := &ot.SequenceContextFmt2{
		Cov:      coverage(cov),
		ClassDef: classDef(t.ClassDef),
		RuleSets: make([][]ot.ClassSequenceRule, len(t.ClassSeqRuleSet)),
	}
	for i, set := range t.ClassSeqRuleSet {
		for _, r := range set.SeqRule {
			st.RuleSets[i] = append(st.RuleSets[i], ot.ClassSequenceRule{
				Input:   classes(r.InputSequence),
				Records: lookupRecords(r.SeqLookupRecords),
			})
		}
	}
	return st
}

func sequenceContext3(t tables.SequenceContextFormat3) *ot.SequenceContextFmt3 {
	return &ot.SequenceContextFmt3{
		InputCoverages: coverages(t.Coverages),
		Records:        lookupRecords(t.SeqLookupRecords),
	}
}

func chainedContext1(cov tables.Coverage, t tables.ChainedSequenceContextFormat1) *ot.ChainedSequenceContextFmt1 {
	st := &ot.ChainedSequenceContextFmt1{
		Cov:      coverage(cov),
		RuleSets: make([][]ot.ChainedSequenceRule, len(t.ChainedSeqRuleSet)),
	}
	for i, set := range t.ChainedSeqRuleSet {
		for _, r := range set.ChainedSeqRules {
			st.RuleSets[i] = append(st.RuleSets[i], ot.ChainedSequenceRule{
				Backtrack: glyphs(r.BacktrackSequence),
				Input:     glyphs(r.InputSequence),
				Lookahead: glyphs(r.LookaheadSequence),
				Records:   lookupRecords(r.SeqLookupRecords),
			})
		}
	}
	return st
}

func chainedContext2(cov tables.Coverage, t tables.ChainedSequenceContextFormat2) *ot.ChainedSequenceContextFmt2 {
	st := &ot.ChainedSequenceContextFmt2{
		Cov:               coverage(cov),
		BacktrackClassDef: classDef(t.BacktrackClassDef),
		InputClassDef:     classDef(t.InputClassDef),
		LookaheadClassDef: classDef(t.LookaheadClassDef),
		RuleSets:          make([][]ot.ChainedClassRule, len(t.ChainedClassSeqRuleSet)),
	}
	for i, set := range t.ChainedClassSeqRuleSet {
		for _, r := range set.ChainedSeqRules {
			st.RuleSets[i] = append(st.RuleSets[i], ot.ChainedClassRule{
				Backtrack: classes(r.BacktrackSequence),
				Input:     classes(r.InputSequence),
				Lookahead: classes(r.LookaheadSequence),
				Records:   lookupRecords(r.SeqLookupRecords),
			})
		}
	}
	return st
}

func chainedContext3(t tables.ChainedSequenceContextFormat3) *ot.ChainedSequenceContextFmt3 {
	return &ot.ChainedSequenceContextFmt3{
		BacktrackCoverages: coverages(t.BacktrackCoverages),
		InputCoverages:     coverages(t.InputCoverages),
		LookaheadCoverages: coverages(t.LookaheadCoverages),
		Records:            lookupRecords(t.SeqLookupRecords),
	}
}

// decodeContext decodes the context subtables of GSUB and GPOS, which go-text
// keeps as distinct types of identical layout.
func decodeContext(data any) ot.Subtable {
	switch c := data.(type) {
	case tables.ContextualSubs1:
		return sequenceContext1(c.Cov(), tables.SequenceContextFormat1(c))
	case tables.ContextualPos1:
		return sequenceContext1(c.Cov(), tables.SequenceContextFormat1(c))
	case tables.ContextualSubs2:
		return sequenceContext2(c.Cov(), tables.SequenceContextFormat2(c))
	case tables.ContextualPos2:
		return sequenceContext2(c.Cov(), tables.SequenceContextFormat2(c))
	case tables.ContextualSubs3:
		return sequenceContext3(tables.SequenceContextFormat3(c))
	case tables.ContextualPos3:
		return sequenceContext3(tables.SequenceContextFormat3(c))
	case tables.ChainedContextualSubs1:
		return chainedContext1(c.Cov(), tables.ChainedSequenceContextFormat1(c))
	case tables.ChainedContextualPos1:
		return chainedContext1(c.Cov(), tables.ChainedSequenceContextFormat1(c))
	case tables.ChainedContextualSubs2:
		return chainedContext2(c.Cov(), tables.ChainedSequenceContextFormat2(c))
	case tables.ChainedContextualPos2:
		return chainedContext2(c.Cov(), tables.ChainedSequenceContextFormat2(c))
	case tables.ChainedContextualSubs3:
		return chainedContext3(tables.ChainedSequenceContextFormat3(c))
	case tables.ChainedContextualPos3:
		return chainedContext3(tables.ChainedSequenceContextFormat3(c))
	}
	return nil
}

// --- Value records, anchors and device tables ------------------------------

// delta returns the variation delta of a VariationIndex table for the
// font's coordinates. Hinting device tables yield 0.
func (d *decoder) delta(dev tables.DeviceTable) int16 {
	v, ok := dev.(tables.DeviceVariation)
	if !ok || len(d.coords) == 0 {
		return 0
	}
	return int16(math.Round(float64(d.store.GetDelta(tables.VariationStoreIndex(v), d.coords))))
}

func hinting(dev tables.DeviceTable) *ot.DeviceTable {
	if h, ok := dev.(tables.DeviceHinting); ok {
		return &ot.DeviceTable{StartSize: h.StartSize, EndSize: h.EndSize, Deltas: h.Values}
	}
	return nil
}

func (d *decoder) value(v tables.ValueRecord) ot.ValueRecord {
	return ot.ValueRecord{
		XPlacement: v.XPlacement + d.delta(v.XPlaDevice),
		YPlacement: v.YPlacement + d.delta(v.YPlaDevice),
		XAdvance:   v.XAdvance + d.delta(v.XAdvDevice),
		YAdvance:   v.YAdvance + d.delta(v.YAdvDevice),
		XPlaDevice: hinting(v.XPlaDevice),
		YPlaDevice: hinting(v.YPlaDevice),
		XAdvDevice: hinting(v.XAdvDevice),
		YAdvDevice: hinting(v.YAdvDevice),
	}
}

// anchor decodes an anchor table. Contour points of format 2 are not
// evaluated.
func (d *decoder) anchor(a tables.Anchor) ot.Option[ot.Anchor] {
	switch a := a.(type) {
	case tables.AnchorFormat1:
		return ot.Some(ot.Anchor{X: a.XCoordinate, Y: a.YCoordinate})
	case tables.AnchorFormat2:
		return ot.Some(ot.Anchor{X: a.XCoordinate, Y: a.YCoordinate})
	case tables.AnchorFormat3:
		return ot.Some(ot.Anchor{
			X:       a.XCoordinate + d.delta(a.XDevice),
			Y:       a.YCoordinate + d.delta(a.YDevice),
			XDevice: hinting(a.XDevice),
			YDevice: hinting(a.YDevice),
		})
	}
	return ot.None[ot.Anchor]()
}
