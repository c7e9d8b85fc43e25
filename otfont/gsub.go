package otfont

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/textshaping/ot"
)

// gsub decodes table GSUB. A font without GSUB yields nil.
func (d *decoder) gsub(g font.GSUB) *ot.LayoutTable {
	if len(g.Lookups) == 0 && len(g.Scripts) == 0 {
		return nil
	}
	t := d.layoutTable(ot.GSubFeatureType, g.Layout)
	t.Lookups = make([]*ot.Lookup, len(g.Lookups))
	gsubTag := ot.T("GSUB")
	for i, lk := range g.Lookups {
		l := &ot.Lookup{
			Flag:             ot.LayoutTableLookupFlag(lk.Flag),
			MarkFilteringSet: lk.MarkFilteringSet,
		}
		for j, st := range lk.Subtables {
			sub, typ := gsubSubtable(st)
			switch {
			case sub == nil:
				d.dropped(gsubTag, i, j, fmt.Sprintf("unsupported type %T", st))
				continue
			case l.Type == 0:
				l.Type = typ
			case l.Type != typ:
				d.dropped(gsubTag, i, j, fmt.Sprintf("type %s in lookup of type %s",
					typ.GSubString(), l.Type.GSubString()))
				continue
			}
			l.Subtables = append(l.Subtables, sub)
		}
		t.Lookups[i] = l
	}
	return t
}

// gsubSubtable converts a GSUB subtable together with its lookup type.
// Unknown subtables return nil.
func gsubSubtable(st tables.GSUBLookup) (ot.Subtable, ot.LayoutTableLookupType) {
	switch st := st.(type) {
	case tables.SingleSubs:
		switch data := st.Data.(type) {
		case tables.SingleSubstData1:
			return &ot.SingleSubstFmt1{
				Cov:          coverage(data.Coverage),
				DeltaGlyphID: data.DeltaGlyphID,
			}, ot.GSubLookupTypeSingle
		case tables.SingleSubstData2:
			return &ot.SingleSubstFmt2{
				Cov:                coverage(data.Coverage),
				SubstituteGlyphIDs: glyphs(data.SubstituteGlyphIDs),
			}, ot.GSubLookupTypeSingle
		}
	case tables.MultipleSubs:
		seqs := make([][]ot.GlyphIndex, len(st.Sequences))
		for i, seq := range st.Sequences {
			seqs[i] = glyphs(seq.SubstituteGlyphIDs)
		}
		return &ot.MultipleSubst{Cov: coverage(st.Coverage), Sequences: seqs}, ot.GSubLookupTypeMultiple
	case tables.AlternateSubs:
		alts := make([][]ot.GlyphIndex, len(st.AlternateSets))
		for i, set := range st.AlternateSets {
			alts[i] = glyphs(set.AlternateGlyphIDs)
		}
		return &ot.AlternateSubst{Cov: coverage(st.Coverage), Alternates: alts}, ot.GSubLookupTypeAlternate
	case tables.LigatureSubs:
		sets := make([][]ot.LigatureRule, len(st.LigatureSets))
		for i, set := range st.LigatureSets {
			for _, lig := range set.Ligatures {
				sets[i] = append(sets[i], ot.LigatureRule{
					Components: glyphs(lig.ComponentGlyphIDs),
					Ligature:   ot.GlyphIndex(lig.LigatureGlyph),
				})
			}
		}
		return &ot.LigatureSubst{Cov: coverage(st.Coverage), LigatureSets: sets}, ot.GSubLookupTypeLigature
	case tables.ContextualSubs:
		if sub := decodeContext(st.Data); sub != nil {
			return sub, ot.GSubLookupTypeContext
		}
	case tables.ChainedContextualSubs:
		if sub := decodeContext(st.Data); sub != nil {
			return sub, ot.GSubLookupTypeChainingContext
		}
	case tables.ReverseChainSingleSubs:
		return &ot.ReverseChainSingleSubst{
			Cov:                coverage(st.Cov()),
			BacktrackCoverages: coverages(st.BacktrackCoverages),
			LookaheadCoverages: coverages(st.LookaheadCoverages),
			SubstituteGlyphIDs: glyphs(st.SubstituteGlyphIDs),
		}, ot.GSubLookupTypeReverseChaining
	}
	return nil, 0
}
