package otfont

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/textshaping/ot"
)

// gpos decodes table GPOS. A font without GPOS yields nil.
func (d *decoder) gpos(g font.GPOS) *ot.LayoutTable {
	if len(g.Lookups) == 0 && len(g.Scripts) == 0 {
		return nil
	}
	t := d.layoutTable(ot.GPosFeatureType, g.Layout)
	t.Lookups = make([]*ot.Lookup, len(g.Lookups))
	gposTag := ot.T("GPOS")
	for i, lk := range g.Lookups {
		l := &ot.Lookup{
			Flag:             ot.LayoutTableLookupFlag(lk.Flag),
			MarkFilteringSet: lk.MarkFilteringSet,
		}
		for j, st := range lk.Subtables {
			sub, typ := d.gposSubtable(st)
			switch {
			case sub == nil:
				d.dropped(gposTag, i, j, fmt.Sprintf("unsupported type %T", st))
				continue
			case l.Type == 0:
				l.Type = typ
			case l.Type != typ:
				d.dropped(gposTag, i, j, fmt.Sprintf("type %s in lookup of type %s",
					typ.GPosString(), l.Type.GPosString()))
				continue
			}
			l.Subtables = append(l.Subtables, sub)
		}
		t.Lookups[i] = l
	}
	return t
}

// gposSubtable converts a GPOS subtable together with its lookup type.
// Unknown subtables return nil.
func (d *decoder) gposSubtable(st tables.GPOSLookup) (ot.Subtable, ot.LayoutTableLookupType) {
	switch st := st.(type) {
	case tables.SinglePos:
		switch data := st.Data.(type) {
		case tables.SinglePosData1:
			return &ot.SinglePosFmt1{
				Cov:   coverage(data.Cov()),
				Value: d.value(data.ValueRecord),
			}, ot.GPosLookupTypeSingle
		case tables.SinglePosData2:
			values := make([]ot.ValueRecord, len(data.ValueRecords))
			for i, v := range data.ValueRecords {
				values[i] = d.value(v)
			}
			return &ot.SinglePosFmt2{Cov: coverage(data.Cov()), Values: values}, ot.GPosLookupTypeSingle
		}
	case tables.PairPos:
		switch data := st.Data.(type) {
		case tables.PairPosData1:
			sets := make([]ot.PairSet, len(data.PairSets))
			for i := range data.PairSets {
				sets[i] = pairSet{set: data.PairSets[i], d: d}
			}
			return &ot.PairPosFmt1{
				Cov:          coverage(data.Cov()),
				ValueFormat1: ot.ValueFormat(data.ValueFormat1),
				ValueFormat2: ot.ValueFormat(data.ValueFormat2),
				PairSets:     sets,
			}, ot.GPosLookupTypePair
		case tables.PairPosData2:
			return &ot.PairPosFmt2{
				Cov:          coverage(data.Cov()),
				ValueFormat1: ot.ValueFormat(data.ValueFormat1),
				ValueFormat2: ot.ValueFormat(data.ValueFormat2),
				ClassDef1:    classDef(data.ClassDef1),
				ClassDef2:    classDef(data.ClassDef2),
				Records: &classMatrix{
					data:    &data,
					class1s: classCount(data.ClassDef1),
					class2s: classCount(data.ClassDef2),
					d:       d,
				},
			}, ot.GPosLookupTypePair
		}
	case tables.CursivePos:
		ees := make([]ot.EntryExit, len(st.EntryExits))
		for i, ee := range st.EntryExits {
			ees[i] = ot.EntryExit{Entry: d.anchor(ee.EntryAnchor), Exit: d.anchor(ee.ExitAnchor)}
		}
		return &ot.CursivePos{Cov: coverage(st.Cov()), EntryExits: ees}, ot.GPosLookupTypeCursive
	case tables.MarkBasePos:
		marks, n := d.marks(st.MarkArray)
		return &ot.MarkBasePos{
			MarkCoverage: coverage(st.Cov()),
			BaseCoverage: coverage(st.BaseCoverage),
			ClassCount:   n,
			Marks:        marks,
			Bases:        d.anchorMatrix(st.BaseArray.Anchors(), n),
		}, ot.GPosLookupTypeMarkToBase
	case tables.MarkLigPos:
		marks, _ := d.marks(st.MarkArray)
		n := int(st.MarkClassCount)
		ligs := make([]ot.AnchorMatrix, len(st.LigatureArray.LigatureAttachs))
		for i, la := range st.LigatureArray.LigatureAttachs {
			ligs[i] = d.anchorMatrix(la.Anchors(), n)
		}
		return &ot.MarkLigPos{
			MarkCoverage:     coverage(st.MarkCoverage),
			LigatureCoverage: coverage(st.LigatureCoverage),
			ClassCount:       n,
			Marks:            marks,
			Ligatures:        ligs,
		}, ot.GPosLookupTypeMarkToLigature
	case tables.MarkMarkPos:
		marks, _ := d.marks(st.Mark1Array)
		n := int(st.MarkClassCount)
		return &ot.MarkMarkPos{
			Mark1Coverage: coverage(st.Mark1Coverage),
			Mark2Coverage: coverage(st.Mark2Coverage),
			ClassCount:    n,
			Marks:         marks,
			Mark2s:        d.anchorMatrix(st.Mark2Array.Anchors(), n),
		}, ot.GPosLookupTypeMarkToMark
	case tables.ContextualPos:
		if sub := decodeContext(st.Data); sub != nil {
			return sub, ot.GPosLookupTypeContextPos
		}
	case tables.ChainedContextualPos:
		if sub := decodeContext(st.Data); sub != nil {
			return sub, ot.GPosLookupTypeChainedContextPos
		}
	}
	return nil, 0
}

// marks decodes a mark array and returns the number of mark classes used.
func (d *decoder) marks(ma tables.MarkArray) ([]ot.MarkRecord, int) {
	marks := make([]ot.MarkRecord, len(ma.MarkRecords))
	n := 0
	for i, r := range ma.MarkRecords {
		marks[i].Class = r.MarkClass
		if i < len(ma.MarkAnchors) {
			marks[i].Anchor = d.anchor(ma.MarkAnchors[i]).Or(ot.Anchor{})
		}
		n = max(n, int(r.MarkClass)+1)
	}
	return marks, n
}

// anchorMatrix decodes the anchors of bases, ligature components or mark2
// glyphs for classCount mark classes.
func (d *decoder) anchorMatrix(am tables.AnchorMatrix, classCount int) ot.AnchorMatrix {
	m := make(ot.AnchorMatrix, am.Len())
	for row := range m {
		m[row] = make([]ot.Option[ot.Anchor], classCount)
		for class := range classCount {
			m[row][class] = d.anchor(anchorAt(am, row, class))
		}
	}
	return m
}

// anchorAt reads an anchor from am. AnchorMatrix does not check class
// against the length of a row and panics for classes beyond it.
func anchorAt(am tables.AnchorMatrix, row, class int) (a tables.Anchor) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
		}
	}()
	return am.Anchor(row, class)
}

// pairSet adapts a go-text pair set, which decodes its records on access.
type pairSet struct {
	set tables.PairSet
	d   *decoder
}

func (ps pairSet) FindGlyph(second ot.GlyphIndex) (ot.PairValueRecord, bool) {
	rec, ok := ps.set.FindGlyph(tables.GlyphID(second))
	if !ok {
		return ot.PairValueRecord{}, false
	}
	return ot.PairValueRecord{
		SecondGlyph: second,
		Value1:      ps.d.value(rec.ValueRecord1),
		Value2:      ps.d.value(rec.ValueRecord2),
	}, true
}

// classMatrix adapts the class pair records of a go-text PairPos format 2
// subtable.
type classMatrix struct {
	data             *tables.PairPosData2
	class1s, class2s int
	d                *decoder
}

func (cm *classMatrix) Record(class1, class2 uint16) (ot.Class2Record, bool) {
	if int(class1) >= cm.class1s || int(class2) >= cm.class2s {
		return ot.Class2Record{}, false
	}
	rec := cm.data.Record(class1, class2)
	return ot.Class2Record{
		Value1: cm.d.value(rec.ValueRecord1),
		Value2: cm.d.value(rec.ValueRecord2),
	}, true
}
