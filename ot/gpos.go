package ot

import "sort"

// GPOS Table
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#table-organization

// ValueFormat is a bitmask that describes which fields are present in a ValueRecord.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#value-record
type ValueFormat uint16

const (
	ValueFormatXPlacement ValueFormat = 0x0001 // Includes horizontal adjustment for placement
	ValueFormatYPlacement ValueFormat = 0x0002 // Includes vertical adjustment for placement
	ValueFormatXAdvance   ValueFormat = 0x0004 // Includes horizontal adjustment for advance
	ValueFormatYAdvance   ValueFormat = 0x0008 // Includes vertical adjustment for advance
	ValueFormatXPlaDevice ValueFormat = 0x0010 // Includes Device table for horizontal placement
	ValueFormatYPlaDevice ValueFormat = 0x0020 // Includes Device table for vertical placement
	ValueFormatXAdvDevice ValueFormat = 0x0040 // Includes Device table for horizontal advance
	ValueFormatYAdvDevice ValueFormat = 0x0080 // Includes Device table for vertical advance
	// Bits 0x0F00 are reserved for future use
)

// ValueRecord represents a positioning adjustment for a glyph.
// Fields not present in the font's value format are zero or nil.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#value-record
type ValueRecord struct {
	XPlacement int16        // Horizontal adjustment for placement, in design units
	YPlacement int16        // Vertical adjustment for placement, in design units
	XAdvance   int16        // Horizontal adjustment for advance, in design units
	YAdvance   int16        // Vertical adjustment for advance, in design units
	XPlaDevice *DeviceTable // Device table for horizontal placement (may be nil)
	YPlaDevice *DeviceTable // Device table for vertical placement (may be nil)
	XAdvDevice *DeviceTable // Device table for horizontal advance (may be nil)
	YAdvDevice *DeviceTable // Device table for vertical advance (may be nil)
}

// IsZero is true if applying vr would not change a glyph position.
func (vr ValueRecord) IsZero() bool {
	return vr.XPlacement == 0 && vr.YPlacement == 0 && vr.XAdvance == 0 && vr.YAdvance == 0 &&
		vr.XPlaDevice == nil && vr.YPlaDevice == nil && vr.XAdvDevice == nil && vr.YAdvDevice == nil
}

// DeviceTable holds hinting deltas for a range of ppem sizes.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#device-and-variationindex-tables
type DeviceTable struct {
	StartSize uint16 // smallest size to correct, in ppem
	EndSize   uint16 // largest size to correct, in ppem
	Deltas    []int8 // one delta per size, EndSize − StartSize + 1 entries
}

// Delta returns the adjustment for the given ppem size, in pixels.
// A nil device table or a size out of range yield 0.
func (dev *DeviceTable) Delta(ppem uint16) int {
	if dev == nil || ppem == 0 || ppem < dev.StartSize || ppem > dev.EndSize {
		return 0
	}
	inx := int(ppem - dev.StartSize)
	if inx >= len(dev.Deltas) {
		return 0
	}
	return int(dev.Deltas[inx])
}

// Anchor represents an attachment point on a glyph, in design units.
// Contour points of format 2 anchors are not evaluated; the design coordinates are used.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#anchor-tables
type Anchor struct {
	X, Y    int16
	XDevice *DeviceTable // format 3 only (may be nil)
	YDevice *DeviceTable // format 3 only (may be nil)
}

// --- GPOS subtables --------------------------------------------------------

// SinglePosFmt1 is GPOS LookupType 1, format 1: one value record for all covered glyphs.
type SinglePosFmt1 struct {
	Cov   Coverage
	Value ValueRecord
}

// SinglePosFmt2 is GPOS LookupType 1, format 2: one value record per covered glyph.
type SinglePosFmt2 struct {
	Cov    Coverage
	Values []ValueRecord
}

// PairValueRecord represents a kerning pair with positioning adjustments.
// Used in GPOS Lookup Type 2 (Pair Adjustment), format 1.
type PairValueRecord struct {
	SecondGlyph GlyphIndex  // Glyph ID of second glyph in pair
	Value1      ValueRecord // Positioning for first glyph
	Value2      ValueRecord // Positioning for second glyph
}

// PairSet is the set of pairs starting with a given first glyph.
type PairSet interface {
	FindGlyph(second GlyphIndex) (PairValueRecord, bool)
}

// PairValueRecords is a PairSet held in memory, sorted by second glyph.
type PairValueRecords []PairValueRecord

// FindGlyph performs a binary search for the pair with second glyph second.
func (prs PairValueRecords) FindGlyph(second GlyphIndex) (PairValueRecord, bool) {
	i := sort.Search(len(prs), func(i int) bool { return prs[i].SecondGlyph >= second })
	if i < len(prs) && prs[i].SecondGlyph == second {
		return prs[i], true
	}
	return PairValueRecord{}, false
}

// PairPosFmt1 is GPOS LookupType 2, format 1: pairs of individual glyphs.
// Pair sets are indexed by coverage index of the first glyph.
type PairPosFmt1 struct {
	Cov          Coverage
	ValueFormat1 ValueFormat
	ValueFormat2 ValueFormat
	PairSets     []PairSet
}

// Class2Record holds the adjustments for a pair of glyph classes.
type Class2Record struct {
	Value1 ValueRecord
	Value2 ValueRecord
}

// PairPosFmt2 is GPOS LookupType 2, format 2: pairs of glyph classes.
type PairPosFmt2 struct {
	Cov          Coverage
	ValueFormat1 ValueFormat
	ValueFormat2 ValueFormat
	ClassDef1    ClassDefinitions
	ClassDef2    ClassDefinitions
	Records      PairClassMatrix
}

// PairClassMatrix returns the adjustment record for a pair of classes.
type PairClassMatrix interface {
	Record(class1, class2 uint16) (Class2Record, bool)
}

// Class1Records is a PairClassMatrix held in memory, indexed by [class1][class2].
type Class1Records [][]Class2Record

// Record returns the record for a class pair, if present.
func (recs Class1Records) Record(class1, class2 uint16) (Class2Record, bool) {
	if int(class1) >= len(recs) || int(class2) >= len(recs[class1]) {
		return Class2Record{}, false
	}
	return recs[class1][class2], true
}

// EntryExit holds the cursive attachment anchors of a glyph. Both are optional.
type EntryExit struct {
	Entry Option[Anchor]
	Exit  Option[Anchor]
}

// CursivePos is GPOS LookupType 3: cursive attachment, entry/exit records indexed by
// coverage index.
type CursivePos struct {
	Cov        Coverage
	EntryExits []EntryExit
}

// MarkRecord associates a mark glyph with a class and anchor point.
// Used in GPOS Lookup Types 4, 5, and 6 (Mark attachment).
type MarkRecord struct {
	Class  uint16 // Class value for this mark
	Anchor Anchor // Attachment point of the mark
}

// AnchorMatrix holds anchors indexed by [row][mark class]. Rows are base glyphs,
// ligature components or mark2 glyphs, depending on the lookup type.
type AnchorMatrix [][]Option[Anchor]

// Anchor returns the anchor at (row, class), if present.
func (am AnchorMatrix) Anchor(row, class int) (Anchor, bool) {
	if row < 0 || row >= len(am) || class < 0 || class >= len(am[row]) {
		return Anchor{}, false
	}
	return am[row][class].Unwrap()
}

// MarkBasePos is GPOS LookupType 4: attach a mark to a base glyph. Marks and bases
// are indexed by their respective coverage indices.
type MarkBasePos struct {
	MarkCoverage Coverage
	BaseCoverage Coverage
	ClassCount   int
	Marks        []MarkRecord
	Bases        AnchorMatrix // [base index][mark class]
}

// MarkLigPos is GPOS LookupType 5: attach a mark to a ligature component.
type MarkLigPos struct {
	MarkCoverage     Coverage
	LigatureCoverage Coverage
	ClassCount       int
	Marks            []MarkRecord
	Ligatures        []AnchorMatrix // [ligature index][component][mark class]
}

// MarkMarkPos is GPOS LookupType 6: attach a mark (mark1) to a preceding mark (mark2).
type MarkMarkPos struct {
	Mark1Coverage Coverage
	Mark2Coverage Coverage
	ClassCount    int
	Marks         []MarkRecord // mark1 records
	Mark2s        AnchorMatrix // [mark2 index][mark class]
}

func (st *SinglePosFmt1) Coverage() Coverage { return st.Cov }
func (st *SinglePosFmt2) Coverage() Coverage { return st.Cov }
func (st *PairPosFmt1) Coverage() Coverage   { return st.Cov }
func (st *PairPosFmt2) Coverage() Coverage   { return st.Cov }
func (st *CursivePos) Coverage() Coverage    { return st.Cov }
func (st *MarkBasePos) Coverage() Coverage   { return st.MarkCoverage }
func (st *MarkLigPos) Coverage() Coverage    { return st.MarkCoverage }
func (st *MarkMarkPos) Coverage() Coverage   { return st.Mark1Coverage }

func (*SinglePosFmt1) lookupSubtable() {}
func (*SinglePosFmt2) lookupSubtable() {}
func (*PairPosFmt1) lookupSubtable()   {}
func (*PairPosFmt2) lookupSubtable()   {}
func (*CursivePos) lookupSubtable()    {}
func (*MarkBasePos) lookupSubtable()   {}
func (*MarkLigPos) lookupSubtable()    {}
func (*MarkMarkPos) lookupSubtable()   {}
