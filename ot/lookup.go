package ot

import "strconv"

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	// Note that the RIGHT_TO_LEFT flag is used only for GPOS type 3 lookups and is ignored
	// otherwise. It is not used by client software in determining text direction.
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010 // If set, indicates that the lookup table structure is followed by a MarkFilteringSet field.
	LOOKUP_FLAG_reserved                  LayoutTableLookupFlag = 0x00E0 // For future use (Set to zero)
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00 // If not zero, skips over all marks of attachment type different from specified.
)

// MarkAttachmentType extracts the mark attachment class filter from a lookup flag.
func (f LayoutTableLookupFlag) MarkAttachmentType() uint16 {
	return uint16(f&LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK) >> 8
}

// LayoutTableLookupType is a type identifier for layout lookup records (GPOS and GSUB).
// Enum values are different for GPOS and GSUB.
type LayoutTableLookupType uint16

// GSUB Lookup Type Enumeration
const (
	GSubLookupTypeSingle          LayoutTableLookupType = 1 // Replace one glyph with one glyph
	GSubLookupTypeMultiple        LayoutTableLookupType = 2 // Replace one glyph with more than one glyph
	GSubLookupTypeAlternate       LayoutTableLookupType = 3 // Replace one glyph with one of many glyphs
	GSubLookupTypeLigature        LayoutTableLookupType = 4 // Replace multiple glyphs with one glyph
	GSubLookupTypeContext         LayoutTableLookupType = 5 // Replace one or more glyphs in context
	GSubLookupTypeChainingContext LayoutTableLookupType = 6 // Replace one or more glyphs in chained context
	GSubLookupTypeExtensionSubs   LayoutTableLookupType = 7 // Extension mechanism for other substitutions
	GSubLookupTypeReverseChaining LayoutTableLookupType = 8 // Applied in reverse order, replace single glyph in chaining context
)

// GPOS Lookup Type Enumeration
const (
	GPosLookupTypeSingle            LayoutTableLookupType = 1 // Adjust position of a single glyph
	GPosLookupTypePair              LayoutTableLookupType = 2 // Adjust position of a pair of glyphs
	GPosLookupTypeCursive           LayoutTableLookupType = 3 // Attach cursive glyphs
	GPosLookupTypeMarkToBase        LayoutTableLookupType = 4 // Attach a combining mark to a base glyph
	GPosLookupTypeMarkToLigature    LayoutTableLookupType = 5 // Attach a combining mark to a ligature
	GPosLookupTypeMarkToMark        LayoutTableLookupType = 6 // Attach a combining mark to another mark
	GPosLookupTypeContextPos        LayoutTableLookupType = 7 // Position one or more glyphs in context
	GPosLookupTypeChainedContextPos LayoutTableLookupType = 8 // Position one or more glyphs in chained context
	GPosLookupTypeExtensionPos      LayoutTableLookupType = 9 // Extension mechanism for other positionings
)

const gsubLookupTypeNames = "Single|Multiple|Alternate|Ligature|Context|Chaining|Ext|Reverse"

var gsubLookupTypeInx = [...]int{0, 7, 16, 26, 35, 43, 52, 56, 64}

// GSubString interprets a layout table lookup type as a GSUB table type.
func (lt LayoutTableLookupType) GSubString() string {
	if lt >= GSubLookupTypeSingle && lt <= GSubLookupTypeReverseChaining {
		i := lt - 1
		return gsubLookupTypeNames[gsubLookupTypeInx[i] : gsubLookupTypeInx[i+1]-1]
	}
	return strconv.Itoa(int(lt))
}

const gposLookupTypeNames = "Single|Pair|Cursive|MarkToBase|MarkToLigature|MarkToMark|ContextPos|Chained|Ext"

var gposLookupTypeInx = [...]int{0, 7, 12, 20, 31, 46, 57, 68, 76, 80}

// GPosString interprets a layout table lookup type as a GPOS table type.
func (lt LayoutTableLookupType) GPosString() string {
	if lt >= GPosLookupTypeSingle && lt <= GPosLookupTypeExtensionPos {
		i := lt - 1
		return gposLookupTypeNames[gposLookupTypeInx[i] : gposLookupTypeInx[i+1]-1]
	}
	return strconv.Itoa(int(lt))
}

// --- Lookups ---------------------------------------------------------------

// Lookup is an entry of a lookup list: a lookup type, flags, an optional mark
// filtering set and a list of subtables, all of the same lookup type.
type Lookup struct {
	Type             LayoutTableLookupType
	Flag             LayoutTableLookupFlag
	MarkFilteringSet uint16 // valid if Flag has LOOKUP_FLAG_USE_MARK_FILTERING_SET set
	Subtables        []Subtable
}

// Unwrapped returns l with all extension subtables replaced by the subtables they
// point to. If l contains no extension subtables, l itself is returned.
func (l *Lookup) Unwrapped() *Lookup {
	if l == nil {
		return nil
	}
	hasExt := false
	for _, sub := range l.Subtables {
		if _, ok := sub.(*ExtensionSubtable); ok {
			hasExt = true
			break
		}
	}
	if !hasExt {
		return l
	}
	u := &Lookup{
		Type:             l.Type,
		Flag:             l.Flag,
		MarkFilteringSet: l.MarkFilteringSet,
		Subtables:        make([]Subtable, 0, len(l.Subtables)),
	}
	for _, sub := range l.Subtables {
		if ext, ok := sub.(*ExtensionSubtable); ok {
			if ext.Target == nil {
				tracer().Errorf("extension subtable without target, dropped")
				continue
			}
			u.Type = ext.ExtensionType
			u.Subtables = append(u.Subtables, ext.Target)
			continue
		}
		u.Subtables = append(u.Subtables, sub)
	}
	return u
}

// Subtable is a lookup subtable. The set of subtable types is closed: every
// combination of lookup type and format has its own type in this package.
// Clients dispatch with a type switch.
type Subtable interface {
	// Coverage returns the coverage table applied to the first glyph of an input
	// sequence. For format 3 context subtables, this is the first input coverage;
	// for mark attachment it is the mark coverage.
	Coverage() Coverage
	lookupSubtable()
}

// SequenceLookupRecord identifies a nested lookup to apply at a position
// within a matched input sequence.
type SequenceLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// --- GSUB subtables --------------------------------------------------------

// SingleSubstFmt1 is GSUB LookupType 1, format 1: a constant delta is added to
// the glyph ID, modulo 65536.
type SingleSubstFmt1 struct {
	Cov          Coverage
	DeltaGlyphID int16
}

// SingleSubstFmt2 is GSUB LookupType 1, format 2: the substitute is taken from an
// array indexed by coverage index.
type SingleSubstFmt2 struct {
	Cov                Coverage
	SubstituteGlyphIDs []GlyphIndex
}

// MultipleSubst is GSUB LookupType 2: a glyph is replaced by a sequence of glyphs.
// An empty sequence deletes the glyph.
type MultipleSubst struct {
	Cov       Coverage
	Sequences [][]GlyphIndex
}

// AlternateSubst is GSUB LookupType 3: a glyph is replaced by one of a set of
// alternates.
type AlternateSubst struct {
	Cov        Coverage
	Alternates [][]GlyphIndex
}

// LigatureRule is a single ligature of a ligature set. Components does not include
// the first component, which is the glyph covered by the subtable's coverage.
type LigatureRule struct {
	Components []GlyphIndex
	Ligature   GlyphIndex
}

// LigatureSubst is GSUB LookupType 4: a sequence of glyphs is replaced by a single
// ligature glyph. Ligature sets are indexed by coverage index, rules within a set are
// ordered by preference.
type LigatureSubst struct {
	Cov          Coverage
	LigatureSets [][]LigatureRule
}

// ReverseChainSingleSubst is GSUB LookupType 8. It is applied from the end of the
// glyph sequence to its start, substituting single glyphs in a chaining context.
type ReverseChainSingleSubst struct {
	Cov                Coverage
	BacktrackCoverages []Coverage
	LookaheadCoverages []Coverage
	SubstituteGlyphIDs []GlyphIndex
}

// ExtensionSubtable is GSUB LookupType 7 or GPOS LookupType 9. Font loaders usually
// resolve extensions; Lookup.Unwrapped removes any remaining ones.
type ExtensionSubtable struct {
	ExtensionType LayoutTableLookupType
	Target        Subtable
}

// --- Contextual subtables, shared by GSUB and GPOS -------------------------

// SequenceRule is a rule of a context subtable of format 1. Input does not
// include the first glyph of the input sequence.
type SequenceRule struct {
	Input   []GlyphIndex
	Records []SequenceLookupRecord
}

// ClassSequenceRule is a rule of a context subtable of format 2. Input does not
// include the class of the first glyph.
type ClassSequenceRule struct {
	Input   []uint16
	Records []SequenceLookupRecord
}

// SequenceContextFmt1 is a glyph-based context subtable (GSUB 5.1, GPOS 7.1).
// Rule sets are indexed by coverage index.
type SequenceContextFmt1 struct {
	Cov      Coverage
	RuleSets [][]SequenceRule
}

// SequenceContextFmt2 is a class-based context subtable (GSUB 5.2, GPOS 7.2).
// Rule sets are indexed by the class of the first glyph.
type SequenceContextFmt2 struct {
	Cov      Coverage
	ClassDef ClassDefinitions
	RuleSets [][]ClassSequenceRule
}

// SequenceContextFmt3 is a coverage-based context subtable (GSUB 5.3, GPOS 7.3).
type SequenceContextFmt3 struct {
	InputCoverages []Coverage
	Records        []SequenceLookupRecord
}

// ChainedSequenceRule is a rule of a chained context subtable of format 1.
// Backtrack is stored in logical order reversed, i.e. Backtrack[0] is the glyph
// immediately preceding the input sequence. Input does not include the first glyph.
type ChainedSequenceRule struct {
	Backtrack []GlyphIndex
	Input     []GlyphIndex
	Lookahead []GlyphIndex
	Records   []SequenceLookupRecord
}

// ChainedClassRule is a rule of a chained context subtable of format 2, with the
// same conventions as ChainedSequenceRule.
type ChainedClassRule struct {
	Backtrack []uint16
	Input     []uint16
	Lookahead []uint16
	Records   []SequenceLookupRecord
}

// ChainedSequenceContextFmt1 is a glyph-based chained context subtable
// (GSUB 6.1, GPOS 8.1).
type ChainedSequenceContextFmt1 struct {
	Cov      Coverage
	RuleSets [][]ChainedSequenceRule
}

// ChainedSequenceContextFmt2 is a class-based chained context subtable
// (GSUB 6.2, GPOS 8.2). Rule sets are indexed by the input class of the first glyph.
type ChainedSequenceContextFmt2 struct {
	Cov               Coverage
	BacktrackClassDef ClassDefinitions
	InputClassDef     ClassDefinitions
	LookaheadClassDef ClassDefinitions
	RuleSets          [][]ChainedClassRule
}

// ChainedSequenceContextFmt3 is a coverage-based chained context subtable
// (GSUB 6.3, GPOS 8.3). BacktrackCoverages[0] applies to the glyph immediately
// preceding the input sequence.
type ChainedSequenceContextFmt3 struct {
	BacktrackCoverages []Coverage
	InputCoverages     []Coverage
	LookaheadCoverages []Coverage
	Records            []SequenceLookupRecord
}

func (st *SingleSubstFmt1) Coverage() Coverage            { return st.Cov }
func (st *SingleSubstFmt2) Coverage() Coverage            { return st.Cov }
func (st *MultipleSubst) Coverage() Coverage              { return st.Cov }
func (st *AlternateSubst) Coverage() Coverage             { return st.Cov }
func (st *LigatureSubst) Coverage() Coverage              { return st.Cov }
func (st *ReverseChainSingleSubst) Coverage() Coverage    { return st.Cov }
func (st *SequenceContextFmt1) Coverage() Coverage        { return st.Cov }
func (st *SequenceContextFmt2) Coverage() Coverage        { return st.Cov }
func (st *ChainedSequenceContextFmt1) Coverage() Coverage { return st.Cov }
func (st *ChainedSequenceContextFmt2) Coverage() Coverage { return st.Cov }

func (st *SequenceContextFmt3) Coverage() Coverage {
	if len(st.InputCoverages) == 0 {
		return Coverage{}
	}
	return st.InputCoverages[0]
}

func (st *ChainedSequenceContextFmt3) Coverage() Coverage {
	if len(st.InputCoverages) == 0 {
		return Coverage{}
	}
	return st.InputCoverages[0]
}

func (st *ExtensionSubtable) Coverage() Coverage {
	if st.Target == nil {
		return Coverage{}
	}
	return st.Target.Coverage()
}

func (*SingleSubstFmt1) lookupSubtable()            {}
func (*SingleSubstFmt2) lookupSubtable()            {}
func (*MultipleSubst) lookupSubtable()              {}
func (*AlternateSubst) lookupSubtable()             {}
func (*LigatureSubst) lookupSubtable()              {}
func (*ReverseChainSingleSubst) lookupSubtable()    {}
func (*SequenceContextFmt1) lookupSubtable()        {}
func (*SequenceContextFmt2) lookupSubtable()        {}
func (*SequenceContextFmt3) lookupSubtable()        {}
func (*ChainedSequenceContextFmt1) lookupSubtable() {}
func (*ChainedSequenceContextFmt2) lookupSubtable() {}
func (*ChainedSequenceContextFmt3) lookupSubtable() {}
func (*ExtensionSubtable) lookupSubtable()          {}
