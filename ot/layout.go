package ot

/*
From https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2:

OpenType Layout consists of five tables: the Glyph Substitution table (GSUB),
the Glyph Positioning table (GPOS), the Baseline table (BASE),
the Justification table (JSTF), and the Glyph Definition table (GDEF).
These tables use some of the same data formats.

Shaping uses GSUB, GPOS and GDEF only.
*/

// --- Layout tables ---------------------------------------------------------

// LayoutTables bundles the layout tables of a font relevant for shaping.
// Any of them may be nil.
type LayoutTables struct {
	GDEF *GDefTable
	GSUB *LayoutTable
	GPOS *LayoutTable
}

// LayoutTagType tells GSUB and GPOS apart.
type LayoutTagType uint8

const (
	GSubFeatureType LayoutTagType = iota // substitution
	GPosFeatureType                      // positioning
)

func (lt LayoutTagType) String() string {
	if lt == GPosFeatureType {
		return "GPOS"
	}
	return "GSUB"
}

// LayoutTable is the common structure of GSUB and GPOS.
// OpenType specifies two such tables–GPOS and GSUB–which share the structure of
// script list, feature list, lookup list and optional feature variations.
type LayoutTable struct {
	Type              LayoutTagType
	Scripts           []ScriptRecord
	Features          []FeatureRecord
	Lookups           []*Lookup
	FeatureVariations []FeatureVariation
}

// ScriptRecord is an entry of the script list.
type ScriptRecord struct {
	Tag         Tag
	DefaultLang *LangSys // may be nil
	LangSys     []LangSysRecord
}

// LangSysRecord is an entry of a script's language system list.
type LangSysRecord struct {
	Tag     Tag
	LangSys LangSys
}

// LangSys is a language system: an optional required feature and a list of
// optional features, given as indices into the feature list.
type LangSys struct {
	RequiredFeature int // −1 if none
	FeatureIndices  []int
}

// NoRequiredFeature is the value of LangSys.RequiredFeature if a language system does
// not define a required feature.
const NoRequiredFeature = -1

// FeatureRecord is an entry of the feature list.
type FeatureRecord struct {
	Tag           Tag
	LookupIndices []int
}

// FeatureVariation is a feature variation record: if all conditions hold for the
// current design-space coordinates, the feature substitutions replace the lookup lists
// of the given features.
type FeatureVariation struct {
	Conditions    []AxisCondition
	Substitutions []FeatureSubstitution
}

// AxisCondition is a condition of format 1: a range of normalized coordinates on
// one axis.
type AxisCondition struct {
	Axis     int
	Min, Max float32
}

// FeatureSubstitution replaces the lookup list of a feature.
type FeatureSubstitution struct {
	FeatureIndex  int
	LookupIndices []int
}

// Script returns the script record for tag.
func (t *LayoutTable) Script(tag Tag) (*ScriptRecord, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Scripts {
		if t.Scripts[i].Tag == tag {
			return &t.Scripts[i], true
		}
	}
	return nil, false
}

// LangSysFor returns the language system for tag. It does not fall back to the
// default language system, see DefaultLangSys for that.
func (s *ScriptRecord) LangSysFor(tag Tag) (*LangSys, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.LangSys {
		if s.LangSys[i].Tag == tag {
			return &s.LangSys[i].LangSys, true
		}
	}
	return nil, false
}

// DefaultLangSys returns the script's default language system. If the font does not
// define one, the first language system record is used.
func (s *ScriptRecord) DefaultLangSys() (*LangSys, bool) {
	if s == nil {
		return nil, false
	}
	if s.DefaultLang != nil {
		return s.DefaultLang, true
	}
	if len(s.LangSys) > 0 {
		tracer().Debugf("script %s has no default language system, using %s", s.Tag, s.LangSys[0].Tag)
		return &s.LangSys[0].LangSys, true
	}
	return nil, false
}

// Feature returns the feature record at index i.
func (t *LayoutTable) Feature(i int) (FeatureRecord, bool) {
	if t == nil || i < 0 || i >= len(t.Features) {
		return FeatureRecord{}, false
	}
	return t.Features[i], true
}

// HasFeature is true if the feature list contains a feature with tag, for any
// script. Script preprocessors use it to decide on fallbacks.
func (t *LayoutTable) HasFeature(tag Tag) bool {
	if t == nil {
		return false
	}
	for _, rec := range t.Features {
		if rec.Tag == tag {
			return true
		}
	}
	return false
}

// Lookup returns the lookup at index i, or nil.
func (t *LayoutTable) Lookup(i int) *Lookup {
	if t == nil || i < 0 || i >= len(t.Lookups) {
		return nil
	}
	return t.Lookups[i]
}

// FindFeatureVariation returns the index of the first feature variation record whose
// conditions all hold for coords, or −1. Axes missing from coords count as the
// default coordinate 0.
func (t *LayoutTable) FindFeatureVariation(coords []float32) int {
	if t == nil {
		return -1
	}
	for i, fv := range t.FeatureVariations {
		if fv.matches(coords) {
			return i
		}
	}
	return -1
}

func (fv FeatureVariation) matches(coords []float32) bool {
	for _, c := range fv.Conditions {
		var v float32
		if c.Axis >= 0 && c.Axis < len(coords) {
			v = coords[c.Axis]
		}
		if v < c.Min || v > c.Max {
			return false
		}
	}
	return true
}

// FeatureLookups returns the lookup indices of feature i, honouring the feature
// variation record with index variation (−1 for none).
func (t *LayoutTable) FeatureLookups(i int, variation int) []int {
	f, ok := t.Feature(i)
	if !ok {
		return nil
	}
	if variation >= 0 && variation < len(t.FeatureVariations) {
		for _, subst := range t.FeatureVariations[variation].Substitutions {
			if subst.FeatureIndex == i {
				return subst.LookupIndices
			}
		}
	}
	return f.LookupIndices
}
