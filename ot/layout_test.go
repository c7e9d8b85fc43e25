package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLayout() *LayoutTable {
	return &LayoutTable{
		Type: GSubFeatureType,
		Scripts: []ScriptRecord{
			{
				Tag:         T("latn"),
				DefaultLang: &LangSys{RequiredFeature: NoRequiredFeature, FeatureIndices: []int{0, 1}},
				LangSys: []LangSysRecord{
					{Tag: T("TRK"), LangSys: LangSys{RequiredFeature: 2, FeatureIndices: []int{0}}},
				},
			},
			{
				Tag: T("arab"),
				LangSys: []LangSysRecord{
					{Tag: T("URD"), LangSys: LangSys{RequiredFeature: NoRequiredFeature, FeatureIndices: []int{1}}},
				},
			},
		},
		Features: []FeatureRecord{
			{Tag: T("liga"), LookupIndices: []int{0}},
			{Tag: T("kern"), LookupIndices: []int{1}},
			{Tag: T("locl"), LookupIndices: []int{2}},
		},
		Lookups: []*Lookup{{}, {}, {}, {}},
		FeatureVariations: []FeatureVariation{
			{
				Conditions:    []AxisCondition{{Axis: 0, Min: 0.5, Max: 1.0}},
				Substitutions: []FeatureSubstitution{{FeatureIndex: 0, LookupIndices: []int{3}}},
			},
		},
	}
}

func TestScriptAndLangSys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.ot")
	defer teardown()
	//
	layout := makeLayout()
	latn, ok := layout.Script(T("latn"))
	require.True(t, ok)
	trk, ok := latn.LangSysFor(T("TRK"))
	require.True(t, ok)
	assert.Equal(t, 2, trk.RequiredFeature)
	_, ok = latn.LangSysFor(T("DEU"))
	assert.False(t, ok)
	dflt, ok := latn.DefaultLangSys()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, dflt.FeatureIndices)
	// arab has no default language system, the first record serves as default
	arab, ok := layout.Script(T("arab"))
	require.True(t, ok)
	dflt, ok = arab.DefaultLangSys()
	require.True(t, ok)
	assert.Equal(t, []int{1}, dflt.FeatureIndices)
	_, ok = layout.Script(T("cyrl"))
	assert.False(t, ok)
	assert.True(t, layout.HasFeature(T("locl")))
	assert.False(t, layout.HasFeature(T("init")))
}

func TestFeatureVariations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.ot")
	defer teardown()
	//
	layout := makeLayout()
	assert.Equal(t, -1, layout.FindFeatureVariation(nil))
	assert.Equal(t, -1, layout.FindFeatureVariation([]float32{0.2}))
	v := layout.FindFeatureVariation([]float32{0.7})
	assert.Equal(t, 0, v)
	assert.Equal(t, []int{3}, layout.FeatureLookups(0, v))
	assert.Equal(t, []int{1}, layout.FeatureLookups(1, v))
	assert.Equal(t, []int{0}, layout.FeatureLookups(0, -1))
	assert.Nil(t, layout.FeatureLookups(7, -1))
}

func TestNilLayoutTable(t *testing.T) {
	var layout *LayoutTable
	_, ok := layout.Script(T("latn"))
	assert.False(t, ok)
	assert.Nil(t, layout.Lookup(0))
	assert.False(t, layout.HasFeature(T("liga")))
	assert.Equal(t, -1, layout.FindFeatureVariation([]float32{1}))
}

func TestPairSetsAndAnchors(t *testing.T) {
	set := PairValueRecords{
		{SecondGlyph: 4, Value1: ValueRecord{XAdvance: -10}},
		{SecondGlyph: 9, Value1: ValueRecord{XAdvance: -20}},
	}
	rec, ok := set.FindGlyph(9)
	assert.True(t, ok)
	assert.Equal(t, int16(-20), rec.Value1.XAdvance)
	_, ok = set.FindGlyph(5)
	assert.False(t, ok)
	//
	am := AnchorMatrix{{Some(Anchor{X: 100}), None[Anchor]()}}
	a, ok := am.Anchor(0, 0)
	assert.True(t, ok)
	assert.Equal(t, int16(100), a.X)
	_, ok = am.Anchor(0, 1)
	assert.False(t, ok)
	_, ok = am.Anchor(1, 0)
	assert.False(t, ok)
	//
	dev := &DeviceTable{StartSize: 10, EndSize: 12, Deltas: []int8{1, -1, 2}}
	assert.Equal(t, 2, dev.Delta(12))
	assert.Equal(t, 0, dev.Delta(13))
	var nodev *DeviceTable
	assert.Equal(t, 0, nodev.Delta(11))
}
