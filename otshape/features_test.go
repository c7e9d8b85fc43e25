package otshape

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	features, err := ParseFeatures("kern, -liga aalt=2,smcp[3:5]")
	require.NoError(t, err)
	require.Len(t, features, 4)
	assert.Equal(t, FeatureRange{Feature: ot.T("kern"), On: true}, features[0])
	assert.Equal(t, FeatureRange{Feature: ot.T("liga"), On: false}, features[1])
	assert.Equal(t, FeatureRange{Feature: ot.T("aalt"), On: true, Arg: 2}, features[2])
	assert.Equal(t, FeatureRange{Feature: ot.T("smcp"), On: true, Start: 3, End: 5}, features[3])
	assert.True(t, features[0].IsGlobal())
	assert.False(t, features[3].IsGlobal())
	assert.Equal(t, "smcp[3:5]", features[3].String())
	assert.Equal(t, "-liga", features[1].String())
	assert.Equal(t, "aalt=2", features[2].String())
	//
	_, err = ParseFeatures("kern, =1")
	assert.Error(t, err)
}

func TestFeatureRangeCovers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	fr := FeatureRange{Feature: ot.T("smcp"), On: true, Start: 2}
	assert.False(t, fr.Covers(1))
	assert.True(t, fr.Covers(2))
	assert.True(t, fr.Covers(1000))
	assert.Equal(t, "smcp[2:]", fr.String())
	fr.End = 4
	assert.True(t, fr.Covers(3))
	assert.False(t, fr.Covers(4))
}

func TestConfigFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	assert.Equal(t, DefaultConfig(), ConfigFrom(nil))
	conf := testconfig.Conf{
		KeyPlanCacheSize:       16,
		KeyZeroWidthMarks:      false,
		KeyRemoveIgnorables:    "true",
		KeyTraceLevel:          "Debug",
		"unrelated.config.key": 42,
	}
	c := ConfigFrom(conf)
	assert.Equal(t, 16, c.PlanCacheSize)
	assert.False(t, c.ZeroWidthMarks)
	assert.True(t, c.FallbackPositioning)
	assert.True(t, c.RemoveDefaultIgnorables)
	assert.True(t, c.SetTraceLevel)
	assert.Equal(t, tracing.LevelDebug, c.TraceLevel)
	//
	c = ConfigFrom(testconfig.Conf{KeyPlanCacheSize: -3})
	assert.Equal(t, DefaultPlanCacheSize, c.PlanCacheSize)
	shaper := NewShaper().Configure(c)
	assert.Equal(t, DefaultPlanCacheSize, shaper.NewFace(ligaFont()).Plans().Capacity())
}
