package textshaping

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ligaFont() *fonttest.Font {
	gsub := fonttest.Layout(ot.GSubFeatureType, []ot.Tag{ot.LATN},
		fonttest.Feature{Tag: ot.T("liga"), Lookups: []*ot.Lookup{
			fonttest.Ligature(0, 42, 10, 11),
		}},
	)
	return fonttest.New().Map('f', 10).Map('i', 11).Map('x', 12).Advance(500, 10, 11, 12, 42).
		WithGSUB(gsub)
}

func gids(records []otshape.GlyphRecord) []ot.GlyphIndex {
	g := make([]ot.GlyphIndex, len(records))
	for i, r := range records {
		g[i] = r.GID
	}
	return g
}

func TestEngines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping")
	defer teardown()
	//
	names := make(map[string]bool)
	for _, e := range Engines() {
		require.NotNil(t, e)
		names[e.Name()] = true
	}
	assert.Len(t, names, 9, "engine names must be unique")
	assert.Len(t, NewShaper().Engines, 9)
}

func TestShapeString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping")
	defer teardown()
	//
	face := NewFace(ligaFont())
	records, err := ShapeString(face, "fix", "")
	require.NoError(t, err)
	assert.Equal(t, []ot.GlyphIndex{42, 12}, gids(records))
	assert.Equal(t, uint32(0), records[0].Cluster)
	assert.Equal(t, uint32(2), records[1].Cluster)
	//
	records, err = ShapeString(face, "fix", "-liga")
	require.NoError(t, err)
	assert.Equal(t, []ot.GlyphIndex{10, 11, 12}, gids(records))
	//
	_, err = ShapeString(face, "fix", "liga[")
	assert.Error(t, err)
	records, err = ShapeString(face, "", "")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestShapeLatinText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping")
	defer teardown()
	//
	face := NewFace(ligaFont())
	records, err := ShapeLatinText(face, "fi")
	require.NoError(t, err)
	assert.Equal(t, []ot.GlyphIndex{42}, gids(records))
	assert.Equal(t, int32(500), records[0].Pos.XAdvance)
	//
	_, err = ShapeLatinText(nil, "fi")
	assert.ErrorIs(t, err, otshape.ErrNilFont)
}

func TestShapeArabicWithRealFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping")
	defer teardown()
	//
	sf, err := fonttest.LoadTestFont(fonttest.Arabic)
	require.NoError(t, err)
	f, err := ParseFont(sf.Binary)
	require.NoError(t, err)
	family, _ := FamilyName(f)
	assert.NotEmpty(t, family)
	//
	isolated := f.GlyphIndex('ب')
	require.NotEqual(t, ot.NotDef, isolated)
	records, err := ShapeString(NewFace(f), "بب", "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	// visual order: the final form comes first
	assert.Equal(t, uint32(1), records[0].Cluster)
	assert.Equal(t, uint32(0), records[1].Cluster)
	for _, r := range records {
		assert.NotEqual(t, isolated, r.GID, "joining forms expected")
		assert.NotEqual(t, ot.NotDef, r.GID)
	}
}
