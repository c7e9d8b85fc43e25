package hbcmp

import (
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFonts(t *testing.T, name string) Fonts {
	sf, err := fonttest.LoadTestFont(name)
	require.NoError(t, err)
	fonts, err := LoadFonts(sf.Binary)
	require.NoError(t, err)
	return fonts
}

type parityCase struct {
	Case
	positions bool
}

func runParity(t *testing.T, fonts Fonts, cases []parityCase) {
	for i, c := range cases {
		t.Run(fmt.Sprintf("%02d_%s_%s", i, c.Script, c.Dir), func(t *testing.T) {
			want, err := ShapeHarfBuzz(fonts.HB, c.Case)
			require.NoError(t, err)
			got, err := ShapeOwn(fonts.Own, c.Case)
			require.NoError(t, err)
			assert.NoError(t, Compare(got, want, c.positions))
		})
	}
}

func TestParityLatin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	fonts := loadFonts(t, fonttest.DejaVu)
	runParity(t, fonts, []parityCase{
		{Case: Case{Text: "Hello, World", Script: "Latn", Language: "en", Dir: "ltr"}, positions: true},
		{Case: Case{Text: "AVATAR Wave", Script: "Latn", Language: "en", Dir: "ltr"}, positions: true},
		{Case: Case{Text: "AVATAR", Script: "Latn", Language: "en", Dir: "ltr", Features: []string{"-kern"}}, positions: true},
	})
}

func TestParityArabic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	//
	fonts := loadFonts(t, fonttest.Arabic)
	runParity(t, fonts, []parityCase{
		{Case: Case{Text: "بسم", Script: "Arab", Language: "ar", Dir: "rtl"}},
		{Case: Case{Text: "سلام", Script: "Arab", Language: "ar", Dir: "rtl"}},
	})
}

func TestCompare(t *testing.T) {
	a := []ShapedGlyph{{G: 3, Cl: 0, AX: 500}, {G: 4, Cl: 1, AX: 400}}
	b := []ShapedGlyph{{G: 3, Cl: 0, AX: 510}, {G: 4, Cl: 1, AX: 400}}
	assert.NoError(t, Compare(a, b, false))
	assert.Error(t, Compare(a, b, true))
	assert.Error(t, Compare(a, b[:1], false))
	_, err := parseDirection("up")
	assert.Error(t, err)
}
