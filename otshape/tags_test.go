package otshape

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/ot"
	"github.com/stretchr/testify/suite"
	xlanguage "golang.org/x/text/language"
)

// --- Test Suite Preparation ------------------------------------------------

type TagsTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestTagFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	suite.Run(t, new(TagsTestEnviron))
}

// run once, before test suite methods
func (env *TagsTestEnviron) SetupSuite() {
	tracing.Select("textshaping.shaper").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *TagsTestEnviron) TestLanguageTagForLanguage() {
	langs := []struct {
		in  string
		out string
	}{
		{"DE", "DEU"},
		{"DE_de", "DEU"},
		{"DE_ch", "DEU"},
		{"EN_us", "ENG"},
		{"tr", "TRK"},
		{"zh-TW", "ZHT"},
		{"zh-Hant", "ZHT"},
		{"zh-HK", "ZHH"},
		{"zh-CN", "ZHS"},
		{"und", "dflt"},
		{"tlh", "dflt"}, // Klingon is not in the table
	}
	for _, pair := range langs {
		tag := LanguageTagForLanguage(xlanguage.Make(pair.in), xlanguage.High)
		env.Equal(ot.T(pair.out).String(), tag.String(), "expected language match %s for %s", pair.out, pair.in)
	}
}

func (env *TagsTestEnviron) TestLanguageTagsOfUndetermined() {
	env.Nil(LanguageTags(xlanguage.Und))
	env.Equal([]ot.Tag{ot.T("FRA")}, LanguageTags(xlanguage.French))
}

func (env *TagsTestEnviron) TestScriptTags() {
	scripts := []struct {
		in  language.Script
		out []string
	}{
		{language.Latin, []string{"latn"}},
		{language.Arabic, []string{"arab"}},
		{language.Devanagari, []string{"dev3", "dev2", "deva"}},
		{language.Tamil, []string{"tml3", "tml2", "taml"}},
		{language.Myanmar, []string{"mym2", "mymr"}},
		{language.Hiragana, []string{"kana"}},
		{language.Lao, []string{"lao "}},
		{language.Common, nil},
		{language.Inherited, nil},
	}
	for _, s := range scripts {
		var want []ot.Tag
		for _, t := range s.out {
			want = append(want, ot.T(t))
		}
		env.Equal(want, ScriptTags(s.in), "script tags for %s", s.in)
	}
}

func (env *TagsTestEnviron) TestScriptTagForScript() {
	env.Equal(ot.T("dev2"), ScriptTagForScript(language.Devanagari))
	env.Equal(ot.T("hang"), ScriptTagForScript(language.Hangul))
	env.Equal(ot.DFLT, ScriptTagForScript(language.Common))
	env.Equal(ot.DFLT, ScriptTagForScript(0))
}
