package otshape

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Complete list at:
// https://docs.microsoft.com/en-us/typography/opentype/spec/scripttags
//
// Most of the script tags are the same as the ISO 15924 tag but lowercased.
// So we just do that, and handle the exceptional cases in a switch.

func oldTagFromScript(script language.Script) ot.Tag {
	switch script {
	case 0, language.Common, language.Inherited, language.Unknown:
		return ot.DFLT
	case language.Mathematical_notation:
		return ot.T("math")
	case language.Hiragana: // Katakana and Hiragana both map to 'kana'
		return ot.T("kana")
	case language.Lao: // trailing spaces are preserved, unlike ISO 15924
		return ot.T("lao ")
	case language.Yi:
		return ot.T("yi  ")
	case language.Nko:
		return ot.T("nko ")
	case language.Vai:
		return ot.T("vai ")
	}
	return ot.Tag(uint32(script) | 0x20000000) // lowercase first letter
}

func newTagFromScript(script language.Script) ot.Tag {
	switch script {
	case language.Bengali:
		return ot.T("bng2")
	case language.Devanagari:
		return ot.T("dev2")
	case language.Gujarati:
		return ot.T("gjr2")
	case language.Gurmukhi:
		return ot.T("gur2")
	case language.Kannada:
		return ot.T("knd2")
	case language.Malayalam:
		return ot.T("mlm2")
	case language.Oriya:
		return ot.T("ory2")
	case language.Tamil:
		return ot.T("tml2")
	case language.Telugu:
		return ot.T("tel2")
	case language.Myanmar:
		return ot.T("mym2")
	}
	return ot.DFLT
}

// ScriptTags returns the candidate OpenType script tags for a script, most
// preferred first: new-style Indic tags ('dev3', then 'dev2'), then the
// old-style tag. Weak or unknown scripts have no candidates.
func ScriptTags(script language.Script) []ot.Tag {
	var tags []ot.Tag
	if tag := newTagFromScript(script); tag != ot.DFLT {
		// Myanmar maps to 'mym2', but there is no 'mym3'.
		if tag != ot.T("mym2") {
			tags = append(tags, tag&^0xff|'3')
		}
		tags = append(tags, tag)
	}
	if old := oldTagFromScript(script); old != ot.DFLT {
		tags = append(tags, old)
	}
	return tags
}

// ScriptTagForScript returns the preferred OpenType script tag for a given
// ISO 15924 script code. It will return the DFLT-tag for unknown or weak scripts.
func ScriptTagForScript(script language.Script) ot.Tag {
	if old := oldTagFromScript(script); old != ot.DFLT {
		if tag := newTagFromScript(script); tag != ot.DFLT {
			return tag
		}
		return old
	}
	return ot.DFLT
}

// language2opentype maps ISO 639 base languages to OpenType language system tags.
// Chinese is handled separately, as it depends on script and region.
var language2opentype = map[string]string{
	"af":  "AFK", // Afrikaans
	"am":  "AMH", // Amharic
	"ar":  "ARA", // Arabic
	"as":  "ASM", // Assamese
	"az":  "AZE", // Azerbaijani
	"be":  "BEL", // Belarusian
	"bg":  "BGR", // Bulgarian
	"bn":  "BEN", // Bengali
	"bo":  "TIB", // Tibetan
	"ca":  "CAT", // Catalan
	"cs":  "CSY", // Czech
	"cy":  "WEL", // Welsh
	"da":  "DAN", // Danish
	"de":  "DEU", // German
	"dv":  "DIV", // Dhivehi
	"el":  "ELL", // Greek
	"en":  "ENG", // English
	"es":  "ESP", // Spanish
	"et":  "ETI", // Estonian
	"eu":  "EUQ", // Basque
	"fa":  "FAR", // Persian
	"fi":  "FIN", // Finnish
	"fr":  "FRA", // French
	"ga":  "IRI", // Irish
	"gu":  "GUJ", // Gujarati
	"ha":  "HAU", // Hausa
	"he":  "IWR", // Hebrew
	"hi":  "HIN", // Hindi
	"hr":  "HRV", // Croatian
	"hu":  "HUN", // Hungarian
	"hy":  "HYE", // Armenian
	"id":  "IND", // Indonesian
	"is":  "ISL", // Icelandic
	"it":  "ITA", // Italian
	"ja":  "JAN", // Japanese
	"ka":  "KAT", // Georgian
	"kk":  "KAZ", // Kazakh
	"km":  "KHM", // Khmer
	"kn":  "KAN", // Kannada
	"ko":  "KOR", // Korean
	"ks":  "KSH", // Kashmiri
	"ku":  "KUR", // Kurdish
	"lo":  "LAO", // Lao
	"lt":  "LTH", // Lithuanian
	"lv":  "LVI", // Latvian
	"mk":  "MKD", // Macedonian
	"ml":  "MAL", // Malayalam
	"mn":  "MNG", // Mongolian
	"mr":  "MAR", // Marathi
	"ms":  "MLY", // Malay
	"mt":  "MTS", // Maltese
	"my":  "BRM", // Burmese
	"nb":  "NOR", // Norwegian Bokmål
	"ne":  "NEP", // Nepali
	"nl":  "NLD", // Dutch
	"nn":  "NYN", // Norwegian Nynorsk
	"or":  "ORI", // Odia
	"pa":  "PAN", // Punjabi
	"pl":  "PLK", // Polish
	"ps":  "PAS", // Pashto
	"pt":  "PTG", // Portuguese
	"ro":  "ROM", // Romanian
	"ru":  "RUS", // Russian
	"sa":  "SAN", // Sanskrit
	"sd":  "SND", // Sindhi
	"si":  "SNH", // Sinhala
	"sk":  "SKY", // Slovak
	"sl":  "SLV", // Slovenian
	"sq":  "SQI", // Albanian
	"sr":  "SRB", // Serbian
	"sv":  "SVE", // Swedish
	"sw":  "SWK", // Swahili
	"syr": "SYR", // Syriac
	"ta":  "TAM", // Tamil
	"te":  "TEL", // Telugu
	"th":  "THA", // Thai
	"ti":  "TGY", // Tigrinya
	"tr":  "TRK", // Turkish
	"ug":  "UYG", // Uyghur
	"uk":  "UKR", // Ukrainian
	"ur":  "URD", // Urdu
	"uz":  "UZB", // Uzbek
	"vi":  "VIT", // Vietnamese
	"yi":  "JII", // Yiddish
}

// LanguageTags returns the candidate OpenType language system tags for a BCP 47
// language tag. The undetermined language has no candidates; the shape plan
// then uses the script's default language system.
func LanguageTags(lang xlanguage.Tag) []ot.Tag {
	if lang == xlanguage.Und {
		return nil
	}
	base, conf := lang.Base()
	if conf == xlanguage.No {
		return nil
	}
	if base.String() == "zh" {
		return []ot.Tag{chineseLanguageTag(lang)}
	}
	if t, ok := language2opentype[base.String()]; ok {
		return []ot.Tag{ot.T(t)}
	}
	return nil
}

// LanguageTagForLanguage returns the appropriate OpenType language tag for a given
// BCP 47 language tag.
// If the base language cannot be determined with confidence of at least `conf`,
// or is not in the table of known languages, the dflt-tag will be returned.
func LanguageTagForLanguage(lang xlanguage.Tag, conf xlanguage.Confidence) ot.Tag {
	if base, c := lang.Base(); c < conf || base.String() == "und" {
		return ot.DFLTLang
	}
	tags := LanguageTags(lang)
	if len(tags) == 0 {
		return ot.DFLTLang
	}
	tracer().Debugf("OpenType language matched %s (%s) : %s", display.English.Tags().Name(lang),
		display.Self.Name(lang), tags[0])
	return tags[0]
}

func chineseLanguageTag(lang xlanguage.Tag) ot.Tag {
	region, _ := lang.Region()
	switch region.String() {
	case "HK", "MO":
		return ot.T("ZHH")
	case "TW":
		return ot.T("ZHT")
	}
	if script, _ := lang.Script(); script.String() == "Hant" {
		return ot.T("ZHT")
	}
	return ot.T("ZHS")
}
