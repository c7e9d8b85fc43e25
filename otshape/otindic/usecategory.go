package otindic

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
	"golang.org/x/text/unicode/norm"
)

// useCategory is a simplified category of the Universal Shaping Engine.
type useCategory uint8

const (
	uOther useCategory = iota
	uBase              // consonants, independent vowels, numbers, placeholders
	uRepha             // logical repha
	uHalant            // virama, sakot, pangkon, …
	uNukta
	uVPre // pre-base vowel sign
	uDependent
	uZWNJ
	uZWJ
	uVS // variation selector
	uCGJ
)

// vowels drawn to the left of the base, encoded after it.
var usePreBaseVowels = map[rune]bool{
	0x0DD9: true, 0x0DDB: true, // Sinhala
	0x1B3E: true, 0x1B3F: true, // Balinese
	0xA9BA: true, 0xA9BB: true, // Javanese
	0x1BA6: true,               // Sundanese
	0x1A19: true,               // Buginese
	0x1A6E: true, 0x1A6F: true, 0x1A70: true, 0x1A71: true, 0x1A72: true, // Tai Tham
	0x11347: true, 0x11348: true, // Grantha
}

// repha characters, encoded in logical order at the start of a syllable.
var useRephas = map[rune]bool{
	0x11941: true, // Dives Akuru prefixed nasal sign
	0x11A3A: true, // Zanabazar Square cluster-initial RA
	0x11A84: true, 0x11A85: true, 0x11A86: true, 0x11A87: true, 0x11A88: true, 0x11A89: true, // Soyombo
}

// useScripts are the scripts shaped by the Universal Shaping Engine.
var useScripts = []language.Script{
	language.Sinhala, language.Balinese, language.Javanese, language.Sundanese,
	language.Buginese, language.Tai_Tham, language.Batak, language.Cham,
	language.Chakma, language.Grantha, language.Tirhuta, language.Sharada,
	language.Takri, language.Khojki, language.Khudawadi, language.Mahajani,
	language.Modi, language.Siddham, language.Newa, language.Bhaiksuki,
	language.Tagalog, language.Hanunoo, language.Buhid, language.Tagbanwa,
	language.Limbu, language.Kayah_Li, language.Lepcha, language.Rejang,
	language.Saurashtra, language.Syloti_Nagri, language.Meetei_Mayek,
	language.Kaithi, language.Brahmi, language.Kharoshthi, language.Zanabazar_Square,
	language.Soyombo, language.Dives_Akuru, language.Masaram_Gondi,
	language.Gunjala_Gondi, language.Dogra, language.Nandinagari,
}

func isUSEScript(script language.Script) bool {
	for _, s := range useScripts {
		if s == script {
			return true
		}
	}
	return false
}

// useCategoryOf classifies a code-point by its general category and its
// canonical combining class: marks of class 9 are halants, marks of class 7
// are nuktas.
func useCategoryOf(r rune) useCategory {
	switch {
	case r == 0x200C:
		return uZWNJ
	case r == 0x200D:
		return uZWJ
	case r == 0x034F:
		return uCGJ
	case r >= 0xFE00 && r <= 0xFE0F:
		return uVS
	case r == syllabic.DottedCircle || r == 0x00A0:
		return uBase
	case useRephas[r]:
		return uRepha
	case usePreBaseVowels[r]:
		return uVPre
	case unicode.IsMark(r):
		switch norm.NFD.PropertiesString(string(r)).CCC() {
		case 9:
			return uHalant
		case 7:
			return uNukta
		}
		return uDependent
	case unicode.IsLetter(r), unicode.Is(unicode.Nd, r):
		return uBase
	}
	return uOther
}

func isUSEDependent(c useCategory) bool {
	switch c {
	case uHalant, uNukta, uVPre, uDependent, uVS:
		return true
	}
	return false
}
