package otmyanmar

import "github.com/npillmayer/textshaping/otshape/internal/syllabic"

type category uint8

const (
	catOther category = iota
	catConsonant
	catRa
	catVowel // independent vowel
	catPlaceholder
	catDottedCircle
	catVirama
	catAsat
	catMedialYa // also Mon Na and Mon Ma
	catMedialRa
	catMedialWa
	catMedialHa
	catMedialLa
	catVPre
	catVAbv
	catVBlw
	catVPst
	catAnusvara
	catDotBelow
	catVisarga // and Shan tones
	catTone    // Pwo and other tones
	catVS      // variation selector
	catZWNJ
	catZWJ
)

const (
	ra       = 0x101B
	virama   = 0x1039
	asat     = 0x103A
	medialRa = 0x103C
	vowelE   = 0x1031
)

func categoryOf(r rune) category {
	switch {
	case r == ra:
		return catRa
	case r >= 0x1000 && r <= 0x1021, r == 0x103F, r == 0x1050, r == 0x1051, r >= 0x105A && r <= 0x105D,
		r == 0x1061, r == 0x1065, r == 0x1066, r >= 0x106E && r <= 0x1070, r >= 0x1075 && r <= 0x1081,
		r == 0x108E:
		return catConsonant
	case r >= 0x1022 && r <= 0x102A, r >= 0x1052 && r <= 0x1055:
		return catVowel
	case r >= 0x1040 && r <= 0x1049, r >= 0x1090 && r <= 0x1099, r == 0x00A0:
		return catPlaceholder
	case r == syllabic.DottedCircle:
		return catDottedCircle
	case r == virama:
		return catVirama
	case r == asat:
		return catAsat
	case r == 0x103B, r == 0x105E, r == 0x105F:
		return catMedialYa
	case r == medialRa:
		return catMedialRa
	case r == 0x103D, r == 0x1082:
		return catMedialWa
	case r == 0x103E:
		return catMedialHa
	case r == 0x1060:
		return catMedialLa
	case r == vowelE, r == 0x1084:
		return catVPre
	case r == 0x102D, r == 0x102E, r >= 0x1032 && r <= 0x1035, r >= 0x1071 && r <= 0x1074,
		r == 0x1085, r == 0x1086, r == 0x109D:
		return catVAbv
	case r == 0x102F, r == 0x1030, r == 0x1058, r == 0x1059:
		return catVBlw
	case r == 0x102B, r == 0x102C, r == 0x1056, r == 0x1057, r == 0x1062, r == 0x1067, r == 0x1068,
		r == 0x1083:
		return catVPst
	case r == 0x1036:
		return catAnusvara
	case r == 0x1037:
		return catDotBelow
	case r == 0x1038:
		return catVisarga
	case r == 0x1063, r == 0x1064, r >= 0x1069 && r <= 0x106D, r >= 0x1087 && r <= 0x108D, r == 0x108F,
		r >= 0x109A && r <= 0x109C:
		return catTone
	case r >= 0xFE00 && r <= 0xFE0F:
		return catVS
	case r == 0x200C:
		return catZWNJ
	case r == 0x200D:
		return catZWJ
	}
	return catOther
}

func isBase(c category) bool {
	switch c {
	case catConsonant, catRa, catVowel, catPlaceholder, catDottedCircle:
		return true
	}
	return false
}

// isDependent is true for everything which may follow a base within a
// syllable.
func isDependent(c category) bool {
	return c >= catVirama && c <= catVS
}
