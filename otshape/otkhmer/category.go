package otkhmer

import "github.com/npillmayer/textshaping/otshape/internal/syllabic"

type category uint8

const (
	catOther category = iota
	catConsonant
	catVowel // independent vowel
	catNumber
	catCoeng
	catZWNJ
	catZWJ
	catPlaceholder
	catDottedCircle
	catRo
	catVAbv
	catVBlw
	catVPre
	catVPst
	catRobatic // register shifters
	catXgroup  // consonant modifiers above
	catYgroup  // consonant modifiers after
)

func categoryOf(r rune) category {
	switch {
	case r == ro:
		return catRo
	case r >= 0x1780 && r <= 0x17A2:
		return catConsonant
	case r >= 0x17A3 && r <= 0x17B3:
		return catVowel
	case r == 0x17B6, r == 0x17BF, r == 0x17C0, r == 0x17C4, r == 0x17C5:
		return catVPst
	case r >= 0x17B7 && r <= 0x17BA, r == 0x17BE:
		return catVAbv
	case r >= 0x17BB && r <= 0x17BD:
		return catVBlw
	case r >= 0x17C1 && r <= 0x17C3:
		return catVPre
	case r == 0x17C6, r == 0x17CB, r >= 0x17CD && r <= 0x17D1:
		return catXgroup
	case r == 0x17C7, r == 0x17C8, r == 0x17D3, r == 0x17DD:
		return catYgroup
	case r == 0x17C9, r == 0x17CA, r == 0x17CC:
		return catRobatic
	case r == coeng:
		return catCoeng
	case r == 0x17D9, r == 0x00A0:
		return catPlaceholder
	case r == syllabic.DottedCircle:
		return catDottedCircle
	case r == 0x200C:
		return catZWNJ
	case r == 0x200D:
		return catZWJ
	case r >= 0x17E0 && r <= 0x17E9, r >= 0x17F0 && r <= 0x17F9:
		return catNumber
	}
	return catOther
}

func isBase(c category) bool {
	switch c {
	case catConsonant, catRo, catVowel, catPlaceholder, catDottedCircle:
		return true
	}
	return false
}

func isDependent(c category) bool {
	switch c {
	case catVAbv, catVBlw, catVPre, catVPst, catRobatic, catXgroup, catYgroup:
		return true
	}
	return false
}
