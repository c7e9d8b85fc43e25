package otindic

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/otshape/internal/syllabic"
)

type category uint8

const (
	catOther category = iota
	catConsonant
	catRa
	catVowel // independent vowel
	catNukta
	catHalant
	catZWNJ
	catZWJ
	catMatra
	catModifier // candrabindu, anusvara, visarga
	catAccent   // Vedic signs
	catPlaceholder
	catDottedCircle
	catRepha // logical repha
)

func isBase(c category) bool {
	switch c {
	case catConsonant, catRa, catVowel, catPlaceholder, catDottedCircle:
		return true
	}
	return false
}

func isConsonant(c category) bool {
	return c == catConsonant || c == catRa
}

func isDependent(c category) bool {
	switch c {
	case catNukta, catHalant, catMatra, catModifier, catAccent, catRepha:
		return true
	}
	return false
}

// matraPos is the visual position of a dependent vowel relative to the base.
type matraPos uint8

const (
	matraPost matraPos = iota
	matraPre
	matraAbove
	matraBelow
)

// indicScript describes the differences between the Indic blocks.
type indicScript struct {
	script language.Script
	block  rune
	// positions of matras deviating from the Devanagari defaults
	positions map[rune]matraPos
	// Reph is Ra+Halant+ZWJ instead of Ra+Halant
	explicitReph bool
	// Ra after Halant takes a below-base form, whatever the font says
	belowRa bool
}

var indicScripts = []*indicScript{
	{script: language.Devanagari, block: 0x0900, belowRa: true,
		positions: map[rune]matraPos{0x093F: matraPre, 0x094E: matraPre}},
	{script: language.Bengali, block: 0x0980, belowRa: true,
		positions: map[rune]matraPos{0x09BF: matraPre, 0x09C7: matraPre, 0x09C8: matraPre, 0x09D7: matraPost}},
	{script: language.Gurmukhi, block: 0x0A00, belowRa: true,
		positions: map[rune]matraPos{0x0A3F: matraPre, 0x0A4B: matraAbove, 0x0A4C: matraAbove}},
	{script: language.Gujarati, block: 0x0A80, belowRa: true,
		positions: map[rune]matraPos{0x0ABF: matraPre}},
	{script: language.Oriya, block: 0x0B00, belowRa: true,
		positions: map[rune]matraPos{0x0B47: matraPre, 0x0B3F: matraAbove, 0x0B56: matraAbove, 0x0B57: matraPost}},
	{script: language.Tamil, block: 0x0B80,
		positions: map[rune]matraPos{0x0BC6: matraPre, 0x0BC7: matraPre, 0x0BC8: matraPre,
			0x0BC0: matraAbove, 0x0BC1: matraPost, 0x0BC2: matraPost, 0x0BD7: matraPost}},
	{script: language.Telugu, block: 0x0C00, explicitReph: true,
		positions: map[rune]matraPos{0x0C3E: matraAbove, 0x0C3F: matraAbove, 0x0C40: matraAbove,
			0x0C41: matraPost, 0x0C42: matraPost, 0x0C43: matraPost, 0x0C44: matraPost,
			0x0C4A: matraAbove, 0x0C4B: matraAbove, 0x0C4C: matraAbove}},
	{script: language.Kannada, block: 0x0C80,
		positions: map[rune]matraPos{0x0CBF: matraAbove, 0x0CC1: matraPost, 0x0CC2: matraPost,
			0x0CC3: matraPost, 0x0CC4: matraPost, 0x0CC7: matraPost, 0x0CC8: matraPost}},
	{script: language.Malayalam, block: 0x0D00,
		positions: map[rune]matraPos{0x0D46: matraPre, 0x0D47: matraPre, 0x0D48: matraPre,
			0x0D41: matraPost, 0x0D42: matraPost, 0x0D57: matraPost}},
}

// scriptFor returns the block description for an Indic script. Unknown
// scripts are treated like Devanagari.
func scriptFor(script language.Script) *indicScript {
	for _, sc := range indicScripts {
		if sc.script == script {
			return sc
		}
	}
	return indicScripts[0]
}

func isIndicScript(script language.Script) bool {
	for _, sc := range indicScripts {
		if sc.script == script {
			return true
		}
	}
	return false
}

// category classifies a code-point by its offset within the script's block.
// Characters outside of the block are classified if they take part in
// syllables of every Indic script.
func (sc *indicScript) category(r rune) category {
	switch r {
	case 0x200C:
		return catZWNJ
	case 0x200D:
		return catZWJ
	case syllabic.DottedCircle:
		return catDottedCircle
	case 0x00A0, 0x2010, 0x2011, 0x2012, 0x2013, 0x2014:
		return catPlaceholder
	case 0x09F0: // Assamese RA
		return catRa
	case 0x0D4E: // Malayalam dot reph
		return catRepha
	}
	if (r >= 0x1CD0 && r <= 0x1CFF || r >= 0xA8E0 && r <= 0xA8F1) && unicode.IsMark(r) {
		return catAccent
	}
	o := r - sc.block
	if o < 0 || o >= 0x80 {
		return catOther
	}
	letter, mark := unicode.IsLetter(r), unicode.IsMark(r)
	switch {
	case o <= 0x03 && mark:
		return catModifier
	case o >= 0x04 && o <= 0x14 && letter, o == 0x60 && letter, o == 0x61 && letter:
		return catVowel
	case o == 0x30 && letter:
		return catRa
	case o >= 0x15 && o <= 0x39 && letter, o >= 0x58 && o <= 0x5F && letter:
		return catConsonant
	case o == 0x3C:
		return catNukta
	case o == 0x4D:
		return catHalant
	case o >= 0x51 && o <= 0x54 && mark:
		return catAccent
	case o >= 0x3A && o <= 0x63 && mark:
		return catMatra
	case o >= 0x66 && o <= 0x6F:
		return catPlaceholder
	case o >= 0x70 && mark:
		return catModifier
	case letter && o != 0x3D && o != 0x50: // not avagraha or OM
		return catConsonant
	}
	return catOther
}

// matraPosition returns the visual position of a matra. The defaults follow
// the layout of the Devanagari block.
func (sc *indicScript) matraPosition(r rune) matraPos {
	if p, ok := sc.positions[r]; ok {
		return p
	}
	switch o := r - sc.block; {
	case o >= 0x41 && o <= 0x44, o == 0x56, o == 0x57, o == 0x62, o == 0x63:
		return matraBelow
	case o >= 0x45 && o <= 0x48, o == 0x3A, o == 0x55:
		return matraAbove
	}
	return matraPost
}
