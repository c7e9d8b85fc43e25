package otarabic

import (
	"slices"
	"unicode"
)

// joiningType is the Unicode joining type of a character. Syriac Alaph and
// Dalath/Rish have joining behaviour of their own and get pseudo types.
type joiningType uint8

const (
	jtU          joiningType = iota // non-joining
	jtL                             // left-joining
	jtR                             // right-joining
	jtD                             // dual-joining
	jtC                             // join-causing
	jtT                             // transparent
	jgAlaph                         // Syriac Alaph, right-joining
	jgDalathRish                    // Syriac Dalath and Rish, right-joining
)

var joiningTypeNames = [...]string{"U", "L", "R", "D", "C", "T", "ALAPH", "DALATH_RISH"}

func (jt joiningType) String() string {
	if int(jt) < len(joiningTypeNames) {
		return joiningTypeNames[jt]
	}
	return "?"
}

// column returns the column of the joining state table for jt.
func (jt joiningType) column() int {
	switch jt {
	case jtL:
		return 1
	case jtR:
		return 2
	case jtD, jtC:
		return 3
	case jgAlaph:
		return 4
	case jgDalathRish:
		return 5
	}
	return 0
}

type joiningRange struct {
	lo, hi rune
	jt     joiningType
}

// joiningRanges lists joining types from ArabicShaping.txt for the scripts of
// this engine, sorted by code-point. Characters not listed are looked up by
// general category.
var joiningRanges = []joiningRange{
	{0x0600, 0x0605, jtU},
	{0x0608, 0x0608, jtU},
	{0x060B, 0x060B, jtU},
	{0x0620, 0x0620, jtD},
	{0x0621, 0x0621, jtU},
	{0x0622, 0x0625, jtR},
	{0x0626, 0x0626, jtD},
	{0x0627, 0x0627, jtR},
	{0x0628, 0x0628, jtD},
	{0x0629, 0x0629, jtR},
	{0x062A, 0x062E, jtD},
	{0x062F, 0x0632, jtR},
	{0x0633, 0x063F, jtD},
	{0x0640, 0x0640, jtC},
	{0x0641, 0x0647, jtD},
	{0x0648, 0x0648, jtR},
	{0x0649, 0x064A, jtD},
	{0x066E, 0x066F, jtD},
	{0x0671, 0x0673, jtR},
	{0x0674, 0x0674, jtU},
	{0x0675, 0x0677, jtR},
	{0x0678, 0x0687, jtD},
	{0x0688, 0x0699, jtR},
	{0x069A, 0x06BF, jtD},
	{0x06C0, 0x06C0, jtR},
	{0x06C1, 0x06C2, jtD},
	{0x06C3, 0x06CB, jtR},
	{0x06CC, 0x06CC, jtD},
	{0x06CD, 0x06CD, jtR},
	{0x06CE, 0x06CE, jtD},
	{0x06CF, 0x06CF, jtR},
	{0x06D0, 0x06D1, jtD},
	{0x06D2, 0x06D3, jtR},
	{0x06D5, 0x06D5, jtR},
	{0x06DD, 0x06DD, jtU},
	{0x06EE, 0x06EF, jtR},
	{0x06FA, 0x06FC, jtD},
	{0x06FF, 0x06FF, jtD},
	{0x0710, 0x0710, jgAlaph},
	{0x0712, 0x0714, jtD},
	{0x0715, 0x0716, jgDalathRish},
	{0x0717, 0x0719, jtR},
	{0x071A, 0x071D, jtD},
	{0x071E, 0x071E, jtR},
	{0x071F, 0x0727, jtD},
	{0x0728, 0x0728, jtR},
	{0x0729, 0x0729, jtD},
	{0x072A, 0x072A, jgDalathRish},
	{0x072B, 0x072B, jtD},
	{0x072C, 0x072C, jtR},
	{0x072D, 0x072E, jtD},
	{0x072F, 0x072F, jgDalathRish},
	{0x074D, 0x074D, jtR},
	{0x074E, 0x0758, jtD},
	{0x0759, 0x075B, jtR},
	{0x075C, 0x076A, jtD},
	{0x076B, 0x076C, jtR},
	{0x076D, 0x0770, jtD},
	{0x0771, 0x0771, jtR},
	{0x0772, 0x0772, jtD},
	{0x0773, 0x0774, jtR},
	{0x0775, 0x0777, jtD},
	{0x0778, 0x0779, jtR},
	{0x077A, 0x077F, jtD},
	{0x07CA, 0x07EA, jtD},
	{0x07FA, 0x07FA, jtC},
	{0x0840, 0x0840, jtR},
	{0x0841, 0x0845, jtD},
	{0x0846, 0x0847, jtR},
	{0x0848, 0x0848, jtD},
	{0x0849, 0x0849, jtR},
	{0x084A, 0x0853, jtD},
	{0x0854, 0x0854, jtR},
	{0x0855, 0x0855, jtD},
	{0x0856, 0x0858, jtU},
	{0x08A0, 0x08A9, jtD},
	{0x08AA, 0x08AC, jtR},
	{0x08AD, 0x08AD, jtU},
	{0x08AE, 0x08AE, jtR},
	{0x08AF, 0x08B0, jtD},
	{0x08B1, 0x08B2, jtR},
	{0x08B3, 0x08B8, jtD},
	{0x08B9, 0x08B9, jtR},
	{0x08BA, 0x08C8, jtD},
	{0x1807, 0x1807, jtD},
	{0x180A, 0x180A, jtC},
	{0x1820, 0x1878, jtD},
	{0x1880, 0x1884, jtU},
	{0x1887, 0x18A8, jtD},
	{0x18AA, 0x18AA, jtD},
	{0x200C, 0x200C, jtU},
	{0x200D, 0x200D, jtC},
	{0x202F, 0x202F, jtU},
	{0xA840, 0xA871, jtD},
	{0xA872, 0xA872, jtL},
	{0xA873, 0xA873, jtU},
	{0x1E900, 0x1E943, jtD},
}

// joiningTypeOf returns the joining type of r. Characters without an entry in
// the joining table are transparent if they are non-spacing marks, enclosing
// marks or format characters, and non-joining otherwise.
func joiningTypeOf(r rune) joiningType {
	i, found := slices.BinarySearchFunc(joiningRanges, r, func(jr joiningRange, r rune) int {
		switch {
		case jr.hi < r:
			return -1
		case jr.lo > r:
			return 1
		}
		return 0
	})
	if found {
		return joiningRanges[i].jt
	}
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return jtT
	}
	return jtU
}

// action is the positional form a joining character takes. The values are
// indices into formFeatures.
type action uint8

const (
	actIsol action = iota
	actFina
	actFin2
	actFin3
	actMedi
	actMed2
	actInit
	actNone
)

type joiningEntry struct {
	prev, curr action
	next       uint8
}

// joiningStates is the joining state machine. Rows are states, columns are
// joining types U, L, R, D, Alaph and Dalath/Rish.
// Entries hold the action for the preceding joining character, the action for
// the current character, and the next state.
var joiningStates = [7][6]joiningEntry{
	// 0: prev was U, not willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actNone, actIsol, 1},
		{actNone, actIsol, 2}, {actNone, actIsol, 1}, {actNone, actIsol, 6}},
	// 1: prev was R or Alaph in isolated form, not willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actNone, actIsol, 1},
		{actNone, actIsol, 2}, {actNone, actFin2, 5}, {actNone, actIsol, 6}},
	// 2: prev was D or L in isolated form, willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actInit, actFina, 1},
		{actInit, actFina, 3}, {actInit, actFina, 4}, {actInit, actFina, 6}},
	// 3: prev was D in final form, willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actMedi, actFina, 1},
		{actMedi, actFina, 3}, {actMedi, actFina, 4}, {actMedi, actFina, 6}},
	// 4: prev was Alaph in final form, not willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actMed2, actIsol, 1},
		{actMed2, actIsol, 2}, {actMed2, actFin2, 5}, {actMed2, actIsol, 6}},
	// 5: prev was Alaph in fin2/fin3 form, not willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actIsol, actIsol, 1},
		{actIsol, actIsol, 2}, {actIsol, actFin2, 5}, {actIsol, actIsol, 6}},
	// 6: prev was Dalath or Rish, not willing to join
	{{actNone, actNone, 0}, {actNone, actIsol, 2}, {actNone, actIsol, 1},
		{actNone, actIsol, 2}, {actNone, actFin3, 5}, {actNone, actIsol, 6}},
}

// resolveJoining runs the joining state machine over runes and returns the
// positional form of every character. Transparent characters are skipped and
// get actNone. pre and post are the characters surrounding the run, in
// logical order; they influence the forms at the run boundaries but are not
// shaped.
func resolveJoining(runes, pre, post []rune) []action {
	actions := make([]action, len(runes))
	state := uint8(0)
	for i := len(pre) - 1; i >= 0; i-- {
		jt := joiningTypeOf(pre[i])
		if jt == jtT {
			continue
		}
		state = joiningStates[state][jt.column()].next
		break
	}
	prev := -1
	for i, r := range runes {
		jt := joiningTypeOf(r)
		if jt == jtT {
			actions[i] = actNone
			continue
		}
		entry := joiningStates[state][jt.column()]
		if entry.prev != actNone && prev >= 0 {
			actions[prev] = entry.prev
		}
		actions[i] = entry.curr
		prev, state = i, entry.next
	}
	for _, r := range post {
		jt := joiningTypeOf(r)
		if jt == jtT {
			continue
		}
		entry := joiningStates[state][jt.column()]
		if entry.prev != actNone && prev >= 0 {
			actions[prev] = entry.prev
		}
		break
	}
	return actions
}

func isMongolianFVS(r rune) bool {
	return (r >= 0x180B && r <= 0x180D) || r == 0x180F
}

// copyToVariationSelectors gives Mongolian free variation selectors the form
// of the preceding character, so that ligatures of base and selector match.
func copyToVariationSelectors(runes []rune, actions []action) {
	for i := 1; i < len(runes); i++ {
		if isMongolianFVS(runes[i]) {
			actions[i] = actions[i-1]
		}
	}
}
