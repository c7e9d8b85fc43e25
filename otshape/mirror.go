package otshape

import (
	"slices"

	"github.com/npillmayer/textshaping/ot"
	"golang.org/x/text/unicode/bidi"
)

// mirrorPairs lists pairs of characters with the Bidi_Mirrored property which
// have a mirroring glyph (BidiMirroring.txt), for the characters commonly found
// in text. Mirroring is symmetric.
var mirrorPairs = [...][2]rune{
	{'(', ')'}, {'<', '>'}, {'[', ']'}, {'{', '}'},
	{0x00AB, 0x00BB}, {0x2039, 0x203A}, {0x2045, 0x2046}, {0x207D, 0x207E},
	{0x208D, 0x208E}, {0x2208, 0x220B}, {0x2209, 0x220C}, {0x220A, 0x220D},
	{0x2215, 0x29F5}, {0x223C, 0x223D}, {0x2243, 0x22CD}, {0x2264, 0x2265},
	{0x2266, 0x2267}, {0x226A, 0x226B}, {0x226E, 0x226F}, {0x2270, 0x2271},
	{0x2272, 0x2273}, {0x2276, 0x2277}, {0x227A, 0x227B}, {0x2282, 0x2283},
	{0x2284, 0x2285}, {0x2286, 0x2287}, {0x228A, 0x228B}, {0x22A2, 0x22A3},
	{0x2308, 0x2309}, {0x230A, 0x230B}, {0x2329, 0x232A}, {0x27E6, 0x27E7},
	{0x27E8, 0x27E9}, {0x27EA, 0x27EB}, {0x2983, 0x2984}, {0x2985, 0x2986},
	{0x3008, 0x3009}, {0x300A, 0x300B}, {0x300C, 0x300D}, {0x300E, 0x300F},
	{0x3010, 0x3011}, {0x3014, 0x3015}, {0x3016, 0x3017}, {0x3018, 0x3019},
	{0x301A, 0x301B}, {0xFE59, 0xFE5A}, {0xFE5B, 0xFE5C}, {0xFE5D, 0xFE5E},
	{0xFE64, 0xFE65}, {0xFF08, 0xFF09}, {0xFF1C, 0xFF1E}, {0xFF3B, 0xFF3D},
	{0xFF5B, 0xFF5D}, {0xFF5F, 0xFF60}, {0xFF62, 0xFF63},
}

var mirrorMap = func() map[rune]rune {
	m := make(map[rune]rune, 2*len(mirrorPairs))
	for _, p := range mirrorPairs {
		m[p[0]], m[p[1]] = p[1], p[0]
	}
	return m
}()

// mirrorRune returns the mirroring character of r, if any. Only characters of
// bidi class ON (other neutrals) are mirrored.
func mirrorRune(r rune) (rune, bool) {
	if props, _ := bidi.LookupRune(r); props.Class() != bidi.ON {
		return r, false
	}
	m, ok := mirrorMap[r]
	return m, ok
}

// requestsMirroring is true if a layout table implements the 'rtlm' feature.
// The font then mirrors glyphs itself.
func requestsMirroring(table *ot.LayoutTable) bool {
	if table == nil {
		return false
	}
	return slices.ContainsFunc(table.Features, func(f ot.FeatureRecord) bool {
		return f.Tag == ot.T("rtlm")
	})
}
