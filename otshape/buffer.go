package otshape

import (
	"fmt"

	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Flags are buffer flags, telling the shaper about the context of a run.
type Flags uint8

const (
	FlagBOT                     Flags = 1 << iota // run starts the text
	FlagEOT                                       // run ends the text
	FlagRemoveDefaultIgnorables                   // remove glyphs for default ignorables instead of hiding them
)

// ClusterLevel selects how clusters are formed.
type ClusterLevel uint8

const (
	// MonotoneGraphemes merges marks into the cluster of their base before shaping.
	MonotoneGraphemes ClusterLevel = iota
	// MonotoneCharacters keeps one cluster per character, merged by ligatures.
	MonotoneCharacters
	// Characters is like MonotoneCharacters and does not merge on reordering.
	Characters
)

// UnicodeBuffer is the input of a shaping call: a run of code-points in logical
// order, together with segment metadata.
type UnicodeBuffer struct {
	Runes        []rune
	Clusters     []uint32 // cluster value per rune, index into the original text
	PreContext   []rune   // text before the run, in logical order
	PostContext  []rune   // text after the run, in logical order
	Direction    bidi.Direction
	Script       language.Script // 4-letter ISO 15924 script; zero for unknown
	Language     xlanguage.Tag   // BCP 47 language tag
	ClusterLevel ClusterLevel
	Flags        Flags
}

// NewUnicodeBuffer creates a buffer for text, with cluster values set to the
// rune indices. Segment metadata is left to the caller; see
// [UnicodeBuffer.GuessSegmentProperties].
func NewUnicodeBuffer(text string) UnicodeBuffer {
	runes := []rune(text)
	clusters := make([]uint32, len(runes))
	for i := range clusters {
		clusters[i] = uint32(i)
	}
	return UnicodeBuffer{
		Runes:    runes,
		Clusters: clusters,
		Flags:    FlagBOT | FlagEOT,
	}
}

// Len returns the number of code-points of the run.
func (ub UnicodeBuffer) Len() int {
	return len(ub.Runes)
}

// Validate checks the caller contract of a buffer. Clusters must either be
// absent (and will be set to rune indices) or parallel to Runes.
func (ub UnicodeBuffer) Validate() error {
	if ub.Clusters != nil && len(ub.Clusters) != len(ub.Runes) {
		return fmt.Errorf("unicode buffer has %d runes but %d clusters: %w",
			len(ub.Runes), len(ub.Clusters), ErrBufferInvariant)
	}
	return nil
}

// cluster returns the cluster value for rune i.
func (ub UnicodeBuffer) cluster(i int) uint32 {
	if ub.Clusters == nil {
		return uint32(i)
	}
	return ub.Clusters[i]
}

// GuessSegmentProperties fills in a missing script from the first code-points
// with a strong script, and sets the direction to right-to-left if the first
// strongly directional character is right-to-left. A language is never guessed.
func (ub *UnicodeBuffer) GuessSegmentProperties() {
	if isWeakScript(ub.Script) {
		ub.Script = sniffScript(ub.Runes, len(ub.Runes))
	}
	for _, r := range ub.Runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			ub.Direction = bidi.RightToLeft
			return
		case bidi.L:
			ub.Direction = bidi.LeftToRight
			return
		}
	}
}
