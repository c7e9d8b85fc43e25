package otshape

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-text/typesetting/harfbuzz"
	"github.com/npillmayer/textshaping/ot"
)

// FeatureRange tells a shaper to turn a certain OpenType feature on or off for a
// run of code-points.
//
// Start and End are cluster positions, End is exclusive. A range with
// Start==0 and End==0 is global; a range with End==0 extends to the end of the
// run.
type FeatureRange struct {
	Feature    ot.Tag // 4-letter feature tag
	Arg        int    // optional argument for this feature
	On         bool   // turn it on or off?
	Start, End int    // position of code-points to apply feature for
}

// IsGlobal is true if the range covers the whole run.
func (fr FeatureRange) IsGlobal() bool {
	return fr.Start <= 0 && fr.End <= 0
}

// Covers is true if cluster lies inside the range.
func (fr FeatureRange) Covers(cluster uint32) bool {
	c := int(cluster)
	return c >= fr.Start && (fr.End <= 0 || c < fr.End)
}

func (fr FeatureRange) String() string {
	var sb strings.Builder
	if !fr.On {
		sb.WriteByte('-')
	}
	sb.WriteString(fr.Feature.String())
	if !fr.IsGlobal() {
		if fr.End <= 0 {
			fmt.Fprintf(&sb, "[%d:]", fr.Start)
		} else {
			fmt.Fprintf(&sb, "[%d:%d]", fr.Start, fr.End)
		}
	}
	if fr.On && fr.Arg > 1 {
		fmt.Fprintf(&sb, "=%d", fr.Arg)
	}
	return sb.String()
}

// value returns the feature value a range sets.
func (fr FeatureRange) value() uint32 {
	if !fr.On {
		return 0
	}
	if fr.Arg <= 0 {
		return 1
	}
	return uint32(fr.Arg)
}

// ParseFeatures parses a comma or space separated list of feature settings in
// the syntax used by HarfBuzz tools, e.g.
//
//	kern, -liga, aalt=2, smcp[3:5]
func ParseFeatures(s string) ([]FeatureRange, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	features := make([]FeatureRange, 0, len(fields))
	for _, f := range fields {
		hbf, err := harfbuzz.ParseFeature(f)
		if err != nil {
			return features, fmt.Errorf("otshape: feature %q: %w", f, err)
		}
		fr := FeatureRange{
			Feature: ot.Tag(hbf.Tag),
			Arg:     int(hbf.Value),
			On:      hbf.Value != 0,
			Start:   hbf.Start,
			End:     hbf.End,
		}
		if fr.End == harfbuzz.FeatureGlobalEnd {
			fr.End = 0
		}
		if fr.Arg == 1 {
			fr.Arg = 0
		}
		features = append(features, fr)
	}
	return features, nil
}

// normalizeFeatures returns a copy of features, stably sorted by tag. The
// relative order of settings for the same tag is preserved, as later settings
// override earlier ones.
func normalizeFeatures(features []FeatureRange) []FeatureRange {
	sorted := slices.Clone(features)
	slices.SortStableFunc(sorted, func(a, b FeatureRange) int {
		switch {
		case a.Feature < b.Feature:
			return -1
		case a.Feature > b.Feature:
			return 1
		}
		return 0
	})
	return sorted
}
