package otcore

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/otshape"
)

// Shaper is the default OpenType shaping engine.
//
// It provides a conservative baseline for scripts that do not have a
// script-specific shaper in the candidate list.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns a new core shaping engine instance.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "core"
}

// Match returns how suitable the core engine is for ctx.
//
// It prefers the simple alphabetic scripts and otherwise returns a low
// confidence, so script-specific engines can outvote it. The core engine never
// refuses a run, which makes it the default engine of a shaper.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	switch ctx.Script {
	case language.Latin, language.Greek, language.Cyrillic:
		return otshape.ShaperConfidenceHigh
	}
	return otshape.ShaperConfidenceLow
}

// New returns a new independent core engine instance.
func (Shaper) New() otshape.ShapingEngine {
	return Shaper{}
}

// ZeroMarkWidths reports how advances of unattached marks are handled.
func (Shaper) ZeroMarkWidths() otshape.ZeroWidthMarksMode {
	return otshape.ZeroWidthMarksByGDEF
}
