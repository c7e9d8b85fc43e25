package otarabic

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
)

// formFeatures are the positional features, indexed by action.
var formFeatures = [...]ot.Tag{
	actIsol: ot.T("isol"),
	actFina: ot.T("fina"),
	actFin2: ot.T("fin2"),
	actFin3: ot.T("fin3"),
	actMedi: ot.T("medi"),
	actMed2: ot.T("med2"),
	actInit: ot.T("init"),
}

// Shaper is the shaping engine for joining scripts.
type Shaper struct{}

var _ otshape.ShapingEngine = Shaper{}
var _ otshape.ShapingEngineFeatureHook = Shaper{}
var _ otshape.ShapingEnginePreprocessHook = Shaper{}
var _ otshape.ShapingEnginePolicy = Shaper{}

// New returns the Arabic shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name returns the stable engine name used for tie-breaking.
func (Shaper) Name() string {
	return "arabic"
}

// Match returns how suitable the engine is for ctx. Arabic is matched with
// certainty, the other joining scripts with high confidence.
func (Shaper) Match(ctx otshape.SelectionContext) otshape.ShaperConfidence {
	switch ctx.Script {
	case language.Arabic:
		return otshape.ShaperConfidenceCertain
	case language.Syriac, language.Mandaic, language.Nko, language.Mongolian,
		language.Adlam, language.Phags_Pa:
		return otshape.ShaperConfidenceHigh
	}
	return otshape.ShaperConfidenceNone
}

// New returns a new independent engine instance.
func (Shaper) New() otshape.ShapingEngine {
	return Shaper{}
}

// ZeroMarkWidths reports how advances of unattached marks are handled.
func (Shaper) ZeroMarkWidths() otshape.ZeroWidthMarksMode {
	return otshape.ZeroWidthMarksByGDEF
}

// FeatureSpecs returns the positional features, each gated by the form the
// preprocessor assigned to a glyph, followed by 'clig' and 'mset'.
func (Shaper) FeatureSpecs(ctx otshape.SelectionContext) []otshape.FeatureSpec {
	specs := make([]otshape.FeatureSpec, 0, len(formFeatures)+2)
	for act, tag := range formFeatures {
		specs = append(specs, otshape.FeatureSpec{Tag: tag, Gate: formGate(action(act))})
	}
	specs = append(specs,
		otshape.FeatureSpec{Tag: ot.T("clig")},
		otshape.FeatureSpec{Tag: ot.T("mset")},
	)
	return specs
}

func formGate(act action) func(otlayout.ScriptFeatures) bool {
	bit := formBit(act)
	return func(sf otlayout.ScriptFeatures) bool {
		return sf.Has(otlayout.ArabicFamily, bit)
	}
}

func formBit(act action) uint16 {
	return 1 << act
}

// Preprocess resolves the joining forms of the run and stores them as script
// features of the glyphs. Fonts without positional GSUB features get glyphs
// of the Unicode presentation forms instead.
func (Shaper) Preprocess(buf *otlayout.Buffer, ctx otshape.PreprocessContext) {
	buf.ActivateScript(otlayout.ArabicFamily)
	runes := make([]rune, buf.Len())
	for i, info := range buf.Info {
		runes[i] = info.Codepoint
	}
	actions := resolveJoining(runes, ctx.PreContext, ctx.PostContext)
	if ctx.Selection.Script == language.Mongolian {
		copyToVariationSelectors(runes, actions)
	}
	for i, act := range actions {
		if act != actNone {
			buf.SetScriptFeatures(i, otlayout.MakeScriptFeatures(otlayout.ArabicFamily, formBit(act)))
		}
	}
	if needsPresentationForms(ctx) {
		tracer().Debugf("font has no positional features, using presentation forms")
		applyPresentationForms(buf, actions, ctx)
	}
}
