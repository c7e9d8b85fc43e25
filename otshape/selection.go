package otshape

import (
	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"
)

// sniffLimit is the number of code-points inspected to guess the script of a run.
const sniffLimit = 10

func isWeakScript(s language.Script) bool {
	return s == 0 || s == language.Common || s == language.Inherited || s == language.Unknown
}

// sniffScript returns the first strong script of the first n code-points, or
// Common if there is none.
func sniffScript(runes []rune, n int) language.Script {
	for i, r := range runes {
		if i >= n {
			break
		}
		if s := language.LookupScript(r); !isWeakScript(s) {
			return s
		}
	}
	return language.Common
}

// selectionContextFor derives the selection context of a run. A weak script is
// replaced by sniffing the first code-points of the run.
func selectionContextFor(buf UnicodeBuffer) SelectionContext {
	script := buf.Script
	if isWeakScript(script) {
		script = sniffScript(buf.Runes, sniffLimit)
		tracer().Debugf("script of run sniffed as %s", script)
	}
	return SelectionContext{
		Direction: buf.Direction,
		Script:    script,
		Language:  buf.Language,
		ScriptTag: ScriptTagForScript(script),
		LangTag:   LanguageTagForLanguage(buf.Language, xlanguage.Low),
	}
}

// selectShapingEngine picks the candidate with the highest confidence. Ties are
// broken by name, to be independent of the order of candidates.
func selectShapingEngine(candidates []ShapingEngine, ctx SelectionContext) (ShapingEngine, error) {
	var (
		best      ShapingEngine
		bestScore = ShaperConfidenceNone
	)
	for _, sh := range candidates {
		if sh == nil {
			continue
		}
		score := sh.Match(ctx)
		if score <= ShaperConfidenceNone {
			continue
		}
		if best == nil || score > bestScore || (score == bestScore && sh.Name() < best.Name()) {
			best = sh
			bestScore = score
		}
	}
	if best == nil {
		return nil, ErrNoShaper
	}
	tracer().Debugf("selected shaping engine %q for script %s", best.Name(), ctx.Script)
	inst := best.New()
	if inst == nil {
		inst = best
	}
	return inst, nil
}
