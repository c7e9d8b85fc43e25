package otarabic

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// presentationForms holds the presentation form code-points of a letter,
// indexed by actIsol, actFina, actMedi and actInit.
type presentationForms [actNone]rune

var (
	presentationOnce   sync.Once
	presentationByBase map[rune]presentationForms
)

// presentationFormsFor returns the presentation forms of letter r.
func presentationFormsFor(r rune) (presentationForms, bool) {
	presentationOnce.Do(func() {
		presentationByBase = buildPresentationForms()
	})
	forms, ok := presentationByBase[r]
	return forms, ok
}

// buildPresentationForms collects the presentation forms of Arabic letters
// from the Arabic Presentation Forms blocks. The form is taken from the
// character name, the letter from its compatibility composition.
func buildPresentationForms() map[rune]presentationForms {
	table := make(map[rune]presentationForms, 128)
	add := func(from, to rune) {
		for u := from; u <= to; u++ {
			act, ok := formFromName(runenames.Name(u))
			if !ok {
				continue
			}
			base := presentationBase(u)
			if base == 0 {
				continue
			}
			forms := table[base]
			if forms[act] == 0 {
				forms[act] = u
				table[base] = forms
			}
		}
	}
	add(0xFB50, 0xFDFF) // Arabic Presentation Forms-A
	add(0xFE70, 0xFEFF) // Arabic Presentation Forms-B
	return table
}

func formFromName(name string) (action, bool) {
	if !strings.HasPrefix(name, "ARABIC LETTER ") {
		return actNone, false
	}
	switch {
	case strings.HasSuffix(name, " ISOLATED FORM"):
		return actIsol, true
	case strings.HasSuffix(name, " FINAL FORM"):
		return actFina, true
	case strings.HasSuffix(name, " MEDIAL FORM"):
		return actMedi, true
	case strings.HasSuffix(name, " INITIAL FORM"):
		return actInit, true
	}
	return actNone, false
}

// presentationBase returns the letter a presentation form stands for, or 0
// if the form composes to more than a single Arabic letter.
func presentationBase(u rune) rune {
	composed := []rune(norm.NFKC.String(string(u)))
	if len(composed) != 1 {
		return 0
	}
	if r := composed[0]; unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r) {
		return r
	}
	return 0
}

// lamAlef maps variants of Alef to the isolated form of their ligature with
// Lam. The final form of each ligature follows its isolated form.
var lamAlef = map[rune]rune{
	0x0622: 0xFEF5, // with madda above
	0x0623: 0xFEF7, // with hamza above
	0x0625: 0xFEF9, // with hamza below
	0x0627: 0xFEFB,
}

// needsPresentationForms is true for Arabic runs with a font lacking
// positional GSUB features.
func needsPresentationForms(ctx otshape.PreprocessContext) bool {
	if ctx.Font == nil || ctx.Selection.Script != language.Arabic {
		return false
	}
	gsub := ctx.Font.Layout().GSUB
	for _, act := range []action{actIsol, actFina, actMedi, actInit} {
		if gsub.HasFeature(formFeatures[act]) {
			return false
		}
	}
	return true
}

// applyPresentationForms replaces glyphs of joining letters by glyphs for
// their presentation forms, if the font maps them. Lam followed by Alef is
// replaced by a ligature, unless the font has a 'rlig' feature.
func applyPresentationForms(buf *otlayout.Buffer, actions []action, ctx otshape.PreprocessContext) {
	for i := range buf.Info {
		act := actions[i]
		switch act {
		case actNone:
			continue
		case actFin2, actFin3:
			act = actFina
		case actMed2:
			act = actMedi
		}
		forms, ok := presentationFormsFor(buf.Info[i].Codepoint)
		if !ok || forms[act] == 0 {
			continue
		}
		if g := ctx.Glyph(forms[act]); g != ot.NotDef {
			buf.Info[i].GlyphID = g
		}
	}
	if ctx.Font.Layout().GSUB.HasFeature(ot.T("rlig")) {
		return
	}
	ligateLamAlef(buf, actions, ctx)
}

// ligateLamAlef replaces Lam+Alef pairs by ligature glyphs. The ligature takes
// the final form if the Lam joins to the preceding letter.
func ligateLamAlef(buf *otlayout.Buffer, actions []action, ctx otshape.PreprocessContext) {
	for i, j := 0, 0; i+1 < buf.Len(); i, j = i+1, j+1 {
		if buf.Info[i].Codepoint != 0x0644 {
			continue
		}
		lig, ok := lamAlef[buf.Info[i+1].Codepoint]
		if !ok {
			continue
		}
		if actions[j] == actMedi {
			lig++
		}
		g := ctx.Glyph(lig)
		if g == ot.NotDef {
			continue
		}
		buf.Info[i].GlyphID = g
		buf.MergeClusters(i, i+1)
		buf.RemoveRange(i+1, i+2)
		j++
	}
}
