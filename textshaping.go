package textshaping

import (
	"sync"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/npillmayer/textshaping/otshape/otarabic"
	"github.com/npillmayer/textshaping/otshape/otcore"
	"github.com/npillmayer/textshaping/otshape/othangul"
	"github.com/npillmayer/textshaping/otshape/othebrew"
	"github.com/npillmayer/textshaping/otshape/otindic"
	"github.com/npillmayer/textshaping/otshape/otkhmer"
	"github.com/npillmayer/textshaping/otshape/otmyanmar"
	"github.com/npillmayer/textshaping/otshape/otthai"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Engines returns new instances of all shaping engines of this module.
// The core engine serves every script no other engine claims.
func Engines() []otshape.ShapingEngine {
	return []otshape.ShapingEngine{
		otcore.New(),
		otarabic.New(),
		othebrew.New(),
		othangul.New(),
		otthai.New(),
		otkhmer.New(),
		otmyanmar.New(),
		otindic.New(),
		otindic.NewUSE(),
	}
}

// NewShaper creates a shaper with all shaping engines of this module and the
// default configuration.
func NewShaper() *otshape.Shaper {
	return otshape.NewShaper(Engines()...)
}

var defaultShaper = sync.OnceValue(NewShaper)

// NewFace wraps a font for shaping with the default shaper.
func NewFace(font ot.Font) *otshape.Face {
	return defaultShaper().NewFace(font)
}

// ShapeString shapes text as a single run with the default shaper.
//
// Script and direction are guessed from the text. features is a
// comma-separated list of feature settings, as accepted by
// [otshape.ParseFeatures], e.g. "-liga,smcp". If text is empty, it does nothing.
func ShapeString(face *otshape.Face, text string, features string) ([]otshape.GlyphRecord, error) {
	if text == "" {
		return nil, nil
	}
	feats, err := otshape.ParseFeatures(features)
	if err != nil {
		return nil, err
	}
	buf := otshape.NewUnicodeBuffer(text)
	buf.GuessSegmentProperties()
	return shape(face, buf, feats)
}

// ShapeRun shapes text as a single run with explicit segment properties.
//
// This is a convenience API for short pieces of text. Clients who need more
// control, such as shaping runs of a longer paragraph with surrounding
// context, need to use package otshape directly.
func ShapeRun(face *otshape.Face, text string, dir bidi.Direction, script language.Script,
	lang xlanguage.Tag, features ...otshape.FeatureRange) ([]otshape.GlyphRecord, error) {
	//
	if text == "" {
		return nil, nil
	}
	buf := otshape.NewUnicodeBuffer(text)
	buf.Direction = dir
	buf.Script = script
	buf.Language = lang
	return shape(face, buf, features)
}

// ShapeLatinText shapes UTF-8 text as one left-to-right run in “Latin” (i.e.,
// Western) script, with language English.
func ShapeLatinText(face *otshape.Face, text string) ([]otshape.GlyphRecord, error) {
	return ShapeRun(face, text, bidi.LeftToRight, language.Latin, xlanguage.English)
}

func shape(face *otshape.Face, buf otshape.UnicodeBuffer, features []otshape.FeatureRange) ([]otshape.GlyphRecord, error) {
	out, err := defaultShaper().Shape(face, buf, features)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("shaped %d code-points to %d glyphs", buf.Len(), out.Len())
	return otshape.GlyphRecords(out), nil
}
