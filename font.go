/*
Package textshaping shapes Unicode text with OpenType fonts.

It is the entry point for clients which want to shape text without wiring
the parts of this module themselves. Fonts are loaded by package otfont,
text is shaped by package otshape together with its script specific
engines, and glyph substitution and positioning is done by package otlayout.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

▪︎ A "face" is a font prepared for shaping. It caches shape plans, i.e.
the lookups to apply for a certain script and language.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

# Status

Does not yet contain methods for font collections (*.ttc), e.g.,
/System/Library/Fonts/Helvetica.ttc on Mac OS.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package textshaping

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/otfont"
)

// tracer writes to trace with key 'textshaping'
func tracer() tracing.Trace {
	return tracing.Select("textshaping")
}

// LoadFont loads an OpenType font (TTF or OTF) from a file.
func LoadFont(fontfile string, opts ...otfont.Option) (*otfont.Font, error) {
	f, err := otfont.Load(fontfile, opts...)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded font %s from %s", f.Names().Full, fontfile)
	return f, nil
}

// ParseFont loads an OpenType font (TTF or OTF) from memory. The bytes must
// not change as long as the font is in use.
func ParseFont(fbytes []byte, opts ...otfont.Option) (*otfont.Font, error) {
	f, err := otfont.Parse(fbytes, opts...)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("parsed font %s", f.Names().Full)
	return f, nil
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist.
func FamilyName(f *otfont.Font) (family, subfamily string) {
	names := f.Names()
	return names.Family, names.Subfamily
}
