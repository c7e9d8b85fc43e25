package otfont

import (
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/textshaping/ot"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Names contains the naming strings of a font.
type Names struct {
	Family     string
	Subfamily  string
	Full       string
	PostScript string
}

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	LineGap         sfnt.Units // typographic line gap
}

// GlyphMetricsInfo contains all metric information for a glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units  // advance width
	LSB, RSB sfnt.Units  // side bearings
	BBox     BoundingBox // bounding box
}

// BoundingBox describes the bounding box of a glyph.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty reports whether this box has zero area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}

func units(v float32) sfnt.Units {
	return sfnt.Units(math.Round(float64(v)))
}

// Names returns the family, style, full and PostScript names of a font.
// Names not present in the font are empty.
func (f *Font) Names() Names {
	if f.sfnt == nil {
		return Names{}
	}
	name := func(id sfnt.NameID) string {
		s, err := f.sfnt.Name(nil, id)
		if err != nil {
			return ""
		}
		return s
	}
	return Names{
		Family:     name(sfnt.NameIDFamily),
		Subfamily:  name(sfnt.NameIDSubfamily),
		Full:       name(sfnt.NameIDFull),
		PostScript: name(sfnt.NameIDPostScript),
	}
}

// GlyphName returns the name of glyph g, as given by table 'post' or by the
// CFF charset. Unnamed glyphs return an empty string.
func (f *Font) GlyphName(g ot.GlyphIndex) string {
	if f.sfnt != nil {
		if name, err := f.sfnt.GlyphName(nil, sfnt.GlyphIndex(g)); err == nil && name != "" {
			return name
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Font.GlyphName(font.GID(g))
}

// Metrics retrieves selected metrics of a font, in design units.
func (f *Font) Metrics() FontMetricsInfo {
	m := FontMetricsInfo{UnitsPerEm: sfnt.Units(f.UnitsPerEm())}
	f.mu.Lock()
	ext, ok := f.face.FontHExtents()
	f.mu.Unlock()
	if ok {
		m.Ascent, m.Descent, m.LineGap = units(ext.Ascender), units(ext.Descender), units(ext.LineGap)
		return m
	}
	if f.sfnt != nil { // fall back to x/image, scaled to one em per design unit
		upem := fixed.I(int(f.UnitsPerEm()))
		if sm, err := f.sfnt.Metrics(nil, upem, xfont.HintingNone); err == nil {
			m.Ascent = sfnt.Units(sm.Ascent.Round())
			m.Descent = -sfnt.Units(sm.Descent.Round())
			m.LineGap = sfnt.Units((sm.Height - sm.Ascent - sm.Descent).Round())
		}
	}
	return m
}

// GlyphMetrics retrieves the metrics of glyph g.
func (f *Font) GlyphMetrics(g ot.GlyphIndex) GlyphMetricsInfo {
	m := GlyphMetricsInfo{Advance: sfnt.Units(f.GlyphAdvance(g))}
	f.mu.Lock()
	ext, ok := f.face.GlyphExtents(font.GID(g))
	f.mu.Unlock()
	if !ok {
		return m
	}
	m.LSB = units(ext.XBearing)
	m.BBox = BoundingBox{
		MinX: units(ext.XBearing),
		MinY: units(ext.YBearing + ext.Height),
		MaxX: units(ext.XBearing + ext.Width),
		MaxY: units(ext.YBearing),
	}
	// If a glyph has no contours, its bounding box is empty and the side
	// bearings are not defined.
	if !m.BBox.IsEmpty() {
		m.RSB = m.Advance - (m.LSB + m.BBox.Dx())
	}
	return m
}

// CodePointForGlyph returns a code-point mapped to glyph g by the font's
// cmap, or 0. All cmap entries are visited, so this is slow.
func (f *Font) CodePointForGlyph(g ot.GlyphIndex) rune {
	if g == ot.NotDef {
		return 0
	}
	iter := f.face.Font.Cmap.Iter()
	for iter.Next() {
		if r, gid := iter.Char(); gid == font.GID(g) {
			return r
		}
	}
	return 0
}

// SupportsScript returns a tuple (script-tag, language-tag) for OpenType tags
// scr and lang. If the language has no special support in the font, DFLT is
// returned for the language. If the script has no support in the font, DFLT
// is returned for both.
func (f *Font) SupportsScript(scr, lang ot.Tag) (ot.Tag, ot.Tag) {
	gsub := f.layout.GSUB
	if gsub == nil {
		gsub = f.layout.GPOS
	}
	script, ok := gsub.Script(scr)
	if !ok {
		tracer().Infof("cannot find script %s in font", scr)
		return ot.DFLT, ot.DFLT
	}
	if _, ok := script.LangSysFor(lang); ok {
		return scr, lang
	}
	return scr, ot.DFLT
}
