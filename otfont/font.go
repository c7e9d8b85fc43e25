package otfont

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/textshaping/ot"
	"golang.org/x/image/font/sfnt"
)

// Font is an OpenType font, decoded for shaping. It implements ot.Font
// together with the optional interfaces ot.VariantGlyphs and ot.PPEMSource.
type Font struct {
	face   *font.Face
	ld     *opentype.Loader // raw table access, nil if not available
	mu     *sync.Mutex      // guards the glyph caches of face
	sfnt   *sfnt.Font       // nil if x/image cannot read the font
	coords []float32
	ppem   uint16
	layout ot.LayoutTables
	kern   ot.KernTable
	morx   ot.MorxShaper
	diag   ot.Diagnostics
}

var _ ot.Font = (*Font)(nil)
var _ ot.VariantGlyphs = (*Font)(nil)
var _ ot.PPEMSource = (*Font)(nil)

// Option configures a font while it is loaded.
type Option func(*config)

type config struct {
	variations []font.Variation
	ppem       uint16
}

// WithVariation sets the design coordinate of a variation axis, e.g.
//
//	otfont.Parse(data, otfont.WithVariation(ot.T("wght"), 700))
//
// Axes not set keep their default. The option has no effect for fonts
// which are not variable.
func WithVariation(axis ot.Tag, value float32) Option {
	return func(c *config) {
		c.variations = append(c.variations, font.Variation{Tag: font.Tag(axis), Value: value})
	}
}

// WithPPEM sets the pixel size a font is instantiated at. Device tables of
// GPOS are applied only for fonts with a pixel size.
func WithPPEM(ppem uint16) Option {
	return func(c *config) {
		c.ppem = ppem
	}
}

// Load reads and parses a font file.
func Load(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("otfont: %w", err)
	}
	return Parse(data, opts...)
}

// Parse parses an OpenType font (TTF or OTF) from memory and decodes its
// layout tables. Parse fails only if the font cannot be read at all; problems
// with single tables or subtables are reported by Diagnostics.
func Parse(data []byte, opts ...Option) (*Font, error) {
	var conf config
	for _, opt := range opts {
		opt(&conf)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("otfont: cannot parse font: %w", err)
	}
	f := &Font{face: face, mu: &sync.Mutex{}, ppem: conf.ppem}
	if len(conf.variations) > 0 {
		face.SetVariations(conf.variations)
	}
	if conf.ppem > 0 {
		face.SetPpem(conf.ppem, conf.ppem)
	}
	for _, c := range face.Coords() {
		f.coords = append(f.coords, coord(c))
	}
	if f.ld, err = opentype.NewLoader(bytes.NewReader(data)); err != nil {
		tracer().Infof("raw tables not available: %v", err)
		f.ld = nil
	}
	if f.sfnt, err = sfnt.Parse(data); err != nil {
		tracer().Infof("font names not available: %v", err)
		f.diag.AddWarning(ot.T("name"), err.Error())
		f.sfnt = nil
	}
	d := &decoder{
		store:  face.Font.GDEF.ItemVarStore,
		coords: face.Coords(),
		diag:   &f.diag,
	}
	f.layout = ot.LayoutTables{
		GDEF: d.gdef(face.Font.GDEF),
		GSUB: d.gsub(face.Font.GSUB),
		GPOS: d.gpos(face.Font.GPOS),
	}
	kern := face.Font.Kern
	if len(kern) == 0 {
		kern = face.Font.Kerx
	}
	if kt := newKernTable(kern); len(kt) > 0 {
		f.kern = kt
	}
	if len(face.Font.Morx) > 0 {
		f.morx = morxShaper{face: face, mu: f.mu}
	}
	tracer().Debugf("font loaded: GSUB=%t GPOS=%t GDEF=%t kern=%t morx=%t axes=%d",
		f.layout.GSUB != nil, f.layout.GPOS != nil, f.layout.GDEF != nil,
		f.kern != nil, f.morx != nil, len(f.coords))
	return f, nil
}

// GlyphIndex maps a code-point to a glyph. Unmapped code-points return NotDef.
func (f *Font) GlyphIndex(r rune) ot.GlyphIndex {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gid, ok := f.face.NominalGlyph(r); ok {
		return ot.GlyphIndex(gid)
	}
	return ot.NotDef
}

// GlyphVariant maps a Unicode variation sequence to a glyph.
func (f *Font) GlyphVariant(r, selector rune) (ot.GlyphIndex, bool) {
	gid, ok := f.face.Font.VariationGlyph(r, selector)
	return ot.GlyphIndex(gid), ok
}

// GlyphAdvance returns the horizontal advance of g in design units,
// including HVAR deltas of variable fonts.
func (f *Font) GlyphAdvance(g ot.GlyphIndex) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int32(math.Round(float64(f.face.HorizontalAdvance(font.GID(g)))))
}

// GlyphSideBearing returns the left side bearing of g in design units.
func (f *Font) GlyphSideBearing(g ot.GlyphIndex) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ext, ok := f.face.GlyphExtents(font.GID(g)); ok {
		return int32(math.Round(float64(ext.XBearing)))
	}
	return 0
}

// Layout returns the decoded GDEF, GSUB and GPOS tables.
func (f *Font) Layout() ot.LayoutTables {
	return f.layout
}

// Kern returns the legacy kerning table, or nil.
func (f *Font) Kern() ot.KernTable {
	return f.kern
}

// Morx returns the AAT morx engine, or nil.
func (f *Font) Morx() ot.MorxShaper {
	return f.morx
}

// Coords returns the normalized variation coordinates, one per axis.
// Fonts which are not variable return nil.
func (f *Font) Coords() []float32 {
	return f.coords
}

// UnitsPerEm returns the design units per em.
func (f *Font) UnitsPerEm() uint16 {
	return f.face.Font.Upem()
}

// PPEM returns the pixel size the font is instantiated at, or 0.
func (f *Font) PPEM() uint16 {
	return f.ppem
}

// Diagnostics returns the problems found while the font was decoded.
func (f *Font) Diagnostics() *ot.Diagnostics {
	return &f.diag
}
