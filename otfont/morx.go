package otfont

import (
	"slices"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/harfbuzz"
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
)

// morxShaper runs AAT 'morx' substitution through go-text's HarfBuzz port.
// It is used for fonts without GSUB and GPOS only, so HarfBuzz never
// applies OpenType layout in place of the shaper.
type morxShaper struct {
	face *font.Face
	mu   *sync.Mutex // shared with the owning Font
}

// ShapeMorx returns the glyphs for req in logical order.
func (m morxShaper) ShapeMorx(req ot.MorxRequest) []ot.MorxGlyph {
	buf := harfbuzz.NewBuffer()
	for i, r := range req.Runes {
		cluster := i
		if i < len(req.Clusters) {
			cluster = int(req.Clusters[i])
		}
		buf.AddRune(r, cluster)
	}
	buf.Props.Direction = harfbuzz.LeftToRight
	if req.RightToLeft {
		buf.Props.Direction = harfbuzz.RightToLeft
	}
	if req.Script != 0 {
		buf.Props.Script = language.Script(req.Script)
	}
	if req.Language != "" {
		buf.Props.Language = language.NewLanguage(req.Language)
	}
	buf.GuessSegmentProperties()
	features := make([]harfbuzz.Feature, len(req.Features))
	for i, f := range req.Features {
		features[i] = harfbuzz.Feature{
			Tag:   font.Tag(f.Tag),
			Value: f.Value,
			Start: harfbuzz.FeatureGlobalStart,
			End:   harfbuzz.FeatureGlobalEnd,
		}
	}
	m.mu.Lock()
	buf.Shape(harfbuzz.NewFont(m.face), features)
	m.mu.Unlock()
	out := make([]ot.MorxGlyph, len(buf.Info))
	for i, info := range buf.Info {
		out[i] = ot.MorxGlyph{Glyph: ot.GlyphIndex(info.Glyph), Cluster: uint32(info.Cluster)}
	}
	if req.RightToLeft { // HarfBuzz delivers visual order
		slices.Reverse(out)
	}
	tracer().Debugf("morx: %d code-points shaped to %d glyphs", len(req.Runes), len(out))
	return out
}
