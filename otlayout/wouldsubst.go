package otlayout

import "github.com/npillmayer/textshaping/ot"

// WouldSubstitute is true if any GSUB lookup of feature changes the glyph
// sequence glyphs, taken as a text of its own. Script preprocessors use it to
// find out which consonant forms a font provides, e.g. whether Ra+Halant
// forms a reph.
//
// The feature is looked up by tag only, regardless of script and language
// system.
func WouldSubstitute(tables ot.LayoutTables, feature ot.Tag, glyphs ...ot.GlyphIndex) bool {
	gsub := tables.GSUB
	if gsub == nil || len(glyphs) == 0 {
		return false
	}
	for _, rec := range gsub.Features {
		if rec.Tag != feature {
			continue
		}
		for _, inx := range rec.LookupIndices {
			if inx < 0 || inx >= len(gsub.Lookups) {
				continue
			}
			infos := make([]GlyphInfo, len(glyphs))
			for i, g := range glyphs {
				infos[i] = GlyphInfo{GlyphID: g, Cluster: uint32(i)}
			}
			buf := NewBuffer(len(glyphs))
			buf.InitFromInfos(infos)
			buf.Classify(tables.GDEF)
			ctx := &ApplyContext{
				Buffer:  buf,
				GDEF:    tables.GDEF,
				Lookups: gsub.Lookups,
				Table:   ot.GSubFeatureType,
			}
			if ApplyLookup(ctx, inx, gsub.Lookups[inx]) {
				return true
			}
		}
	}
	return false
}
