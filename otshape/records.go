package otshape

import (
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
)

// GlyphRecord is a flat view of a shaped glyph, as consumed by clients which do
// not care about the glyph buffer's internals.
type GlyphRecord struct {
	GID     ot.GlyphIndex
	Cluster uint32
	Pos     otlayout.GlyphPosition
}

// GlyphRecords flattens a shaped buffer into glyph records, in buffer order.
func GlyphRecords(buf *otlayout.Buffer) []GlyphRecord {
	if buf == nil {
		return nil
	}
	records := make([]GlyphRecord, buf.Len())
	for i, info := range buf.Info {
		records[i] = GlyphRecord{
			GID:     info.GlyphID,
			Cluster: info.Cluster,
			Pos:     buf.Pos[i],
		}
	}
	return records
}

// TotalAdvance sums up the horizontal advances of a shaped buffer, in font
// design units.
func TotalAdvance(buf *otlayout.Buffer) int32 {
	var w int32
	if buf != nil {
		for _, p := range buf.Pos {
			w += p.XAdvance
		}
	}
	return w
}
