package otfont

import (
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/textshaping/ot"
)

// HeadTableInfo is a query view over OpenType table 'head'.
type HeadTableInfo struct {
	UnitsPerEm             uint16
	XMin, YMin, XMax, YMax int16 // bounding box of all glyphs
	MacStyle               uint16
	IndexToLocFormat       int16
}

// MacStyle bits of table 'head'.
const (
	MacStyleBold   uint16 = 0x0001
	MacStyleItalic uint16 = 0x0002
)

// TableTags returns the tags of all tables of a font, sorted.
func (f *Font) TableTags() []ot.Tag {
	if f.ld == nil {
		return nil
	}
	tags := f.ld.Tables()
	out := make([]ot.Tag, len(tags))
	for i, t := range tags {
		out[i] = ot.Tag(t)
	}
	return out
}

// HasTable is true if a font contains a table with the given tag.
func (f *Font) HasTable(tag ot.Tag) bool {
	return f.ld != nil && f.ld.HasTable(opentype.Tag(tag))
}

// HeadInfo decodes table 'head'. It returns false if the table is missing or
// cannot be decoded.
func (f *Font) HeadInfo() (HeadTableInfo, bool) {
	var info HeadTableInfo
	b, ok := f.rawTable(ot.T("head"))
	if !ok {
		return info, false
	}
	head, _, err := tables.ParseHead(b)
	if err != nil {
		tracer().Infof("cannot decode table 'head': %v", err)
		return info, false
	}
	info.UnitsPerEm = head.UnitsPerEm
	info.XMin, info.YMin, info.XMax, info.YMax = head.XMin, head.YMin, head.XMax, head.YMax
	info.MacStyle = head.MacStyle
	info.IndexToLocFormat = head.IndexToLocFormat
	return info, true
}

// NumGlyphs returns the number of glyphs of a font, as recorded in table 'maxp'.
func (f *Font) NumGlyphs() int {
	b, ok := f.rawTable(ot.T("maxp"))
	if !ok {
		return 0
	}
	maxp, _, err := tables.ParseMaxp(b)
	if err != nil {
		tracer().Infof("cannot decode table 'maxp': %v", err)
		return 0
	}
	return int(maxp.NumGlyphs)
}

func (f *Font) rawTable(tag ot.Tag) ([]byte, bool) {
	if f.ld == nil {
		return nil, false
	}
	b, err := f.ld.RawTable(opentype.Tag(tag))
	if err != nil {
		return nil, false
	}
	return b, true
}
