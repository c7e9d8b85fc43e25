package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.ot")
	defer teardown()
	//
	if T("liga").String() != "liga" {
		t.Errorf("expected tag 'liga' to round-trip, got %q", T("liga").String())
	}
	if T("yi").String() != "yi  " {
		t.Errorf("expected short tag to be padded with spaces, got %q", T("yi").String())
	}
	if MakeTag([]byte("cmap")) != T("cmap") {
		t.Errorf("expected MakeTag and T to agree")
	}
	if MakeTag([]byte("ab")).String() != "\x00\x00ab" {
		t.Errorf("expected MakeTag to pad in front, got %q", MakeTag([]byte("ab")).String())
	}
}

func TestLookupTypeString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.ot")
	defer teardown()
	//
	if s := GSubLookupTypeLigature.GSubString(); s != "Ligature" {
		t.Errorf("expected GSUB type 4 to be 'Ligature', is %q", s)
	}
	if s := GSubLookupTypeReverseChaining.GSubString(); s != "Reverse" {
		t.Errorf("expected GSUB type 8 to be 'Reverse', is %q", s)
	}
	if s := GPosLookupTypeMarkToMark.GPosString(); s != "MarkToMark" {
		t.Errorf("expected GPOS type 6 to be 'MarkToMark', is %q", s)
	}
	if s := GPosLookupTypeExtensionPos.GPosString(); s != "Ext" {
		t.Errorf("expected GPOS type 9 to be 'Ext', is %q", s)
	}
	if s := LayoutTableLookupType(12).GPosString(); s != "12" {
		t.Errorf("expected unknown type to print as number, is %q", s)
	}
}

func TestMarkAttachmentType(t *testing.T) {
	flag := LayoutTableLookupFlag(0x0300) | LOOKUP_FLAG_IGNORE_LIGATURES
	if flag.MarkAttachmentType() != 3 {
		t.Errorf("expected mark attachment type 3, is %d", flag.MarkAttachmentType())
	}
}

func TestUnwrapExtensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.ot")
	defer teardown()
	//
	single := &SingleSubstFmt1{Cov: NewGlyphCoverage(5), DeltaGlyphID: 1}
	lookup := &Lookup{
		Type: GSubLookupTypeExtensionSubs,
		Subtables: []Subtable{
			&ExtensionSubtable{ExtensionType: GSubLookupTypeSingle, Target: single},
			&ExtensionSubtable{ExtensionType: GSubLookupTypeSingle}, // broken, will be dropped
		},
	}
	u := lookup.Unwrapped()
	if u.Type != GSubLookupTypeSingle {
		t.Errorf("expected unwrapped lookup to be of type single, is %d", u.Type)
	}
	if len(u.Subtables) != 1 || u.Subtables[0] != Subtable(single) {
		t.Errorf("expected extension to be replaced by its target, have %v", u.Subtables)
	}
	plain := &Lookup{Type: GSubLookupTypeSingle, Subtables: []Subtable{single}}
	if plain.Unwrapped() != plain {
		t.Errorf("expected lookup without extensions to be returned as is")
	}
}

func TestOption(t *testing.T) {
	o := Some(Anchor{X: 10, Y: 20})
	if a, ok := o.Unwrap(); !ok || a.X != 10 {
		t.Errorf("expected Some to carry a value")
	}
	n := OptionFrom(Anchor{}, false)
	if n.IsSome() || !n.IsNone() {
		t.Errorf("expected OptionFrom(_, false) to be None")
	}
	if n.Or(Anchor{X: 1}).X != 1 {
		t.Errorf("expected Or to return the default for None")
	}
}
