package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otfont"
	"github.com/pterm/pterm"
)

func printFontSummary(otf *otfont.Font) {
	names, m := otf.Names(), otf.Metrics()
	pterm.Printf("font %s: upem=%d ascent=%d descent=%d\n", names.Full, m.UnitsPerEm, m.Ascent, m.Descent)
	layout := otf.Layout()
	for _, t := range []*ot.LayoutTable{layout.GSUB, layout.GPOS} {
		if t != nil {
			pterm.Printf("%s: %d scripts, %d features, %d lookups\n", t.Type,
				len(t.Scripts), len(t.Features), len(t.Lookups))
		}
	}
	if diag := otf.Diagnostics(); diag.HasErrors() {
		pterm.Error.Printf("font has %d decoding errors\n", len(diag.Errors()))
	}
}

func printLookupList(table *ot.LayoutTable) {
	count := len(table.Lookups)
	pterm.Printf("%s LookupList has %d entries\n", table.Type, count)
	if count == 0 {
		return
	}
	data := [][]string{
		{"Index", "Type", "Subtables", "Flags"},
	}
	for i, lookup := range table.Lookups {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			formatLookupType(table.Type, lookup.Type),
			fmt.Sprintf("%d", len(lookup.Subtables)),
			formatLookupFlags(lookup.Flag),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookup(table *ot.LayoutTable, index int) {
	lookup := table.Lookup(index)
	if lookup == nil {
		pterm.Error.Printf("Lookup index out of range: %d\n", index)
		return
	}
	pterm.Printf("Lookup %d: type=%s flags=%s subtables=%d\n",
		index,
		formatLookupType(table.Type, lookup.Type),
		formatLookupFlags(lookup.Flag),
		len(lookup.Subtables),
	)
	if lookup.Flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		pterm.Printf("mark filtering set: %d\n", lookup.MarkFilteringSet)
	}
	data := [][]string{
		{"Sub", "Format", "Coverage"},
	}
	for i, sub := range lookup.Unwrapped().Subtables {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			formatSubtable(sub),
			formatCoverageSummary(sub.Coverage()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatLookupType(table ot.LayoutTagType, ltype ot.LayoutTableLookupType) string {
	if ltype == 0 {
		return "Unknown(0)"
	}
	if table == ot.GPosFeatureType {
		return ltype.GPosString()
	}
	return ltype.GSubString()
}

func formatLookupFlags(flag ot.LayoutTableLookupFlag) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&ot.LOOKUP_FLAG_RIGHT_TO_LEFT != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		parts = append(parts, "UseMarkFilteringSet")
	}
	if flag&ot.LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", flag.MarkAttachmentType()))
	}
	return strings.Join(parts, "|")
}

// formatSubtable names the Go type of a subtable, which tells lookup type
// and format, e.g. "SingleSubstFmt2".
func formatSubtable(sub ot.Subtable) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", sub), "*ot.")
}

func formatCoverageSummary(cov ot.Coverage) string {
	if cov.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("fmt=%d count=%d", cov.Format(), cov.Len())
}
