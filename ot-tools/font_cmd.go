package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otfont"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontPath(args)
	otf := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", fontPath)
	names := otf.Names()
	if names.Family != "" {
		fmt.Printf("Family: %s\n", names.Family)
	}
	if names.Subfamily != "" {
		fmt.Printf("Subfamily: %s\n", names.Subfamily)
	}
	if names.PostScript != "" {
		fmt.Printf("PostScript: %s\n", names.PostScript)
	}
	m := otf.Metrics()
	fmt.Printf("Metrics: upem=%d ascent=%d descent=%d linegap=%d\n",
		m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap)

	layout := otf.Layout()
	var present []string
	for _, t := range []struct {
		name string
		ok   bool
	}{
		{"GDEF", layout.GDEF != nil},
		{"GSUB", layout.GSUB != nil},
		{"GPOS", layout.GPOS != nil},
		{"kern", otf.Kern() != nil},
		{"morx", otf.Morx() != nil},
	} {
		if t.ok {
			present = append(present, t.name)
		}
	}
	fmt.Printf("Layout: %s\n", strings.Join(present, ","))
	printLayoutTable("GSUB", layout.GSUB)
	printLayoutTable("GPOS", layout.GPOS)

	diag := otf.Diagnostics()
	errs, warns := diag.Errors(), diag.Warnings()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(diag.CriticalErrors()))

	if glyphs := args["glyphs"].Value; glyphs != "" {
		printGlyphs(otf, glyphs)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

// printLayoutTable lists the scripts, language systems and features of a
// GSUB or GPOS table.
func printLayoutTable(name string, t *ot.LayoutTable) {
	if t == nil {
		return
	}
	fmt.Printf("%s: %d lookups, %d features\n", name, len(t.Lookups), len(t.Features))
	for _, s := range t.Scripts {
		langs := make([]string, 0, len(s.LangSys)+1)
		if s.DefaultLang != nil {
			langs = append(langs, "dflt")
		}
		for _, ls := range s.LangSys {
			langs = append(langs, strings.TrimSpace(ls.Tag.String()))
		}
		fmt.Printf("  script %s: %s\n", s.Tag, strings.Join(langs, " "))
	}
	tags := make(map[string]bool)
	for _, f := range t.Features {
		tags[f.Tag.String()] = true
	}
	feats := make([]string, 0, len(tags))
	for tag := range tags {
		feats = append(feats, tag)
	}
	sort.Strings(feats)
	fmt.Printf("  features: %s\n", strings.Join(feats, " "))
}

// printGlyphs reports glyph index, name and metrics for a list of characters
// or code-points.
func printGlyphs(otf *otfont.Font, spec string) {
	for _, token := range splitCSVSpace(spec) {
		r, err := parseGlyphToken(token)
		if err != nil {
			fmt.Printf("%s: %v\n", token, err)
			continue
		}
		gid := otf.GlyphIndex(r)
		if gid == ot.NotDef {
			fmt.Printf("U+%04X: not mapped\n", r)
			continue
		}
		gm := otf.GlyphMetrics(gid)
		fmt.Printf("U+%04X: glyph=%d name=%q advance=%d lsb=%d rsb=%d bbox=(%d,%d,%d,%d)\n",
			r, gid, otf.GlyphName(gid), gm.Advance, gm.LSB, gm.RSB,
			gm.BBox.MinX, gm.BBox.MinY, gm.BBox.MaxX, gm.BBox.MaxY)
	}
}

// parseGlyphToken accepts a single character or a hex code-point.
func parseGlyphToken(token string) (rune, error) {
	if r := []rune(token); len(r) == 1 {
		return r[0], nil
	}
	return parseCodepointToken(token)
}
