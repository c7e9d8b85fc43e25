package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "script", "scripts", "scriptlist":
		pterm.Info.Println("ScriptList / Script")
		pterm.Println(`
	ScriptList is a property of GSUB and GPOS.
	It consists of ScriptRecords:
	+------------+----------------+
	| Script Tag | Script         |
	+------------+----------------+

	A Script has an optional default LangSys entry, and a list of LangSys records:
	+--------------+-----------------+
	| Language Tag | LangSys         |
	+--------------+-----------------+

	'scripts' lists the script tags of the current table,
	'scripts:arab' lists the language systems of script 'arab'.
	`)
	case "lang", "langsys", "langs", "language":
		pterm.Info.Println("LangSys")
		pterm.Println(`
	LangSys is pointed to from a Script Record.
	It links a language with features to activate. It does so using an index into the feature list.
	+-----------------------------------+
	| Index of required feature or null |
	+-----------------------------------+
	| Index of feature 1                |
	+-----------------------------------+
	| Index of feature 2                |
	+-----------------------------------+
	| ...                               |
	+-----------------------------------+
	`)
	case "feature", "features":
		pterm.Info.Println("FeatureList")
		pterm.Println(`
	FeatureList is a list of feature records, each a tag with a list of lookup indices.
	'features' lists all feature records, 'features:3' prints the lookups of record 3.
	`)
	case "lookup", "lookups":
		pterm.Info.Println("LookupList")
		pterm.Println(`
	LookupList holds the lookups of a table. A lookup has a type, flags
	and a list of subtables of the same type.
	'lookups' lists all lookups, 'lookups:5' prints the subtables of lookup 5.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load:<font>      load a font file or a font of the go-text test collection
	table:GSUB|GPOS  select a layout table
	scripts[:tag]    list scripts, or the language systems of a script
	features[:n]     list features, or the lookups of feature n
	lookups[:n]      list lookups, or the subtables of lookup n
	glyph:<char>     print glyph metrics for a character or code-point (U+0041)
	shape <text>     shape text and print the glyph run
	plan[:script[:rtl]]  print the shape plan for a script, e.g. plan:Arab:rtl
	help[:topic]     help on scripts, langsys, features or lookups
	quit             leave the CLI

	Commands may be chained, e.g. "table:GSUB scripts:latn features".
	`)
	}
}
