package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/textshaping/ot"
	"github.com/pterm/pterm"
)

func tableOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return ErrNoFont, false
	}
	layout := intp.font.Layout()
	var table *ot.LayoutTable
	switch strings.ToUpper(op.arg) {
	case "GSUB":
		table = layout.GSUB
	case "GPOS":
		table = layout.GPOS
	default:
		return fmt.Errorf("not a layout table: '%s', use GSUB or GPOS", op.arg), false
	}
	if table == nil {
		return errors.New("table not found in font"), false
	}
	intp.table, intp.script = table, nil
	tracer().Infof("setting table: %v", table.Type)
	return nil, false
}

// scriptsOp lists the scripts of the current table. With an argument it
// selects a script and lists its language systems.
func scriptsOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	if op.noArg() {
		tags := make([]string, len(intp.table.Scripts))
		for i, s := range intp.table.Scripts {
			tags[i] = s.Tag.String()
		}
		pterm.Printf("ScriptList keys: %v\n", tags)
		return
	}
	scr, ok := intp.table.Script(ot.T(op.arg))
	if !ok {
		return fmt.Errorf("script lookup [%s] returns null", ot.T(op.arg)), false
	}
	intp.script = scr
	data := [][]string{
		{"LangSys", "Required", "Features"},
	}
	if scr.DefaultLang != nil {
		data = append(data, langSysRow(intp.table, "dflt", scr.DefaultLang))
	}
	for i := range scr.LangSys {
		data = append(data, langSysRow(intp.table, scr.LangSys[i].Tag.String(), &scr.LangSys[i].LangSys))
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return
}

func langSysRow(table *ot.LayoutTable, tag string, ls *ot.LangSys) []string {
	req := "-"
	if f, ok := table.Feature(ls.RequiredFeature); ok {
		req = f.Tag.String()
	}
	feats := make([]string, 0, len(ls.FeatureIndices))
	for _, inx := range ls.FeatureIndices {
		if f, ok := table.Feature(inx); ok {
			feats = append(feats, f.Tag.String())
		}
	}
	return []string{tag, req, strings.Join(feats, " ")}
}

// featuresOp lists the feature list of the current table, or the lookups of
// a single feature record.
func featuresOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	if op.noArg() {
		data := [][]string{
			{"Index", "Tag", "Lookups"},
		}
		for i, f := range intp.table.Features {
			data = append(data, []string{
				strconv.Itoa(i),
				f.Tag.String(),
				formatIndices(f.LookupIndices),
			})
		}
		pterm.Printf("%s FeatureList has %d entries\n", intp.table.Type, len(intp.table.Features))
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		return
	}
	i, convErr := strconv.Atoi(op.arg)
	if convErr != nil {
		return fmt.Errorf("feature index not numeric: %v", op.arg), false
	}
	f, ok := intp.table.Feature(i)
	if !ok {
		return fmt.Errorf("feature index out of range: %d", i), false
	}
	pterm.Printf("%s feature %d holds feature record = %v\n", intp.table.Type, i, f.Tag)
	for _, inx := range f.LookupIndices {
		printLookup(intp.table, inx)
	}
	return
}

func lookupsOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkTable(); err != nil {
		return
	}
	if op.noArg() {
		printLookupList(intp.table)
	} else if i, convErr := strconv.Atoi(op.arg); convErr == nil {
		printLookup(intp.table, i)
	} else {
		tracer().Errorf("Lookup index not numeric: %v", op.arg)
		err = errors.New("invalid lookup index")
	}
	return
}

func formatIndices(inx []int) string {
	s := make([]string, len(inx))
	for i, n := range inx {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}
