package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/bidi"
)

// planOp prints the shape plan for a script, e.g. "plan:Arab:rtl". The plan
// includes the script features of the engine a run of this script would be
// shaped with.
func planOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return ErrNoFont, false
	}
	scr := op.arg
	if scr == "" {
		scr = "Latn"
	}
	script, err := language.ParseScript(scr)
	if err != nil {
		return fmt.Errorf("invalid script '%s': %w", scr, err), false
	}
	sel := otshape.SelectionContext{Script: script, Direction: bidi.LeftToRight}
	if strings.EqualFold(op.format, "rtl") {
		sel.Direction = bidi.RightToLeft
	}
	req := otshape.PlanRequest{Selection: sel, Coords: intp.font.Coords()}
	engine := matchEngine(sel)
	if engine == nil {
		return errors.New("no shaping engine for script"), false
	}
	if hook, ok := engine.(otshape.ShapingEngineFeatureHook); ok {
		req.Specs = hook.FeatureSpecs(sel)
	}
	plan, err := otshape.BuildPlan(intp.font, req)
	if err != nil {
		return err, false
	}
	pterm.Printf("engine=%s script=%s lang=%s features=%v\n", engine.Name(),
		plan.Script, plan.Language, plan.Features())
	printPlanLookups(ot.GSubFeatureType, plan.GSUB)
	printPlanLookups(ot.GPosFeatureType, plan.GPOS)
	return nil, false
}

// matchEngine finds the engine with the highest confidence for a run. Ties
// go to the smaller name, as in the shaper.
func matchEngine(sel otshape.SelectionContext) otshape.ShapingEngine {
	var best otshape.ShapingEngine
	score := otshape.ShaperConfidenceNone
	for _, e := range textshaping.Engines() {
		c := e.Match(sel)
		if c > score || (c == score && best != nil && e.Name() < best.Name()) {
			best, score = e, c
		}
	}
	return best
}

func printPlanLookups(typ ot.LayoutTagType, lookups []otshape.PlanLookup) {
	if len(lookups) == 0 {
		return
	}
	data := [][]string{
		{typ.String(), "Type", "Flags", "Features"},
	}
	for _, pl := range lookups {
		feats := make([]string, len(pl.Features))
		for i, f := range pl.Features {
			feats[i] = f.String()
		}
		data = append(data, []string{
			fmt.Sprintf("%d", pl.Index),
			formatLookupType(typ, pl.Lookup.Type),
			formatLookupFlags(pl.Lookup.Flag),
			strings.Join(feats, " "),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
