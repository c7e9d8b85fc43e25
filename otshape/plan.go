package otshape

import (
	"slices"

	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"golang.org/x/text/unicode/bidi"
)

// PlanRequest collects the inputs of plan compilation.
type PlanRequest struct {
	Selection SelectionContext // script, language and direction of the run
	Features  []FeatureRange   // user feature toggles, later ones win
	Coords    []float32        // normalized variation coordinates
	Specs     []FeatureSpec    // script features of the shaping engine
}

// PlanLookup is a lookup selected for a shape plan, together with the features
// which reference it.
type PlanLookup struct {
	Index    int        // index into the table's lookup list
	Lookup   *ot.Lookup // the lookup itself
	Features []ot.Tag   // features referencing this lookup
	table    ot.LayoutTagType
}

// ShapePlan is the immutable result of plan compilation: the ordered list of
// lookups to apply for a (font, script, language, direction, features) tuple.
type ShapePlan struct {
	Script    ot.Tag // chosen script tag
	Language  ot.Tag // chosen language system tag, or 'dflt'
	Direction bidi.Direction
	GSUB      []PlanLookup
	GPOS      []PlanLookup
	HasGSUB   bool
	HasGPOS   bool
	// FeatureVariation is the index of the feature variation record applied to
	// GSUB, or -1. FeatureVariationGPOS is the same for GPOS.
	FeatureVariation     int
	FeatureVariationGPOS int

	features map[ot.Tag]*planFeature
	order    []ot.Tag                    // enabled features in order of resolution
	required map[ot.LayoutTagType]ot.Tag // required feature of the chosen LangSys, per table
}

var defaultGSUBFeatures = []ot.Tag{
	ot.T("rvrn"),
	ot.T("ccmp"),
	ot.T("locl"),
	ot.T("rlig"),
	ot.T("rclt"),
	ot.T("calt"),
	ot.T("liga"),
}

var defaultGPOSFeatures = []ot.Tag{
	ot.T("abvm"),
	ot.T("blwm"),
	ot.T("curs"),
	ot.T("dist"),
	ot.T("kern"),
	ot.T("mark"),
	ot.T("mkmk"),
}

var (
	ltrFeatures = []ot.Tag{ot.T("ltra"), ot.T("ltrm")}
	rtlFeatures = []ot.Tag{ot.T("rtla"), ot.T("rtlm")}
)

// planFeature is the resolved state of a feature in a plan.
type planFeature struct {
	tag    ot.Tag
	gate   func(sf otlayout.ScriptFeatures) bool
	global bool           // enabled for the whole run, unless a span turns it off
	value  uint32         // value for the global setting
	spans  []FeatureRange // ranged settings, later ones win
}

// enabled is true if the feature is on for at least part of the run.
func (f *planFeature) enabled() bool {
	if f.global {
		return true
	}
	for _, s := range f.spans {
		if s.On {
			return true
		}
	}
	return false
}

// isSimple is true for features enabled everywhere without a gate.
// A required feature is enabled everywhere, whatever the user's toggles.
func (f *planFeature) isSimple(required bool) bool {
	if required {
		return f.gate == nil && f.value <= 1
	}
	return f.global && f.gate == nil && len(f.spans) == 0 && f.value <= 1
}

// settingFor returns whether the feature applies to a glyph, and its value.
// User toggles cannot switch off a required feature, but an engine gate still
// restricts it.
func (f *planFeature) settingFor(info *otlayout.GlyphInfo, required bool) (bool, uint32) {
	on, value := f.global, f.value
	for _, s := range f.spans {
		if s.Covers(info.Cluster) {
			on, value = s.On, s.value()
		}
	}
	if required && !on {
		on, value = true, 1
	}
	if on && f.gate != nil {
		on = f.gate(info.Mask)
	}
	return on, value
}

// Features returns the enabled features of the plan, in order of resolution.
func (p *ShapePlan) Features() []ot.Tag {
	return slices.Clone(p.order)
}

// BuildPlan compiles a shape plan for font. It never touches a buffer, and
// identical inputs yield identical plans.
func BuildPlan(font ot.Font, req PlanRequest) (*ShapePlan, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	plan := &ShapePlan{
		Script:               ot.DFLT,
		Language:             ot.DFLTLang,
		Direction:            req.Selection.Direction,
		FeatureVariation:     -1,
		FeatureVariationGPOS: -1,
	}
	plan.resolveFeatures(req)
	tables := font.Layout()
	plan.HasGSUB, plan.HasGPOS = tables.GSUB != nil, tables.GPOS != nil
	scriptCandidates := scriptTagCandidates(req.Selection)
	langCandidates := langTagCandidates(req.Selection)
	if tables.GSUB != nil {
		plan.GSUB, plan.FeatureVariation = plan.collectLookups(ot.GSubFeatureType, tables.GSUB,
			scriptCandidates, langCandidates, req.Coords)
	}
	if tables.GPOS != nil {
		plan.GPOS, plan.FeatureVariationGPOS = plan.collectLookups(ot.GPosFeatureType, tables.GPOS,
			scriptCandidates, langCandidates, req.Coords)
	}
	tracer().Debugf("shape plan for %s/%s: %d GSUB lookups, %d GPOS lookups",
		plan.Script, plan.Language, len(plan.GSUB), len(plan.GPOS))
	return plan, nil
}

func scriptTagCandidates(sel SelectionContext) []ot.Tag {
	var tags []ot.Tag
	if sel.ScriptTag != 0 && sel.ScriptTag != ot.DFLT {
		tags = append(tags, sel.ScriptTag)
	}
	for _, t := range ScriptTags(sel.Script) {
		if !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	return append(tags, ot.DFLT, ot.LATN)
}

func langTagCandidates(sel SelectionContext) []ot.Tag {
	var tags []ot.Tag
	if sel.LangTag != 0 && sel.LangTag != ot.DFLTLang {
		tags = append(tags, sel.LangTag)
	}
	for _, t := range LanguageTags(sel.Language) {
		if !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	return tags
}

// resolveFeatures builds the feature set: defaults, direction features and the
// engine's script features, followed by the user's toggles in order.
func (p *ShapePlan) resolveFeatures(req PlanRequest) {
	p.features = make(map[ot.Tag]*planFeature)
	add := func(tag ot.Tag, gate func(otlayout.ScriptFeatures) bool) {
		if f, ok := p.features[tag]; ok {
			f.global = true
			if gate != nil {
				f.gate = gate
			}
			return
		}
		p.features[tag] = &planFeature{tag: tag, gate: gate, global: true, value: 1}
		p.order = append(p.order, tag)
	}
	for _, tag := range defaultGSUBFeatures {
		add(tag, nil)
	}
	if req.Selection.IsRightToLeft() {
		for _, tag := range rtlFeatures {
			add(tag, nil)
		}
	} else {
		for _, tag := range ltrFeatures {
			add(tag, nil)
		}
	}
	for _, spec := range req.Specs {
		add(spec.Tag, spec.Gate)
	}
	for _, tag := range defaultGPOSFeatures {
		add(tag, nil)
	}
	for _, fr := range req.Features {
		f, ok := p.features[fr.Feature]
		if !ok {
			f = &planFeature{tag: fr.Feature}
			p.features[fr.Feature] = f
			p.order = append(p.order, fr.Feature)
		}
		if fr.IsGlobal() {
			f.global, f.value, f.spans = fr.On, fr.value(), nil
		} else {
			f.spans = append(f.spans, fr)
		}
	}
	p.order = slices.DeleteFunc(p.order, func(tag ot.Tag) bool {
		return !p.features[tag].enabled()
	})
}

// collectLookups selects the lookups of a layout table for the plan's feature
// set. It returns the lookups ordered by lookup index, together with the index
// of the feature variation record applied.
// The script and language system chosen for GSUB are recorded in the plan;
// GPOS choices are recorded only if there is no GSUB.
func (p *ShapePlan) collectLookups(typ ot.LayoutTagType, table *ot.LayoutTable, scripts, langs []ot.Tag,
	coords []float32) ([]PlanLookup, int) {
	//
	var script *ot.ScriptRecord
	for _, tag := range scripts {
		if s, ok := table.Script(tag); ok {
			script = s
			break
		}
	}
	if script == nil {
		tracer().Debugf("%s table has no script record for %v", typ, scripts)
		return nil, -1
	}
	record := typ == ot.GSubFeatureType || !p.HasGSUB
	if record {
		p.Script = script.Tag
	}
	var langSys *ot.LangSys
	for _, tag := range langs {
		if ls, ok := script.LangSysFor(tag); ok {
			langSys = ls
			if record {
				p.Language = tag
			}
			break
		}
	}
	if langSys == nil {
		ls, ok := script.DefaultLangSys()
		if !ok {
			return nil, -1
		}
		langSys = ls
	}
	variation := table.FindFeatureVariation(coords)
	referenced := make(map[int][]ot.Tag)
	addFeature := func(fi int, required bool) {
		rec, ok := table.Feature(fi)
		if !ok {
			tracer().Debugf("feature index %d out of range in %s table", fi, typ)
			return
		}
		if required {
			if _, ok := p.features[rec.Tag]; !ok {
				p.features[rec.Tag] = &planFeature{tag: rec.Tag}
			}
			if !slices.Contains(p.order, rec.Tag) {
				p.order = append(p.order, rec.Tag)
			}
			if p.required == nil {
				p.required = make(map[ot.LayoutTagType]ot.Tag)
			}
			p.required[typ] = rec.Tag
		} else if f, ok := p.features[rec.Tag]; !ok || !f.enabled() {
			return
		}
		for _, inx := range table.FeatureLookups(fi, variation) {
			if table.Lookup(inx) == nil {
				tracer().Debugf("lookup index %d of feature %s out of range", inx, rec.Tag)
				continue
			}
			if !slices.Contains(referenced[inx], rec.Tag) {
				referenced[inx] = append(referenced[inx], rec.Tag)
			}
		}
	}
	if langSys.RequiredFeature != ot.NoRequiredFeature {
		addFeature(int(langSys.RequiredFeature), true)
	}
	for _, fi := range langSys.FeatureIndices {
		addFeature(int(fi), false)
	}
	lookups := make([]PlanLookup, 0, len(referenced))
	for inx, tags := range referenced {
		lookups = append(lookups, PlanLookup{Index: inx, Lookup: table.Lookup(inx), Features: tags, table: typ})
	}
	slices.SortFunc(lookups, func(a, b PlanLookup) int { return a.Index - b.Index })
	return lookups, variation
}

// gateFor returns the per-glyph gate of a lookup, or nil if the lookup applies
// to every glyph.
func (p *ShapePlan) gateFor(pl PlanLookup) func(*otlayout.GlyphInfo) bool {
	simple := true
	for _, tag := range pl.Features {
		if f := p.features[tag]; f == nil || !f.isSimple(p.isRequired(pl, tag)) {
			simple = false
			break
		}
	}
	if simple {
		return nil
	}
	return func(info *otlayout.GlyphInfo) bool {
		for _, tag := range pl.Features {
			if f := p.features[tag]; f != nil {
				if on, _ := f.settingFor(info, p.isRequired(pl, tag)); on {
					return true
				}
			}
		}
		return false
	}
}

// isRequired is true if tag is the required feature of the language system
// chosen for the lookup's table.
func (p *ShapePlan) isRequired(pl PlanLookup, tag ot.Tag) bool {
	req, ok := p.required[pl.table]
	return ok && req == tag
}

// valueFor returns the feature value of a lookup for a glyph, as needed for
// selecting alternates. The first enabled feature wins.
func (p *ShapePlan) valueFor(pl PlanLookup) func(*otlayout.GlyphInfo) uint32 {
	return func(info *otlayout.GlyphInfo) uint32 {
		for _, tag := range pl.Features {
			if f := p.features[tag]; f != nil {
				if on, v := f.settingFor(info, p.isRequired(pl, tag)); on {
					return v
				}
			}
		}
		return 0
	}
}

// hasLookupsFor is true if any lookup of the plan belongs to feature tag.
func (p *ShapePlan) hasLookupsFor(tag ot.Tag) bool {
	for _, list := range [][]PlanLookup{p.GSUB, p.GPOS} {
		for _, pl := range list {
			if slices.Contains(pl.Features, tag) {
				return true
			}
		}
	}
	return false
}
