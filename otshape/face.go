package otshape

import (
	"github.com/npillmayer/textshaping/ot"
)

// Face is a font prepared for shaping. It owns a cache of shape plans, so
// clients should create one face per font and re-use it.
type Face struct {
	Font  ot.Font
	plans *PlanCache
}

// NewFace wraps a font. A cache size of 0 or less selects DefaultPlanCacheSize.
func NewFace(font ot.Font, cacheSize int) *Face {
	return &Face{
		Font:  font,
		plans: NewPlanCache(cacheSize),
	}
}

// Plans returns the plan cache of the face.
func (f *Face) Plans() *PlanCache {
	return f.plans
}

// plan returns a cached plan or builds and caches a new one.
func (f *Face) plan(key PlanKey, req PlanRequest) (*ShapePlan, error) {
	if f.plans == nil { // face not created by NewFace
		return BuildPlan(f.Font, req)
	}
	if plan, ok := f.plans.Get(key); ok {
		return plan, nil
	}
	plan, err := BuildPlan(f.Font, req)
	if err != nil {
		return nil, err
	}
	f.plans.Put(key, plan)
	return plan, nil
}

// ppem returns the pixel size of the font, if it is instantiated at one.
func (f *Face) ppem() uint16 {
	if src, ok := f.Font.(ot.PPEMSource); ok {
		return src.PPEM()
	}
	return 0
}
