package otshape

import (
	"fmt"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// DefaultPlanCacheSize is the capacity of a plan cache if not configured otherwise.
const DefaultPlanCacheSize = 64

// PlanKey identifies a shape plan within a face. Feature toggles are
// normalized by sorting, so equivalent toggle lists share a plan.
type PlanKey string

// MakePlanKey creates the cache key for a plan of engine for a run with
// selection context sel.
func MakePlanKey(engine string, sel SelectionContext, features []FeatureRange, coords []float32) PlanKey {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|%s|%s|%s|%s|%d", engine, sel.Script, sel.Language, sel.ScriptTag, sel.LangTag, sel.Direction)
	for _, f := range normalizeFeatures(features) {
		fmt.Fprintf(&sb, "|%s:%d:%t:%d:%d", f.Feature, f.Arg, f.On, f.Start, f.End)
	}
	for _, c := range coords {
		fmt.Fprintf(&sb, "|%g", c)
	}
	return PlanKey(sb.String())
}

// PlanCache is a bounded cache of shape plans. If full, the oldest plan is
// evicted. It is safe for concurrent use.
type PlanCache struct {
	sync.RWMutex
	plans    *linkedhashmap.Map // PlanKey -> *ShapePlan, in insertion order
	capacity int
}

// NewPlanCache creates a plan cache holding up to capacity plans. A capacity of
// 0 or less selects DefaultPlanCacheSize.
func NewPlanCache(capacity int) *PlanCache {
	if capacity <= 0 {
		capacity = DefaultPlanCacheSize
	}
	return &PlanCache{
		plans:    linkedhashmap.New(),
		capacity: capacity,
	}
}

// Get returns the plan for key, if present.
func (pc *PlanCache) Get(key PlanKey) (*ShapePlan, bool) {
	pc.RLock()
	defer pc.RUnlock()
	if v, found := pc.plans.Get(key); found {
		return v.(*ShapePlan), true
	}
	return nil, false
}

// Put stores a plan. Replacing a plan keeps its position in eviction order.
func (pc *PlanCache) Put(key PlanKey, plan *ShapePlan) {
	assertThat(plan != nil, "nil shape plan put into plan cache")
	pc.Lock()
	defer pc.Unlock()
	if _, found := pc.plans.Get(key); !found {
		for pc.plans.Size() >= pc.capacity {
			it := pc.plans.Iterator()
			if !it.First() {
				break
			}
			tracer().Debugf("plan cache full, evicting plan %q", it.Key())
			pc.plans.Remove(it.Key())
		}
	}
	pc.plans.Put(key, plan)
}

// Len returns the number of cached plans.
func (pc *PlanCache) Len() int {
	pc.RLock()
	defer pc.RUnlock()
	return pc.plans.Size()
}

// Capacity returns the maximum number of cached plans.
func (pc *PlanCache) Capacity() int {
	return pc.capacity
}
