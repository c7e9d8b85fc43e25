package otshape

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/unicode/bidi"
)

// --- Test Suite Preparation ------------------------------------------------

type PlanCacheTestEnviron struct {
	suite.Suite
	cache *PlanCache
}

// listen for 'go test' command --> run test methods
func TestPlanCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.shaper")
	defer teardown()
	suite.Run(t, new(PlanCacheTestEnviron))
}

// run before each test method
func (env *PlanCacheTestEnviron) SetupTest() {
	env.cache = NewPlanCache(3)
}

// --- Tests -----------------------------------------------------------------

func (env *PlanCacheTestEnviron) TestDefaultCapacity() {
	env.Equal(DefaultPlanCacheSize, NewPlanCache(0).Capacity())
	env.Equal(3, env.cache.Capacity())
}

func (env *PlanCacheTestEnviron) TestGetPut() {
	plan := &ShapePlan{Script: ot.LATN}
	_, ok := env.cache.Get("a")
	env.False(ok)
	env.cache.Put("a", plan)
	p, ok := env.cache.Get("a")
	env.True(ok)
	env.Same(plan, p)
	env.Panics(func() { env.cache.Put("b", nil) })
}

func (env *PlanCacheTestEnviron) TestEvictsOldest() {
	for i := range 3 {
		env.cache.Put(PlanKey(fmt.Sprintf("k%d", i)), &ShapePlan{})
	}
	env.cache.Put("k0", &ShapePlan{}) // replacing keeps the position
	env.cache.Put("k3", &ShapePlan{})
	env.Equal(3, env.cache.Len())
	_, ok := env.cache.Get("k0")
	env.False(ok, "expected k0 to be evicted")
	for _, k := range []PlanKey{"k1", "k2", "k3"} {
		_, ok := env.cache.Get(k)
		env.True(ok, "expected %s to be cached", k)
	}
}

func (env *PlanCacheTestEnviron) TestConcurrentUse() {
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				key := PlanKey(fmt.Sprintf("k%d", (g+i)%5))
				if _, ok := env.cache.Get(key); !ok {
					env.cache.Put(key, &ShapePlan{})
				}
			}
		}()
	}
	wg.Wait()
	env.LessOrEqual(env.cache.Len(), 3)
}

func (env *PlanCacheTestEnviron) TestPlanKeyNormalization() {
	sel := SelectionContext{Script: language.Latin, Direction: bidi.LeftToRight}
	kern := FeatureRange{Feature: ot.T("kern"), On: false}
	liga := FeatureRange{Feature: ot.T("liga"), On: true}
	k1 := MakePlanKey("core", sel, []FeatureRange{kern, liga}, nil)
	k2 := MakePlanKey("core", sel, []FeatureRange{liga, kern}, nil)
	env.Equal(k1, k2)
	env.NotEqual(k1, MakePlanKey("arabic", sel, []FeatureRange{kern, liga}, nil))
	env.NotEqual(k1, MakePlanKey("core", sel, []FeatureRange{kern, liga}, []float32{0.5}))
	// the order of toggles for the same feature matters
	ligaOff := FeatureRange{Feature: ot.T("liga"), On: false}
	env.NotEqual(MakePlanKey("core", sel, []FeatureRange{liga, ligaOff}, nil),
		MakePlanKey("core", sel, []FeatureRange{ligaOff, liga}, nil))
	sel.Direction = bidi.RightToLeft
	env.NotEqual(k1, MakePlanKey("core", sel, []FeatureRange{kern, liga}, nil))
}

func (env *PlanCacheTestEnviron) TestFaceCachesPlans() {
	face := NewFace(ligaFont(), 2)
	req := PlanRequest{Selection: latinSelection()}
	key := MakePlanKey("core", req.Selection, nil, nil)
	p1, err := face.plan(key, req)
	env.Require().NoError(err)
	p2, err := face.plan(key, req)
	env.Require().NoError(err)
	env.Same(p1, p2)
	env.Equal(1, face.Plans().Len())
	// a face not created by NewFace builds plans without caching
	bare := &Face{Font: ligaFont()}
	p3, err := bare.plan(key, req)
	env.Require().NoError(err)
	env.Equal(lookupIndices(p1.GSUB), lookupIndices(p3.GSUB))
}
