package otshape

import (
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// Config holds the tunables of a shaper.
type Config struct {
	PlanCacheSize           int  // capacity of plan caches of faces created by the shaper
	ZeroWidthMarks          bool // zero advances of marks not attached by GPOS
	FallbackPositioning     bool // use 'kern' and heuristic mark positioning without GPOS
	RemoveDefaultIgnorables bool // remove default ignorables instead of hiding them
	// TraceLevel is the level for the shaper's tracer. It is applied only if
	// SetTraceLevel is true.
	TraceLevel    tracing.TraceLevel
	SetTraceLevel bool
}

// Configuration keys read by ConfigFrom.
const (
	KeyPlanCacheSize       = "shaper.plancache.size"
	KeyZeroWidthMarks      = "shaper.marks.zerowidth"
	KeyFallbackPositioning = "shaper.fallback.positioning"
	KeyRemoveIgnorables    = "shaper.ignorables.remove"
	KeyTraceLevel          = "trace.textshaping.shaper"
)

// DefaultConfig returns the configuration used if clients do not provide one.
func DefaultConfig() Config {
	return Config{
		PlanCacheSize:       DefaultPlanCacheSize,
		ZeroWidthMarks:      true,
		FallbackPositioning: true,
	}
}

// ConfigFrom reads a shaper configuration from an application configuration.
// Keys not set keep their default values.
func ConfigFrom(conf schuko.Configuration) Config {
	c := DefaultConfig()
	if conf == nil {
		return c
	}
	if conf.IsSet(KeyPlanCacheSize) {
		if n := conf.GetInt(KeyPlanCacheSize); n > 0 {
			c.PlanCacheSize = n
		} else {
			tracer().Errorf("configuration: invalid plan cache size %q", conf.GetString(KeyPlanCacheSize))
		}
	}
	if conf.IsSet(KeyZeroWidthMarks) {
		c.ZeroWidthMarks = conf.GetBool(KeyZeroWidthMarks)
	}
	if conf.IsSet(KeyFallbackPositioning) {
		c.FallbackPositioning = conf.GetBool(KeyFallbackPositioning)
	}
	if conf.IsSet(KeyRemoveIgnorables) {
		c.RemoveDefaultIgnorables = conf.GetBool(KeyRemoveIgnorables)
	}
	if conf.IsSet(KeyTraceLevel) {
		c.TraceLevel = tracing.TraceLevelFromString(conf.GetString(KeyTraceLevel))
		c.SetTraceLevel = true
	}
	return c
}
