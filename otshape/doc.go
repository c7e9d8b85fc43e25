/*
Package otshape shapes runs of Unicode text with OpenType fonts.

The package API is centered around [Shaper] and [Face]:
  - callers wrap a font as a [Face], which caches shape plans,
  - text is handed over as a [UnicodeBuffer] together with segment metadata,
  - shaping returns positioned glyphs in visual order.

Script specific behaviour lives in shaping engines (see sub-packages), which
are injected into a [Shaper]. Engines are selected per run by matching the
segment's script, language and direction. There is no global registry.

The pipeline is synchronous. A buffer is never shared between calls; a Face
and its plan cache may be shared between goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otshape

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
)

// NOTDEF is the glyph index for OpenType ".notdef".
const NOTDEF = ot.GlyphIndex(0)

var (
	// ErrNoShaper indicates that no shaping engine matches a run and there is no default engine.
	ErrNoShaper = errShaper("no shaping engine for run")
	// ErrNilFont indicates that a face or font is missing.
	ErrNilFont = errShaper("nil font")
	// ErrBufferInvariant indicates inconsistent caller data, e.g. a cluster slice
	// of wrong length.
	ErrBufferInvariant = otlayout.ErrBufferInvariant
)

// tracer returns a trace sink for the otshape package namespace.
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}

// errShaper wraps a message as a user-facing shaping error.
func errShaper(x string) error {
	return fmt.Errorf("otshape: %s", x)
}

// assertThat panics when condition is false.
func assertThat(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
