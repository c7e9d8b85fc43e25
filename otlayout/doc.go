/*
Package otlayout applies OpenType layout lookups to a glyph buffer.

The package holds the glyph buffer (glyph infos and positions kept in lock-step),
the per-glyph script feature variant written by script preprocessors, and the
lookup application engine for GSUB and GPOS lookups.

GSUB lookups are applied with a write cursor: a lookup reads the input sequence
and writes an output sequence, which is swapped in as a whole when the lookup is
done. GPOS lookups edit positions in place.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// ErrBufferInvariant is returned by Buffer.Check for inconsistent buffers.
var ErrBufferInvariant = errors.New("otlayout: glyph buffer invariant violated")

// tracer writes to trace with key 'textshaping.layout'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.layout")
}

func assertThat(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
