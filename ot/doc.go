/*
Package ot provides the OpenType font model used by the text shaper.

Package ot does not parse font binaries. It is the decoded, read-only view of
those parts of a font which are relevant for shaping: glyph coverage and class
definitions, the GDEF glyph properties, the GSUB and GPOS layout tables with
their script, feature and lookup lists, feature variations, and the legacy
'kern' and AAT 'morx' boundaries. A font loader (see package otfont) fills
these structures once; afterwards they are immutable and safe for concurrent
use.

Lookup subtables form a closed set of types: there is exactly one Go type for
every combination of lookup type and subtable format, and each of them
implements the sealed interface Subtable. Clients dispatch with a type switch.

The collaborator interface Font is what a shaper needs from a font. It is
deliberately small: cmap lookup, advances, layout tables and the optional
kerning and morx engines.

# Status

Work in progress. Variable fonts are supported through feature variations.
Advance deltas and variation deltas of device tables are resolved by the
font loader, so values in this package are always those of one instance.
Hinting device tables are kept and applied for a given pixel size.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'textshaping.ot'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.ot")
}
