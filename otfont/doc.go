/*
Package otfont loads OpenType fonts and presents them to the shaper as an ot.Font.

Font binaries are parsed by go-text/typesetting. Package otfont decodes
go-text's view of the GDEF, GSUB, GPOS and kern tables into the types of
package ot, once, while a font is loaded. Afterwards a Font is immutable
and may be shared between shaping calls running concurrently.

Variable fonts are instantiated at load time: the variation coordinates
given with WithVariation select advances, feature variations and the
deltas of GPOS value records and anchors.

Fonts without OpenType layout tables, but with an AAT 'morx' table, are
shaped through the morx boundary of package ot, which is implemented by
go-text's HarfBuzz port.

Problems found while decoding do not stop a font from loading. They are
collected as ot.Diagnostics and available from Font.Diagnostics.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfont

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'textshaping.font'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.font")
}
