/*
Package otarabic provides the shaping engine for joining scripts: Arabic,
Syriac, Mandaic, N'Ko, Mongolian, Adlam and Phags-pa.

The engine runs the cursive joining state machine over a run and marks every
glyph with its positional form. The plan's isol, fina, fin2, fin3, medi, med2
and init features are gated by these forms.
For fonts without positional GSUB features the engine falls back to the
Arabic presentation forms of Unicode, if the font maps them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otarabic

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}
