/*
Package otindic provides shaping engines for the Indic scripts of the
Devanagari family and for the scripts handled by the Universal Shaping
Engine (USE).

Both engines split a buffer into syllables, find the base of each syllable,
flag glyphs for the basic shaping features (rphf, half, blwf, pstf, …) and
reorder pre-base vowels and Reph.

Indic blocks share a common layout, inherited from ISCII. Categories of
Indic characters are derived from the offset of a character within its block,
together with its Unicode general category. USE categories are derived from
general categories and canonical combining classes, completed by small
tables of pre-base vowels and medials.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otindic

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}
