/*
Package othebrew provides the Hebrew shaping engine for package otshape.

Hebrew needs no positional forms. The engine fixes the order of a few vowel
marks which canonical ordering puts in the wrong sequence, and composes
letters with points into presentation forms for fonts which cannot position
marks with GPOS.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package othebrew

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textshaping.shaper'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.shaper")
}
