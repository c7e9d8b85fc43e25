package otlayout

import "fmt"

// ScriptFamily identifies the script preprocessor which owns the per-glyph
// feature bits of a buffer. Preprocessors are mutually exclusive: a buffer is
// activated for at most one family.
type ScriptFamily uint8

const (
	NoScriptFamily ScriptFamily = iota
	ArabicFamily
	IndicFamily
	USEFamily
	HangulFamily
	ThaiFamily
	KhmerFamily
	MyanmarFamily
)

var scriptFamilyNames = [...]string{"none", "Arabic", "Indic", "USE", "Hangul", "Thai", "Khmer", "Myanmar"}

func (f ScriptFamily) String() string {
	if int(f) < len(scriptFamilyNames) {
		return scriptFamilyNames[f]
	}
	return fmt.Sprintf("family(%d)", f)
}

// ScriptFeatures is a tagged variant carrying per-glyph feature flags of a
// script family. The meaning of the bits is private to the preprocessor of the
// family; the layout engine only hands them to feature gates.
type ScriptFeatures struct {
	family ScriptFamily
	bits   uint16
}

// MakeScriptFeatures creates a feature variant for a script family.
func MakeScriptFeatures(family ScriptFamily, bits uint16) ScriptFeatures {
	return ScriptFeatures{family: family, bits: bits}
}

// Family returns the script family of the variant.
func (sf ScriptFeatures) Family() ScriptFamily { return sf.family }

// Bits returns the raw feature bits.
func (sf ScriptFeatures) Bits() uint16 { return sf.bits }

// IsZero is true for a variant without any flags set.
func (sf ScriptFeatures) IsZero() bool { return sf.bits == 0 }

// Has is true if any of the given bits is set and the variant belongs to family.
func (sf ScriptFeatures) Has(family ScriptFamily, bits uint16) bool {
	return sf.family == family && sf.bits&bits != 0
}

// With returns a copy with additional bits set.
func (sf ScriptFeatures) With(bits uint16) ScriptFeatures {
	sf.bits |= bits
	return sf
}

// Without returns a copy with bits cleared.
func (sf ScriptFeatures) Without(bits uint16) ScriptFeatures {
	sf.bits &^= bits
	return sf
}

func (sf ScriptFeatures) String() string {
	if sf.family == NoScriptFamily {
		return "-"
	}
	return fmt.Sprintf("%s:0x%04x", sf.family, sf.bits)
}
