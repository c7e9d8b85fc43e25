package fonttest

import (
	"os"

	td "github.com/go-text/typesetting-utils/opentype"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
}

// Fonts from the go-text test font collection, as used by tests of this module.
const (
	Arabic     = "common/NotoSansArabic.ttf"
	DejaVu     = "common/DejaVuSans.ttf"
	FreeSerif  = "common/FreeSerif.ttf"
	Mongolian  = "common/NotoSansMongolian-Regular.ttf"
	JapaneseVF = "common/NotoSansCJKjp-VF.otf"
)

// LoadTestFont loads a font from the go-text test font collection.
func LoadTestFont(name string) (*ScalableFont, error) {
	bytez, err := td.Files.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull)
	return f, err
}
