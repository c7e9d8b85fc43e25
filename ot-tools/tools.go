package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otfont"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/thatisuday/commando"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for testing OpenType shaping and font diagnostics.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("shape").
		SetDescription("Shape text with a given OpenType font and print glyph stream output.").
		SetShortDescription("shape text").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to shape (variadic argument parts joined by comma by commando)", "").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Arab, Hebr); guessed if empty", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "-").
		AddFlag("direction,d", "direction: ltr|rtl; guessed if empty", commando.String, "-").
		AddFlag("features,f", "feature list (e.g. kern,-liga,aalt=2,smcp[3:5])", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("variations", "variation axis settings (e.g. wght=700,wdth=75)", commando.String, "-").
		AddFlag("names,n", "print glyph names instead of glyph indices", commando.Bool, nil).
		AddFlag("harfbuzz,H", "shape with go-text's HarfBuzz as well and compare", commando.Bool, nil).
		SetAction(runShapeCommand)

	commando.
		Register("view").
		SetDescription("Render a shaped glyph to a PNG image.").
		SetShortDescription("shape to image").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to shape before rendering one glyph", "").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Arab, Hebr); guessed if empty", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "-").
		AddFlag("direction,d", "direction: ltr|rtl; guessed if empty", commando.String, "-").
		AddFlag("features,f", "feature list (e.g. kern,-liga,aalt=2,smcp[3:5])", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-view.png").
		AddFlag("index,i", "glyph index in shaped output (0-based)", commando.Int, 0).
		AddFlag("all,a", "render all shaped glyphs instead of only --index", commando.Bool, nil).
		AddFlag("show-bboxes,B", "draw red bounding-box outlines per rendered glyph", commando.Bool, nil).
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 96).
		AddFlag("width,W", "image width in pixels", commando.Int, 320).
		AddFlag("height,H", "image height in pixels", commando.Int, 240).
		SetAction(runViewCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and layout information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("glyphs...", "optional list of code-points to report glyph metrics for (e.g. A,U+0628)", "").
		AddFlag("errors,e", "print decoding errors and warnings", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// --- Parsing flags and arguments -------------------------------------------

// flagString returns the value of a string flag, with "-" meaning "not set".
func flagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

// typesetting holds the segment properties given on the command line.
type typesetting struct {
	script language.Script
	lang   xlanguage.Tag
	dir    bidi.Direction
	guess  bool // script or direction have to be guessed from the text
}

func parseTypesetFlags(flags map[string]commando.FlagValue) (typesetting, error) {
	var ts typesetting
	if s := flagString(flags["script"], "script"); s != "" {
		scr, err := language.ParseScript(s)
		if err != nil {
			return ts, fmt.Errorf("invalid script %q: %w", s, err)
		}
		ts.script = scr
	} else {
		ts.guess = true
	}
	if s := flagString(flags["lang"], "lang"); s != "" {
		tag, err := xlanguage.Parse(s)
		if err != nil {
			return ts, fmt.Errorf("invalid language tag %q: %w", s, err)
		}
		ts.lang = tag
	}
	switch s := strings.ToLower(flagString(flags["direction"], "direction")); s {
	case "":
		ts.guess = true
	case "ltr", "left-to-right":
		ts.dir = bidi.LeftToRight
	case "rtl", "right-to-left":
		ts.dir = bidi.RightToLeft
	default:
		return ts, fmt.Errorf("unsupported direction %q (expected ltr|rtl)", s)
	}
	return ts, nil
}

// buffer creates the input buffer for a shaping call.
func (ts typesetting) buffer(text string) otshape.UnicodeBuffer {
	buf := otshape.NewUnicodeBuffer(text)
	buf.Script, buf.Language, buf.Direction = ts.script, ts.lang, ts.dir
	if ts.guess {
		dir := buf.Direction
		buf.GuessSegmentProperties()
		if ts.script != 0 {
			buf.Script = ts.script
		}
		if dir == bidi.RightToLeft {
			buf.Direction = dir
		}
	}
	return buf
}

func parseShapeInput(textArg commando.ArgValue, cpFlag commando.FlagValue) (string, error) {
	if cp := flagString(cpFlag, "codepoints"); cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	return textArg.Value, nil
}

func parseFeatureList(flag commando.FlagValue) ([]otshape.FeatureRange, error) {
	spec := flagString(flag, "features")
	if spec == "" {
		return nil, nil
	}
	return otshape.ParseFeatures(spec)
}

// parseVariations parses axis settings like "wght=700,wdth=75".
func parseVariations(spec string) ([]otfont.Option, error) {
	var opts []otfont.Option
	for _, item := range splitCSVSpace(spec) {
		axis, value, ok := strings.Cut(item, "=")
		axis = strings.TrimSpace(axis)
		if !ok || len(axis) != 4 {
			return nil, fmt.Errorf("invalid variation %q (expected axis=value)", item)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid variation value in %q: %w", item, err)
		}
		opts = append(opts, otfont.WithVariation(ot.T(axis), float32(v)))
	}
	return opts, nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// parseCodepointToken accepts hex code-points, e.g. U+0627, 0x627 or 627.
func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10FFFF || (u >= 0xD800 && u <= 0xDFFF) {
		return 0, fmt.Errorf("codepoint %q is not a Unicode scalar value", token)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// --- Helpers ---------------------------------------------------------------

func mustLoadFont(path string, opts ...otfont.Option) *otfont.Font {
	otf, err := otfont.Load(path, opts...)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return otf
}

func mustFontPath(args map[string]commando.ArgValue) string {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	return fontPath
}

// verbose reports whether the root flag --verbose is set.
func verbose(flags map[string]commando.FlagValue) bool {
	v, ok := flags["verbose"]
	return ok && mustFlagBool(v, "verbose")
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
