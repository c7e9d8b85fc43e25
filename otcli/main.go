package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/textshaping"
	"github.com/npillmayer/textshaping/internal/fonttest"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otfont"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/pterm/pterm"
)

// tracer traces with key 'textshaping.cli'
func tracer() tracing.Trace {
	return tracing.Select("textshaping.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.textshaping.cli":  "Info",
		"trace.textshaping.font": "Error",
		otshape.KeyPlanCacheSize: "16",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", fonttest.DejaVu, "Font to load (file path or name in the go-text test collection)")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)     // will set the correct level later
	pterm.Info.Println("Welcome to OpenType CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("ot > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	shaper := textshaping.NewShaper().Configure(otshape.ConfigFrom(conf))
	intp := &Intp{repl: repl, shaper: shaper}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font     *otfont.Font
	fontname string
	shaper   *otshape.Shaper
	face     *otshape.Face
	repl     *readline.Instance
	table    *ot.LayoutTable
	script   *ot.ScriptRecord // selected by 'scripts:<tag>'
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s", intp.fontname))
	if intp.table != nil {
		sb.WriteString(fmt.Sprintf(" table=%s", intp.table.Type))
	}
	if intp.script != nil {
		sb.WriteString(fmt.Sprintf(" script=%s", intp.script.Tag))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LOAD
	TABLE
	SCRIPTS
	FEATURES
	LOOKUPS
	GLYPH
	SHAPE
	PLAN
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"load":     LOAD,
	"table":    TABLE,
	"scripts":  SCRIPTS,
	"features": FEATURES,
	"lookups":  LOOKUPS,
	"glyph":    GLYPH,
	"shape":    SHAPE,
	"plan":     PLAN,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"table",
	"scripts",
	"features",
	"lookups",
	"glyph",
	"shape",
	"plan",
}

// parseCommand splits a line into steps, e.g. "table:GSUB scripts:latn features".
// A step has the form op[:arg[:format]]. 'shape' consumes the rest of the line
// as its argument, as text to shape may contain blanks.
func parseCommand(line string) (*Command, error) {
	command := &Command{}
	for i := range command.op {
		command.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	for i := 0; i < len(steps); i++ {
		if command.count == len(command.op) {
			return nil, errors.New("too many steps in command")
		}
		c := strings.SplitN(steps[i], ":", 3) // e.g.  "scripts:latn" or "lookups:5" or "help:lang"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		op := &command.op[command.count]
		command.count++
		op.code = code
		if code == QUIT {
			return command, nil
		}
		if code == SHAPE {
			first := strings.TrimPrefix(steps[i][len(c[0]):], ":")
			op.arg = strings.TrimSpace(first + " " + strings.Join(steps[i+1:], " "))
			tracer().Debugf("shape: '%s'", op.arg)
			return command, nil
		}
		op.arg = getOptArg(c, 1)
		op.format = getOptArg(c, 2)
		if op.arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], op.arg)
		}
	}
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	LOAD:     loadOp,
	TABLE:    tableOp,
	SCRIPTS:  scriptsOp,
	FEATURES: featuresOp,
	LOOKUPS:  lookupsOp,
	GLYPH:    glyphOp,
	SHAPE:    shapeOp,
	PLAN:     planOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op[:cmd.count] {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return nil, false
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func loadOp(intp *Intp, op *Op) (error, bool) {
	name, ok := op.hasArg()
	if !ok {
		return errors.New("usage: load:<font>"), false
	}
	return intp.loadFont(name), false
}

// loadFont loads a font from a file or, if no such file exists, from the
// go-text test font collection.
func (intp *Intp) loadFont(fontname string) (err error) {
	var otf *otfont.Font
	if _, statErr := os.Stat(fontname); statErr == nil {
		otf, err = otfont.Load(fontname)
	} else {
		var sf *fonttest.ScalableFont
		if sf, err = fonttest.LoadTestFont(fontname); err == nil {
			otf, err = otfont.Parse(sf.Binary)
		}
	}
	if err != nil {
		return fmt.Errorf("cannot load font %s: %w", fontname, err)
	}
	intp.font, intp.fontname = otf, fontname
	intp.face = intp.shaper.NewFace(otf)
	intp.table, intp.script = nil, nil
	names := otf.Names()
	tracer().Infof("loaded font %s (%s)", names.Full, fontname)
	printFontSummary(otf)
	return nil
}

// ----------------------------------------------------------------------

var ErrNoFont = errors.New("no font loaded")
var ErrNoTable = errors.New("no table set, use 'table:GSUB' or 'table:GPOS'")

func (intp *Intp) checkTable() error {
	if intp.font == nil {
		return ErrNoFont
	}
	if intp.table == nil {
		return ErrNoTable
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
