package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/pcf"
	"github.com/npillmayer/pcf/bitfont"
	"github.com/npillmayer/pcf/pcftab"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.pcf'
func tracer() tracing.Trace {
	return tracing.Select("font.pcf")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.font.pcf":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	ranges := flag.String("ranges", "all", "Code point ranges to load, e.g. 0x20-0x7e,U+20AC")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)
	pterm.Info.Println("Welcome to the PCF font CLI")
	//
	// set up REPL
	repl, err := readline.New("pcf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname, *ranges); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
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
	intp.REPL()
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
	path   string
	font   *bitfont.Font
	tables *pcftab.Tables
	filter bitfont.Filter
	repl   *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%s glyphs=%d filter=%s )", intp.font.Name, intp.font.Len(), intp.filter)
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
		cmd, err := intp.parseCommand(line)
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
	code int
	arg  string
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
	TABLES
	PROPS
	METRICS
	GLYPH
	SHOW
	FILTER
	SAVE
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"tables":  TABLES,
	"props":   PROPS,
	"metrics": METRICS,
	"glyph":   GLYPH,
	"show":    SHOW,
	"filter":  FILTER,
	"save":    SAVE,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"props",
	"metrics",
	"glyph",
	"show",
	"filter",
	"save",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
	}
}

// parseCommand splits a line into steps of the form "op" or "op:arg",
// e.g. "glyph:U+0041 show:A" or "filter:0x20-0x7e".
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		name, arg, _ := strings.Cut(step, ":")
		code, ok := opMap[strings.ToLower(name)]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = arg
		if arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: '%s'", opNames[code], arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	TABLES:  tablesOp,
	PROPS:   propsOp,
	METRICS: metricsOp,
	GLYPH:   glyphOp,
	SHOW:    showOp,
	FILTER:  filterOp,
	SAVE:    saveOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

var ErrNoFont = errors.New("no font loaded")

// loadFont decodes the tables of a font file and assembles the glyphs
// selected by ranges.
func (intp *Intp) loadFont(path string, ranges string) error {
	if path == "" {
		return errors.New("no font given, use -font <file>")
	}
	filter, err := bitfont.ParseFilter(ranges)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tables, err := pcf.DecodeTables(data)
	if err != nil {
		return fmt.Errorf("cannot decode font %s: %w", path, err)
	}
	font, err := bitfont.Assemble(tables, filter)
	if err != nil {
		return fmt.Errorf("cannot assemble font %s: %w", path, err)
	}
	intp.path, intp.tables, intp.font, intp.filter = path, tables, font, filter
	tracer().Infof("loaded font %q with %d glyphs", font.Name, font.Len())
	for _, w := range tables.Warnings() {
		pterm.Warning.Println(w.String())
	}
	return nil
}

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return ErrNoFont
	}
	return nil
}

func filterOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	filter, err := bitfont.ParseFilter(op.arg)
	if err != nil {
		return err, false
	}
	font, err := bitfont.Assemble(intp.tables, filter)
	if err != nil {
		return err, false
	}
	intp.font, intp.filter = font, filter
	pterm.Printf("%d glyphs selected\n", font.Len())
	return nil, false
}

func saveOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.arg == "" {
		return errors.New("save needs a file name, e.g. save:out.pcf.gz"), false
	}
	if err := pcf.Save(intp.font, op.arg); err != nil {
		return err, false
	}
	pterm.Success.Printf("saved %d glyphs to %s\n", intp.font.Len(), op.arg)
	return nil, false
}
