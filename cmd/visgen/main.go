package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/vistra/gen"
	"github.com/npillmayer/vistra/gen/ir"
	"github.com/npillmayer/vistra/render"
	"github.com/npillmayer/vistra/schema"
	"github.com/npillmayer/vistra/schema/sdl"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive CLI ("VISGEN"), where users enter schema
// declarations in the schema definition language and derive visitor
// families from them. Derived families can be inspected on the terminal
// and exported as Go source or HTML.
//
// Please refer to packages "schema/sdl", "gen" and "render".
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Schema file to load at startup")
	pkg := flag.String("pkg", "visitors", "Package name for exported Go source")
	flag.Parse()
	setTraceLevels(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to VISGEN")
	//
	// set up REPL
	repl, err := readline.New("visgen> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, pkg: *pkg}
	if *initf != "" {
		intp.loadSchemaFile(*initf)
	}
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevels(l tracing.TraceLevel) {
	for _, key := range []string{"vistra.schema", "vistra.sdl", "vistra.gen", "vistra.runtime", "vistra.render"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

// Intp is our interpreter object. It accumulates schema source lines
// until a :gen command derives a family from them.
type Intp struct {
	repl   *readline.Instance
	pkg    string
	source []string
	group  *schema.DeclGroup
	opts   []gen.Option
	family *ir.Family
}

func (intp *Intp) loadSchemaFile(filename string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		pterm.Error.Println("unable to read schema file: " + filename)
		return
	}
	intp.source = append(intp.source, string(data))
	pterm.Info.Println("loaded " + filename)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute runs a single REPL line: a :command, or a schema source line
// to accumulate.
func (intp *Intp) Execute(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		intp.source = append(intp.source, line)
		return false, nil
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":reset":
		intp.source, intp.group, intp.family = nil, nil, nil
		pterm.Info.Println("schema buffer cleared")
	case ":load":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: :load <file>")
		}
		intp.loadSchemaFile(args[1])
	case ":gen":
		return false, intp.generate(args[1:])
	case ":show":
		intp.show()
	case ":go":
		return false, intp.exportGo(args[1:])
	case ":html":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: :html <file>")
		}
		return false, intp.exportHTML(args[1])
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}

// generate parses the accumulated schema source and derives a family.
// Extra arguments are appended as options, e.g. ":gen variety=map name=cp".
func (intp *Intp) generate(extra []string) error {
	group, opts, err := sdl.Parse("repl", strings.Join(intp.source, "\n"))
	if err != nil {
		return err
	}
	for _, arg := range extra {
		name, value, _ := strings.Cut(arg, "=")
		opts = append(opts, gen.Option{Name: name, Value: value})
	}
	fam, err := gen.Generate(group, opts)
	if err != nil {
		return err
	}
	intp.group, intp.opts, intp.family = group, opts, fam
	pterm.Info.Println(fam.String())
	intp.show()
	return nil
}

// show prints the current family as a tree on the terminal.
func (intp *Intp) show() {
	if intp.family == nil {
		pterm.Info.Println("no family generated yet, use :gen")
		return
	}
	ll := pterm.LeveledList{{Level: 0, Text: intp.family.String()}}
	for _, c := range []*ir.Class{intp.family.Base, intp.family.Variant} {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: c.Name})
		for _, m := range c.Methods {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: m.String()})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// exportGo renders the family as Go source, to a file if given, to the
// terminal otherwise.
func (intp *Intp) exportGo(args []string) error {
	if intp.family == nil {
		return fmt.Errorf("no family generated yet, use :gen")
	}
	if len(args) == 0 {
		return render.FamilyAsGo(intp.family, intp.pkg, os.Stdout)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := render.FamilyAsGo(intp.family, intp.pkg, f); err != nil {
		return err
	}
	pterm.Info.Println("wrote " + args[0])
	return nil
}

func (intp *Intp) exportHTML(filename string) error {
	if intp.family == nil {
		return fmt.Errorf("no family generated yet, use :gen")
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	render.FamilyAsHTML(intp.family, f)
	pterm.Info.Println("wrote " + filename)
	return nil
}
