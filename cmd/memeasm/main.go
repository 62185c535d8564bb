// Command memeasm compiles a meme-phrase source file into GNU-Assembler
// Intel-syntax text. It is the thin CLI shell around the pipeline the rest
// of this repository specifies: lex, parse, analyze, translate.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/grimdork/climate"

	"github.com/Urethramancer/memeasm/analyzer"
	"github.com/Urethramancer/memeasm/codegen"
	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/diag"
	"github.com/Urethramancer/memeasm/lexer"
	"github.com/Urethramancer/memeasm/parser"
	"github.com/Urethramancer/memeasm/target"
)

// Options are the compiler's command-line flags.
type Options struct {
	Source   string `arg:"1" help:"meme source file to compile"`
	Output   string `short:"o" long:"output" help:"output assembly path (default: stdout)"`
	Mode     string `short:"m" long:"mode" default:"executable" help:"executable, object, or other"`
	OptLevel string `long:"opt" default:"none" help:"none, 1, 2, 3, s, or 42069"`
	Platform string `long:"platform" default:"linux" help:"linux, macos, or windows"`
	Stabs    bool   `long:"stabs" help:"emit STABS debug directives"`
	Verbose  bool   `short:"v" long:"verbose" help:"log progress"`
}

func main() {
	log.SetFlags(0)

	var opt Options
	if err := climate.Parse(&opt); err != nil {
		log.Fatalf("%v", err)
	}

	mode, err := parseMode(opt.Mode)
	if err != nil {
		log.Fatalf("%v", err)
	}
	optLevel, err := parseOptLevel(opt.OptLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	platform, err := parsePlatform(opt.Platform)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if opt.Verbose {
		log.Printf("compiling %s...", opt.Source)
	}

	src, err := os.ReadFile(opt.Source)
	if err != nil {
		log.Fatalf("couldn't read source file: %v", err)
	}

	lines := lexer.Lex(string(src))
	stream, err := parser.Parse(lines)
	if err != nil {
		log.Fatalf("%v", err)
	}

	sink := diag.New()
	analyzer.AnalyzeFunctions(stream, command.FuncDecl, mode, platform, sink)
	analyzer.AnalyzeWhoWouldWin(stream, command.WhoWouldWin, sink)
	analyzer.AnalyzeSamePicture(stream, command.SamePictureCompare, sink)

	if sink.Count() > 0 {
		for _, d := range sink.All() {
			fmt.Fprintln(os.Stderr, d.String())
		}
		os.Exit(1)
	}

	state := &command.CompileState{
		Stream:     stream,
		Mode:       mode,
		OptLevel:   optLevel,
		UseStabs:   opt.Stabs,
		Platform:   platform,
		SourcePath: opt.Source,
	}

	out, closeOut, err := openOutput(opt.Output)
	if err != nil {
		log.Fatalf("couldn't open output: %v", err)
	}
	defer closeOut()

	if err := codegen.Translate(state, time.Now(), out); err != nil {
		log.Fatalf("error writing assembly: %v", err)
	}

	if opt.Verbose {
		log.Printf("done.")
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func parseMode(s string) (target.CompileMode, error) {
	switch s {
	case "executable":
		return target.Executable, nil
	case "object":
		return target.ObjectFile, nil
	case "other":
		return target.Other, nil
	default:
		return 0, fmt.Errorf("unknown mode: %s", s)
	}
}

func parseOptLevel(s string) (target.OptLevel, error) {
	switch s {
	case "none", "":
		return target.ONone, nil
	case "1":
		return target.O1, nil
	case "2":
		return target.O2, nil
	case "3":
		return target.O3, nil
	case "s":
		return target.OS, nil
	case "42069":
		return target.O42069, nil
	default:
		return 0, fmt.Errorf("unknown optimisation level: %s", s)
	}
}

func parsePlatform(s string) (target.Platform, error) {
	switch s {
	case "linux":
		return target.Linux, nil
	case "macos":
		return target.MacOS, nil
	case "windows":
		return target.Windows, nil
	default:
		return 0, fmt.Errorf("unknown platform: %s", s)
	}
}
