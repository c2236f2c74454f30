// Command minipar is the CLI front end: flag parsing, source loading, mode
// selection, and exit-code mapping. It is ambient tooling around the core
// package (spec.md §1) and implements nothing beyond spec.md §6's surface,
// plus an ambient `repl` subcommand for interactive scratch use.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	minipar "github.com/caioagralemos/Interpretador-de-Minipar"
)

const (
	exitOK        = 0
	exitLexError  = 1
	exitCompile   = 2
	exitRuntime   = 3
	exitCLIMisuse = 64

	historyFile = ".minipar_history"
)

func main() {
	app := cli.NewApp()
	app.Name = "minipar"
	app.Usage = "run, inspect, or explore Minipar programs"
	app.ArgsUsage = "<path>"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "tok", Usage: "print the token stream and exit"},
		cli.BoolFlag{Name: "ast", Usage: "print the parsed AST and exit"},
		cli.BoolFlag{Name: "v", Usage: "verbose diagnostics"},
		cli.BoolFlag{Name: "r", Usage: "disable example auto-detection"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "repl",
			Usage:  "start an interactive scratchpad",
			Action: runRepl,
		},
	}
	app.Action = runFile

	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(*cli.ExitError); ok {
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCLIMisuse)
	}
}

func runFile(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		cli.ShowAppHelp(ctx)
		return cli.NewExitError("minipar: expected exactly one <path> argument", exitCLIMisuse)
	}
	path := ctx.Args().Get(0)

	src, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("minipar: cannot read %s: %v", path, err), exitCLIMisuse)
	}
	text := string(src)
	verbose := ctx.Bool("v")

	toks, lexErr := minipar.NewLexer(text).Tokenize()
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, minipar.WrapErrorWithSource(lexErr, text))
		return cli.NewExitError("", exitLexError)
	}
	if ctx.Bool("tok") {
		fmt.Print(minipar.DumpTokens(toks))
		return nil
	}

	mod, parseErr := minipar.Parse(toks)
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, minipar.WrapErrorWithSource(parseErr, text))
		return cli.NewExitError("", exitCompile)
	}
	if ctx.Bool("ast") {
		fmt.Print(minipar.DumpAST(mod))
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "minipar: running %s (%d top-level statements)\n", path, len(mod.Stmts))
	}

	in := minipar.NewInterp()
	if runErr := in.Run(mod); runErr != nil {
		fmt.Fprintln(os.Stderr, minipar.WrapErrorWithSource(runErr, text))
		return cli.NewExitError("", exitRuntime)
	}
	return nil
}

// runRepl reads one snippet at a time (terminated by a blank line), parses
// and runs it as a self-contained module, and reports any error without
// exiting — grounded on the teacher's cmd/msg/main.go REPL loop, trimmed to
// Minipar's simpler (non-persistent) evaluation model.
func runRepl(ctx *cli.Context) error {
	fmt.Println("Minipar REPL. Enter a snippet, blank line to run it, Ctrl+D to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		var b strings.Builder
		for {
			line, err := ln.Prompt("minipar> ")
			if err != nil {
				fmt.Println()
				return nil
			}
			if strings.TrimSpace(line) == "" {
				break
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		src := b.String()
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(strings.TrimSpace(src), "\n", " "))

		toks, err := minipar.NewLexer(src).Tokenize()
		if err != nil {
			fmt.Println(minipar.WrapErrorWithSource(err, src))
			continue
		}
		mod, err := minipar.Parse(toks)
		if err != nil {
			fmt.Println(minipar.WrapErrorWithSource(err, src))
			continue
		}
		if err := minipar.NewInterp().Run(mod); err != nil {
			fmt.Println(minipar.WrapErrorWithSource(err, src))
		}
	}
}
