// Command lox runs Lox scripts or starts an interactive prompt.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/longkhanh1987/CS-4080-HW/pkg/config"
	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/evaluator"
	"github.com/longkhanh1987/CS-4080-HW/pkg/help"
	"github.com/longkhanh1987/CS-4080-HW/pkg/history"
	"github.com/longkhanh1987/CS-4080-HW/pkg/repl"
	"github.com/longkhanh1987/CS-4080-HW/pkg/runtime"
)

// Exit codes follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
	exitConfig   = 78
)

type mode int

const (
	modeRun mode = iota
	modeCheck
	modeFormat
	modeParens
	modeRPN
)

type options struct {
	mode        mode
	modes       int
	noColor     bool
	json        bool
	verbose     bool
	configPath  string
	historyPath string
	script      string
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if errors.Is(err, errHelp) {
		fmt.Fprint(stdout, help.Usage)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		fmt.Fprint(stderr, help.Usage)
		return exitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return exitConfig
	}

	rtOpts := []runtime.Option{
		runtime.WithStdout(stdout),
		runtime.WithStderr(stderr),
		runtime.WithColor(cfg.Color && !opts.noColor),
		runtime.WithBudget(evaluator.Budget{MaxCallDepth: cfg.MaxCallDepth}),
	}
	if opts.verbose {
		rtOpts = append(rtOpts, runtime.WithLogger(log.New(stderr, "lox: ", 0)))
	}
	rt := runtime.New(rtOpts...)

	if opts.script == "" {
		if opts.mode != modeRun {
			fmt.Fprintln(stderr, "lox: -c, -f, -p and -r need a script")
			return exitUsage
		}
		return runPrompt(rt, cfg, opts, stdin, stdout, stderr)
	}

	source, err := readSource(opts.script, stdin)
	if err != nil {
		if opts.json {
			diag := diagnostics.MakeDiag(diagnostics.EIO, err.Error(), 0, "")
			fmt.Fprintln(stdout, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, true))
		} else {
			fmt.Fprintf(stderr, "lox: %v\n", err)
		}
		return exitNoInput
	}
	return runScript(rt, opts, source, stdout)
}

var errHelp = errors.New("help requested")

func parseArgs(args []string) (*options, error) {
	flags, optind, err := getopt.Getopts(args, "hcfprnvjC:H:")
	if err != nil {
		return nil, err
	}

	opts := &options{}
	for _, flag := range flags {
		switch flag.Option {
		case 'h':
			return nil, errHelp
		case 'c':
			opts.setMode(modeCheck)
		case 'f':
			opts.setMode(modeFormat)
		case 'p':
			opts.setMode(modeParens)
		case 'r':
			opts.setMode(modeRPN)
		case 'n':
			opts.noColor = true
		case 'v':
			opts.verbose = true
		case 'j':
			opts.json = true
		case 'C':
			opts.configPath = flag.Value
		case 'H':
			opts.historyPath = flag.Value
		}
	}
	if opts.modes > 1 {
		return nil, errors.New("-c, -f, -p and -r are mutually exclusive")
	}
	if opts.json && opts.mode != modeCheck {
		return nil, errors.New("-j only applies to -c")
	}

	rest := args[optind:]
	switch len(rest) {
	case 0:
	case 1:
		opts.script = rest[0]
	default:
		return nil, fmt.Errorf("too many arguments: %v", rest)
	}
	return opts, nil
}

func (o *options) setMode(m mode) {
	if o.mode != m {
		o.modes++
	}
	o.mode = m
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cwd, _ := os.Getwd()
		cfg, err = config.Discover(cwd)
	}
	if err != nil {
		return nil, err
	}
	if opts.historyPath != "" {
		cfg.History.Path = opts.historyPath
	}
	return cfg, nil
}

func readSource(file string, stdin io.Reader) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", file, err)
	}
	return string(data), nil
}

func runScript(rt *runtime.Runtime, opts *options, source string, stdout io.Writer) int {
	switch opts.mode {
	case modeCheck:
		diags := rt.Check(source)
		if opts.json {
			fmt.Fprintln(stdout, diagnostics.FormatDiagnostics(diags, true))
		} else {
			rt.Report(diags)
		}
		if hasSyntaxError(diags) {
			return exitDataErr
		}
		return exitOK
	case modeFormat:
		return printOrReport(rt, stdout)(rt.Format(source))
	case modeParens:
		return printOrReport(rt, stdout)(rt.PrintAST(source, false))
	case modeRPN:
		return printOrReport(rt, stdout)(rt.PrintAST(source, true))
	}

	switch rt.RunFile(source) {
	case runtime.StatusSyntaxError:
		return exitDataErr
	case runtime.StatusRuntimeError:
		return exitSoftware
	}
	return exitOK
}

func hasSyntaxError(diags []diagnostics.Diagnostic) bool {
	for _, d := range diags {
		if d.IsSyntax() {
			return true
		}
	}
	return false
}

func printOrReport(rt *runtime.Runtime, stdout io.Writer) func(string, error) int {
	return func(text string, err error) int {
		var diagErr *runtime.DiagnosticError
		if errors.As(err, &diagErr) {
			rt.Report(diagErr.Diagnostics)
			return exitDataErr
		}
		if err != nil {
			return exitSoftware
		}
		fmt.Fprint(stdout, text)
		return exitOK
	}
}

func runPrompt(rt *runtime.Runtime, cfg *config.Config, opts *options, stdin io.Reader, stdout, stderr io.Writer) int {
	var store *history.Store
	if path := cfg.HistoryPath(); path != "" {
		s, err := history.Open(path, history.WithLimit(cfg.History.Limit))
		if err != nil {
			fmt.Fprintf(stderr, "lox: %v; continuing without history\n", err)
		} else {
			store = s
			defer func() {
				if err := store.Purge(); err != nil {
					fmt.Fprintf(stderr, "lox: %v\n", err)
				}
				store.Close()
			}()
		}
	}

	if opts.noColor {
		cfg.Color = false
	}
	if err := repl.New(rt, stdin, stdout, cfg, store, repl.WithStderr(stderr)).Run(context.Background()); err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return exitSoftware
	}
	return exitOK
}
