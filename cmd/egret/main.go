package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/spf13/pflag"

	"github.com/egret-dev/egret/internal/engine"
	"github.com/egret-dev/egret/internal/report"
	"github.com/egret-dev/egret/internal/unescape"
)

var version = "0.1.0"

func main() {
	var stdin io.Reader
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		stdin = os.Stdin
	}
	if err := run(os.Args, stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("egret", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	base := fs.StringP("base", "b", "ab", "Base substring used to seed generated literals (>= 2 alphabetic characters)")
	debug := fs.Bool("debug", false, "Print an AST/NFA/basis-path trace to stdout")
	stat := fs.Bool("stat", false, "Print summary counters (basis paths, loops, warnings, generated strings)")
	copyOut := fs.Bool("copy", false, "Copy the generated output to the terminal clipboard via OSC52")
	unescapeFlag := fs.Bool("unescape", false, `Unescape the regex as a backslash-escaped string literal before parsing (turns \\d into \d)`)
	showVersion := fs.BoolP("version", "v", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "egret - generate test strings that exercise a regular expression\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  egret [flags] <regex>\n")
		fmt.Fprintf(stderr, "  echo 'regex' | egret [flags]\n\n")
		fmt.Fprintf(stderr, "Arguments:\n")
		fmt.Fprintf(stderr, "  regex    Regular expression to analyze (reads from stdin if omitted)\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  egret 'a[bc]+d'\n")
		fmt.Fprintf(stderr, "  egret --base hello '(ab){2,4}'\n")
		fmt.Fprintf(stderr, "  egret --debug --stat '(a+)\\1'\n")
		fmt.Fprintf(stderr, "  echo '^abc$' | egret\n")
	}

	err := fs.Parse(args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "egret version %s\n", version)
		return nil
	}

	pattern, err := getInput(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return err
	}

	if *unescapeFlag {
		pattern = unescape.StringLiteral(pattern)
	} else if unescape.ContainsDoubleEscapes(pattern) {
		fmt.Fprintf(stderr, "Note: pattern contains double-escaped backslashes; pass --unescape if this was copied from a string literal\n")
	}

	lines, trace := engine.Run(pattern, *base, *debug, *stat)

	for _, l := range lines {
		fmt.Fprintln(stdout, l)
	}

	if trace != nil {
		printer := report.NewPrinter(stdout)
		if *debug {
			printer.PrintTrace(trace)
		}
		if *stat {
			fmt.Fprint(stdout, report.FormatStatTable(report.StatsFor(trace)))
		}
	}

	if *copyOut {
		payload := strings.Join(lines, "\n")
		if _, err := osc52.New(payload).WriteTo(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: failed to copy output to clipboard: %v\n", err)
			return err
		}
	}

	if len(lines) > 0 && strings.HasPrefix(lines[0], "ERROR:") {
		return fmt.Errorf("%s", lines[0])
	}
	return nil
}

// getInput retrieves the regex pattern from CLI args or stdin.
func getInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if stdin != nil {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return strings.TrimSpace(string(input)), nil
	}
	return "", fmt.Errorf("no pattern provided")
}
