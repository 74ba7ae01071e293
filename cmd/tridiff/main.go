// Command tridiff compares three texts pairwise and line by line.
//
// Usage:
//
//	tridiff a.txt b.txt c.txt
//	tridiff -m char -o report.html a.txt b.txt c.txt
//	cat a.txt | tridiff - b.txt c.txt
//	tridiff --serve --addr :8080
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/dacharyc/tridiff"
	"github.com/dacharyc/tridiff/internal/config"
	"github.com/dacharyc/tridiff/internal/logging"
	"github.com/dacharyc/tridiff/internal/web"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitIdentical = 0 // all three texts are identical
	exitDiffer    = 1 // texts differ
	exitError     = 2 // error occurred
)

// cliFlags holds all parsed command-line flags
type cliFlags struct {
	configPath *string
	output     *string
	noColor    *bool
	colorSpec  *string
	noDeleted  *bool
	noInserted *bool
	noCommon   *bool
	statistics *bool
	serve      *bool
	help       *bool
	version    *bool
}

// defineFlags sets up all command-line flags on fs. Flags listed in
// config.FlagKeys are read back through the config package.
func defineFlags(fs *flag.FlagSet, stderr io.Writer) cliFlags {
	def := config.Default()

	fs.StringP("mode", "m", def.Mode, "diff granularity: line, word, or char")
	fs.StringP("algorithm", "A", def.Align.Algorithm, "alignment algorithm: matcher or histogram")
	fs.Bool("autojunk", def.Align.AutoJunk, "ignore very frequent tokens when matching (matcher only)")
	fs.Bool("distinguish-missing", def.Summary.DistinguishMissing, "treat lines past the end of a text as missing rather than blank")
	fs.String("title", def.Report.Title, "HTML report title")
	fs.String("addr", def.Server.Addr, "listen address for --serve")
	fs.String("log-level", def.Log.Level, "log level: debug, info, warn, or error")
	fs.String("log-format", def.Log.Format, "log format: text or json")

	f := cliFlags{
		configPath: fs.String("config", "", "config file (default: tridiff.yaml in ., ./config, or $XDG_CONFIG_HOME/tridiff)"),
		output:     fs.StringP("output", "o", "", "write the HTML report to this file ('-' for stdout)"),
		noColor:    fs.Bool("no-color", false, "disable colored output"),
		colorSpec:  fs.StringP("color", "c", "", "set colors for deleted/inserted text (format: del_fg[:del_bg],ins_fg[:ins_bg])"),
		noDeleted:  fs.BoolP("no-deleted", "1", false, "suppress printing of deleted text"),
		noInserted: fs.BoolP("no-inserted", "2", false, "suppress printing of inserted text"),
		noCommon:   fs.BoolP("no-common", "3", false, "suppress printing of common text"),
		statistics: fs.BoolP("statistics", "s", false, "print statistics for each pair"),
		serve:      fs.Bool("serve", false, "start the web interface instead of comparing files"),
		help:       fs.BoolP("help", "h", false, "show help"),
		version:    fs.BoolP("version", "v", false, "show version"),
	}

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tridiff [options] fileA fileB fileC\n")
		fmt.Fprintf(stderr, "       tridiff --serve [--addr :8080]\n")
		fmt.Fprintf(stderr, "\nThree-way text comparison with an HTML report.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.SetOutput(stderr)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  tridiff a.txt b.txt c.txt\n")
		fmt.Fprintf(stderr, "  tridiff -m line -o 3_way_diff.html a.txt b.txt c.txt\n")
		fmt.Fprintf(stderr, "  git show HEAD:notes.md | tridiff - notes.md notes.bak\n")
		fmt.Fprintf(stderr, "\nExit codes:\n")
		fmt.Fprintf(stderr, "  0  texts are identical\n")
		fmt.Fprintf(stderr, "  1  texts differ\n")
		fmt.Fprintf(stderr, "  2  error occurred\n")
	}

	return f
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns its exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tridiff", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := defineFlags(fs, stderr)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return exitError
	}

	if *f.version {
		fmt.Fprintf(stdout, "tridiff version %s\n", Version)
		return exitIdentical
	}
	if *f.help {
		fs.Usage()
		return exitIdentical
	}

	cfg, err := config.Load(*f.configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	logger, err := logging.Init(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if *f.serve {
		if err := web.New(cfg, logger).Run(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitIdentical
	}

	if fs.NArg() != 3 {
		fmt.Fprintln(stderr, "Error: requires three file arguments")
		fs.Usage()
		return exitError
	}

	texts, err := readInputTexts(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	in := tridiff.Input{A: texts[0], B: texts[1], C: texts[2], Mode: cfg.DiffMode()}
	opts := cfg.ReportOptions()
	logger.Debug("comparing", "mode", in.Mode.String(), "algorithm", opts.Align.Algorithm.String(), "autojunk", opts.Align.AutoJunk)

	report, err := tridiff.Assemble(in, opts)
	if errors.Is(err, tridiff.ErrEmptyInput) {
		fmt.Fprintln(stderr, "Warning: Please enter at least one non-empty text.")
		return exitError
	}

	if *f.output != "" {
		if err := writeReport(report, *f.output, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		logger.Debug("report written", "path", *f.output)
	} else {
		fmtOpts, err := formatOptions(f, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		printReport(stdout, report, fmtOpts, opts.Summary, *f.statistics)
	}

	if report.HasChanges() || len(report.Rows) > 0 {
		return exitDiffer
	}
	return exitIdentical
}

// formatOptions builds terminal formatting options from the flags.
func formatOptions(f cliFlags, stdout io.Writer) (tridiff.FormatOptions, error) {
	fmtOpts := tridiff.DefaultFormatOptions()
	fmtOpts.NoDeleted = *f.noDeleted
	fmtOpts.NoInserted = *f.noInserted
	fmtOpts.NoCommon = *f.noCommon
	fmtOpts.UseColor = !*f.noColor && os.Getenv("NO_COLOR") == "" && (isTerminal(stdout) || *f.colorSpec != "")

	if *f.colorSpec != "" && *f.colorSpec != "default" {
		del, ins, err := tridiff.ParseColorSpec(*f.colorSpec)
		if err != nil {
			return fmtOpts, fmt.Errorf("%w (available: %s)", err, strings.Join(tridiff.ColorNames(), ", "))
		}
		fmtOpts.DeleteColor, fmtOpts.InsertColor = del, ins
	}
	return fmtOpts, nil
}

// printReport prints every pair and the tri-summary for a terminal.
func printReport(w io.Writer, report *tridiff.Report, fmtOpts tridiff.FormatOptions, sumOpts tridiff.SummaryOptions, stats bool) {
	for _, p := range report.Pairs {
		fmt.Fprintf(w, "=== %s vs %s ===\n", p.Left, p.Right)
		out := tridiff.FormatPair(p.LeftTokens, p.RightTokens, p.Ops, fmtOpts)
		fmt.Fprint(w, out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(w)
		}
		if stats {
			fmt.Fprintf(w, "%s: %d tokens, %s: %d tokens, %s\n",
				p.Left, p.Stats.OldTokens, p.Right, p.Stats.NewTokens, p.Stats)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "=== Tri-diff summary (line-level) ===")
	fmt.Fprint(w, tridiff.FormatSummary(report.Rows, sumOpts))
}

// writeReport writes the HTML document to path, or to stdout for "-".
func writeReport(report *tridiff.Report, path string, stdout io.Writer) error {
	if path == "-" {
		_, err := report.WriteTo(stdout)
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := report.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

// readInputTexts reads the three inputs; "-" reads stdin, at most once.
func readInputTexts(paths []string, stdin io.Reader) ([]string, error) {
	texts := make([]string, len(paths))
	usedStdin := false
	for i, path := range paths {
		if path == "-" {
			if usedStdin {
				return nil, errors.New("stdin ('-') can only be used for one input")
			}
			usedStdin = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			texts[i] = string(data)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		texts[i] = string(data)
	}
	return texts, nil
}

// isTerminal returns true if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
