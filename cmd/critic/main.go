// Package main is the entry point for the critic command, which resolves
// and inspects suggestion markup in text files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/engine"
	"github.com/dshills/critic/internal/logging"
	"github.com/dshills/critic/internal/markup"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUnterminated makes check exit with status 1.
var errUnterminated = errors.New("unterminated markup")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	logLevel   string
	debug      bool
	write      bool
	watch      bool
	args       []string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, ok := parseFlags(args, stdout, stderr)
	if !ok {
		return code
	}

	paths := config.DefaultPaths()
	if opts.configPath != "" {
		paths = append(paths, opts.configPath)
	}
	settings, err := config.Load(paths)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load settings: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}
	if opts.debug {
		settings.LogLevel = "debug"
	}
	logger, err := logging.New(settings.LogLevel, opts.debug)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.NewContext(ctx, logger)

	cmd, rest := opts.args[0], opts.args[1:]
	if cmd == "settings" {
		err = showSettings(ctx, paths, settings, opts.watch, stdout)
	} else {
		err = runDocument(ctx, cmd, rest, opts.write, settings, stdin, stdout)
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUnterminated):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func parseFlags(args []string, stdout, stderr io.Writer) (options, int, bool) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("critic", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Additional settings file (TOML or YAML)")
	fs.StringVar(&opts.configPath, "c", "", "Additional settings file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.write, "w", false, "Write the result back to the file")
	fs.BoolVar(&opts.watch, "watch", false, "Keep printing settings as they change")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "critic - resolve and inspect suggestion markup\n\n")
		fmt.Fprintf(stderr, "Usage: critic [options] <command> [file]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  accept     Apply every suggestion\n")
		fmt.Fprintf(stderr, "  reject     Discard every suggestion\n")
		fmt.Fprintf(stderr, "  plain      Remove the markup, keeping all content\n")
		fmt.Fprintf(stderr, "  list       List the suggestions and comments\n")
		fmt.Fprintf(stderr, "  check      Report unterminated brackets\n")
		fmt.Fprintf(stderr, "  settings   Print the effective settings\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nWith no file, or when file is -, standard input is read.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, false
		}
		return opts, 2, false
	}

	if showVersion {
		fmt.Fprintf(stdout, "critic %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, false
	}

	opts.args = fs.Args()
	if len(opts.args) == 0 {
		fs.Usage()
		return opts, 2, false
	}
	switch opts.args[0] {
	case "accept", "reject", "plain", "list", "check", "settings":
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", opts.args[0])
		return opts, 2, false
	}
	if len(opts.args) > 2 {
		fmt.Fprintf(stderr, "Error: %s takes at most one file\n", opts.args[0])
		return opts, 2, false
	}
	return opts, 0, true
}

// runDocument loads the document named by args and runs cmd on a session
// holding it.
func runDocument(ctx context.Context, cmd string, args []string, write bool, settings config.Settings, stdin io.Reader, stdout io.Writer) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	if write && path == "-" {
		return errors.New("-w needs a file")
	}
	data, err := readInput(path, stdin)
	if err != nil {
		return err
	}

	logger := logging.L(ctx)
	opts := append(settings.EngineOptions(),
		engine.WithContent(string(data)),
		engine.WithLogger(logger))
	s := engine.New(opts...)
	logger.Debug("document loaded",
		zap.String("path", path),
		zap.String("session", s.ID().String()),
		zap.Int("ranges", len(s.Ranges())))

	var out string
	switch cmd {
	case "accept":
		if err := s.AcceptAll(); err != nil {
			return err
		}
		out = s.Text()
	case "reject":
		if err := s.RejectAll(); err != nil {
			return err
		}
		out = s.Text()
	case "plain":
		out = s.PlainText(engine.NewSelection(0, s.Len()))
	case "list":
		listRanges(s, stdout)
		return nil
	case "check":
		return checkDocument(s, path, stdout)
	}

	if write {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(out), info.Mode().Perm())
	}
	_, err = io.WriteString(stdout, out)
	return err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// listRanges prints one line per range: position, kind, metadata and
// content, with comments indented under the range they reply to.
func listRanges(s *engine.Session, w io.Writer) {
	text := s.Text()
	for _, r := range s.Ranges() {
		indent := ""
		if r.Base != nil {
			indent = "  "
		}
		p := s.Point(r.From)
		fmt.Fprintf(w, "%s%d:%d\t%s", indent, p.Line+1, p.Column+1, r.Kind)
		if f := r.Fields(); !f.IsZero() {
			for _, key := range markup.FieldKeys {
				if v := f.Value(key); v != "" {
					fmt.Fprintf(w, "\t%s=%s", key, v)
				}
			}
		}
		if r.Kind == markup.Substitution {
			fmt.Fprintf(w, "\t%q -> %q\n", r.Text(text, markup.Left), r.Text(text, markup.Right))
		} else {
			fmt.Fprintf(w, "\t%q\n", r.Text(text, markup.Whole))
		}
	}
}

func checkDocument(s *engine.Session, path string, w io.Writer) error {
	errs := s.Errors()
	for _, off := range errs {
		p := s.Point(off)
		fmt.Fprintf(w, "%s:%d:%d: unterminated bracket\n", path, p.Line+1, p.Column+1)
	}
	if len(errs) > 0 {
		return errUnterminated
	}
	return nil
}

func showSettings(ctx context.Context, paths []string, s config.Settings, watch bool, w io.Writer) error {
	printSettings(s, w)
	if !watch {
		return nil
	}
	err := config.Watch(ctx, paths, func(s config.Settings, err error) {
		if err == nil {
			fmt.Fprintln(w, "---")
			printSettings(s, w)
		}
	}, logging.L(ctx))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printSettings(s config.Settings, w io.Writer) {
	fmt.Fprintf(w, "author = %q\n", s.Author)
	fmt.Fprintf(w, "label = %q\n", s.Label)
	fmt.Fprintf(w, "timestamps = %v\n", s.Timestamps)
	fmt.Fprintf(w, "log.level = %q\n", s.LogLevel)
	for _, k := range markup.Kinds {
		span := s.Policies.For(k)
		fmt.Fprintf(w, "kinds.%s = %s, %s, %s\n", k, span.Movement, span.Bracket, span.Edit)
	}
	m := s.Policies.Merge
	fmt.Fprintf(w, "merge = author %s, time %s, label %s\n", m.Author, m.Time, m.Label)
}
