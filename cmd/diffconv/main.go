// diffconv expands a diff model definition into a standalone module.
//
// A diff file declares classes that extend classes of an existing model
// source (a module whose dotted path contains "modeling_") and overrides a
// few of their methods. diffconv copies the base classes in, substitutes the
// overridden methods, renames the old model name to the new one and writes
// a file that no longer depends on the base model source.
//
// Usage:
//
//	diffconv [flags] <diff.py> <output.py>
//	diffconv --check [flags] <diff.py> <output.py>
//	diffconv --dump-tree [flags] <diff.py>
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/funvibe/diffconv/internal/config"
	"github.com/funvibe/diffconv/internal/converter"
	"github.com/funvibe/diffconv/internal/modules"
	"github.com/funvibe/diffconv/internal/prettyprinter"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// staleError reports an output file that does not match the expansion.
type staleError struct {
	path string
}

func (e *staleError) Error() string {
	return fmt.Sprintf("%s is out of date; regenerate it with diffconv", e.path)
}

func (e *staleError) ExitCode() int { return 2 }

type options struct {
	from        string
	to          string
	modulePaths []string
	marker      string
	configPath  string
	renameDiff  bool
	check       bool
	dumpTree    bool
	verbose     bool
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("diffconv", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.from, "from", config.DefaultOldToken, "model name to replace in external modules")
	flagSet.StringVar(&opts.to, "to", config.DefaultNewToken, "model name to replace it with")
	flagSet.StringArrayVar(&opts.modulePaths, "module-path", nil, "root searched for external modules (repeatable)")
	flagSet.StringVar(&opts.marker, "marker", config.DefaultSourceMarker, "substring identifying model source imports")
	flagSet.StringVar(&opts.configPath, "config", "", "config file (default: nearest diffconv.yaml)")
	flagSet.BoolVar(&opts.renameDiff, "rename-diff", false, "also rename the diff document itself")
	flagSet.BoolVar(&opts.check, "check", false, "exit with status 2 if the output file is out of date")
	flagSet.BoolVar(&opts.dumpTree, "dump-tree", false, "print the syntax tree of the expansion instead of writing it")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every stage and rename")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	positional := flagSet.Args()
	want := 2
	if opts.dumpTree {
		want = 1
	}
	if len(positional) != want {
		printUsage(stderr, flagSet)
		return fmt.Errorf("expected %d file arguments, got %d", want, len(positional))
	}

	cfg, err := loadConfig(opts, flagSet)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, opts.verbose)

	roots := cfg.ModulePath
	if len(roots) == 0 {
		roots = []string{"."}
	}
	index, err := modules.NewFSIndex(roots, cfg.IndexCacheSize)
	if err != nil {
		return fmt.Errorf("creating module index: %w", err)
	}

	inputPath := positional[0]
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading diff: %w", err)
	}
	conv := converter.New(cfg, index, logger)

	switch {
	case opts.dumpTree:
		ctx := conv.Inspect(inputPath, string(source))
		if ctx.Err != nil {
			return ctx.Err
		}
		printer := prettyprinter.NewTreePrinter()
		printer.Print(ctx.Assembled)
		_, err := io.WriteString(stdout, printer.String())
		return err

	case opts.check:
		outputPath := positional[1]
		existing, err := os.ReadFile(outputPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading output: %w", err)
		}
		upToDate, err := conv.Check(inputPath, string(source), string(existing))
		if err != nil {
			return err
		}
		if !upToDate {
			return &staleError{path: outputPath}
		}
		return nil
	}

	outputPath := positional[1]
	out, err := conv.Convert(inputPath, string(source))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("wrote standalone module", slog.String("output", outputPath))
	return nil
}

// loadConfig layers defaults, the config file, the environment and the
// flags that were set explicitly, in that order.
func loadConfig(opts options, flagSet *pflag.FlagSet) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if flagSet.Changed("from") {
		cfg.Rename.From = opts.from
	}
	if flagSet.Changed("to") {
		cfg.Rename.To = opts.to
	}
	if flagSet.Changed("module-path") {
		cfg.ModulePath = append(append([]string(nil), opts.modulePaths...), cfg.ModulePath...)
	}
	if flagSet.Changed("marker") {
		cfg.SourceMarker = opts.marker
	}
	if flagSet.Changed("rename-diff") {
		cfg.RenameDiff = opts.renameDiff
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes text records to a terminal and JSON records otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handlerOptions := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, handlerOptions))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOptions))
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `diffconv expands a diff model definition into a standalone module.

Usage:
  diffconv [flags] <diff.py> <output.py>
  diffconv --dump-tree [flags] <diff.py>

Examples:
  # Expand diff_gemma.py, copying classes from modeling_llama
  diffconv --module-path src diff_gemma.py modeling_gemma.py

  # Fail in CI when the generated file is stale
  diffconv --check --module-path src diff_gemma.py modeling_gemma.py

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
