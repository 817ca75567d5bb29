package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/n2code/condprune"
	"github.com/n2code/condprune/cmd/condprune/flags"
	"github.com/n2code/condprune/internal/filter"
	"github.com/n2code/condprune/internal/settings"
	"github.com/n2code/condprune/internal/walk"
)

type CliRequest struct {
	verbose    bool
	quiet      bool
	plain      bool
	dryRun     bool
	strict     bool
	diff       bool
	tree       bool
	configFile string
	subdir     string
	exclude    string
	patterns   string
	root       string
	explicit   map[string]bool //flags given on the command line, they take precedence over the config file
}

func parseFlags(args []string, errOut io.Writer) (request *CliRequest, exitCode int) {
	flagSet := flag.NewFlagSet("condprune", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), `
Usage:
   condprune [-v|-q] [-p] [-n] [-diff] [-tree] [-strict] [-config FILE] [ROOT]

 Removes "#ifndef USE_VULKAN" branches from all C sources and headers below
 ROOT/src/engine/renderer and keeps "#ifdef USE_VULKAN" branches without their
 guards. Directories containing "vulkan" are skipped. Files are rewritten in
 place, only if their content changes. ROOT defaults to the working directory.

`)
		flagSet.PrintDefaults()
		fmt.Fprint(flagSet.Output(), "\n")
	}

	request = &CliRequest{explicit: make(map[string]bool)}
	var helpRequested bool
	flagSet.BoolVar(&request.verbose, flags.Verbose, false, "Output more details on what is done (verbose mode)")
	flagSet.BoolVar(&request.quiet, flags.Quiet, false, "Output only warnings, errors, and requested diffs or trees (quiet mode)")
	flagSet.BoolVar(&request.plain, flags.Plain, false, "Plain output without colors even on a terminal")
	flagSet.BoolVar(&helpRequested, flags.Help, false, "Display usage help")
	flagSet.BoolVar(&request.dryRun, flags.DryRun, false, "Do not write any file, only report what would be modified (dry run)")
	flagSet.BoolVar(&request.strict, flags.Strict, false, "Abort on unbalanced or unsupported conditional structure instead of warning")
	flagSet.BoolVar(&request.diff, flags.Diff, false, "Print the removed lines of every modified file")
	flagSet.BoolVar(&request.tree, flags.Tree, false, "Print all modified files as a tree at the end")
	flagSet.StringVar(&request.configFile, flags.Config, "", "Read settings from the given YAML `FILE` (flags take precedence)")
	flagSet.StringVar(&request.subdir, flags.Subdir, settings.DefaultSubdir, "Scan only this `DIR` relative to ROOT")
	flagSet.StringVar(&request.exclude, flags.Exclude, strings.Join(settings.DefaultExclude, ","), "Skip directories whose path contains any of these comma-separated `SUBSTRINGS`")
	flagSet.StringVar(&request.patterns, flags.Patterns, strings.Join(walk.DefaultPatterns, ","), "Comma-separated glob `PATTERNS` selecting candidate files")

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: condprune -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	if parseErr := flagSet.Parse(args); parseErr != nil {
		if errors.Is(parseErr, flag.ErrHelp) {
			return nil, 0
		}
		return nil, 2 //problem already reported by flag set
	}
	if helpRequested {
		flagSet.Usage()
		request = nil
		return
	}
	if request.verbose && request.quiet {
		err = errors.New("quiet mode and verbose mode are mutually exclusive")
		return
	}
	switch flagSet.NArg() {
	case 0:
		request.root = "."
	case 1:
		request.root = flagSet.Arg(0)
	default:
		err = errors.New("too many arguments, at most one ROOT expected")
		return
	}
	flagSet.Visit(func(f *flag.Flag) { request.explicit[f.Name] = true })
	return
}

func splitList(list string) (items []string) {
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return
}

// mergedSettings merges defaults, the config file, and explicitly given flags (in increasing precedence).
func (rq *CliRequest) mergedSettings() (s settings.Settings, err error) {
	s = settings.Defaults()
	if rq.configFile != "" {
		if s, err = settings.Load(rq.configFile); err != nil {
			return
		}
	}
	if rq.explicit[flags.Subdir] {
		s.Subdir = rq.subdir
	}
	if rq.explicit[flags.Exclude] {
		s.Exclude = splitList(rq.exclude)
	}
	if rq.explicit[flags.Patterns] {
		s.Patterns = splitList(rq.patterns)
	}
	if rq.explicit[flags.Strict] {
		s.Strict = rq.strict
	}
	if rq.explicit[flags.DryRun] {
		s.DryRun = rq.dryRun
	}
	err = s.Validate()
	return
}

func (rq *CliRequest) execute(out io.Writer, errOut io.Writer) error {
	s, err := rq.mergedSettings()
	if err != nil {
		return err
	}

	config := condprune.ConfigFromSettings(rq.root, s)
	config.ShowDiff = rq.diff
	config.ShowTree = rq.tree
	config.Escapes = !rq.plain && isTerminal(out)
	config.Out = out
	config.ErrOut = errOut
	if rq.verbose {
		config.Verbosity = condprune.VerboseMode
	}
	if rq.quiet {
		config.Verbosity = condprune.QuietMode
	}

	api, err := condprune.New(config)
	if err != nil {
		return err
	}
	_, err = api.Run()
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	rq, rc := parseFlags(os.Args[1:], os.Stderr)
	if rq == nil {
		os.Exit(rc)
	}
	if err := rq.execute(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var structural *filter.StructuralError
		if errors.As(err, &structural) {
			fmt.Fprintln(os.Stderr, "(file left unchanged, run without -strict to apply the counters as they are)")
		}
		os.Exit(1)
	}
	os.Exit(0)
}
