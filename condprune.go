package condprune

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/n2code/condprune/internal/filter"
	"github.com/n2code/condprune/internal/output"
	"github.com/n2code/condprune/internal/source"
	"github.com/n2code/condprune/internal/walk"
)

type pruner struct {
	config  Config
	root    string //absolute, system-native path
	scanDir string //absolute, system-native path
	wd      string //absolute, for display only
	filter  *filter.Filter
	match   walk.Matcher
	print   output.Printer
}

// New validates the configuration and prepares a run. The file system is not accessed before Run or ProcessFile.
func New(config Config) (Pruner, error) {
	f, err := filter.New(config.Tokens)
	if err != nil {
		return nil, fmt.Errorf("bad tokens: %w", err)
	}
	match, err := walk.NewMatcher(config.Patterns...)
	if err != nil {
		return nil, err
	}
	if filepath.IsAbs(config.Subdir) {
		return nil, fmt.Errorf("subdir must be relative to the root: %s", config.Subdir)
	}

	p := &pruner{config: config, filter: f, match: match}
	p.root = mustAbsFilepath(config.Root)
	p.scanDir = filepath.Join(p.root, config.Subdir)
	if config.WorkingDir != "" {
		p.wd = mustAbsFilepath(config.WorkingDir)
	} else if p.wd, err = os.Getwd(); err != nil {
		return nil, fmt.Errorf("working directory inaccessible: %w", err)
	}
	p.print = makePrinter(config)
	return p, nil
}

func makePrinter(config Config) output.Printer {
	out, errOut := config.Out, config.ErrOut
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	classes := []output.Class{output.Required, output.Error}
	switch config.Verbosity {
	case VerboseMode:
		classes = append(classes, output.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, output.Normal)
	}
	return output.NewPrinter(classes, out, errOut, output.NewPalette(config.Escapes))
}

func (p *pruner) Run() (summary Summary, err error) {
	p.print.Out(output.Verbose, "Scanning %s\n", p.displayablePath(p.scanDir))

	candidates, err := walk.Candidates(p.scanDir, p.match, p.config.Exclude)
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)
	p.print.Out(output.Normal, "Found %d files to process\n", len(candidates))

	tree := output.NewVisualFileTree(p.displayablePath(p.scanDir))
	for _, path := range candidates {
		outcome, err := p.ProcessFile(path)
		summary.Issues += len(outcome.Issues)
		if err != nil {
			return summary, err
		}
		if outcome.Modified {
			summary.Modified = append(summary.Modified, path)
			relative, _ := filepath.Rel(p.scanDir, path) //error impossible because candidates are below scan directory
			tree.InsertPath(relative, p.print.Palette.Dim(fmt.Sprintf(" [-%d]", outcome.Removed)))
		}
	}

	verb := "Modified"
	if p.config.DryRun {
		verb = "Would modify"
	}
	p.print.Out(output.Normal, "\n%s %d files\n", verb, len(summary.Modified))
	if summary.Issues > 0 {
		p.print.Out(output.Normal, "%d structural %s reported\n", summary.Issues, output.Plural(summary.Issues, "issue", "issues"))
	}
	if p.config.ShowTree && len(summary.Modified) > 0 {
		p.print.Out(output.Required, "%s", tree.Render())
	}
	if p.config.DryRun {
		p.print.Out(output.Normal, "Dry run complete, no files written.\n")
	} else {
		p.print.Out(output.Normal, "Conditional block removal complete!\n")
	}
	return summary, nil
}

func (p *pruner) ProcessFile(path string) (outcome FileOutcome, err error) {
	outcome.Path = path
	display := p.displayablePath(mustAbsFilepath(path))

	original, err := source.ReadLines(path)
	if err != nil {
		return outcome, newRunError("read", path, err)
	}

	result := p.filter.Apply(original)
	outcome.Issues = result.Issues
	if structuralErr := result.Err(); structuralErr != nil {
		if p.config.Strict {
			return outcome, newRunError("filter", path, structuralErr)
		}
		for _, issue := range result.Issues {
			p.print.Out(output.Error, "%s %s:%s\n", p.print.Palette.Warning("warning:"), display, issue)
		}
	}

	if !result.Changed(original) {
		p.print.Out(output.Verbose, "%s\n", p.print.Palette.Dim("Unchanged: "+display))
		return outcome, nil
	}
	outcome.Modified = true
	outcome.Removed = len(original) - len(result.Lines)

	if p.config.DryRun {
		p.print.Out(output.Normal, "Would modify: %s\n", display)
	} else {
		if err := source.WriteLines(path, result.Lines); err != nil {
			return outcome, newRunError("write", path, err)
		}
		p.print.Out(output.Normal, "Modified: %s\n", display)
	}
	p.print.Out(output.Verbose, "  %d %s removed\n", outcome.Removed, output.Plural(outcome.Removed, "line", "lines"))
	if p.config.ShowDiff {
		diff := strings.TrimSuffix(output.LineDiff(original, result.Lines, p.print.Palette), "\n")
		p.print.Out(output.Required, "%s\n", output.Indent(2, diff))
	}
	return outcome, nil
}
