package condprune

import (
	"io"

	"github.com/n2code/condprune/internal/filter"
	"github.com/n2code/condprune/internal/settings"
	"github.com/n2code/condprune/internal/walk"
)

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota
	VerboseMode
	QuietMode
)

// Config holds everything a run depends on. DefaultConfig yields the standard transformation for a given root.
type Config struct {
	Root     string       //engine checkout, relative paths are resolved against the working directory
	Subdir   string       //relative to Root, the only tree that is scanned
	Exclude  walk.Exclude //nil descends everywhere
	Patterns []string     //doublestar globs selecting candidate files
	Tokens   filter.Tokens
	Strict   bool //abort on structural issues instead of warning

	DryRun   bool
	ShowDiff bool
	ShowTree bool

	Verbosity  VerbosityLevel
	Escapes    bool      //allow terminal escape sequences (colors)
	Out        io.Writer //nil means os.Stdout
	ErrOut     io.Writer //nil means os.Stderr
	WorkingDir string    //base for displayed paths, empty means os.Getwd
}

// DefaultConfig strips the "#ifndef USE_VULKAN" branches below <root>/src/engine/renderer, leaving vulkan directories alone.
func DefaultConfig(root string) Config {
	return ConfigFromSettings(root, settings.Defaults())
}

// ConfigFromSettings maps loaded settings onto a Config. Presentation fields stay at their zero values.
func ConfigFromSettings(root string, s settings.Settings) Config {
	return Config{
		Root:     root,
		Subdir:   s.Subdir,
		Exclude:  walk.ExcludeSubstrings(s.Exclude...),
		Patterns: s.Patterns,
		Tokens:   s.FilterTokens(),
		Strict:   s.Strict,
		DryRun:   s.DryRun,
	}
}

// Summary describes a completed run.
type Summary struct {
	Candidates int
	Modified   []string //in processing order, also filled in dry run mode
	Issues     int      //structural issues over all files
}

// FileOutcome describes the processing of a single file.
type FileOutcome struct {
	Path     string
	Modified bool //filtered content differs from the original (written unless dry run)
	Removed  int  //number of lines dropped
	Issues   []filter.Issue
}

// Pruner lets you run the conditional block removal whose handle was retrieved using New.
type Pruner interface {

	// Run scans the configured directory for candidate files and processes each of them in lexical order.
	// Progress is printed while processing. The first read, write, or (in strict mode) structural error aborts the run,
	// files processed before stay modified.
	Run() (Summary, error)

	// ProcessFile filters a single file and overwrites it if the content changed (unless in dry run mode).
	// Files with unchanged content are never written.
	ProcessFile(path string) (FileOutcome, error)
}
