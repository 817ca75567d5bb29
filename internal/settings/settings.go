// Package settings loads the optional YAML configuration file and supplies defaults.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/n2code/condprune/internal/filter"
	"github.com/n2code/condprune/internal/walk"
)

// DefaultSubdir is the renderer location inside an engine checkout.
var DefaultSubdir = filepath.Join("src", "engine", "renderer")

// DefaultExclude names the backend directory that is already free of the discarded branch.
var DefaultExclude = []string{"vulkan"}

type Tokens struct {
	OpenDiscard string `yaml:"open_discard"`
	OpenRetain  string `yaml:"open_retain"`
	Else        string `yaml:"else"`
	End         string `yaml:"end"`
}

// Settings is the file representation of a run configuration. Keys absent from the file keep their defaults.
type Settings struct {
	Subdir   string   `yaml:"subdir"`
	Exclude  []string `yaml:"exclude"`
	Patterns []string `yaml:"patterns"`
	Tokens   Tokens   `yaml:"tokens"`
	Strict   bool     `yaml:"strict"`
	DryRun   bool     `yaml:"dry_run"`
}

func Defaults() Settings {
	return Settings{
		Subdir:   DefaultSubdir,
		Exclude:  append([]string(nil), DefaultExclude...),
		Patterns: append([]string(nil), walk.DefaultPatterns...),
		Tokens: Tokens{
			OpenDiscard: filter.DefaultTokens.OpenDiscard,
			OpenRetain:  filter.DefaultTokens.OpenRetain,
			Else:        filter.DefaultTokens.Else,
			End:         filter.DefaultTokens.End,
		},
	}
}

// Load reads a configuration file, see Parse.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s, err := Parse(b)
	if err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected and the result is validated.
func Parse(b []byte) (Settings, error) {
	s := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) { //empty file means defaults
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) FilterTokens() filter.Tokens {
	return filter.Tokens{
		OpenDiscard: s.Tokens.OpenDiscard,
		OpenRetain:  s.Tokens.OpenRetain,
		Else:        s.Tokens.Else,
		End:         s.Tokens.End,
	}
}

func (s Settings) Validate() error {
	if filepath.IsAbs(s.Subdir) {
		return fmt.Errorf("subdir must be relative to the root: %s", s.Subdir)
	}
	if err := s.FilterTokens().Validate(); err != nil {
		return fmt.Errorf("bad tokens: %w", err)
	}
	if _, err := walk.NewMatcher(s.Patterns...); err != nil {
		return err
	}
	return nil
}
