package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/n2code/condprune/internal/filter"
	"github.com/n2code/condprune/internal/settings"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantNil  bool
		wantRoot string
	}{
		{name: "NoArguments", args: nil, wantRoot: "."},
		{name: "Root", args: []string{"/src/q3e"}, wantRoot: "/src/q3e"},
		{name: "FlagsAndRoot", args: []string{"-v", "-n", "-diff", "/src/q3e"}, wantRoot: "/src/q3e"},
		{name: "Help", args: []string{"-h"}, wantCode: 0, wantNil: true},
		{name: "QuietAndVerbose", args: []string{"-q", "-v"}, wantCode: 2, wantNil: true},
		{name: "TooManyRoots", args: []string{"a", "b"}, wantCode: 2, wantNil: true},
		{name: "UnknownFlag", args: []string{"-bogus"}, wantCode: 2, wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			rq, code := parseFlags(tt.args, &errOut)
			if code != tt.wantCode {
				t.Errorf("exit code %d, want %d (output: %s)", code, tt.wantCode, errOut.String())
			}
			if (rq == nil) != tt.wantNil {
				t.Fatalf("request = %+v, expected nil: %v", rq, tt.wantNil)
			}
			if rq != nil && rq.root != tt.wantRoot {
				t.Errorf("root %q, want %q", rq.root, tt.wantRoot)
			}
		})
	}
}

func TestHelpMentionsUsage(t *testing.T) {
	var errOut bytes.Buffer
	parseFlags([]string{"-h"}, &errOut)
	for _, want := range []string{"Usage:", "-strict", "-config", "USE_VULKAN"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("expected %q in help:\n%s", want, errOut.String())
		}
	}
}

func TestMergedSettingsPrecedence(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "condprune.yaml")
	if err := os.WriteFile(configFile, []byte("subdir: code/gfx\nexclude: [d3d]\nstrict: true\ndry_run: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("DefaultsOnly", func(t *testing.T) {
		rq, _ := parseFlags(nil, &bytes.Buffer{})
		s, err := rq.mergedSettings()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(settings.Defaults(), s); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ConfigFile", func(t *testing.T) {
		rq, _ := parseFlags([]string{"-config", configFile}, &bytes.Buffer{})
		s, err := rq.mergedSettings()
		if err != nil {
			t.Fatal(err)
		}
		if s.Subdir != "code/gfx" || !s.Strict || !s.DryRun || !cmp.Equal(s.Exclude, []string{"d3d"}) {
			t.Errorf("config file not applied: %+v", s)
		}
	})

	t.Run("ExplicitFlagsWin", func(t *testing.T) {
		rq, _ := parseFlags([]string{"-config", configFile, "-strict=false", "-subdir", "src/renderer2", "-exclude", "vk, gl_old ,", "-patterns", "**/*.c"}, &bytes.Buffer{})
		s, err := rq.mergedSettings()
		if err != nil {
			t.Fatal(err)
		}
		want := settings.Defaults()
		want.Subdir = "src/renderer2"
		want.Exclude = []string{"vk", "gl_old"}
		want.Patterns = []string{"**/*.c"}
		want.DryRun = true
		if diff := cmp.Diff(want, s); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("MissingConfigFile", func(t *testing.T) {
		rq, _ := parseFlags([]string{"-config", filepath.Join(t.TempDir(), "absent.yaml")}, &bytes.Buffer{})
		if _, err := rq.mergedSettings(); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestExecute(t *testing.T) {
	root := t.TempDir()
	renderer := filepath.Join(root, "src", "engine", "renderer")
	if err := os.MkdirAll(filepath.Join(renderer, "vulkan"), 0755); err != nil {
		t.Fatal(err)
	}
	source := "#ifndef USE_VULKAN\ngl_code();\n#else\nvk_code();\n#endif\n"
	for _, name := range []string{"tr_main.c", filepath.Join("vulkan", "vk.c")} {
		if err := os.WriteFile(filepath.Join(renderer, name), []byte(source), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rq, code := parseFlags([]string{"-p", root}, &bytes.Buffer{})
	if rq == nil {
		t.Fatalf("parse failed with %d", code)
	}
	var out, errOut bytes.Buffer
	if err := rq.execute(&out, &errOut); err != nil {
		t.Fatal(err)
	}

	if content, _ := os.ReadFile(filepath.Join(renderer, "tr_main.c")); string(content) != "vk_code();\n" {
		t.Errorf("tr_main.c not filtered: %q", content)
	}
	if content, _ := os.ReadFile(filepath.Join(renderer, "vulkan", "vk.c")); string(content) != source {
		t.Errorf("vulkan directory was processed: %q", content)
	}
	for _, want := range []string{"Found 1 files to process\n", "Modified: ", "tr_main.c\n", "\nModified 1 files\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("plain mode emitted escapes: %q", out.String())
	}
}

func TestExecuteStrictFailure(t *testing.T) {
	root := t.TempDir()
	renderer := filepath.Join(root, "src", "engine", "renderer")
	if err := os.MkdirAll(renderer, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(renderer, "broken.h"), []byte("#ifdef USE_VULKAN\nvk();\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rq, _ := parseFlags([]string{"-strict", "-q", root}, &bytes.Buffer{})
	var out, errOut bytes.Buffer
	err := rq.execute(&out, &errOut)
	var structural *filter.StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if content, _ := os.ReadFile(filepath.Join(renderer, "broken.h")); string(content) != "#ifdef USE_VULKAN\nvk();\n" {
		t.Errorf("file written despite strict failure: %q", content)
	}
}
