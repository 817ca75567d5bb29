package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "Empty", text: "", want: nil},
		{name: "SingleWithoutTerminator", text: "abc", want: []string{"abc"}},
		{name: "Terminated", text: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "Unterminated", text: "a\nb", want: []string{"a\n", "b"}},
		{name: "CRLF", text: "a\r\nb\r\n", want: []string{"a\r\n", "b\r\n"}},
		{name: "BlankLines", text: "\n\n", want: []string{"\n", "\n"}},
		{name: "LoneCR", text: "#ifdef USE_VULKAN\rvk();\r#endif\rkeep();\r", want: []string{"#ifdef USE_VULKAN\r", "vk();\r", "#endif\r", "keep();\r"}},
		{name: "LoneCRUnterminated", text: "a\rb", want: []string{"a\r", "b"}},
		{name: "MixedTerminators", text: "a\r\nb\rc\n\r\r\n", want: []string{"a\r\n", "b\r", "c\n", "\r", "\r\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitLines(tt.text)); diff != "" {
				t.Errorf("SplitLines(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestDecodeDropsInvalidSequences(t *testing.T) {
	raw := []byte("ok \xff\xfe bytes \xc3\xa4\n")
	if got, want := Decode(raw), "ok  bytes ä\n"; got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tr_main.c")
	if err := os.WriteFile(path, []byte("#include \"tr_local.h\"\r\nint x;\nlast"), 0600); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"#include \"tr_local.h\"\r\n", "int x;\n", "last"}, lines); diff != "" {
		t.Fatalf("ReadLines() mismatch (-want +got):\n%s", diff)
	}

	if err := WriteLines(path, lines[1:]); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "int x;\nlast" {
		t.Errorf("unexpected content after write: %q", content)
	}
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := stat.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions not kept: %v", perm)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	if _, err := ReadLines(filepath.Join(t.TempDir(), "absent.h")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
