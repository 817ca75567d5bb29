// Package source reads and writes text files as sequences of lines that keep their terminators.
package source

import (
	"io/fs"
	"os"
	"strings"
)

// Decode interprets raw file content as UTF-8, invalid byte sequences are dropped.
func Decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// SplitLines splits text after each line terminator ("\n", "\r\n" or a lone "\r"). Terminators stay attached
// to their line byte for byte, a final line without terminator is kept as is. Empty text yields no lines.
func SplitLines(text string) (lines []string) {
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			continue
		}
		lines = append(lines, text[start:i+1])
		start = i + 1
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// ReadLines loads a file and splits its lossily decoded content into lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(Decode(data)), nil
}

// WriteLines overwrites the file at path with the concatenated lines. Existing permission bits are kept.
// The write happens in place, an interruption may leave a partially written file behind.
func WriteLines(path string, lines []string) error {
	perm := fs.FileMode(0644)
	if stat, err := os.Stat(path); err == nil {
		perm = stat.Mode().Perm()
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "")), perm)
}
