package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders the line-wise difference between two versions of a file.
// Each hunk of changes starts with a header naming its first line in both versions,
// removed lines are prefixed with "-" and added ones with "+". Unchanged lines are omitted.
func LineDiff(before []string, after []string, palette Palette) string {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(strings.Join(before, ""), strings.Join(after, ""))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lineArray)

	var rendered strings.Builder
	oldLine, newLine := 1, 1
	inHunk := false
	for _, d := range diffs {
		lines := splitKeepingTerminators(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			oldLine += len(lines)
			newLine += len(lines)
			inHunk = false
			continue
		}
		if !inHunk {
			rendered.WriteString(palette.Hunk(fmt.Sprintf("@@ -%d +%d @@", oldLine, newLine)))
			rendered.WriteByte('\n')
			inHunk = true
		}
		for _, line := range lines {
			text := strings.TrimRight(line, "\r\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				rendered.WriteString(palette.Removed("-" + text))
				oldLine++
			case diffmatchpatch.DiffInsert:
				rendered.WriteString(palette.Added("+" + text))
				newLine++
			}
			rendered.WriteByte('\n')
		}
	}
	return rendered.String()
}

func splitKeepingTerminators(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
