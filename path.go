package condprune

import (
	"path/filepath"
	"strings"

	"github.com/n2code/condprune/internal"
)

const dot string = "."
const dirSeparator = string(filepath.Separator)
const dotDirSeparator = dot + dirSeparator
const doubleDot = dot + dot
const doubleDotDirSeparator = doubleDot + dirSeparator

func isChildOf(child string, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	internal.AssertNoError(err, "paths should both be absolute")
	return !(rel == dot || rel == doubleDot || strings.HasPrefix(rel, doubleDotDirSeparator))
}

// pleasantPath turns an absolute path into something easily understandable from the current context.
// If the working directory is the root or inside it a relative path is emitted, with leading "./" to stress relativity.
// If the working directory is outside the root the absolute path is reflected unchanged.
func pleasantPath(absolute string, root string, wd string) string {
	if wd != root && !isChildOf(wd, root) {
		return absolute
	}
	relative, _ := filepath.Rel(wd, absolute) //error impossible because both are rooted
	if relative == dot {
		return relative
	}
	if !strings.HasPrefix(relative, doubleDotDirSeparator) {
		return dotDirSeparator + relative
	}
	return relative
}

func (p *pruner) displayablePath(absolutePath string) string {
	return pleasantPath(filepath.Clean(absolutePath), p.root, p.wd)
}

// mustAbsFilepath calls filepath.Abs and asserts that it is successful
func mustAbsFilepath(path string) string {
	abs, err := filepath.Abs(path)
	internal.AssertNoError(err, "working directory should be accessible")
	return abs
}
