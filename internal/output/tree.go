package output

import (
	"path/filepath"

	"github.com/disiqueira/gotree/v3"
)

// VisualFileTree collects relative file paths and renders them below a root label.
type VisualFileTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func NewVisualFileTree(rootLabel string) VisualFileTree {
	return VisualFileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t VisualFileTree) getDir(dirPath string) (dir gotree.Tree) {
	if dirPath == "." {
		return t.tree
	}
	dir = t.dirs[dirPath]
	if dir == nil {
		parentPath := filepath.Dir(dirPath)
		parentDir := t.getDir(parentPath)
		dir = parentDir.Add(filepath.Base(dirPath))
		t.dirs[dirPath] = dir
	}
	return
}

// InsertPath adds a file given relative to the root, nodeSuffix is appended to the file name (e.g. an annotation).
func (t VisualFileTree) InsertPath(relativePath string, nodeSuffix string) {
	file := filepath.Base(relativePath)
	dir := t.getDir(filepath.Dir(relativePath))
	dir.Add(file + nodeSuffix)
}

func (t VisualFileTree) Render() string {
	return t.tree.Print()
}
