package output

import "github.com/fatih/color"

// Palette formats text with terminal escape sequences, or leaves it untouched if escapes are not allowed.
type Palette struct {
	dim     *color.Color
	err     *color.Color
	warning *color.Color
	removed *color.Color
	added   *color.Color
	hunk    *color.Color
}

func NewPalette(allowEscapes bool) Palette {
	p := Palette{
		dim:     color.New(color.Faint),
		err:     color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		hunk:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.dim, p.err, p.warning, p.removed, p.added, p.hunk} {
		if allowEscapes {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p Palette) Dim(text string) string     { return p.dim.Sprint(text) }
func (p Palette) Error(text string) string   { return p.err.Sprint(text) }
func (p Palette) Warning(text string) string { return p.warning.Sprint(text) }
func (p Palette) Removed(text string) string { return p.removed.Sprint(text) }
func (p Palette) Added(text string) string   { return p.added.Sprint(text) }
func (p Palette) Hunk(text string) string    { return p.hunk.Sprint(text) }
