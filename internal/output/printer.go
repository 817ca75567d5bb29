package output

import (
	"fmt"
	"io"
)

type Class int

const (
	Required Class = iota
	Error
	Normal
	Verbose
)

// Printer routes formatted output by class: errors go to the diagnosis writer, everything else to the terminal.
// Classes not included are dropped.
type Printer struct {
	classes   map[Class]bool
	terminal  io.Writer
	diagnosis io.Writer
	Palette   Palette
}

func NewPrinter(include []Class, terminal io.Writer, diagnosis io.Writer, palette Palette) (p Printer) {
	p = Printer{
		classes:   map[Class]bool{},
		terminal:  terminal,
		diagnosis: diagnosis,
		Palette:   palette,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := &p.terminal
	if class == Error {
		target = &p.diagnosis
	}
	fmt.Fprintf(*target, format, values...)
}
