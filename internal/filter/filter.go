package filter

import "strings"

// Filter removes discard regions and the directives guarding tracked regions from a line sequence.
type Filter struct {
	tokens Tokens
}

// New creates a filter for the given token set.
func New(tokens Tokens) (*Filter, error) {
	if err := tokens.Validate(); err != nil {
		return nil, err
	}
	return &Filter{tokens: tokens}, nil
}

// Default creates a filter using DefaultTokens.
func Default() *Filter {
	return &Filter{tokens: DefaultTokens}
}

// Classify determines the kind of a line. Only lines starting with the directive marker (after trimming) can be directives.
// Tokens are matched as substrings anywhere in the trimmed line, the first match in declaration order wins.
func (f *Filter) Classify(line string) Kind {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, directiveMarker) {
		return Ordinary
	}
	switch {
	case strings.Contains(trimmed, f.tokens.OpenDiscard):
		return OpenDiscard
	case strings.Contains(trimmed, f.tokens.OpenRetain):
		return OpenRetain
	case strings.Contains(trimmed, f.tokens.Else):
		return Else
	case strings.Contains(trimmed, f.tokens.End):
		return End
	case strings.HasPrefix(trimmed, elifToken):
		return Elif
	case strings.HasPrefix(trimmed, ifPrefix):
		return ForeignIf
	}
	return Ordinary
}

// transition is the complete state machine. It reports whether the directive was consumed,
// else and end only apply while some tracked region is open.
func (s State) transition(k Kind) (State, bool) {
	switch k {
	case OpenDiscard:
		s.Skip++
		return s, true
	case OpenRetain:
		s.Keep++
		return s, true
	case Else:
		switch {
		case s.Skip > 0:
			s.Skip--
			s.Keep++
			return s, true
		case s.Keep > 0:
			s.Keep--
			s.Skip++
			return s, true
		}
	case End:
		switch {
		case s.Skip > 0:
			s.Skip--
			return s, true
		case s.Keep > 0:
			s.Keep--
			return s, true
		}
	}
	return s, false
}

// Result is the outcome of a single pass.
type Result struct {
	Lines  []string
	Issues []Issue
	Final  State
}

// Changed compares the filtered lines to the original element by element.
func (r Result) Changed(original []string) bool {
	if len(r.Lines) != len(original) {
		return true
	}
	for i := range original {
		if r.Lines[i] != original[i] {
			return true
		}
	}
	return false
}

// Err returns a *StructuralError if issues were found, nil otherwise.
func (r Result) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}
	return &StructuralError{Issues: r.Issues}
}

type frame struct {
	line     int
	text     string
	elseSeen bool
}

// Apply runs a single forward pass over the lines. The output is a subsequence of the input,
// directives consumed by the state machine are never emitted and ordinary lines are emitted unless a discard region is open.
// Issues are collected for diagnosis only and never influence the output.
func (f *Filter) Apply(lines []string) (result Result) {
	result.Lines = make([]string, 0, len(lines))

	var state State
	var open []frame //mirrors the counters, open directives in order

	report := func(lineNo int, kind IssueKind, text string) {
		result.Issues = append(result.Issues, Issue{Line: lineNo, Kind: kind, Text: strings.TrimSpace(text)})
	}

	for i, line := range lines {
		lineNo := i + 1
		kind := f.Classify(line)

		if next, consumed := state.transition(kind); consumed {
			switch kind {
			case OpenDiscard, OpenRetain:
				open = append(open, frame{line: lineNo, text: line})
			case Else:
				top := &open[len(open)-1]
				if top.elseSeen {
					report(lineNo, RepeatedElse, line)
				}
				top.elseSeen = true
			case End:
				open = open[:len(open)-1]
			}
			state = next
			continue
		}

		if state.tracking() {
			switch kind {
			case Elif:
				report(lineNo, UnsupportedElif, line)
			case ForeignIf:
				report(lineNo, ForeignConditional, line)
			}
		}

		if state.Region() != InDiscard {
			result.Lines = append(result.Lines, line)
		}
	}

	for _, unclosed := range open {
		report(unclosed.line, UnclosedRegion, unclosed.text)
	}
	result.Final = state
	return
}
