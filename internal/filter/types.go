package filter

import (
	"fmt"
	"strings"
)

// Kind classifies a single line with respect to the tracked conditional blocks.
type Kind int

const (
	Ordinary Kind = iota
	OpenDiscard
	OpenRetain
	Else
	End
	Elif      //diagnostic only, passed through like Ordinary
	ForeignIf //diagnostic only, passed through like Ordinary
)

func (k Kind) String() string {
	switch k {
	case OpenDiscard:
		return "open-discard"
	case OpenRetain:
		return "open-retain"
	case Else:
		return "else"
	case End:
		return "end"
	case Elif:
		return "elif"
	case ForeignIf:
		return "foreign-if"
	default:
		return "ordinary"
	}
}

// Region is the tagged view on a State.
type Region int

const (
	Normal Region = iota
	InDiscard
	InRetain
)

func (r Region) String() string {
	switch r {
	case InDiscard:
		return "discard"
	case InRetain:
		return "retain"
	default:
		return "normal"
	}
}

// State holds the two nesting counters of a single pass. The zero value is the initial state.
type State struct {
	Skip int
	Keep int
}

// Region reports the polarity of the innermost effective region. Discarding dominates retaining.
func (s State) Region() Region {
	switch {
	case s.Skip > 0:
		return InDiscard
	case s.Keep > 0:
		return InRetain
	default:
		return Normal
	}
}

func (s State) tracking() bool {
	return s.Skip > 0 || s.Keep > 0
}

// Tokens is the set of directive substrings that control region tracking.
type Tokens struct {
	OpenDiscard string
	OpenRetain  string
	Else        string
	End         string
}

// DefaultTokens strips the OpenGL branch of USE_VULKAN conditionals and keeps the Vulkan branch.
var DefaultTokens = Tokens{
	OpenDiscard: "#ifndef USE_VULKAN",
	OpenRetain:  "#ifdef USE_VULKAN",
	Else:        "#else",
	End:         "#endif",
}

const (
	directiveMarker = "#"
	elifToken       = "#elif"
	ifPrefix        = "#if"
)

// Validate ensures that all tokens are set, distinct, and actual directives.
func (t Tokens) Validate() error {
	named := []struct{ name, token string }{
		{"open-discard", t.OpenDiscard},
		{"open-retain", t.OpenRetain},
		{"else", t.Else},
		{"end", t.End},
	}
	seen := make(map[string]string, len(named))
	for _, n := range named {
		if n.token == "" {
			return fmt.Errorf("%s token is empty", n.name)
		}
		if !strings.HasPrefix(n.token, directiveMarker) {
			return fmt.Errorf("%s token %q does not start with %q", n.name, n.token, directiveMarker)
		}
		if other, dup := seen[n.token]; dup {
			return fmt.Errorf("%s token %q duplicates %s token", n.name, n.token, other)
		}
		seen[n.token] = n.name
	}
	return nil
}

// IssueKind names a structural problem that the counters cannot represent faithfully.
type IssueKind int

const (
	UnclosedRegion IssueKind = iota
	RepeatedElse
	UnsupportedElif
	ForeignConditional
)

func (k IssueKind) String() string {
	switch k {
	case UnclosedRegion:
		return "region opened here is never closed"
	case RepeatedElse:
		return "repeated else in one block is unsupported"
	case UnsupportedElif:
		return "elif inside a tracked block is unsupported"
	case ForeignConditional:
		return "foreign conditional inside a tracked block, its else/endif will be taken for the tracked block"
	default:
		return "unknown issue"
	}
}

// Issue locates a structural problem, Line is 1-based.
type Issue struct {
	Line int
	Kind IssueKind
	Text string
}

func (i Issue) String() string {
	return fmt.Sprintf("%d: %s (%s)", i.Line, i.Kind, i.Text)
}

// StructuralError carries all issues found in one input.
type StructuralError struct {
	Issues []Issue
}

func (e *StructuralError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "unbalanced conditional structure (%d issue", len(e.Issues))
	if len(e.Issues) != 1 {
		msg.WriteString("s")
	}
	msg.WriteString(")")
	for _, issue := range e.Issues {
		fmt.Fprint(&msg, "\n  line ", issue)
	}
	return msg.String()
}
