package internal

import (
	"slices"
	"strings"
)

// Stack is the chain of macro names currently being expanded, outermost first.
// A Stack is treated as an immutable value: Push returns a new Stack and never
// touches the receiver's backing array, so each recursive call owns its view.
type Stack []string

// Contains reports whether name is already being expanded.
func (s Stack) Contains(name string) bool {
	return slices.Contains(s, name)
}

// Push returns a copy of the stack with name appended.
func (s Stack) Push(name string) Stack {
	next := make(Stack, len(s), len(s)+1)
	copy(next, s)
	return append(next, name)
}

// Depth returns the number of macros on the stack.
func (s Stack) Depth() int {
	return len(s)
}

// Location renders the stack as an error location suffix,
// e.g. ` in macro "A" => "B"`. An empty stack renders as "".
func (s Stack) Location() string {
	if len(s) == 0 {
		return ""
	}
	quoted := make([]string, len(s))
	for i, name := range s {
		quoted[i] = StrQuote + name + StrQuote
	}
	return StrLocationPrefix + strings.Join(quoted, StrChainSep)
}

// Chain renders the stack as a plain reference chain, e.g. `A => B => A`.
func (s Stack) Chain() string {
	return strings.Join(s, StrChainSep)
}

// String implements fmt.Stringer
func (s Stack) String() string {
	return s.Chain()
}
