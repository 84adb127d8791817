// SPDX-License-Identifier: MPL-2.0

package resolve

import "strings"

// Kind discriminates the three possible resolution outcomes.
type Kind int

const (
	// KindNotFound means a token matched neither a directory, an executable,
	// nor an sh- fallback executable at the current tree position.
	KindNotFound Kind = iota
	// KindContainer means every examined token descended into directories
	// without reaching a runnable leaf.
	KindContainer
	// KindLeaf means an executable file was reached.
	KindLeaf
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindContainer:
		return "container"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Command is the immutable outcome of one resolution call. Exactly one Kind
// is produced per call; callers switch on Kind and must not inspect fields
// that are meaningless for the variant (Path and Args for KindNotFound,
// Args for KindContainer).
type Command struct {
	// Kind selects the outcome variant.
	Kind Kind
	// Tokens is the consumed prefix of the input token sequence. For
	// KindNotFound it includes the token that failed to match, so error
	// messages can show exactly where resolution stopped.
	Tokens []string
	// Path is the executable file (KindLeaf) or directory (KindContainer)
	// the tokens resolved to. Empty for KindNotFound.
	Path string
	// ShellEval is true when the leaf was found via the sh- naming
	// fallback rather than a direct match.
	ShellEval bool
	// Args is every token after the one that resolved to the leaf. They are
	// passed through verbatim; the dispatcher never parses them.
	Args []string
}

// Found reports whether the tokens resolved to a runnable leaf.
func (c Command) Found() bool { return c.Kind == KindLeaf }

// CommandLine returns the consumed tokens joined by spaces, for use in
// diagnostics ("no such command 'foo bar'").
func (c Command) CommandLine() string { return strings.Join(c.Tokens, " ") }

// Argv returns the argument vector to hand to a runner: the leaf path
// followed by the trailing arguments. It returns nil for non-leaf outcomes.
func (c Command) Argv() []string {
	if c.Kind != KindLeaf {
		return nil
	}
	argv := make([]string, 0, 1+len(c.Args))
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}
