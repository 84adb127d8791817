// SPDX-License-Identifier: MPL-2.0

package resolve

import "path/filepath"

// ShellEvalPrefix is the naming convention for leaves that require shell
// evaluation: token "deploy" falls back to file "sh-deploy" when no direct
// match exists.
const ShellEvalPrefix = "sh-"

// flagPrefix marks a token as a flag rather than a path component.
const flagPrefix = '-'

// Resolver resolves token sequences against a command tree. The zero value
// is not usable; construct with New.
type Resolver struct {
	probe Probe
}

// New creates a Resolver. A nil probe selects the host filesystem.
func New(probe Probe) *Resolver {
	if probe == nil {
		probe = OSProbe{}
	}
	return &Resolver{probe: probe}
}

// Resolve scans tokens left to right against the tree rooted at root and
// classifies the outcome. tokens must be non-empty; the caller filters help
// and empty invocations first.
//
// At each token the resolver asks at most three questions, in precedence
// order: is the candidate a directory (descend), is it an executable
// (leaf), is its sh- sibling an executable (shell-eval leaf). A token that
// answers none of these fails the whole resolution. A token starting with
// '-' stops the scan without being consumed: flags are not path components,
// and surfacing the container built so far lets the caller show contextual
// help for it.
func (r *Resolver) Resolve(root string, tokens []string) Command {
	current := root
	consumed := make([]string, 0, len(tokens))

	for i, token := range tokens {
		if len(token) > 0 && token[0] == flagPrefix {
			break
		}
		consumed = append(consumed, token)

		candidate := filepath.Join(current, token)
		if r.probe.IsDir(candidate) {
			current = candidate
			continue
		}

		if r.probe.IsExecutable(candidate) {
			return leaf(candidate, consumed, tokens[i+1:], false)
		}

		fallback := filepath.Join(current, ShellEvalPrefix+token)
		if r.probe.IsExecutable(fallback) {
			return leaf(fallback, consumed, tokens[i+1:], true)
		}

		return Command{Kind: KindNotFound, Tokens: consumed}
	}

	// Either every token descended into a directory or a flag cut the scan
	// short: the consumed prefix names a valid group, not a runnable unit.
	return Command{Kind: KindContainer, Tokens: consumed, Path: current}
}

func leaf(path string, consumed, rest []string, shellEval bool) Command {
	args := make([]string, len(rest))
	copy(args, rest)
	return Command{
		Kind:      KindLeaf,
		Tokens:    consumed,
		Path:      path,
		ShellEval: shellEval,
		Args:      args,
	}
}
