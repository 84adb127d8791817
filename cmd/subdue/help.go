// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"subdue/internal/layout"
	"subdue/internal/resolve"
)

// summaryPrefix marks the one-line description inside a command script:
//
//	# Summary: deploy the current branch
const summaryPrefix = "# Summary:"

// summaryScanLimit bounds how far into a script we look for a summary.
const summaryScanLimit = 20

// treeEntry is one row of a command listing.
type treeEntry struct {
	// Name is the token a user types; the sh- prefix is stripped.
	Name string
	// Container marks a command group.
	Container bool
	// Summary is the script's one-line description, if any.
	Summary string
}

// listEntries reads one container directory and classifies its entries.
// Non-executable files and dotfiles are skipped; sh- leaves are listed
// under the token that reaches them.
func listEntries(probe resolve.Probe, dir string) []treeEntry {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	entries := make([]treeEntry, 0, len(dirents))
	for _, dirent := range dirents {
		name := dirent.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		full := filepath.Join(dir, name)
		switch {
		case probe.IsDir(full):
			entries = append(entries, treeEntry{Name: name, Container: true})
		case probe.IsExecutable(full):
			entries = append(entries, treeEntry{
				Name:    strings.TrimPrefix(name, resolve.ShellEvalPrefix),
				Summary: summaryOf(full),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// summaryOf extracts the "# Summary:" line from the head of a script.
func summaryOf(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for line := 0; line < summaryScanLimit && scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(text, summaryPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// printListing writes a styled command listing.
func printListing(w io.Writer, entries []treeEntry) {
	width := 0
	for _, e := range entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}

	for _, e := range entries {
		name := CmdStyle.Render(fmt.Sprintf("%-*s", width, e.Name))
		switch {
		case e.Container:
			name = ContainerStyle.Render(fmt.Sprintf("%-*s", width, e.Name))
			fmt.Fprintf(w, "  %s  %s\n", name, SubtitleStyle.Render("(group)"))
		case e.Summary != "":
			fmt.Fprintf(w, "  %s  %s\n", name, SubtitleStyle.Render(e.Summary))
		default:
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}

// printContainerHelp shows what a non-runnable group contains, so the
// failed dispatch still tells the user where to go next.
func (a *App) printContainerHelp(l layout.Layout, command resolve.Command) {
	entries := listEntries(resolve.OSProbe{}, command.Path)
	if len(entries) == 0 {
		return
	}

	prefix := l.Name
	if line := command.CommandLine(); line != "" {
		prefix += " " + line
	}

	fmt.Fprintf(a.stderr, "\nAvailable commands under %s:\n", CmdStyle.Render(prefix))
	printListing(a.stderr, entries)
}

// printSubHelp renders the sub's own help: its README when it ships one,
// then the top-level command listing.
func (a *App) printSubHelp(l layout.Layout, colorScheme string) {
	fmt.Fprintln(a.stdout, TitleStyle.Render(l.Name)+SubtitleStyle.Render(" - filesystem-backed command dispatcher"))

	if md, err := os.ReadFile(filepath.Join(l.Root, "README.md")); err == nil {
		if rendered, err := renderMarkdown(string(md), colorScheme); err == nil {
			fmt.Fprint(a.stdout, rendered)
		}
	}

	entries := listEntries(resolve.OSProbe{}, l.Commands)
	if len(entries) == 0 {
		fmt.Fprintf(a.stdout, "\nNo commands installed yet. Add executables under %s.\n", l.Commands)
		return
	}

	fmt.Fprintf(a.stdout, "\nUsage: %s <command> [args...]\n\nCommands:\n", l.Name)
	printListing(a.stdout, entries)
}

// renderMarkdown renders markdown for the terminal with the configured
// color scheme.
func renderMarkdown(source, colorScheme string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	switch colorScheme {
	case "dark", "light":
		opts = append(opts, glamour.WithStandardStyle(colorScheme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(source)
}
