// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"subdue/internal/resolve"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func TestListEntries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix executable bits")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "deploy"), "#!/bin/sh\n# Summary: ship it\n", 0o755)
	writeFile(t, filepath.Join(dir, "sh-env"), "#!/bin/sh\nexport X=1\n", 0o755)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a command\n", 0o644)
	writeFile(t, filepath.Join(dir, ".hidden"), "#!/bin/sh\n", 0o755)
	if err := os.MkdirAll(filepath.Join(dir, "db"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := listEntries(resolve.OSProbe{}, dir)
	want := []treeEntry{
		{Name: "db", Container: true},
		{Name: "deploy", Summary: "ship it"},
		{Name: "env"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("listEntries() = %+v, want %+v", got, want)
	}
}

func TestListEntriesMissingDir(t *testing.T) {
	if got := listEntries(resolve.OSProbe{}, filepath.Join(t.TempDir(), "nope")); got != nil {
		t.Errorf("listEntries() = %+v, want nil", got)
	}
}

func TestSummaryOf(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "summary present",
			content: "#!/bin/sh\n# Summary: deploy the current branch\necho hi\n",
			want:    "deploy the current branch",
		},
		{
			name:    "indented summary",
			content: "#!/bin/sh\n  # Summary:   spaced out  \n",
			want:    "spaced out",
		},
		{
			name:    "no summary",
			content: "#!/bin/sh\necho hi\n",
			want:    "",
		},
		{
			name:    "summary too deep",
			content: "#!/bin/sh\n" + nLines(summaryScanLimit) + "# Summary: buried\n",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "script")
			writeFile(t, path, tt.content, 0o755)
			if got := summaryOf(path); got != tt.want {
				t.Errorf("summaryOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryOfMissingFile(t *testing.T) {
	if got := summaryOf(filepath.Join(t.TempDir(), "absent")); got != "" {
		t.Errorf("summaryOf() = %q, want empty", got)
	}
}

func nLines(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += "# filler\n"
	}
	return out
}
