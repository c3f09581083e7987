// SPDX-License-Identifier: AGPL-3.0-or-later
package projection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/northstar-hq/northstar/internal/roadmap"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "report.md")
	content := []byte("# Data Quality\n")

	if err := AtomicWrite(target, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[roadmap.ValidationCode]int{
		roadmap.MissingEstimate:  2,
		roadmap.MissingAreaLabel: 1,
		roadmap.NoProjectID:      3,
	}
	keys := SortedKeys(m)
	if len(keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(keys))
	}
	if keys[0] != roadmap.MissingAreaLabel || keys[1] != roadmap.MissingEstimate || keys[2] != roadmap.NoProjectID {
		t.Errorf("unexpected order: %v", keys)
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable([]string{"Code", "Count"}, [][]string{
		{"missingEstimate", "2"},
		{"noProjectId", "1"},
	})
	want := "| Code | Count |\n| --- | --- |\n| missingEstimate | 2 |\n| noProjectId | 1 |\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
