package dojo

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("blob"), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoadSnapshotCatalog(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "jin_vs_paul.bin")
	writeSnapshot(t, dir, "anna_vs_law.bin")
	writeSnapshot(t, dir, "readme.txt")
	writeSnapshot(t, dir, "broken.bin")
	writeSnapshot(t, dir, "_vs_paul.bin")

	c, err := LoadSnapshotCatalog(dir)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("catalog size = %d, want 2", c.Len())
	}
	first := c.Next()
	if first.Char1 != "anna" || first.Char2 != "law" {
		t.Errorf("first snapshot = %s, want anna vs law", first.Matchup())
	}
}

func TestSnapshotCatalogRoundRobin(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "a_vs_b.bin")
	writeSnapshot(t, dir, "c_vs_d.bin")

	c, err := LoadSnapshotCatalog(dir)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	seen := []string{c.Next().Matchup(), c.Next().Matchup(), c.Next().Matchup()}
	if seen[0] != "a vs b" || seen[1] != "c vs d" || seen[2] != "a vs b" {
		t.Errorf("rotation order = %v", seen)
	}
}

func TestSnapshotCatalogEmptyDir(t *testing.T) {
	if _, err := LoadSnapshotCatalog(t.TempDir()); err == nil {
		t.Errorf("expected error for directory without snapshots")
	}
}

func TestSnapshotRead(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "x_vs_y.bin")
	c, err := LoadSnapshotCatalog(dir)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	data, err := c.Next().Read()
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != "blob" {
		t.Errorf("snapshot contents = %q", data)
	}
}
