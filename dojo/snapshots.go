package dojo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// Snapshot is one emulator save-state file named <char1>_vs_<char2>.bin,
// an opaque blob used as the initial condition of an episode.
type Snapshot struct {
	Path  string
	Char1 string
	Char2 string
}

func (s Snapshot) Matchup() string {
	return s.Char1 + " vs " + s.Char2
}

func (s Snapshot) Read() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// SnapshotCatalog scans a directory of save-state blobs and hands them
// out round-robin, so training cycles through the captured matchups.
type SnapshotCatalog struct {
	snapshots []Snapshot
	next      int
}

func LoadSnapshotCatalog(dir string) (*SnapshotCatalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot dir: %w", err)
	}
	c := &SnapshotCatalog{snapshots: make([]Snapshot, 0)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".bin") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".bin")
		chars := strings.SplitN(base, "_vs_", 2)
		if len(chars) != 2 || chars[0] == "" || chars[1] == "" {
			continue
		}
		c.snapshots = append(c.snapshots, Snapshot{
			Path:  filepath.Join(dir, e.Name()),
			Char1: chars[0],
			Char2: chars[1],
		})
	}
	if len(c.snapshots) == 0 {
		return nil, fmt.Errorf("no *_vs_*.bin snapshots in %s", dir)
	}
	slices.SortFunc(c.snapshots, func(a, b Snapshot) int {
		return strings.Compare(a.Path, b.Path)
	})
	return c, nil
}

func (c *SnapshotCatalog) Len() int {
	return len(c.snapshots)
}

// Next returns the next snapshot in rotation.
func (c *SnapshotCatalog) Next() Snapshot {
	s := c.snapshots[c.next]
	c.next = (c.next + 1) % len(c.snapshots)
	return s
}
