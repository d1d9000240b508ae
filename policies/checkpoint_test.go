package policies

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckpointRoundTrip(t *testing.T) {
	q := NewQTable()
	q.Set("s1", "NoOp", 0.5)
	q.Set("s1", "Left", -0.25)
	q.Set("s2", "Right", 1.75)

	path := filepath.Join(t.TempDir(), "agent.json")
	if err := NewCheckpoint(q, 0.5, 0.9, 0.1).Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	c, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Alpha != 0.5 || c.Gamma != 0.9 || c.Epsilon != 0.1 {
		t.Errorf("hyperparameters did not round-trip: %+v", c)
	}

	restored := c.Table()
	for _, state := range q.States() {
		for _, action := range q.Actions(state) {
			want := q.Get(state, action, 0)
			if got := restored.Get(state, action, 0); got != want {
				t.Errorf("Q(%s,%s) = %v, want %v", state, action, got, want)
			}
		}
	}
	// best-action behavior must be identical too
	actions := []string{"NoOp", "Left"}
	wantBest, wantVal := q.BestAmong("s1", actions, 0)
	gotBest, gotVal := restored.BestAmong("s1", actions, 0)
	if wantBest != gotBest || wantVal != gotVal {
		t.Errorf("best action differs after round-trip: (%s,%v) vs (%s,%v)", wantBest, wantVal, gotBest, gotVal)
	}
}

func TestCheckpointDeterministicBytes(t *testing.T) {
	q := NewQTable()
	q.Set("b", "x", 1)
	q.Set("a", "y", 2)
	q.Set("a", "x", 3)

	c1 := NewCheckpoint(q, 0.5, 0.9, 0.1)
	c2 := NewCheckpoint(q, 0.5, 0.9, 0.1)
	if len(c1.States) != len(c2.States) {
		t.Fatalf("state counts differ")
	}
	for i := range c1.States {
		if c1.States[i].State != c2.States[i].State {
			t.Errorf("state order differs at %d: %s vs %s", i, c1.States[i].State, c2.States[i].State)
		}
	}
	if c1.States[0].State != "a" || c1.States[1].State != "b" {
		t.Errorf("states not sorted: %v, %v", c1.States[0].State, c1.States[1].State)
	}
}

func TestLoadCheckpointCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCheckpoint(path); err == nil {
		t.Errorf("corrupt checkpoint must return an error")
	}
}

func TestLoadCheckpointMissing(t *testing.T) {
	if _, err := LoadCheckpoint(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Errorf("missing checkpoint must return an error")
	}
}
