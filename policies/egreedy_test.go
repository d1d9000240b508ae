package policies

import (
	"testing"

	"github.com/dojoenv/dojo-rl/types"
)

type testState struct {
	id      string
	actions []types.Action
}

func (s *testState) Hash() string            { return s.id }
func (s *testState) Actions() []types.Action { return s.actions }

type testAction struct {
	id string
}

func (a *testAction) Hash() string { return a.id }

func testActions(ids ...string) []types.Action {
	actions := make([]types.Action, len(ids))
	for i, id := range ids {
		actions[i] = &testAction{id}
	}
	return actions
}

func TestQLearningUpdate(t *testing.T) {
	// Q(s,a)=0, alpha=0.5, gamma=0.9, r=1, max Q(s')=0 => Q(s,a)=0.5
	p := NewEpsilonGreedy(0.5, 0.9, 0)
	actions := testActions("a0", "a1")
	s := &testState{"s", actions}
	next := &testState{"s'", actions}

	p.Update(0, s, actions[0], 1.0, next, false)
	if got := p.QTable().Get("s", "a0", 0); got != 0.5 {
		t.Errorf("Q(s,a0) = %v, want 0.5", got)
	}
}

func TestQLearningUpdateBootstraps(t *testing.T) {
	p := NewEpsilonGreedy(0.5, 0.9, 0)
	actions := testActions("a0", "a1")
	s := &testState{"s", actions}
	next := &testState{"s'", actions}

	p.QTable().Set("s'", "a1", 2.0)
	p.Update(0, s, actions[0], 1.0, next, false)
	// 0 + 0.5*(1 + 0.9*2 - 0) = 1.4
	if got := p.QTable().Get("s", "a0", 0); got != 1.4 {
		t.Errorf("Q(s,a0) = %v, want 1.4", got)
	}
}

// A terminal next state contributes no bootstrap term, whatever its
// recorded values.
func TestQLearningTerminalNoBootstrap(t *testing.T) {
	p := NewEpsilonGreedy(0.5, 0.9, 0)
	actions := testActions("a0", "a1")
	s := &testState{"s", actions}
	terminal := &testState{"terminal", actions}

	p.QTable().Set("terminal", "a1", 100.0)
	p.Update(0, s, actions[0], 1.0, terminal, true)
	if got := p.QTable().Get("s", "a0", 0); got != 0.5 {
		t.Errorf("Q(s,a0) = %v, want 0.5 (no bootstrap past terminal)", got)
	}
}

func TestGreedySelectionDeterministic(t *testing.T) {
	// epsilon 0: pure exploitation
	p := NewEpsilonGreedy(0.5, 0.9, 0)
	actions := testActions("a0", "a1", "a2")
	s := &testState{"s", actions}
	p.QTable().Set("s", "a1", 1.0)

	for i := 0; i < 20; i++ {
		a, ok := p.NextAction(0, s, actions)
		if !ok || a.Hash() != "a1" {
			t.Fatalf("call %d: expected a1, got %v", i, a)
		}
	}
}

func TestGreedyTieBreakLowestIndex(t *testing.T) {
	p := NewEpsilonGreedy(0.5, 0.9, 0)
	actions := testActions("a0", "a1", "a2")
	s := &testState{"s", actions}
	p.QTable().Set("s", "a0", 0.7)
	p.QTable().Set("s", "a2", 0.7)

	for i := 0; i < 20; i++ {
		a, ok := p.NextAction(0, s, actions)
		if !ok || a.Hash() != "a0" {
			t.Fatalf("call %d: tie must resolve to a0, got %v", i, a)
		}
	}
}

func TestSetHyperparams(t *testing.T) {
	p := NewEpsilonGreedy(0.5, 0.9, 0.1)
	p.SetHyperparams(0.2, 0.8, 0.05)
	alpha, gamma, epsilon := p.Hyperparams()
	if alpha != 0.2 || gamma != 0.8 || epsilon != 0.05 {
		t.Errorf("hyperparams not applied: %v %v %v", alpha, gamma, epsilon)
	}
}
