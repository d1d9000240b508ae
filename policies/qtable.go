package policies

import (
	"golang.org/x/exp/slices"
)

// QTable maps (state hash, action hash) to a value estimate. Entries
// are created on first lookup and never deleted; the table only grows
// as new states are discovered.
type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// MaxValue returns the maximum value over the known actions of the
// state, or def if the state has no entries yet.
func (q *QTable) MaxValue(state string, def float64) float64 {
	actions, ok := q.table[state]
	if !ok || len(actions) == 0 {
		return def
	}
	first := true
	maxVal := def
	for _, val := range actions {
		if first || val > maxVal {
			maxVal = val
			first = false
		}
	}
	return maxVal
}

// BestAmong returns the action with the maximum value among the given
// actions, entries defaulting to def. Ties are broken by the lowest
// index in the actions slice, so repeated calls always return the
// same action.
func (q *QTable) BestAmong(state string, actions []string, def float64) (string, float64) {
	if len(actions) == 0 {
		return "", def
	}
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	bestAction := ""
	bestVal := 0.0
	for i, a := range actions {
		if _, ok := q.table[state][a]; !ok {
			q.table[state][a] = def
		}
		val := q.table[state][a]
		if i == 0 || val > bestVal {
			bestAction = a
			bestVal = val
		}
	}
	return bestAction, bestVal
}

// States returns the known state hashes in sorted order.
func (q *QTable) States() []string {
	states := make([]string, 0, len(q.table))
	for s := range q.table {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// Actions returns the known action hashes of the state in sorted order.
func (q *QTable) Actions(state string) []string {
	actions := make([]string, 0)
	for a := range q.table[state] {
		actions = append(actions, a)
	}
	slices.Sort(actions)
	return actions
}

// Size is the number of distinct states in the table.
func (q *QTable) Size() int {
	return len(q.table)
}

// MaxQ returns the largest value anywhere in the table, or def when
// the table is empty. Tracked per episode as a convergence signal.
func (q *QTable) MaxQ(def float64) float64 {
	maxVal := def
	first := true
	for _, actions := range q.table {
		for _, val := range actions {
			if first || val > maxVal {
				maxVal = val
				first = false
			}
		}
	}
	return maxVal
}
