package policies

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dojoenv/dojo-rl/util"
)

// Checkpoint is the serialized form of an agent: the full Q-table plus
// the hyperparameters in effect when it was saved. Loading a
// checkpoint reproduces identical lookup behavior.
type Checkpoint struct {
	SavedAt time.Time         `json:"saved_at"`
	Alpha   float64           `json:"alpha"`
	Gamma   float64           `json:"gamma"`
	Epsilon float64           `json:"epsilon"`
	States  []StateCheckpoint `json:"states"`
}

type StateCheckpoint struct {
	State   string        `json:"state"`
	Actions []ActionValue `json:"actions"`
}

type ActionValue struct {
	Action string  `json:"action"`
	Value  float64 `json:"value"`
}

// NewCheckpoint snapshots the table with state and action keys in
// sorted order, so two checkpoints of the same table are identical
// byte for byte.
func NewCheckpoint(q *QTable, alpha, gamma, epsilon float64) *Checkpoint {
	c := &Checkpoint{
		SavedAt: time.Now().UTC(),
		Alpha:   alpha,
		Gamma:   gamma,
		Epsilon: epsilon,
		States:  make([]StateCheckpoint, 0, q.Size()),
	}
	for _, state := range q.States() {
		sc := StateCheckpoint{State: state}
		for _, action := range q.Actions(state) {
			sc.Actions = append(sc.Actions, ActionValue{
				Action: action,
				Value:  q.Get(state, action, 0),
			})
		}
		c.States = append(c.States, sc)
	}
	return c
}

// Table rebuilds the Q-table from the checkpoint.
func (c *Checkpoint) Table() *QTable {
	q := NewQTable()
	for _, sc := range c.States {
		for _, av := range sc.Actions {
			q.Set(sc.State, av.Action, av.Value)
		}
	}
	return q
}

// Save writes the checkpoint atomically. A crash mid-save leaves any
// previous checkpoint untouched.
func (c *Checkpoint) Save(path string) error {
	bs, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling checkpoint: %w", err)
	}
	if err := util.WriteFileAtomic(path, bs); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint file. A corrupt or unreadable file
// returns an error and no partial state.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}
	c := &Checkpoint{}
	if err := json.Unmarshal(bs, c); err != nil {
		return nil, fmt.Errorf("parsing checkpoint: %w", err)
	}
	return c, nil
}
