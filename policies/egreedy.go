package policies

import (
	"time"

	"github.com/dojoenv/dojo-rl/types"
	"golang.org/x/exp/rand"
)

// EpsilonGreedy is the standard tabular Q-learning policy. With
// probability epsilon it explores uniformly, otherwise it exploits the
// current value estimates with a deterministic tie-break.
type EpsilonGreedy struct {
	qTable   *QTable
	alpha    float64
	discount float64
	epsilon  float64
	rand     *rand.Rand
}

var _ types.Policy = &EpsilonGreedy{}

func NewEpsilonGreedy(alpha, discount, epsilon float64) *EpsilonGreedy {
	return &EpsilonGreedy{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// NewEpsilonGreedyWithTable restores a policy around an existing table,
// used when resuming from a checkpoint.
func NewEpsilonGreedyWithTable(qTable *QTable, alpha, discount, epsilon float64) *EpsilonGreedy {
	p := NewEpsilonGreedy(alpha, discount, epsilon)
	p.qTable = qTable
	return p
}

func (e *EpsilonGreedy) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedy) QTable() *QTable {
	return e.qTable
}

// SetHyperparams swaps the learning parameters. Range validation
// happens at the configuration boundary, before this is called.
func (e *EpsilonGreedy) SetHyperparams(alpha, discount, epsilon float64) {
	e.alpha = alpha
	e.discount = discount
	e.epsilon = epsilon
}

func (e *EpsilonGreedy) Hyperparams() (alpha, discount, epsilon float64) {
	return e.alpha, e.discount, e.epsilon
}

func (e *EpsilonGreedy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	if e.rand.Float64() < e.epsilon {
		i := e.rand.Intn(len(actions))
		return actions[i], true
	}

	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	bestAction, _ := e.qTable.BestAmong(state.Hash(), availableActions, 0)
	if bestAction == "" {
		return nil, false
	}
	return actionsMap[bestAction], true
}

func (e *EpsilonGreedy) Update(step int, state types.State, action types.Action, reward float64, nextState types.State, terminal bool) {
	stateHash := state.Hash()
	actionHash := action.Hash()

	// terminal next states are never bootstrapped from
	nextStateVal := 0.0
	if !terminal {
		nextStateVal = e.qTable.MaxValue(nextState.Hash(), 0)
	}
	curVal := e.qTable.Get(stateHash, actionHash, 0)

	newVal := curVal + e.alpha*(reward+e.discount*nextStateVal-curVal)
	e.qTable.Set(stateHash, actionHash, newVal)
}

func (e *EpsilonGreedy) UpdateIteration(iteration int, trace *types.Trace) {
}
