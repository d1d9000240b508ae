package policies

import (
	"math"

	"github.com/dojoenv/dojo-rl/types"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SoftMax samples actions with probability proportional to the
// exponential of their value estimates.
type SoftMax struct {
	qTable   *QTable
	alpha    float64
	discount float64
}

var _ types.Policy = &SoftMax{}

func NewSoftMax(alpha, discount float64) *SoftMax {
	return &SoftMax{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
	}
}

func (s *SoftMax) Reset() {
	s.qTable = NewQTable()
}

func (s *SoftMax) QTable() *QTable {
	return s.qTable
}

func (s *SoftMax) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	stateHash := state.Hash()

	sum := float64(0)
	weights := make([]float64, len(actions))
	vals := make([]float64, len(actions))

	for i, action := range actions {
		val := s.qTable.Get(stateHash, action.Hash(), 0)
		exp := math.Exp(val)
		vals[i] = exp
		sum += exp
	}

	for i, v := range vals {
		weights[i] = v / sum
	}
	i, ok := sampleuv.NewWeighted(weights, nil).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}

func (s *SoftMax) Update(step int, state types.State, action types.Action, reward float64, nextState types.State, terminal bool) {
	stateHash := state.Hash()
	actionHash := action.Hash()

	nextStateVal := 0.0
	if !terminal {
		nextStateVal = s.qTable.MaxValue(nextState.Hash(), 0)
	}
	curVal := s.qTable.Get(stateHash, actionHash, 0)
	s.qTable.Set(stateHash, actionHash, curVal+s.alpha*(reward+s.discount*nextStateVal-curVal))
}

func (s *SoftMax) UpdateIteration(iteration int, trace *types.Trace) {
}
