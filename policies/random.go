package policies

import (
	"time"

	"github.com/dojoenv/dojo-rl/types"
	"golang.org/x/exp/rand"
)

type RandomPolicy struct {
	rand *rand.Rand
}

var _ types.Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (r *RandomPolicy) Reset() {
}

func (r *RandomPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	i := r.rand.Intn(len(actions))
	return actions[i], true
}

func (r *RandomPolicy) Update(int, types.State, types.Action, float64, types.State, bool) {}

func (r *RandomPolicy) UpdateIteration(int, *types.Trace) {}
