package types

// Trace of an episode as tuples (state, action, reward, nextState, terminal)
type Trace struct {
	states     []State
	actions    []Action
	rewards    []float64
	nextStates []State
	terminals  []bool
}

func NewTrace() *Trace {
	return &Trace{
		states:     make([]State, 0),
		actions:    make([]Action, 0),
		rewards:    make([]float64, 0),
		nextStates: make([]State, 0),
		terminals:  make([]bool, 0),
	}
}

func (t *Trace) Append(state State, action Action, reward float64, nextState State, terminal bool) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextStates = append(t.nextStates, nextState)
	t.terminals = append(t.terminals, terminal)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (State, Action, float64, State, bool, bool) {
	if i >= len(t.states) {
		return nil, nil, 0, nil, false, false
	}
	return t.states[i], t.actions[i], t.rewards[i], t.nextStates[i], t.terminals[i], true
}

func (t *Trace) Last() (State, Action, float64, State, bool, bool) {
	if len(t.states) < 1 {
		return nil, nil, 0, nil, false, false
	}
	return t.Get(len(t.states) - 1)
}

// TotalReward accumulated over the whole episode
func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, r := range t.rewards {
		total += r
	}
	return total
}

// TraceRecord is the serializable form of a trace, states and actions
// reduced to their hashes.
type TraceRecord struct {
	States     []string  `json:"states"`
	Actions    []string  `json:"actions"`
	Rewards    []float64 `json:"rewards"`
	NextStates []string  `json:"next_states"`
	Terminals  []bool    `json:"terminals"`
}

func (t *Trace) Record() *TraceRecord {
	r := &TraceRecord{
		States:     make([]string, t.Len()),
		Actions:    make([]string, t.Len()),
		Rewards:    make([]float64, t.Len()),
		NextStates: make([]string, t.Len()),
		Terminals:  make([]bool, t.Len()),
	}
	for i := 0; i < t.Len(); i++ {
		r.States[i] = t.states[i].Hash()
		r.Actions[i] = t.actions[i].Hash()
		r.Rewards[i] = t.rewards[i]
		r.NextStates[i] = t.nextStates[i].Hash()
		r.Terminals[i] = t.terminals[i]
	}
	return r
}
