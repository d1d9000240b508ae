package types

type Policy interface {
	// NextAction selects the action to take from the given state
	NextAction(int, State, []Action) (Action, bool)
	// Update consumes one transition: step, state, action, reward, next state, terminal
	Update(int, State, Action, float64, State, bool)
	// UpdateIteration is called once per episode with the full trace
	UpdateIteration(int, *Trace)
	Reset()
}
