package types

// Environment that the learning loop drives. Implementations own the
// underlying system (an emulator, a simulator) and turn its raw
// observations into States.
type Environment interface {
	// Reset called at the start of each episode
	Reset() (State, error)
	// Step applies the action and returns the resulting state
	Step(Action) (State, error)
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
}

// An Action that RL policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// RewardFunc derives the scalar reward for a transition and reports
// whether the next state is terminal.
type RewardFunc func(prev State, next State) (float64, bool)
