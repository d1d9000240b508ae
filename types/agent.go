package types

import "fmt"

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
	Reward      RewardFunc
}

// RL Agent configured with the corresponding
// policy and environment. This is the headless batch runner used by
// comparisons; the interactive loop lives in the engine package.
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces      []*Trace
	policy      Policy
	environment Environment
	reward      RewardFunc
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		traces:      make([]*Trace, config.Episodes),
		policy:      config.Policy,
		environment: config.Environment,
		reward:      config.Reward,
	}
}

// Run the agent for the specified number of episodes and horizon
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.runEpisode(i)
		if err != nil {
			return fmt.Errorf("episode %d: %w", i, err)
		}
		a.traces[i] = trace
	}
	return nil
}

func (a *Agent) Traces() []*Trace {
	return a.traces
}

// run a single episode and return the resulting trace
func (a *Agent) runEpisode(episode int) (*Trace, error) {
	state, err := a.environment.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()

	for i := 0; i < a.config.Horizon; i++ {
		actions := state.Actions()
		if len(actions) == 0 {
			break
		}
		nextAction, ok := a.policy.NextAction(i, state, actions)
		if !ok {
			break
		}
		nextState, err := a.environment.Step(nextAction)
		if err != nil {
			return nil, err
		}
		reward, terminal := a.reward(state, nextState)
		a.policy.Update(i, state, nextAction, reward, nextState, terminal)

		trace.Append(state, nextAction, reward, nextState, terminal)
		if terminal {
			break
		}
		state = nextState
	}
	a.policy.UpdateIteration(episode, trace)

	return trace, nil
}
