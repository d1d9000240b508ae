// Package engine runs the interactive training loop: a single
// goroutine owning the environment, the policy and the Q-table,
// driven one tick at a time. Control requests from the outside are
// sampled only at tick boundaries, so a pause or stop never interrupts
// a transition mid-update.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dojoenv/dojo-rl/config"
	"github.com/dojoenv/dojo-rl/policies"
	"github.com/dojoenv/dojo-rl/types"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseStopped:
		return "stopped"
	}
	return "unknown"
}

var (
	ErrStopped  = errors.New("engine is stopped")
	ErrBusyLoop = errors.New("control queue full")
	// ErrLoopRunning guards checkpoint IO: saving or loading a table
	// that a running loop is updating is disallowed.
	ErrLoopRunning = errors.New("training loop is running; pause or stop it first")
)

// Telemetry is one per-tick event for live plotting.
type Telemetry struct {
	Episode      int     `json:"episode"`
	Tick         int     `json:"tick"`
	UniqueStates int     `json:"unique_states"`
	Action       string  `json:"action"`
	QValue       float64 `json:"q_value"`
	Reward       float64 `json:"reward"`
	Terminal     bool    `json:"terminal"`
}

type Config struct {
	// Horizon caps the ticks of one episode; 0 means unbounded.
	Horizon int
	// MaxEpisodes stops the engine after that many episodes; 0 means
	// run until stopped externally.
	MaxEpisodes int
	Hyperparams config.Hyperparams
	// MetricsPath enables the per-episode CSV series when non-empty.
	MetricsPath string
}

type command int

const (
	cmdStart command = iota
	cmdPause
	cmdStop
	cmdStep
	cmdHyper
)

type request struct {
	cmd   command
	hyper config.Hyperparams
}

type Engine struct {
	cfg    Config
	env    types.Environment
	policy *policies.EpsilonGreedy
	reward types.RewardFunc

	requests  chan request
	telemetry chan Telemetry

	mu           sync.Mutex
	phase        Phase
	episode      int
	tick         int
	uniqueStates int
	runErr       error

	// tickMu serializes whole ticks with checkpoint IO and policy
	// swaps, so a table is never captured or replaced mid-transition
	tickMu sync.Mutex

	// loop-owned, never touched while the loop is blocked on requests
	curState    types.State
	curTrace    *types.Trace
	episodeTick int
	traces      []*types.Trace
	metrics     *Metrics
}

func New(cfg Config, env types.Environment, reward types.RewardFunc) (*Engine, error) {
	if err := cfg.Hyperparams.Validate(); err != nil {
		return nil, err
	}
	h := cfg.Hyperparams
	e := &Engine{
		cfg:       cfg,
		env:       env,
		policy:    policies.NewEpsilonGreedy(h.Alpha, h.Gamma, h.Epsilon),
		reward:    reward,
		requests:  make(chan request, 16),
		telemetry: make(chan Telemetry, 64),
		phase:     PhaseIdle,
		traces:    make([]*types.Trace, 0),
	}
	if cfg.MetricsPath != "" {
		m, err := NewMetrics(cfg.MetricsPath)
		if err != nil {
			return nil, err
		}
		e.metrics = m
	}
	return e, nil
}

// Run executes the loop until stopped. It blocks; callers run it in
// its own goroutine and use the control methods.
func (e *Engine) Run() error {
	defer func() {
		if e.metrics != nil {
			e.metrics.Close()
		}
		close(e.telemetry)
	}()
	for {
		phase := e.Phase()
		if phase == PhaseStopped {
			return e.Err()
		}

		stepOnce := false
		if phase == PhaseRunning {
			// sample at most one control request per tick boundary
			select {
			case req := <-e.requests:
				stepOnce = e.handle(req)
			default:
			}
		} else {
			// idle or paused: nothing to do until a request arrives
			req := <-e.requests
			stepOnce = e.handle(req)
		}

		phase = e.Phase()
		if phase == PhaseRunning || stepOnce {
			if err := e.tickOnce(); err != nil {
				e.fail(err)
				return e.Err()
			}
			if e.cfg.MaxEpisodes > 0 && e.Episode() >= e.cfg.MaxEpisodes {
				e.setPhase(PhaseStopped)
			}
		}
	}
}

// handle applies one control request; reports whether a single tick
// was requested.
func (e *Engine) handle(req request) bool {
	switch req.cmd {
	case cmdStart:
		if p := e.Phase(); p == PhaseIdle || p == PhasePaused {
			e.setPhase(PhaseRunning)
		}
	case cmdPause:
		if e.Phase() == PhaseRunning {
			e.setPhase(PhasePaused)
		}
	case cmdStop:
		e.setPhase(PhaseStopped)
	case cmdStep:
		return e.Phase() != PhaseStopped
	case cmdHyper:
		// validated before it was enqueued
		e.tickMu.Lock()
		e.policy.SetHyperparams(req.hyper.Alpha, req.hyper.Gamma, req.hyper.Epsilon)
		e.tickMu.Unlock()
	}
	return false
}

// tickOnce runs one full transition: observe, act, observe, update.
// Any error is fatal to the loop; no partial update is left behind.
func (e *Engine) tickOnce() error {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	if e.curState == nil {
		state, err := e.env.Reset()
		if err != nil {
			return fmt.Errorf("episode reset: %w", err)
		}
		e.curState = state
		e.curTrace = types.NewTrace()
		e.episodeTick = 0
	}

	actions := e.curState.Actions()
	action, ok := e.policy.NextAction(e.episodeTick, e.curState, actions)
	if !ok {
		return fmt.Errorf("policy produced no action")
	}
	next, err := e.env.Step(action)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	reward, terminal := e.reward(e.curState, next)
	e.policy.Update(e.episodeTick, e.curState, action, reward, next, terminal)
	e.curTrace.Append(e.curState, action, reward, next, terminal)

	qValue := e.policy.QTable().Get(e.curState.Hash(), action.Hash(), 0)
	states := e.policy.QTable().Size()
	e.mu.Lock()
	e.tick++
	e.uniqueStates = states
	episode := e.episode
	tick := e.tick
	e.mu.Unlock()
	e.episodeTick++

	e.emit(Telemetry{
		Episode:      episode,
		Tick:         tick,
		UniqueStates: states,
		Action:       action.Hash(),
		QValue:       qValue,
		Reward:       reward,
		Terminal:     terminal,
	})

	episodeOver := terminal || (e.cfg.Horizon > 0 && e.episodeTick >= e.cfg.Horizon)
	if episodeOver {
		e.policy.UpdateIteration(episode, e.curTrace)
		e.traces = append(e.traces, e.curTrace)
		if e.metrics != nil {
			q := e.policy.QTable()
			if err := e.metrics.WriteEpisode(episode, e.curTrace, q.Size(), q.MaxQ(0)); err != nil {
				return fmt.Errorf("writing metrics: %w", err)
			}
		}
		e.mu.Lock()
		e.episode++
		e.mu.Unlock()
		// terminal states are never carried into the next episode
		e.curState = nil
	} else {
		e.curState = next
	}
	return nil
}

func (e *Engine) emit(t Telemetry) {
	select {
	case e.telemetry <- t:
	default:
		// a slow consumer drops events, it never stalls training
	}
}

func (e *Engine) send(req request) error {
	if e.Phase() == PhaseStopped {
		return ErrStopped
	}
	select {
	case e.requests <- req:
		return nil
	default:
		return ErrBusyLoop
	}
}

// Start begins or resumes training at the next tick boundary.
func (e *Engine) Start() error { return e.send(request{cmd: cmdStart}) }

// Pause suspends the loop after the current transition completes.
func (e *Engine) Pause() error { return e.send(request{cmd: cmdPause}) }

// Stop ends the session. The learned table survives, see Checkpoint.
func (e *Engine) Stop() error { return e.send(request{cmd: cmdStop}) }

// StepOnce executes exactly one tick while idle or paused.
func (e *Engine) StepOnce() error { return e.send(request{cmd: cmdStep}) }

// UpdateHyperparams applies new learning parameters at the next tick
// boundary. Out-of-range values are rejected here and the previous
// values stay in effect.
func (e *Engine) UpdateHyperparams(h config.Hyperparams) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return e.send(request{cmd: cmdHyper, hyper: h})
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.runErr = err
	e.phase = PhaseStopped
	e.mu.Unlock()
}

func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runErr
}

func (e *Engine) Episode() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.episode
}

func (e *Engine) Tick() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// Telemetry is the per-tick event stream. Closed when the loop exits.
func (e *Engine) Telemetry() <-chan Telemetry {
	return e.telemetry
}

// Traces of completed episodes. Read it only after the loop stopped.
func (e *Engine) Traces() []*types.Trace {
	return e.traces
}

// SaveCheckpoint writes the Q-table and current hyperparameters.
// Refused while the loop is running; holding tickMu excludes any
// in-flight tick, so the table is never captured mid-update.
func (e *Engine) SaveCheckpoint(path string) error {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	if e.Phase() == PhaseRunning {
		return ErrLoopRunning
	}
	alpha, gamma, epsilon := e.policy.Hyperparams()
	return policies.NewCheckpoint(e.policy.QTable(), alpha, gamma, epsilon).Save(path)
}

// LoadCheckpoint replaces the policy's table and hyperparameters from
// a checkpoint file, all or nothing. The phase is re-checked with
// tickMu held; a Start racing with the load either sees the old
// policy for its whole tick or the new one, never a torn swap.
func (e *Engine) LoadCheckpoint(path string) error {
	if e.Phase() == PhaseRunning {
		return ErrLoopRunning
	}
	c, err := policies.LoadCheckpoint(path)
	if err != nil {
		return err
	}
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	if e.Phase() == PhaseRunning {
		return ErrLoopRunning
	}
	e.policy = policies.NewEpsilonGreedyWithTable(c.Table(), c.Alpha, c.Gamma, c.Epsilon)
	e.mu.Lock()
	e.uniqueStates = e.policy.QTable().Size()
	e.mu.Unlock()
	return nil
}

// UniqueStates seen so far, the headline convergence number.
func (e *Engine) UniqueStates() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.uniqueStates
}
