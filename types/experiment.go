package types

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/dojoenv/dojo-rl/util"
)

// Experiment encapsulates a named policy/environment pair
type Experiment struct {
	Name        string
	policy      Policy
	environment Environment
	reward      RewardFunc
}

func NewExperiment(name string, policy Policy, environment Environment, reward RewardFunc) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
		reward:      reward,
	}
}

type ComparisonConfig struct {
	Runs         int
	Episodes     int
	Horizon      int
	RecordPath   string
	RecordTraces bool
}

type analysis struct {
	name       string
	analyzer   Analyzer
	comparator Comparator
}

// Comparison runs a set of experiments side by side and feeds their
// traces through the registered analyses.
type Comparison struct {
	config      *ComparisonConfig
	experiments []*Experiment
	analyses    []analysis
}

func NewComparison(config *ComparisonConfig) *Comparison {
	return &Comparison{
		config:      config,
		experiments: make([]*Experiment, 0),
		analyses:    make([]analysis, 0),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.experiments = append(c.experiments, e)
}

func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyses = append(c.analyses, analysis{name: name, analyzer: analyzer, comparator: comparator})
}

func (c *Comparison) recordTraces(run int, name string, traces []*Trace) error {
	tracesFolder := path.Join(c.config.RecordPath, "traces")
	if _, err := os.Stat(tracesFolder); err != nil {
		os.MkdirAll(tracesFolder, os.ModePerm)
	}
	tracesFile := path.Join(tracesFolder, name+"_"+strconv.Itoa(run)+".jsonl")
	for _, t := range traces {
		bs, err := json.Marshal(t.Record())
		if err != nil {
			return err
		}
		if err := util.AppendToFile(tracesFile, string(bs)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Comparison) Run(ctx context.Context) error {
	for run := 0; run < c.config.Runs; run++ {
		names := make([]string, len(c.experiments))
		datasets := make([][]DataSet, len(c.analyses))
		for i := range c.analyses {
			datasets[i] = make([]DataSet, len(c.experiments))
		}
		for i, e := range c.experiments {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			fmt.Printf("Run %d, experiment: %s\n", run, e.Name)
			e.policy.Reset()
			agent := NewAgent(&AgentConfig{
				Episodes:    c.config.Episodes,
				Horizon:     c.config.Horizon,
				Policy:      e.policy,
				Environment: e.environment,
				Reward:      e.reward,
			})
			if err := agent.Run(); err != nil {
				return fmt.Errorf("experiment %s: %w", e.Name, err)
			}
			traces := agent.Traces()
			if c.config.RecordTraces {
				if err := c.recordTraces(run, e.Name, traces); err != nil {
					return err
				}
			}
			names[i] = e.Name
			for j, a := range c.analyses {
				datasets[j][i] = a.analyzer(run, e.Name, traces)
			}
		}
		for i, a := range c.analyses {
			a.comparator(run, names, datasets[i])
		}
	}
	return nil
}
