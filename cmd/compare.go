package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dojoenv/dojo-rl/config"
	"github.com/dojoenv/dojo-rl/dojo"
	"github.com/dojoenv/dojo-rl/policies"
	"github.com/dojoenv/dojo-rl/types"
)

// Compare runs the exploration policies side by side over the same
// environment setup and plots state coverage and reward curves.
func Compare(cfg config.Config, snapshotsDir string, ctx context.Context) error {
	h := cfg.Agent.Hyperparams
	reward := dojo.NewRewardExtractor(cfg.Agent.RewardClip)

	c := types.NewComparison(&types.ComparisonConfig{
		Runs:         runs,
		Episodes:     cfg.Agent.Episodes,
		Horizon:      cfg.Agent.Horizon,
		RecordPath:   saveFile,
		RecordTraces: true,
	})
	c.AddAnalysis("Coverage", types.CoverageAnalyzer(), types.CoveragePlotter(saveFile))
	c.AddAnalysis("Reward", types.RewardAnalyzer(), types.RewardPlotter(saveFile))

	experiments := []struct {
		name   string
		policy types.Policy
	}{
		{"Random", policies.NewRandomPolicy()},
		{"EpsilonGreedy", policies.NewEpsilonGreedy(h.Alpha, h.Gamma, h.Epsilon)},
		{"SoftMax", policies.NewSoftMax(h.Alpha, h.Gamma)},
	}
	for _, e := range experiments {
		env, err := buildEnv(cfg, snapshotsDir)
		if err != nil {
			return err
		}
		c.AddExperiment(types.NewExperiment(e.name, e.policy, env, reward.Func()))
	}

	return c.Run(ctx)
}

func CompareCommand() *cobra.Command {
	var snapshotsDir string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare exploration policies and plot the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg.Agent.Episodes = episodes
			cfg.Agent.Horizon = horizon
			if snapshotsDir == "" {
				snapshotsDir = cfg.Snapshots
			}
			return Compare(cfg, snapshotsDir, context.Background())
		},
	}
	cmd.PersistentFlags().StringVar(&snapshotsDir, "snapshots", "", "Directory of <char1>_vs_<char2>.bin save states")
	return cmd
}
