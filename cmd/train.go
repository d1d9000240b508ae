package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/dojoenv/dojo-rl/config"
	"github.com/dojoenv/dojo-rl/dojo"
	"github.com/dojoenv/dojo-rl/emulator"
	"github.com/dojoenv/dojo-rl/engine"
)

// buildEnv wires the emulator and vision pipeline into an environment.
// The built-in machine is the synthetic fighter; a real PSX core
// attaches through the same three-method contract.
func buildEnv(cfg config.Config, snapshotsDir string) (*dojo.FightEnv, error) {
	env, err := dojo.NewFightEnv(emulator.NewSynthetic(), cfg.Vision)
	if err != nil {
		return nil, err
	}
	if snapshotsDir != "" {
		catalog, err := dojo.LoadSnapshotCatalog(snapshotsDir)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Loaded %d snapshots\n", catalog.Len())
		env = env.WithSnapshots(catalog)
	}
	return env, nil
}

func Train(cfg config.Config, snapshotsDir, checkpointOut, checkpointIn string) error {
	env, err := buildEnv(cfg, snapshotsDir)
	if err != nil {
		return err
	}
	reward := dojo.NewRewardExtractor(cfg.Agent.RewardClip)

	eng, err := engine.New(engine.Config{
		Horizon:     cfg.Agent.Horizon,
		MaxEpisodes: cfg.Agent.Episodes,
		Hyperparams: cfg.Agent.Hyperparams,
		MetricsPath: path.Join(saveFile, "training.csv"),
	}, env, reward.Func())
	if err != nil {
		return err
	}
	if checkpointIn != "" {
		if err := eng.LoadCheckpoint(checkpointIn); err != nil {
			return err
		}
		fmt.Printf("Resumed from %s with %d states\n", checkpointIn, eng.UniqueStates())
	}

	done := make(chan error, 1)
	go func() {
		done <- eng.Run()
	}()
	go func() {
		for t := range eng.Telemetry() {
			if t.Tick%100 == 0 || t.Terminal {
				fmt.Printf("\rEpisode: %d/%d, Tick: %d, States: %d, Reward: %+.3f",
					t.Episode+1, cfg.Agent.Episodes, t.Tick, t.UniqueStates, t.Reward)
			}
		}
	}()
	if err := eng.Start(); err != nil {
		return err
	}
	if err := <-done; err != nil {
		return err
	}
	fmt.Println("")
	fmt.Printf("Training finished: %d episodes, %d unique states\n", eng.Episode(), eng.UniqueStates())

	if checkpointOut != "" {
		if err := eng.SaveCheckpoint(checkpointOut); err != nil {
			return err
		}
		fmt.Printf("Checkpoint saved to %s\n", checkpointOut)
	}
	return nil
}

func TrainCommand() *cobra.Command {
	var snapshotsDir string
	var checkpointOut string
	var checkpointIn string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run the training loop headless",
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
			return Train(cfg, snapshotsDir, checkpointOut, checkpointIn)
		},
	}
	cmd.PersistentFlags().StringVar(&snapshotsDir, "snapshots", "", "Directory of <char1>_vs_<char2>.bin save states")
	cmd.PersistentFlags().StringVar(&checkpointOut, "checkpoint", "agent.json", "Path to write the agent checkpoint")
	cmd.PersistentFlags().StringVar(&checkpointIn, "load", "", "Checkpoint to resume from")
	return cmd
}
