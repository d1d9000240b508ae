package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dojoenv/dojo-rl/config"
	"github.com/dojoenv/dojo-rl/dojo"
	"github.com/dojoenv/dojo-rl/engine"
	"github.com/dojoenv/dojo-rl/server"
)

// Serve starts the engine idle and exposes the control and telemetry
// surfaces over HTTP; the GUI collaborator drives it from there.
func Serve(cfg config.Config, snapshotsDir string) error {
	env, err := buildEnv(cfg, snapshotsDir)
	if err != nil {
		return err
	}
	reward := dojo.NewRewardExtractor(cfg.Agent.RewardClip)

	eng, err := engine.New(engine.Config{
		Horizon:     cfg.Agent.Horizon,
		Hyperparams: cfg.Agent.Hyperparams,
	}, env, reward.Func())
	if err != nil {
		return err
	}

	var pub *server.Publisher
	if cfg.Server.RedisAddr != "" {
		pub, err = server.NewPublisher(cfg.Server.RedisAddr, cfg.Server.RedisChannel)
		if err != nil {
			return err
		}
		defer pub.Close()
		fmt.Printf("Publishing telemetry to redis channel %s\n", cfg.Server.RedisChannel)
	}

	go eng.Run()
	fmt.Printf("Engine idle, control surface on %s\n", cfg.Server.Addr)
	return server.New(cfg.Server.Addr, eng, pub).Start()
}

func ServeCommand() *cobra.Command {
	var snapshotsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the engine's control and telemetry surfaces over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg.Agent.Horizon = horizon
			if snapshotsDir == "" {
				snapshotsDir = cfg.Snapshots
			}
			return Serve(cfg, snapshotsDir)
		},
	}
	cmd.PersistentFlags().StringVar(&snapshotsDir, "snapshots", "", "Directory of <char1>_vs_<char2>.bin save states")
	return cmd
}
