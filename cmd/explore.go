package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dojoenv/dojo-rl/explorer"
)

func ExploreCommand() *cobra.Command {
	var checkpointFile string
	var tracesFile string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Inspect a saved checkpoint and recorded traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := explorer.NewExplorer(checkpointFile, tracesFile)
			if err != nil {
				return err
			}
			e.Repl()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&checkpointFile, "checkpoint", "agent.json", "Agent checkpoint to load")
	cmd.PersistentFlags().StringVar(&tracesFile, "traces", "", "Recorded traces file (jsonl)")
	return cmd
}
