package cmd

import "github.com/spf13/cobra"

var (
	episodes   int
	horizon    int
	saveFile   string
	runs       int
	configFile string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "dojo-rl",
		Short: "Tabular Q-learning over emulator video frames",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 1000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 2000, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the YAML configuration file")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(ServeCommand())
	rootCommand.AddCommand(ExploreCommand())
	return rootCommand
}
