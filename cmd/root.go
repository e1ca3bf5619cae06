package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona",
	Short: "Terminal personality quiz",
	Long:  "Persona walks you through a short quiz and tells you what kind of learner you are.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database file (overrides database.path)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default ./config/config.yaml or the user config dir)")
	rootCmd.PersistentFlags().String("questions", "", "Path to a YAML question set (default: built-in questions)")

	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}
