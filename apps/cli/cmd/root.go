package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"

	configPath string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "checkspec",
	Short: "Assertions in near-natural language.",
	Long: `checkspec evaluates assertions written as plain phrases against
values. A check is a subject followed by phrase words and parameters:

  checkspec check 42 to be a number
  checkspec check '{"id":1}' to have key id`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a checkspec config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(phrasesCmd)
	rootCmd.AddCommand(versionCmd)
}
