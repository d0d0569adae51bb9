package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/checkspec/packages/builtin"
)

var phrasesAsync bool

var phrasesCmd = &cobra.Command{
	Use:   "phrases",
	Short: "List the assertions in the builtin catalog",
	Long: `List every assertion phrase the builtin catalog dispatches on.

Examples:
  checkspec phrases
  checkspec phrases --async`,
	RunE: phrasesCommand,
}

func init() {
	phrasesCmd.Flags().BoolVar(&phrasesAsync, "async", false, "only list suspension-bearing assertions")
}

func phrasesCommand(cmd *cobra.Command, args []string) error {
	cat := builtin.Catalog()

	assertions := cat.All()
	if phrasesAsync {
		assertions = cat.Async()
	}

	for _, a := range assertions {
		marker := " "
		if a.IsAsync() {
			marker = "~"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, a.ID())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d assertions (~ marks async)\n", len(assertions))
	return nil
}
