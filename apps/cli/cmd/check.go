package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/checkspec"
	"github.com/abdul-hamid-achik/checkspec/packages/builtin"
	"github.com/abdul-hamid-achik/checkspec/packages/core/config"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
	"github.com/abdul-hamid-achik/checkspec/packages/report"
)

var (
	checkAsync   bool
	checkTimeout time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check <subject> <phrase words and params...>",
	Short: "Run one assertion against a value",
	Long: `Run one assertion. The first argument is the subject; the rest are
phrase words interleaved with parameters. Arguments that parse as JSON
become values, everything else joins into phrase words. Quote string
parameters twice so the shell keeps the JSON quotes.

Examples:
  checkspec check 42 to be a number
  checkspec check 42 to be between 40 and 45
  checkspec check hello to contain '"ell"'
  checkspec check '{"id":1}' not to be empty`,
	Args: cobra.MinimumNArgs(2),
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().BoolVar(&checkAsync, "async", false, "run from the asynchronous entry point")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "wait bound for async assertions")
}

func checkCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStderr(), "Error loading config: %v\n", err)
		os.Exit(ExitConfigError)
	}

	checker := checkspec.NewChecker(builtin.Catalog(), checkspec.WithConfig(cfg))

	subject := parseValue(args[0])
	tokens := tokenize(args[1:])
	if checkTimeout > 0 {
		tokens = append(tokens, checkspec.Within(checkTimeout))
	}

	var checkErr error
	if checkAsync {
		checkErr = checker.CheckAsync(context.Background(), subject, tokens...)
	} else {
		checkErr = checker.Check(subject, tokens...)
	}

	formatter := report.NewConsoleFormatter(
		report.WithWriter(cmd.OutOrStdout()),
		report.WithVerbose(verbose || cfg.GetVerbose()),
		report.WithNoColor(noColor || cfg.GetNoColor()),
	)
	formatter.FormatCheck(strings.Join(args[1:], " "), checkErr)

	if checkErr == nil {
		return nil
	}
	if _, isFailure := outcome.AsFailure(checkErr); isFailure {
		os.Exit(ExitCheckFailure)
	}
	os.Exit(ExitDispatchError)
	return nil
}

// parseValue reads an argument as JSON when it is JSON, otherwise as a
// plain string.
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err == nil {
		return v
	}
	return arg
}

// tokenize turns CLI words into call tokens: JSON arguments become
// parameters, runs of plain words join into single phrase tokens.
func tokenize(args []string) []any {
	var tokens []any
	var words []string

	flush := func() {
		if len(words) > 0 {
			tokens = append(tokens, strings.Join(words, " "))
			words = words[:0]
		}
	}

	for _, arg := range args {
		var v any
		if err := json.Unmarshal([]byte(arg), &v); err == nil {
			flush()
			tokens = append(tokens, v)
			continue
		}
		words = append(words, arg)
	}
	flush()
	return tokens
}
