// Package report renders assertion failures for humans.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

// ConsoleFormatter writes colorized failure reports.
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

// ConsoleOption configures a ConsoleFormatter.
type ConsoleOption func(*ConsoleFormatter)

// NewConsoleFormatter builds a formatter writing to stdout by default.
func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

// WithWriter redirects output.
func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithVerbose includes subject values in passing lines.
func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

// WithNoColor disables ANSI colors.
func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatCheck reports one executed check: its phrase and, when err is a
// ValidationFailure, the diagnostic.
func (f *ConsoleFormatter) FormatCheck(phrase string, err error) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if err == nil {
		fmt.Fprintf(f.writer, "  %s %s\n", green("✓"), phrase)
		return
	}

	failure, isFailure := outcome.AsFailure(err)
	if !isFailure {
		fmt.Fprintf(f.writer, "  %s %s %s\n", red("x"), phrase, red(fmt.Sprintf("(%v)", err)))
		return
	}

	fmt.Fprintf(f.writer, "  %s %s\n", red("✗"), phrase)
	fmt.Fprintf(f.writer, "    %s %s\n", red("→"), failure.Error())
	if f.verbose {
		fmt.Fprintf(f.writer, "      assertion: %s\n", failure.AssertionID)
	}
}

// FormatSummary prints a pass/fail tally.
func (f *ConsoleFormatter) FormatSummary(passed, failed int) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s %s passed", bold("Summary:"), green(fmt.Sprint(passed)))
	if failed > 0 {
		fmt.Fprintf(f.writer, ", %s failed", red(fmt.Sprint(failed)))
	}
	fmt.Fprintf(f.writer, "\n")
}
