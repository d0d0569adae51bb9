package cmd

// Exit codes for the checkspec CLI
const (
	// ExitSuccess indicates the check held
	ExitSuccess = 0

	// ExitCheckFailure indicates the check did not hold
	ExitCheckFailure = 1

	// ExitDispatchError indicates the phrase did not resolve to an assertion
	ExitDispatchError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
