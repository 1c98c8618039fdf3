package main

// Exit codes for the carbon-now CLI.
// Every failure, usage errors included, exits with 1.
const (
	ExitSuccess = 0 // Image saved or browser opened
	ExitFailure = 1 // Usage, config, content, or render error
)

// exitCodeFor returns the exit code for err.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
