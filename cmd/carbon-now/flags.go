package main

import (
	"io"
	"time"

	carbon "github.com/alnah/go-carbon"
	flag "github.com/spf13/pflag"
)

// cliFlags holds every flag of the carbon-now command.
type cliFlags struct {
	start    int
	end      int
	open     bool
	location string
	config   string
	timeout  time.Duration
	quiet    bool
	verbose  bool
	help     bool
	version  bool
}

// parseFlags parses args (including the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("carbon-now", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	f := &cliFlags{}

	// Selection and destination
	fs.IntVarP(&f.start, "start", "s", carbon.DefaultStartLine, "starting line of the file")
	fs.IntVarP(&f.end, "end", "e", carbon.DefaultEndLine, "ending line of the file")
	fs.BoolVarP(&f.open, "open", "o", false, "open in browser instead of saving")
	fs.StringVarP(&f.location, "location", "l", "", "screenshot save location (default: cwd)")

	// Behavior
	fs.StringVarP(&f.config, "config", "c", "", "preset name or path")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "capture timeout (e.g., 30s, 2m)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and the image path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and hints")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	if err := fs.Parse(rest); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
