package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: carbon-now [flags] <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Send a source file to carbon.now.sh and save the rendered image.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -s, --start <n>           Starting line of <file> (default: 1)")
	fmt.Fprintln(w, "  -e, --end <n>             Ending line of <file> (default: 1000)")
	fmt.Fprintln(w, "  -l, --location <dir>      Screenshot save location (default: cwd)")
	fmt.Fprintln(w, "  -o, --open                Open in browser instead of saving")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings:")
	fmt.Fprintln(w, "  -c, --config <name>       Preset name or path (YAML)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Capture timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors and the image path")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and hints")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  carbon-now foo.js")
	fmt.Fprintln(w, "  carbon-now foo.js -s 3 -e 10    # Only copies lines 3-10")
	fmt.Fprintln(w, "  carbon-now foo.js -o            # Finish the image in the browser")
	fmt.Fprintln(w, "  carbon-now foo.js -c dracula    # Use ./dracula.yaml or a saved preset")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Presets are looked up in the current directory, then in")
	fmt.Fprintln(w, "<user config dir>/carbon-now/.")
}

// printMissingFile prints the error shown when no file argument is given.
func printMissingFile(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Error: Please provide at least a file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  $ carbon-now [file]")
}

// printRenderFailure prints the diagnostic shown when the pipeline fails.
func printRenderFailure(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Error: Sending code to https://carbon.now.sh went wrong.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  This is mostly due to:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  - Insensical input like `--start 10 --end 2`")
	fmt.Fprintln(w, "  - Carbon being down or taking too long to respond")
	fmt.Fprintln(w, "  - Your internet connection not working or being too slow")
}
