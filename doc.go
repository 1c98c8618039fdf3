// Package carbon turns source files into carbon.now.sh screenshots.
//
// # Quick Start
//
// Build a pipeline around a browser and run it for one file:
//
//	p := carbon.NewPipeline(carbon.NewRodBrowser())
//	out, err := p.Execute(ctx, carbon.Options{
//	    Selection: carbon.Selection{Path: "main.go", Start: 3, End: 10},
//	    Location:  "/tmp",
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.ImagePath) // /tmp/carbon.png
//
// Set Options.Open to hand the URL to the system browser instead of
// capturing it.
//
// # Pipeline
//
// A run goes through four steps:
//
//  1. Read the file and select the requested lines (Prepare)
//  2. Classify the language and build the renderer URL (Classify, BuildURL)
//  3. Open the URL in a browser, when requested
//  4. Otherwise capture the rendered export element to carbon.png
//
// The first failing step aborts the run; later steps never execute.
//
// # Browser Requirements
//
// Capture requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package carbon
