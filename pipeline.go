package carbon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// State is the value threaded through the pipeline steps. Each step receives
// a copy and returns the copy it wants the next step to see.
type State struct {
	Selection Selection
	Open      bool
	Location  string

	Code     string
	Language string
	URL      string
	Outcome  Outcome
}

// Step is one named stage of a pipeline.
type Step struct {
	Title string
	Skip  func(State) bool // optional
	Do    func(ctx context.Context, s State) (State, error)
}

// Reporter receives a notification before each step runs or is skipped.
type Reporter func(title string, skipped bool)

// RunSteps executes steps in order and stops at the first error. Steps after
// a failed step never run. The returned state is the last successful one.
func RunSteps(ctx context.Context, steps []Step, initial State, report Reporter) (State, error) {
	state := initial
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		if step.Skip != nil && step.Skip(state) {
			if report != nil {
				report(step.Title, true)
			}
			continue
		}

		if report != nil {
			report(step.Title, false)
		}

		next, err := step.Do(ctx, state)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}

// Options are the per-invocation inputs of a Pipeline.
type Options struct {
	Selection Selection
	Open      bool   // open in browser instead of capturing
	Location  string // capture directory, "" = working directory
}

// Pipeline turns a source selection into an opened tab or a captured image.
type Pipeline struct {
	Endpoint string
	Settings Settings
	Browser  Browser
	Logger   zerolog.Logger
}

// NewPipeline returns a pipeline with the default endpoint and settings.
func NewPipeline(browser Browser) *Pipeline {
	return &Pipeline{
		Endpoint: DefaultEndpoint,
		Settings: DefaultSettings(),
		Browser:  browser,
		Logger:   zerolog.Nop(),
	}
}

// Steps returns the ordered steps for a run over opts.
func (p *Pipeline) Steps(opts Options) []Step {
	orchestrator := &Orchestrator{Browser: p.Browser}

	return []Step{
		{
			Title: fmt.Sprintf("Processing %s", opts.Selection.Path),
			Do: func(_ context.Context, s State) (State, error) {
				code, err := Prepare(s.Selection)
				if err != nil {
					return s, err
				}
				s.Code = code
				return s, nil
			},
		},
		{
			Title: "Preparing connection",
			Do: func(_ context.Context, s State) (State, error) {
				s.Language = Classify(s.Selection.Path)
				s.URL = BuildURL(p.Endpoint, s.Code, s.Language, p.Settings)
				p.Logger.Debug().
					Str("language", s.Language).
					Int("url_length", len(s.URL)).
					Msg("request built")
				return s, nil
			},
		},
		{
			Title: "Opening in browser",
			Skip:  func(s State) bool { return !s.Open },
			Do: func(_ context.Context, s State) (State, error) {
				out, err := orchestrator.Open(s.URL)
				if err != nil {
					return s, err
				}
				s.Outcome = out
				return s, nil
			},
		},
		{
			Title: "Fetching beautiful image",
			Skip:  func(s State) bool { return s.Open },
			Do: func(ctx context.Context, s State) (State, error) {
				out, err := orchestrator.Capture(ctx, s.URL, s.Location)
				if err != nil {
					return s, err
				}
				s.Outcome = out
				return s, nil
			},
		},
	}
}

// Execute runs all steps for opts and returns the final outcome.
func (p *Pipeline) Execute(ctx context.Context, opts Options, report Reporter) (Outcome, error) {
	steps := p.Steps(opts)
	initial := State{
		Selection: opts.Selection,
		Open:      opts.Open,
		Location:  opts.Location,
	}

	final, err := RunSteps(ctx, steps, initial, report)
	if err != nil {
		return Outcome{}, err
	}
	return final.Outcome, nil
}
