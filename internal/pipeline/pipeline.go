package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/nao1215/uniscout/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the report
// filled in by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// Steps persist their own artifact and record non-critical problems in
	// the artifact's error field. A returned error is recorded on the report.
	Do(ctx context.Context, report *model.InstitutionReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// StepFunc adapts a function to a Step.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, report *model.InstitutionReport) error
}

// Do implements Step.
func (s StepFunc) Do(ctx context.Context, report *model.InstitutionReport) error {
	return s.Fn(ctx, report)
}

// Name implements Step.
func (s StepFunc) Name() string {
	return s.StepName
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, a default logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Later steps then run on the degraded artifacts
// of the failed ones.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
//
// A panicking step is recovered and treated as a failed step, so one broken
// institution never takes the batch down. Cancellation is checked before
// each step; steps bound their own network calls.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete (errors are recorded in report).
func (p *Pipeline) Execute(ctx context.Context, report *model.InstitutionReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"university", report.Institution.Name,
				"reason", ctx.Err(),
			)
			report.AddError(step.Name(), ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"university", report.Institution.Name,
		)

		if err := p.run(ctx, step, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"university", report.Institution.Name,
				"error", err,
			)

			report.AddError(step.Name(), err)

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"university", report.Institution.Name,
			)
		}

		report.PerformedStages = append(report.PerformedStages, step.Name())
	}

	return nil
}

func (p *Pipeline) run(ctx context.Context, step Step, report *model.InstitutionReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("step panicked", "step", step.Name(), "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step.Do(ctx, report)
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
