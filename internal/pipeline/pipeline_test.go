package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nao1215/uniscout/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.InstitutionReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.InstitutionReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestReport(name string) *model.InstitutionReport {
	return model.NewInstitutionReport(model.Institution{Name: name, City: "Madrid"}, strings.ToLower(name), nil)
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "step-1"}, &mockStep{name: "step-2"}, &mockStep{name: "step-3"})

		if p.StepCount() != 3 {
			t.Errorf("expected 3 steps, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "first"})
		p.AddStep(&mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New(WithLogger(quietLogger()))
		for _, name := range []string{"step-1", "step-2"} {
			p.AddStep(StepFunc{StepName: name, Fn: func(context.Context, *model.InstitutionReport) error {
				executionOrder = append(executionOrder, name)
				return nil
			}})
		}

		report := newTestReport("UPM")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(report.PerformedStages) != 2 {
			t.Errorf("expected 2 performed stages, got %v", report.PerformedStages)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New(WithLogger(quietLogger()))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(context.Context, *model.InstitutionReport) error {
				return expectedErr
			},
		})
		p.AddStep(second)

		err := p.Execute(context.Background(), newTestReport("UPM"))

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "should-run"}

		p := New(WithContinueOnError(true), WithLogger(quietLogger()))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(context.Context, *model.InstitutionReport) error {
				return errors.New("step failed")
			},
		})
		p.AddStep(second)

		report := newTestReport("UPM")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Errorf("expected nil error with continueOnError, got %v", err)
		}
		if second.callCount != 1 {
			t.Error("second step should have been called")
		}
		if len(report.Errors) != 1 || report.Errors[0] != "failing-step: step failed" {
			t.Errorf("unexpected recorded errors %v", report.Errors)
		}
	})

	t.Run("recovers a panicking step", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "after-panic"}

		p := New(WithContinueOnError(true), WithLogger(quietLogger()))
		p.AddStep(&mockStep{
			name: "panicking-step",
			doFunc: func(context.Context, *model.InstitutionReport) error {
				var m map[string]int
				m["boom"]++
				return nil
			},
		})
		p.AddStep(second)

		report := newTestReport("UPM")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Error == nil || !strings.Contains(report.Error.Error(), "panic") {
			t.Errorf("expected the panic to be recorded, got %v", report.Error)
		}
		if second.callCount != 1 {
			t.Error("step after the panic should have run")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New(WithLogger(quietLogger()))
		p.AddStep(step)

		report := newTestReport("UPM")
		err := p.Execute(ctx, report)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if len(report.Errors) != 1 {
			t.Errorf("expected the cancellation to be recorded, got %v", report.Errors)
		}
	})
}

// TestPipelineStepNames tests the StepNames method.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	t.Run("returns empty slice for empty pipeline", func(t *testing.T) {
		t.Parallel()

		if names := New().StepNames(); len(names) != 0 {
			t.Errorf("expected empty slice, got %v", names)
		}
	})

	t.Run("returns names in order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "alpha"}, &mockStep{name: "beta"}, &mockStep{name: "gamma"})

		names := p.StepNames()
		if len(names) != 3 || names[0] != "alpha" || names[1] != "beta" || names[2] != "gamma" {
			t.Errorf("unexpected names: %v", names)
		}
	})
}
