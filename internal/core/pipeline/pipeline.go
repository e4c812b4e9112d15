// Package pipeline provides the core pipeline engine for Boardbot.
// It defines the Step interface and Context structure used by all
// pipeline steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bai-admin/boardbot/internal/core/board"
	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
	"github.com/bai-admin/boardbot/internal/core/rules"
)

// ErrSkipPipeline indicates that the pipeline should stop gracefully.
// This is not an error condition, just an early exit (e.g., unhandled
// event, disabled repo).
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic. It should return ErrSkipPipeline
	// to stop the pipeline gracefully, or any other error to indicate
	// failure.
	Run(ctx *Context) error
}

// Transition is a planned status change for one issue.
type Transition struct {
	IssueNodeID string       `json:"issue_node_id"`
	IssueNumber int          `json:"issue_number,omitempty"`
	Target      board.Status `json:"target"`
}

// Result holds the accumulated results from pipeline execution.
type Result struct {
	RunID          string       `json:"run_id"`
	EventType      event.Type   `json:"event_type"`
	Skipped        bool         `json:"skipped,omitempty"`
	SkipReason     string       `json:"skip_reason,omitempty"`
	LabelsApplied  []string     `json:"labels_applied,omitempty"`
	AssigneesAdded []string     `json:"assignees_added,omitempty"`
	Transitioned   []Transition `json:"transitioned,omitempty"`
	Errors         []error      `json:"-"`
}

// ErrorStrings renders accumulated errors for serialized reports.
func (r *Result) ErrorStrings() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		out = append(out, err.Error())
	}
	return out
}

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Event is the normalized webhook event being processed.
	Event *event.Event

	// Config is the loaded configuration.
	Config *config.Config

	// Result accumulates the processing results.
	Result *Result

	// Actions holds the classification actions planned by the
	// classifier step, in rule order.
	Actions []rules.Action

	// Transitions holds the status transitions planned by the board
	// sync step, one per affected issue.
	Transitions []Transition

	// Metadata allows steps to pass arbitrary data to later steps.
	Metadata map[string]interface{}
}

// NewContext creates a new pipeline context for an event.
func NewContext(ctx context.Context, ev *event.Event, cfg *config.Config) *Context {
	return &Context{
		Ctx:    ctx,
		Event:  ev,
		Config: cfg,
		Result: &Result{
			RunID:     uuid.NewString(),
			EventType: ev.Type,
		},
		Metadata: make(map[string]interface{}),
	}
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order. Stops on the first error (unless it's
// ErrSkipPipeline, which is graceful).
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				return nil
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
