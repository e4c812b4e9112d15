// Package pipeline provides step registration and preset workflow building.
package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// Tracker is the issue-mutation surface the steps need. Both operations
// are additive on GitHub's side: adding a label or assignee that is
// already present succeeds without change.
type Tracker interface {
	AddLabels(ctx context.Context, org, repo string, number int, labels []string) error
	AddAssignees(ctx context.Context, org, repo string, number int, assignees []string) error
}

// LinkedIssue identifies an issue a pull request declares it closes.
type LinkedIssue struct {
	NodeID string
	Number int
}

// Board is the ProjectV2 surface the steps need.
type Board interface {
	// EnsureItem returns the project item ID for the given content,
	// adding the content to the project when it is not an item yet.
	EnsureItem(ctx context.Context, projectID, contentID string) (string, error)

	// SetItemStatus sets a single-select field on a project item.
	// Setting the value already in place is a no-op on the tracker side.
	SetItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) error

	// LinkedIssues resolves the issues a pull request closes. The set is
	// recomputed on every call, never cached.
	LinkedIssues(ctx context.Context, prNodeID string) ([]LinkedIssue, error)
}

// Dependencies holds the dependencies that are injected into steps.
type Dependencies struct {
	Tracker Tracker
	Board   Board
	DryRun  bool
}

// StepFactory is a function that creates a Step from its dependencies.
type StepFactory func(deps *Dependencies) (Step, error)

// Registry holds registered step factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]StepFactory
}

// NewRegistry creates a new step registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]StepFactory),
	}
}

// Register adds a step factory to the registry.
func (r *Registry) Register(name string, factory StepFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves a step factory by name.
func (r *Registry) Get(name string) (StepFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// BuildFromNames creates a pipeline from a list of step names.
func (r *Registry) BuildFromNames(names []string, deps *Dependencies) (*Pipeline, error) {
	var steps []Step
	for _, name := range names {
		factory, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown step: %s", name)
		}
		step, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("failed to create step '%s': %w", name, err)
		}
		steps = append(steps, step)
	}
	return New(steps...), nil
}

// Presets defines the built-in workflow presets.
var Presets = map[string][]string{
	// issue-triage: classify and move the board in one pass.
	"issue-triage": {
		"gatekeeper",
		"classifier",
		"board_sync",
		"action_executor",
	},

	// classify-only: labels and assignees, no board writes.
	"classify-only": {
		"gatekeeper",
		"classifier",
		"action_executor",
	},

	// board-only: status transitions, no classification.
	"board-only": {
		"gatekeeper",
		"board_sync",
		"action_executor",
	},
}

// GetPreset returns the step names for a preset workflow.
func GetPreset(name string) ([]string, bool) {
	steps, ok := Presets[name]
	return steps, ok
}

// ResolveSteps determines the steps to use based on config.
// Priority: explicit steps > workflow preset > default.
func ResolveSteps(explicitSteps []string, workflow string) []string {
	if len(explicitSteps) > 0 {
		return explicitSteps
	}
	if workflow != "" {
		if preset, ok := GetPreset(workflow); ok {
			return preset
		}
	}
	return Presets["issue-triage"]
}
