// Package steps provides the classifier step.
package steps

import (
	"fmt"
	"log"

	"github.com/bai-admin/boardbot/internal/core/pipeline"
	"github.com/bai-admin/boardbot/internal/core/rules"
)

// Classifier runs the rule matcher over the event and plans the label and
// assignee actions for the executor.
type Classifier struct{}

// NewClassifier creates a new classifier step.
func NewClassifier(deps *pipeline.Dependencies) *Classifier {
	return &Classifier{}
}

// Name returns the step name.
func (s *Classifier) Name() string {
	return "classifier"
}

// Run classifies the event. Pull request events carry nothing the rules
// look at, so only issue events are classified.
func (s *Classifier) Run(ctx *pipeline.Context) error {
	if !ctx.Event.IsIssue() {
		log.Printf("[classifier] Not an issue event, nothing to classify")
		return nil
	}

	matcher, err := rules.NewMatcher(ctx.Config.Rules)
	if err != nil {
		return fmt.Errorf("failed to compile rules: %w", err)
	}

	actions := matcher.Match(ctx.Event)
	ctx.Actions = actions

	if len(actions) == 0 {
		log.Printf("[classifier] Issue #%d matched no rules", ctx.Event.IssueNumber)
		return nil
	}

	for _, a := range actions {
		log.Printf("[classifier] Issue #%d: planned %s", ctx.Event.IssueNumber, a)
	}
	return nil
}
