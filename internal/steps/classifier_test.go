package steps

import (
	"context"
	"testing"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
	"github.com/bai-admin/boardbot/internal/core/rules"
)

func TestClassifier_PlansActionsForIssueEvents(t *testing.T) {
	ev := &event.Event{
		Type:        event.IssueOpened,
		IssueNumber: 12,
		Body:        "Please update railway.json configuration",
	}
	ctx := pipeline.NewContext(context.Background(), ev, config.Default())

	if err := NewClassifier(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(ctx.Actions) != 2 {
		t.Fatalf("Expected 2 planned actions, got %v", ctx.Actions)
	}
	for _, a := range ctx.Actions {
		if a.Kind != rules.KindAddLabel {
			t.Errorf("Expected label actions only, got %v", a)
		}
	}
}

func TestClassifier_IgnoresPullRequestEvents(t *testing.T) {
	ev := &event.Event{Type: event.PullRequestReadyForReview, PRNumber: 9}
	ctx := pipeline.NewContext(context.Background(), ev, config.Default())

	if err := NewClassifier(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(ctx.Actions) != 0 {
		t.Errorf("Expected no actions for PR events, got %v", ctx.Actions)
	}
}

func TestClassifier_NoMatchIsNotAnError(t *testing.T) {
	ev := &event.Event{Type: event.IssueOpened, IssueNumber: 3}
	ctx := pipeline.NewContext(context.Background(), ev, config.Default())

	if err := NewClassifier(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Expected empty event to classify cleanly, got %v", err)
	}
	if len(ctx.Actions) != 0 {
		t.Errorf("Expected empty action set, got %v", ctx.Actions)
	}
}

func TestClassifier_BadRuleFails(t *testing.T) {
	cfg := config.Default()
	cfg.Rules = []config.Rule{{Name: "broken", Pattern: "(", Label: "x"}}

	ev := &event.Event{Type: event.IssueOpened, Body: "anything"}
	ctx := pipeline.NewContext(context.Background(), ev, cfg)

	if err := NewClassifier(&pipeline.Dependencies{}).Run(ctx); err == nil {
		t.Error("Expected error for uncompilable rule set")
	}
}
