package rules

import (
	"testing"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
)

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(config.DefaultRules())
	if err != nil {
		t.Fatalf("failed to compile default rules: %v", err)
	}
	return m
}

func actionSet(actions []Action) map[Action]bool {
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}

func TestMatch_RailwayJSONBodyAddsConfigurationLabel(t *testing.T) {
	m := defaultMatcher(t)

	bodies := []string{
		"railway.json is broken",
		"see RAILWAY.JSON for details",
		"Update Railway.Json watch paths",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			actions := m.Match(&event.Event{Type: event.IssueOpened, Body: body})
			want := Action{Kind: KindAddLabel, Label: "configuration"}
			if !actionSet(actions)[want] {
				t.Errorf("Expected %v in action set, got %v", want, actions)
			}
		})
	}
}

func TestMatch_HighPriorityLabelAssignsAdmin(t *testing.T) {
	m := defaultMatcher(t)

	tests := []struct {
		name   string
		body   string
		labels []string
	}{
		{"label only", "", []string{"high-priority"}},
		{"label uppercase", "", []string{"HIGH-PRIORITY"}},
		{"label with unrelated body", "fix the readme typo", []string{"high-priority"}},
	}

	want := Action{Kind: KindAddAssignee, Assignee: "bai-admin"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := m.Match(&event.Event{Type: event.IssueLabeled, Body: tt.body, Labels: tt.labels})
			if !actionSet(actions)[want] {
				t.Errorf("Expected %v in action set, got %v", want, actions)
			}
		})
	}
}

func TestMatch_EmptyEventMatchesNothing(t *testing.T) {
	m := defaultMatcher(t)

	actions := m.Match(&event.Event{Type: event.IssueOpened})
	if len(actions) != 0 {
		t.Errorf("Expected empty action set, got %v", actions)
	}
}

func TestMatch_RailwayConfigurationBody(t *testing.T) {
	// Both the infrastructure and configuration alternations match
	// parts of this text; no other rule does.
	m := defaultMatcher(t)

	actions := m.Match(&event.Event{
		Type: event.IssueOpened,
		Body: "Please update railway.json configuration",
	})

	if len(actions) != 2 {
		t.Fatalf("Expected exactly 2 actions, got %v", actions)
	}
	set := actionSet(actions)
	if !set[Action{Kind: KindAddLabel, Label: "infrastructure"}] {
		t.Errorf("Expected infrastructure label in %v", actions)
	}
	if !set[Action{Kind: KindAddLabel, Label: "configuration"}] {
		t.Errorf("Expected configuration label in %v", actions)
	}
}

func TestMatch_OrAcrossFields(t *testing.T) {
	// A rule fires when its pattern matches either the body or a label.
	rules := []config.Rule{
		{Name: "infra", Pattern: "infrastructure", Label: "infrastructure"},
	}
	m, err := NewMatcher(rules)
	if err != nil {
		t.Fatalf("failed to compile rules: %v", err)
	}

	tests := []struct {
		name    string
		ev      *event.Event
		matched bool
	}{
		{"body hit", &event.Event{Body: "infrastructure work"}, true},
		{"label hit", &event.Event{Labels: []string{"infrastructure"}}, true},
		{"both hit", &event.Event{Body: "infrastructure", Labels: []string{"infrastructure"}}, true},
		{"no hit", &event.Event{Body: "typo fix", Labels: []string{"bug"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := m.Match(tt.ev)
			if got := len(actions) == 1; got != tt.matched {
				t.Errorf("Expected matched=%v, got actions %v", tt.matched, actions)
			}
		})
	}
}

func TestMatch_DuplicateActionsCollapse(t *testing.T) {
	rules := []config.Rule{
		{Name: "first", Pattern: "deploy", Label: "infrastructure"},
		{Name: "second", Pattern: "docker", Label: "infrastructure"},
	}
	m, err := NewMatcher(rules)
	if err != nil {
		t.Fatalf("failed to compile rules: %v", err)
	}

	actions := m.Match(&event.Event{Body: "deploy the docker image"})
	if len(actions) != 1 {
		t.Errorf("Expected duplicate actions to collapse, got %v", actions)
	}
}

func TestMatch_AllRulesEvaluated(t *testing.T) {
	// No first-match-wins: every rule contributes.
	rules := []config.Rule{
		{Name: "a", Pattern: "alpha", Label: "a"},
		{Name: "b", Pattern: "beta", Label: "b"},
		{Name: "c", Pattern: "gamma", Assignee: "lead"},
	}
	m, err := NewMatcher(rules)
	if err != nil {
		t.Fatalf("failed to compile rules: %v", err)
	}

	actions := m.Match(&event.Event{Body: "alpha beta gamma"})
	if len(actions) != 3 {
		t.Errorf("Expected all 3 rules to fire, got %v", actions)
	}

	// Declared order is preserved for deterministic application.
	if actions[0].Label != "a" || actions[1].Label != "b" || actions[2].Assignee != "lead" {
		t.Errorf("Expected rule order to be preserved, got %v", actions)
	}
}

func TestNewMatcher_RejectsBadRules(t *testing.T) {
	tests := []struct {
		name string
		rule config.Rule
	}{
		{"invalid pattern", config.Rule{Name: "bad", Pattern: "(", Label: "x"}},
		{"no action", config.Rule{Name: "empty", Pattern: "x"}},
		{"two actions", config.Rule{Name: "both", Pattern: "x", Label: "a", Assignee: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMatcher([]config.Rule{tt.rule}); err == nil {
				t.Errorf("Expected error for rule %+v", tt.rule)
			}
		})
	}
}
