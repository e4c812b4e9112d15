// Package rules implements the classification rule matcher.
package rules

import (
	"fmt"
	"regexp"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
)

// ActionKind discriminates classification actions.
type ActionKind string

const (
	KindAddLabel    ActionKind = "add_label"
	KindAddAssignee ActionKind = "add_assignee"
)

// Action is a single mutation the classifier wants applied. Actions are
// comparable, so identical outputs from different rules collapse.
type Action struct {
	Kind     ActionKind
	Label    string
	Assignee string
}

// String returns a short human-readable form for logs.
func (a Action) String() string {
	switch a.Kind {
	case KindAddLabel:
		return "add_label(" + a.Label + ")"
	case KindAddAssignee:
		return "add_assignee(" + a.Assignee + ")"
	}
	return string(a.Kind)
}

// Matcher evaluates an ordered rule list against events.
type Matcher struct {
	rules []compiledRule
}

type compiledRule struct {
	name    string
	pattern *regexp.Regexp
	action  Action
}

// NewMatcher compiles the rule list. Patterns are unanchored and forced
// case-insensitive to preserve the semantics of the grep -iE calls the
// rules were ported from.
func NewMatcher(ruleList []config.Rule) (*Matcher, error) {
	compiled := make([]compiledRule, 0, len(ruleList))
	for _, r := range ruleList {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern in rule %q: %w", r.Name, err)
		}
		action, err := ruleAction(r)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{name: r.Name, pattern: re, action: action})
	}
	return &Matcher{rules: compiled}, nil
}

func ruleAction(r config.Rule) (Action, error) {
	switch {
	case r.Label != "" && r.Assignee != "":
		return Action{}, fmt.Errorf("rule %q sets both label and assignee", r.Name)
	case r.Label != "":
		return Action{Kind: KindAddLabel, Label: r.Label}, nil
	case r.Assignee != "":
		return Action{Kind: KindAddAssignee, Assignee: r.Assignee}, nil
	default:
		return Action{}, fmt.Errorf("rule %q has no action", r.Name)
	}
}

// Match evaluates every rule against the event. A rule fires when its
// pattern matches the issue body or any label name; a hit on either is
// enough. There is no short-circuit: all rules are evaluated and every
// matching action is returned, deduplicated, in declared rule order.
// An empty body and empty label set match nothing.
func (m *Matcher) Match(ev *event.Event) []Action {
	var out []Action
	seen := make(map[Action]struct{})

	for i := range m.rules {
		r := &m.rules[i]
		if !r.matches(ev) {
			continue
		}
		if _, dup := seen[r.action]; dup {
			continue
		}
		seen[r.action] = struct{}{}
		out = append(out, r.action)
	}

	return out
}

func (r *compiledRule) matches(ev *event.Event) bool {
	if ev.Body != "" && r.pattern.MatchString(ev.Body) {
		return true
	}
	for _, label := range ev.Labels {
		if label != "" && r.pattern.MatchString(label) {
			return true
		}
	}
	return false
}
