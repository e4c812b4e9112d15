package event

import (
	"fmt"
	"testing"
)

func TestParse_IssueEvents(t *testing.T) {
	payload := `{
		"action": "%s",
		"issue": {
			"number": 7,
			"node_id": "I_node7",
			"body": "Please update railway.json configuration",
			"labels": [{"name": "high-priority"}, {"name": "configuration"}]
		},
		"repository": {
			"name": "o365-service",
			"owner": {"login": "bai-admin"}
		},
		"sender": {"login": "contributor"}
	}`

	tests := []struct {
		action string
		want   Type
	}{
		{"opened", IssueOpened},
		{"labeled", IssueLabeled},
		{"assigned", IssueAssigned},
		{"closed", IssueClosed},
		{"reopened", Unknown},
		{"unlabeled", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			body := []byte(replaceAction(payload, tt.action))
			ev, err := Parse("issues", body)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if ev.Type != tt.want {
				t.Fatalf("Expected type %s, got %s", tt.want, ev.Type)
			}
			if ev.Org != "bai-admin" || ev.Repo != "o365-service" {
				t.Errorf("Unexpected repo identity: %+v", ev)
			}
			if ev.IssueNumber != 7 || ev.IssueNodeID != "I_node7" {
				t.Errorf("Unexpected issue identity: %+v", ev)
			}
			if len(ev.Labels) != 2 || ev.Labels[0] != "high-priority" {
				t.Errorf("Expected labels to be parsed, got %v", ev.Labels)
			}
			if ev.Sender != "contributor" {
				t.Errorf("Expected sender to be parsed, got %q", ev.Sender)
			}
		})
	}
}

func TestParse_PullRequestEvents(t *testing.T) {
	payload := `{
		"action": "%s",
		"pull_request": {
			"number": 42,
			"node_id": "PR_node42"
		},
		"repository": {
			"name": "o365-service",
			"owner": {"login": "bai-admin"}
		},
		"sender": {"login": "contributor"}
	}`

	tests := []struct {
		action string
		want   Type
	}{
		{"opened", PullRequestOpened},
		{"ready_for_review", PullRequestReadyForReview},
		{"closed", Unknown},
		{"synchronize", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			ev, err := Parse("pull_request", []byte(replaceAction(payload, tt.action)))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if ev.Type != tt.want {
				t.Fatalf("Expected type %s, got %s", tt.want, ev.Type)
			}
			if ev.PRNumber != 42 || ev.PRNodeID != "PR_node42" {
				t.Errorf("Unexpected PR identity: %+v", ev)
			}
		})
	}
}

func TestParse_UnknownEventName(t *testing.T) {
	ev, err := Parse("workflow_run", []byte(`{"action": "completed"}`))
	if err != nil {
		t.Fatalf("Expected unknown event names to be inert, got error: %v", err)
	}
	if ev.Type != Unknown {
		t.Errorf("Expected Unknown type, got %s", ev.Type)
	}
}

func TestParse_MalformedPayload(t *testing.T) {
	if _, err := Parse("issues", []byte("{not json")); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

func TestParse_MissingBodyAndLabels(t *testing.T) {
	// A missing body or label list must not error; it classifies as
	// "matches nothing" downstream.
	ev, err := Parse("issues", []byte(`{"action": "opened", "issue": {"number": 3, "node_id": "I_3"}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ev.Body != "" || len(ev.Labels) != 0 {
		t.Errorf("Expected empty body and labels, got %+v", ev)
	}
}

func TestEventKindHelpers(t *testing.T) {
	issue := &Event{Type: IssueClosed}
	pr := &Event{Type: PullRequestReadyForReview}
	unknown := &Event{Type: Unknown}

	if !issue.IsIssue() || issue.IsPullRequest() {
		t.Error("IssueClosed should be an issue event")
	}
	if !pr.IsPullRequest() || pr.IsIssue() {
		t.Error("ready_for_review should be a pull request event")
	}
	if unknown.IsIssue() || unknown.IsPullRequest() {
		t.Error("Unknown should be neither")
	}
}

// replaceAction fills the single %s verb slot in a payload template.
func replaceAction(payload, action string) string {
	return fmt.Sprintf(payload, action)
}
