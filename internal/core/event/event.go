// Package event normalizes GitHub webhook payloads into the internal
// event model consumed by the pipeline.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v60/github"
)

// Type identifies the lifecycle event kind.
type Type string

const (
	IssueOpened               Type = "issue_opened"
	IssueLabeled              Type = "issue_labeled"
	IssueAssigned             Type = "issue_assigned"
	IssueClosed               Type = "issue_closed"
	PullRequestOpened         Type = "pull_request_opened"
	PullRequestReadyForReview Type = "pull_request_ready_for_review"

	// Unknown covers event names and action verbs with no defined
	// behavior (reopened, unlabeled, closed-without-merge, ...). They
	// are inert by construction, not errors.
	Unknown Type = "unknown"
)

// Event is the normalized form of one webhook delivery.
type Event struct {
	Type   Type   `json:"type"`
	Org    string `json:"org"`
	Repo   string `json:"repo"`
	Sender string `json:"sender,omitempty"`

	// Issue fields, populated for "issues" deliveries.
	IssueNumber int      `json:"issue_number,omitempty"`
	IssueNodeID string   `json:"issue_node_id,omitempty"`
	Body        string   `json:"body,omitempty"`
	Labels      []string `json:"labels,omitempty"`

	// Pull request fields, populated for "pull_request" deliveries.
	PRNumber int    `json:"pr_number,omitempty"`
	PRNodeID string `json:"pr_node_id,omitempty"`
}

// IsIssue reports whether the event concerns an issue.
func (e *Event) IsIssue() bool {
	switch e.Type {
	case IssueOpened, IssueLabeled, IssueAssigned, IssueClosed:
		return true
	}
	return false
}

// IsPullRequest reports whether the event concerns a pull request.
func (e *Event) IsPullRequest() bool {
	return e.Type == PullRequestOpened || e.Type == PullRequestReadyForReview
}

// Parse normalizes a raw webhook payload. eventName is the value of the
// X-GitHub-Event header (GITHUB_EVENT_NAME under Actions). Unknown event
// names parse to an Unknown event rather than an error, so new delivery
// kinds stay inert until a behavior is defined for them.
func Parse(eventName string, payload []byte) (*Event, error) {
	switch eventName {
	case "issues":
		var ev github.IssuesEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("failed to parse issues payload: %w", err)
		}
		return fromIssuesEvent(&ev), nil
	case "pull_request":
		var ev github.PullRequestEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("failed to parse pull_request payload: %w", err)
		}
		return fromPullRequestEvent(&ev), nil
	default:
		return &Event{Type: Unknown}, nil
	}
}

func fromIssuesEvent(ev *github.IssuesEvent) *Event {
	e := &Event{Type: Unknown}

	switch ev.GetAction() {
	case "opened":
		e.Type = IssueOpened
	case "labeled":
		e.Type = IssueLabeled
	case "assigned":
		e.Type = IssueAssigned
	case "closed":
		e.Type = IssueClosed
	}

	fillRepo(e, ev.GetRepo())
	e.Sender = ev.GetSender().GetLogin()

	if issue := ev.GetIssue(); issue != nil {
		e.IssueNumber = issue.GetNumber()
		e.IssueNodeID = issue.GetNodeID()
		e.Body = issue.GetBody()
		for _, l := range issue.Labels {
			e.Labels = append(e.Labels, l.GetName())
		}
	}

	return e
}

func fromPullRequestEvent(ev *github.PullRequestEvent) *Event {
	e := &Event{Type: Unknown}

	switch ev.GetAction() {
	case "opened":
		e.Type = PullRequestOpened
	case "ready_for_review":
		e.Type = PullRequestReadyForReview
	}

	fillRepo(e, ev.GetRepo())
	e.Sender = ev.GetSender().GetLogin()

	if pr := ev.GetPullRequest(); pr != nil {
		e.PRNumber = pr.GetNumber()
		e.PRNodeID = pr.GetNodeID()
	}

	return e
}

func fillRepo(e *Event, repo *github.Repository) {
	if repo == nil {
		return
	}
	e.Org = repo.GetOwner().GetLogin()
	e.Repo = repo.GetName()
}
