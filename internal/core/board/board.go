// Package board defines the project-board status vocabulary and the
// mapping from lifecycle events to status transitions.
package board

import (
	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
)

// Status is a semantic board column. The external tracker knows these
// only as opaque single-select option IDs carried in configuration.
type Status string

const (
	Todo       Status = "todo"
	InProgress Status = "in_progress"
	Review     Status = "review"
	Done       Status = "done"
)

// OptionID resolves a status to its configured option identifier.
// Returns "" when the option is not configured.
func OptionID(opts config.StatusOptions, s Status) string {
	switch s {
	case Todo:
		return opts.Todo
	case InProgress:
		return opts.InProgress
	case Review:
		return opts.Review
	case Done:
		return opts.Done
	}
	return ""
}

// TargetFor maps a lifecycle event to the status it drives the work item
// to. The second return is false for events that move nothing: opening
// and labeling only feed the classifier, and Done is terminal (reopening
// has no defined transition).
func TargetFor(t event.Type) (Status, bool) {
	switch t {
	case event.IssueAssigned:
		return InProgress, true
	case event.PullRequestReadyForReview:
		return Review, true
	case event.IssueClosed:
		return Done, true
	}
	return "", false
}

// FansOut reports whether the transition applies to the pull request's
// linked issues rather than to the event's own issue.
func FansOut(t event.Type) bool {
	return t == event.PullRequestReadyForReview
}
