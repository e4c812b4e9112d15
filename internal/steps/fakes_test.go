package steps

import (
	"context"
	"fmt"

	"github.com/bai-admin/boardbot/internal/core/pipeline"
)

// fakeTracker records REST mutations and fails on demand.
type fakeTracker struct {
	labelCalls    [][]string
	assigneeCalls [][]string
	labelErr      error
	assigneeErr   error
}

func (f *fakeTracker) AddLabels(ctx context.Context, org, repo string, number int, labels []string) error {
	f.labelCalls = append(f.labelCalls, labels)
	return f.labelErr
}

func (f *fakeTracker) AddAssignees(ctx context.Context, org, repo string, number int, assignees []string) error {
	f.assigneeCalls = append(f.assigneeCalls, assignees)
	return f.assigneeErr
}

type statusCall struct {
	itemID   string
	optionID string
}

// fakeBoard records ProjectV2 mutations. Per-content errors simulate
// partial failure across linked issues.
type fakeBoard struct {
	linked      []pipeline.LinkedIssue
	linkedErr   error
	ensureErr   map[string]error // keyed by content node ID
	statusErr   map[string]error // keyed by item ID
	statusCalls []statusCall
}

func (f *fakeBoard) EnsureItem(ctx context.Context, projectID, contentID string) (string, error) {
	if err := f.ensureErr[contentID]; err != nil {
		return "", err
	}
	return "item-" + contentID, nil
}

func (f *fakeBoard) SetItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	if err := f.statusErr[itemID]; err != nil {
		return err
	}
	f.statusCalls = append(f.statusCalls, statusCall{itemID: itemID, optionID: optionID})
	return nil
}

func (f *fakeBoard) LinkedIssues(ctx context.Context, prNodeID string) ([]pipeline.LinkedIssue, error) {
	if f.linkedErr != nil {
		return nil, f.linkedErr
	}
	return f.linked, nil
}

var errFake = fmt.Errorf("fake tracker failure")
