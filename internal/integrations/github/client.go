// Package github wraps the GitHub REST and GraphQL APIs behind the
// narrow surface the pipeline needs.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub REST API client.
type Client struct {
	client *github.Client
}

// GetIssue fetches issue details.
func (c *Client) GetIssue(ctx context.Context, org, repo string, number int) (*github.Issue, error) {
	issue, _, err := c.client.Issues.Get(ctx, org, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue: %w", err)
	}

	return issue, nil
}

// AddLabels adds labels to an issue. The call is additive: labels already
// on the issue stay, duplicates are not an error.
func (c *Client) AddLabels(ctx context.Context, org, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		return fmt.Errorf("labels cannot be empty")
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("label name cannot be blank")
		}
	}

	_, _, err := c.client.Issues.AddLabelsToIssue(ctx, org, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}
	return nil
}

// AddAssignees adds assignees to an issue. Like AddLabels, the call is
// additive and tolerates assignees that are already set.
func (c *Client) AddAssignees(ctx context.Context, org, repo string, number int, assignees []string) error {
	if len(assignees) == 0 {
		return fmt.Errorf("assignees cannot be empty")
	}
	for _, a := range assignees {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("assignee username cannot be blank")
		}
	}

	_, _, err := c.client.Issues.AddAssignees(ctx, org, repo, number, assignees)
	if err != nil {
		return fmt.Errorf("failed to add assignees: %w", err)
	}
	return nil
}

// EnsureLabel creates a repository label if it does not exist yet.
// An existing label is left untouched, whatever its color or description.
func (c *Client) EnsureLabel(ctx context.Context, org, repo, name, color, description string) (created bool, err error) {
	_, resp, err := c.client.Issues.GetLabel(ctx, org, repo, name)
	if err == nil {
		return false, nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return false, fmt.Errorf("failed to look up label %q: %w", name, err)
	}

	label := &github.Label{
		Name:        github.String(name),
		Color:       github.String(color),
		Description: github.String(description),
	}
	if _, _, err := c.client.Issues.CreateLabel(ctx, org, repo, label); err != nil {
		return false, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return true, nil
}
