package github

import (
	"context"
	"testing"
)

func TestAddLabelsValidation(t *testing.T) {
	client := &Client{client: nil} // nil client for validation testing

	tests := []struct {
		name   string
		labels []string
	}{
		{"empty slice", []string{}},
		{"nil slice", nil},
		{"blank label", []string{"infrastructure", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := client.AddLabels(context.Background(), "org", "repo", 1, tt.labels); err == nil {
				t.Errorf("Expected error for labels %v", tt.labels)
			}
		})
	}
}

func TestAddAssigneesValidation(t *testing.T) {
	client := &Client{client: nil} // nil client for validation testing

	tests := []struct {
		name      string
		assignees []string
	}{
		{"empty slice", []string{}},
		{"nil slice", nil},
		{"blank username", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := client.AddAssignees(context.Background(), "org", "repo", 1, tt.assignees); err == nil {
				t.Errorf("Expected error for assignees %v", tt.assignees)
			}
		})
	}
}
