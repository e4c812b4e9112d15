package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bai-admin/boardbot/internal/core/pipeline"
)

const graphQLEndpoint = "https://api.github.com/graphql"

// projectItemsPageSize bounds the project-membership and linked-issue
// queries. Fifty covers any realistic board membership for one issue and
// any realistic "Closes #" list on one pull request.
const projectItemsPageSize = 50

// ProjectsClient provides access to GitHub's ProjectV2 GraphQL API.
type ProjectsClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// graphQLRequest represents a GraphQL request payload.
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse represents a GraphQL response.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// execute sends a GraphQL query/mutation and returns the response data.
func (c *ProjectsClient) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	reqBody := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = graphQLEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Truncate response body to avoid leaking sensitive data in logs
		truncated := string(respBody)
		if len(truncated) > 200 {
			truncated = truncated[:200] + "..."
		}
		return nil, fmt.Errorf("GraphQL request failed with status %d: %s", resp.StatusCode, truncated)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL error: %s", gqlResp.Errors[0].Message)
	}

	return gqlResp.Data, nil
}

// ItemID returns the project item ID for the given content node within
// the given project, or "" when the content is not on the board.
func (c *ProjectsClient) ItemID(ctx context.Context, projectID, contentID string) (string, error) {
	query := `
		query($id: ID!, $first: Int!) {
			node(id: $id) {
				... on Issue {
					projectItems(first: $first) {
						nodes {
							id
							project {
								id
							}
						}
					}
				}
				... on PullRequest {
					projectItems(first: $first) {
						nodes {
							id
							project {
								id
							}
						}
					}
				}
			}
		}
	`
	variables := map[string]interface{}{
		"id":    contentID,
		"first": projectItemsPageSize,
	}

	data, err := c.execute(ctx, query, variables)
	if err != nil {
		return "", err
	}

	var result struct {
		Node struct {
			ProjectItems struct {
				Nodes []struct {
					ID      string `json:"id"`
					Project struct {
						ID string `json:"id"`
					} `json:"project"`
				} `json:"nodes"`
			} `json:"projectItems"`
		} `json:"node"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to parse project items: %w", err)
	}

	for _, item := range result.Node.ProjectItems.Nodes {
		if item.Project.ID == projectID {
			return item.ID, nil
		}
	}

	return "", nil
}

// AddItem adds a content node (issue or PR) to a project and returns the
// new item ID. Adding content that is already on the board returns the
// existing item.
func (c *ProjectsClient) AddItem(ctx context.Context, projectID, contentID string) (string, error) {
	mutation := `
		mutation($input: AddProjectV2ItemByIdInput!) {
			addProjectV2ItemById(input: $input) {
				item {
					id
				}
			}
		}
	`
	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"projectId": projectID,
			"contentId": contentID,
		},
	}

	data, err := c.execute(ctx, mutation, variables)
	if err != nil {
		return "", err
	}

	var result struct {
		AddProjectV2ItemByID struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to parse added item: %w", err)
	}

	if result.AddProjectV2ItemByID.Item.ID == "" {
		return "", fmt.Errorf("failed to add content %s to project", contentID)
	}

	return result.AddProjectV2ItemByID.Item.ID, nil
}

// EnsureItem returns the project item ID for the content, adding the
// content to the project when it is not on the board yet.
func (c *ProjectsClient) EnsureItem(ctx context.Context, projectID, contentID string) (string, error) {
	itemID, err := c.ItemID(ctx, projectID, contentID)
	if err != nil {
		return "", err
	}
	if itemID != "" {
		return itemID, nil
	}
	return c.AddItem(ctx, projectID, contentID)
}

// SetItemStatus sets a single-select field on a project item. The
// mutation is a plain field write: setting the option already in place
// succeeds without change.
func (c *ProjectsClient) SetItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	mutation := `
		mutation($input: UpdateProjectV2ItemFieldValueInput!) {
			updateProjectV2ItemFieldValue(input: $input) {
				projectV2Item {
					id
				}
			}
		}
	`
	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"projectId": projectID,
			"itemId":    itemID,
			"fieldId":   fieldID,
			"value": map[string]interface{}{
				"singleSelectOptionId": optionID,
			},
		},
	}

	if _, err := c.execute(ctx, mutation, variables); err != nil {
		return err
	}
	return nil
}

// LinkedIssues resolves the issues a pull request declares it closes.
// The set is computed fresh on every call.
func (c *ProjectsClient) LinkedIssues(ctx context.Context, prNodeID string) ([]pipeline.LinkedIssue, error) {
	query := `
		query($id: ID!, $first: Int!) {
			node(id: $id) {
				... on PullRequest {
					closingIssuesReferences(first: $first) {
						nodes {
							id
							number
						}
					}
				}
			}
		}
	`
	variables := map[string]interface{}{
		"id":    prNodeID,
		"first": projectItemsPageSize,
	}

	data, err := c.execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	var result struct {
		Node struct {
			ClosingIssuesReferences struct {
				Nodes []struct {
					ID     string `json:"id"`
					Number int    `json:"number"`
				} `json:"nodes"`
			} `json:"closingIssuesReferences"`
		} `json:"node"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse linked issues: %w", err)
	}

	var issues []pipeline.LinkedIssue
	for _, n := range result.Node.ClosingIssuesReferences.Nodes {
		issues = append(issues, pipeline.LinkedIssue{NodeID: n.ID, Number: n.Number})
	}
	return issues, nil
}

// FieldOption is one choice of a single-select project field.
type FieldOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field is a project field. Options is non-nil only for single-select
// fields.
type Field struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Options []FieldOption `json:"options,omitempty"`
}

// ProjectFields lists a project's fields with their single-select
// options, so deployments can discover the opaque IDs the config needs.
func (c *ProjectsClient) ProjectFields(ctx context.Context, projectID string) ([]Field, error) {
	query := `
		query($projectId: ID!) {
			node(id: $projectId) {
				... on ProjectV2 {
					fields(first: 20) {
						nodes {
							... on ProjectV2Field {
								id
								name
							}
							... on ProjectV2SingleSelectField {
								id
								name
								options {
									id
									name
								}
							}
						}
					}
				}
			}
		}
	`
	variables := map[string]interface{}{
		"projectId": projectID,
	}

	data, err := c.execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	var result struct {
		Node struct {
			Fields struct {
				Nodes []Field `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse project fields: %w", err)
	}

	return result.Node.Fields.Nodes, nil
}
