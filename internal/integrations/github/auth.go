package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// NewClient creates a new GitHub REST client using the provided token.
// If token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, token string) *Client {
	return &Client{
		client: github.NewClient(tokenHTTPClient(ctx, token)),
	}
}

// NewProjectsClient creates a GraphQL client for ProjectV2 operations.
// ProjectV2 has no REST surface, so this always goes through GraphQL.
func NewProjectsClient(ctx context.Context, token string) *ProjectsClient {
	return &ProjectsClient{
		httpClient: tokenHTTPClient(ctx, token),
		endpoint:   graphQLEndpoint,
		token:      token,
	}
}

func tokenHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return nil
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return oauth2.NewClient(ctx, ts)
}
