// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// RepoHit is one repository returned by a repository search.
type RepoHit struct {
	FullName string
	Stars    int
}

// SearchPage is one page of repository search results.
type SearchPage struct {
	Hits []RepoHit
	// NextPage is 0 when there are no more pages.
	NextPage int
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	SearchRepositories(ctx context.Context, query string, page int) (*SearchPage, error)
	FetchStargazerCount(ctx context.Context, nameWithOwner string) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// repositoryStarsQuery fetches the exact stargazer count of one repository.
type repositoryStarsQuery struct {
	Repository struct {
		StargazerCount int
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *zap.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// SearchQuery builds a repository search query from the advanced-search form fields.
// Empty fields are left out.
func SearchQuery(language, stars, size string) string {
	var parts []string
	if language != "" {
		parts = append(parts, "language:"+language)
	}
	if stars != "" {
		parts = append(parts, "stars:"+stars)
	}
	if size != "" {
		parts = append(parts, "size:"+size)
	}
	return strings.Join(parts, " ")
}

// SearchRepositories returns one page of repositories matching query, most stars first.
func (g *GitHubGateway) SearchRepositories(ctx context.Context, query string, page int) (*SearchPage, error) {
	g.logger.Debug("searching repositories", zap.String("query", query), zap.Int("page", page))
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{Page: page, PerPage: 100},
	}
	result, resp, err := g.restClient.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search repositories with REST API: %w", err)
	}
	out := &SearchPage{Hits: make([]RepoHit, 0, len(result.Repositories)), NextPage: resp.NextPage}
	for _, repo := range result.Repositories {
		out.Hits = append(out.Hits, RepoHit{
			FullName: repo.GetFullName(),
			Stars:    repo.GetStargazersCount(),
		})
	}
	return out, nil
}

// FetchStargazerCount returns the exact stargazer count for "owner/name".
func (g *GitHubGateway) FetchStargazerCount(ctx context.Context, nameWithOwner string) (int, error) {
	owner, name, ok := strings.Cut(nameWithOwner, "/")
	if !ok || owner == "" || name == "" {
		return 0, fmt.Errorf("invalid repository name %q: expected owner/name", nameWithOwner)
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	var q repositoryStarsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for %s: %w", nameWithOwner, err)
	}
	return q.Repository.StargazerCount, nil
}
