package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// Config holds the settings for the GitHub client.
type Config struct {
	Token string
	Owner string
	Name  string

	// BaseURL and HTTPClient override the API endpoint and transport. Set by
	// tests; leave zero in production.
	BaseURL    string
	HTTPClient *http.Client
}

// Client creates issues in a single configured GitHub repository.
type Client struct {
	gh    *github.Client
	owner string
	name  string
}

// NewClient creates a GitHub API client authenticated with the configured
// token.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, src)
	}

	gh := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		gh.BaseURL = base
	}

	return &Client{gh: gh, owner: cfg.Owner, name: cfg.Name}, nil
}

// Repository returns the target repository in owner/name form.
func (c *Client) Repository() string {
	return c.owner + "/" + c.name
}

// CreateIssue creates an issue with the composed fields in the configured
// repository. API failures are returned as domain.TrackerError with the
// upstream detail intact.
func (c *Client) CreateIssue(ctx context.Context, issue domain.ComposedIssue) (*domain.CreatedIssue, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(issue.Title),
		Body:  github.Ptr(issue.Body),
	}
	if len(issue.Labels) > 0 {
		req.Labels = &issue.Labels
	}
	if len(issue.Assignees) > 0 {
		req.Assignees = &issue.Assignees
	}

	created, _, err := c.gh.Issues.Create(ctx, c.owner, c.name, req)
	if err != nil {
		return nil, &domain.TrackerError{Err: err}
	}

	return &domain.CreatedIssue{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
	}, nil
}

// CheckRepository verifies the configured repository is reachable with the
// current credentials.
func (c *Client) CheckRepository(ctx context.Context) error {
	if _, _, err := c.gh.Repositories.Get(ctx, c.owner, c.name); err != nil {
		return &domain.TrackerError{Err: err}
	}
	return nil
}
