// Package ghclient wraps the GitHub REST API calls needed to generate a
// changelog: rate limit checks, milestone resolution, release lookup and
// paginated pull request search.
package ghclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"

	"github.com/forgenotes/changelog-gen/internal/logging"
)

// Client is a github client scoped to one repository.
type Client struct {
	owner string
	repo  string

	c *github.Client
}

// New returns a client for the given repository. An empty token means
// unauthenticated access, which gets a much lower rate limit.
func New(ctx context.Context, token, owner, repo string) *Client {
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc = oauth2.NewClient(ctx, ts)
	}
	return &Client{owner: owner, repo: repo, c: github.NewClient(tc)}
}

// SetBaseURL points the client at a different API endpoint. Tests use it
// to talk to a local server. The URL must end with a slash.
func (c *Client) SetBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return err
	}
	c.c.BaseURL = u
	return nil
}

// CheckRateLimit fetches the current quota for the core and search API
// classes and fails if either is already exhausted. API limits reset
// every hour, so spacing requests out would make the run unusable;
// exhaustion is fatal instead. A personal access token raises the limits.
func (c *Client) CheckRateLimit(ctx context.Context) error {
	logging.Infof("checking API rate limits")
	limits, resp, err := c.c.RateLimits(ctx)
	if err != nil {
		return mapError(resp, err)
	}

	core, search := limits.GetCore(), limits.GetSearch()
	logging.Infof("core api limit=%d remaining=%d reset=%s", core.Limit, core.Remaining, core.Reset.Time)
	logging.Infof("search api limit=%d remaining=%d reset=%s", search.Limit, search.Remaining, search.Reset.Time)

	if core.Remaining == 0 {
		return &QuotaError{Resource: "core", Reset: core.Reset.Time}
	}
	if search.Remaining == 0 {
		return &QuotaError{Resource: "search", Reset: search.Reset.Time}
	}
	return nil
}

// checkRate inspects the rate headers parsed from a completed response
// and fails when the quota just ran out. Advisory only, no backoff.
func checkRate(resp *github.Response, resource string) error {
	if resp == nil {
		return nil
	}
	logging.Debugf("api rate: limit=%d remaining=%d reset=%s",
		resp.Rate.Limit, resp.Rate.Remaining, resp.Rate.Reset.Time)
	if resp.Rate.Limit > 0 && resp.Rate.Remaining == 0 {
		return &QuotaError{Resource: resource, Reset: resp.Rate.Reset.Time}
	}
	return nil
}

// mapError converts go-github errors into this package's error types.
func mapError(resp *github.Response, err error) error {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return &QuotaError{Resource: "core", Reset: rle.Rate.Reset.Time}
	}
	var ghe *github.ErrorResponse
	if errors.As(err, &ghe) && ghe.Response != nil {
		body := ghe.Message
		if body == "" {
			body = strings.TrimSpace(err.Error())
		}
		return &UpstreamError{StatusCode: ghe.Response.StatusCode, Body: body}
	}
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return &UpstreamError{StatusCode: resp.StatusCode, Body: err.Error()}
	}
	return err
}
