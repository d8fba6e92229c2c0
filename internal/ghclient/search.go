package ghclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v53/github"

	"github.com/forgenotes/changelog-gen/internal/logging"
)

// escapeSearchTerm quotes a search qualifier value when it contains a
// space or a double quote, escaping embedded quotes exactly once. The
// escaping is single-level and never compounds on repeated application
// of qualifiers.
func escapeSearchTerm(v string) string {
	if !strings.ContainsAny(v, ` "`) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// SearchMergedPRs returns all merged pull requests attached to the
// milestone, across every result page. A non-empty label restricts the
// search to that label; an empty label searches for pull requests
// carrying no label at all.
func (c *Client) SearchMergedPRs(ctx context.Context, milestoneTitle, label string) ([]*github.Issue, error) {
	query := fmt.Sprintf("milestone:%s is:pr repo:%s/%s state:closed is:merged",
		escapeSearchTerm(milestoneTitle), c.owner, c.repo)
	if label != "" {
		query += " label:" + escapeSearchTerm(label)
	} else {
		query += " no:label"
	}

	prs, err := c.searchAllPages(ctx, query)
	if err != nil {
		return nil, err
	}
	logging.Infof("milestone: %s, label: %q, count: %d", milestoneTitle, label, len(prs))
	return prs, nil
}

// searchAllPages accumulates every page of a search result in API order.
// The next page is taken from the Link response header as parsed by
// go-github; the paging cursor is opaque, so the loop simply follows the
// rel="next" link until none remains.
func (c *Client) searchAllPages(ctx context.Context, query string) ([]*github.Issue, error) {
	opt := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var all []*github.Issue
	for {
		result, resp, err := c.c.Search.Issues(ctx, query, opt)
		if err != nil {
			return nil, mapError(resp, err)
		}
		if err := checkRate(resp, "search"); err != nil {
			return nil, err
		}
		all = append(all, result.Issues...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}
