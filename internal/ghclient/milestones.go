package ghclient

import (
	"context"
	"fmt"

	"github.com/google/go-github/v53/github"

	"github.com/forgenotes/changelog-gen/internal/logging"
)

// OpenMilestones returns every open milestone of the repository,
// following pagination. It fails with ErrNoMilestones when there are none.
func (c *Client) OpenMilestones(ctx context.Context) ([]*github.Milestone, error) {
	opt := &github.MilestoneListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.Milestone
	for {
		milestones, resp, err := c.c.Issues.ListMilestones(ctx, c.owner, c.repo, opt)
		if err != nil {
			return nil, mapError(resp, err)
		}
		if err := checkRate(resp, "core"); err != nil {
			return nil, err
		}
		all = append(all, milestones...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	if len(all) == 0 {
		return nil, ErrNoMilestones
	}
	logging.Debugf("open milestones found: %d", len(all))
	return all, nil
}

// ResolveMilestone picks the milestone to generate the changelog for.
// A non-empty title must match an open milestone exactly; an empty title
// selects the most recently updated one, first-encountered on ties.
func (c *Client) ResolveMilestone(ctx context.Context, title string) (*github.Milestone, error) {
	open, err := c.OpenMilestones(ctx)
	if err != nil {
		return nil, err
	}

	if title == "" {
		latest := open[0]
		for _, m := range open[1:] {
			if m.GetUpdatedAt().Time.After(latest.GetUpdatedAt().Time) {
				latest = m
			}
		}
		logging.Infof("using most recently updated milestone: %q", latest.GetTitle())
		return latest, nil
	}

	for _, m := range open {
		if m.GetTitle() == title {
			logging.Infof("requested milestone %q found in open milestones", title)
			return m, nil
		}
	}
	available := make([]string, 0, len(open))
	for _, m := range open {
		available = append(available, m.GetTitle())
	}
	return nil, &MilestoneNotFoundError{Requested: title, Available: available}
}

// CompareURL returns the github link comparing the most recently
// published release tag with newTag.
func (c *Client) CompareURL(ctx context.Context, newTag string) (string, error) {
	releases, resp, err := c.c.Repositories.ListReleases(ctx, c.owner, c.repo,
		&github.ListOptions{PerPage: 1})
	if err != nil {
		return "", mapError(resp, err)
	}
	if err := checkRate(resp, "core"); err != nil {
		return "", err
	}
	if len(releases) == 0 {
		return "", ErrNoReleases
	}
	previous := releases[0].GetTagName()
	return fmt.Sprintf("https://github.com/%s/%s/compare/%s...%s", c.owner, c.repo, previous, newTag), nil
}
