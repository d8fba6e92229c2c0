// Package changelog turns the merged pull requests of a milestone into a
// markdown changelog document and writes it out.
package changelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v53/github"

	"github.com/forgenotes/changelog-gen/internal/logging"
)

// Client is the part of the github client the generator needs.
type Client interface {
	ResolveMilestone(ctx context.Context, title string) (*github.Milestone, error)
	CompareURL(ctx context.Context, newTag string) (string, error)
	SearchMergedPRs(ctx context.Context, milestoneTitle, label string) ([]*github.Issue, error)
}

// Options configure one generation run.
type Options struct {
	// Milestone is the requested milestone title; empty selects the most
	// recently updated open milestone.
	Milestone string

	// Labels are the group labels, in section order.
	Labels []string

	// HeaderLabels switch on two-level grouping when non-empty and take
	// precedence over plain label grouping.
	HeaderLabels []string

	// Marker selects the marker line renderer when non-empty.
	Marker string

	// UseMilestoneDueDate makes the release date the milestone due date
	// instead of today, when the milestone has one.
	UseMilestoneDueDate bool
}

// Generate produces the changelog lines for the resolved milestone. The
// release tag is the last whitespace-delimited token of the milestone
// title. Pull requests matching the milestone but absent from every
// rendered group are logged as warnings; they never fail the run.
func Generate(ctx context.Context, c Client, opts Options) ([]string, *github.Milestone, error) {
	ms, err := c.ResolveMilestone(ctx, opts.Milestone)
	if err != nil {
		return nil, nil, err
	}
	title := ms.GetTitle()
	tag := releaseTag(title)

	compare, err := c.CompareURL(ctx, tag)
	if err != nil {
		return nil, nil, err
	}

	date := time.Now().Format("2006-01-02")
	if opts.UseMilestoneDueDate && ms.DueOn != nil {
		date = ms.GetDueOn().Time.Format("2006-01-02")
	}

	lines := []string{
		fmt.Sprintf("## %s (%s)", tag, date),
		fmt.Sprintf("[View detailed changelog](%s)", compare),
	}

	g := &Grouper{
		Search: func(ctx context.Context, label string) ([]*github.Issue, error) {
			return c.SearchMergedPRs(ctx, title, label)
		},
		Renderer: NewRenderer(opts.Marker),
	}

	var (
		sections []string
		grouped  map[string]bool
	)
	if len(opts.HeaderLabels) > 0 {
		sections, grouped, err = g.GroupTwoLevel(ctx, opts.HeaderLabels, opts.Labels)
	} else {
		sections, grouped, err = g.GroupByLabel(ctx, opts.Labels)
	}
	if err != nil {
		return nil, nil, err
	}
	lines = append(lines, sections...)
	logging.Infof("total number of pull requests with label: %d", len(grouped))

	unlabeled, err := c.SearchMergedPRs(ctx, title, "")
	if err != nil {
		return nil, nil, err
	}
	for _, pr := range unlabeled {
		if !grouped[pr.GetHTMLURL()] {
			logging.Warningf("pull request not labeled: %s", pr.GetHTMLURL())
		}
	}

	return lines, ms, nil
}

// releaseTag derives the release tag from a milestone title, e.g.
// "Release 4.2" yields "4.2".
func releaseTag(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return title
	}
	return fields[len(fields)-1]
}
