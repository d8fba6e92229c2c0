package changelog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v53/github"
)

// SearchFunc fetches the merged pull requests carrying one label. An
// empty label selects pull requests with no label at all.
type SearchFunc func(ctx context.Context, label string) ([]*github.Issue, error)

// Grouper partitions pull requests into ordered changelog sections.
type Grouper struct {
	Search   SearchFunc
	Renderer LineRenderer
}

// GroupByLabel runs one search per configured label, in order, and
// renders a section for every label that matched at least one pull
// request. The empty label renders its lines without a heading. It
// returns the section lines and the set of pull request URLs placed in
// any section.
func (g *Grouper) GroupByLabel(ctx context.Context, labels []string) ([]string, map[string]bool, error) {
	var lines []string
	grouped := make(map[string]bool)
	for _, label := range labels {
		prs, err := g.Search(ctx, label)
		if err != nil {
			return nil, nil, err
		}
		if len(prs) == 0 {
			continue
		}
		if label != "" {
			lines = append(lines, fmt.Sprintf("\n**%s**\n", strings.ToUpper(label)))
		}
		for _, pr := range prs {
			grouped[pr.GetHTMLURL()] = true
		}
		lines = append(lines, g.Renderer.Lines(prs)...)
	}
	return lines, grouped, nil
}

// GroupTwoLevel searches each header label and partitions its pull
// requests by the group labels they carry. A pull request lands in every
// matching bucket; bucket order is the order labels are first seen while
// walking the pull requests. The per-header heading is emitted only when
// more than one header label is configured.
func (g *Grouper) GroupTwoLevel(ctx context.Context, headerLabels, labels []string) ([]string, map[string]bool, error) {
	recognized := make(map[string]bool, len(labels))
	for _, l := range labels {
		recognized[l] = true
	}

	var lines []string
	grouped := make(map[string]bool)
	for _, header := range headerLabels {
		prs, err := g.Search(ctx, header)
		if err != nil {
			return nil, nil, err
		}
		if len(prs) == 0 {
			continue
		}

		buckets := make(map[string][]*github.Issue)
		var order []string
		for _, pr := range prs {
			for _, l := range pr.Labels {
				name := l.GetName()
				if !recognized[name] {
					continue
				}
				if _, ok := buckets[name]; !ok {
					order = append(order, name)
				}
				buckets[name] = append(buckets[name], pr)
				grouped[pr.GetHTMLURL()] = true
			}
		}
		if len(order) == 0 {
			continue
		}

		if len(headerLabels) > 1 {
			lines = append(lines, fmt.Sprintf("\n### %s\n", strings.ToUpper(header)))
		}
		for _, name := range order {
			lines = append(lines, fmt.Sprintf("\n**%s**\n", strings.ToUpper(name)))
			lines = append(lines, g.Renderer.Lines(buckets[name])...)
		}
	}
	return lines, grouped, nil
}
