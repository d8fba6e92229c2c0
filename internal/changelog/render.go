package changelog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-github/v53/github"
)

const compatWarning = "**WARNING: Breaks compatibility with previous version.** "

// LineRenderer turns pull requests into changelog lines, applying any
// project-specific ordering.
type LineRenderer interface {
	Lines(prs []*github.Issue) []string
}

// NewRenderer selects the renderer for a project. A non-empty marker
// substring switches on the marker renderer.
func NewRenderer(marker string) LineRenderer {
	if marker != "" {
		return &markerRenderer{marker: marker}
	}
	return defaultRenderer{}
}

// defaultRenderer emits one line per pull request, in API order.
type defaultRenderer struct{}

func (defaultRenderer) Lines(prs []*github.Issue) []string {
	lines := make([]string, 0, len(prs))
	for _, pr := range prs {
		lines = append(lines, fmt.Sprintf(" - %s. %s[View pull request](%s)",
			pr.GetTitle(), compatNote(pr), pr.GetHTMLURL()))
	}
	return lines
}

// markerRenderer prefixes each line with the sorted labels carrying the
// project's marker substring. Lines are ordered by the tuple (marker
// labels, pull request number, rendered text); pull requests without any
// marker label sort after all that have one.
type markerRenderer struct {
	marker string
}

func (r *markerRenderer) Lines(prs []*github.Issue) []string {
	type entry struct {
		labels []string
		number int
		text   string
	}

	entries := make([]entry, 0, len(prs))
	for _, pr := range prs {
		labels := r.markerLabels(pr)
		var text string
		if len(labels) > 0 {
			text = fmt.Sprintf(" - **%s:** %s. %s[View pull request](%s)",
				strings.Join(labels, ","), pr.GetTitle(), compatNote(pr), pr.GetHTMLURL())
		} else {
			text = fmt.Sprintf(" - %s. %s[View pull request](%s)",
				pr.GetTitle(), compatNote(pr), pr.GetHTMLURL())
		}
		entries = append(entries, entry{labels: labels, number: pr.GetNumber(), text: text})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := compareLabelSets(entries[i].labels, entries[j].labels); c != 0 {
			return c < 0
		}
		if entries[i].number != entries[j].number {
			return entries[i].number < entries[j].number
		}
		return entries[i].text < entries[j].text
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.text)
	}
	return lines
}

// markerLabels returns the pull request's labels containing the marker
// substring, sorted lexicographically.
func (r *markerRenderer) markerLabels(pr *github.Issue) []string {
	var labels []string
	for _, l := range pr.Labels {
		if strings.Contains(l.GetName(), r.marker) {
			labels = append(labels, l.GetName())
		}
	}
	sort.Strings(labels)
	return labels
}

// compareLabelSets orders label lists lexicographically, element by
// element. The empty list sorts after any non-empty one.
func compareLabelSets(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// compatNote returns the compatibility warning when the pull request
// carries a label literally named "compatibility".
func compatNote(pr *github.Issue) string {
	for _, l := range pr.Labels {
		if l.GetName() == "compatibility" {
			return compatWarning
		}
	}
	return ""
}
