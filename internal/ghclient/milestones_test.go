package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestonesHandler(body string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/milestones", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})
	return mux
}

func TestResolveMilestoneMostRecentlyUpdated(t *testing.T) {
	tests := map[string]struct {
		body      string
		wantTitle string
	}{
		"maximal updated_at wins": {
			body: `[
				{"number":1,"title":"Release 4.1","updated_at":"2023-01-10T10:00:00Z"},
				{"number":2,"title":"Release 4.2","updated_at":"2023-03-01T10:00:00Z"},
				{"number":3,"title":"Release 4.0","updated_at":"2022-12-01T10:00:00Z"}]`,
			wantTitle: "Release 4.2",
		},
		"ties resolve to the first encountered": {
			body: `[
				{"number":1,"title":"Release A","updated_at":"2023-03-01T10:00:00Z"},
				{"number":2,"title":"Release B","updated_at":"2023-03-01T10:00:00Z"}]`,
			wantTitle: "Release A",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mux := milestonesHandler(tt.body)
			c, _ := newTestClient(t, mux)

			ms, err := c.ResolveMilestone(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, ms.GetTitle())
		})
	}
}

func TestResolveMilestoneByTitle(t *testing.T) {
	body := `[
		{"number":1,"title":"Release 4.1","updated_at":"2023-01-10T10:00:00Z"},
		{"number":2,"title":"Release 4.2","updated_at":"2023-03-01T10:00:00Z"}]`

	t.Run("exact match", func(t *testing.T) {
		mux := milestonesHandler(body)
		c, _ := newTestClient(t, mux)

		ms, err := c.ResolveMilestone(context.Background(), "Release 4.1")
		require.NoError(t, err)
		assert.Equal(t, 1, ms.GetNumber())
	})

	t.Run("not found lists available titles", func(t *testing.T) {
		mux := milestonesHandler(body)
		c, _ := newTestClient(t, mux)

		_, err := c.ResolveMilestone(context.Background(), "Release 9.9")
		var notFound *MilestoneNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Release 9.9", notFound.Requested)
		assert.Equal(t, []string{"Release 4.1", "Release 4.2"}, notFound.Available)
	})
}

func TestOpenMilestonesEmpty(t *testing.T) {
	mux := milestonesHandler(`[]`)
	c, _ := newTestClient(t, mux)

	_, err := c.OpenMilestones(context.Background())
	require.ErrorIs(t, err, ErrNoMilestones)
}

func TestCompareURL(t *testing.T) {
	t.Run("latest release tag", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/org/repo/releases", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"tag_name":"4.1"},{"tag_name":"4.0"}]`)
		})
		c, _ := newTestClient(t, mux)

		url, err := c.CompareURL(context.Background(), "4.2")
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/org/repo/compare/4.1...4.2", url)
	})

	t.Run("no releases", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/org/repo/releases", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.CompareURL(context.Background(), "4.2")
		require.ErrorIs(t, err, ErrNoReleases)
	})
}

func TestCheckRateLimit(t *testing.T) {
	rateBody := func(coreRemaining, searchRemaining int) string {
		return fmt.Sprintf(`{"resources":{
			"core":{"limit":5000,"remaining":%d,"reset":1672531200},
			"search":{"limit":30,"remaining":%d,"reset":1672531200}}}`,
			coreRemaining, searchRemaining)
	}

	tests := map[string]struct {
		body         string
		wantResource string
	}{
		"quota available":  {body: rateBody(4999, 29)},
		"core exhausted":   {body: rateBody(0, 29), wantResource: "core"},
		"search exhausted": {body: rateBody(4999, 0), wantResource: "search"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			c, _ := newTestClient(t, mux)

			err := c.CheckRateLimit(context.Background())
			if tt.wantResource == "" {
				require.NoError(t, err)
				return
			}
			var quota *QuotaError
			require.ErrorAs(t, err, &quota)
			assert.Equal(t, tt.wantResource, quota.Resource)
		})
	}
}
