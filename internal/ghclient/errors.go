package ghclient

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for empty API result sets.
var (
	ErrNoMilestones = errors.New("no open milestone was found")
	ErrNoReleases   = errors.New("no release was found")
)

// QuotaError reports an exhausted API rate limit for one quota class.
// Limits reset every hour, so the run aborts instead of waiting.
type QuotaError struct {
	Resource string
	Reset    time.Time
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s API limit reached, retry at %s or use an authentication token",
		e.Resource, e.Reset.Format(time.RFC1123))
}

// UpstreamError is any non-2xx response from the API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("got a non 2xx code from server: %d: %s", e.StatusCode, e.Body)
}

// MilestoneNotFoundError reports a requested milestone missing from the
// open milestones, listing what is available instead.
type MilestoneNotFoundError struct {
	Requested string
	Available []string
}

func (e *MilestoneNotFoundError) Error() string {
	return fmt.Sprintf("requested milestone %q not found, available milestones: [%s]",
		e.Requested, strings.Join(e.Available, ", "))
}
