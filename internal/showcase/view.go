package showcase

import (
	"time"

	"portfolio-contributions/internal/entities"
)

// View is one fetched result set with its derived statistics.
// Filtering a View never triggers another request.
type View struct {
	PullRequests []entities.PullRequest
	Stats        entities.Stats
	Repositories []string
	Cached       bool
	FetchedAt    time.Time
}

// NewView derives stats and the repository list from feed.
func NewView(feed entities.PullRequestFeed) View {
	prs := feed.PullRequests
	if prs == nil {
		prs = make([]entities.PullRequest, 0)
	}
	return View{
		PullRequests: prs,
		Stats:        entities.NewStats(prs),
		Repositories: entities.Repositories(prs),
		Cached:       feed.Cached,
		FetchedAt:    feed.FetchedAt,
	}
}

// Filter applies f to the full data set.
func (v View) Filter(f Filter) []entities.PullRequest {
	return Apply(v.PullRequests, f)
}
