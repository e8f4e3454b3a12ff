package showcase

import (
	"testing"
	"time"

	"portfolio-contributions/internal/entities"

	"github.com/stretchr/testify/require"
)

func sample() []entities.PullRequest {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	desc := "Speeds up the checkout flow"
	return []entities.PullRequest{
		{
			ID: 1, Title: "Add menu", Repository: "jonas/fast-react-pizza",
			MergedAt: base.Add(48 * time.Hour), Additions: 10, Commits: 5,
			Author: entities.Account{Login: "octocat"},
		},
		{
			ID: 2, Title: "Fix typo", Repository: "acme/widgets",
			MergedAt: base, Additions: 300, Commits: 1,
			Labels:    []entities.Label{{Name: "documentation"}},
			Author:    entities.Account{Login: "octocat"},
			Reviewers: []entities.Account{{Login: "Hubot"}},
		},
		{
			ID: 3, Title: "Cache results", Repository: "acme/widgets", Description: &desc,
			MergedAt: base.Add(24 * time.Hour), Additions: 50, Commits: 9,
			Author: entities.Account{Login: "octocat"},
		},
	}
}

func ids(prs []entities.PullRequest) []int64 {
	res := make([]int64, 0, len(prs))
	for _, pr := range prs {
		res = append(res, pr.ID)
	}
	return res
}

func TestApplyAllReturnsEverything(t *testing.T) {
	prs := sample()
	require.Len(t, Apply(prs, Filter{Repository: AllRepositories}), len(prs))
	require.Len(t, Apply(prs, Filter{}), len(prs))
}

func TestApplyRepository(t *testing.T) {
	require.Equal(t, []int64{3, 2}, ids(Apply(sample(), Filter{Repository: "acme/widgets"})))
	require.Empty(t, Apply(sample(), Filter{Repository: "acme"}))
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	for _, q := range []string{"pizza", "PIZZA", "  Pizza "} {
		got := Apply(sample(), Filter{Repository: AllRepositories, Search: q})
		require.Equal(t, []int64{1}, ids(got), q)
	}
}

func TestApplySearchFields(t *testing.T) {
	tests := []struct {
		query string
		want  []int64
	}{
		{"typo", []int64{2}},
		{"checkout", []int64{3}},
		{"DOCUMENTATION", []int64{2}},
		{"hubot", []int64{2}},
		{"octocat", []int64{1, 3, 2}},
		{"nothing-matches", []int64{}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ids(Apply(sample(), Filter{Search: tt.query})), tt.query)
	}
}

func TestApplySortModes(t *testing.T) {
	tests := []struct {
		mode SortMode
		want []int64
	}{
		{SortRecent, []int64{1, 3, 2}},
		{SortOldest, []int64{2, 3, 1}},
		{SortAdditions, []int64{2, 3, 1}},
		{SortCommits, []int64{3, 1, 2}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ids(Apply(sample(), Filter{Sort: tt.mode})), string(tt.mode))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	prs := sample()
	_ = Apply(prs, Filter{Sort: SortAdditions})
	require.Equal(t, []int64{1, 2, 3}, ids(prs))
}

func TestApplyCombined(t *testing.T) {
	got := Apply(sample(), Filter{Repository: "acme/widgets", Search: "octocat", Sort: SortOldest})
	require.Equal(t, []int64{2, 3}, ids(got))
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode("")
	require.NoError(t, err)
	require.Equal(t, SortRecent, m)

	m, err = ParseSortMode("Commits")
	require.NoError(t, err)
	require.Equal(t, SortCommits, m)

	_, err = ParseSortMode("stars")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestViewFilterRoundTrip(t *testing.T) {
	feed := entities.PullRequestFeed{PullRequests: sample(), Cached: true}
	v := NewView(feed)

	require.Len(t, v.Filter(Filter{Repository: AllRepositories}), len(feed.PullRequests))
	require.Equal(t, 3, v.Stats.TotalPRs)
	require.Equal(t, 2, v.Stats.TotalRepositories)
	require.Equal(t, []string{"acme/widgets", "jonas/fast-react-pizza"}, v.Repositories)
	require.True(t, v.Cached)
}

func TestNewViewEmpty(t *testing.T) {
	v := NewView(entities.PullRequestFeed{})
	require.NotNil(t, v.PullRequests)
	require.Empty(t, v.Filter(Filter{}))
	require.Zero(t, v.Stats.TotalPRs)
}
