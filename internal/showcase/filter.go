package showcase

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"portfolio-contributions/internal/entities"
)

// SortMode orders filtered pull requests.
type SortMode string

const (
	// SortRecent orders by merge time, newest first.
	SortRecent SortMode = "recent"
	// SortOldest orders by merge time, oldest first.
	SortOldest SortMode = "oldest"
	// SortAdditions orders by added lines, largest first.
	SortAdditions SortMode = "additions"
	// SortCommits orders by commit count, largest first.
	SortCommits SortMode = "commits"
)

// AllRepositories disables the repository filter.
const AllRepositories = "all"

// ParseSortMode validates s. An empty string means SortRecent.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortRecent, nil
	case SortRecent, SortOldest, SortAdditions, SortCommits:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown sort mode %q", entities.ErrInvalidArgument, s)
	}
}

// Filter selects and orders pull requests locally.
type Filter struct {
	// Repository is an exact owner/name, or AllRepositories / empty for no filtering.
	Repository string
	// Search is matched case-insensitively as a substring.
	Search string
	Sort   SortMode
}

// Apply returns the pull requests of prs matching f, ordered by f.Sort.
// prs is never modified. Ties keep their input order.
func Apply(prs []entities.PullRequest, f Filter) []entities.PullRequest {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	res := make([]entities.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if f.Repository != "" && f.Repository != AllRepositories && pr.Repository != f.Repository {
			continue
		}
		if query != "" && !matches(pr, query) {
			continue
		}
		res = append(res, pr)
	}

	switch f.Sort {
	case SortRecent, "":
		slices.SortStableFunc(res, func(a, b entities.PullRequest) int { return b.MergedAt.Compare(a.MergedAt) })
	case SortOldest:
		slices.SortStableFunc(res, func(a, b entities.PullRequest) int { return a.MergedAt.Compare(b.MergedAt) })
	case SortAdditions:
		slices.SortStableFunc(res, func(a, b entities.PullRequest) int { return cmp.Compare(b.Additions, a.Additions) })
	case SortCommits:
		slices.SortStableFunc(res, func(a, b entities.PullRequest) int { return cmp.Compare(b.Commits, a.Commits) })
	}
	return res
}

// matches expects query already lower-cased.
func matches(pr entities.PullRequest, query string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), query)
	}

	if contains(pr.Title) || contains(pr.Repository) || contains(pr.Author.Login) {
		return true
	}
	if pr.Description != nil && contains(*pr.Description) {
		return true
	}
	for _, l := range pr.Labels {
		if contains(l.Name) {
			return true
		}
	}
	for _, r := range pr.Reviewers {
		if contains(r.Login) {
			return true
		}
	}
	return false
}
