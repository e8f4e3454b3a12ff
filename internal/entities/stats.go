// Package entities contains core business entities.
package entities

import "sort"

// Stats summarises a list of pull requests. It is always derived, never stored.
type Stats struct {
	TotalPRs          int `json:"totalPRs"`
	TotalRepositories int `json:"totalRepositories"`
	TotalIssuesClosed int `json:"totalIssuesClosed"`
	TotalCommits      int `json:"totalCommits"`
	TotalAdditions    int `json:"totalAdditions"`
	TotalDeletions    int `json:"totalDeletions"`
}

// NewStats computes Stats for prs.
func NewStats(prs []PullRequest) Stats {
	repos := make(map[string]struct{}, len(prs))
	s := Stats{TotalPRs: len(prs)}
	for _, pr := range prs {
		repos[pr.Repository] = struct{}{}
		s.TotalIssuesClosed += len(pr.ClosedIssues)
		s.TotalCommits += pr.Commits
		s.TotalAdditions += pr.Additions
		s.TotalDeletions += pr.Deletions
	}
	s.TotalRepositories = len(repos)
	return s
}

// Repositories returns the distinct repository names of prs in sorted order.
func Repositories(prs []PullRequest) []string {
	seen := make(map[string]struct{}, len(prs))
	res := make([]string, 0)
	for _, pr := range prs {
		if _, ok := seen[pr.Repository]; ok {
			continue
		}
		seen[pr.Repository] = struct{}{}
		res = append(res, pr.Repository)
	}
	sort.Strings(res)
	return res
}
