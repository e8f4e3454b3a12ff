// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"time"

	"portfolio-contributions/internal/entities"
	"portfolio-contributions/internal/transport/http/dto"
)

// ToDTOPull maps entities.PullRequest to transport model.
func ToDTOPull(pr entities.PullRequest) dto.PullRequest {
	labels := make([]dto.Label, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, dto.Label{Name: l.Name, Color: l.Color})
	}
	issues := make([]dto.IssueRef, 0, len(pr.ClosedIssues))
	for _, i := range pr.ClosedIssues {
		issues = append(issues, dto.IssueRef{Number: i.Number, URL: i.URL})
	}
	reviewers := make([]dto.Account, 0, len(pr.Reviewers))
	for _, r := range pr.Reviewers {
		reviewers = append(reviewers, dto.Account{Login: r.Login, AvatarURL: r.AvatarURL})
	}

	return dto.PullRequest{
		ID:            pr.ID,
		Number:        pr.Number,
		Title:         pr.Title,
		URL:           pr.URL,
		MergedAt:      pr.MergedAt,
		Repository:    pr.Repository,
		RepositoryURL: pr.RepositoryURL,
		Labels:        labels,
		ClosedIssues:  issues,
		Description:   pr.Description,
		Additions:     pr.Additions,
		Deletions:     pr.Deletions,
		ChangedFiles:  pr.ChangedFiles,
		Commits:       pr.Commits,
		Author:        dto.Account{Login: pr.Author.Login, AvatarURL: pr.Author.AvatarURL},
		Reviewers:     reviewers,
	}
}

// FromDTOPull builds an entities.PullRequest from transport DTO.
func FromDTOPull(src dto.PullRequest) entities.PullRequest {
	labels := make([]entities.Label, 0, len(src.Labels))
	for _, l := range src.Labels {
		labels = append(labels, entities.Label{Name: l.Name, Color: l.Color})
	}
	issues := make([]entities.IssueRef, 0, len(src.ClosedIssues))
	for _, i := range src.ClosedIssues {
		issues = append(issues, entities.IssueRef{Number: i.Number, URL: i.URL})
	}
	reviewers := make([]entities.Account, 0, len(src.Reviewers))
	for _, r := range src.Reviewers {
		reviewers = append(reviewers, entities.Account{Login: r.Login, AvatarURL: r.AvatarURL})
	}

	return entities.PullRequest{
		ID:            src.ID,
		Number:        src.Number,
		Title:         src.Title,
		URL:           src.URL,
		MergedAt:      src.MergedAt,
		Repository:    src.Repository,
		RepositoryURL: src.RepositoryURL,
		Labels:        labels,
		ClosedIssues:  issues,
		Description:   src.Description,
		Additions:     src.Additions,
		Deletions:     src.Deletions,
		ChangedFiles:  src.ChangedFiles,
		Commits:       src.Commits,
		Author:        entities.Account{Login: src.Author.Login, AvatarURL: src.Author.AvatarURL},
		Reviewers:     reviewers,
	}
}

// ToDTOPullList maps a slice of entities.PullRequest to transport slice.
func ToDTOPullList(list []entities.PullRequest) []dto.PullRequest {
	res := make([]dto.PullRequest, 0, len(list))
	for _, pr := range list {
		res = append(res, ToDTOPull(pr))
	}
	return res
}

// FromDTOPullList maps transport PRs back to entities.
func FromDTOPullList(list []dto.PullRequest) []entities.PullRequest {
	res := make([]entities.PullRequest, 0, len(list))
	for _, pr := range list {
		res = append(res, FromDTOPull(pr))
	}
	return res
}

// ToPullRequestsResponse builds the aggregation endpoint body.
func ToPullRequestsResponse(feed entities.PullRequestFeed) dto.PullRequestsResponse {
	return dto.PullRequestsResponse{
		Success:   true,
		Data:      ToDTOPullList(feed.PullRequests),
		Count:     len(feed.PullRequests),
		Cached:    feed.Cached,
		FetchTime: unixMilli(feed.FetchedAt),
	}
}

// ToStatsResponse builds the stats endpoint body.
func ToStatsResponse(feed entities.StatsFeed) dto.StatsResponse {
	repos := feed.Repositories
	if repos == nil {
		repos = make([]string, 0)
	}
	return dto.StatsResponse{
		Success:      true,
		Stats:        dto.Stats(feed.Stats),
		Repositories: repos,
		Cached:       feed.Cached,
		FetchTime:    unixMilli(feed.FetchedAt),
	}
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
