// Package entities contains core business entities.
package entities

import "time"

// PullRequest is a merged pull request authored by the tracked account.
// Values are treated as immutable once normalized.
type PullRequest struct {
	ID            int64      `json:"id"`
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	MergedAt      time.Time  `json:"mergedAt"`
	Repository    string     `json:"repository"`
	RepositoryURL string     `json:"repositoryUrl"`
	Labels        []Label    `json:"labels"`
	ClosedIssues  []IssueRef `json:"closedIssues"`
	Description   *string    `json:"description"`
	Additions     int        `json:"additions"`
	Deletions     int        `json:"deletions"`
	ChangedFiles  int        `json:"changedFiles"`
	Commits       int        `json:"commits"`
	Author        Account    `json:"author"`
	Reviewers     []Account  `json:"reviewers"`
}

// Label is a repository label attached to a PR, in display order.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// IssueRef points to an issue the PR claims to close.
type IssueRef struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Account is a code-hosting user.
type Account struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

// Snapshot is the last successful fetch for an author.
type Snapshot struct {
	Author       string
	PullRequests []PullRequest
	FetchedAt    time.Time
}

// PullRequestFeed is what the aggregation layer serves to readers.
type PullRequestFeed struct {
	PullRequests []PullRequest
	Cached       bool
	FetchedAt    time.Time
}

// StatsFeed is the derived statistics view of a PullRequestFeed.
type StatsFeed struct {
	Stats        Stats
	Repositories []string
	Cached       bool
	FetchedAt    time.Time
}
