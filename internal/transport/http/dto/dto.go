// Package dto contains the JSON shapes of the HTTP API.
package dto

import "time"

// PullRequest is the wire form of a merged pull request.
type PullRequest struct {
	ID            int64      `json:"id"`
	Number        int        `json:"number,omitempty"`
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

// Label is a PR label.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// IssueRef is a closed issue reference.
type IssueRef struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Account is a user reference.
type Account struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

// PullRequestsResponse is returned by GET /api/github/pull-requests.
// FetchTime is the Unix time in milliseconds at which Data was fetched.
type PullRequestsResponse struct {
	Success   bool          `json:"success"`
	Data      []PullRequest `json:"data"`
	Count     int           `json:"count"`
	Cached    bool          `json:"cached"`
	FetchTime int64         `json:"fetchTime"`
}

// Stats mirrors entities.Stats on the wire.
type Stats struct {
	TotalPRs          int `json:"totalPRs"`
	TotalRepositories int `json:"totalRepositories"`
	TotalIssuesClosed int `json:"totalIssuesClosed"`
	TotalCommits      int `json:"totalCommits"`
	TotalAdditions    int `json:"totalAdditions"`
	TotalDeletions    int `json:"totalDeletions"`
}

// StatsResponse is returned by GET /api/github/stats.
type StatsResponse struct {
	Success      bool     `json:"success"`
	Stats        Stats    `json:"stats"`
	Repositories []string `json:"repositories"`
	Cached       bool     `json:"cached"`
	FetchTime    int64    `json:"fetchTime"`
}

// RevalidateRequest is the body of POST /api/github/revalidate.
type RevalidateRequest struct {
	Secret   string `json:"secret"`
	Username string `json:"username,omitempty"`
}

// RevalidateResponse confirms an invalidation.
type RevalidateResponse struct {
	Success     bool  `json:"success"`
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
