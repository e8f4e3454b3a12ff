package githubsearch

import (
	"fmt"
	"net/url"
	"strings"

	"portfolio-contributions/internal/entities"

	gh "github.com/google/go-github/v66/github"
)

// Normalize maps one search result item to a PullRequest. Items that cannot
// be identified or dated are rejected with entities.ErrMalformedItem.
func Normalize(item *gh.Issue) (entities.PullRequest, error) {
	if item == nil {
		return entities.PullRequest{}, fmt.Errorf("%w: nil item", entities.ErrMalformedItem)
	}
	if item.GetID() == 0 {
		return entities.PullRequest{}, fmt.Errorf("%w: missing id", entities.ErrMalformedItem)
	}
	if item.ClosedAt == nil || item.ClosedAt.Time.IsZero() {
		return entities.PullRequest{}, fmt.Errorf("%w: item %d has no closed_at", entities.ErrMalformedItem, item.GetID())
	}
	if item.GetHTMLURL() == "" {
		return entities.PullRequest{}, fmt.Errorf("%w: item %d has no html_url", entities.ErrMalformedItem, item.GetID())
	}
	repo, err := RepositoryName(item.GetRepositoryURL())
	if err != nil {
		return entities.PullRequest{}, fmt.Errorf("%w: item %d: %v", entities.ErrMalformedItem, item.GetID(), err)
	}

	labels := make([]entities.Label, 0, len(item.Labels))
	for _, l := range item.Labels {
		if l == nil {
			continue
		}
		labels = append(labels, entities.Label{Name: l.GetName(), Color: l.GetColor()})
	}

	return entities.PullRequest{
		ID:            item.GetID(),
		Number:        item.GetNumber(),
		Title:         item.GetTitle(),
		URL:           item.GetHTMLURL(),
		MergedAt:      item.ClosedAt.Time.UTC(),
		Repository:    repo,
		RepositoryURL: repositoryHTMLURL(item.GetHTMLURL(), repo),
		Labels:        labels,
		ClosedIssues:  ExtractClosedIssues(item.Body, item.GetHTMLURL()),
		Description:   item.Body,
		Author: entities.Account{
			Login:     item.GetUser().GetLogin(),
			AvatarURL: item.GetUser().GetAvatarURL(),
		},
		Reviewers: make([]entities.Account, 0),
	}, nil
}

// RepositoryName returns "owner/name" from the last two segments of an API repository URL.
func RepositoryName(repositoryURL string) (string, error) {
	parts := strings.Split(strings.TrimRight(repositoryURL, "/"), "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("repository url %q has no owner/name", repositoryURL)
	}
	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", fmt.Errorf("repository url %q has no owner/name", repositoryURL)
	}
	return owner + "/" + name, nil
}

// repositoryHTMLURL points at repo on the host that served htmlURL, so
// Enterprise installs link to themselves.
func repositoryHTMLURL(htmlURL, repo string) string {
	u, err := url.Parse(htmlURL)
	if err != nil || u.Host == "" {
		return "https://github.com/" + repo
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + u.Host + "/" + repo
}

func splitRepository(repo string) (owner, name string) {
	owner, name, _ = strings.Cut(repo, "/")
	return owner, name
}
