package githubsearch

import (
	"context"
	"errors"

	"portfolio-contributions/internal/entities"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"
)

// enrich fills per-PR size statistics and reviewers. Failures leave the
// search-derived defaults in place.
func (c *Client) enrich(ctx context.Context, prs []entities.PullRequest) {
	var g errgroup.Group
	g.SetLimit(c.opts.EnrichConcurrency)

	for i := range prs {
		pr := &prs[i]
		g.Go(func() error {
			if err := c.enrichOne(ctx, pr); err != nil {
				c.log.Warnw("pull request enrichment failed",
					"repository", pr.Repository, "number", pr.Number, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Client) enrichOne(ctx context.Context, pr *entities.PullRequest) error {
	if pr.Number == 0 {
		return errors.New("missing pull request number")
	}
	owner, name := splitRepository(pr.Repository)

	detail, _, err := c.gh.PullRequests.Get(ctx, owner, name, pr.Number)
	if err != nil {
		return classify(err)
	}
	pr.Additions = detail.GetAdditions()
	pr.Deletions = detail.GetDeletions()
	pr.ChangedFiles = detail.GetChangedFiles()
	pr.Commits = detail.GetCommits()

	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, owner, name, pr.Number, &gh.ListOptions{PerPage: maxPerPage})
	if err != nil {
		return classify(err)
	}
	pr.Reviewers = reviewersFrom(reviews, pr.Author.Login)
	return nil
}

// reviewersFrom returns distinct review authors in first-review order, without the PR author.
func reviewersFrom(reviews []*gh.PullRequestReview, author string) []entities.Account {
	res := make([]entities.Account, 0, len(reviews))
	seen := map[string]struct{}{author: {}}
	for _, r := range reviews {
		login := r.GetUser().GetLogin()
		if login == "" {
			continue
		}
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		res = append(res, entities.Account{Login: login, AvatarURL: r.GetUser().GetAvatarURL()})
	}
	return res
}
