// Package fetcher provides factory for fetchers.
package fetcher

import (
	"fmt"

	"portfolio-contributions/config"
	"portfolio-contributions/internal/fetcher/githubsearch"

	"go.uber.org/zap"
)

// New constructs the GitHub search fetcher from configuration.
func New(log *zap.SugaredLogger, cfg *config.Config) (PullRequestFetcher, error) {
	c, err := githubsearch.New(log, githubsearch.Options{
		BaseURL:           cfg.GitHub.APIURL,
		Token:             cfg.GitHub.Token,
		PerPage:           cfg.GitHub.PerPage,
		MaxPages:          cfg.GitHub.MaxPages,
		EnrichDetails:     cfg.GitHub.EnrichDetails,
		EnrichConcurrency: cfg.GitHub.EnrichConcurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("github fetcher: %w", err)
	}
	return c, nil
}
