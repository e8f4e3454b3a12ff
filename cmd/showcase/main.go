// Command showcase prints the contributions feed of a running API,
// filtered and sorted the same way the portfolio page does it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"portfolio-contributions/internal/showcase"
	"portfolio-contributions/pkg/logger"
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "API base URL")
		repo    = flag.String("repo", showcase.AllRepositories, "repository full name or \"all\"")
		query   = flag.String("q", "", "case-insensitive search text")
		sort    = flag.String("sort", string(showcase.SortRecent), "recent, oldest, additions or commits")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall deadline including retries")
		level   = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	log, err := logger.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	mode, err := showcase.ParseSortMode(*sort)
	if err != nil {
		log.Errorw("bad sort mode", "sort", *sort, "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	view, err := showcase.NewClient(log, *baseURL, showcase.Options{}).PullRequests(ctx)
	if err != nil {
		log.Errorw("fetch pull requests", "error", err)
		os.Exit(1)
	}

	prs := view.Filter(showcase.Filter{Repository: *repo, Search: *query, Sort: mode})

	s := view.Stats
	fmt.Printf("%d pull requests in %d repositories, %d issues closed, %d commits, +%d/-%d\n",
		s.TotalPRs, s.TotalRepositories, s.TotalIssuesClosed, s.TotalCommits, s.TotalAdditions, s.TotalDeletions)
	if !view.FetchedAt.IsZero() {
		fmt.Printf("fetched %s (cached: %t)\n", view.FetchedAt.Format(time.RFC3339), view.Cached)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MERGED\tREPOSITORY\t#\tTITLE\t+/-\tCOMMITS")
	for _, pr := range prs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t+%d/-%d\t%d\n",
			pr.MergedAt.Format("2006-01-02"), pr.Repository, pr.Number, pr.Title, pr.Additions, pr.Deletions, pr.Commits)
	}
	_ = w.Flush()
}
