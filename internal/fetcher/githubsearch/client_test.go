package githubsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"portfolio-contributions/internal/entities"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func searchItem(id int64, number int, repo string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"number": %d,
		"title": "PR %d",
		"html_url": "https://github.com/%s/pull/%d",
		"repository_url": "https://api.github.com/repos/%s",
		"closed_at": "2024-05-0%dT10:00:00Z",
		"body": "closes #%d",
		"user": {"login": "octocat", "avatar_url": "https://avatars/octocat"},
		"labels": [{"name": "bug", "color": "d73a4a"}]
	}`, id, number, id, repo, number, repo, number%9+1, number+100)
}

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL
	c, err := New(zap.NewNop().Sugar(), opts)
	require.NoError(t, err)
	return c
}

func TestFetchMergedPullRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/issues", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "author:octocat type:pr is:merged", q.Get("q"))
		require.Equal(t, "updated", q.Get("sort"))
		require.Equal(t, "desc", q.Get("order"))
		require.Equal(t, "100", q.Get("per_page"))
		require.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"total_count": 2, "items": [%s, %s]}`,
			searchItem(1, 1, "acme/widgets"), searchItem(2, 2, "acme/gadgets"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{Token: "tkn"})
	prs, err := c.FetchMergedPullRequests(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, prs, 2)
	require.Equal(t, "acme/widgets", prs[0].Repository)
	require.Equal(t, "acme/gadgets", prs[1].Repository)
	require.Equal(t, []entities.IssueRef{{Number: 101, URL: "https://github.com/acme/widgets/issues/101"}}, prs[0].ClosedIssues)
}

func TestFetchMergedPullRequestsAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	prs, err := c.FetchMergedPullRequests(context.Background(), "octocat")
	require.NoError(t, err)
	require.NotNil(t, prs)
	require.Empty(t, prs)
}

func TestFetchMergedPullRequestsSkipsMalformedAndDuplicates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"total_count": 4, "items": [%s, {"id": 9, "title": "no dates"}, %s, %s]}`,
			searchItem(1, 1, "acme/widgets"), searchItem(1, 1, "acme/widgets"), searchItem(3, 3, "acme/widgets"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	prs, err := c.FetchMergedPullRequests(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, prs, 2)
	require.Equal(t, int64(1), prs[0].ID)
	require.Equal(t, int64(3), prs[1].ID)
}

func TestFetchMergedPullRequestsPagination(t *testing.T) {
	var calls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/search/issues?page=2>; rel="next", <%s/search/issues?page=3>; rel="last"`, srv.URL, srv.URL))
			fmt.Fprintf(w, `{"total_count": 3, "items": [%s]}`, searchItem(1, 1, "acme/widgets"))
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/search/issues?page=3>; rel="next"`, srv.URL))
			fmt.Fprintf(w, `{"total_count": 3, "items": [%s]}`, searchItem(2, 2, "acme/widgets"))
		default:
			fmt.Fprintf(w, `{"total_count": 3, "items": [%s]}`, searchItem(3, 3, "acme/widgets"))
		}
	}))
	defer srv.Close()

	single := newTestClient(t, srv, Options{})
	prs, err := single.FetchMergedPullRequests(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, prs, 1)
	require.Equal(t, int32(1), calls.Load())

	calls.Store(0)
	multi := newTestClient(t, srv, Options{MaxPages: 5})
	prs, err = multi.FetchMergedPullRequests(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, prs, 3)
	require.Equal(t, int32(3), calls.Load())
}

func TestFetchMergedPullRequestsErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   error
	}{
		{"rate limited", http.StatusTooManyRequests, entities.ErrUpstreamRateLimited},
		{"server error", http.StatusBadGateway, entities.ErrUpstreamUnavailable},
		{"validation", http.StatusUnprocessableEntity, entities.ErrUpstreamUnavailable},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message": "nope"}`)
			}))
			defer srv.Close()

			c := newTestClient(t, srv, Options{})
			_, err := c.FetchMergedPullRequests(context.Background(), "octocat")
			require.ErrorIs(t, err, tt.kind)

			var fe *entities.FetchError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, tt.status, fe.StatusCode)
		})
	}
}

func TestFetchMergedPullRequestsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv, Options{})
	srv.Close()

	_, err := c.FetchMergedPullRequests(context.Background(), "octocat")
	require.ErrorIs(t, err, entities.ErrUpstreamUnavailable)

	var fe *entities.FetchError
	require.True(t, errors.As(err, &fe))
	require.Zero(t, fe.StatusCode)
}

func TestFetchMergedPullRequestsRequiresAuthor(t *testing.T) {
	c, err := New(zap.NewNop().Sugar(), Options{})
	require.NoError(t, err)

	_, err = c.FetchMergedPullRequests(context.Background(), "  ")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestFetchMergedPullRequestsEnrichment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"total_count": 2, "items": [%s, %s]}`,
			searchItem(1, 7, "acme/widgets"), searchItem(2, 8, "acme/widgets"))
	})
	mux.HandleFunc("/repos/acme/widgets/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number": 7, "additions": 120, "deletions": 30, "changed_files": 4, "commits": 3}`)
	})
	mux.HandleFunc("/repos/acme/widgets/pulls/7/reviews", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 1, "user": {"login": "alice", "avatar_url": "https://avatars/alice"}},
			{"id": 2, "user": {"login": "octocat"}},
			{"id": 3, "user": {"login": "bob", "avatar_url": "https://avatars/bob"}},
			{"id": 4, "user": {"login": "alice", "avatar_url": "https://avatars/alice"}}
		]`)
	})
	mux.HandleFunc("/repos/acme/widgets/pulls/8", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, Options{EnrichDetails: true, EnrichConcurrency: 2})
	prs, err := c.FetchMergedPullRequests(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, prs, 2)

	require.Equal(t, 120, prs[0].Additions)
	require.Equal(t, 30, prs[0].Deletions)
	require.Equal(t, 4, prs[0].ChangedFiles)
	require.Equal(t, 3, prs[0].Commits)
	require.Equal(t, []entities.Account{
		{Login: "alice", AvatarURL: "https://avatars/alice"},
		{Login: "bob", AvatarURL: "https://avatars/bob"},
	}, prs[0].Reviewers)

	require.Zero(t, prs[1].Additions)
	require.Empty(t, prs[1].Reviewers)
}
