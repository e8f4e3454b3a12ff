package handlers_fiber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-contributions/internal/entities"
	"portfolio-contributions/internal/transport/http/dto"
	"portfolio-contributions/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usecaseMock struct{ mock.Mock }

var _ usecase.InterfaceUsecase = (*usecaseMock)(nil)

func (m *usecaseMock) PullRequests(ctx context.Context) (entities.PullRequestFeed, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.PullRequestFeed), args.Error(1)
}

func (m *usecaseMock) Stats(ctx context.Context) (entities.StatsFeed, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.StatsFeed), args.Error(1)
}

func (m *usecaseMock) Invalidate(ctx context.Context, secret, username string) (time.Time, error) {
	args := m.Called(ctx, secret, username)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *usecaseMock) Warm(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestApp(uc usecase.InterfaceUsecase) *fiber.App {
	app := fiber.New()
	RegisterHandlers(app, NewHandler(zap.NewNop().Sugar(), uc))
	return app
}

func TestGetPullRequests(t *testing.T) {
	uc := &usecaseMock{}
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	uc.On("PullRequests", mock.Anything).Return(entities.PullRequestFeed{
		PullRequests: []entities.PullRequest{
			{ID: 1, Title: "one", Repository: "acme/widgets", MergedAt: at},
			{ID: 2, Title: "two", Repository: "acme/gadgets", MergedAt: at},
		},
		Cached:    true,
		FetchedAt: at,
	}, nil)

	resp, err := newTestApp(uc).Test(httptest.NewRequest(http.MethodGet, "/api/github/pull-requests", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.PullRequestsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.True(t, body.Cached)
	require.Equal(t, 2, body.Count)
	require.Len(t, body.Data, 2)
	require.Equal(t, at.UnixMilli(), body.FetchTime)
	require.True(t, at.Equal(body.Data[0].MergedAt))
}

func TestGetPullRequestsEmptyIsSuccess(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("PullRequests", mock.Anything).Return(entities.PullRequestFeed{PullRequests: []entities.PullRequest{}}, nil)

	resp, err := newTestApp(uc).Test(httptest.NewRequest(http.MethodGet, "/api/github/pull-requests", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.Equal(t, true, raw["success"])
	require.Equal(t, float64(0), raw["count"])
	require.Equal(t, []any{}, raw["data"])
}

func TestGetStats(t *testing.T) {
	uc := &usecaseMock{}
	uc.On("Stats", mock.Anything).Return(entities.StatsFeed{
		Stats:        entities.Stats{TotalPRs: 3, TotalRepositories: 2},
		Repositories: []string{"acme/gadgets", "acme/widgets"},
	}, nil)

	resp, err := newTestApp(uc).Test(httptest.NewRequest(http.MethodGet, "/api/github/stats", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 3, body.Stats.TotalPRs)
	require.Equal(t, []string{"acme/gadgets", "acme/widgets"}, body.Repositories)
}

func TestPostRevalidate(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"ok", `{"secret":"s3cret"}`, nil, http.StatusOK},
		{"ok with username", `{"secret":"s3cret","username":"octocat"}`, nil, http.StatusOK},
		{"bad secret", `{"secret":"nope"}`, entities.ErrUnauthorized, http.StatusUnauthorized},
		{"foreign user", `{"secret":"s3cret","username":"mallory"}`, entities.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var in dto.RevalidateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))

			uc := &usecaseMock{}
			uc.On("Invalidate", mock.Anything, in.Secret, in.Username).Return(now, tt.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/github/revalidate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := newTestApp(uc).Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
			uc.AssertExpectations(t)

			if tt.err == nil {
				var body dto.RevalidateResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				require.True(t, body.Revalidated)
				require.Equal(t, now.UnixMilli(), body.Now)
			}
		})
	}
}

func TestPostRevalidateBadBody(t *testing.T) {
	uc := &usecaseMock{}

	req := httptest.NewRequest(http.MethodPost, "/api/github/revalidate", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := newTestApp(uc).Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
}
