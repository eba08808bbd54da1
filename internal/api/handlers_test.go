package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"fanpulse/internal/api"
	"fanpulse/internal/core"
	"fanpulse/internal/fans"
)

type fakeUsers struct {
	users map[int64]core.User
}

func (f *fakeUsers) Get(_ context.Context, id int64) (core.User, error) {
	user, ok := f.users[id]
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetMany(_ context.Context, _ []int64) (map[int64]core.User, error) {
	return nil, nil
}

func (f *fakeUsers) ActivePassions(_ context.Context, _ int64) ([]string, error) {
	return nil, nil
}

func (f *fakeUsers) FolloweeIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeUsers) AddScores(_ context.Context, _ int64, _, _ int) error {
	return nil
}

type fakeFans struct {
	statuses map[int64]core.FanStatus
}

func (f *fakeFans) Get(_ context.Context, fanID, _ int64) (core.FanStatus, error) {
	status, ok := f.statuses[fanID]
	if !ok {
		return core.FanStatus{}, core.ErrNotFound
	}
	return status, nil
}

func (f *fakeFans) Increment(_ context.Context, _, _ int64, _ core.InteractionType, initialTier string) (core.FanCounters, error) {
	return core.FanCounters{TotalInteractions: 1, CurrentTier: initialTier}, nil
}

func (f *fakeFans) SetTier(_ context.Context, _, _ int64, _ string, _ time.Time) error {
	return nil
}

func (f *fakeFans) TopFans(_ context.Context, _ int64, _ int) ([]core.FanStatus, error) {
	return nil, nil
}

type fakePublisher struct {
	published int
	err       error
}

func (f *fakePublisher) PublishInteraction(_ context.Context, _ string, _ []byte) error {
	f.published++
	return f.err
}

func newRouter(publisher *fakePublisher) chi.Router {
	handlers := &api.Handlers{
		Logger: slog.New(slog.DiscardHandler),
		Fans: &fans.Engine{
			Logger: slog.New(slog.DiscardHandler),
			Fans:   &fakeFans{},
			Users:  &fakeUsers{users: map[int64]core.User{1: {ID: 1}, 2: {ID: 2}}},
		},
		Publisher: publisher,
	}

	r := chi.NewMux()
	handlers.Routes(r)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFanStatusRoute(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakePublisher{})

	rec := doRequest(t, r, http.MethodGet, "/v1/fans/2/status", "", map[string]string{"X-User-ID": "1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var status fans.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "new", status.Tier)
	require.EqualValues(t, 10, status.NextTierThreshold)
}

func TestMissingCallerHeader(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakePublisher{})

	rec := doRequest(t, r, http.MethodGet, "/v1/fans/2/status", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.False(t, envelope.Success)
	require.Equal(t, "invalid_input", envelope.Error.Code)
	require.Contains(t, envelope.Error.Message, "X-User-ID")
}

func TestMalformedPathAndQuery(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakePublisher{})
	headers := map[string]string{"X-User-ID": "1"}

	rec := doRequest(t, r, http.MethodPost, "/v1/fans/abc/interactions", `{"type": "comment"}`, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/v1/fans/2/leaderboard?limit=abc", "", headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogFanInteractionRoute(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakePublisher{})

	rec := doRequest(t, r, http.MethodPost, "/v1/fans/2/interactions", `{"type": "comment"}`,
		map[string]string{"X-User-ID": "1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var status fans.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.EqualValues(t, 1, status.TotalInteractions)

	rec = doRequest(t, r, http.MethodPost, "/v1/fans/2/interactions", `{"type": "lurk"}`,
		map[string]string{"X-User-ID": "1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackInteractionRoute(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}
	r := newRouter(publisher)

	rec := doRequest(t, r, http.MethodPost, "/v1/interactions",
		`{"postId": 10, "type": "view", "durationSeconds": 30}`,
		map[string]string{"X-User-ID": "1"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, 1, publisher.published)

	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.ID)
}

func TestTrackInteractionPublishFailure(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakePublisher{err: errors.New("nats is down")})

	rec := doRequest(t, r, http.MethodPost, "/v1/interactions",
		`{"postId": 10, "type": "view"}`,
		map[string]string{"X-User-ID": "1"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "storage temporarily unavailable", envelope.Error.Message)
}
