package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingbarn/barnyard/internal/barn/domain"
	"github.com/codingbarn/barnyard/internal/barn/service"
)

func newTestBarn(t *testing.T) *Router {
	t.Helper()

	r := NewRouter("test", slog.New(slog.DiscardHandler))
	r.BarnService = service.NewBarnService("main-barn")
	r.FragileService = service.NewBarnService("fragile-barn")
	r.Broadcaster = service.NewBroadcaster()
	r.ApplyRoutes()
	return r
}

func do(r *Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBarn_StatusLifecycle(t *testing.T) {
	r := newTestBarn(t)

	rec := do(r, http.MethodGet, "/barn/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status domain.BarnStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, domain.StatusOK, status.Status)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/barn/ignite").Code)

	rec = do(r, http.MethodGet, "/barn/status")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.True(t, status.IsOnFire())
	require.NotNil(t, status.FireStartedAt)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/barn/extinguish").Code)

	rec = do(r, http.MethodGet, "/barn/status")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.False(t, status.IsOnFire())
}

func TestBarn_SubscribeNotify(t *testing.T) {
	var events atomic.Int64
	sub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event domain.BarnEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		require.Equal(t, domain.EventFire, event.EventType)
		events.Add(1)
	}))
	defer sub.Close()

	r := newTestBarn(t)

	callback := url.QueryEscape(sub.URL + "/events")
	rec := do(r, http.MethodPost, "/barn/subscribe?callbackUrl="+callback)
	require.Equal(t, http.StatusOK, rec.Code)

	var subResp SubscriptionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subResp))
	require.True(t, subResp.Subscribed)
	require.Equal(t, 1, subResp.TotalSubscribers)

	do(r, http.MethodPost, "/barn/ignite")
	require.EqualValues(t, 1, events.Load())

	// Unsubscribe, ignite again, no further deliveries.
	do(r, http.MethodPost, "/barn/unsubscribe?callbackUrl="+callback)
	do(r, http.MethodPost, "/barn/ignite")
	require.EqualValues(t, 1, events.Load())
}

func TestBarn_SubscribeRequiresCallback(t *testing.T) {
	r := newTestBarn(t)

	rec := do(r, http.MethodPost, "/barn/subscribe")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFragileBarn_OverloadsAfterSixRequests(t *testing.T) {
	r := newTestBarn(t)

	for i := range 6 {
		rec := do(r, http.MethodGet, "/fragile-barn/status")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := do(r, http.MethodGet, "/fragile-barn/status")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "System overloaded")
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
