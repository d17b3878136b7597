package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codingbarn/barnyard/internal/barn/domain"
)

func TestBarnService_IgniteAndExtinguish(t *testing.T) {
	svc := NewBarnService("main-barn")

	require.Equal(t, domain.StatusOK, svc.Status().Status)
	require.Nil(t, svc.Status().FireStartedAt)

	event := svc.Ignite()
	require.Equal(t, domain.EventFire, event.EventType)
	require.Equal(t, "main-barn", event.BarnID)
	require.NotEmpty(t, event.ID)

	status := svc.Status()
	require.True(t, status.IsOnFire())
	require.NotNil(t, status.FireStartedAt)
	require.WithinDuration(t, time.Now(), *status.FireStartedAt, time.Second)

	out := svc.Extinguish()
	require.Equal(t, domain.EventExtinguished, out.EventType)
	require.False(t, svc.Status().IsOnFire())
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	require.Equal(t, 1, b.Subscribe("http://localhost:1/events"))
	require.Equal(t, 1, b.Subscribe("http://localhost:1/events")) // idempotent
	require.Equal(t, 2, b.Subscribe("http://localhost:2/events"))

	removed, remaining := b.Unsubscribe("http://localhost:1/events")
	require.True(t, removed)
	require.Equal(t, 1, remaining)

	removed, remaining = b.Unsubscribe("http://localhost:1/events")
	require.False(t, removed)
	require.Equal(t, 1, remaining)

	require.Equal(t, []string{"http://localhost:2/events"}, b.Subscribers())
}

func TestBroadcaster_NotifyDeliversToAll(t *testing.T) {
	var received atomic.Int64
	var lastEvent atomic.Value

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event domain.BarnEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		lastEvent.Store(event)
		received.Add(1)
	})

	srvA := httptest.NewServer(handler)
	defer srvA.Close()
	srvB := httptest.NewServer(handler)
	defer srvB.Close()

	b := NewBroadcaster()
	b.Subscribe(srvA.URL + "/events")
	b.Subscribe(srvB.URL + "/events")

	event := NewBarnService("main-barn").Ignite()
	notified := b.Notify(context.Background(), event)

	require.Equal(t, 2, notified)
	require.EqualValues(t, 2, received.Load())
	require.Equal(t, event.ID, lastEvent.Load().(domain.BarnEvent).ID)
}

func TestBroadcaster_NotifySkipsDeadSubscribers(t *testing.T) {
	var received atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
	}))
	defer srv.Close()

	b := NewBroadcaster()
	b.Subscribe("http://127.0.0.1:1/events") // nothing listens here
	b.Subscribe(srv.URL + "/events")

	notified := b.Notify(context.Background(), NewBarnService("main-barn").Ignite())

	// The dead subscriber is skipped, the live one still gets the event.
	require.Equal(t, 1, notified)
	require.EqualValues(t, 1, received.Load())
	require.Len(t, b.Subscribers(), 2)
}
