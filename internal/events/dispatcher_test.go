package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_PublishSubscribe(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)

	var seen []Event
	dispatcher.Subscribe(EventProductAdded, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	event := Event{ID: "1", Type: EventProductAdded, Actor: "alice", Timestamp: time.Now()}
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.Len(t, seen, 1)
	require.Equal(t, "alice", seen[0].Actor)

	// events with no subscribers are dropped silently
	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventDealCreated}))
	require.Len(t, seen, 1)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	var calls int
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{ID: "7", Type: EventUserRegistered}))
	require.Equal(t, 2, calls)

	// the failure surfaces in the log, not in the publish result
	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, string(EventUserRegistered), entries[0].ContextMap()["event_type"])
}
