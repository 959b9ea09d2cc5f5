package eventbus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupsReplaced struct {
	dataset string
}

type unrelated struct {
	dataset string
}

func testLogger(buf *bytes.Buffer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.WarnLevel)
	return log
}

func TestPublisher_DeliversToMatchingSubscriber(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventPublisher(testLogger(&buf))

	var got string
	bus.Subscribe(func(e *groupsReplaced) {
		got = e.dataset
	})
	bus.Publish(&groupsReplaced{dataset: "domain_groups"})

	assert.Equal(t, "domain_groups", got)
	assert.Empty(t, buf.String())
}

func TestPublisher_LogsWhenNoSubscriberMatches(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventPublisher(testLogger(&buf))

	bus.Subscribe(func(e *groupsReplaced) {
		t.Error("should not be called")
	})
	bus.Publish(&unrelated{dataset: "countries"})

	require.NotEmpty(t, buf.String())
	assert.True(t, strings.Contains(buf.String(), "no subscribers matched"))
}

func TestPublisher_RecoversFromHandlerPanic(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventPublisher(testLogger(&buf))

	bus.Subscribe(func(e *groupsReplaced) {
		panic("boom")
	})
	bus.Publish(&groupsReplaced{dataset: "domain_groups"})

	assert.True(t, strings.Contains(buf.String(), "panicked"))
}

func TestPublisher_Unsubscribe(t *testing.T) {
	bus := NewEventPublisher(nil)
	handler := func(e *groupsReplaced) {}
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	// Func values are uncomparable; removal must not panic on ==.
	require.NotPanics(t, func() {
		bus.Unsubscribe(handler)
	})
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestPublisher_UnsubscribeRemovesOnlyTheGivenHandler(t *testing.T) {
	bus := NewEventPublisher(nil)

	var first, second int
	keep := func(e *groupsReplaced) { first++ }
	drop := func(e *groupsReplaced) { second++ }
	bus.Subscribe(keep)
	bus.Subscribe(drop)

	bus.Unsubscribe(drop)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Publish(&groupsReplaced{dataset: "domain_groups"})
	assert.Equal(t, 1, first)
	assert.Zero(t, second)

	// Unsubscribing a handler that was never registered is a no-op.
	bus.Unsubscribe(func(e *groupsReplaced) {})
	assert.Equal(t, 1, bus.SubscribersCount())
}

func TestMatches(t *testing.T) {
	assert.True(t, matches(func(e *groupsReplaced) {}, []any{&groupsReplaced{}}))
	assert.False(t, matches(func(e *groupsReplaced) {}, []any{&unrelated{}}))
	assert.False(t, matches(func(e *groupsReplaced) {}, []any{}))
	assert.False(t, matches("not a func", []any{&groupsReplaced{}}))
}
