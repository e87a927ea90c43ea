package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	seq int
}

func (e testEvent) Name() string { return "test.event" }

func receive(t *testing.T, sub *Subscription) testEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "канал подписки закрыт")
		return ev.(testEvent)
	case <-time.After(time.Second):
		t.Fatal("событие не получено")
	}
	return testEvent{}
}

func TestBus_EverySubscriberReceivesEveryEvent(t *testing.T) {
	bus := New(zap.NewNop())
	subs := []*Subscription{bus.Subscribe(8), bus.Subscribe(8), bus.Subscribe(8)}

	for i := 1; i <= 3; i++ {
		bus.Publish(context.Background(), testEvent{seq: i})
	}

	for _, sub := range subs {
		for i := 1; i <= 3; i++ {
			assert.Equal(t, i, receive(t, sub).seq, "порядок событий должен сохраняться")
		}
	}
}

func TestBus_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	bus := New(zap.NewNop())
	slow := bus.Subscribe(1)
	fast := bus.Subscribe(16)

	done := make(chan struct{})
	go func() {
		for i := 1; i <= 10; i++ {
			bus.Publish(context.Background(), testEvent{seq: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish заблокировался на медленном подписчике")
	}

	for i := 1; i <= 10; i++ {
		assert.Equal(t, i, receive(t, fast).seq)
	}
	// медленный получил только то, что поместилось в буфер
	assert.Equal(t, 1, receive(t, slow).seq)
	assert.Len(t, slow.Events(), 0)
}

func TestBus_LateSubscriberGetsNoReplay(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), testEvent{seq: 1})

	late := bus.Subscribe(4)
	assert.Len(t, late.Events(), 0)

	bus.Publish(context.Background(), testEvent{seq: 2})
	assert.Equal(t, 2, receive(t, late).seq)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{seq: 1})
	})
}

func TestBus_CloseUnsubscribes(t *testing.T) {
	bus := New(zap.NewNop())
	sub := bus.Subscribe(4)
	other := bus.Subscribe(4)
	require.Equal(t, 2, bus.SubscriberCount())

	sub.Close()
	sub.Close()
	assert.Equal(t, 1, bus.SubscriberCount())

	_, ok := <-sub.Events()
	assert.False(t, ok, "канал должен быть закрыт после Close")

	bus.Publish(context.Background(), testEvent{seq: 7})
	assert.Equal(t, 7, receive(t, other).seq)
}
