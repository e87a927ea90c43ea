package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Subscription - входящая очередь одного подписчика.
type Subscription struct {
	id     uint64
	bus    *Bus
	events chan Event
	once   sync.Once
}

// Events возвращает канал событий. Канал закрывается после Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close отписывает подписчика. Повторный вызов безопасен.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s.id)
	})
}

// Bus - процессная шина событий: каждый подписчик получает каждое событие,
// опубликованное после его подписки. Доставка не более одного раза, без повторов.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[uint64]*Subscription
	nextID      uint64
	logger      *zap.Logger
}

// New создает новую шину событий.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		subscribers: make(map[uint64]*Subscription),
		logger:      logger,
	}
}

// Subscribe регистрирует подписчика с буфером указанного размера.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		bus:    b,
		events: make(chan Event, buffer),
	}
	b.subscribers[sub.id] = sub
	return sub
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(sub.events)
	}
}

// Publish никогда не блокируется: если буфер подписчика заполнен,
// событие для него теряется, остальные подписчики его получают.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subscribers {
		select {
		case sub.events <- event:
		default:
			b.logger.Warn("Буфер подписчика переполнен, событие отброшено",
				zap.String("event", event.Name()),
				zap.Uint64("subscriberID", id),
			)
		}
	}
}

// SubscriberCount возвращает число активных подписчиков.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
