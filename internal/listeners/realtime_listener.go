package listeners

import (
	"context"

	"hospital-meals/pkg/eventbus"

	"go.uber.org/zap"
)

// Broadcaster - транспорт, которому пересылаются события (websocket.Hub).
type Broadcaster interface {
	Broadcast(event string, payload interface{}) error
}

// RealtimeListener подписывается на шину и пересылает каждое событие
// всем подключенным websocket-клиентам.
type RealtimeListener struct {
	bus         *eventbus.Bus
	broadcaster Broadcaster
	buffer      int
	logger      *zap.Logger
}

func NewRealtimeListener(bus *eventbus.Bus, broadcaster Broadcaster, buffer int, logger *zap.Logger) *RealtimeListener {
	return &RealtimeListener{bus: bus, broadcaster: broadcaster, buffer: buffer, logger: logger}
}

// Run блокируется до отмены ctx.
func (l *RealtimeListener) Run(ctx context.Context) {
	l.forward(ctx, l.bus.Subscribe(l.buffer))
}

// Start подписывается сразу и пересылает события в отдельной горутине:
// всё, что опубликовано после возврата из Start, дойдёт до клиентов.
func (l *RealtimeListener) Start(ctx context.Context) {
	sub := l.bus.Subscribe(l.buffer)
	go l.forward(ctx, sub)
}

func (l *RealtimeListener) forward(ctx context.Context, sub *eventbus.Subscription) {
	defer sub.Close()
	l.logger.Info("RealtimeListener: подписан на шину событий")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("RealtimeListener: остановлен")
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := l.broadcaster.Broadcast(event.Name(), event); err != nil {
				l.logger.Warn("RealtimeListener: не удалось разослать событие",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}
	}
}
