package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/events"
	apperrors "hospital-meals/pkg/errors"
	"hospital-meals/pkg/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 31, 9, 30, 0, 0, time.UTC)

func newOrderServiceForTest() (*OrderService, *fakeOrderRepo, *fakeAudit, *fakeBus) {
	repo := newFakeOrderRepo()
	audit := &fakeAudit{}
	bus := &fakeBus{}
	svc := NewOrderService(repo, audit, bus, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, audit, bus
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, _, audit, bus := newOrderServiceForTest()

	view, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{PatientID: 1, ItemID: 1, SpecialInstructions: " без соли "}, 7)
	require.NoError(t, err)

	assert.Equal(t, entities.OrderStatusPlaced, view.Status)
	assert.Equal(t, entities.ConsumptionUnknown, view.ConsumptionStatus)
	assert.Equal(t, 0, view.WastePercent)
	assert.Equal(t, uint64(7), view.CreatedBy)
	assert.Equal(t, "без соли", view.SpecialInstructions.String)
	assert.True(t, view.CreatedAt.Equal(fixedNow))
	assert.True(t, view.UpdatedAt.Equal(view.CreatedAt))
	assert.False(t, view.ConsumptionRecordedAt.Valid)
	assert.Equal(t, "John Doe", view.PatientName)

	assert.Equal(t, []string{"created"}, audit.actions())
	require.Len(t, bus.published(), 1)
	ev := bus.published()[0].(events.OrderUpdatedEvent)
	assert.Equal(t, events.TypeCreated, ev.Type)
	assert.Equal(t, view.ID, ev.OrderID)
	assert.Equal(t, events.Channel, ev.Name())
}

func TestOrderService_CreateOrder_UnknownReferences(t *testing.T) {
	svc, repo, audit, bus := newOrderServiceForTest()

	_, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{PatientID: 99, ItemID: 1}, 7)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.CreateOrder(context.Background(), dto.CreateOrderDTO{PatientID: 1, ItemID: 99}, 7)
	var refErr *apperrors.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "menu_item", refErr.Entity)

	assert.Empty(t, repo.orders)
	assert.Empty(t, audit.actions())
	assert.Empty(t, bus.published())
}

func TestOrderService_SetStatus(t *testing.T) {
	svc, _, audit, bus := newOrderServiceForTest()
	ctx := context.Background()
	created, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 7)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	view, err := svc.SetStatus(ctx, created.ID, "delivered", 3)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusDelivered, view.Status)
	assert.True(t, view.UpdatedAt.Equal(later))

	// возврат на предыдущий этап разрешён
	view, err = svc.SetStatus(ctx, created.ID, "placed", 3)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPlaced, view.Status)

	assert.Equal(t, []string{"created", "status_changed", "status_changed"}, audit.actions())
	published := bus.published()
	require.Len(t, published, 3)
	last := published[2].(events.OrderUpdatedEvent)
	assert.Equal(t, events.TypeStatus, last.Type)
	assert.Equal(t, entities.OrderStatusPlaced, last.Status)
}

func TestOrderService_SetStatus_Rejections(t *testing.T) {
	svc, repo, audit, bus := newOrderServiceForTest()
	ctx := context.Background()
	created, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 7)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, created.ID, "shipped", 3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, entities.OrderStatusPlaced, repo.stored(created.ID).Status)

	_, err = svc.SetStatus(ctx, 404, "delivered", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, []string{"created"}, audit.actions())
	assert.Len(t, bus.published(), 1)
}

func TestOrderService_RecordConsumption(t *testing.T) {
	cases := []struct {
		input string
		want  entities.ConsumptionStatus
		waste int
	}{
		{"eaten", entities.ConsumptionEaten, 0},
		{"partial", entities.ConsumptionPartial, 50},
		{"refused", entities.ConsumptionRefused, 100},
		{"unknown", entities.ConsumptionUnknown, 0},
		{"half", entities.ConsumptionUnknown, 0},
		{"", entities.ConsumptionUnknown, 0},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			svc, repo, audit, bus := newOrderServiceForTest()
			ctx := context.Background()
			created, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 2, ItemID: 1}, 7)
			require.NoError(t, err)

			view, err := svc.RecordConsumption(ctx, created.ID, tc.input, 4)
			require.NoError(t, err)
			assert.Equal(t, tc.want, view.ConsumptionStatus)
			assert.Equal(t, tc.waste, view.WastePercent)
			assert.True(t, view.ConsumptionRecordedAt.Valid)
			assert.Equal(t, tc.waste, repo.stored(created.ID).WastePercent)

			assert.Equal(t, []string{"created", "consumption_recorded"}, audit.actions())
			assert.Contains(t, audit.entries[1].Details, `"wastePercent":`)
			ev := bus.published()[1].(events.OrderUpdatedEvent)
			assert.Equal(t, events.TypeConsumption, ev.Type)
		})
	}
}

func TestOrderService_RecordConsumption_UnknownOrder(t *testing.T) {
	svc, _, _, bus := newOrderServiceForTest()

	_, err := svc.RecordConsumption(context.Background(), 42, "eaten", 4)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, bus.published())
}

func TestOrderService_AuditFailureIsNotPropagated(t *testing.T) {
	svc, _, audit, bus := newOrderServiceForTest()
	audit.err = errors.New("audit db down")

	view, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 7)
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Len(t, bus.published(), 1)
}

func TestOrderService_ListOrders(t *testing.T) {
	svc, _, _, _ := newOrderServiceForTest()
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 7)
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow.Add(time.Minute) }
	second, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 2, ItemID: 1}, 7)
	require.NoError(t, err)

	all, err := svc.ListOrders(ctx, entities.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	wardB, err := svc.ListOrders(ctx, entities.OrderFilter{Ward: "Ward B"})
	require.NoError(t, err)
	require.Len(t, wardB, 1)
	assert.Equal(t, "Jane Smith", wardB[0].PatientName)

	_, err = svc.SetStatus(ctx, second.ID, string(entities.OrderStatusInKitchen), 3)
	require.NoError(t, err)

	placed, err := svc.ListOrders(ctx, entities.OrderFilter{Status: string(entities.OrderStatusPlaced)})
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, first.ID, placed[0].ID)

	inKitchenWardA, err := svc.ListOrders(ctx, entities.OrderFilter{Status: string(entities.OrderStatusInKitchen), Ward: "Ward A"})
	require.NoError(t, err)
	assert.Empty(t, inKitchenWardA)
}

func nextOrderEvent(t *testing.T, sub *eventbus.Subscription) events.OrderUpdatedEvent {
	t.Helper()
	select {
	case ev := <-sub.Events():
		update, ok := ev.(events.OrderUpdatedEvent)
		require.True(t, ok, "неожиданный тип события %T", ev)
		return update
	case <-time.After(time.Second):
		t.Fatal("событие не доставлено")
		return events.OrderUpdatedEvent{}
	}
}

// Подписчик настоящей шины видит весь жизненный цикл заказа в порядке вызовов.
func TestOrderService_EndToEndThroughBus(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	sub := bus.Subscribe(8)
	defer sub.Close()

	svc := NewOrderService(newFakeOrderRepo(), &fakeAudit{}, bus, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 7)
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, created.ID, "in_kitchen", 3)
	require.NoError(t, err)
	_, err = svc.RecordConsumption(ctx, created.ID, "refused", 4)
	require.NoError(t, err)

	ev := nextOrderEvent(t, sub)
	assert.Equal(t, events.TypeCreated, ev.Type)
	assert.Equal(t, created.ID, ev.OrderID)

	ev = nextOrderEvent(t, sub)
	assert.Equal(t, events.TypeStatus, ev.Type)
	assert.Equal(t, entities.OrderStatusInKitchen, ev.Status)

	ev = nextOrderEvent(t, sub)
	assert.Equal(t, events.TypeConsumption, ev.Type)
	assert.Equal(t, entities.ConsumptionRefused, ev.ConsumptionStatus)
	require.NotNil(t, ev.Order)
	assert.Equal(t, 100, ev.Order.WastePercent)

	stored, err := svc.FindOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.WastePercent)
	assert.Equal(t, entities.OrderStatusInKitchen, stored.Status)
	assert.True(t, stored.ConsumptionRecordedAt.Valid)
}

// Последнее опубликованное событие совпадает с итоговым состоянием заказа.
func TestOrderService_ConcurrentStatusUpdatesPublishInCompletionOrder(t *testing.T) {
	svc, repo, _, bus := newOrderServiceForTest()
	ctx := context.Background()
	created, err := svc.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 7)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := entities.OrderStatuses[i%len(entities.OrderStatuses)]
			_, err := svc.SetStatus(ctx, created.ID, string(status), 3)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	published := bus.published()
	require.Len(t, published, 51)
	last := published[len(published)-1].(events.OrderUpdatedEvent)
	assert.Equal(t, repo.stored(created.ID).Status, last.Status)
}
