package services

import (
	"context"
	"testing"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_ByRole(t *testing.T) {
	orders, _, _, _ := newOrderServiceForTest()
	tiffin, _, _ := newTiffinServiceForTest()
	ctx := context.Background()

	placed, err := orders.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 1, ItemID: 1}, 1)
	require.NoError(t, err)
	moving, err := orders.CreateOrder(ctx, dto.CreateOrderDTO{PatientID: 2, ItemID: 1}, 1)
	require.NoError(t, err)
	_, err = orders.SetStatus(ctx, moving.ID, "out_for_delivery", 1)
	require.NoError(t, err)
	_, err = tiffin.Create(ctx, tiffinPayload(), 1)
	require.NoError(t, err)

	svc := NewDashboardService(orders, tiffin, zap.NewNop())

	kitchen, err := svc.GetDashboard(ctx, entities.RoleKitchen)
	require.NoError(t, err)
	require.Len(t, kitchen.Orders, 1)
	assert.Equal(t, placed.ID, kitchen.Orders[0].ID)
	assert.Equal(t, "placed", kitchen.StatusFilter)

	delivery, err := svc.GetDashboard(ctx, entities.RoleDelivery)
	require.NoError(t, err)
	require.Len(t, delivery.Orders, 1)
	assert.Equal(t, moving.ID, delivery.Orders[0].ID)

	reception, err := svc.GetDashboard(ctx, entities.RoleReceptionist)
	require.NoError(t, err)
	assert.Equal(t, "tiffin_orders", reception.View)
	assert.Len(t, reception.TiffinOrders, 1)
	assert.Empty(t, reception.Orders)

	nurse, err := svc.GetDashboard(ctx, entities.RoleNurse)
	require.NoError(t, err)
	assert.Len(t, nurse.Orders, 2)
	assert.Empty(t, nurse.StatusFilter)
}
