package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/events"
	apperrors "hospital-meals/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMenuServiceForTest() (*MenuService, *fakeMenuRepo, *fakeCache, *fakeAudit, *fakeBus) {
	repo := &fakeMenuRepo{items: append([]entities.MenuItem(nil), DefaultMenu...)}
	cache := newFakeCache()
	audit := &fakeAudit{}
	bus := &fakeBus{}
	svc := NewMenuService(repo, fakeTxManager{}, cache, audit, bus, time.Minute, zap.NewNop())
	return svc, repo, cache, audit, bus
}

func TestMenuService_ListItems_UsesCache(t *testing.T) {
	svc, repo, cache, _, _ := newMenuServiceForTest()
	ctx := context.Background()

	first, err := svc.ListItems(ctx)
	require.NoError(t, err)
	second, err := svc.ListItems(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, len(DefaultMenu))
	assert.Equal(t, 1, repo.listCalls)
	assert.True(t, cache.has(menuCacheKey))
}

func TestMenuService_ListItems_CacheDown(t *testing.T) {
	svc, repo, cache, _, _ := newMenuServiceForTest()
	cache.getErr = errors.New("connection refused")

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultMenu))
	assert.Equal(t, 1, repo.listCalls)
}

func TestMenuService_ReplaceWithPreset(t *testing.T) {
	svc, repo, cache, audit, bus := newMenuServiceForTest()
	ctx := context.Background()
	_, err := svc.ListItems(ctx)
	require.NoError(t, err)

	items, err := svc.Replace(ctx, dto.ReplaceMenuDTO{Preset: PresetIndian}, 1)
	require.NoError(t, err)
	assert.Len(t, items, 24)
	assert.Len(t, repo.items, 24)
	assert.False(t, cache.has(menuCacheKey))

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "replaced_with_indian", entry.Action)
	assert.Equal(t, entities.AuditEntityMenu, entry.Entity)
	assert.Equal(t, uint64(0), entry.EntityID)
	assert.JSONEq(t, `{"count":24}`, entry.Details)

	published := bus.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeMenuReloaded, published[0].(events.OrderUpdatedEvent).Type)
}

func TestMenuService_ReplaceWithCustomItems(t *testing.T) {
	svc, _, _, audit, _ := newMenuServiceForTest()

	items, err := svc.Replace(context.Background(), dto.ReplaceMenuDTO{Items: []dto.MenuItemDTO{
		{Name: " Khichdi ", Category: "Dinner", Dietary: "Vegetarian, Light"},
	}}, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Khichdi", items[0].Name)
	assert.Equal(t, []string{"replaced_custom"}, audit.actions())
}

func TestMenuService_Replace_Rejections(t *testing.T) {
	svc, repo, _, audit, bus := newMenuServiceForTest()
	ctx := context.Background()

	_, err := svc.Replace(ctx, dto.ReplaceMenuDTO{Preset: "italian"}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = svc.Replace(ctx, dto.ReplaceMenuDTO{}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.replaceErr = errors.New("deadlock detected")
	_, err = svc.Replace(ctx, dto.ReplaceMenuDTO{Preset: PresetHospital}, 1)
	assert.ErrorIs(t, err, apperrors.ErrTransaction)
	assert.Len(t, repo.items, len(DefaultMenu))

	assert.Empty(t, audit.actions())
	assert.Empty(t, bus.published())
}

func TestMenuPresets(t *testing.T) {
	assert.Len(t, MenuPresets[PresetHospital], 10)
	assert.Len(t, MenuPresets[PresetIndian], 24)
	for name, items := range MenuPresets {
		for _, it := range items {
			assert.NotEmpty(t, it.Name, name)
			assert.Contains(t, []string{"Breakfast", "Lunch", "Dinner", "Snack"}, it.Category, it.Name)
		}
	}
}
