package services

import (
	"context"
	"testing"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportServiceForTest() (*reportService, *fakeReportRepo) {
	repo := &fakeReportRepo{}
	cfg := config.ReportConfig{DefaultDays: 14, DefaultWeeks: 8, DefaultTop: 10, ExportDays: 30, ExportWeeks: 12, ExportTop: 25}
	svc := NewReportService(repo, cfg, zap.NewNop()).(*reportService)
	svc.clock = func() time.Time { return time.Date(2024, 5, 31, 17, 45, 0, 0, time.UTC) }
	return svc, repo
}

func TestReportService_TrailingWindows(t *testing.T) {
	svc, repo := newReportServiceForTest()
	ctx := context.Background()

	_, err := svc.DailyCounts(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC), repo.dailySince)

	_, err = svc.DailyCounts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), repo.dailySince)

	_, err = svc.WeeklyCounts(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC), repo.weeklySince)

	_, err = svc.TopDishes(ctx, -5)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), repo.topLimit)

	_, err = svc.TopDishes(ctx, 100000)
	require.NoError(t, err)
	assert.Equal(t, uint64(maxReportTop), repo.topLimit)
}

func TestReportService_Summary(t *testing.T) {
	svc, repo := newReportServiceForTest()

	summary, err := svc.Summary(context.Background(), dto.ReportParamsDTO{Days: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Days)
	assert.Equal(t, 8, summary.Weeks)
	assert.Equal(t, 10, summary.Limit)
	assert.Equal(t, "None", summary.ByDiet[0].Restriction)
	assert.Equal(t, time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC), repo.wasteSince)
}

func TestReportService_ExportSummary(t *testing.T) {
	svc, repo := newReportServiceForTest()

	summary, err := svc.ExportSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Days)
	assert.Equal(t, 12, summary.Weeks)
	assert.Equal(t, 25, summary.Limit)
	assert.Equal(t, uint64(25), repo.topLimit)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), repo.dailySince)
}
