package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func istDate(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, ist)
}

func totals(rows ...repo.OrderTotal) []repo.OrderTotal { return rows }

func rupees(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStatsFixture() (*StatsRepoMock, *OrderRepoMock, *usecase.StatsUsecase) {
	stats := new(StatsRepoMock)
	orders := new(OrderRepoMock)
	return stats, orders, usecase.NewStatsUsecase(stats, orders)
}

func TestSalesSeries_DayBucketsAndLabels(t *testing.T) {
	_, orders, uc := newStatsFixture()

	orders.On("ListTotalsAsc", mock.Anything, mock.Anything).Return(totals(
		repo.OrderTotal{Total: rupees("10.00"), CreatedAt: istDate(2025, time.March, 1, 9)},
		repo.OrderTotal{Total: rupees("5.50"), CreatedAt: istDate(2025, time.March, 1, 18)},
		repo.OrderTotal{Total: rupees("20.00"), CreatedAt: istDate(2025, time.March, 3, 12)},
	), nil)

	out, err := uc.SalesSeries(context.Background(), "day", repo.OrderDateFilter{})

	assert.NoError(t, err)
	assert.Equal(t, []string{"01 Mar", "03 Mar"}, out.Labels)
	assert.Len(t, out.Values, 2)
	assert.True(t, out.Values[0].Equal(rupees("15.50")))
	assert.True(t, out.Values[1].Equal(rupees("20.00")))
}

func TestSalesSeries_DayBucketUsesISTCalendarDay(t *testing.T) {
	_, orders, uc := newStatsFixture()

	// 21:00 UTC on Mar 1 is already Mar 2 in IST
	lateUTC := time.Date(2025, time.March, 1, 21, 0, 0, 0, time.UTC)
	orders.On("ListTotalsAsc", mock.Anything, mock.Anything).Return(totals(
		repo.OrderTotal{Total: rupees("10.00"), CreatedAt: lateUTC},
	), nil)

	out, err := uc.SalesSeries(context.Background(), "day", repo.OrderDateFilter{})

	assert.NoError(t, err)
	assert.Equal(t, []string{"02 Mar"}, out.Labels)
}

func TestSalesSeries_WeekLabelsAreMondays(t *testing.T) {
	_, orders, uc := newStatsFixture()

	// Wed Mar 5 and Sun Mar 9 2025 share ISO week 10 (Monday Mar 3);
	// Mon Mar 10 starts week 11
	orders.On("ListTotalsAsc", mock.Anything, mock.Anything).Return(totals(
		repo.OrderTotal{Total: rupees("10.00"), CreatedAt: istDate(2025, time.March, 5, 10)},
		repo.OrderTotal{Total: rupees("15.00"), CreatedAt: istDate(2025, time.March, 9, 10)},
		repo.OrderTotal{Total: rupees("7.00"), CreatedAt: istDate(2025, time.March, 10, 10)},
	), nil)

	out, err := uc.SalesSeries(context.Background(), "week", repo.OrderDateFilter{})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2025-03-03", "2025-03-10"}, out.Labels)
	assert.True(t, out.Values[0].Equal(rupees("25.00")))
	assert.True(t, out.Values[1].Equal(rupees("7.00")))
}

func TestSalesSeries_MonthAndYearLabels(t *testing.T) {
	_, orders, uc := newStatsFixture()

	rows := totals(
		repo.OrderTotal{Total: rupees("10.00"), CreatedAt: istDate(2024, time.December, 31, 10)},
		repo.OrderTotal{Total: rupees("20.00"), CreatedAt: istDate(2025, time.January, 2, 10)},
	)
	orders.On("ListTotalsAsc", mock.Anything, mock.Anything).Return(rows, nil)

	monthly, err := uc.SalesSeries(context.Background(), "month", repo.OrderDateFilter{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Dec 2024", "Jan 2025"}, monthly.Labels)

	yearly, err := uc.SalesSeries(context.Background(), "year", repo.OrderDateFilter{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024", "2025"}, yearly.Labels)
}

func TestSalesSeries_InvalidPeriod(t *testing.T) {
	_, _, uc := newStatsFixture()

	_, err := uc.SalesSeries(context.Background(), "hour", repo.OrderDateFilter{})
	assertErrContains(t, err, "invalid period")
}

func TestSalesSeries_NoOrders(t *testing.T) {
	_, orders, uc := newStatsFixture()

	orders.On("ListTotalsAsc", mock.Anything, mock.Anything).Return(totals(), nil)

	out, err := uc.SalesSeries(context.Background(), "day", repo.OrderDateFilter{})
	assert.NoError(t, err)
	assert.Empty(t, out.Labels)
	assert.Empty(t, out.Values)
}

func TestAdminStats(t *testing.T) {
	stats, _, uc := newStatsFixture()

	f := repo.OrderDateFilter{StartDate: "2025-01-01"}
	stats.On("CountUsers", mock.Anything).Return(int64(12), nil)
	stats.On("OrderCountAndRevenue", mock.Anything, f).Return(int64(30), rupees("450.25"), nil)

	out, err := uc.AdminStats(context.Background(), f)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), out.TotalUsers)
	assert.Equal(t, int64(30), out.TotalOrders)
	assert.True(t, out.TotalRevenue.Equal(rupees("450.25")))
}

func TestUserStats_CountsDeliveredAndSpend(t *testing.T) {
	_, orders, uc := newStatsFixture()

	orders.On("ListByUserID", mock.Anything, int64(7), mock.Anything).Return([]model.Order{
		{Status: model.OrderStatusPending, Total: rupees("10.00")},
		{Status: model.OrderStatusDelivered, Total: rupees("25.00")},
		{Status: model.OrderStatusDelivered, Total: rupees("5.00")},
	}, nil)

	out, err := uc.UserStats(context.Background(), 7, repo.OrderDateFilter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.TotalOrders)
	assert.Equal(t, int64(2), out.DeliveredOrders)
	assert.True(t, out.TotalSpent.Equal(rupees("40.00")))
}

func TestFormatIST(t *testing.T) {
	// 09:30 UTC == 15:00 IST
	ts := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar 01, 2025 03:00 PM", usecase.FormatIST(ts))
}
