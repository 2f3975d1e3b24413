package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"

	"github.com/shopspring/decimal"
)

// Display times follow the store's home timezone.
var istZone = time.FixedZone("IST", 5*3600+1800)

// FormatIST renders a timestamp the way order pages show it.
func FormatIST(t time.Time) string {
	return t.In(istZone).Format("Jan 02, 2006 03:04 PM")
}

type StatsUsecase struct {
	statsRepo repo.StatsRepository
	orderRepo repo.OrderRepository
}

func NewStatsUsecase(statsRepo repo.StatsRepository, orderRepo repo.OrderRepository) *StatsUsecase {
	return &StatsUsecase{statsRepo: statsRepo, orderRepo: orderRepo}
}

type AdminStatsOutput struct {
	TotalUsers   int64           `json:"total_users"`
	TotalOrders  int64           `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

func (u *StatsUsecase) AdminStats(ctx context.Context, f repo.OrderDateFilter) (AdminStatsOutput, error) {
	users, err := u.statsRepo.CountUsers(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	count, revenue, err := u.statsRepo.OrderCountAndRevenue(ctx, f)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminStatsOutput{
		TotalUsers:   users,
		TotalOrders:  count,
		TotalRevenue: revenue,
	}, nil
}

type UserStatsOutput struct {
	TotalOrders     int64           `json:"total_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
}

func (u *StatsUsecase) UserStats(ctx context.Context, userID int64, f repo.OrderDateFilter) (UserStatsOutput, error) {
	if userID <= 0 {
		return UserStatsOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID, f)
	if err != nil {
		return UserStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := UserStatsOutput{TotalSpent: decimal.Zero}
	for _, o := range orders {
		out.TotalOrders++
		if o.Status == model.OrderStatusDelivered {
			out.DeliveredOrders++
		}
		out.TotalSpent = out.TotalSpent.Add(o.Total)
	}
	return out, nil
}

type SalesSeriesOutput struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// SalesSeries buckets order totals chronologically by the requested period.
// Bucketing happens in IST so a late-evening UTC order lands on the local
// calendar day customers see.
func (u *StatsUsecase) SalesSeries(ctx context.Context, period string, f repo.OrderDateFilter) (SalesSeriesOutput, error) {
	switch period {
	case "day", "week", "month", "year":
	default:
		return SalesSeriesOutput{}, NewHTTPError(http.StatusBadRequest, "invalid period")
	}

	totals, err := u.orderRepo.ListTotalsAsc(ctx, f)
	if err != nil {
		return SalesSeriesOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := SalesSeriesOutput{
		Labels: []string{},
		Values: []decimal.Decimal{},
	}
	index := map[string]int{}

	for _, t := range totals {
		key, label := salesBucket(period, t.CreatedAt)

		i, ok := index[key]
		if !ok {
			i = len(out.Labels)
			index[key] = i
			out.Labels = append(out.Labels, label)
			out.Values = append(out.Values, decimal.Zero)
		}
		out.Values[i] = out.Values[i].Add(t.Total)
	}

	return out, nil
}

// salesBucket returns a stable grouping key plus the human label. Weeks key
// on the ISO week and label as the week's Monday.
func salesBucket(period string, ts time.Time) (key string, label string) {
	ts = ts.In(istZone)
	switch period {
	case "week":
		year, week := ts.ISOWeek()
		key = fmt.Sprintf("%d-W%02d", year, week)
		monday := ts.AddDate(0, 0, -(int(ts.Weekday())+6)%7)
		label = monday.Format("2006-01-02")
	case "month":
		key = ts.Format("2006-01")
		label = ts.Format("Jan 2006")
	case "year":
		key = ts.Format("2006")
		label = key
	default: // day
		key = ts.Format("2006-01-02")
		label = ts.Format("02 Jan")
	}
	return key, label
}
