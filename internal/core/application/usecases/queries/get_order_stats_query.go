package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var (
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)

	ErrStatsWindowIsRequired = errors.New("stats window start must be set")
)

// GetOrderStatsQuery computes dashboard counters: orders per status, and
// order volume plus confirmed revenue since the window start. Thirty days
// back is the usual window.
type GetOrderStatsQuery struct {
	since time.Time

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query over orders created at or
// after since.
func NewGetOrderStatsQuery(since time.Time) (GetOrderStatsQuery, error) {
	if since.IsZero() {
		return GetOrderStatsQuery{}, ErrStatsWindowIsRequired
	}

	return GetOrderStatsQuery{
		since: since,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// GetOrderStatsQueryResponse carries the dashboard counters. Revenue sums
// the totals of orders whose payment completed inside the window, per
// currency.
type GetOrderStatsQueryResponse struct {
	CountsByStatus map[order.Status]int64
	RecentOrders   int64
	RecentRevenue  []kernel.Money
	OpenReturns    int64
	OpenTickets    int64
}
