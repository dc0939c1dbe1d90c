package queries

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler aggregates dashboard counters with plain SQL.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for the stats query.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the stats query.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	resp := GetOrderStatsQueryResponse{
		CountsByStatus: make(map[order.Status]int64),
	}

	if err := h.countByStatus(ctx, &resp); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE created_at >= ?
	`, query.since).Scan(&resp.RecentOrders).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	if err = h.sumRevenue(ctx, query, &resp); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM returns
		WHERE status NOT IN ('rejected', 'inspected_rejected', 'refund_processed', 'exchange_shipped')
	`).Scan(&resp.OpenReturns).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM tickets WHERE status NOT IN ('resolved', 'closed')
	`).Scan(&resp.OpenTickets).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderStatsQueryHandler) countByStatus(
	ctx context.Context,
	resp *GetOrderStatsQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) FROM orders GROUP BY status
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}

		st, stErr := order.StatusFromString(status)
		if stErr != nil {
			return stErr
		}
		resp.CountsByStatus[st] = count
	}

	return rows.Err()
}

func (h GetOrderStatsQueryHandler) sumRevenue(
	ctx context.Context,
	query GetOrderStatsQuery,
	resp *GetOrderStatsQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT currency, SUM(total_amount)
		FROM orders
		WHERE created_at >= ? AND payment_status = 'paid'
		GROUP BY currency
		ORDER BY currency
	`, query.since).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var currency, total string
		if err = rows.Scan(&currency, &total); err != nil {
			return err
		}

		amount, amountErr := kernel.NewMoney(total, currency)
		if amountErr != nil {
			return amountErr
		}
		resp.RecentRevenue = append(resp.RecentRevenue, amount)
	}

	return rows.Err()
}
