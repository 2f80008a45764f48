package service

import (
	"context"
	"fmt"
	"time"

	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/transport"
)

type AnalyticsService struct {
	Repo *repo.AnalyticsRepo
}

func (s *AnalyticsService) DailySales(ctx context.Context, startDate, endDate *time.Time) ([]transport.DailySalesPoint, error) {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, fmt.Errorf("%w: start_date cannot be after end_date", ErrValidation)
	}

	rows, err := s.Repo.DailySales(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	points := make([]transport.DailySalesPoint, len(rows))
	for i, row := range rows {
		points[i] = transport.DailySalesPoint{
			SaleDay:    row.SaleDay.Format("2006-01-02"),
			TotalSales: row.TotalSales,
		}
	}
	return points, nil
}
