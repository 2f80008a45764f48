package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsRepo struct {
	DB *gorm.DB
}

type DailySalesRow struct {
	SaleDay    time.Time       `gorm:"column:sale_day"`
	TotalSales decimal.Decimal `gorm:"column:total_sales"`
}

// DailySales reads the daily_sales_totals aggregate as-is; the view is
// refreshed by the bulk loader, not per request.
func (r *AnalyticsRepo) DailySales(ctx context.Context, startDate, endDate *time.Time) ([]DailySalesRow, error) {
	query := "SELECT sale_day, total_sales FROM daily_sales_totals"
	var clauses []string
	var args []any
	if startDate != nil {
		clauses = append(clauses, "sale_day >= ?")
		args = append(args, *startDate)
	}
	if endDate != nil {
		clauses = append(clauses, "sale_day <= ?")
		args = append(args, *endDate)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY sale_day"

	var rows []DailySalesRow
	if err := r.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
