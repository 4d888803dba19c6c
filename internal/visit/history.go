package visit

import (
	"context"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// HistoryRepo reads prior visit activity. It queries pass_usage directly by
// table name so regenerating one date sees everything already on disk for
// other dates, whoever wrote it.
type HistoryRepo interface {
	LastVisits(ctx context.Context, before time.Time) (map[string]time.Time, error)
	SeasonVisitCounts(ctx context.Context, seasonStart, before time.Time) (map[string]int, error)
}

type HistoryParams struct {
	fx.In

	DB *gorm.DB
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(p HistoryParams) HistoryRepo {
	return &historyRepo{db: p.DB}
}

func (r *historyRepo) LastVisits(ctx context.Context, before time.Time) (map[string]time.Time, error) {
	rows := []struct {
		CustomerID string    `gorm:"column:customer_id"`
		LastVisit  time.Time `gorm:"column:last_visit"`
	}{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT customer_id, MAX(usage_date) AS last_visit
		FROM pass_usage
		WHERE usage_date < ?
		GROUP BY customer_id
	`, before).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		out[row.CustomerID] = row.LastVisit
	}
	return out, nil
}

func (r *historyRepo) SeasonVisitCounts(ctx context.Context, seasonStart, before time.Time) (map[string]int, error) {
	rows := []struct {
		CustomerID string `gorm:"column:customer_id"`
		Visits     int    `gorm:"column:visits"`
	}{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT customer_id, COUNT(*) AS visits
		FROM pass_usage
		WHERE usage_date >= ? AND usage_date < ?
		GROUP BY customer_id
	`, seasonStart, before).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.CustomerID] = row.Visits
	}
	return out, nil
}
