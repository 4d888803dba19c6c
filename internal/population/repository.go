package population

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, customers []*Customer) error
	// ListAll returns the full population in customer code order. Stable
	// ordering is load-bearing: the visit scheduler iterates customers in
	// this order while drawing from a shared random stream.
	ListAll(ctx context.Context) ([]Customer, error)
	RefreshLifetimeMetrics(ctx context.Context) error
}

type RepositoryParams struct {
	fx.In

	DB *gorm.DB
}

type repository struct {
	db *gorm.DB
}

func NewRepository(p RepositoryParams) Repository {
	return &repository{db: p.DB}
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Customer{}).Count(&n).Error
	return n, err
}

func (r *repository) CreateBatch(ctx context.Context, customers []*Customer) error {
	return r.db.WithContext(ctx).CreateInBatches(customers, 500).Error
}

func (r *repository) ListAll(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := r.db.WithContext(ctx).Order("customer_id ASC").Find(&out).Error
	return out, err
}

// RefreshLifetimeMetrics recomputes visits and spend from the transactional
// tables. Correlated subqueries keep it portable across the supported
// dialects.
func (r *repository) RefreshLifetimeMetrics(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE customers SET
			lifetime_visits = (
				SELECT COUNT(*) FROM pass_usage pu
				WHERE pu.customer_id = customers.customer_id
			),
			lifetime_spend = (
				SELECT COALESCE((SELECT SUM(amount) FROM ticket_sales t WHERE t.customer_id = customers.customer_id), 0)
				     + COALESCE((SELECT SUM(amount) FROM rentals rn WHERE rn.customer_id = customers.customer_id), 0)
				     + COALESCE((SELECT SUM(amount) FROM food_beverage fb WHERE fb.customer_id = customers.customer_id), 0)
				     + COALESCE((SELECT SUM(amount) FROM ski_lessons sl WHERE sl.customer_id = customers.customer_id), 0)
			)
	`).Error
}
