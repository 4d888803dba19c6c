package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/powderworks/skisim/pkg/db"
	"go.uber.org/fx"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	// RunsBetween returns existing runs keyed by date for [from, to].
	RunsBetween(ctx context.Context, from, to time.Time) (map[time.Time]GenerationRun, error)
	// Claim inserts the pending run, or, when takeover is set, resets the
	// existing row for its date to this run. Without takeover a claim on an
	// already-recorded date fails with ErrDateAlreadyGenerated.
	Claim(ctx context.Context, run *GenerationRun, takeover bool) error
	MarkComplete(ctx context.Context, runID string, completedAt time.Time, rowCounts map[string]interface{}) error
	MarkFailed(ctx context.Context, runID string, failedAt time.Time, reason string) error
	Get(ctx context.Context, date time.Time) (*GenerationRun, error)
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

func (r *repository) RunsBetween(ctx context.Context, from, to time.Time) (map[time.Time]GenerationRun, error) {
	var runs []GenerationRun
	err := r.db.WithContext(ctx).
		Where("generation_date BETWEEN ? AND ?", from, to).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}

	out := make(map[time.Time]GenerationRun, len(runs))
	for _, run := range runs {
		out[run.Date.UTC()] = run
	}
	return out, nil
}

func (r *repository) Claim(ctx context.Context, run *GenerationRun, takeover bool) error {
	err := r.db.WithContext(ctx).Create(run).Error
	if err == nil {
		return nil
	}
	if !db.IsDuplicateKeyErr(err) {
		return fmt.Errorf("claim date: %w", err)
	}
	if !takeover {
		return fmt.Errorf("%w: %s", ErrDateAlreadyGenerated, run.Date.Format("2006-01-02"))
	}

	// Take over the existing row for this date under the new run id.
	res := r.db.WithContext(ctx).Model(&GenerationRun{}).
		Where("generation_date = ?", run.Date).
		Updates(map[string]interface{}{
			"run_id":            run.RunID,
			"seed":              run.Seed,
			"generator_version": run.GeneratorVersion,
			"status":            StatusPending,
			"row_counts":        nil,
			"error":             "",
			"started_at":        run.StartedAt,
			"completed_at":      nil,
			"updated_at":        run.StartedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("reclaim date: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.Date.Format("2006-01-02"))
	}
	return nil
}

func (r *repository) MarkComplete(ctx context.Context, runID string, completedAt time.Time, rowCounts map[string]interface{}) error {
	return r.finish(ctx, runID, map[string]interface{}{
		"status":       StatusComplete,
		"row_counts":   datatypesJSON(rowCounts),
		"completed_at": completedAt,
		"updated_at":   completedAt,
	})
}

func (r *repository) MarkFailed(ctx context.Context, runID string, failedAt time.Time, reason string) error {
	return r.finish(ctx, runID, map[string]interface{}{
		"status":       StatusFailed,
		"error":        reason,
		"completed_at": failedAt,
		"updated_at":   failedAt,
	})
}

func (r *repository) finish(ctx context.Context, runID string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&GenerationRun{}).
		Where("run_id = ?", runID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

func datatypesJSON(m map[string]interface{}) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	return datatypes.JSONMap(m)
}

func (r *repository) Get(ctx context.Context, date time.Time) (*GenerationRun, error) {
	var run GenerationRun
	err := r.db.WithContext(ctx).Where("generation_date = ?", date).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
