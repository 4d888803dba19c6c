package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Request describes a contiguous range of dates to generate.
type Request struct {
	From  time.Time
	Days  int
	Force bool
}

type ServiceParams struct {
	fx.In

	Repo   Repository
	Config config.Config
	Node   *snowflake.Node
	Clock  clock.Clock
	Log    *zap.Logger
}

type Service struct {
	repo  Repository
	cfg   config.Config
	node  *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewService(p ServiceParams) *Service {
	return &Service{
		repo:  p.Repo,
		cfg:   p.Config,
		node:  p.Node,
		clock: p.Clock,
		log:   p.Log.Named("ledger.service"),
	}
}

// PendingDates validates the request window and splits it into dates that
// need generating and dates already complete. Force mode pends everything.
func (s *Service) PendingDates(ctx context.Context, req Request) (pending, skipped []time.Time, err error) {
	if req.Days < 1 {
		return nil, nil, fmt.Errorf("%w: days must be at least 1", ErrInvalidDateRange)
	}

	from := calendar.Midnight(req.From)
	to := from.AddDate(0, 0, req.Days-1)
	today := calendar.Midnight(s.clock.Now())
	horizon := today.AddDate(0, 0, s.cfg.MaxFutureDays)

	if from.Before(s.cfg.EpochDate) {
		return nil, nil, fmt.Errorf("%w: %s is before the %s epoch",
			ErrInvalidDateRange, from.Format("2006-01-02"), s.cfg.EpochDate.Format("2006-01-02"))
	}
	if to.After(horizon) {
		return nil, nil, fmt.Errorf("%w: %s is more than %d days in the future",
			ErrInvalidDateRange, to.Format("2006-01-02"), s.cfg.MaxFutureDays)
	}

	runs, err := s.repo.RunsBetween(ctx, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("load generation runs: %w", err)
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if run, ok := runs[d]; ok && run.Status == StatusComplete && !req.Force {
			skipped = append(skipped, d)
			continue
		}
		pending = append(pending, d)
	}
	return pending, skipped, nil
}

// Claim records this process as the generator of the date. Completed dates
// can only be reclaimed under force; pending or failed leftovers from an
// earlier run are always reclaimable.
func (s *Service) Claim(ctx context.Context, date time.Time, seed int64, force bool) (*GenerationRun, error) {
	now := s.clock.Now()
	run := &GenerationRun{
		ID:               s.node.Generate(),
		RunID:            ulid.Make().String(),
		Date:             calendar.Midnight(date),
		Seed:             seed,
		GeneratorVersion: s.cfg.AppVersion,
		Status:           StatusPending,
		StartedAt:        now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := s.repo.Claim(ctx, run, force)
	if errors.Is(err, ErrDateAlreadyGenerated) && !force {
		existing, getErr := s.repo.Get(ctx, run.Date)
		if getErr == nil && existing.Status != StatusComplete {
			err = s.repo.Claim(ctx, run, true)
		}
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug("date claimed",
		zap.Time("date", run.Date),
		zap.String("run_id", run.RunID),
		zap.Bool("force", force),
	)
	return run, nil
}

// Complete closes the run with its per-table row counts.
func (s *Service) Complete(ctx context.Context, runID string, rowCounts map[string]int) error {
	counts := make(map[string]interface{}, len(rowCounts))
	for table, n := range rowCounts {
		counts[table] = n
	}
	return s.repo.MarkComplete(ctx, runID, s.clock.Now(), counts)
}

// Fail closes the run with the failure reason; the date stays reclaimable.
func (s *Service) Fail(ctx context.Context, runID string, cause error) error {
	return s.repo.MarkFailed(ctx, runID, s.clock.Now(), cause.Error())
}

func (s *Service) Get(ctx context.Context, date time.Time) (*GenerationRun, error) {
	return s.repo.Get(ctx, calendar.Midnight(date))
}

var Module = fx.Module("ledger",
	fx.Provide(
		NewRepository,
		NewService,
	),
)
