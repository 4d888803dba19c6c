package population

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/config"
	"github.com/powderworks/skisim/internal/persona"
	"github.com/powderworks/skisim/internal/simrand"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParams struct {
	fx.In

	Repo     Repository
	Registry *persona.Registry
	Config   config.Config
	Node     *snowflake.Node
	Clock    clock.Clock
	Log      *zap.Logger
}

type Service struct {
	repo     Repository
	registry *persona.Registry
	cfg      config.Config
	node     *snowflake.Node
	clock    clock.Clock
	log      *zap.Logger
}

func NewService(p ServiceParams) *Service {
	return &Service{
		repo:     p.Repo,
		registry: p.Registry,
		cfg:      p.Config,
		node:     p.Node,
		clock:    p.Clock,
		log:      p.Log.Named("population.service"),
	}
}

// EnsurePopulation tops the customer base up to target. Existing customers
// are never modified or resampled; only the missing tail is created. The
// identity and segment of customer N are a pure function of (seed, N), so a
// wiped database regrows the exact same population.
func (s *Service) EnsurePopulation(ctx context.Context, seed int64, target int) (int, error) {
	if target <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrPopulationTarget, target)
	}

	existing, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	if int64(target) <= existing {
		return 0, nil
	}

	now := s.clock.Now()
	today := calendar.Midnight(now)
	initialSeed := existing == 0

	customers := make([]*Customer, 0, int64(target)-existing)
	for n := existing + 1; n <= int64(target); n++ {
		code := fmt.Sprintf("CUST%06d", n)
		customers = append(customers, s.buildCustomer(seed, code, today, initialSeed, now))
	}

	if err := s.repo.CreateBatch(ctx, customers); err != nil {
		return 0, fmt.Errorf("create customers: %w", err)
	}

	s.log.Info("population grown",
		zap.Int64("existing", existing),
		zap.Int("target", target),
		zap.Int("created", len(customers)),
	)
	return len(customers), nil
}

func (s *Service) buildCustomer(seed int64, code string, today time.Time, initialSeed bool, now time.Time) *Customer {
	rng := simrand.Stream(seed, "customer", code)

	p := s.registry.Sample(rng)
	id := newIdentity(rng, code)

	age := p.AgeMin + rng.IntN(p.AgeMax-p.AgeMin+1)
	birth := today.AddDate(-age, 0, -rng.IntN(365))

	state := p.HomeStates[rng.IntN(len(p.HomeStates))]

	// The founding population spreads first visits across the full history
	// window; later top-ups are new customers whose history starts now.
	firstVisit := today
	if initialSeed {
		span := int(today.Sub(s.cfg.EpochDate).Hours() / 24)
		if span > 0 {
			firstVisit = s.cfg.EpochDate.AddDate(0, 0, rng.IntN(span+1))
		}
	}

	passType := ""
	if p.PassHolder {
		passType = p.PassTypes[rng.IntN(len(p.PassTypes))]
	}

	return &Customer{
		ID:             s.node.Generate(),
		Code:           code,
		Name:           id.Name,
		Email:          id.Email,
		Phone:          id.Phone,
		BirthDate:      birth,
		Segment:        string(p.Code),
		IsPassHolder:   p.PassHolder,
		PassType:       passType,
		FirstVisitDate: firstVisit,
		HomeState:      state,
		HomeZip:        zipFor(rng, state),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ListAll exposes the ordered population for the visit scheduler.
func (s *Service) ListAll(ctx context.Context) ([]Customer, error) {
	return s.repo.ListAll(ctx)
}

// RefreshLifetimeMetrics folds generated activity back into the customer
// rollup columns.
func (s *Service) RefreshLifetimeMetrics(ctx context.Context) error {
	return s.repo.RefreshLifetimeMetrics(ctx)
}
