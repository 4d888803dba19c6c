package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/config"
	"github.com/powderworks/skisim/internal/ledger"
	"github.com/powderworks/skisim/internal/ops"
	"github.com/powderworks/skisim/internal/persona"
	"github.com/powderworks/skisim/internal/population"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/simulator"
	"github.com/powderworks/skisim/internal/staffing"
	"github.com/powderworks/skisim/internal/txn"
	"github.com/powderworks/skisim/internal/visit"
	"github.com/powderworks/skisim/internal/warehouse"
	"github.com/powderworks/skisim/internal/weather"
	"github.com/powderworks/skisim/pkg/db"
	"github.com/powderworks/skisim/pkg/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type cliOptions struct {
	date       string
	days       int
	backfill   bool
	force      bool
	seed       int64
	population int
}

func main() {
	opts := cliOptions{}
	flag.StringVar(&opts.date, "date", "", "first date to generate, YYYY-MM-DD (default today)")
	flag.IntVar(&opts.days, "days", 1, "number of consecutive dates to generate")
	flag.BoolVar(&opts.backfill, "backfill", false, "generate every date from the epoch through today")
	flag.BoolVar(&opts.force, "force", false, "regenerate dates that are already complete")
	flag.Int64Var(&opts.seed, "seed", 0, "generation seed (default from config)")
	flag.IntVar(&opts.population, "population", 0, "customer population target (default from config)")
	flag.Parse()

	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		persona.Module,
		refdata.Module,
		population.Module,
		weather.Module,
		visit.Module,
		txn.Module,
		staffing.Module,
		ops.Module,
		ledger.Module,
		warehouse.Module,
		simulator.Module,

		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, runner *simulator.Runner, c clock.Clock, cfg config.Config, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go runOnce(sd, runner, opts, c, cfg, logger)
					return nil
				},
			})
		}),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func runOnce(sd fx.Shutdowner, runner *simulator.Runner, opts cliOptions, c clock.Clock, cfg config.Config, logger *zap.Logger) {
	req, err := buildRequest(opts, c.Now(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = sd.Shutdown(fx.ExitCode(2))
		return
	}

	summary, err := runner.Run(context.Background(), req)
	if err != nil {
		logger.Error("generation run aborted", zap.Error(err))
		_ = sd.Shutdown(fx.ExitCode(1))
		return
	}

	code := 0
	if summary.HasFailures() {
		code = 1
		for _, f := range summary.Failed {
			logger.Error("date not generated",
				zap.Time("date", f.Date),
				zap.Error(f.Err),
			)
		}
	}
	_ = sd.Shutdown(fx.ExitCode(code))
}

func buildRequest(opts cliOptions, now time.Time, cfg config.Config) (simulator.Request, error) {
	today := calendar.Midnight(now)

	req := simulator.Request{
		Days:             opts.days,
		Force:            opts.force,
		Seed:             opts.seed,
		PopulationTarget: opts.population,
	}

	if opts.backfill {
		req.From = cfg.EpochDate
		req.Days = int(today.Sub(cfg.EpochDate).Hours()/24) + 1
		return req, nil
	}

	req.From = today
	if opts.date != "" {
		from, err := time.ParseInLocation("2006-01-02", opts.date, time.UTC)
		if err != nil {
			return simulator.Request{}, fmt.Errorf("invalid -date %q: expected YYYY-MM-DD", opts.date)
		}
		req.From = from
	}
	return req, nil
}
