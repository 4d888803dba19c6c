// Package staffing schedules the day's workforce. Headcount follows expected
// attendance, so staffing rows correlate with the visit volume analysts see
// in the transactional tables.
package staffing

import (
	"fmt"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/simrand"
	"github.com/powderworks/skisim/internal/weather"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Schedule struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:schedule_id;uniqueIndex;not null" json:"schedule_id"`

	Date       time.Time `gorm:"column:schedule_date;not null;index" json:"schedule_date"`
	LocationID string    `json:"location_id,omitempty"`
	Department string    `gorm:"not null" json:"department"`
	JobRole    string    `gorm:"not null" json:"job_role"`

	ScheduledEmployees int     `gorm:"not null" json:"scheduled_employees"`
	ActualEmployees    int     `gorm:"not null" json:"actual_employees"`
	CoverageRatio      float64 `gorm:"not null" json:"coverage_ratio"`

	ShiftStart time.Time `gorm:"not null" json:"shift_start"`
	ShiftEnd   time.Time `gorm:"not null" json:"shift_end"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Schedule) TableName() string { return "staffing_schedule" }

type department struct {
	id         string
	name       string
	role       string
	baseStaff  int
	perVisitor float64
	locations  []string
	shiftStart int
	shiftEnd   int
}

var departments = []department{
	{id: "LIFT", name: "Lift Operations", role: "Lift Operator", baseStaff: 18, perVisitor: 0.004, shiftStart: 8, shiftEnd: 17},
	{id: "RENT", name: "Rentals", role: "Rental Tech", baseStaff: 8, perVisitor: 0.003,
		locations: []string{"LOC001", "LOC002", "LOC003", "LOC004", "LOC005", "LOC006"}, shiftStart: 7, shiftEnd: 17},
	{id: "FOOD", name: "Food & Beverage", role: "F&B Staff", baseStaff: 15, perVisitor: 0.005,
		locations: []string{"LOC007", "LOC008", "LOC009", "LOC010", "LOC011", "LOC012", "LOC013", "LOC014", "LOC015", "LOC016"}, shiftStart: 8, shiftEnd: 17},
	{id: "TICK", name: "Ticket Sales", role: "Ticket Agent", baseStaff: 6, perVisitor: 0.002,
		locations: []string{"LOC017", "LOC018", "LOC020"}, shiftStart: 7, shiftEnd: 16},
	{id: "SKPT", name: "Ski Patrol", role: "Patroller", baseStaff: 10, perVisitor: 0.002, shiftStart: 7, shiftEnd: 17},
	{id: "GRND", name: "Grounds", role: "Groomer", baseStaff: 6, shiftStart: 18, shiftEnd: 23},
}

type Params struct {
	fx.In

	Node  *snowflake.Node
	Clock clock.Clock
	Log   *zap.Logger
}

type Generator struct {
	node  *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewGenerator(p Params) *Generator {
	return &Generator{node: p.Node, clock: p.Clock, log: p.Log.Named("staffing.generator")}
}

// GenerateDay produces one schedule row per department.
func (g *Generator) GenerateDay(seed int64, day calendar.SeasonDay, wx weather.DaySummary, visitors int) []Schedule {
	if !day.Operating {
		return nil
	}

	rng := simrand.DateStream(seed, day.Date, "staffing")
	now := g.clock.Now()

	out := make([]Schedule, 0, len(departments))
	for _, d := range departments {
		scheduled := float64(d.baseStaff) + float64(visitors)*d.perVisitor
		if day.IsWeekend {
			scheduled += 4
		}
		if wx.PowderDay {
			scheduled += 3
		}
		if wx.StormWarning {
			scheduled -= 2
		}
		sched := max(2, int(math.Round(scheduled)))
		actual := max(1, int(math.Round(float64(sched)*(0.9+rng.Float64()*0.15))))

		location := ""
		if len(d.locations) > 0 {
			location = d.locations[rng.IntN(len(d.locations))]
		}

		out = append(out, Schedule{
			ID:                 g.node.Generate(),
			Code:               fmt.Sprintf("STAFF%s%s", day.Date.Format("20060102"), d.id),
			Date:               day.Date,
			LocationID:         location,
			Department:         d.name,
			JobRole:            d.role,
			ScheduledEmployees: sched,
			ActualEmployees:    actual,
			CoverageRatio:      math.Round(float64(actual)/float64(sched)*100) / 100,
			ShiftStart:         day.Date.Add(time.Duration(d.shiftStart) * time.Hour),
			ShiftEnd:           day.Date.Add(time.Duration(d.shiftEnd) * time.Hour),
			CreatedAt:          now,
		})
	}
	return out
}

var Module = fx.Module("staffing",
	fx.Provide(NewGenerator),
)
