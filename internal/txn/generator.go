package txn

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/simrand"
	"github.com/powderworks/skisim/internal/visit"
	"github.com/powderworks/skisim/internal/weather"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	openHour     = 8.0
	lastLiftHour = 16.5

	minHoursOnMountain = 2.5
	maxHoursOnMountain = 9.0
	ridesPerHourCap    = 4
)

var (
	dayPassIDs     = []string{"TKT001", "TKT002", "TKT003", "TKT004", "TKT015", "TKT016"}
	paymentMethods = []string{"Credit Card", "Debit Card", "Cash"}
	fbPayments     = []string{"Credit Card", "Debit Card", "Cash", "Mobile Pay"}

	// F&B traffic by hour 8..16, lunch heavy.
	fbHourWeights = []float64{0.05, 0.08, 0.10, 0.12, 0.25, 0.20, 0.10, 0.08, 0.02}

	lessonTypes       = []string{"beginner_group", "intermediate_group", "advanced_group", "private", "kids_camp"}
	lessonTypeWeights = []float64{0.35, 0.20, 0.10, 0.20, 0.15}
	lessonBasePrices  = map[string]float64{
		"beginner_group":     80,
		"intermediate_group": 90,
		"advanced_group":     100,
		"private":            200,
		"kids_camp":          120,
	}
	lessonStartHours = []int{9, 10, 11, 13, 14}
)

// DayOutput is everything one generated day writes besides weather.
type DayOutput struct {
	Scans        []LiftScan
	Usage        []PassUsage
	Tickets      []TicketSale
	Rentals      []Rental
	FoodBeverage []FoodBeverage
	Lessons      []SkiLesson
}

func (o *DayOutput) RowCount() int {
	return len(o.Scans) + len(o.Usage) + len(o.Tickets) +
		len(o.Rentals) + len(o.FoodBeverage) + len(o.Lessons)
}

type GeneratorParams struct {
	fx.In

	Catalogue *refdata.Catalogue
	Node      *snowflake.Node
	Clock     clock.Clock
	Log       *zap.Logger
}

type Generator struct {
	catalogue *refdata.Catalogue
	node      *snowflake.Node
	clock     clock.Clock
	log       *zap.Logger
}

func NewGenerator(p GeneratorParams) *Generator {
	return &Generator{
		catalogue: p.Catalogue,
		node:      p.Node,
		clock:     p.Clock,
		log:       p.Log.Named("txn.generator"),
	}
}

// GenerateDay builds the transactional rows for every scheduled visit. Each
// customer draws from their own (seed, date, customer) stream, so one
// customer's activity never shifts another's, and regenerating the date
// reproduces every row.
func (g *Generator) GenerateDay(
	seed int64,
	day calendar.SeasonDay,
	wx weather.DaySummary,
	visits []visit.Visit,
) (*DayOutput, error) {
	out := &DayOutput{}
	if len(visits) == 0 {
		return out, nil
	}

	dayRng := simrand.DateStream(seed, day.Date, "txn", "day")
	model := newWaitModel(dayRng, g.catalogue, len(visits), day, wx)
	label := weatherLabel(wx)
	now := g.clock.Now()
	seq := &sequencer{date: day.Date}

	for _, v := range visits {
		rng := simrand.DateStream(seed, day.Date, "txn", v.Customer.Code)
		g.generateVisit(rng, out, seq, model, label, day, wx, v, now)
	}

	g.log.Debug("day generated",
		zap.Time("date", day.Date),
		zap.Int("visits", len(visits)),
		zap.Int("rows", out.RowCount()),
	)
	return out, nil
}

func (g *Generator) generateVisit(
	rng *rand.Rand,
	out *DayOutput,
	seq *sequencer,
	model *waitModel,
	label string,
	day calendar.SeasonDay,
	wx weather.DaySummary,
	v visit.Visit,
	now time.Time,
) {
	p := v.Persona
	cust := v.Customer.Code

	arrival := clampF(p.ArrivalMeanHour+rng.NormFloat64()*0.7, openHour, 11)
	hours := 4 + rng.Float64()*4
	if wx.PowderDay {
		hours++
	}
	hours = clampF(hours, minHoursOnMountain, maxHoursOnMountain)
	if arrival+hours > lastLiftHour {
		hours = lastLiftHour - arrival
	}

	rides := p.LapsMin + rng.IntN(p.LapsMax-p.LapsMin+1)
	if limit := int(hours * ridesPerHourCap); rides > limit {
		rides = max(1, limit)
	}

	// Scan offsets sorted inside the visit window.
	offsets := make([]float64, rides)
	for i := range offsets {
		offsets[i] = rng.Float64() * hours
	}
	slices.Sort(offsets)

	first := hourToTime(day.Date, arrival+offsets[0])
	last := hourToTime(day.Date, arrival+offsets[rides-1])

	for _, off := range offsets {
		at := arrival + off
		lift := pickLift(rng, g.catalogue.Lifts)
		out.Scans = append(out.Scans, LiftScan{
			ID:               g.node.Generate(),
			Code:             seq.next("SCAN"),
			CustomerID:       cust,
			LiftID:           lift.ID,
			Date:             day.Date,
			ScanTime:         hourToTime(day.Date, at),
			WaitTimeMinutes:  model.waitFor(rng, lift, int(at)),
			TemperatureF:     math.Round(wx.TempLowF + rng.Float64()*8),
			WeatherCondition: label,
			CreatedAt:        now,
		})
	}

	out.Usage = append(out.Usage, PassUsage{
		ID:              g.node.Generate(),
		Code:            fmt.Sprintf("USAGE%s%s", day.Date.Format("20060102"), cust),
		CustomerID:      cust,
		Date:            day.Date,
		FirstScanTime:   first,
		LastScanTime:    last,
		TotalLiftRides:  rides,
		HoursOnMountain: math.Round(hours*100) / 100,
		CreatedAt:       now,
	})

	if !v.Customer.IsPassHolder {
		out.Tickets = append(out.Tickets, g.ticketSale(rng, seq, day, cust, now))
	}

	if rng.Float64() < p.RentalProb {
		out.Rentals = append(out.Rentals, g.rental(rng, seq, day, cust, p.SpendRental, now))
	}

	fbCount := p.FBMin + rng.IntN(p.FBMax-p.FBMin+1)
	for i := 0; i < fbCount; i++ {
		out.FoodBeverage = append(out.FoodBeverage, g.fbTransaction(rng, seq, day, cust, p.SpendFB, now))
	}

	if rng.Float64() < p.LessonProb {
		out.Lessons = append(out.Lessons, g.lesson(rng, seq, day, cust, p.SpendLesson, now))
	}
}

func (g *Generator) ticketSale(rng *rand.Rand, seq *sequencer, day calendar.SeasonDay, cust string, now time.Time) TicketSale {
	ticketType := dayPassIDs[rng.IntN(len(dayPassIDs))]
	amount := g.catalogue.TicketPrices[ticketType]

	channel := "window"
	location := [...]string{"LOC017", "LOC018", "LOC020"}[rng.IntN(3)]
	switch roll := rng.Float64(); {
	case roll < 0.35:
		channel = "online"
		location = refdata.OnlineLocationID
	case roll >= 0.95:
		channel = "kiosk"
	}

	purchase := hourToTime(day.Date, 7+rng.Float64()*3)

	return TicketSale{
		ID:            g.node.Generate(),
		Code:          seq.next("SALE"),
		CustomerID:    cust,
		TicketTypeID:  ticketType,
		LocationID:    location,
		Date:          day.Date,
		PurchaseTime:  purchase,
		ValidFrom:     day.Date,
		ValidTo:       day.Date,
		Amount:        amount,
		PaymentMethod: paymentMethods[rng.IntN(len(paymentMethods))],
		Channel:       channel,
		CreatedAt:     now,
	}
}

func (g *Generator) rental(rng *rand.Rand, seq *sequencer, day calendar.SeasonDay, cust string, spendMult float64, now time.Time) Rental {
	product := g.catalogue.RentalProducts[rng.IntN(len(g.catalogue.RentalProducts))]
	location := g.catalogue.RentalLocations[rng.IntN(len(g.catalogue.RentalLocations))]

	startHour := 7 + rng.IntN(4)
	start := hourToTime(day.Date, float64(startHour))
	ret := hourToTime(day.Date, 16)

	return Rental{
		ID:            g.node.Generate(),
		Code:          seq.next("RENT"),
		CustomerID:    cust,
		LocationID:    location.ID,
		ProductID:     product.ID,
		Date:          day.Date,
		RentalTime:    start,
		ReturnTime:    ret,
		DurationHours: float64(16 - startHour),
		Amount:        round2(product.ListPrice * spendMult * (0.9 + rng.Float64()*0.2)),
		CreatedAt:     now,
	}
}

func (g *Generator) fbTransaction(rng *rand.Rand, seq *sequencer, day calendar.SeasonDay, cust string, spendMult float64, now time.Time) FoodBeverage {
	product := g.catalogue.FBProducts[rng.IntN(len(g.catalogue.FBProducts))]
	location := g.catalogue.FBLocations[rng.IntN(len(g.catalogue.FBLocations))]

	hour := 8 + weightedIndex(rng, fbHourWeights)
	at := hourToTime(day.Date, float64(hour)+rng.Float64())

	qty := 1 + rng.IntN(2)
	unit := round2(product.ListPrice * spendMult)

	return FoodBeverage{
		ID:            g.node.Generate(),
		Code:          seq.next("FB"),
		CustomerID:    cust,
		LocationID:    location.ID,
		ProductID:     product.ID,
		Date:          day.Date,
		TxnTime:       at,
		Quantity:      qty,
		UnitPrice:     unit,
		Amount:        round2(float64(qty) * unit),
		PaymentMethod: fbPayments[rng.IntN(len(fbPayments))],
		CreatedAt:     now,
	}
}

func (g *Generator) lesson(rng *rand.Rand, seq *sequencer, day calendar.SeasonDay, cust string, spendMult float64, now time.Time) SkiLesson {
	lessonType := lessonTypes[weightedIndex(rng, lessonTypeWeights)]
	duration := []float64{1, 2, 3}[weightedIndex(rng, []float64{0.2, 0.5, 0.3})]

	instructor := pickInstructor(rng, g.catalogue.Instructors, lessonType)

	groupSize := 1
	if lessonType != "private" {
		groupSize = 4 + rng.IntN(6)
	}

	sport := "Ski"
	if rng.Float64() < 0.25 {
		sport = "Snowboard"
	}
	skill := []string{"beginner", "intermediate", "advanced"}[weightedIndex(rng, []float64{0.4, 0.45, 0.15})]

	return SkiLesson{
		ID:            g.node.Generate(),
		Code:          seq.next("LES"),
		CustomerID:    cust,
		InstructorID:  instructor.ID,
		Date:          day.Date,
		StartTime:     hourToTime(day.Date, float64(lessonStartHours[rng.IntN(len(lessonStartHours))])),
		LessonType:    lessonType,
		SportType:     sport,
		SkillLevel:    skill,
		DurationHours: duration,
		GroupSize:     groupSize,
		Amount:        round2(lessonBasePrices[lessonType] * duration * spendMult),
		CreatedAt:     now,
	}
}

// sequencer issues the human-readable business codes embedded with the date,
// numbered in generation order.
type sequencer struct {
	date   time.Time
	counts map[string]int
}

func (s *sequencer) next(prefix string) string {
	if s.counts == nil {
		s.counts = map[string]int{}
	}
	s.counts[prefix]++
	return fmt.Sprintf("%s%s%08d", prefix, s.date.Format("20060102"), s.counts[prefix])
}

func weatherLabel(wx weather.DaySummary) string {
	switch {
	case wx.StormWarning:
		return "Stormy"
	case wx.MaxWindMPH >= 25:
		return "Windy"
	case wx.Condition == "Powder" || wx.Condition == "Fresh Snow":
		return wx.Condition
	default:
		return "Clear"
	}
}

func pickLift(rng *rand.Rand, lifts []refdata.Lift) refdata.Lift {
	total := 0.0
	for _, l := range lifts {
		total += l.Popularity
	}
	roll := rng.Float64() * total
	acc := 0.0
	for _, l := range lifts {
		acc += l.Popularity
		if roll < acc {
			return l
		}
	}
	return lifts[len(lifts)-1]
}

func pickInstructor(rng *rand.Rand, instructors []refdata.Instructor, specialty string) refdata.Instructor {
	matching := make([]refdata.Instructor, 0, len(instructors))
	for _, in := range instructors {
		if in.Specialty == specialty {
			matching = append(matching, in)
		}
	}
	if len(matching) == 0 {
		matching = instructors
	}
	return matching[rng.IntN(len(matching))]
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if roll < acc {
			return i
		}
	}
	return len(weights) - 1
}

func hourToTime(date time.Time, hour float64) time.Time {
	return date.Add(time.Duration(hour * float64(time.Hour))).Truncate(time.Second)
}

func clampF(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
