package txn

import (
	"fmt"
	"time"

	"github.com/powderworks/skisim/internal/calendar"
)

// ConsistencyError reports a generated row that breaks a cross-row invariant.
// It should never fire in production; Validate runs before every persist as a
// guard against generator regressions.
type ConsistencyError struct {
	Table  string
	Code   string
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation in %s (%s): %s", e.Table, e.Code, e.Reason)
}

// Validate checks that every row belongs to the given date, that scan
// activity stays inside operating hours, and that every transactional row
// names a customer who actually visited: one with a pass_usage row that day.
func (o *DayOutput) Validate(day calendar.SeasonDay) error {
	open := hourToTime(day.Date, openHour)
	close := hourToTime(day.Date, lastLiftHour)

	onMountain := make(map[string]struct{}, len(o.Usage))
	for _, u := range o.Usage {
		onMountain[u.CustomerID] = struct{}{}
	}

	for _, s := range o.Scans {
		if !sameDate(s.Date, day.Date) {
			return &ConsistencyError{Table: LiftScan{}.TableName(), Code: s.Code, Reason: "scan dated outside the generated day"}
		}
		if s.ScanTime.Before(open) || s.ScanTime.After(close) {
			return &ConsistencyError{Table: LiftScan{}.TableName(), Code: s.Code, Reason: "scan outside operating hours"}
		}
		if _, ok := onMountain[s.CustomerID]; !ok {
			return &ConsistencyError{Table: LiftScan{}.TableName(), Code: s.Code, Reason: "scan by a customer with no pass usage"}
		}
	}
	for _, u := range o.Usage {
		if !sameDate(u.Date, day.Date) {
			return &ConsistencyError{Table: PassUsage{}.TableName(), Code: u.Code, Reason: "usage dated outside the generated day"}
		}
		if u.LastScanTime.Before(u.FirstScanTime) {
			return &ConsistencyError{Table: PassUsage{}.TableName(), Code: u.Code, Reason: "last scan precedes first scan"}
		}
		if u.TotalLiftRides < 1 {
			return &ConsistencyError{Table: PassUsage{}.TableName(), Code: u.Code, Reason: "visit without lift rides"}
		}
	}
	for _, t := range o.Tickets {
		if !sameDate(t.Date, day.Date) {
			return &ConsistencyError{Table: TicketSale{}.TableName(), Code: t.Code, Reason: "sale dated outside the generated day"}
		}
		if _, ok := onMountain[t.CustomerID]; !ok {
			return &ConsistencyError{Table: TicketSale{}.TableName(), Code: t.Code, Reason: "sale to a customer with no pass usage"}
		}
	}
	for _, r := range o.Rentals {
		if !sameDate(r.Date, day.Date) {
			return &ConsistencyError{Table: Rental{}.TableName(), Code: r.Code, Reason: "rental dated outside the generated day"}
		}
		if r.ReturnTime.Before(r.RentalTime) {
			return &ConsistencyError{Table: Rental{}.TableName(), Code: r.Code, Reason: "return precedes pickup"}
		}
		if _, ok := onMountain[r.CustomerID]; !ok {
			return &ConsistencyError{Table: Rental{}.TableName(), Code: r.Code, Reason: "rental by a customer with no pass usage"}
		}
	}
	for _, f := range o.FoodBeverage {
		if !sameDate(f.Date, day.Date) {
			return &ConsistencyError{Table: FoodBeverage{}.TableName(), Code: f.Code, Reason: "transaction dated outside the generated day"}
		}
		if _, ok := onMountain[f.CustomerID]; !ok {
			return &ConsistencyError{Table: FoodBeverage{}.TableName(), Code: f.Code, Reason: "purchase by a customer with no pass usage"}
		}
	}
	for _, l := range o.Lessons {
		if !sameDate(l.Date, day.Date) {
			return &ConsistencyError{Table: SkiLesson{}.TableName(), Code: l.Code, Reason: "lesson dated outside the generated day"}
		}
		if _, ok := onMountain[l.CustomerID]; !ok {
			return &ConsistencyError{Table: SkiLesson{}.TableName(), Code: l.Code, Reason: "lesson for a customer with no pass usage"}
		}
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	return calendar.Midnight(a).Equal(calendar.Midnight(b))
}
