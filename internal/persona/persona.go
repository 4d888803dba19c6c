// Package persona defines the closed set of customer archetypes that drive
// visit cadence, spend, and weather response. Parameters are configuration
// data: coded defaults merged with the persona config file, validated once at
// startup, immutable afterwards.
package persona

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"
)

type Code string

const (
	LocalPassHolder Code = "local_pass_holder"
	WeekendWarrior  Code = "weekend_warrior"
	VacationFamily  Code = "vacation_family"
	DayTripper      Code = "day_tripper"
	ExpertSkier     Code = "expert_skier"
	GroupCorporate  Code = "group_corporate"
	Beginner        Code = "beginner"
)

var (
	ErrWeightsSum       = errors.New("persona_weights_must_sum_to_one")
	ErrInvalidParameter = errors.New("invalid_persona_parameter")
	ErrUnknownPersona   = errors.New("unknown_persona")
)

// Params is the full behavioral parameter set for one persona.
type Params struct {
	Code        Code
	Description string

	// Weight is this persona's share of the customer population.
	Weight float64

	// Base daily visit probabilities by day type, before season, holiday,
	// and weather adjustments.
	WeekdayProb  float64
	SaturdayProb float64
	SundayProb   float64

	// Lift rides per visit.
	LapsMin, LapsMax int

	RentalProb float64
	FBMin      int
	FBMax      int
	LessonProb float64

	// Spend multipliers per category applied on top of list prices.
	SpendFB     float64
	SpendRental float64
	SpendLesson float64

	// WeatherSensitivity scales the powder-day boost; 0 means indifferent.
	WeatherSensitivity float64

	// MinGapDays is the cooldown window: a visit within the window dampens
	// the next visit's probability.
	MinGapDays int

	// Visits-per-season band used for budget dampening and cadence tests.
	SeasonVisitsMin int
	SeasonVisitsMax int

	// ArrivalMeanHour skews when this persona shows up (fractional hours).
	ArrivalMeanHour float64

	PassHolder bool
	PassTypes  []string

	AgeMin, AgeMax int
	HomeStates     []string
}

// BaseProb returns the day-type base probability.
func (p Params) BaseProb(weekday time.Weekday) float64 {
	switch weekday {
	case time.Saturday:
		return p.SaturdayProb
	case time.Sunday:
		return p.SundayProb
	default:
		return p.WeekdayProb
	}
}

// Registry is the immutable persona catalogue.
type Registry struct {
	personas map[Code]Params
	order    []Code // stable sampling order
}

// All returns the personas in stable code order.
func (r *Registry) All() []Params {
	out := make([]Params, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.personas[code])
	}
	return out
}

func (r *Registry) Get(code Code) (Params, error) {
	p, ok := r.personas[code]
	if !ok {
		return Params{}, fmt.Errorf("%w: %s", ErrUnknownPersona, code)
	}
	return p, nil
}

// MustGet is for callers that hold a persona code read back from the
// customer table, where an unknown code is a programming defect.
func (r *Registry) MustGet(code Code) Params {
	p, err := r.Get(code)
	if err != nil {
		panic(err)
	}
	return p
}

// Sample draws a persona by population-mix weight.
func (r *Registry) Sample(rng *rand.Rand) Params {
	roll := rng.Float64()
	acc := 0.0
	for _, code := range r.order {
		acc += r.personas[code].Weight
		if roll < acc {
			return r.personas[code]
		}
	}
	// Float accumulation can land a hair short of 1; the last persona takes
	// the remainder.
	return r.personas[r.order[len(r.order)-1]]
}

const weightEpsilon = 1e-6

func validate(personas map[Code]Params) error {
	sum := 0.0
	for code, p := range personas {
		if p.Code != code {
			return fmt.Errorf("%w: %s code mismatch", ErrInvalidParameter, code)
		}
		if p.Weight <= 0 {
			return fmt.Errorf("%w: %s weight must be positive", ErrInvalidParameter, code)
		}
		if p.WeekdayProb < 0 || p.SaturdayProb < 0 || p.SundayProb < 0 {
			return fmt.Errorf("%w: %s base probabilities must be non-negative", ErrInvalidParameter, code)
		}
		if p.LapsMin <= 0 || p.LapsMax < p.LapsMin {
			return fmt.Errorf("%w: %s laps range", ErrInvalidParameter, code)
		}
		if p.FBMin < 0 || p.FBMax < p.FBMin {
			return fmt.Errorf("%w: %s f&b range", ErrInvalidParameter, code)
		}
		if p.RentalProb < 0 || p.RentalProb > 1 || p.LessonProb < 0 || p.LessonProb > 1 {
			return fmt.Errorf("%w: %s probability out of [0,1]", ErrInvalidParameter, code)
		}
		if p.SeasonVisitsMin <= 0 || p.SeasonVisitsMax < p.SeasonVisitsMin {
			return fmt.Errorf("%w: %s season visits band", ErrInvalidParameter, code)
		}
		if p.MinGapDays < 0 {
			return fmt.Errorf("%w: %s min gap days", ErrInvalidParameter, code)
		}
		if p.PassHolder && len(p.PassTypes) == 0 {
			return fmt.Errorf("%w: %s pass holder without pass types", ErrInvalidParameter, code)
		}
		sum += p.Weight
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("%w: got %.6f", ErrWeightsSum, sum)
	}
	return nil
}

func newRegistry(personas map[Code]Params) (*Registry, error) {
	if err := validate(personas); err != nil {
		return nil, err
	}
	order := make([]Code, 0, len(personas))
	for code := range personas {
		order = append(order, code)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return &Registry{personas: personas, order: order}, nil
}
