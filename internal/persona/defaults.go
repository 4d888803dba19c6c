package persona

import (
	"github.com/powderworks/skisim/internal/config"
)

// Default parameter sets. The probabilities, laps, rental, and F&B ranges
// mirror the tuning the analytics demos were built against; the cadence
// bands and cooldowns keep low-frequency personas from visiting
// back-to-back.
func defaults() map[Code]Params {
	return map[Code]Params{
		LocalPassHolder: {
			Code:               LocalPassHolder,
			Description:        "Frequent local visitors with season passes",
			Weight:             0.15,
			WeekdayProb:        0.12,
			SaturdayProb:       0.08,
			SundayProb:         0.08,
			LapsMin:            15,
			LapsMax:            25,
			RentalProb:         0.05,
			FBMin:              1,
			FBMax:              3,
			LessonProb:         0.02,
			SpendFB:            0.9,
			SpendRental:        1.0,
			SpendLesson:        1.0,
			WeatherSensitivity: 1.4,
			MinGapDays:         0,
			SeasonVisitsMin:    20,
			SeasonVisitsMax:    60,
			ArrivalMeanHour:    8.3,
			PassHolder:         true,
			PassTypes:          []string{"TKT008", "TKT009", "TKT014"},
			AgeMin:             25,
			AgeMax:             55,
			HomeStates:         []string{"CO"},
		},
		WeekendWarrior: {
			Code:               WeekendWarrior,
			Description:        "Regular weekend visitors",
			Weight:             0.25,
			WeekdayProb:        0.02,
			SaturdayProb:       0.15,
			SundayProb:         0.08,
			LapsMin:            10,
			LapsMax:            15,
			RentalProb:         0.15,
			FBMin:              2,
			FBMax:              4,
			LessonProb:         0.05,
			SpendFB:            1.0,
			SpendRental:        1.0,
			SpendLesson:        1.0,
			WeatherSensitivity: 1.2,
			MinGapDays:         2,
			SeasonVisitsMin:    8,
			SeasonVisitsMax:    25,
			ArrivalMeanHour:    8.8,
			PassHolder:         true,
			PassTypes:          []string{"TKT008", "TKT009"},
			AgeMin:             30,
			AgeMax:             50,
			HomeStates:         []string{"CO", "WY", "NM", "UT"},
		},
		VacationFamily: {
			Code:               VacationFamily,
			Description:        "Families on ski vacations",
			Weight:             0.30,
			WeekdayProb:        0.025,
			SaturdayProb:       0.035,
			SundayProb:         0.035,
			LapsMin:            6,
			LapsMax:            10,
			RentalProb:         0.85,
			FBMin:              3,
			FBMax:              6,
			LessonProb:         0.30,
			SpendFB:            1.2,
			SpendRental:        1.1,
			SpendLesson:        1.0,
			WeatherSensitivity: 0.8,
			MinGapDays:         1,
			SeasonVisitsMin:    2,
			SeasonVisitsMax:    10,
			ArrivalMeanHour:    9.6,
			AgeMin:             8,
			AgeMax:             65,
			HomeStates:         []string{"CA", "TX", "NY", "FL", "IL", "WA", "CO"},
		},
		DayTripper: {
			Code:               DayTripper,
			Description:        "Occasional day visitors",
			Weight:             0.20,
			WeekdayProb:        0.005,
			SaturdayProb:       0.015,
			SundayProb:         0.015,
			LapsMin:            8,
			LapsMax:            12,
			RentalProb:         0.45,
			FBMin:              1,
			FBMax:              2,
			LessonProb:         0.08,
			SpendFB:            1.0,
			SpendRental:        1.0,
			SpendLesson:        1.0,
			WeatherSensitivity: 1.0,
			MinGapDays:         7,
			SeasonVisitsMin:    1,
			SeasonVisitsMax:    6,
			ArrivalMeanHour:    9.2,
			AgeMin:             22,
			AgeMax:             60,
			HomeStates:         []string{"CA", "TX", "NY", "FL", "IL", "WA", "CO"},
		},
		ExpertSkier: {
			Code:               ExpertSkier,
			Description:        "Experienced skiers seeking challenging terrain",
			Weight:             0.05,
			WeekdayProb:        0.12,
			SaturdayProb:       0.12,
			SundayProb:         0.12,
			LapsMin:            18,
			LapsMax:            28,
			RentalProb:         0.20,
			FBMin:              0,
			FBMax:              2,
			LessonProb:         0.01,
			SpendFB:            0.8,
			SpendRental:        1.0,
			SpendLesson:        1.2,
			WeatherSensitivity: 1.8,
			MinGapDays:         0,
			SeasonVisitsMin:    15,
			SeasonVisitsMax:    50,
			ArrivalMeanHour:    8.1,
			PassHolder:         true,
			PassTypes:          []string{"TKT008"},
			AgeMin:             22,
			AgeMax:             45,
			HomeStates:         []string{"CO", "WY", "NM", "UT"},
		},
		GroupCorporate: {
			Code:               GroupCorporate,
			Description:        "Corporate groups and events",
			Weight:             0.03,
			WeekdayProb:        0.008,
			SaturdayProb:       0.002,
			SundayProb:         0.002,
			LapsMin:            5,
			LapsMax:            10,
			RentalProb:         0.70,
			FBMin:              3,
			FBMax:              5,
			LessonProb:         0.15,
			SpendFB:            1.3,
			SpendRental:        1.0,
			SpendLesson:        1.0,
			WeatherSensitivity: 0.5,
			MinGapDays:         10,
			SeasonVisitsMin:    1,
			SeasonVisitsMax:    4,
			ArrivalMeanHour:    9.9,
			AgeMin:             22,
			AgeMax:             60,
			HomeStates:         []string{"CO", "TX", "IL", "NY"},
		},
		Beginner: {
			Code:               Beginner,
			Description:        "New skiers learning the sport",
			Weight:             0.02,
			WeekdayProb:        0.01,
			SaturdayProb:       0.01,
			SundayProb:         0.01,
			LapsMin:            4,
			LapsMax:            7,
			RentalProb:         0.95,
			FBMin:              2,
			FBMax:              4,
			LessonProb:         0.60,
			SpendFB:            1.0,
			SpendRental:        1.0,
			SpendLesson:        1.0,
			WeatherSensitivity: 0.6,
			MinGapDays:         5,
			SeasonVisitsMin:    1,
			SeasonVisitsMax:    8,
			ArrivalMeanHour:    9.8,
			AgeMin:             22,
			AgeMax:             60,
			HomeStates:         []string{"CO", "CA", "TX", "FL"},
		},
	}
}

// NewRegistry merges the coded defaults with file overrides and validates the
// result. A validation failure here is a startup configuration error and
// aborts the app.
func NewRegistry(overrides config.PersonaOverrides) (*Registry, error) {
	personas := defaults()
	for code, ov := range overrides {
		p, ok := personas[Code(code)]
		if !ok {
			return nil, ErrUnknownPersona
		}
		applyOverride(&p, ov)
		personas[Code(code)] = p
	}
	return newRegistry(personas)
}

func applyOverride(p *Params, ov config.PersonaOverride) {
	if ov.Weight != nil {
		p.Weight = *ov.Weight
	}
	if ov.WeekdayProb != nil {
		p.WeekdayProb = *ov.WeekdayProb
	}
	if ov.SaturdayProb != nil {
		p.SaturdayProb = *ov.SaturdayProb
	}
	if ov.SundayProb != nil {
		p.SundayProb = *ov.SundayProb
	}
	if ov.WeatherSensitivity != nil {
		p.WeatherSensitivity = *ov.WeatherSensitivity
	}
	if ov.MinGapDays != nil {
		p.MinGapDays = *ov.MinGapDays
	}
	if ov.SeasonVisitsMin != nil {
		p.SeasonVisitsMin = *ov.SeasonVisitsMin
	}
	if ov.SeasonVisitsMax != nil {
		p.SeasonVisitsMax = *ov.SeasonVisitsMax
	}
	if ov.RentalProb != nil {
		p.RentalProb = *ov.RentalProb
	}
	if ov.LessonProb != nil {
		p.LessonProb = *ov.LessonProb
	}
	if ov.SpendFB != nil {
		p.SpendFB = *ov.SpendFB
	}
	if ov.SpendRental != nil {
		p.SpendRental = *ov.SpendRental
	}
	if ov.SpendLesson != nil {
		p.SpendLesson = *ov.SpendLesson
	}
}
