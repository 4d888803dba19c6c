package refdata

import (
	"context"
	"fmt"

	"github.com/powderworks/skisim/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Catalogue is the in-memory view generators draw from, pre-split by
// category so hot paths never filter.
type Catalogue struct {
	Lifts       []Lift
	Instructors []Instructor

	RentalProducts []Product
	FBProducts     []Product

	RentalLocations []Location
	FBLocations     []Location
	TicketLocations []Location

	TicketPrices map[string]float64
}

func NewCatalogue() *Catalogue {
	c := &Catalogue{
		Lifts:        Lifts(),
		Instructors:  Instructors(),
		TicketPrices: map[string]float64{},
	}
	for _, p := range Products() {
		if p.Category == CategoryRental {
			c.RentalProducts = append(c.RentalProducts, p)
		} else {
			c.FBProducts = append(c.FBProducts, p)
		}
	}
	for _, l := range Locations() {
		switch l.Category {
		case CategoryRental:
			c.RentalLocations = append(c.RentalLocations, l)
		case CategoryFoodBeverage:
			c.FBLocations = append(c.FBLocations, l)
		case CategoryTicketWindow:
			c.TicketLocations = append(c.TicketLocations, l)
		}
	}
	for _, t := range TicketTypes() {
		c.TicketPrices[t.ID] = t.ListPrice
	}
	return c
}

type SeederParams struct {
	fx.In

	DB    *gorm.DB
	Clock clock.Clock
	Log   *zap.Logger
}

// Seeder writes the catalogue to the warehouse. Reruns update in place, so
// price or naming changes in a new build propagate without touching
// transactional history.
type Seeder struct {
	db    *gorm.DB
	clock clock.Clock
	log   *zap.Logger
}

func NewSeeder(p SeederParams) *Seeder {
	return &Seeder{db: p.DB, clock: p.Clock, log: p.Log.Named("refdata.seeder")}
}

func (s *Seeder) Seed(ctx context.Context) error {
	now := s.clock.Now()

	lifts := Lifts()
	for i := range lifts {
		lifts[i].CreatedAt = now
	}
	locations := Locations()
	for i := range locations {
		locations[i].CreatedAt = now
	}
	products := Products()
	for i := range products {
		products[i].CreatedAt = now
	}
	tickets := TicketTypes()
	for i := range tickets {
		tickets[i].CreatedAt = now
	}
	instructors := Instructors()
	for i := range instructors {
		instructors[i].CreatedAt = now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{UpdateAll: true}
		if err := tx.Clauses(upsert).Create(&lifts).Error; err != nil {
			return fmt.Errorf("seed lifts: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&locations).Error; err != nil {
			return fmt.Errorf("seed locations: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&tickets).Error; err != nil {
			return fmt.Errorf("seed ticket types: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&instructors).Error; err != nil {
			return fmt.Errorf("seed instructors: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("reference data seeded",
		zap.Int("lifts", len(lifts)),
		zap.Int("locations", len(locations)),
		zap.Int("products", len(products)),
		zap.Int("ticket_types", len(tickets)),
		zap.Int("instructors", len(instructors)),
	)
	return nil
}
