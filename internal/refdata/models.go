// Package refdata owns the static resort catalogue: lifts, locations,
// products, ticket types, and ski school instructors. The catalogue is seeded
// idempotently before any transactional generation so foreign keys always
// resolve.
package refdata

import "time"

const (
	CategoryRental       = "rental"
	CategoryFoodBeverage = "food_beverage"
	CategoryTicketWindow = "ticket_window"

	TicketDay      = "day"
	TicketMultiDay = "multi_day"
	TicketSeason   = "season"

	// Online ticket sales post against the web store location.
	OnlineLocationID = "LOC019"
)

type Lift struct {
	ID              string `gorm:"primaryKey;column:lift_id" json:"lift_id"`
	Name            string `gorm:"not null" json:"lift_name"`
	Zone            string `gorm:"not null" json:"mountain_zone"`
	CapacityPerHour int    `gorm:"not null" json:"capacity_per_hour"`
	// Popularity weights relative traffic; 1.0 is an average lift.
	Popularity float64   `gorm:"not null" json:"popularity"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Lift) TableName() string { return "lifts" }

type Location struct {
	ID        string    `gorm:"primaryKey;column:location_id" json:"location_id"`
	Name      string    `gorm:"not null" json:"location_name"`
	Category  string    `gorm:"not null" json:"category"`
	Zone      string    `gorm:"not null" json:"mountain_zone"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Location) TableName() string { return "locations" }

type Product struct {
	ID        string    `gorm:"primaryKey;column:product_id" json:"product_id"`
	Name      string    `gorm:"not null" json:"product_name"`
	Category  string    `gorm:"not null" json:"category"`
	ListPrice float64   `gorm:"not null" json:"list_price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Product) TableName() string { return "products" }

type TicketType struct {
	ID        string    `gorm:"primaryKey;column:ticket_type_id" json:"ticket_type_id"`
	Name      string    `gorm:"not null" json:"ticket_name"`
	Category  string    `gorm:"not null" json:"category"`
	ListPrice float64   `gorm:"not null" json:"list_price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TicketType) TableName() string { return "ticket_types" }

type Instructor struct {
	ID        string    `gorm:"primaryKey;column:instructor_id" json:"instructor_id"`
	Name      string    `gorm:"not null" json:"instructor_name"`
	Specialty string    `gorm:"not null" json:"specialty"`
	YearsExp  int       `gorm:"column:years_experience;not null" json:"years_experience"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Instructor) TableName() string { return "instructors" }
