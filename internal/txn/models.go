// Package txn turns a day's scheduled visits into the transactional rows a
// resort's systems would have produced: lift scans, pass usage, ticket
// sales, rentals, food and beverage, and ski lessons.
package txn

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type LiftScan struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:scan_id;uniqueIndex;not null" json:"scan_id"`

	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	LiftID     string    `gorm:"not null" json:"lift_id"`
	Date       time.Time `gorm:"column:scan_date;not null;index" json:"scan_date"`
	ScanTime   time.Time `gorm:"column:scan_timestamp;not null" json:"scan_timestamp"`

	WaitTimeMinutes  float64 `gorm:"not null" json:"wait_time_minutes"`
	TemperatureF     float64 `gorm:"not null" json:"temperature_f"`
	WeatherCondition string  `gorm:"not null" json:"weather_condition"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LiftScan) TableName() string { return "lift_scans" }

type PassUsage struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:usage_id;uniqueIndex;not null" json:"usage_id"`

	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	Date       time.Time `gorm:"column:usage_date;not null;index" json:"usage_date"`

	FirstScanTime   time.Time `gorm:"not null" json:"first_scan_time"`
	LastScanTime    time.Time `gorm:"not null" json:"last_scan_time"`
	TotalLiftRides  int       `gorm:"not null" json:"total_lift_rides"`
	HoursOnMountain float64   `gorm:"not null" json:"hours_on_mountain"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PassUsage) TableName() string { return "pass_usage" }

type TicketSale struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:sale_id;uniqueIndex;not null" json:"sale_id"`

	CustomerID   string    `gorm:"not null;index" json:"customer_id"`
	TicketTypeID string    `gorm:"not null" json:"ticket_type_id"`
	LocationID   string    `gorm:"not null" json:"location_id"`
	Date         time.Time `gorm:"column:sale_date;not null;index" json:"sale_date"`
	PurchaseTime time.Time `gorm:"not null" json:"purchase_timestamp"`

	ValidFrom time.Time `gorm:"not null" json:"valid_from_date"`
	ValidTo   time.Time `gorm:"not null" json:"valid_to_date"`

	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentMethod string  `gorm:"not null" json:"payment_method"`
	Channel       string  `gorm:"column:purchase_channel;not null" json:"purchase_channel"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TicketSale) TableName() string { return "ticket_sales" }

type Rental struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:rental_id;uniqueIndex;not null" json:"rental_id"`

	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	LocationID string    `gorm:"not null" json:"location_id"`
	ProductID  string    `gorm:"not null" json:"product_id"`
	Date       time.Time `gorm:"column:rental_date;not null;index" json:"rental_date"`

	RentalTime    time.Time `gorm:"column:rental_timestamp;not null" json:"rental_timestamp"`
	ReturnTime    time.Time `gorm:"column:return_timestamp;not null" json:"return_timestamp"`
	DurationHours float64   `gorm:"column:rental_duration_hours;not null" json:"rental_duration_hours"`

	Amount float64 `gorm:"not null" json:"amount"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Rental) TableName() string { return "rentals" }

type FoodBeverage struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:transaction_id;uniqueIndex;not null" json:"transaction_id"`

	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	LocationID string    `gorm:"not null" json:"location_id"`
	ProductID  string    `gorm:"not null" json:"product_id"`
	Date       time.Time `gorm:"column:txn_date;not null;index" json:"txn_date"`
	TxnTime    time.Time `gorm:"column:transaction_timestamp;not null" json:"transaction_timestamp"`

	Quantity      int     `gorm:"not null" json:"quantity"`
	UnitPrice     float64 `gorm:"not null" json:"unit_price"`
	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentMethod string  `gorm:"not null" json:"payment_method"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (FoodBeverage) TableName() string { return "food_beverage" }

type SkiLesson struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:lesson_id;uniqueIndex;not null" json:"lesson_id"`

	CustomerID   string    `gorm:"not null;index" json:"customer_id"`
	InstructorID string    `gorm:"not null" json:"instructor_id"`
	Date         time.Time `gorm:"column:lesson_date;not null;index" json:"lesson_date"`
	StartTime    time.Time `gorm:"column:lesson_start_time;not null" json:"lesson_start_time"`

	LessonType    string  `gorm:"not null" json:"lesson_type"`
	SportType     string  `gorm:"not null" json:"sport_type"`
	SkillLevel    string  `gorm:"not null" json:"skill_level"`
	DurationHours float64 `gorm:"not null" json:"duration_hours"`
	GroupSize     int     `gorm:"not null" json:"group_size"`

	Amount float64 `gorm:"not null" json:"amount"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (SkiLesson) TableName() string { return "ski_lessons" }
