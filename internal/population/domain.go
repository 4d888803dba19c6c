// Package population maintains the synthetic customer base. Customers are
// created once and never regenerated: their identity and segment are stable
// across every incremental run, which is what keeps per-date regeneration
// from rewriting history.
package population

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrPopulationTarget = errors.New("invalid_population_target")

type Customer struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:customer_id;uniqueIndex;not null" json:"customer_id"`

	Name      string    `gorm:"column:customer_name;not null" json:"customer_name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`

	Segment      string `gorm:"column:customer_segment;not null;index" json:"customer_segment"`
	IsPassHolder bool   `gorm:"not null" json:"is_pass_holder"`
	PassType     string `json:"pass_type,omitempty"`

	FirstVisitDate time.Time `gorm:"not null" json:"first_visit_date"`
	HomeState      string    `gorm:"not null" json:"state"`
	HomeZip        string    `gorm:"column:home_zip_code;not null" json:"home_zip_code"`

	LifetimeVisits int     `gorm:"not null;default:0" json:"lifetime_visits"`
	LifetimeSpend  float64 `gorm:"not null;default:0" json:"lifetime_spend"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
