package ops

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Incident struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:incident_id;uniqueIndex;not null" json:"incident_id"`

	Date       time.Time `gorm:"column:incident_date;not null;index" json:"incident_date"`
	OccurredAt time.Time `gorm:"column:incident_timestamp;not null" json:"incident_timestamp"`

	IncidentType string `gorm:"not null" json:"incident_type"`
	Severity     string `gorm:"not null" json:"severity"`
	LiftID       string `json:"lift_id,omitempty"`
	TrailName    string `json:"trail_name,omitempty"`

	CustomerID string `gorm:"index" json:"customer_id,omitempty"`
	SkillLevel string `gorm:"not null" json:"customer_skill_level"`

	WeatherFactor         bool `gorm:"not null" json:"weather_factor"`
	FirstAidRendered      bool `gorm:"not null" json:"first_aid_rendered"`
	TransportRequired     bool `gorm:"not null" json:"transport_required"`
	PatrolResponseMinutes int  `gorm:"not null" json:"patrol_response_minutes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Incident) TableName() string { return "incidents" }

type GroomingLog struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:log_id;uniqueIndex;not null" json:"log_id"`

	Date      time.Time `gorm:"column:grooming_date;not null;index" json:"grooming_date"`
	TrailName string    `gorm:"not null" json:"trail_name"`
	MachineID string    `gorm:"not null" json:"machine_id"`

	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	GroomingType     string  `gorm:"not null" json:"grooming_type"`
	SnowDepthInches  float64 `gorm:"not null" json:"snow_depth_inches"`
	ConditionsBefore string  `gorm:"not null" json:"conditions_before"`
	ConditionsAfter  string  `gorm:"not null" json:"conditions_after"`
	FuelUsedGallons  float64 `gorm:"not null" json:"fuel_used_gallons"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (GroomingLog) TableName() string { return "grooming_logs" }

type ParkingRecord struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Code string       `gorm:"column:record_id;uniqueIndex;not null" json:"record_id"`

	Date time.Time `gorm:"column:record_date;not null;index" json:"record_date"`
	Hour int       `gorm:"column:record_hour;not null" json:"record_hour"`

	LotID            string  `gorm:"not null" json:"lot_id"`
	LotName          string  `gorm:"not null" json:"lot_name"`
	TotalSpaces      int     `gorm:"not null" json:"total_spaces"`
	OccupiedSpaces   int     `gorm:"not null" json:"occupied_spaces"`
	OccupancyPercent float64 `gorm:"not null" json:"occupancy_percent"`

	VehiclesEntered  int     `gorm:"not null" json:"vehicles_entered"`
	RevenueCollected float64 `gorm:"not null" json:"revenue_collected"`
	OverflowActive   bool    `gorm:"not null" json:"overflow_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ParkingRecord) TableName() string { return "parking_occupancy" }
