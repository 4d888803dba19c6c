package weather

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Zone is a mountain micro-climate area.
type Zone struct {
	Name string
	// TempOffsetF shifts temperatures relative to the mountain baseline;
	// higher zones are colder.
	TempOffsetF float64
	// SnowFactor scales snowfall relative to the mountain baseline.
	SnowFactor float64
}

// Zones in descending elevation order.
var Zones = []Zone{
	{Name: "Summit Peak", TempOffsetF: -8, SnowFactor: 1.3},
	{Name: "North Ridge", TempOffsetF: -4, SnowFactor: 1.15},
	{Name: "Alpine Bowl", TempOffsetF: -2, SnowFactor: 1.0},
	{Name: "Village Base", TempOffsetF: 0, SnowFactor: 0.8},
}

const (
	PowderThresholdInches = 6.0
	StormSnowfallInches   = 12.0
	HighWindThresholdMPH  = 35.0
)

// Observation is one day's weather in one zone. Generated once per
// (date, zone); identical on every regeneration under the same seed.
type Observation struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Date            time.Time    `gorm:"column:weather_date;not null;uniqueIndex:idx_weather_date_zone" json:"weather_date"`
	Zone            string       `gorm:"column:mountain_zone;not null;uniqueIndex:idx_weather_date_zone" json:"mountain_zone"`
	SnowCondition   string       `gorm:"not null" json:"snow_condition"`
	SnowfallInches  float64      `gorm:"not null" json:"snowfall_inches"`
	BaseDepthInches float64      `gorm:"not null" json:"base_depth_inches"`
	TempHighF       float64      `gorm:"not null" json:"temp_high_f"`
	TempLowF        float64      `gorm:"not null" json:"temp_low_f"`
	WindSpeedMPH    float64      `gorm:"not null" json:"wind_speed_mph"`
	PowderDay       bool         `gorm:"not null" json:"powder_day"`
	HighWind        bool         `gorm:"not null" json:"high_wind"`
	StormWarning    bool         `gorm:"not null" json:"storm_warning"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
}

func (Observation) TableName() string { return "weather_conditions" }

// DaySummary condenses all zones into the signals the visit scheduler and
// transaction generator consume.
type DaySummary struct {
	Date           time.Time
	SnowfallInches float64 // summit zone new snow
	TempHighF      float64 // base-area high
	TempLowF       float64
	MaxWindMPH     float64
	PowderDay      bool
	HighWind       bool
	StormWarning   bool
	Condition      string
}

// Summarize derives the mountain-wide summary from per-zone observations.
func Summarize(date time.Time, obs []Observation) DaySummary {
	s := DaySummary{Date: date}
	for i, o := range obs {
		if i == 0 || o.SnowfallInches > s.SnowfallInches {
			s.SnowfallInches = o.SnowfallInches
		}
		if o.WindSpeedMPH > s.MaxWindMPH {
			s.MaxWindMPH = o.WindSpeedMPH
		}
		s.PowderDay = s.PowderDay || o.PowderDay
		s.HighWind = s.HighWind || o.HighWind
		s.StormWarning = s.StormWarning || o.StormWarning
		if o.Zone == "Village Base" {
			s.TempHighF = o.TempHighF
			s.TempLowF = o.TempLowF
			s.Condition = o.SnowCondition
		}
	}
	return s
}
