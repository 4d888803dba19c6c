package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PersonaOverride carries the tunable subset of a persona's parameters. Zero
// fields mean "keep the coded default"; the persona registry validates the
// merged result at startup.
type PersonaOverride struct {
	Weight             *float64 `mapstructure:"weight"`
	WeekdayProb        *float64 `mapstructure:"weekdayProb"`
	SaturdayProb       *float64 `mapstructure:"saturdayProb"`
	SundayProb         *float64 `mapstructure:"sundayProb"`
	WeatherSensitivity *float64 `mapstructure:"weatherSensitivity"`
	MinGapDays         *int     `mapstructure:"minGapDays"`
	SeasonVisitsMin    *int     `mapstructure:"seasonVisitsMin"`
	SeasonVisitsMax    *int     `mapstructure:"seasonVisitsMax"`
	RentalProb         *float64 `mapstructure:"rentalProb"`
	LessonProb         *float64 `mapstructure:"lessonProb"`
	SpendFB            *float64 `mapstructure:"spendFb"`
	SpendRental        *float64 `mapstructure:"spendRental"`
	SpendLesson        *float64 `mapstructure:"spendLesson"`
}

// PersonaOverrides maps persona code to its override block.
type PersonaOverrides map[string]PersonaOverride

// PersonaConfigHolder keeps the current persona overrides and refreshes them
// when the backing file changes.
type PersonaConfigHolder struct {
	current atomic.Value // holds PersonaOverrides
}

func NewPersonaConfigHolder() (*PersonaConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("personas")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/skisim/config") // Volume-mounted config
	v.AddConfigPath("/etc/skisim")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("SKISIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &PersonaConfigHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No file: coded persona defaults apply unchanged.
		holder.current.Store(PersonaOverrides{})
		return holder, nil
	}

	overrides, err := decodePersonaOverrides(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(overrides)

	v.OnConfigChange(func(fsnotify.Event) {
		reloaded, err := decodePersonaOverrides(v)
		if err != nil {
			log.Printf("persona config reload failed: %v", err)
			return
		}
		holder.current.Store(reloaded)
	})
	v.WatchConfig()

	return holder, nil
}

func (h *PersonaConfigHolder) Current() PersonaOverrides {
	if v, ok := h.current.Load().(PersonaOverrides); ok {
		return v
	}
	return PersonaOverrides{}
}

func decodePersonaOverrides(v *viper.Viper) (PersonaOverrides, error) {
	var overrides PersonaOverrides
	if err := v.UnmarshalKey("personas", &overrides); err != nil {
		return nil, err
	}
	if overrides == nil {
		overrides = PersonaOverrides{}
	}
	return overrides, nil
}
