// Package ledger is the completion record for generated dates. One row per
// calendar date; the unique date index is what makes concurrent runs safe and
// reruns idempotent.
package ledger

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

var (
	ErrInvalidDateRange     = errors.New("invalid_date_range")
	ErrDateAlreadyGenerated = errors.New("date_already_generated")
	ErrRunNotFound          = errors.New("generation_run_not_found")
)

// GenerationRun records one attempt to generate a calendar date. RunID is a
// fresh ULID per attempt; Date is unique, so a reclaimed date keeps its row
// and gets a new RunID.
type GenerationRun struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	RunID string       `gorm:"column:run_id;uniqueIndex;not null" json:"run_id"`
	Date  time.Time    `gorm:"column:generation_date;uniqueIndex;not null" json:"generation_date"`

	Seed             int64  `gorm:"not null" json:"seed"`
	GeneratorVersion string `gorm:"not null" json:"generator_version"`
	Status           Status `gorm:"not null;index" json:"status"`

	RowCounts datatypes.JSONMap `json:"row_counts,omitempty"`
	Error     string            `json:"error,omitempty"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (GenerationRun) TableName() string { return "generation_runs" }
