package report

import (
	"time"

	"gorm.io/datatypes"
)

// Run represents one stored probe run
type Run struct {
	ID         string `gorm:"primaryKey"`
	Probe      string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []RunResult `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// RunResult represents one stored per-target result within a run
type RunResult struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	RunID      string
	TargetID   string
	Label      string
	Outcome    string
	Output     string
	Error      string
	TimedOut   bool
	DurationMS int64
	Metadata   datatypes.JSON
}
