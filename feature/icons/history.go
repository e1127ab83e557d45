package icons

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildRun is one recorded pipeline run in the build-history table.
type BuildRun struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"size:36;index"`
	Mode       string `gorm:"size:32"`
	Added      int
	Removed    int
	Warnings   int
	Checksum   string `gorm:"size:64"`
	DurationMS int64
	CreatedAt  time.Time
}

// TableName keeps the table name stable regardless of GORM pluralization
// settings.
func (BuildRun) TableName() string {
	return "build_runs"
}

// Recorder persists run statistics. Recording is best-effort: failures are
// logged and never fail the build.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder, migrating the history table on first use.
func NewRecorder(db *gorm.DB, logger *zap.Logger) (*Recorder, error) {
	if err := db.AutoMigrate(&BuildRun{}); err != nil {
		return nil, err
	}
	return &Recorder{db: db, logger: logger}, nil
}

// Record inserts one run row.
func (r *Recorder) Record(runID, mode string, stats Stats, duration time.Duration) {
	run := BuildRun{
		RunID:      runID,
		Mode:       mode,
		Added:      stats.Added,
		Removed:    stats.Removed,
		Warnings:   stats.Warnings,
		Checksum:   stats.Checksum,
		DurationMS: duration.Milliseconds(),
	}
	if err := r.db.Create(&run).Error; err != nil {
		r.logger.Warn("failed to record build run", zap.Error(err))
	}
}
