package report

import (
	"errors"

	"github.com/probeherd/probeherd/internal/exception"
	"gorm.io/gorm"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new run history repo backed by sqlite
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{
		db: db,
	}
}

// CreateRun stores a run and its per-target results
func (r *SqliteRepo) CreateRun(run *Run) (*Run, error) {
	if run.ID == "" {
		return nil, errors.New("run id cannot be empty")
	}

	if result := r.db.Create(run); result.Error != nil {
		return nil, result.Error
	}

	return run, nil
}

// GetRun returns a stored run with its results
func (r *SqliteRepo) GetRun(id string) (*Run, error) {
	if id == "" {
		return nil, errors.New("run id cannot be empty")
	}

	run := Run{ID: id}

	if result := r.db.Preload("Results").First(&run); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return &run, nil
}

// GetAllRuns returns all stored runs, most recent first
func (r *SqliteRepo) GetAllRuns() ([]*Run, error) {
	runs := []*Run{}

	if result := r.db.Order("started_at desc").Find(&runs); result.Error != nil {
		return nil, result.Error
	}

	return runs, nil
}

// DeleteRun removes a stored run and its results
func (r *SqliteRepo) DeleteRun(id string) error {
	if id == "" {
		return errors.New("run id cannot be empty")
	}

	if err := r.db.Where("run_id = ?", id).Delete(&RunResult{}).Error; err != nil {
		return err
	}

	return r.db.Delete(&Run{ID: id}).Error
}
