package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/probeherd/probeherd/internal/probe"
	"gorm.io/datatypes"
)

// HistoryService implements the Service interface on top of a Repo
type HistoryService struct {
	repo Repo
}

// NewHistoryService returns a new run history service
func NewHistoryService(repo Repo) *HistoryService {
	return &HistoryService{repo: repo}
}

// SaveRun converts probe results into a stored run record
func (s *HistoryService) SaveRun(
	probeDesc string,
	started time.Time,
	finished time.Time,
	results []*probe.Result,
) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		Probe:      probeDesc,
		StartedAt:  started,
		FinishedAt: finished,
		Results:    make([]RunResult, 0, len(results)),
	}

	for _, r := range results {
		record := RunResult{
			TargetID:   r.TargetID,
			Label:      r.Label,
			Outcome:    string(r.Outcome),
			Output:     r.Output,
			Error:      r.Error,
			TimedOut:   r.TimedOut,
			DurationMS: r.Duration.Milliseconds(),
		}

		if len(r.Metadata) > 0 {
			raw, err := json.Marshal(r.Metadata)

			if err != nil {
				return nil, err
			}

			record.Metadata = datatypes.JSON(raw)
		}

		run.Results = append(run.Results, record)
	}

	return s.repo.CreateRun(run)
}

// GetRun returns a stored run by id
func (s *HistoryService) GetRun(id string) (*Run, error) {
	return s.repo.GetRun(id)
}

// ListRuns returns all stored runs
func (s *HistoryService) ListRuns() ([]*Run, error) {
	return s.repo.GetAllRuns()
}
