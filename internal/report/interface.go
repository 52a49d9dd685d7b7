package report

import (
	"time"

	"github.com/probeherd/probeherd/internal/probe"
)

//go:generate mockgen -destination=../mock/report/mock_report.go -package=mock_report . Repo,Service

// Repo interface representing access to stored runs
type Repo interface {
	CreateRun(run *Run) (*Run, error)
	GetRun(id string) (*Run, error)
	GetAllRuns() ([]*Run, error)
	DeleteRun(id string) error
}

// Service interface for persisting and retrieving run history
type Service interface {
	SaveRun(probeDesc string, started, finished time.Time, results []*probe.Result) (*Run, error)
	GetRun(id string) (*Run, error)
	ListRuns() ([]*Run, error)
}
