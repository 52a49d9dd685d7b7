package report_test

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/probeherd/probeherd/internal/exception"
	"github.com/probeherd/probeherd/internal/report"
	"github.com/probeherd/probeherd/internal/test_util"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestRunSqliteRepo(t *testing.T) {
	testDBFile := path.Join(t.TempDir(), "report.db")

	defer func() {
		os.RemoveAll(testDBFile)
	}()

	db, err := test_util.GetDBConnection(testDBFile)

	if err != nil {
		t.Logf("failed to create test db: %s", err.Error())
		t.FailNow()
	}

	if err := test_util.Migrate(db, &report.Run{}, &report.RunResult{}); err != nil {
		t.Logf("failed to migrate test db: %s", err.Error())
		t.FailNow()
	}

	repo := report.NewSqliteRepo(db)

	t.Run("returns record not found error", func(st *testing.T) {
		_, err := repo.GetRun("noop")

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("rejects run without id", func(st *testing.T) {
		_, err := repo.CreateRun(&report.Run{})

		assert.Error(st, err)
	})

	t.Run("creates, reads, and destroys runs", func(st *testing.T) {
		run := &report.Run{
			ID:         "run-1",
			Probe:      "snmpv1 get mib-2 system",
			StartedAt:  time.Now().Add(-time.Minute),
			FinishedAt: time.Now(),
			Results: []report.RunResult{
				{
					TargetID:   "alpha",
					Label:      "Alpha router",
					Outcome:    "success",
					Output:     "sysName: alpha",
					DurationMS: 120,
					Metadata:   datatypes.JSON([]byte(`{"sysName":"alpha"}`)),
				},
				{
					TargetID:   "beta",
					Label:      "Beta router",
					Outcome:    "failure",
					Error:      "network unreachable",
					DurationMS: 45,
				},
			},
		}

		created, err := repo.CreateRun(run)

		assert.NoError(st, err)
		assert.Equal(st, "run-1", created.ID)

		found, err := repo.GetRun("run-1")

		assert.NoError(st, err)
		assert.Equal(st, run.Probe, found.Probe)
		assert.Equal(st, 2, len(found.Results))
		assert.Equal(st, "alpha", found.Results[0].TargetID)
		assert.Equal(st, "failure", found.Results[1].Outcome)

		err = repo.DeleteRun("run-1")

		assert.NoError(st, err)

		deleted, err := repo.GetRun("run-1")

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
		assert.Nil(st, deleted)
	})

	t.Run("lists runs most recent first", func(st *testing.T) {
		older := &report.Run{
			ID:        "run-older",
			Probe:     "ldap anonymous bind",
			StartedAt: time.Now().Add(-time.Hour),
		}

		newer := &report.Run{
			ID:        "run-newer",
			Probe:     "ldap anonymous bind",
			StartedAt: time.Now(),
		}

		_, err := repo.CreateRun(older)

		assert.NoError(st, err)

		_, err = repo.CreateRun(newer)

		assert.NoError(st, err)

		runs, err := repo.GetAllRuns()

		assert.NoError(st, err)
		assert.Equal(st, 2, len(runs))
		assert.Equal(st, "run-newer", runs[0].ID)
		assert.Equal(st, "run-older", runs[1].ID)
	})
}
