package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	baseworker "ai-screening-backend/lib/utils/base-worker"
	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

func (c fakeClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type mockJobStore struct {
	recs          map[string]*dbmodels.Job
	statusUpdates int
}

func (m *mockJobStore) Create(dbmodels.Job) (string, error) { return "", nil }
func (m *mockJobStore) GetByID(id string) (*dbmodels.Job, error) {
	return m.recs[id], nil
}
func (m *mockJobStore) List(dbmodels.JobFilter) ([]dbmodels.Job, error) { return nil, nil }
func (m *mockJobStore) Update(string, map[string]interface{}) error     { return nil }

func (m *mockJobStore) SetStatus(ids []string, status models.JobStatus) error {
	for _, id := range ids {
		if rec, ok := m.recs[id]; ok && rec.Status != status {
			rec.Status = status
			m.statusUpdates++
		}
	}
	return nil
}

func (m *mockJobStore) SetStatusFiltered(id string, from, to models.JobStatus) error {
	if rec, ok := m.recs[id]; ok && rec.Status == from {
		rec.Status = to
		m.statusUpdates++
	}
	return nil
}

func (m *mockJobStore) ListOverdue(now time.Time) ([]dbmodels.Job, error) {
	list := []dbmodels.Job{}
	for _, rec := range m.recs {
		if rec.Status == models.JobStatusApplicationsOpen && rec.Deadline.Before(now) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (m *mockJobStore) ListOverdueInterviews(now time.Time) ([]dbmodels.Job, error) {
	list := []dbmodels.Job{}
	for _, rec := range m.recs {
		if rec.InterviewDeadline == nil || !rec.InterviewDeadline.Before(now) {
			continue
		}
		if rec.Status == models.JobStatusInterviewsOpen || rec.Status == models.JobStatusShortlisted {
			list = append(list, *rec)
		}
	}
	return list, nil
}

type mockApplicantStore struct {
	recs    map[string]*dbmodels.Application
	updates int
}

func (m *mockApplicantStore) Create(dbmodels.Application) (string, error) { return "", nil }
func (m *mockApplicantStore) GetByID(id string) (*dbmodels.Application, error) {
	return m.recs[id], nil
}
func (m *mockApplicantStore) IsExist(string, string) (bool, error)             { return false, nil }
func (m *mockApplicantStore) ListByJob(string) ([]dbmodels.Application, error) { return nil, nil }
func (m *mockApplicantStore) ListShortlistedByJob(string) ([]dbmodels.Application, error) {
	return nil, nil
}

func (m *mockApplicantStore) ListActiveShortlisted(jobID string) ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	for _, rec := range m.recs {
		if rec.JobID != jobID || !rec.Shortlisted {
			continue
		}
		switch rec.Status {
		case models.ApplicationStatusSelected, models.ApplicationStatusNotSelected, models.ApplicationStatusInterviewExpired:
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (m *mockApplicantStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := m.recs[id]
	if !ok {
		return nil
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.ApplicationStatus)
	}
	if score, ok := updMap["interview_score"]; ok {
		value := score.(float64)
		rec.InterviewScore = &value
	}
	m.updates++
	return nil
}

func (m *mockApplicantStore) SetStatus(ids []string, status models.ApplicationStatus) error {
	for _, id := range ids {
		if rec, ok := m.recs[id]; ok && rec.Status != status {
			rec.Status = status
			m.updates++
		}
	}
	return nil
}

type mockInterviewStore struct {
	recs map[string]*dbmodels.Interview
	apps *mockApplicantStore
}

func (m *mockInterviewStore) Save(rec dbmodels.Interview) (string, error) { return rec.ID, nil }
func (m *mockInterviewStore) GetByID(id string) (*dbmodels.Interview, error) {
	return m.recs[id], nil
}

func (m *mockInterviewStore) GetByApplicationID(applicationID string) (*dbmodels.Interview, error) {
	for _, rec := range m.recs {
		if rec.ApplicationID == applicationID {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *mockInterviewStore) ListByJob(string) ([]dbmodels.Interview, error)       { return nil, nil }
func (m *mockInterviewStore) ListByCandidate(string) ([]dbmodels.Interview, error) { return nil, nil }
func (m *mockInterviewStore) Update(string, map[string]interface{}) error          { return nil }

func (m *mockInterviewStore) SetStatus(ids []string, status models.InterviewStatus) error {
	for _, id := range ids {
		if rec, ok := m.recs[id]; ok {
			rec.Status = status
		}
	}
	return nil
}

func (m *mockInterviewStore) ListExpired(now time.Time) ([]dbmodels.Interview, error) {
	list := []dbmodels.Interview{}
	for _, rec := range m.recs {
		if rec.Status.IsTerminal() {
			continue
		}
		if rec.Deadline.Before(now) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (m *mockInterviewStore) CountOpenByJob(jobID string) (int64, error) {
	var count int64
	for _, rec := range m.recs {
		if rec.JobID == jobID && !rec.Status.IsTerminal() {
			count++
		}
	}
	return count, nil
}

func (m *mockInterviewStore) ListCompletedNotCascaded() ([]dbmodels.Interview, error) {
	list := []dbmodels.Interview{}
	for _, rec := range m.recs {
		if rec.Status != models.InterviewStatusCompleted {
			continue
		}
		app := m.apps.recs[rec.ApplicationID]
		if app != nil && app.InterviewScore == nil {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func newTestSweeper(now time.Time, jobs *mockJobStore, apps *mockApplicantStore, interviews *mockInterviewStore) impl {
	return impl{
		BaseImpl:       *baseworker.NewInstance("SweeperWorker", 0, 0, fakeClock{now: now}),
		jobStore:       jobs,
		applicantStore: apps,
		interviewStore: interviews,
	}
}

func TestSweeper(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("close applications check", func(t *testing.T) {
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{
			"job-1": {BaseModel: dbmodels.BaseModel{ID: "job-1"}, Deadline: past, Status: models.JobStatusApplicationsOpen},
			"job-2": {BaseModel: dbmodels.BaseModel{ID: "job-2"}, Deadline: future, Status: models.JobStatusApplicationsOpen},
		}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{}, apps: apps}
		sweeper := newTestSweeper(now, jobs, apps, interviews)

		sweeper.Sweep(context.Background())
		require.Equal(t, models.JobStatusApplicationsClosed, jobs.recs["job-1"].Status)
		require.Equal(t, models.JobStatusApplicationsOpen, jobs.recs["job-2"].Status)
	})

	t.Run("expired interview cascade check", func(t *testing.T) {
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{
			"job-1": {BaseModel: dbmodels.BaseModel{ID: "job-1"}, Deadline: past, Status: models.JobStatusInterviewsOpen},
		}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{
			"app-1": {BaseModel: dbmodels.BaseModel{ID: "app-1"}, JobID: "job-1", Shortlisted: true, Status: models.ApplicationStatusShortlisted},
		}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{
			"int-1": {BaseModel: dbmodels.BaseModel{ID: "int-1"}, JobID: "job-1", ApplicationID: "app-1", Status: models.InterviewStatusInProgress, Deadline: past},
		}, apps: apps}
		sweeper := newTestSweeper(now, jobs, apps, interviews)

		sweeper.Sweep(context.Background())
		require.Equal(t, models.InterviewStatusExpired, interviews.recs["int-1"].Status)
		require.Equal(t, models.ApplicationStatusInterviewExpired, apps.recs["app-1"].Status)
		// последнее открытое интервью просрочено, этап интервью закрывается
		require.Equal(t, models.JobStatusInterviewsClosed, jobs.recs["job-1"].Status)
	})

	t.Run("open interviews keep job check", func(t *testing.T) {
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{
			"job-1": {BaseModel: dbmodels.BaseModel{ID: "job-1"}, Deadline: past, Status: models.JobStatusInterviewsOpen},
		}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{
			"app-1": {BaseModel: dbmodels.BaseModel{ID: "app-1"}, JobID: "job-1", Shortlisted: true, Status: models.ApplicationStatusShortlisted},
			"app-2": {BaseModel: dbmodels.BaseModel{ID: "app-2"}, JobID: "job-1", Shortlisted: true, Status: models.ApplicationStatusShortlisted},
		}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{
			"int-1": {BaseModel: dbmodels.BaseModel{ID: "int-1"}, JobID: "job-1", ApplicationID: "app-1", Status: models.InterviewStatusInProgress, Deadline: past},
			"int-2": {BaseModel: dbmodels.BaseModel{ID: "int-2"}, JobID: "job-1", ApplicationID: "app-2", Status: models.InterviewStatusInProgress, Deadline: future},
		}, apps: apps}
		sweeper := newTestSweeper(now, jobs, apps, interviews)

		sweeper.Sweep(context.Background())
		require.Equal(t, models.InterviewStatusExpired, interviews.recs["int-1"].Status)
		require.Equal(t, models.InterviewStatusInProgress, interviews.recs["int-2"].Status)
		// пока есть открытое интервью, вакансия остаётся на этапе интервью
		require.Equal(t, models.JobStatusInterviewsOpen, jobs.recs["job-1"].Status)
	})

	t.Run("never started interview check", func(t *testing.T) {
		deadline := past
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{
			"job-1": {BaseModel: dbmodels.BaseModel{ID: "job-1"}, Deadline: past.Add(-24 * time.Hour), InterviewDeadline: &deadline, Status: models.JobStatusInterviewsOpen},
		}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{
			"app-1": {BaseModel: dbmodels.BaseModel{ID: "app-1"}, JobID: "job-1", Shortlisted: true, Status: models.ApplicationStatusShortlisted},
		}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{}, apps: apps}
		sweeper := newTestSweeper(now, jobs, apps, interviews)

		sweeper.Sweep(context.Background())
		require.Equal(t, models.ApplicationStatusInterviewExpired, apps.recs["app-1"].Status)
		require.Equal(t, models.JobStatusInterviewsClosed, jobs.recs["job-1"].Status)
	})

	t.Run("reconcile completed check", func(t *testing.T) {
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{
			"app-1": {BaseModel: dbmodels.BaseModel{ID: "app-1"}, JobID: "job-1", Shortlisted: true, Status: models.ApplicationStatusShortlisted},
		}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{
			"int-1": {BaseModel: dbmodels.BaseModel{ID: "int-1"}, JobID: "job-1", ApplicationID: "app-1", Status: models.InterviewStatusCompleted, Deadline: future, WeightedScore: 70.4},
		}, apps: apps}
		sweeper := newTestSweeper(now, jobs, apps, interviews)

		sweeper.Sweep(context.Background())
		require.Equal(t, models.ApplicationStatusReviewing, apps.recs["app-1"].Status)
		require.NotNil(t, apps.recs["app-1"].InterviewScore)
		require.Equal(t, 70.0, *apps.recs["app-1"].InterviewScore)
	})

	t.Run("idempotence check", func(t *testing.T) {
		deadline := past
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{
			"job-1": {BaseModel: dbmodels.BaseModel{ID: "job-1"}, Deadline: past.Add(-24 * time.Hour), InterviewDeadline: &deadline, Status: models.JobStatusInterviewsOpen},
			"job-2": {BaseModel: dbmodels.BaseModel{ID: "job-2"}, Deadline: past, Status: models.JobStatusApplicationsOpen},
		}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{
			"app-1": {BaseModel: dbmodels.BaseModel{ID: "app-1"}, JobID: "job-1", Shortlisted: true, Status: models.ApplicationStatusShortlisted},
		}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{
			"int-1": {BaseModel: dbmodels.BaseModel{ID: "int-1"}, JobID: "job-1", ApplicationID: "app-1", Status: models.InterviewStatusInProgress, Deadline: past},
		}, apps: apps}
		sweeper := newTestSweeper(now, jobs, apps, interviews)

		sweeper.Sweep(context.Background())
		jobUpdates := jobs.statusUpdates
		appUpdates := apps.updates

		// повторный запуск не должен менять уже переведённые статусы
		sweeper.Sweep(context.Background())
		require.Equal(t, jobUpdates, jobs.statusUpdates)
		require.Equal(t, appUpdates, apps.updates)
	})

	t.Run("manual sweep trigger check", func(t *testing.T) {
		jobs := &mockJobStore{recs: map[string]*dbmodels.Job{
			"job-1": {BaseModel: dbmodels.BaseModel{ID: "job-1"}, Deadline: past, Status: models.JobStatusApplicationsOpen},
		}}
		apps := &mockApplicantStore{recs: map[string]*dbmodels.Application{}}
		interviews := &mockInterviewStore{recs: map[string]*dbmodels.Interview{}, apps: apps}

		// внеочередной проход через интерфейс, как его вызывает контроллер
		var provider Provider = newTestSweeper(now, jobs, apps, interviews)
		provider.Sweep(context.Background())
		require.Equal(t, models.JobStatusApplicationsClosed, jobs.recs["job-1"].Status)
	})
}
