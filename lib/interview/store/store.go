package interviewstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.Interview) (id string, err error)
	GetByID(id string) (rec *dbmodels.Interview, err error)
	GetByApplicationID(applicationID string) (rec *dbmodels.Interview, err error)
	ListByJob(jobID string) ([]dbmodels.Interview, error)
	ListByCandidate(candidateID string) ([]dbmodels.Interview, error)
	Update(id string, updMap map[string]interface{}) error
	SetStatus(ids []string, status models.InterviewStatus) error
	// ListExpired возвращает незавершённые интервью с истёкшим дедлайном.
	ListExpired(now time.Time) ([]dbmodels.Interview, error)
	// CountOpenByJob считает незавершённые интервью по вакансии.
	CountOpenByJob(jobID string) (int64, error)
	// ListCompletedNotCascaded возвращает завершённые интервью,
	// оценка которых ещё не перенесена на отклик.
	ListCompletedNotCascaded() ([]dbmodels.Interview, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.Interview) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByApplicationID(applicationID string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("application_id = ?", applicationID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByJob(jobID string) (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	err = i.db.
		Model(dbmodels.Interview{}).
		Where("job_id = ?", jobID).
		Preload(clause.Associations).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByCandidate(candidateID string) (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	err = i.db.
		Model(dbmodels.Interview{}).
		Where("candidate_id = ?", candidateID).
		Preload(clause.Associations).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) SetStatus(ids []string, status models.InterviewStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Interview{}).
		Where("id in ?", ids).
		Update("status", status).
		Error
}

func (i impl) ListExpired(now time.Time) (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	err = i.db.
		Model(dbmodels.Interview{}).
		Where("deadline < ?", now).
		Where("status not in ?", []models.InterviewStatus{
			models.InterviewStatusCompleted,
			models.InterviewStatusExpired,
		}).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountOpenByJob(jobID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Interview{}).
		Where("job_id = ?", jobID).
		Where("status not in ?", []models.InterviewStatus{
			models.InterviewStatusCompleted,
			models.InterviewStatusExpired,
		}).
		Count(&count).
		Error
	return count, err
}

func (i impl) ListCompletedNotCascaded() (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	err = i.db.
		Model(dbmodels.Interview{}).
		Where("status = ?", models.InterviewStatusCompleted).
		Where("application_id in (?)", i.db.
			Model(&dbmodels.Application{}).
			Select("id").
			Where("interview_score is null")).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
