package applicantstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	// IsExist проверяет, откликался ли кандидат на вакансию.
	IsExist(jobID, candidateID string) (found bool, err error)
	ListByJob(jobID string) ([]dbmodels.Application, error)
	ListShortlistedByJob(jobID string) ([]dbmodels.Application, error)
	// ListActiveShortlisted возвращает отклики шорт-листа, по которым ещё не принято решение.
	ListActiveShortlisted(jobID string) ([]dbmodels.Application, error)
	Update(id string, updMap map[string]interface{}) error
	SetStatus(ids []string, status models.ApplicationStatus) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
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

func (i impl) IsExist(jobID, candidateID string) (found bool, err error) {
	var exists bool
	err = i.db.Model(&dbmodels.Application{}).
		Select("count(*) > 0").
		Where("job_id = ?", jobID).
		Where("candidate_id = ?", candidateID).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) ListByJob(jobID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Preload(clause.Associations).
		Order("resume_score desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListShortlistedByJob(jobID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Where("shortlisted = true").
		Preload(clause.Associations).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActiveShortlisted(jobID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Where("shortlisted = true").
		Where("status not in ?", []models.ApplicationStatus{
			models.ApplicationStatusSelected,
			models.ApplicationStatusNotSelected,
			models.ApplicationStatusInterviewExpired,
		}).
		Preload(clause.Associations).
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
		Model(&dbmodels.Application{}).
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

func (i impl) SetStatus(ids []string, status models.ApplicationStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Application{}).
		Where("id in ?", ids).
		Update("status", status).
		Error
}
