package jobstore

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByID(id string) (rec *dbmodels.Job, err error)
	List(filter dbmodels.JobFilter) ([]dbmodels.Job, error)
	Update(id string, updMap map[string]interface{}) error
	SetStatus(ids []string, status models.JobStatus) error
	// SetStatusFiltered переводит вакансию в новый статус только из ожидаемого текущего.
	SetStatusFiltered(id string, from, to models.JobStatus) error
	// ListOverdue возвращает вакансии с истёкшим сроком приёма откликов.
	ListOverdue(now time.Time) ([]dbmodels.Job, error)
	// ListOverdueInterviews возвращает вакансии с истёкшим сроком интервью.
	ListOverdueInterviews(now time.Time) ([]dbmodels.Job, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) List(filter dbmodels.JobFilter) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	tx := i.db.
		Model(dbmodels.Job{})
	i.addFilter(tx, filter)
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Job{}).
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

func (i impl) SetStatus(ids []string, status models.JobStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Job{}).
		Where("id in ?", ids).
		Update("status", status).
		Error
}

func (i impl) SetStatusFiltered(id string, from, to models.JobStatus) error {
	return i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to).
		Error
}

func (i impl) ListOverdue(now time.Time) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(dbmodels.Job{}).
		Where("deadline < ?", now).
		Where("status = ?", models.JobStatusApplicationsOpen).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListOverdueInterviews(now time.Time) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(dbmodels.Job{}).
		Where("interview_deadline is not null").
		Where("interview_deadline < ?", now).
		Where("status in ?", []models.JobStatus{models.JobStatusInterviewsOpen, models.JobStatusShortlisted}).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.JobFilter) {
	if len(filter.Statuses) > 0 {
		tx.Where("status in ?", filter.Statuses)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(title) like ? or LOWER(company) like ?", searchValue, searchValue)
	}
}
