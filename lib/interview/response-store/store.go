package responsestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	// Create сохраняет ответ; повторный ответ на тот же вопрос отклоняется.
	Create(rec dbmodels.InterviewResponse) (id string, err error)
	GetByInterviewQuestion(interviewID, question string) (rec *dbmodels.InterviewResponse, err error)
	ListByInterview(interviewID string) ([]dbmodels.InterviewResponse, error)
	CountByInterview(interviewID string) (int64, error)
}

var ErrDuplicateAnswer = errors.New("ответ на этот вопрос уже сохранён")

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InterviewResponse) (id string, err error) {
	found, err := i.isExist(rec.InterviewID, rec.Question)
	if err != nil {
		return "", err
	}
	if found {
		return "", ErrDuplicateAnswer
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByInterviewQuestion(interviewID, question string) (*dbmodels.InterviewResponse, error) {
	rec := dbmodels.InterviewResponse{}
	err := i.db.
		Where("interview_id = ?", interviewID).
		Where("question = ?", question).
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

func (i impl) ListByInterview(interviewID string) (list []dbmodels.InterviewResponse, err error) {
	list = []dbmodels.InterviewResponse{}
	err = i.db.
		Model(dbmodels.InterviewResponse{}).
		Where("interview_id = ?", interviewID).
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByInterview(interviewID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.InterviewResponse{}).
		Where("interview_id = ?", interviewID).
		Count(&count).
		Error
	return count, err
}

func (i impl) isExist(interviewID, question string) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.InterviewResponse{}).
		Select("count(*) > 0").
		Where("interview_id = ?", interviewID).
		Where("question = ?", question).
		Find(&exists).
		Error
	return exists, err
}
