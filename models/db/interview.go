package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"ai-screening-backend/models"
)

type Interview struct {
	BaseModel
	JobID         string `gorm:"type:varchar(36);index"`
	Job           *Job
	CandidateID   string `gorm:"type:varchar(36);index"`
	Candidate     *Candidate
	ApplicationID string `gorm:"type:varchar(36);uniqueIndex:idx_interview_application"` // не более одного интервью на отклик
	Application   *Application
	Questions     InterviewQuestions     `gorm:"type:jsonb"` // неизменяемы после создания
	Status        models.InterviewStatus `gorm:"type:varchar(100);index"`
	Deadline      time.Time
	OverallRating float64 `comment:"Итоговая оценка, 0-10"`
	ContentScore  float64 `comment:"Оценка содержания ответов, 0-100"`
	DeliveryScore float64 `comment:"Оценка подачи, 0-100"`
	WeightedScore float64 `comment:"Взвешенная оценка, 0-100"`
	Feedback      string
	StartedAt     *time.Time
	CompletedAt   *time.Time
}

func (j InterviewQuestions) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *InterviewQuestions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	body, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("неожиданный тип значения jsonb для вопросов интервью")
		}
		body = []byte(str)
	}
	return json.Unmarshal(body, j)
}

type InterviewQuestions []InterviewQuestion

type InterviewQuestion struct {
	Question string `json:"question"` // Текст вопроса
	Answer   string `json:"answer"`   // Эталонный ответ
}

// Find - поиск вопроса по тексту
func (j InterviewQuestions) Find(question string) *InterviewQuestion {
	for k := range j {
		if j[k].Question == question {
			return &j[k]
		}
	}
	return nil
}
