package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type InterviewResponse struct {
	BaseModel
	InterviewID      string `gorm:"type:varchar(36);index;uniqueIndex:idx_response_interview_question"`
	Interview        *Interview
	Question         string `gorm:"uniqueIndex:idx_response_interview_question"` // один ответ на вопрос в рамках интервью
	CorrectAnswer    string
	UserAnswer       string           `comment:"Транскрибированный ответ кандидата"`
	VideoURL         string           `comment:"Ссылка на видео ответа в хранилище"`
	ContentRating    float64          `comment:"Оценка содержания, 1-10, два знака"`
	DeliveryMetrics  *DeliveryMetrics `gorm:"type:jsonb"`
	DeliveryFeedback pq.StringArray   `gorm:"type:text[]"`
	Feedback         string           `comment:"Отзыв ИИ по ответу"`
	Rating           float64          `comment:"Итоговая взвешенная оценка ответа, 1-10"`
	Duration         float64          `comment:"Длительность ответа, секунды"`
}

type DeliveryMetrics struct {
	Confidence float64 `json:"confidence"`  // Уверенность, 0-100
	SpeechRate float64 `json:"speech_rate"` // Темп речи, 0-100
	EyeContact float64 `json:"eye_contact"` // Зрительный контакт, 0-100
}

func (m *DeliveryMetrics) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	valueString, err := json.Marshal(m)
	return string(valueString), err
}

func (m *DeliveryMetrics) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	body, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("неожиданный тип значения jsonb для метрик подачи")
		}
		body = []byte(str)
	}
	return json.Unmarshal(body, m)
}
