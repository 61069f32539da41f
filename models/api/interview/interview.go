package interviewapimodels

import (
	"time"

	"github.com/pkg/errors"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type StartData struct {
	ApplicationID string `json:"application_id"` // ид отклика из шорт-листа
}

func (d StartData) Validate() error {
	if d.ApplicationID == "" {
		return errors.New("не указан отклик")
	}
	return nil
}

type AnswerData struct {
	InterviewID string `json:"interview_id"` // ид интервью
	Question    string `json:"question"`     // текст вопроса
	UserAnswer  string `json:"user_answer"`  // текстовый ответ кандидата
	Duration    int    `json:"duration"`     // длительность ответа в секундах
}

func (d AnswerData) Validate() error {
	if d.InterviewID == "" {
		return errors.New("не указано интервью")
	}
	if d.Question == "" {
		return errors.New("не указан вопрос")
	}
	return nil
}

type QuestionView struct {
	Question string `json:"question"`
}

type InterviewView struct {
	ID            string                 `json:"id"`
	JobID         string                 `json:"job_id"`
	CandidateID   string                 `json:"candidate_id"`
	ApplicationID string                 `json:"application_id"`
	Questions     []QuestionView         `json:"questions"`
	Status        models.InterviewStatus `json:"status"`
	Deadline      time.Time              `json:"deadline"`
	StartedAt     *time.Time             `json:"started_at"`
	CompletedAt   *time.Time             `json:"completed_at"`
	CreationDate  time.Time              `json:"creation_date"`
}

// InterviewConvert не включает эталонные ответы, кандидат видит только вопросы.
func InterviewConvert(rec dbmodels.Interview) InterviewView {
	questions := make([]QuestionView, 0, len(rec.Questions))
	for _, pair := range rec.Questions {
		questions = append(questions, QuestionView{Question: pair.Question})
	}
	return InterviewView{
		ID:            rec.ID,
		JobID:         rec.JobID,
		CandidateID:   rec.CandidateID,
		ApplicationID: rec.ApplicationID,
		Questions:     questions,
		Status:        rec.Status,
		Deadline:      rec.Deadline,
		StartedAt:     rec.StartedAt,
		CompletedAt:   rec.CompletedAt,
		CreationDate:  rec.CreatedAt,
	}
}

type AnswerResultView struct {
	ResponseID     string   `json:"response_id"`
	Rating         float64  `json:"rating"`          // итоговая оценка за вопрос 1-10
	ContentRating  float64  `json:"content_rating"`  // содержательная оценка 1-10
	Feedback       string   `json:"feedback"`        // комментарий по содержанию
	DeliveryRated  bool     `json:"delivery_rated"`  // учтены ли метрики подачи
	DeliveryNotes  []string `json:"delivery_notes"`  // замечания по подаче
	AnsweredCount  int64    `json:"answered_count"`  // сколько вопросов уже отвечено
	QuestionsTotal int      `json:"questions_total"` // всего вопросов в интервью
}

type CompletionView struct {
	InterviewID   string  `json:"interview_id"`
	OverallRating float64 `json:"overall_rating"` // итоговая оценка 1-10
	ContentScore  float64 `json:"content_score"`  // содержание 0-100
	DeliveryScore float64 `json:"delivery_score"` // подача 0-40
	WeightedScore float64 `json:"weighted_score"` // взвешенный балл 0-100
	Feedback      string  `json:"feedback"`       // резюме интервью
}

type ResponseView struct {
	ID               string   `json:"id"`
	Question         string   `json:"question"`
	UserAnswer       string   `json:"user_answer"`
	VideoURL         string   `json:"video_url"`
	ContentRating    float64  `json:"content_rating"`
	Rating           float64  `json:"rating"`
	Feedback         string   `json:"feedback"`
	DeliveryFeedback []string `json:"delivery_feedback"`
	Confidence       *float64 `json:"confidence"`
	SpeechRate       *float64 `json:"speech_rate"`
	EyeContact       *float64 `json:"eye_contact"`
	Duration         float64  `json:"duration"`
}

func ResponseConvert(rec dbmodels.InterviewResponse) ResponseView {
	view := ResponseView{
		ID:               rec.ID,
		Question:         rec.Question,
		UserAnswer:       rec.UserAnswer,
		VideoURL:         rec.VideoURL,
		ContentRating:    rec.ContentRating,
		Rating:           rec.Rating,
		Feedback:         rec.Feedback,
		DeliveryFeedback: rec.DeliveryFeedback,
		Duration:         rec.Duration,
	}
	if rec.DeliveryMetrics != nil {
		confidence := rec.DeliveryMetrics.Confidence
		speechRate := rec.DeliveryMetrics.SpeechRate
		eyeContact := rec.DeliveryMetrics.EyeContact
		view.Confidence = &confidence
		view.SpeechRate = &speechRate
		view.EyeContact = &eyeContact
	}
	return view
}

type InterviewWithResponsesView struct {
	Interview InterviewView  `json:"interview"`
	Responses []ResponseView `json:"responses"`
	Scores    ScoresView     `json:"scores"`
}

type ScoresView struct {
	OverallRating float64 `json:"overall_rating"`
	ContentScore  float64 `json:"content_score"`
	DeliveryScore float64 `json:"delivery_score"`
	WeightedScore float64 `json:"weighted_score"`
	Feedback      string  `json:"feedback"`
}
