package applicantapimodels

import (
	"time"

	"github.com/pkg/errors"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type ApplicationData struct {
	JobID       string  `json:"job_id"`       // ид вакансии
	FirstName   string  `json:"first_name"`   // имя кандидата
	LastName    string  `json:"last_name"`    // фамилия кандидата
	Email       string  `json:"email"`        // почта кандидата
	Phone       string  `json:"phone"`        // телефон кандидата
	ResumeURL   string  `json:"resume_url"`   // ссылка на резюме
	ResumeScore float64 `json:"resume_score"` // оценка резюме 0-100
}

func (a ApplicationData) Validate() error {
	if a.JobID == "" {
		return errors.New("не указана вакансия")
	}
	if a.FirstName == "" {
		return errors.New("не указано имя кандидата")
	}
	if a.Email == "" {
		return errors.New("не указана почта кандидата")
	}
	if a.ResumeScore < 0 || a.ResumeScore > 100 {
		return errors.New("оценка резюме должна быть в диапазоне 0-100")
	}
	return nil
}

type ShortlistData struct {
	Shortlisted bool `json:"shortlisted"` // включить/исключить из шорт-листа
}

type SelectData struct {
	Selected bool `json:"selected"` // итоговое решение по кандидату
}

type CandidateView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type ApplicationView struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"job_id"`
	Candidate      CandidateView            `json:"candidate"`
	ResumeScore    float64                  `json:"resume_score"`
	ResumeURL      string                   `json:"resume_url"`
	Shortlisted    bool                     `json:"shortlisted"`
	Status         models.ApplicationStatus `json:"status"`
	InterviewScore *float64                 `json:"interview_score"`
	CreationDate   time.Time                `json:"creation_date"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:    rec.ID,
		JobID: rec.JobID,
		Candidate: CandidateView{
			ID:        rec.CandidateID,
			FirstName: rec.Candidate.FirstName,
			LastName:  rec.Candidate.LastName,
			Email:     rec.Candidate.Email,
			Phone:     rec.Candidate.Phone,
		},
		ResumeScore:    rec.ResumeScore,
		ResumeURL:      rec.ResumeURL,
		Shortlisted:    rec.Shortlisted,
		Status:         rec.Status,
		InterviewScore: rec.InterviewScore,
		CreationDate:   rec.CreatedAt,
	}
}
