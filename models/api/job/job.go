package jobapimodels

import (
	"time"

	"github.com/pkg/errors"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

type JobData struct {
	Title          string    `json:"title"`           // название позиции
	Company        string    `json:"company"`         // компания
	Location       string    `json:"location"`        // локация
	Salary         string    `json:"salary"`          // вилка зп
	JobType        string    `json:"job_type"`        // тип занятости
	Experience     string    `json:"experience"`      // требуемый опыт
	Description    string    `json:"description"`     // описание позиции
	Requirements   string    `json:"requirements"`    // требования
	SkillsRequired []string  `json:"skills_required"` // ключевые навыки
	Deadline       time.Time `json:"deadline"`        // срок приёма откликов
}

func (j JobData) Validate() error {
	if j.Title == "" {
		return errors.New("не указано название позиции")
	}
	if j.Company == "" {
		return errors.New("не указана компания")
	}
	if j.Description == "" {
		return errors.New("не указано описание позиции")
	}
	if j.Deadline.IsZero() {
		return errors.New("не указан срок приёма откликов")
	}
	return nil
}

type JobFilter struct {
	Search   string             `json:"search"`   // поиск по названию/компании
	Statuses []models.JobStatus `json:"statuses"` // фильтр по статусам
}

type InterviewSetupData struct {
	TechStack         string     `json:"tech_stack"`         // стек для генерации вопросов
	InterviewDeadline *time.Time `json:"interview_deadline"` // срок прохождения интервью
}

func (d InterviewSetupData) Validate() error {
	if d.TechStack == "" {
		return errors.New("не указан технологический стек интервью")
	}
	if d.InterviewDeadline != nil && d.InterviewDeadline.Before(time.Now()) {
		return errors.New("срок прохождения интервью уже истёк")
	}
	return nil
}

type JobView struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Company           string           `json:"company"`
	Location          string           `json:"location"`
	Salary            string           `json:"salary"`
	JobType           string           `json:"job_type"`
	Experience        string           `json:"experience"`
	Description       string           `json:"description"`
	Requirements      string           `json:"requirements"`
	SkillsRequired    []string         `json:"skills_required"`
	TechStack         string           `json:"tech_stack"`
	Deadline          time.Time        `json:"deadline"`
	InterviewDeadline *time.Time       `json:"interview_deadline"`
	Status            models.JobStatus `json:"status"`
	CreationDate      time.Time        `json:"creation_date"`
}

func JobConvert(rec dbmodels.Job) JobView {
	return JobView{
		ID:                rec.ID,
		Title:             rec.Title,
		Company:           rec.Company,
		Location:          rec.Location,
		Salary:            rec.Salary,
		JobType:           rec.JobType,
		Experience:        rec.Experience,
		Description:       rec.Description,
		Requirements:      rec.Requirements,
		SkillsRequired:    rec.SkillsRequired,
		TechStack:         rec.TechStack,
		Deadline:          rec.Deadline,
		InterviewDeadline: rec.InterviewDeadline,
		Status:            rec.Status,
		CreationDate:      rec.CreatedAt,
	}
}

type InterviewSetupView struct {
	Job              JobView  `json:"job"`
	PreviewQuestions []string `json:"preview_questions"` // примеры сгенерированных вопросов
}
