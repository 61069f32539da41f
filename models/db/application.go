package dbmodels

import (
	"ai-screening-backend/models"
)

type Application struct {
	BaseModel
	JobID          string `gorm:"type:varchar(36);index:idx_application_job"`
	Job            *Job
	CandidateID    string `gorm:"type:varchar(36);index"`
	Candidate      *Candidate
	ResumeScore    float64 `comment:"Оценка резюме, 0-100"`
	ResumeURL      string
	Shortlisted    bool
	Status         models.ApplicationStatus `gorm:"type:varchar(100);index"`
	InterviewScore *float64                 `comment:"Итоговая оценка интервью, 0-100. Записывается один раз при завершении интервью"`
}
