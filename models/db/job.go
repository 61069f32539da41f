package dbmodels

import (
	"time"

	"github.com/lib/pq"

	"ai-screening-backend/models"
)

type Job struct {
	BaseModel
	Title             string `gorm:"type:varchar(255)"`
	Company           string `gorm:"type:varchar(255)"`
	Location          string `gorm:"type:varchar(255)"`
	Salary            string `gorm:"type:varchar(100)"`
	JobType           string `gorm:"type:varchar(100)"`
	Experience        string `gorm:"type:varchar(100)"`
	Description       string
	Requirements      string
	SkillsRequired    pq.StringArray `gorm:"type:text[]"`
	TechStack         string
	Deadline          time.Time        `comment:"Срок приёма откликов"`
	InterviewDeadline *time.Time       `comment:"Срок прохождения интервью"`
	Status            models.JobStatus `gorm:"type:varchar(100);index"`
}

type JobFilter struct {
	Search   string             `json:"search"`
	Statuses []models.JobStatus `json:"statuses"`
}
