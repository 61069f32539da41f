package applicanthandler

import (
	"bytes"
	"time"

	"ai-screening-backend/db"
	candidatestore "ai-screening-backend/lib/applicant/candidate-store"
	applicantstore "ai-screening-backend/lib/applicant/store"
	xlsexport "ai-screening-backend/lib/export/xls"
	jobstore "ai-screening-backend/lib/job/store"
	"ai-screening-backend/models"
	applicantapimodels "ai-screening-backend/models/api/applicant"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	// Apply регистрирует отклик кандидата на открытую вакансию.
	Apply(data applicantapimodels.ApplicationData) (id string, hMsg string, err error)
	GetByID(id string) (view applicantapimodels.ApplicationView, hMsg string, err error)
	ListByJob(jobID string) ([]applicantapimodels.ApplicationView, error)
	// Shortlist включает или исключает отклик из шорт-листа.
	Shortlist(applicationID string, shortlisted bool) (hMsg string, err error)
	// Select фиксирует итоговое решение по кандидату после интервью.
	Select(applicationID string, selected bool) (hMsg string, err error)
	// ExportReport выгружает отчёт по откликам вакансии в xlsx.
	ExportReport(jobID string) (buffer *bytes.Buffer, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          applicantstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
		jobStore:       jobstore.NewInstance(db.DB),
		xlsExport:      xlsexport.Instance,
	}
}

type impl struct {
	store          applicantstore.Provider
	candidateStore candidatestore.Provider
	jobStore       jobstore.Provider
	xlsExport      xlsexport.Provider
}

func (i impl) Apply(data applicantapimodels.ApplicationData) (string, string, error) {
	job, err := i.jobStore.GetByID(data.JobID)
	if err != nil {
		return "", "", err
	}
	if job == nil {
		return "", "вакансия не найдена", nil
	}
	if job.Status != models.JobStatusApplicationsOpen {
		return "", "приём откликов по вакансии закрыт", nil
	}
	if job.Deadline.Before(time.Now()) {
		return "", "срок приёма откликов истёк", nil
	}

	candidate, err := i.candidateStore.GetByEmail(data.Email)
	if err != nil {
		return "", "", err
	}
	candidateID := ""
	if candidate != nil {
		candidateID = candidate.ID
	} else {
		candidateID, err = i.candidateStore.Create(dbmodels.Candidate{
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Email:     data.Email,
			Phone:     data.Phone,
		})
		if err != nil {
			return "", "", err
		}
	}

	found, err := i.store.IsExist(data.JobID, candidateID)
	if err != nil {
		return "", "", err
	}
	if found {
		return "", "кандидат уже откликался на эту вакансию", nil
	}

	id, err := i.store.Create(dbmodels.Application{
		JobID:       data.JobID,
		CandidateID: candidateID,
		ResumeScore: data.ResumeScore,
		ResumeURL:   data.ResumeURL,
		Status:      models.ApplicationStatusApplied,
	})
	if err != nil {
		return "", "", err
	}
	return id, "", nil
}

func (i impl) GetByID(id string) (applicantapimodels.ApplicationView, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicantapimodels.ApplicationView{}, "", err
	}
	if rec == nil {
		return applicantapimodels.ApplicationView{}, "отклик не найден", nil
	}
	return applicantapimodels.ApplicationConvert(*rec), "", nil
}

func (i impl) ListByJob(jobID string) ([]applicantapimodels.ApplicationView, error) {
	list, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	result := make([]applicantapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicantapimodels.ApplicationConvert(rec))
	}
	return result, nil
}

func (i impl) Shortlist(applicationID string, shortlisted bool) (string, error) {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "отклик не найден", nil
	}
	job, err := i.jobStore.GetByID(rec.JobID)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "вакансия не найдена", nil
	}
	if job.Status != models.JobStatusApplicationsClosed {
		return "шорт-лист формируется после закрытия приёма откликов", nil
	}
	status := models.ApplicationStatusNotQualified
	if shortlisted {
		status = models.ApplicationStatusShortlisted
	}
	err = i.store.Update(applicationID, map[string]interface{}{
		"shortlisted": shortlisted,
		"status":      status,
	})
	if err != nil {
		return "", err
	}
	return "", nil
}

func (i impl) Select(applicationID string, selected bool) (string, error) {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "отклик не найден", nil
	}
	if rec.Status != models.ApplicationStatusReviewing {
		return "решение принимается только по кандидатам с завершённым интервью", nil
	}
	status := models.ApplicationStatusNotSelected
	if selected {
		status = models.ApplicationStatusSelected
	}
	err = i.store.Update(applicationID, map[string]interface{}{"status": status})
	if err != nil {
		return "", err
	}
	if selected {
		err = i.jobStore.Update(rec.JobID, map[string]interface{}{"status": models.JobStatusSelectionComplete})
		if err != nil {
			return "", err
		}
	}
	return "", nil
}

func (i impl) ExportReport(jobID string) (*bytes.Buffer, string, error) {
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return nil, "", err
	}
	if job == nil {
		return nil, "вакансия не найдена", nil
	}
	list, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, "", err
	}
	buffer, err := i.xlsExport.ExportScreeningReport(*job, list)
	if err != nil {
		return nil, "", err
	}
	return buffer, "", nil
}
