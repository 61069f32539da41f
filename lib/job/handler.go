package jobhandler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"ai-screening-backend/db"
	aihandler "ai-screening-backend/lib/ai"
	applicantstore "ai-screening-backend/lib/applicant/store"
	jobstore "ai-screening-backend/lib/job/store"
	"ai-screening-backend/models"
	jobapimodels "ai-screening-backend/models/api/job"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	Create(data jobapimodels.JobData) (id string, err error)
	GetByID(id string) (view jobapimodels.JobView, hMsg string, err error)
	List(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, err error)
	// CloseApplications досрочно закрывает приём откликов.
	CloseApplications(id string) (hMsg string, err error)
	// CompleteShortlisting фиксирует шорт-лист, дальше только настройка интервью.
	CompleteShortlisting(id string) (hMsg string, err error)
	// SetupInterview открывает этап интервью: стек, дедлайн и примеры вопросов.
	SetupInterview(ctx context.Context, id string, data jobapimodels.InterviewSetupData) (view jobapimodels.InterviewSetupView, hMsg string, err error)
}

var Instance Provider

// PreviewQuestionCount - сколько примеров вопросов показываем при настройке интервью.
const PreviewQuestionCount = 2

func NewHandler() {
	Instance = impl{
		store:          jobstore.NewInstance(db.DB),
		applicantStore: applicantstore.NewInstance(db.DB),
		aiProvider:     aihandler.Instance,
	}
}

type impl struct {
	store          jobstore.Provider
	applicantStore applicantstore.Provider
	aiProvider     aihandler.Provider
}

func (i impl) Create(data jobapimodels.JobData) (string, error) {
	rec := dbmodels.Job{
		Title:          data.Title,
		Company:        data.Company,
		Location:       data.Location,
		Salary:         data.Salary,
		JobType:        data.JobType,
		Experience:     data.Experience,
		Description:    data.Description,
		Requirements:   data.Requirements,
		SkillsRequired: data.SkillsRequired,
		Deadline:       data.Deadline,
		Status:         models.JobStatusApplicationsOpen,
	}
	return i.store.Create(rec)
}

func (i impl) GetByID(id string) (jobapimodels.JobView, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, "", err
	}
	if rec == nil {
		return jobapimodels.JobView{}, "вакансия не найдена", nil
	}
	return jobapimodels.JobConvert(*rec), "", nil
}

func (i impl) List(filter jobapimodels.JobFilter) ([]jobapimodels.JobView, error) {
	list, err := i.store.List(dbmodels.JobFilter{
		Search:   filter.Search,
		Statuses: filter.Statuses,
	})
	if err != nil {
		return nil, err
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result, nil
}

func (i impl) CloseApplications(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "вакансия не найдена", nil
	}
	if rec.Status != models.JobStatusApplicationsOpen {
		return "приём откликов уже закрыт", nil
	}
	err = i.store.Update(id, map[string]interface{}{"status": models.JobStatusApplicationsClosed})
	if err != nil {
		return "", err
	}
	return "", nil
}

func (i impl) CompleteShortlisting(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "вакансия не найдена", nil
	}
	if rec.Status != models.JobStatusApplicationsClosed {
		return "шорт-лист можно зафиксировать только после закрытия приёма откликов", nil
	}
	err = i.store.Update(id, map[string]interface{}{"status": models.JobStatusShortlisted})
	if err != nil {
		return "", err
	}
	return "", nil
}

func (i impl) SetupInterview(ctx context.Context, id string, data jobapimodels.InterviewSetupData) (jobapimodels.InterviewSetupView, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.InterviewSetupView{}, "", err
	}
	if rec == nil {
		return jobapimodels.InterviewSetupView{}, "вакансия не найдена", nil
	}
	if rec.Status != models.JobStatusShortlisted {
		return jobapimodels.InterviewSetupView{}, "этап интервью доступен только после фиксации шорт-листа", nil
	}
	shortlisted, err := i.applicantStore.ListShortlistedByJob(id)
	if err != nil {
		return jobapimodels.InterviewSetupView{}, "", err
	}
	if len(shortlisted) == 0 {
		return jobapimodels.InterviewSetupView{}, "в шорт-листе нет ни одного кандидата", nil
	}

	updMap := map[string]interface{}{
		"status":     models.JobStatusInterviewsOpen,
		"tech_stack": data.TechStack,
	}
	if data.InterviewDeadline != nil {
		updMap["interview_deadline"] = *data.InterviewDeadline
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return jobapimodels.InterviewSetupView{}, "", err
	}

	rec.Status = models.JobStatusInterviewsOpen
	rec.TechStack = data.TechStack
	if data.InterviewDeadline != nil {
		rec.InterviewDeadline = data.InterviewDeadline
	}
	view := jobapimodels.InterviewSetupView{
		Job: jobapimodels.JobConvert(*rec),
	}

	// примеры вопросов нужны только для предпросмотра,
	// сбой генерации не должен блокировать открытие этапа
	genCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	pairs, err := i.aiProvider.GenerateQuestions(genCtx, *rec, PreviewQuestionCount)
	if err != nil {
		log.
			WithField("job_id", id).
			WithError(err).
			Warn("не удалось сгенерировать примеры вопросов интервью")
		return view, "", nil
	}
	for _, pair := range pairs {
		view.PreviewQuestions = append(view.PreviewQuestions, pair.Question)
	}
	return view, "", nil
}
