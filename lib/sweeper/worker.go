// Пакет sweeper закрывает просроченные сущности:
// отклики после дедлайна вакансии, интервью после дедлайна интервью
// и каскадные переводы статусов вакансий.
package sweeper

import (
	"context"
	"math"
	"time"

	"ai-screening-backend/config"
	"ai-screening-backend/db"
	applicantstore "ai-screening-backend/lib/applicant/store"
	interviewstore "ai-screening-backend/lib/interview/store"
	jobstore "ai-screening-backend/lib/job/store"
	baseworker "ai-screening-backend/lib/utils/base-worker"
	"ai-screening-backend/lib/utils/helpers"
	"ai-screening-backend/models"
)

var Instance Provider

type Provider interface {
	// Sweep выполняет один проход по всем просроченным сущностям.
	Sweep(ctx context.Context)
}

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("SweeperWorker",
			time.Duration(config.Conf.Sweeper.FirstRunDelaySec)*time.Second,
			time.Duration(config.Conf.Sweeper.RunIntervalMin)*time.Minute,
			nil),
		jobStore:       jobstore.NewInstance(db.DB),
		applicantStore: applicantstore.NewInstance(db.DB),
		interviewStore: interviewstore.NewInstance(db.DB),
	}
	Instance = *i
	go i.Run(ctx, i.Sweep)
}

type impl struct {
	baseworker.BaseImpl
	jobStore       jobstore.Provider
	applicantStore applicantstore.Provider
	interviewStore interviewstore.Provider
}

func (i impl) Sweep(ctx context.Context) {
	now := i.Clock.Now()
	i.closeApplications(now)
	i.expireInterviews(ctx, now)
	i.expireNeverStarted(ctx, now)
	i.reconcileCompleted(ctx)
}

// closeApplications закрывает приём откликов по вакансиям с истёкшим дедлайном.
func (i impl) closeApplications(now time.Time) {
	logger := i.GetLogger()
	jobs, err := i.jobStore.ListOverdue(now)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения вакансий с истёкшим сроком приёма откликов")
		return
	}
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	err = i.jobStore.SetStatus(ids, models.JobStatusApplicationsClosed)
	if err != nil {
		logger.WithError(err).Error("Ошибка закрытия приёма откликов")
		return
	}
	if len(ids) > 0 {
		logger.Infof("Закрыт приём откликов по вакансиям: %v", len(ids))
	}
}

// expireInterviews помечает просроченные интервью и их отклики,
// затем закрывает этап интервью по вакансиям, где открытых интервью не осталось.
func (i impl) expireInterviews(ctx context.Context, now time.Time) {
	logger := i.GetLogger()
	expired, err := i.interviewStore.ListExpired(now)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения просроченных интервью")
		return
	}
	if len(expired) == 0 {
		return
	}

	interviewIDs := make([]string, 0, len(expired))
	applicationIDs := make([]string, 0, len(expired))
	jobIDs := map[string]struct{}{}
	for _, rec := range expired {
		interviewIDs = append(interviewIDs, rec.ID)
		applicationIDs = append(applicationIDs, rec.ApplicationID)
		jobIDs[rec.JobID] = struct{}{}
	}

	err = i.interviewStore.SetStatus(interviewIDs, models.InterviewStatusExpired)
	if err != nil {
		logger.WithError(err).Error("Ошибка перевода интервью в статус Expired")
		return
	}
	err = i.applicantStore.SetStatus(applicationIDs, models.ApplicationStatusInterviewExpired)
	if err != nil {
		logger.WithError(err).Error("Ошибка перевода откликов в статус Interview Expired")
	}
	logger.Infof("Просрочено интервью: %v", len(interviewIDs))

	for jobID := range jobIDs {
		if helpers.IsContextDone(ctx) {
			return
		}
		i.closeJobIfNoOpenInterviews(jobID)
	}
}

// expireNeverStarted помечает отклики шорт-листа, по которым интервью так и не было
// начато до дедлайна вакансии, и закрывает этап интервью по таким вакансиям.
func (i impl) expireNeverStarted(ctx context.Context, now time.Time) {
	logger := i.GetLogger()
	jobs, err := i.jobStore.ListOverdueInterviews(now)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения вакансий с истёкшим сроком интервью")
		return
	}
	for _, job := range jobs {
		if helpers.IsContextDone(ctx) {
			return
		}
		applications, err := i.applicantStore.ListActiveShortlisted(job.ID)
		if err != nil {
			logger.WithError(err).WithField("job_id", job.ID).Error("Ошибка получения шорт-листа вакансии")
			continue
		}
		expiredIDs := []string{}
		for _, application := range applications {
			if application.Status == models.ApplicationStatusReviewing {
				// интервью завершено, кандидат ждёт решения
				continue
			}
			interview, err := i.interviewStore.GetByApplicationID(application.ID)
			if err != nil {
				logger.WithError(err).WithField("application_id", application.ID).Error("Ошибка поиска интервью по отклику")
				continue
			}
			if interview == nil {
				expiredIDs = append(expiredIDs, application.ID)
			}
		}
		err = i.applicantStore.SetStatus(expiredIDs, models.ApplicationStatusInterviewExpired)
		if err != nil {
			logger.WithError(err).WithField("job_id", job.ID).Error("Ошибка перевода откликов без интервью в статус Interview Expired")
			continue
		}
		i.closeJobIfNoOpenInterviews(job.ID)
	}
}

func (i impl) closeJobIfNoOpenInterviews(jobID string) {
	logger := i.GetLogger()
	count, err := i.interviewStore.CountOpenByJob(jobID)
	if err != nil {
		logger.WithError(err).WithField("job_id", jobID).Error("Ошибка подсчёта открытых интервью по вакансии")
		return
	}
	if count > 0 {
		return
	}
	err = i.jobStore.SetStatusFiltered(jobID, models.JobStatusInterviewsOpen, models.JobStatusInterviewsClosed)
	if err != nil {
		logger.WithError(err).WithField("job_id", jobID).Error("Ошибка закрытия этапа интервью по вакансии")
	}
}

// reconcileCompleted доводит отклики, на которые не перенеслась оценка
// завершённого интервью (например, из-за сбоя между двумя записями).
func (i impl) reconcileCompleted(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.interviewStore.ListCompletedNotCascaded()
	if err != nil {
		logger.WithError(err).Error("Ошибка получения завершённых интервью без оценки отклика")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		err = i.applicantStore.Update(rec.ApplicationID, map[string]interface{}{
			"status":          models.ApplicationStatusReviewing,
			"interview_score": math.Round(rec.WeightedScore),
		})
		if err != nil {
			logger.WithError(err).WithField("interview_id", rec.ID).Error("Ошибка переноса оценки интервью на отклик")
			continue
		}
		logger.WithField("interview_id", rec.ID).Info("Оценка завершённого интервью перенесена на отклик")
	}
}
