// Пакет interviewhandler реализует жизненный цикл AI-интервью:
// запуск по отклику из шорт-листа, приём ответов с оценкой и завершение.
package interviewhandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ai-screening-backend/db"
	aihandler "ai-screening-backend/lib/ai"
	applicantstore "ai-screening-backend/lib/applicant/store"
	deliveryanalyze "ai-screening-backend/lib/delivery-analyze"
	filestorage "ai-screening-backend/lib/file-storage"
	responsestore "ai-screening-backend/lib/interview/response-store"
	interviewstore "ai-screening-backend/lib/interview/store"
	jobstore "ai-screening-backend/lib/job/store"
	"ai-screening-backend/lib/scoring"
	"ai-screening-backend/models"
	interviewapimodels "ai-screening-backend/models/api/interview"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	// Start выдаёт интервью по отклику: существующее или новое со сгенерированными вопросами.
	Start(ctx context.Context, applicationID string) (view interviewapimodels.InterviewView, hMsg string, err error)
	// SubmitAnswer принимает ответ на вопрос, оценивает содержание и подачу.
	SubmitAnswer(ctx context.Context, data interviewapimodels.AnswerData, video []byte, videoFileName string) (view interviewapimodels.AnswerResultView, hMsg string, err error)
	// Complete подводит итог интервью и переносит оценку на отклик.
	Complete(ctx context.Context, interviewID string) (view interviewapimodels.CompletionView, hMsg string, err error)
	GetWithResponses(interviewID string) (view interviewapimodels.InterviewWithResponsesView, hMsg string, err error)
	ListByJob(jobID string) ([]interviewapimodels.InterviewView, error)
	ListByCandidate(candidateID string) ([]interviewapimodels.InterviewView, error)
}

var Instance Provider

const (
	// QuestionCount - сколько вопросов генерируется для интервью.
	QuestionCount = 2
	// DefaultInterviewWindow - срок прохождения, если у вакансии не задан дедлайн интервью.
	DefaultInterviewWindow = 7 * 24 * time.Hour
)

func NewHandler() {
	Instance = impl{
		store:            interviewstore.NewInstance(db.DB),
		responseStore:    responsestore.NewInstance(db.DB),
		applicantStore:   applicantstore.NewInstance(db.DB),
		jobStore:         jobstore.NewInstance(db.DB),
		aiProvider:       aihandler.Instance,
		deliveryProvider: deliveryanalyze.Instance,
		fileStorage:      filestorage.Instance,
	}
}

type impl struct {
	store            interviewstore.Provider
	responseStore    responsestore.Provider
	applicantStore   applicantstore.Provider
	jobStore         jobstore.Provider
	aiProvider       aihandler.Provider
	deliveryProvider deliveryanalyze.Provider
	fileStorage      filestorage.Provider
}

func (i impl) Start(ctx context.Context, applicationID string) (interviewapimodels.InterviewView, string, error) {
	application, err := i.applicantStore.GetByID(applicationID)
	if err != nil {
		return interviewapimodels.InterviewView{}, "", err
	}
	if application == nil {
		return interviewapimodels.InterviewView{}, "отклик не найден", nil
	}
	if !application.Shortlisted {
		return interviewapimodels.InterviewView{}, "кандидат не включён в шорт-лист", nil
	}
	if application.Status == models.ApplicationStatusInterviewExpired {
		return interviewapimodels.InterviewView{}, "срок прохождения интервью истёк", nil
	}
	job, err := i.jobStore.GetByID(application.JobID)
	if err != nil {
		return interviewapimodels.InterviewView{}, "", err
	}
	if job == nil {
		return interviewapimodels.InterviewView{}, "вакансия не найдена", nil
	}
	if job.Status != models.JobStatusInterviewsOpen {
		return interviewapimodels.InterviewView{}, "этап интервью по вакансии не открыт", nil
	}

	existing, err := i.store.GetByApplicationID(applicationID)
	if err != nil {
		return interviewapimodels.InterviewView{}, "", err
	}
	if existing != nil {
		if existing.Status.IsTerminal() {
			return interviewapimodels.InterviewView{}, "интервью уже завершено или просрочено", nil
		}
		return interviewapimodels.InterviewConvert(*existing), "", nil
	}

	pairs, err := i.aiProvider.GenerateQuestions(ctx, *job, QuestionCount)
	if err != nil {
		return interviewapimodels.InterviewView{}, "", errors.Wrap(err, "ошибка генерации вопросов интервью")
	}
	questions := make(dbmodels.InterviewQuestions, 0, len(pairs))
	for _, pair := range pairs {
		questions = append(questions, dbmodels.InterviewQuestion{
			Question: pair.Question,
			Answer:   pair.Answer,
		})
	}

	deadline := time.Now().Add(DefaultInterviewWindow)
	if job.InterviewDeadline != nil {
		deadline = *job.InterviewDeadline
	}
	rec := dbmodels.Interview{
		JobID:         job.ID,
		CandidateID:   application.CandidateID,
		ApplicationID: applicationID,
		Questions:     questions,
		Status:        models.InterviewStatusPending,
		Deadline:      deadline,
	}
	id, err := i.store.Save(rec)
	if err != nil {
		return interviewapimodels.InterviewView{}, "", err
	}
	rec.ID = id
	return interviewapimodels.InterviewConvert(rec), "", nil
}

func (i impl) SubmitAnswer(ctx context.Context, data interviewapimodels.AnswerData, video []byte, videoFileName string) (interviewapimodels.AnswerResultView, string, error) {
	rec, err := i.store.GetByID(data.InterviewID)
	if err != nil {
		return interviewapimodels.AnswerResultView{}, "", err
	}
	if rec == nil {
		return interviewapimodels.AnswerResultView{}, "интервью не найдено", nil
	}
	if rec.Status.IsTerminal() {
		return interviewapimodels.AnswerResultView{}, "интервью уже завершено или просрочено", nil
	}
	if rec.Deadline.Before(time.Now()) {
		return interviewapimodels.AnswerResultView{}, "срок прохождения интервью истёк", nil
	}
	pair := rec.Questions.Find(data.Question)
	if pair == nil {
		return interviewapimodels.AnswerResultView{}, "вопрос не относится к этому интервью", nil
	}
	existing, err := i.responseStore.GetByInterviewQuestion(rec.ID, data.Question)
	if err != nil {
		return interviewapimodels.AnswerResultView{}, "", err
	}
	if existing != nil {
		return interviewapimodels.AnswerResultView{}, "ответ на этот вопрос уже сохранён", nil
	}

	logger := log.
		WithField("interview_id", rec.ID).
		WithField("question", data.Question)

	// видео и метрики подачи опциональны, их потеря не блокирует приём ответа
	videoURL := ""
	if len(video) > 0 {
		videoURL, err = i.fileStorage.UploadVideo(ctx, rec.ID, videoFileName, video)
		if err != nil {
			logger.WithError(err).Warn("не удалось загрузить видео ответа, продолжаем без записи")
			videoURL = ""
		}
	}
	var metrics *dbmodels.DeliveryMetrics
	var deliveryNotes []string
	transcription := ""
	if videoURL != "" {
		analysis, err := i.deliveryProvider.Analyze(ctx, videoURL)
		if err != nil {
			logger.WithError(err).Warn("анализ подачи не выполнен, оценка только по содержанию")
		} else {
			metrics = &dbmodels.DeliveryMetrics{
				Confidence: analysis.DetailedMetrics.Confidence,
				SpeechRate: analysis.DetailedMetrics.SpeechRate,
				EyeContact: analysis.DetailedMetrics.EyeContact,
			}
			deliveryNotes = scoring.FilterDeliveryComments(analysis.FeedbackComments)
			transcription = analysis.Transcription
		}
	}

	userAnswer := data.UserAnswer
	if userAnswer == "" {
		userAnswer = transcription
	}
	if userAnswer == "" {
		return interviewapimodels.AnswerResultView{}, "пустой ответ: нет ни текста, ни расшифровки видео", nil
	}

	score, _, err := i.aiProvider.ScoreAnswer(ctx, rec.JobID, rec.ID, data.Question, pair.Answer, userAnswer)
	if err != nil {
		return interviewapimodels.AnswerResultView{}, "", errors.Wrap(err, "ошибка оценки ответа")
	}
	rating := scoring.QuestionRating(score.Ratings, metrics)

	responseID, err := i.responseStore.Create(dbmodels.InterviewResponse{
		InterviewID:      rec.ID,
		Question:         data.Question,
		CorrectAnswer:    pair.Answer,
		UserAnswer:       userAnswer,
		VideoURL:         videoURL,
		ContentRating:    score.Ratings,
		DeliveryMetrics:  metrics,
		DeliveryFeedback: deliveryNotes,
		Feedback:         score.Feedback,
		Rating:           rating,
		Duration:         float64(data.Duration),
	})
	if err != nil {
		if errors.Is(err, responsestore.ErrDuplicateAnswer) {
			return interviewapimodels.AnswerResultView{}, "ответ на этот вопрос уже сохранён", nil
		}
		return interviewapimodels.AnswerResultView{}, "", err
	}

	if rec.Status.CanTransitionTo(models.InterviewStatusInProgress) {
		err = i.store.Update(rec.ID, map[string]interface{}{
			"status":     models.InterviewStatusInProgress,
			"started_at": time.Now(),
		})
		if err != nil {
			return interviewapimodels.AnswerResultView{}, "", err
		}
	}

	answered, err := i.responseStore.CountByInterview(rec.ID)
	if err != nil {
		return interviewapimodels.AnswerResultView{}, "", err
	}
	return interviewapimodels.AnswerResultView{
		ResponseID:     responseID,
		Rating:         rating,
		ContentRating:  score.Ratings,
		Feedback:       score.Feedback,
		DeliveryRated:  metrics != nil,
		DeliveryNotes:  deliveryNotes,
		AnsweredCount:  answered,
		QuestionsTotal: len(rec.Questions),
	}, "", nil
}

func (i impl) Complete(ctx context.Context, interviewID string) (interviewapimodels.CompletionView, string, error) {
	rec, err := i.store.GetByID(interviewID)
	if err != nil {
		return interviewapimodels.CompletionView{}, "", err
	}
	if rec == nil {
		return interviewapimodels.CompletionView{}, "интервью не найдено", nil
	}
	if rec.Status.IsTerminal() {
		return interviewapimodels.CompletionView{}, "интервью уже завершено или просрочено", nil
	}
	responses, err := i.responseStore.ListByInterview(interviewID)
	if err != nil {
		return interviewapimodels.CompletionView{}, "", err
	}
	if len(responses) == 0 {
		return interviewapimodels.CompletionView{}, "нельзя завершить интервью без ответов", nil
	}

	scores := scoring.Aggregate(responses)

	// сбой генерации резюме не блокирует завершение
	feedback, err := i.aiProvider.GenerateSummary(ctx, rec.JobID, interviewID, responses, scores.OverallRating)
	if err != nil {
		log.
			WithField("interview_id", interviewID).
			WithError(err).
			Warn("не удалось сгенерировать резюме интервью")
		feedback = ""
	}

	err = i.store.Update(interviewID, map[string]interface{}{
		"status":         models.InterviewStatusCompleted,
		"overall_rating": scores.OverallRating,
		"content_score":  scores.ContentScore,
		"delivery_score": scores.DeliveryScore,
		"weighted_score": scores.WeightedScore,
		"feedback":       feedback,
		"completed_at":   time.Now(),
	})
	if err != nil {
		return interviewapimodels.CompletionView{}, "", err
	}
	err = i.applicantStore.Update(rec.ApplicationID, map[string]interface{}{
		"status":          models.ApplicationStatusReviewing,
		"interview_score": scoring.ApplicationScore(scores),
	})
	if err != nil {
		return interviewapimodels.CompletionView{}, "", err
	}
	return interviewapimodels.CompletionView{
		InterviewID:   interviewID,
		OverallRating: scores.OverallRating,
		ContentScore:  scores.ContentScore,
		DeliveryScore: scores.DeliveryScore,
		WeightedScore: scores.WeightedScore,
		Feedback:      feedback,
	}, "", nil
}

func (i impl) GetWithResponses(interviewID string) (interviewapimodels.InterviewWithResponsesView, string, error) {
	rec, err := i.store.GetByID(interviewID)
	if err != nil {
		return interviewapimodels.InterviewWithResponsesView{}, "", err
	}
	if rec == nil {
		return interviewapimodels.InterviewWithResponsesView{}, "интервью не найдено", nil
	}
	responses, err := i.responseStore.ListByInterview(interviewID)
	if err != nil {
		return interviewapimodels.InterviewWithResponsesView{}, "", err
	}
	views := make([]interviewapimodels.ResponseView, 0, len(responses))
	for _, response := range responses {
		views = append(views, interviewapimodels.ResponseConvert(response))
	}
	return interviewapimodels.InterviewWithResponsesView{
		Interview: interviewapimodels.InterviewConvert(*rec),
		Responses: views,
		Scores: interviewapimodels.ScoresView{
			OverallRating: rec.OverallRating,
			ContentScore:  rec.ContentScore,
			DeliveryScore: rec.DeliveryScore,
			WeightedScore: rec.WeightedScore,
			Feedback:      rec.Feedback,
		},
	}, "", nil
}

func (i impl) ListByJob(jobID string) ([]interviewapimodels.InterviewView, error) {
	list, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ListByCandidate(candidateID string) ([]interviewapimodels.InterviewView, error) {
	list, err := i.store.ListByCandidate(candidateID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func convertList(list []dbmodels.Interview) []interviewapimodels.InterviewView {
	result := make([]interviewapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.InterviewConvert(rec))
	}
	return result
}
