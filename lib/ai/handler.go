package aihandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ai-screening-backend/config"
	"ai-screening-backend/db"
	geminiclient "ai-screening-backend/lib/ai/gemini-client"
	"ai-screening-backend/lib/ai/sanitizer"
	ailogstore "ai-screening-backend/lib/ai/store"
	yagptclient "ai-screening-backend/lib/ai/yagpt-client"
	aiapimodels "ai-screening-backend/models/api/ai"
	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	GenerateQuestions(ctx context.Context, job dbmodels.Job, count int) ([]aiapimodels.QuestionPair, error)
	ScoreAnswer(ctx context.Context, jobID, interviewID, question, correctAnswer, userAnswer string) (score aiapimodels.AnswerScore, degraded bool, err error)
	GenerateSummary(ctx context.Context, jobID, interviewID string, responses []dbmodels.InterviewResponse, overallRating float64) (string, error)
}

var Instance Provider

// клиенты генерации текста взаимозаменяемы, выбор через config.Conf.AI.Provider
type aiClient interface {
	Generate(ctx context.Context, sysPromt, userPromt string) (string, error)
}

type impl struct {
	client     aiClient
	aiName     dbmodels.AiName
	aiLogStore ailogstore.Provider
}

func NewHandler(ctx context.Context) {
	var client aiClient
	var aiName dbmodels.AiName
	switch config.Conf.AI.Provider {
	case "yandexgpt":
		client = yagptclient.NewClient(config.Conf.AI.YandexGPT.IAMToken, config.Conf.AI.YandexGPT.CatalogID)
		aiName = dbmodels.AiYaGptType
	default:
		geminiClient, err := geminiclient.NewClient(ctx, config.Conf.AI.GeminiAPIKey, config.Conf.AI.GeminiModel)
		if err != nil {
			log.WithError(err).Fatal("Не удалось создать клиента Gemini, проверьте переменную GEMINI_API_KEY")
		}
		client = geminiClient
		aiName = dbmodels.AiGeminiType
	}
	Instance = impl{
		client:     client,
		aiName:     aiName,
		aiLogStore: ailogstore.NewInstance(db.DB),
	}
}

func (i impl) GenerateQuestions(ctx context.Context, job dbmodels.Job, count int) ([]aiapimodels.QuestionPair, error) {
	techStack := job.TechStack
	if techStack == "" {
		techStack = strings.Join(job.SkillsRequired, ", ")
	}
	userPromt := fmt.Sprintf(questionsPromtTemplate,
		count,
		job.Title,
		orNotSpecified(job.Description),
		orNotSpecified(job.Experience),
		orNotSpecified(techStack),
		orNotSpecified(job.Requirements),
	)
	answer, err := i.client.Generate(ctx, questionsSysPromt, userPromt)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка вызова ИИ при генерации вопросов интервью")
	}
	i.saveLog(job.ID, "", questionsSysPromt, userPromt, answer, dbmodels.AiQuestionGenerationType, false)

	pairs := []aiapimodels.QuestionPair{}
	err = sanitizer.ParseArray(answer, &pairs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка распознавания сгенерированных вопросов")
	}
	if len(pairs) == 0 {
		return nil, errors.New("модель не вернула ни одного вопроса")
	}
	return pairs, nil
}

func (i impl) ScoreAnswer(ctx context.Context, jobID, interviewID, question, correctAnswer, userAnswer string) (score aiapimodels.AnswerScore, degraded bool, err error) {
	userPromt := fmt.Sprintf(scorePromtTemplate, question, userAnswer, correctAnswer)
	answer, err := i.client.Generate(ctx, scoreSysPromt, userPromt)
	if err != nil {
		return score, false, errors.Wrap(err, "ошибка вызова ИИ при оценке ответа кандидата")
	}

	score, res := sanitizer.ParseScore(answer)
	if res.Degraded {
		// не ошибка для вызывающего, но сигнал потери точности оценки
		log.
			WithField("interview_id", interviewID).
			WithField("reason", res.Reason).
			Warn("ответ модели при оценке распознан с деградацией")
	}
	i.saveLog(jobID, interviewID, scoreSysPromt, userPromt, answer, dbmodels.AiAnswerScoreType, res.Degraded)
	return score, res.Degraded, nil
}

func (i impl) GenerateSummary(ctx context.Context, jobID, interviewID string, responses []dbmodels.InterviewResponse, overallRating float64) (string, error) {
	parts := make([]string, 0, len(responses))
	for _, rec := range responses {
		parts = append(parts, fmt.Sprintf("Question: %s\nUser Answer: %s\nRating: %.2f/10\nFeedback: %s",
			rec.Question, rec.UserAnswer, rec.Rating, rec.Feedback))
	}
	userPromt := fmt.Sprintf(summaryPromtTemplate, strings.Join(parts, "\n\n"), overallRating)
	answer, err := i.client.Generate(ctx, summarySysPromt, userPromt)
	if err != nil {
		return "", errors.Wrap(err, "ошибка вызова ИИ при генерации итогового отзыва")
	}
	i.saveLog(jobID, interviewID, summarySysPromt, userPromt, answer, dbmodels.AiInterviewSummaryType, false)
	return answer, nil
}

func (i impl) saveLog(jobID, interviewID, sysPromt, userPromt, answer string, reqType dbmodels.AiReqestType, degraded bool) {
	rec := dbmodels.AiLog{
		SysPromt:    sysPromt,
		UserPromt:   userPromt,
		Answer:      answer,
		JobID:       jobID,
		InterviewID: interviewID,
		ReqestType:  reqType,
		AiName:      i.aiName,
		Degraded:    degraded,
	}
	_, err := i.aiLogStore.Save(rec)
	if err != nil {
		log.
			WithError(err).
			WithField("request_type", reqType).
			Error("ошибка сохранения лога запроса к ИИ")
	}
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not specified"
	}
	return value
}
