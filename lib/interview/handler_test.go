package interviewhandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	responsestore "ai-screening-backend/lib/interview/response-store"
	"ai-screening-backend/models"
	aiapimodels "ai-screening-backend/models/api/ai"
	interviewapimodels "ai-screening-backend/models/api/interview"
	dbmodels "ai-screening-backend/models/db"
)

type mockInterviewStore struct {
	recs    map[string]*dbmodels.Interview
	updates map[string]map[string]interface{}
}

func newMockInterviewStore() *mockInterviewStore {
	return &mockInterviewStore{
		recs:    map[string]*dbmodels.Interview{},
		updates: map[string]map[string]interface{}{},
	}
}

func (m *mockInterviewStore) Save(rec dbmodels.Interview) (string, error) {
	if rec.ID == "" {
		rec.ID = "interview-1"
	}
	m.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (m *mockInterviewStore) GetByID(id string) (*dbmodels.Interview, error) {
	return m.recs[id], nil
}

func (m *mockInterviewStore) GetByApplicationID(applicationID string) (*dbmodels.Interview, error) {
	for _, rec := range m.recs {
		if rec.ApplicationID == applicationID {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *mockInterviewStore) ListByJob(string) ([]dbmodels.Interview, error)       { return nil, nil }
func (m *mockInterviewStore) ListByCandidate(string) ([]dbmodels.Interview, error) { return nil, nil }

func (m *mockInterviewStore) Update(id string, updMap map[string]interface{}) error {
	m.updates[id] = updMap
	return nil
}

func (m *mockInterviewStore) SetStatus([]string, models.InterviewStatus) error { return nil }
func (m *mockInterviewStore) ListExpired(time.Time) ([]dbmodels.Interview, error) {
	return nil, nil
}
func (m *mockInterviewStore) CountOpenByJob(string) (int64, error) { return 0, nil }
func (m *mockInterviewStore) ListCompletedNotCascaded() ([]dbmodels.Interview, error) {
	return nil, nil
}

type mockResponseStore struct {
	recs []dbmodels.InterviewResponse
}

func (m *mockResponseStore) Create(rec dbmodels.InterviewResponse) (string, error) {
	for _, existing := range m.recs {
		if existing.InterviewID == rec.InterviewID && existing.Question == rec.Question {
			return "", responsestore.ErrDuplicateAnswer
		}
	}
	rec.ID = "response-1"
	m.recs = append(m.recs, rec)
	return rec.ID, nil
}

func (m *mockResponseStore) GetByInterviewQuestion(interviewID, question string) (*dbmodels.InterviewResponse, error) {
	for idx, rec := range m.recs {
		if rec.InterviewID == interviewID && rec.Question == question {
			return &m.recs[idx], nil
		}
	}
	return nil, nil
}

func (m *mockResponseStore) ListByInterview(interviewID string) ([]dbmodels.InterviewResponse, error) {
	list := []dbmodels.InterviewResponse{}
	for _, rec := range m.recs {
		if rec.InterviewID == interviewID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (m *mockResponseStore) CountByInterview(interviewID string) (int64, error) {
	list, _ := m.ListByInterview(interviewID)
	return int64(len(list)), nil
}

type mockApplicantStore struct {
	recs    map[string]*dbmodels.Application
	updates map[string]map[string]interface{}
}

func newMockApplicantStore() *mockApplicantStore {
	return &mockApplicantStore{
		recs:    map[string]*dbmodels.Application{},
		updates: map[string]map[string]interface{}{},
	}
}

func (m *mockApplicantStore) Create(dbmodels.Application) (string, error) { return "", nil }
func (m *mockApplicantStore) GetByID(id string) (*dbmodels.Application, error) {
	return m.recs[id], nil
}
func (m *mockApplicantStore) IsExist(string, string) (bool, error) { return false, nil }
func (m *mockApplicantStore) ListByJob(string) ([]dbmodels.Application, error) {
	return nil, nil
}
func (m *mockApplicantStore) ListShortlistedByJob(string) ([]dbmodels.Application, error) {
	return nil, nil
}
func (m *mockApplicantStore) ListActiveShortlisted(string) ([]dbmodels.Application, error) {
	return nil, nil
}
func (m *mockApplicantStore) Update(id string, updMap map[string]interface{}) error {
	m.updates[id] = updMap
	return nil
}
func (m *mockApplicantStore) SetStatus([]string, models.ApplicationStatus) error { return nil }

type mockAiProvider struct {
	score     aiapimodels.AnswerScore
	summary   string
	questions []aiapimodels.QuestionPair
}

func (m mockAiProvider) GenerateQuestions(context.Context, dbmodels.Job, int) ([]aiapimodels.QuestionPair, error) {
	return m.questions, nil
}

func (m mockAiProvider) ScoreAnswer(context.Context, string, string, string, string, string) (aiapimodels.AnswerScore, bool, error) {
	return m.score, false, nil
}

func (m mockAiProvider) GenerateSummary(context.Context, string, string, []dbmodels.InterviewResponse, float64) (string, error) {
	return m.summary, nil
}

func newTestHandler(store *mockInterviewStore, responses *mockResponseStore, applicants *mockApplicantStore, ai mockAiProvider) impl {
	return impl{
		store:          store,
		responseStore:  responses,
		applicantStore: applicants,
		aiProvider:     ai,
	}
}

func testInterview(status models.InterviewStatus) *dbmodels.Interview {
	return &dbmodels.Interview{
		BaseModel:     dbmodels.BaseModel{ID: "interview-1"},
		JobID:         "job-1",
		CandidateID:   "candidate-1",
		ApplicationID: "application-1",
		Questions: dbmodels.InterviewQuestions{
			{Question: "Что такое горутина?", Answer: "Лёгкий поток, управляемый рантаймом Go"},
			{Question: "Зачем нужен контекст?", Answer: "Для отмены и дедлайнов"},
		},
		Status:   status,
		Deadline: time.Now().Add(24 * time.Hour),
	}
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("terminal status check", func(t *testing.T) {
		for _, status := range []models.InterviewStatus{models.InterviewStatusCompleted, models.InterviewStatusExpired} {
			store := newMockInterviewStore()
			store.recs["interview-1"] = testInterview(status)
			handler := newTestHandler(store, &mockResponseStore{}, newMockApplicantStore(), mockAiProvider{})

			_, hMsg, err := handler.SubmitAnswer(context.Background(), interviewapimodels.AnswerData{
				InterviewID: "interview-1",
				Question:    "Что такое горутина?",
				UserAnswer:  "ответ",
			}, nil, "")
			require.NoError(t, err)
			require.Equal(t, "интервью уже завершено или просрочено", hMsg)
		}
	})
	t.Run("unknown question check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusPending)
		handler := newTestHandler(store, &mockResponseStore{}, newMockApplicantStore(), mockAiProvider{})

		_, hMsg, err := handler.SubmitAnswer(context.Background(), interviewapimodels.AnswerData{
			InterviewID: "interview-1",
			Question:    "Посторонний вопрос",
			UserAnswer:  "ответ",
		}, nil, "")
		require.NoError(t, err)
		require.Equal(t, "вопрос не относится к этому интервью", hMsg)
	})
	t.Run("duplicate answer check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusInProgress)
		responses := &mockResponseStore{recs: []dbmodels.InterviewResponse{
			{InterviewID: "interview-1", Question: "Что такое горутина?"},
		}}
		handler := newTestHandler(store, responses, newMockApplicantStore(), mockAiProvider{})

		_, hMsg, err := handler.SubmitAnswer(context.Background(), interviewapimodels.AnswerData{
			InterviewID: "interview-1",
			Question:    "Что такое горутина?",
			UserAnswer:  "ответ",
		}, nil, "")
		require.NoError(t, err)
		require.Equal(t, "ответ на этот вопрос уже сохранён", hMsg)
	})
	t.Run("content only answer check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusPending)
		responses := &mockResponseStore{}
		ai := mockAiProvider{score: aiapimodels.AnswerScore{Ratings: 7.5, Feedback: "Хороший ответ"}}
		handler := newTestHandler(store, responses, newMockApplicantStore(), ai)

		view, hMsg, err := handler.SubmitAnswer(context.Background(), interviewapimodels.AnswerData{
			InterviewID: "interview-1",
			Question:    "Что такое горутина?",
			UserAnswer:  "Лёгкий поток",
		}, nil, "")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		// без метрик подачи содержательная оценка идёт без взвешивания
		require.Equal(t, 7.5, view.Rating)
		require.Equal(t, 7.5, view.ContentRating)
		require.False(t, view.DeliveryRated)
		require.Equal(t, int64(1), view.AnsweredCount)
		require.Equal(t, 2, view.QuestionsTotal)
		// первый ответ переводит интервью в работу
		updMap, ok := store.updates["interview-1"]
		require.True(t, ok)
		require.Equal(t, models.InterviewStatusInProgress, updMap["status"])
	})
	t.Run("in progress answer keeps status check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusInProgress)
		ai := mockAiProvider{score: aiapimodels.AnswerScore{Ratings: 6, Feedback: "ок"}}
		handler := newTestHandler(store, &mockResponseStore{}, newMockApplicantStore(), ai)

		_, hMsg, err := handler.SubmitAnswer(context.Background(), interviewapimodels.AnswerData{
			InterviewID: "interview-1",
			Question:    "Зачем нужен контекст?",
			UserAnswer:  "Для отмены",
		}, nil, "")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		// ответ по уже идущему интервью не трогает статус и started_at
		_, ok := store.updates["interview-1"]
		require.False(t, ok)
	})
	t.Run("empty answer check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusPending)
		handler := newTestHandler(store, &mockResponseStore{}, newMockApplicantStore(), mockAiProvider{})

		_, hMsg, err := handler.SubmitAnswer(context.Background(), interviewapimodels.AnswerData{
			InterviewID: "interview-1",
			Question:    "Что такое горутина?",
		}, nil, "")
		require.NoError(t, err)
		require.Equal(t, "пустой ответ: нет ни текста, ни расшифровки видео", hMsg)
	})
}

func TestComplete(t *testing.T) {
	t.Run("terminal status check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusCompleted)
		handler := newTestHandler(store, &mockResponseStore{}, newMockApplicantStore(), mockAiProvider{})

		_, hMsg, err := handler.Complete(context.Background(), "interview-1")
		require.NoError(t, err)
		require.Equal(t, "интервью уже завершено или просрочено", hMsg)
	})
	t.Run("no answers check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusInProgress)
		handler := newTestHandler(store, &mockResponseStore{}, newMockApplicantStore(), mockAiProvider{})

		_, hMsg, err := handler.Complete(context.Background(), "interview-1")
		require.NoError(t, err)
		require.Equal(t, "нельзя завершить интервью без ответов", hMsg)
	})
	t.Run("content only aggregation check", func(t *testing.T) {
		store := newMockInterviewStore()
		store.recs["interview-1"] = testInterview(models.InterviewStatusInProgress)
		responses := &mockResponseStore{recs: []dbmodels.InterviewResponse{
			{InterviewID: "interview-1", Question: "Что такое горутина?", ContentRating: 6},
			{InterviewID: "interview-1", Question: "Зачем нужен контекст?", ContentRating: 8},
		}}
		applicants := newMockApplicantStore()
		handler := newTestHandler(store, responses, applicants, mockAiProvider{summary: "Сильный кандидат"})

		view, hMsg, err := handler.Complete(context.Background(), "interview-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 7.0, view.OverallRating)
		require.Equal(t, 70.0, view.ContentScore)
		require.Equal(t, 0.0, view.DeliveryScore)
		require.Equal(t, 70.0, view.WeightedScore)
		require.Equal(t, "Сильный кандидат", view.Feedback)

		updMap, ok := store.updates["interview-1"]
		require.True(t, ok)
		require.Equal(t, models.InterviewStatusCompleted, updMap["status"])

		appUpd, ok := applicants.updates["application-1"]
		require.True(t, ok)
		require.Equal(t, models.ApplicationStatusReviewing, appUpd["status"])
		require.Equal(t, 70.0, appUpd["interview_score"])
	})
}
