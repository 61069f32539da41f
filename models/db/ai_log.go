package dbmodels

type AiLog struct {
	BaseModel
	SysPromt    string       `comment:"System промт"`
	UserPromt   string       `comment:"User промт"`
	Answer      string       `comment:"Ответ ИИ"`
	JobID       string       `gorm:"type:varchar(36)" comment:"Идентификатор вакансии"`
	InterviewID string       `gorm:"type:varchar(36)" comment:"Идентификатор интервью"`
	ReqestType  AiReqestType `gorm:"type:varchar(255)" comment:"Тип запроса к ИИ"`
	AiName      AiName       `gorm:"type:varchar(255)" comment:"Название ИИ"`
	Degraded    bool         `comment:"Ответ распознан с деградацией (fallback разбора)"`
}

type AiName string

const (
	AiGeminiType AiName = "gemini"
	AiYaGptType  AiName = "yandexgpt"
)

type AiReqestType string

const (
	AiQuestionGenerationType AiReqestType = "QuestionGeneration"
	AiAnswerScoreType        AiReqestType = "AnswerScore"
	AiInterviewSummaryType   AiReqestType = "InterviewSummary"
)
