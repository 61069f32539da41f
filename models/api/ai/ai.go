package aiapimodels

type QuestionPair struct {
	Question string `json:"question"` // Текст вопроса
	Answer   string `json:"answer"`   // Эталонный ответ
}

type AnswerScore struct {
	Ratings  float64 `json:"ratings"`  // Оценка содержания ответа, 1-10
	Feedback string  `json:"feedback"` // Отзыв по ответу
}
