// Пакет scoring содержит расчёт итоговых оценок интервью:
// взвешивание содержательной оценки и метрик подачи ответа.
package scoring

import (
	"math"
	"strings"

	dbmodels "ai-screening-backend/models/db"
)

// Веса составляющих итоговой оценки.
const (
	contentWeight    = 0.6
	confidenceWeight = 0.2
	speechRateWeight = 0.2
)

// Границы оценки за отдельный вопрос.
const (
	minQuestionRating = 1
	maxQuestionRating = 10
)

// deliveryCommentDenylist - фрагменты замечаний анализатора подачи,
// которые не показываем кандидату и не включаем в отчёт.
var deliveryCommentDenylist = []string{
	"filler word",
	"long pause",
	"speech clarity",
}

// InterviewScores - агрегированные оценки завершённого интервью.
type InterviewScores struct {
	OverallRating float64
	ContentScore  float64
	DeliveryScore float64
	WeightedScore float64
}

// FilterDeliveryComments убирает замечания из запрещённого списка.
func FilterDeliveryComments(comments []string) []string {
	filtered := make([]string, 0, len(comments))
	for _, comment := range comments {
		if isDenied(comment) {
			continue
		}
		filtered = append(filtered, comment)
	}
	return filtered
}

func isDenied(comment string) bool {
	lower := strings.ToLower(comment)
	for _, denied := range deliveryCommentDenylist {
		if strings.Contains(lower, denied) {
			return true
		}
	}
	return false
}

// QuestionRating считает оценку за вопрос по шкале 1-10.
// Без метрик подачи содержательная оценка возвращается без изменений.
func QuestionRating(contentRating float64, metrics *dbmodels.DeliveryMetrics) float64 {
	if metrics == nil {
		return contentRating
	}
	normalizedContent := contentRating / 10 * 100
	weighted := normalizedContent*contentWeight +
		metrics.Confidence*confidenceWeight +
		metrics.SpeechRate*speechRateWeight
	rating := weighted / 10
	if rating < minQuestionRating {
		rating = minQuestionRating
	}
	if rating > maxQuestionRating {
		rating = maxQuestionRating
	}
	return Round2(rating)
}

// Aggregate сводит оценки по всем ответам интервью в итоговые показатели.
// Если ни у одного ответа нет метрик подачи, итог считается только по содержанию.
func Aggregate(responses []dbmodels.InterviewResponse) InterviewScores {
	if len(responses) == 0 {
		return InterviewScores{}
	}

	var contentSum, confidenceSum, speechRateSum float64
	withDelivery := 0
	for _, response := range responses {
		content := response.ContentRating
		if content == 0 {
			content = response.Rating
		}
		contentSum += content
		if response.DeliveryMetrics != nil {
			confidenceSum += response.DeliveryMetrics.Confidence
			speechRateSum += response.DeliveryMetrics.SpeechRate
			withDelivery++
		}
	}
	avgContent := contentSum / float64(len(responses))

	if withDelivery == 0 {
		contentScore := avgContent * 10
		return InterviewScores{
			OverallRating: Round2(avgContent),
			ContentScore:  Round2(contentScore),
			DeliveryScore: 0,
			WeightedScore: Round2(contentScore),
		}
	}

	avgConfidence := confidenceSum / float64(withDelivery)
	avgSpeechRate := speechRateSum / float64(withDelivery)
	contentScore := avgContent / 10 * 100
	deliveryScore := avgConfidence*confidenceWeight + avgSpeechRate*speechRateWeight
	weightedScore := contentScore*contentWeight + deliveryScore
	return InterviewScores{
		OverallRating: Round2(weightedScore / 10),
		ContentScore:  Round2(contentScore),
		DeliveryScore: Round2(deliveryScore),
		WeightedScore: Round2(weightedScore),
	}
}

// ApplicationScore переводит итоговую взвешенную оценку в балл отклика 0-100.
func ApplicationScore(scores InterviewScores) float64 {
	return math.Round(scores.WeightedScore)
}

// Round2 округляет до двух знаков после запятой.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
