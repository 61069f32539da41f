package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	dbmodels "ai-screening-backend/models/db"
)

func TestQuestionRating(t *testing.T) {
	t.Run("weighted check", func(t *testing.T) {
		metrics := &dbmodels.DeliveryMetrics{Confidence: 70, SpeechRate: 90}
		// 80*0.6 + 70*0.2 + 90*0.2 = 80 -> 8.0
		rating := QuestionRating(8, metrics)
		require.Equal(t, 8.0, rating)
	})
	t.Run("content only check", func(t *testing.T) {
		rating := QuestionRating(7.5, nil)
		require.Equal(t, 7.5, rating)
	})
	t.Run("lower bound check", func(t *testing.T) {
		metrics := &dbmodels.DeliveryMetrics{Confidence: 0, SpeechRate: 0}
		rating := QuestionRating(1, metrics)
		require.Equal(t, 1.0, rating)
	})
	t.Run("upper bound check", func(t *testing.T) {
		metrics := &dbmodels.DeliveryMetrics{Confidence: 100, SpeechRate: 100}
		rating := QuestionRating(10, metrics)
		require.Equal(t, 10.0, rating)
	})
}

func TestAggregate(t *testing.T) {
	t.Run("with delivery check", func(t *testing.T) {
		responses := []dbmodels.InterviewResponse{
			{ContentRating: 8, DeliveryMetrics: &dbmodels.DeliveryMetrics{Confidence: 70, SpeechRate: 90}},
			{ContentRating: 6, DeliveryMetrics: &dbmodels.DeliveryMetrics{Confidence: 50, SpeechRate: 70}},
		}
		scores := Aggregate(responses)
		require.Equal(t, 70.0, scores.ContentScore)
		require.Equal(t, 28.0, scores.DeliveryScore)
		require.Equal(t, 70.0, scores.WeightedScore)
		require.Equal(t, 7.0, scores.OverallRating)
	})
	t.Run("content only check", func(t *testing.T) {
		responses := []dbmodels.InterviewResponse{
			{ContentRating: 6},
			{ContentRating: 8},
		}
		scores := Aggregate(responses)
		require.Equal(t, 7.0, scores.OverallRating)
		require.Equal(t, 70.0, scores.ContentScore)
		require.Equal(t, 0.0, scores.DeliveryScore)
		require.Equal(t, 70.0, scores.WeightedScore)
	})
	t.Run("legacy rating fallback check", func(t *testing.T) {
		responses := []dbmodels.InterviewResponse{
			{Rating: 9},
		}
		scores := Aggregate(responses)
		require.Equal(t, 9.0, scores.OverallRating)
	})
	t.Run("empty check", func(t *testing.T) {
		scores := Aggregate(nil)
		require.Equal(t, InterviewScores{}, scores)
	})
}

func TestFilterDeliveryComments(t *testing.T) {
	comments := []string{
		"Good eye contact throughout the answer",
		"Too many filler words detected",
		"Long pauses between sentences",
		"Speech clarity could be improved",
		"Confident tone",
	}
	filtered := FilterDeliveryComments(comments)
	require.Equal(t, []string{
		"Good eye contact throughout the answer",
		"Confident tone",
	}, filtered)
}
