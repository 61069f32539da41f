package sanitizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	aiapimodels "ai-screening-backend/models/api/ai"
)

func TestParseScore(t *testing.T) {
	t.Run(`clean json check`, func(t *testing.T) {
		score, res := ParseScore(`{"ratings": 8.42, "feedback": "Neat"}`)
		require.Equal(t, false, res.Degraded)
		require.Equal(t, 8.42, score.Ratings)
		require.Equal(t, "Neat", score.Feedback)
	})

	t.Run(`json wrapped in prose check`, func(t *testing.T) {
		raw := "Sure! Here's the result:\n{ \"ratings\": 7, \"feedback\": \"Good job\" }\n"
		score, res := ParseScore(raw)
		require.Equal(t, false, res.Degraded)
		require.Equal(t, float64(7), score.Ratings)
		require.Equal(t, "Good job", score.Feedback)
	})

	t.Run(`json in code fence check`, func(t *testing.T) {
		raw := "```json\n{\"ratings\": 6.5, \"feedback\": \"ok\"}\n```"
		score, res := ParseScore(raw)
		require.Equal(t, false, res.Degraded)
		require.Equal(t, 6.5, score.Ratings)
	})

	t.Run(`raw newline inside string value check`, func(t *testing.T) {
		raw := "{\"ratings\": 9, \"feedback\": \"first line\nsecond line\"}"
		score, res := ParseScore(raw)
		require.Equal(t, false, res.Degraded)
		require.Equal(t, float64(9), score.Ratings)
		require.Equal(t, "first line second line", score.Feedback)
	})

	t.Run(`trailing comma check`, func(t *testing.T) {
		raw := "some text {\"ratings\": 4.2, \"feedback\": \"meh\",} more text"
		score, res := ParseScore(raw)
		require.Equal(t, false, res.Degraded)
		require.Equal(t, 4.2, score.Ratings)
	})

	t.Run(`regex fallback check`, func(t *testing.T) {
		raw := `broken { "ratings": 7.5 oops "feedback": "partial" broken`
		score, res := ParseScore(raw)
		require.Equal(t, true, res.Degraded)
		require.Equal(t, 7.5, score.Ratings)
		require.Equal(t, "partial", score.Feedback)
	})

	t.Run(`garbage falls back to default check`, func(t *testing.T) {
		score, res := ParseScore("total nonsense, no json here at all")
		require.Equal(t, true, res.Degraded)
		require.Equal(t, float64(DefaultRating), score.Ratings)
		require.Equal(t, DefaultFeedback, score.Feedback)
	})

	t.Run(`idempotence check`, func(t *testing.T) {
		raw := "Result:\n{ \"ratings\": 7.13, \"feedback\": \"fine answer\" }"
		first, res := ParseScore(raw)
		require.Equal(t, false, res.Degraded)

		body, err := json.Marshal(first)
		require.Nil(t, err)
		second, res := ParseScore(string(body))
		require.Equal(t, false, res.Degraded)
		require.Equal(t, first, second)
	})
}

func TestParseArray(t *testing.T) {
	t.Run(`clean array check`, func(t *testing.T) {
		var pairs []aiapimodels.QuestionPair
		err := ParseArray(`[{"question":"q1","answer":"a1"},{"question":"q2","answer":"a2"}]`, &pairs)
		require.Nil(t, err)
		require.Equal(t, 2, len(pairs))
		require.Equal(t, "q1", pairs[0].Question)
	})

	t.Run(`array wrapped in fence and prose check`, func(t *testing.T) {
		raw := "Here are the questions:\n```json\n[\n{\"question\":\"What is a goroutine?\",\"answer\":\"A lightweight thread {managed} by the runtime\"}\n]\n```\nGood luck!"
		var pairs []aiapimodels.QuestionPair
		err := ParseArray(raw, &pairs)
		require.Nil(t, err)
		require.Equal(t, 1, len(pairs))
		require.Equal(t, "A lightweight thread {managed} by the runtime", pairs[0].Answer)
	})

	t.Run(`nested brackets inside values check`, func(t *testing.T) {
		raw := `noise [[1,2],[3,4]] noise`
		var matrix [][]int
		err := ParseArray(raw, &matrix)
		require.Nil(t, err)
		require.Equal(t, [][]int{{1, 2}, {3, 4}}, matrix)
	})

	t.Run(`no array raises error check`, func(t *testing.T) {
		var pairs []aiapimodels.QuestionPair
		err := ParseArray("no array to be found", &pairs)
		require.NotNil(t, err)
	})

	t.Run(`raw newline inside array string check`, func(t *testing.T) {
		raw := "[{\"question\":\"multi\nline\",\"answer\":\"a\"}]"
		var pairs []aiapimodels.QuestionPair
		err := ParseArray(raw, &pairs)
		require.Nil(t, err)
		require.Equal(t, "multi line", pairs[0].Question)
	})
}
