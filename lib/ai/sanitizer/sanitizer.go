// Package sanitizer восстанавливает структурные данные из свободного текста,
// который возвращают генеративные модели: JSON может быть обёрнут в прозу,
// код-блоки, содержать управляющие символы и сырые переводы строк внутри строк.
package sanitizer

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	aiapimodels "ai-screening-backend/models/api/ai"
)

const (
	// Оценка по умолчанию при полном провале разбора ответа модели.
	// Конвейер продолжает работу с заведомо низкой уверенностью.
	DefaultRating   = 5
	DefaultFeedback = "Не удалось распознать ответ ИИ. Оценка выставлена по умолчанию."
)

// Result - итог распознавания. Degraded означает, что значение получено
// резервным способом и его точность снижена.
type Result struct {
	Degraded bool
	Reason   string
}

var (
	fenceRe         = regexp.MustCompile("(?i)```json|```|`")
	trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)
	ratingsRe       = regexp.MustCompile(`"ratings"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)
	feedbackRe      = regexp.MustCompile(`"feedback"\s*:\s*"([^"]*)"`)
)

// ParseArray - распознавание JSON-массива из текста ответа модели.
// Резервной подстановки нет: для отсутствующего набора вопросов
// безопасного значения по умолчанию не существует.
func ParseArray(raw string, out interface{}) error {
	for _, attempt := range attempts(raw, '[', ']') {
		if !json.Valid([]byte(attempt)) {
			continue
		}
		if err := json.Unmarshal([]byte(attempt), out); err == nil {
			return nil
		}
	}
	return errors.Errorf("в ответе модели не найден корректный JSON-массив: %v", snippet(raw))
}

// ParseScore - распознавание объекта оценки {ratings, feedback}.
// Никогда не возвращает ошибку: при полном провале разбора подставляется
// значение по умолчанию, а деградация отражается в Result.
func ParseScore(raw string) (score aiapimodels.AnswerScore, res Result) {
	for _, attempt := range attempts(raw, '{', '}') {
		if !json.Valid([]byte(attempt)) {
			continue
		}
		if err := json.Unmarshal([]byte(attempt), &score); err == nil {
			return score, Result{}
		}
	}

	// последняя попытка: вытащить поля напрямую из исходного текста
	ratingsMatch := ratingsRe.FindStringSubmatch(raw)
	feedbackMatch := feedbackRe.FindStringSubmatch(raw)
	if ratingsMatch != nil && feedbackMatch != nil {
		rating, err := strconv.ParseFloat(ratingsMatch[1], 64)
		if err == nil {
			score.Ratings = rating
			score.Feedback = feedbackMatch[1]
			return score, Result{Degraded: true, Reason: "поля оценки извлечены регулярным выражением из нераспознанного JSON"}
		}
	}

	score.Ratings = DefaultRating
	score.Feedback = DefaultFeedback
	return score, Result{Degraded: true, Reason: "ответ модели не распознан, использовано значение по умолчанию"}
}

// attempts - упорядоченная цепочка вариантов текста для разбора,
// от исходного до максимально вычищенного. Останавливаемся на первом успехе.
func attempts(raw string, open, close byte) []string {
	trimmed := strings.TrimSpace(raw)
	list := []string{trimmed}

	cleaned := stripControl(fenceRe.ReplaceAllString(trimmed, ""))
	list = append(list, cleaned)

	block, ok := extractBalanced(cleaned, open, close)
	if !ok {
		return list
	}
	list = append(list, block)

	normalized := trailingCommaRe.ReplaceAllString(flattenStrings(block), "$1")
	list = append(list, normalized)
	return list
}

// stripControl удаляет управляющие символы, кроме табуляции и переводов строк
func stripControl(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// extractBalanced - первый сбалансированный блок open...close с учётом
// вложенности и строковых литералов. Наивное регулярное выражение здесь
// не подходит: внутри значений встречаются вложенные скобки.
func extractBalanced(text string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for k := 0; k < len(text); k++ {
		c := text[k]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			if depth == 0 {
				start = k
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : k+1], true
			}
		}
	}
	return "", false
}

// flattenStrings заменяет сырые переводы строк внутри строковых литералов
// на пробел. Экранированные кавычки не закрывают строку.
func flattenStrings(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inString := false
	escaped := false
	for k := 0; k < len(text); k++ {
		c := text[k]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			case c == '\n' || c == '\r':
				b.WriteByte(' ')
				continue
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

func snippet(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > 200 {
		return trimmed[:200] + "..."
	}
	return trimmed
}
