package deliveryapimodels

type AnalyzeRequest struct {
	VideoURL string `json:"video_url"`
}

// AnalysisResult - ответ сервиса анализа подачи.
// Формат считается корректным: нарушение схемы не восстанавливается.
type AnalysisResult struct {
	Transcription    string          `json:"transcription,omitempty"`
	DetailedMetrics  DetailedMetrics `json:"detailed_metrics"`
	FeedbackComments []string        `json:"feedback_comments"`
}

type DetailedMetrics struct {
	Confidence float64 `json:"confidence"`  // 0-100
	SpeechRate float64 `json:"speech_rate"` // 0-100
	EyeContact float64 `json:"eye_contact"` // 0-100
}
