package deliveryanalyze

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ai-screening-backend/config"
	deliveryapimodels "ai-screening-backend/models/api/delivery"
)

type Provider interface {
	Analyze(ctx context.Context, videoURL string) (*deliveryapimodels.AnalysisResult, error)
}

var Instance Provider

type impl struct {
	url     string
	timeout time.Duration
}

func NewProvider() {
	Instance = impl{
		url:     config.Conf.DeliveryAnalyzer.URL,
		timeout: time.Duration(config.Conf.DeliveryAnalyzer.TimeoutSec) * time.Second,
	}
}

// Analyze - анализ подачи по публичной ссылке на видео.
// Таймаут задан явно: сервис обсчитывает видео и может зависнуть надолго.
func (i impl) Analyze(ctx context.Context, videoURL string) (*deliveryapimodels.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	body, err := json.Marshal(deliveryapimodels.AnalyzeRequest{VideoURL: videoURL})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации запроса анализа подачи")
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса анализа подачи")
	}
	r.Header.Add("Content-Type", "application/json")

	logger := log.
		WithField("external_request", i.url).
		WithField("video_url", videoURL)

	response, err := http.DefaultClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка вызова сервиса анализа подачи")
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения ответа сервиса анализа подачи")
	}
	if response.StatusCode != http.StatusOK {
		logger.
			WithField("status_code", response.StatusCode).
			WithField("response_body", string(respBody)).
			Warn("сервис анализа подачи вернул ошибку")
		return nil, errors.Errorf("сервис анализа подачи вернул код %v", response.StatusCode)
	}

	result := deliveryapimodels.AnalysisResult{}
	err = json.Unmarshal(respBody, &result)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка распознавания ответа сервиса анализа подачи")
	}
	return &result, nil
}
