package geminiclient

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

type Provider interface {
	Generate(ctx context.Context, sysPromt, userPromt string) (generatedText string, err error)
}

type impl struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("не указан API ключ Gemini")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания клиента Gemini")
	}
	return impl{
		client: client,
		model:  model,
	}, nil
}

func (i impl) Generate(ctx context.Context, sysPromt, userPromt string) (generatedText string, err error) {
	cfg := &genai.GenerateContentConfig{}
	if sysPromt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: sysPromt}},
		}
	}
	resp, err := i.client.Models.GenerateContent(ctx, i.model, genai.Text(userPromt), cfg)
	if err != nil {
		return "", errors.Wrap(err, "Ошибка при отправке запроса на генерацию в API Gemini")
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("API Gemini вернуло пустой ответ")
	}
	return b.String(), nil
}
