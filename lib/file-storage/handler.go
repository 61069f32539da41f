// Пакет filestorage отвечает за хранение видеозаписей ответов в S3-совместимом хранилище.
package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"ai-screening-backend/config"
)

var Instance Provider

type Provider interface {
	// UploadVideo загружает видеоответ кандидата и возвращает публичную ссылку на него.
	UploadVideo(ctx context.Context, interviewID, fileName string, file []byte) (url string, err error)
}

type impl struct {
	client *minio.Client
}

func NewHandler(client *minio.Client) Provider {
	return &impl{client: client}
}

func (i impl) UploadVideo(ctx context.Context, interviewID, fileName string, file []byte) (string, error) {
	objectName := fmt.Sprintf("interviews/%v/%v-%v", interviewID, uuid.NewString(), sanitizeFileName(fileName))
	reader := bytes.NewReader(file)
	_, err := i.client.PutObject(ctx, config.Conf.S3.BucketName, objectName, reader, int64(len(file)),
		minio.PutObjectOptions{ContentType: "video/webm"})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки видео в хранилище")
	}
	url := fmt.Sprintf("%v/%v/%v", strings.TrimRight(config.Conf.S3.PublicURL, "/"), config.Conf.S3.BucketName, objectName)
	return url, nil
}

// sanitizeFileName убирает из имени файла символы, недопустимые в ключе объекта.
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "video.webm"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return replacer.Replace(name)
}
