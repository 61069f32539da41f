package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"ai-screening-backend/config"
	filestorage "ai-screening-backend/lib/file-storage"
	s3client "ai-screening-backend/s3"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	err = s3client.MakeBucket(ctx, minioClient)
	if err != nil {
		log.WithError(err).Errorf("Ошибка создания бакета %v", config.Conf.S3.BucketName)
	}

	s3client.Client = minioClient
	filestorage.Instance = filestorage.NewHandler(minioClient)
	log.Info("S3 клиент успешно инициализирован")
}
