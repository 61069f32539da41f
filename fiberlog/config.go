package fiberlog

import "github.com/sirupsen/logrus"

// Config настраивает middleware журналирования запросов.
type Config struct {
	// Logger — целевой логгер, nil означает глобальный logrus
	Logger *logrus.Logger
	// Tags — поля записи запроса, пустой список даёт defaultTags
	Tags []string
}

var defaultTags = []string{
	TagMethod,
	TagPath,
	TagStatus,
	TagLatency,
}
