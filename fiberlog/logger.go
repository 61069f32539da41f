// Пакет fiberlog пишет запись logrus по каждому обработанному запросу api.
package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// New создаёт обработчик fiber, журналирующий запросы с настроенными полями.
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) != 0 {
		cfg = config[0]
	}
	tags := cfg.Tags
	if len(tags) == 0 {
		tags = defaultTags
	}
	ftm := make(map[string]FuncTag, len(tags))
	for _, tag := range tags {
		if fn, ok := funcTagMap[tag]; ok {
			ftm[tag] = fn
		}
	}
	d := new(data)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		// preflight-запросы не журналируем
		if c.Method() == fiber.MethodOptions {
			return err
		}

		fields := make(log.Fields, len(ftm))
		for k, fn := range ftm {
			value := fn(c, d)
			if str, ok := value.(string); ok && str == "" {
				continue
			}
			fields[k] = value
		}
		entry := log.WithFields(fields)
		if cfg.Logger != nil {
			entry = cfg.Logger.WithFields(fields)
		}
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn("запрос api")
		} else {
			entry.Info("запрос api")
		}

		return err
	}
}
