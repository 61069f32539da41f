package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"ai-screening" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"interview-videos" env:"S3_BUCKET_NAME"`
		PublicURL       string `default:"http://127.0.0.1:9000" env:"S3_PUBLIC_URL"` // база публичных ссылок на загруженные файлы
	}
	AI struct {
		Provider     string `default:"gemini" env:"AI_PROVIDER"` // gemini | yandexgpt
		GeminiAPIKey string `default:"" env:"GEMINI_API_KEY"`
		GeminiModel  string `default:"gemini-2.0-flash-exp" env:"GEMINI_MODEL"`
		YandexGPT    struct {
			IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
			CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
		}
	}
	DeliveryAnalyzer struct {
		URL        string `default:"http://127.0.0.1:8000/analyze" env:"DELIVERY_ANALYZER_URL"`
		TimeoutSec int    `default:"120" env:"DELIVERY_ANALYZER_TIMEOUT_SEC"`
	}
	Sweeper struct {
		RunIntervalMin   int `default:"60" env:"SWEEPER_RUN_INTERVAL_MIN"`
		FirstRunDelaySec int `default:"10" env:"SWEEPER_FIRST_RUN_DELAY_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
