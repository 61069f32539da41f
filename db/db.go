package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbmodels "ai-screening-backend/models/db"
)

var DB *gorm.DB

func Connect(host string, port string, database string, user string, pass string, debugMode bool, migrate bool) (err error) {
	if DB == nil {
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", host, port, user, database, pass)
		db, err := gorm.Open(postgres.Open(dbConnString), &gorm.Config{
			Logger: gorm_logrus.New(),
		})
		if err != nil {
			return errors.Wrap(err, "Ошибка подключения к БД")
		}
		if debugMode {
			db.Logger = logger.Default.LogMode(logger.Info)
		}
		DB = db
	}
	if migrate {
		err = Migrate()
		if err != nil {
			return errors.Wrap(err, "Ошибка миграции БД")
		}
	}
	return nil
}

func Migrate() error {
	// uuid_generate_v4 для первичных ключей
	err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
	if err != nil {
		return err
	}
	return DB.AutoMigrate(
		&dbmodels.Candidate{},
		&dbmodels.Job{},
		&dbmodels.Application{},
		&dbmodels.Interview{},
		&dbmodels.InterviewResponse{},
		&dbmodels.AiLog{},
	)
}
