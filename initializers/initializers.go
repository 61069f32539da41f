package initializers

import (
	"context"

	"ai-screening-backend/config"
	"ai-screening-backend/fiberlog"
	aihandler "ai-screening-backend/lib/ai"
	applicanthandler "ai-screening-backend/lib/applicant"
	deliveryanalyze "ai-screening-backend/lib/delivery-analyze"
	xlsexport "ai-screening-backend/lib/export/xls"
	interviewhandler "ai-screening-backend/lib/interview"
	jobhandler "ai-screening-backend/lib/job"
	"ai-screening-backend/lib/sweeper"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	deliveryanalyze.NewProvider()
	aihandler.NewHandler(ctx)
	xlsexport.NewHandler()
	jobhandler.NewHandler()
	applicanthandler.NewHandler()
	interviewhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача закрытия просроченных откликов и интервью
	sweeper.StartWorker(ctx)
}
