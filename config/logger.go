package config

import (
	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// InitLogger sets up the process-wide structured logger. APP_ENV=production
// switches to the JSON production encoder.
func InitLogger() {
	var logger *zap.Logger
	var err error

	if getEnv("APP_ENV", "development") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	Log = logger.Sugar()
}
