// Lambda entry point: the same router served from API Gateway proxy events.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/PratikDhanave/car-inventory-bot/internal/app"
	"github.com/PratikDhanave/car-inventory-bot/internal/config"
	"github.com/PratikDhanave/car-inventory-bot/internal/lambdaproxy"
	"github.com/PratikDhanave/car-inventory-bot/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic("Failed to build logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	svc, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("start service", zap.Error(err))
	}

	lambda.Start(lambdaproxy.New(svc.Router).Handle)
}
