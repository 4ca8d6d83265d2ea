package main

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/api"
	"github.com/arttatum/payment-gateway/internal/api/handler"
	"github.com/arttatum/payment-gateway/internal/config"
	"github.com/arttatum/payment-gateway/internal/integration/acquiringbank"
	"github.com/arttatum/payment-gateway/internal/integration/sqs"
	"github.com/arttatum/payment-gateway/internal/logger"
	repo "github.com/arttatum/payment-gateway/internal/repository/dynamodb"
	"github.com/arttatum/payment-gateway/internal/service"
	"github.com/arttatum/payment-gateway/internal/telemetry"
)

func main() {
	ctx := context.Background()
	cfg := config.FromEnv()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	shutdownTelemetry, err := telemetry.InitProvider("payment-gateway")
	if err != nil {
		log.Warn("telemetry disabled", zap.Error(err))
	} else {
		defer shutdownTelemetry(ctx)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal("unable to load SDK config", zap.Error(err))
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	paymentRequestRepo := repo.NewPaymentRequestRepository(dbClient, cfg.PaymentRequestsTableName, log)

	publisher, err := sqs.NewClient(ctx, awsCfg, cfg.PaymentRequestsToForwardQueue, log)
	if err != nil {
		log.Fatal("failed to set up queue publisher", zap.Error(err))
	}

	bankClient, err := acquiringbank.NewClient(ctx, awsCfg, cfg.AcquiringBankPostPaymentReqURL, cfg.AcquiringBankAPIKeySecretName, log)
	if err != nil {
		log.Fatal("failed to set up acquiring bank client", zap.Error(err))
	}

	paymentRequestService := service.NewPaymentRequestService(paymentRequestRepo, publisher, bankClient, log)
	paymentRequestHandler := handler.NewPaymentRequestHandler(paymentRequestService, log)

	r := api.SetupRouter(paymentRequestHandler)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to run server", zap.Error(err))
	}
}
