package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/config"
	"github.com/arttatum/payment-gateway/internal/integration/acquiringbank"
	"github.com/arttatum/payment-gateway/internal/integration/sqs"
	"github.com/arttatum/payment-gateway/internal/logger"
	repo "github.com/arttatum/payment-gateway/internal/repository/dynamodb"
	"github.com/arttatum/payment-gateway/internal/service"
	"github.com/arttatum/payment-gateway/internal/telemetry"
)

// The forwarder consumes ForwardToAcquiringBank commands from the queue and
// drives the forward step of the payment request lifecycle.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	shutdownTelemetry, err := telemetry.InitProvider("payment-gateway-forwarder")
	if err != nil {
		log.Warn("telemetry disabled", zap.Error(err))
	} else {
		defer shutdownTelemetry(context.Background())
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

	consumer, err := sqs.NewConsumer(ctx, awsCfg, cfg.PaymentRequestsToForwardQueue, log)
	if err != nil {
		log.Fatal("failed to set up queue consumer", zap.Error(err))
	}

	log.Info("forwarder starting", zap.String("queue", cfg.PaymentRequestsToForwardQueue))
	if err := consumer.Run(ctx, paymentRequestService.Forward); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("consumer stopped", zap.Error(err))
	}
	log.Info("forwarder stopped")
}
