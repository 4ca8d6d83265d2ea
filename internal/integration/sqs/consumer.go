package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
)

// ForwardHandler processes a single ForwardToAcquiringBank command pulled
// from the queue.
type ForwardHandler func(ctx context.Context, cmd domain.ForwardToAcquiringBank) error

// Consumer long-polls the payment-requests-to-forward queue and dispatches
// each message to a handler. Messages are deleted only after the handler
// succeeds, so failures are redelivered by the queue (at-least-once).
type Consumer struct {
	sqsClient *sqs.Client
	queueURL  string
	logger    *zap.Logger
}

func NewConsumer(ctx context.Context, cfg aws.Config, queueName string, logger *zap.Logger) (*Consumer, error) {
	sqsClient := sqs.NewFromConfig(cfg)

	result, err := sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve queue url for %s: %w", queueName, err)
	}

	return &Consumer{
		sqsClient: sqsClient,
		queueURL:  aws.ToString(result.QueueUrl),
		logger:    logger,
	}, nil
}

// Run polls until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, handle ForwardHandler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := c.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("failed to receive messages", zap.Error(err))
			continue
		}

		for _, message := range result.Messages {
			c.process(ctx, message, handle)
		}
	}
}

func (c *Consumer) process(ctx context.Context, message types.Message, handle ForwardHandler) {
	var cmd domain.ForwardToAcquiringBank
	if err := json.Unmarshal([]byte(aws.ToString(message.Body)), &cmd); err != nil {
		// Left for redelivery; the queue's dead-letter policy catches
		// messages that can never be parsed.
		c.logger.Error("failed to parse forward command, leaving for redelivery", zap.Error(err))
		return
	}

	log := c.logger.With(
		zap.String("payment_request_id", cmd.PaymentRequestID),
		zap.String("merchant_id", cmd.MerchantID),
	)

	if err := handle(ctx, cmd); err != nil {
		log.Error("failed to handle forward command, leaving for redelivery", zap.Error(err))
		return
	}

	_, err := c.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		// The handler is idempotent, so a redelivery after a failed delete is safe.
		log.Error("failed to delete handled message", zap.Error(err))
		return
	}

	log.Info("handled forward command")
}
