package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
)

// Client publishes commands to the payment-requests-to-forward queue.
type Client struct {
	sqsClient *sqs.Client
	queueURL  string
	logger    *zap.Logger
}

func NewClient(ctx context.Context, cfg aws.Config, queueName string, logger *zap.Logger) (*Client, error) {
	sqsClient := sqs.NewFromConfig(cfg)

	result, err := sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve queue url for %s: %w", queueName, err)
	}

	return &Client{
		sqsClient: sqsClient,
		queueURL:  aws.ToString(result.QueueUrl),
		logger:    logger,
	}, nil
}

func (c *Client) PublishForwardCommand(ctx context.Context, cmd domain.ForwardToAcquiringBank) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal forward command: %w", err)
	}

	_, err = c.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(c.queueURL),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		c.logger.Error("failed to publish forward command",
			zap.Error(err),
			zap.String("payment_request_id", cmd.PaymentRequestID),
		)
		return fmt.Errorf("send forward command: %w", err)
	}

	c.logger.Info("published forward command",
		zap.String("payment_request_id", cmd.PaymentRequestID),
		zap.String("merchant_id", cmd.MerchantID),
	)
	return nil
}
