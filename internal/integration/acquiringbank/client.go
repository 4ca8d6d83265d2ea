package acquiringbank

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
	"github.com/arttatum/payment-gateway/internal/mapper"
)

const requestTimeout = 30 * time.Second

// Client submits payment requests to the acquiring bank's API. The API key
// is fetched once at construction; network-level controls are assumed to
// complement it.
type Client struct {
	httpClient            *resty.Client
	postPaymentRequestURL string
	apiKey                string
	logger                *zap.Logger
}

func NewClient(ctx context.Context, cfg aws.Config, postPaymentRequestURL, apiKeySecretName string, logger *zap.Logger) (*Client, error) {
	apiKey, err := fetchAPIKey(ctx, cfg, apiKeySecretName)
	if err != nil {
		logger.Error("failed to get acquiring bank API key", zap.Error(err))
		return nil, err
	}

	return &Client{
		httpClient:            resty.New().SetTimeout(requestTimeout),
		postPaymentRequestURL: postPaymentRequestURL,
		apiKey:                apiKey,
		logger:                logger,
	}, nil
}

// PostPaymentRequest sends the payment request to the bank. Any non-2xx
// response, timeout, or transport failure is returned as an error so the
// caller's redelivery mechanism can retry.
func (c *Client) PostPaymentRequest(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
	body, err := mapper.ToJSON(paymentRequest)
	if err != nil {
		return fmt.Errorf("serialize payment request: %w", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.postPaymentRequestURL)
	if err != nil {
		return fmt.Errorf("post payment request to acquiring bank: %w", err)
	}

	c.logger.Info("status code response from bank",
		zap.Int("status_code", resp.StatusCode()),
		zap.String("payment_request_id", paymentRequest.ID()),
	)

	if resp.IsError() {
		return fmt.Errorf("acquiring bank returned status %d", resp.StatusCode())
	}
	return nil
}

func fetchAPIKey(ctx context.Context, cfg aws.Config, secretName string) (string, error) {
	client := secretsmanager.NewFromConfig(cfg)

	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", secretName, err)
	}

	return aws.ToString(result.SecretString), nil
}
