package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
	"github.com/arttatum/payment-gateway/internal/mapper"
)

// PaymentRequestRepository persists PaymentRequest aggregates as flat
// documents in DynamoDB, keyed by aggregate id. Writes are idempotent
// upserts: a put fully overwrites any existing record for the same id.
type PaymentRequestRepository struct {
	client    *dynamodb.Client
	tableName string
	mapper    *mapper.Mapper
	logger    *zap.Logger
}

func NewPaymentRequestRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *PaymentRequestRepository {
	return &PaymentRequestRepository{
		client:    client,
		tableName: tableName,
		mapper:    domain.PaymentRequestMapper(),
		logger:    logger,
	}
}

func (r *PaymentRequestRepository) Upsert(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
	if paymentRequest == nil {
		return errors.New("upsert requires a PaymentRequest")
	}

	doc, ok := mapper.ToDocument(paymentRequest).(map[string]any)
	if !ok {
		return fmt.Errorf("PaymentRequest did not map to a document")
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal payment request document: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		r.logger.Error("failed to save payment request",
			zap.Error(err),
			zap.String("payment_request_id", paymentRequest.ID()),
			zap.String("table", r.tableName),
		)
		return fmt.Errorf("put payment request: %w", err)
	}

	r.logger.Info("created or updated payment request",
		zap.String("payment_request_id", paymentRequest.ID()),
		zap.String("table", r.tableName),
	)
	return nil
}

func (r *PaymentRequestRepository) GetByID(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		r.logger.Error("failed to get payment request",
			zap.Error(err),
			zap.String("payment_request_id", id),
			zap.String("table", r.tableName),
		)
		return nil, fmt.Errorf("get payment request: %w", err)
	}

	if result.Item == nil {
		r.logger.Info("payment request not found",
			zap.String("payment_request_id", id),
			zap.String("table", r.tableName),
		)
		return nil, domain.ErrNotFound
	}

	var doc map[string]any
	if err := attributevalue.UnmarshalMap(result.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal payment request document: %w", err)
	}

	rebuilt, err := r.mapper.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("rebuild payment request from document: %w", err)
	}

	return rebuilt.(*domain.PaymentRequest), nil
}
