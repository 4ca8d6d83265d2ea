package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
)

// PaymentRequestService coordinates the payment request lifecycle across the
// repository, the outbound command queue, and the acquiring bank. Each
// operation is a stateless unit of work: the aggregate is read, mutated in
// memory, and written back, with no locking at the store layer.
type PaymentRequestService struct {
	repo      domain.PaymentRequestRepository
	publisher domain.CommandPublisher
	bank      domain.AcquiringBankClient
	logger    *zap.Logger
}

func NewPaymentRequestService(
	repo domain.PaymentRequestRepository,
	publisher domain.CommandPublisher,
	bank domain.AcquiringBankClient,
	logger *zap.Logger,
) *PaymentRequestService {
	return &PaymentRequestService{
		repo:      repo,
		publisher: publisher,
		bank:      bank,
		logger:    logger,
	}
}

// Submit creates the aggregate from the command, persists it, then publishes
// a ForwardToAcquiringBank command. Persistence happens before publish, so a
// failed write never leaves a dangling queue message. The reverse gap is
// accepted: if the publish fails after a successful write, the record exists
// but is not auto-forwarded (no outbox is implemented).
func (s *PaymentRequestService) Submit(ctx context.Context, cmd domain.SubmitPaymentRequest) (string, error) {
	log := s.logger.With(zap.String("merchant_id", cmd.MerchantID))
	log.Info("creating new payment request")

	paymentRequest, err := domain.NewPaymentRequest(cmd)
	if err != nil {
		log.Info("payment request rejected", zap.Error(err))
		return "", err
	}

	if err := s.repo.Upsert(ctx, paymentRequest); err != nil {
		return "", err
	}

	forwardCmd := domain.ForwardToAcquiringBank{
		PaymentRequestID: paymentRequest.ID(),
		MerchantID:       paymentRequest.MerchantID().Value(),
	}
	if err := s.publisher.PublishForwardCommand(ctx, forwardCmd); err != nil {
		// The persisted request will not be forwarded until something
		// re-triggers it; surfaced rather than masked.
		log.Error("payment request persisted but forward command was not published",
			zap.Error(err),
			zap.String("payment_request_id", paymentRequest.ID()),
		)
		return "", err
	}

	log.Info("published forward command for new payment request",
		zap.String("payment_request_id", paymentRequest.ID()),
	)
	return paymentRequest.ID(), nil
}

// Forward sends a stored payment request to the acquiring bank, unless it has
// already been sent. The guard tolerates duplicate queue deliveries but is
// only mostly idempotent: two concurrent invocations can both read the flag
// as false and both call the bank. Accepted, absent a conditional write at
// the store layer.
func (s *PaymentRequestService) Forward(ctx context.Context, cmd domain.ForwardToAcquiringBank) error {
	log := s.logger.With(
		zap.String("payment_request_id", cmd.PaymentRequestID),
		zap.String("merchant_id", cmd.MerchantID),
	)

	paymentRequest, err := s.repo.GetByID(ctx, cmd.PaymentRequestID)
	if err != nil {
		return err
	}

	if paymentRequest.IsSentToAcquiringBank() {
		log.Info("payment request already forwarded to acquiring bank")
		return nil
	}

	if err := s.bank.PostPaymentRequest(ctx, paymentRequest); err != nil {
		// Retryable: the queue redelivers the command.
		log.Error("failed to forward payment request to acquiring bank", zap.Error(err))
		return err
	}

	paymentRequest.MarkForwarded()
	if err := s.repo.Upsert(ctx, paymentRequest); err != nil {
		return err
	}

	log.Info("forwarded payment request to acquiring bank")
	return nil
}

// ProcessResponse records the acquiring bank's outcome for a payment request.
// A repeated or out-of-order response overwrites the previous one.
func (s *PaymentRequestService) ProcessResponse(ctx context.Context, cmd domain.ProcessAcquiringBankResponse) error {
	log := s.logger.With(
		zap.String("payment_request_id", cmd.PaymentRequestID),
		zap.String("merchant_id", cmd.MerchantID),
	)

	paymentRequest, err := s.repo.GetByID(ctx, cmd.PaymentRequestID)
	if err != nil {
		return err
	}

	response, err := domain.NewAcquiringBankResponse(cmd.Response)
	if err != nil {
		log.Info("acquiring bank response rejected", zap.Error(err))
		return err
	}

	paymentRequest.RecordResponse(response)
	if err := s.repo.Upsert(ctx, paymentRequest); err != nil {
		return err
	}

	log.Info("recorded acquiring bank response", zap.String("response", response.Value()))
	return nil
}
