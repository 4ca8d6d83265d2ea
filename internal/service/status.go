package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
)

// Synthetic statuses reported before the acquiring bank has answered. The
// bank's own statuses are assumed safe to show to merchants as-is.
const (
	statusInGateway        = "Processing - In Payment Gateway"
	statusAwaitingResponse = "Processing - Awaiting response from acquiring bank"
)

// PaymentStatus is the read-side projection of a payment request. The card
// number is only ever exposed masked.
type PaymentStatus struct {
	PaymentDetails PaymentDetails `json:"payment_details"`
	Status         string         `json:"status"`
}

type PaymentDetails struct {
	ID         string `json:"id"`
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv"`
	ExpiryDate string `json:"expiry_date"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
}

// GetStatus fetches the aggregate and projects it to a status view without
// mutating it. A merchant asking about another merchant's payment gets
// NotFound, never confirmation that the id exists.
func (s *PaymentRequestService) GetStatus(ctx context.Context, merchantID, paymentRequestID string) (PaymentStatus, error) {
	paymentRequest, err := s.repo.GetByID(ctx, paymentRequestID)
	if err != nil {
		return PaymentStatus{}, err
	}

	if paymentRequest.MerchantID().Value() != merchantID {
		s.logger.Warn("merchant requested status of another merchant's payment",
			zap.String("merchant_id", merchantID),
			zap.String("owning_merchant_id", paymentRequest.MerchantID().Value()),
			zap.String("payment_request_id", paymentRequestID),
		)
		return PaymentStatus{}, domain.ErrNotFound
	}

	return PaymentStatus{
		PaymentDetails: PaymentDetails{
			ID:         paymentRequest.ID(),
			CardNumber: paymentRequest.CardNumber().Masked(),
			CVV:        paymentRequest.CVV().Value(),
			ExpiryDate: paymentRequest.ExpiryDate().String(),
			Amount:     paymentRequest.Amount().Amount().String(),
			Currency:   paymentRequest.Amount().Currency().Value(),
		},
		Status: s.statusOf(paymentRequest),
	}, nil
}

func (s *PaymentRequestService) statusOf(paymentRequest *domain.PaymentRequest) string {
	if !paymentRequest.IsSentToAcquiringBank() {
		return statusInGateway
	}
	response, recorded := paymentRequest.AcquiringBankResponse()
	if !recorded {
		return statusAwaitingResponse
	}
	return response.Value()
}
