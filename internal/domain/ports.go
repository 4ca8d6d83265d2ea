package domain

import "context"

// Collaborator interfaces, implemented by the infrastructure adapters and
// mocked in service tests.

type PaymentRequestRepository interface {
	Upsert(ctx context.Context, paymentRequest *PaymentRequest) error
	GetByID(ctx context.Context, id string) (*PaymentRequest, error)
}

// CommandPublisher puts a ForwardToAcquiringBank command on the outbound
// queue. Delivery is at-least-once and not transactional with the
// repository write.
type CommandPublisher interface {
	PublishForwardCommand(ctx context.Context, cmd ForwardToAcquiringBank) error
}

// AcquiringBankClient submits a payment request to the acquiring bank.
// Any non-2xx response or transport failure is returned as an error.
type AcquiringBankClient interface {
	PostPaymentRequest(ctx context.Context, paymentRequest *PaymentRequest) error
}
