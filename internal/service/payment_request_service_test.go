package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
)

// Mocks

type MockRepo struct {
	UpsertFunc  func(ctx context.Context, paymentRequest *domain.PaymentRequest) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.PaymentRequest, error)
}

func (m *MockRepo) Upsert(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, paymentRequest)
	}
	return nil
}

func (m *MockRepo) GetByID(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type MockPublisher struct {
	PublishFunc func(ctx context.Context, cmd domain.ForwardToAcquiringBank) error
	Published   []domain.ForwardToAcquiringBank
}

func (m *MockPublisher) PublishForwardCommand(ctx context.Context, cmd domain.ForwardToAcquiringBank) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, cmd); err != nil {
			return err
		}
	}
	m.Published = append(m.Published, cmd)
	return nil
}

type MockBank struct {
	PostFunc func(ctx context.Context, paymentRequest *domain.PaymentRequest) error
	Calls    int
}

func (m *MockBank) PostPaymentRequest(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
	m.Calls++
	if m.PostFunc != nil {
		return m.PostFunc(ctx, paymentRequest)
	}
	return nil
}

// inMemoryRepo backs the idempotence and read-path tests with real
// read-modify-write behavior.
type inMemoryRepo struct {
	store map[string]*domain.PaymentRequest
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{store: map[string]*domain.PaymentRequest{}}
}

func (r *inMemoryRepo) Upsert(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
	copied := *paymentRequest
	r.store[paymentRequest.ID()] = &copied
	return nil
}

func (r *inMemoryRepo) GetByID(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	stored, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

const testMerchantID = "11111111-1111-4111-8111-111111111111"

func validCommand() domain.SubmitPaymentRequest {
	return domain.SubmitPaymentRequest{
		MerchantID: testMerchantID,
		CardNumber: "1234123412341234",
		ExpiryDate: "01-30",
		Amount:     "15.75",
		Currency:   "POUNDS",
		CVV:        "321",
	}
}

func newService(repo domain.PaymentRequestRepository, publisher domain.CommandPublisher, bank domain.AcquiringBankClient) *PaymentRequestService {
	return NewPaymentRequestService(repo, publisher, bank, zap.NewNop())
}

func TestSubmit_PersistsThenPublishesExactlyOneCommand(t *testing.T) {
	repo := newInMemoryRepo()
	publisher := &MockPublisher{}

	svc := newService(repo, publisher, &MockBank{})

	id, err := svc.Submit(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id == "" {
		t.Fatal("expected a new payment request id")
	}

	stored, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("expected stored payment request, got %v", err)
	}
	if stored.IsSentToAcquiringBank() {
		t.Error("new payment request must not be marked as forwarded")
	}

	if len(publisher.Published) != 1 {
		t.Fatalf("expected exactly one published command, got %d", len(publisher.Published))
	}
	if publisher.Published[0].PaymentRequestID != id || publisher.Published[0].MerchantID != testMerchantID {
		t.Errorf("unexpected forward command: %+v", publisher.Published[0])
	}
}

func TestSubmit_InvalidCommandIsADomainErrorAndNothingHappens(t *testing.T) {
	upserts := 0
	repo := &MockRepo{
		UpsertFunc: func(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
			upserts++
			return nil
		},
	}
	publisher := &MockPublisher{}

	svc := newService(repo, publisher, &MockBank{})

	cmd := validCommand()
	cmd.CardNumber = "not-a-card"
	_, err := svc.Submit(context.Background(), cmd)

	if _, ok := domain.IsDomainError(err); !ok {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if upserts != 0 {
		t.Error("invalid command must not be persisted")
	}
	if len(publisher.Published) != 0 {
		t.Error("invalid command must not be published")
	}
}

func TestSubmit_PersistFailureBlocksPublish(t *testing.T) {
	repo := &MockRepo{
		UpsertFunc: func(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
			return errors.New("dynamodb unavailable")
		},
	}
	publisher := &MockPublisher{}

	svc := newService(repo, publisher, &MockBank{})

	_, err := svc.Submit(context.Background(), validCommand())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(publisher.Published) != 0 {
		t.Error("publish must not happen when persistence fails")
	}
}

func TestSubmit_PublishFailureIsSurfaced(t *testing.T) {
	repo := newInMemoryRepo()
	publisher := &MockPublisher{
		PublishFunc: func(ctx context.Context, cmd domain.ForwardToAcquiringBank) error {
			return errors.New("sqs unavailable")
		},
	}

	svc := newService(repo, publisher, &MockBank{})

	_, err := svc.Submit(context.Background(), validCommand())
	if err == nil {
		t.Fatal("expected publish failure to surface, got nil")
	}
	// The record is persisted; known gap without an outbox.
	if len(repo.store) != 1 {
		t.Errorf("expected the record to remain persisted, store has %d entries", len(repo.store))
	}
}

func TestForward_CallsBankOnceAcrossDuplicateDeliveries(t *testing.T) {
	repo := newInMemoryRepo()
	bank := &MockBank{}
	publisher := &MockPublisher{}

	svc := newService(repo, publisher, bank)

	id, err := svc.Submit(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	cmd := domain.ForwardToAcquiringBank{PaymentRequestID: id, MerchantID: testMerchantID}

	if err := svc.Forward(context.Background(), cmd); err != nil {
		t.Fatalf("first forward: %v", err)
	}
	if err := svc.Forward(context.Background(), cmd); err != nil {
		t.Fatalf("second forward: %v", err)
	}

	if bank.Calls != 1 {
		t.Errorf("expected exactly one call to the bank, got %d", bank.Calls)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if !stored.IsSentToAcquiringBank() {
		t.Error("expected payment request to end marked as forwarded")
	}
}

func TestForward_UnknownIDIsNotFound(t *testing.T) {
	svc := newService(&MockRepo{}, &MockPublisher{}, &MockBank{})

	err := svc.Forward(context.Background(), domain.ForwardToAcquiringBank{
		PaymentRequestID: "missing",
		MerchantID:       testMerchantID,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestForward_BankFailureLeavesAggregateUntouched(t *testing.T) {
	repo := newInMemoryRepo()
	bank := &MockBank{
		PostFunc: func(ctx context.Context, paymentRequest *domain.PaymentRequest) error {
			return errors.New("bank timeout")
		},
	}

	svc := newService(repo, &MockPublisher{}, bank)

	id, _ := svc.Submit(context.Background(), validCommand())
	cmd := domain.ForwardToAcquiringBank{PaymentRequestID: id, MerchantID: testMerchantID}

	if err := svc.Forward(context.Background(), cmd); err == nil {
		t.Fatal("expected bank failure to surface for retry, got nil")
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if stored.IsSentToAcquiringBank() {
		t.Error("failed forward must not mark the request as sent")
	}
}

func TestProcessResponse_RecordsValidResponse(t *testing.T) {
	repo := newInMemoryRepo()
	svc := newService(repo, &MockPublisher{}, &MockBank{})

	id, _ := svc.Submit(context.Background(), validCommand())
	if err := svc.Forward(context.Background(), domain.ForwardToAcquiringBank{PaymentRequestID: id, MerchantID: testMerchantID}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	err := svc.ProcessResponse(context.Background(), domain.ProcessAcquiringBankResponse{
		PaymentRequestID: id,
		MerchantID:       testMerchantID,
		Response:         domain.BankResponsePaid,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	response, recorded := stored.AcquiringBankResponse()
	if !recorded || response.Value() != domain.BankResponsePaid {
		t.Errorf("expected recorded response %q, got %v", domain.BankResponsePaid, response.Value())
	}
}

func TestProcessResponse_UnrecognizedStatusIsADomainErrorAndDoesNotMutate(t *testing.T) {
	repo := newInMemoryRepo()
	svc := newService(repo, &MockPublisher{}, &MockBank{})

	id, _ := svc.Submit(context.Background(), validCommand())

	err := svc.ProcessResponse(context.Background(), domain.ProcessAcquiringBankResponse{
		PaymentRequestID: id,
		MerchantID:       testMerchantID,
		Response:         "Refused",
	})
	if _, ok := domain.IsDomainError(err); !ok {
		t.Fatalf("expected DomainError, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if _, recorded := stored.AcquiringBankResponse(); recorded {
		t.Error("invalid response must not be recorded")
	}
}

func TestProcessResponse_UnknownIDIsNotFound(t *testing.T) {
	svc := newService(&MockRepo{}, &MockPublisher{}, &MockBank{})

	err := svc.ProcessResponse(context.Background(), domain.ProcessAcquiringBankResponse{
		PaymentRequestID: "missing",
		MerchantID:       testMerchantID,
		Response:         domain.BankResponsePaid,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
