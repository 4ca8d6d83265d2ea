package domain

import "github.com/google/uuid"

// PaymentRequest is the aggregate root and single consistency boundary for a
// merchant's payment request. All fields are valid per their own invariants
// once construction succeeds, and only the transition methods below may
// change state after that.
type PaymentRequest struct {
	id                    string
	merchantID            MerchantID
	cardNumber            CardNumber
	expiryDate            ExpiryDate
	cvv                   CVV
	amount                MonetaryAmount
	isSentToAcquiringBank bool
	acquiringBankResponse *AcquiringBankResponse
}

// NewPaymentRequest builds the aggregate from a submit command. Validation of
// every field runs independently and all failures are reported in one
// DomainError. The command has usually validated the same inputs already;
// the duplicate checks are redundant but harmless.
func NewPaymentRequest(cmd SubmitPaymentRequest) (*PaymentRequest, error) {
	var collector errorCollector

	merchantID, err := NewMerchantID(cmd.MerchantID)
	collector.collect(err)

	cardNumber, err := NewCardNumber(cmd.CardNumber)
	collector.collect(err)

	expiryDate, err := NewExpiryDate(cmd.ExpiryDate)
	collector.collect(err)

	cvv, err := NewCVV(cmd.CVV)
	collector.collect(err)

	amount, err := NewMonetaryAmount(cmd.Amount, cmd.Currency)
	collector.collect(err)

	if err := collector.err(); err != nil {
		return nil, err
	}

	return &PaymentRequest{
		id:         uuid.New().String(),
		merchantID: merchantID,
		cardNumber: cardNumber,
		expiryDate: expiryDate,
		cvv:        cvv,
		amount:     amount,
	}, nil
}

func (p *PaymentRequest) ID() string                  { return p.id }
func (p *PaymentRequest) MerchantID() MerchantID      { return p.merchantID }
func (p *PaymentRequest) CardNumber() CardNumber      { return p.cardNumber }
func (p *PaymentRequest) ExpiryDate() ExpiryDate      { return p.expiryDate }
func (p *PaymentRequest) CVV() CVV                    { return p.cvv }
func (p *PaymentRequest) Amount() MonetaryAmount      { return p.amount }
func (p *PaymentRequest) IsSentToAcquiringBank() bool { return p.isSentToAcquiringBank }

// AcquiringBankResponse returns the recorded bank outcome, if any.
func (p *PaymentRequest) AcquiringBankResponse() (AcquiringBankResponse, bool) {
	if p.acquiringBankResponse == nil {
		return AcquiringBankResponse{}, false
	}
	return *p.acquiringBankResponse, true
}

// MarkForwarded records that the request has been sent to the acquiring bank.
// Calling it again is a no-op at the field level; the orchestration service
// guards against duplicate forwarding before the bank is called.
func (p *PaymentRequest) MarkForwarded() {
	p.isSentToAcquiringBank = true
}

// RecordResponse stores the acquiring bank's outcome. A later response
// overwrites an earlier one; the bank gives no ordering guarantee, so
// last-write-wins is the accepted behavior.
func (p *PaymentRequest) RecordResponse(response AcquiringBankResponse) {
	p.acquiringBankResponse = &response
}
