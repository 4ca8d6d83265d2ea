package domain

// Commands are transient carriers for a single intended state transition.
// They are constructed once per invocation and never persisted.

// SubmitPaymentRequest carries the raw inputs a merchant provides when making
// a payment request. NewSubmitPaymentRequest attempts every constituent value
// object independently and reports all failures at once.
type SubmitPaymentRequest struct {
	MerchantID string
	CardNumber string
	ExpiryDate string
	Amount     string
	Currency   string
	CVV        string
}

func NewSubmitPaymentRequest(merchantID, cardNumber, expiryDate, amount, currency, cvv string) (SubmitPaymentRequest, error) {
	cmd := SubmitPaymentRequest{
		MerchantID: merchantID,
		CardNumber: cardNumber,
		ExpiryDate: expiryDate,
		Amount:     amount,
		Currency:   currency,
		CVV:        cvv,
	}
	if err := cmd.validate(); err != nil {
		return SubmitPaymentRequest{}, err
	}
	return cmd, nil
}

func (c SubmitPaymentRequest) validate() error {
	var collector errorCollector

	_, err := NewMerchantID(c.MerchantID)
	collector.collect(err)

	_, err = NewCardNumber(c.CardNumber)
	collector.collect(err)

	_, err = NewExpiryDate(c.ExpiryDate)
	collector.collect(err)

	_, err = NewCVV(c.CVV)
	collector.collect(err)

	_, err = NewMonetaryAmount(c.Amount, c.Currency)
	collector.collect(err)

	return collector.err()
}

// ForwardToAcquiringBank instructs the system to forward a stored payment
// request to the acquiring bank. The merchant id is carried for observability,
// not used as a lookup key.
type ForwardToAcquiringBank struct {
	PaymentRequestID string `json:"payment_request_id"`
	MerchantID       string `json:"merchant_id"`
}

// ProcessAcquiringBankResponse is sent by the acquiring bank when it has an
// update regarding a payment request. The raw response string is validated
// against the closed outcome set when the command is handled.
type ProcessAcquiringBankResponse struct {
	PaymentRequestID string `json:"payment_request_id"`
	MerchantID       string `json:"merchant_id"`
	Response         string `json:"response"`
}
