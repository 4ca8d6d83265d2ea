package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value objects wrap a single validated primitive. Constructors either return
// a valid instance or a *DomainError naming the rule that failed. Instances
// are immutable after construction and compare by value.

type MerchantID struct {
	value string
}

func NewMerchantID(raw string) (MerchantID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil || parsed.Version() != 4 {
		return MerchantID{}, NewDomainError("Merchant ID must be a UUID-4.")
	}
	return MerchantID{value: raw}, nil
}

func (m MerchantID) Value() string { return m.value }

type CardNumber struct {
	value string
}

func NewCardNumber(raw string) (CardNumber, error) {
	if !isNumeric(raw) || len(raw) < 8 || len(raw) > 19 {
		return CardNumber{}, NewDomainError("Credit card number must be numeric, and between 8 and 19 digits long.")
	}
	return CardNumber{value: raw}, nil
}

func (c CardNumber) Value() string { return c.value }

// Masked replaces all but the last four digits with '*'.
func (c CardNumber) Masked() string {
	return strings.Repeat("*", len(c.value)-4) + c.value[len(c.value)-4:]
}

type ExpiryDate struct {
	month string
	year  string
}

func NewExpiryDate(raw string) (ExpiryDate, error) {
	if len(raw) != 5 || raw[2] != '-' || !isNumeric(raw[0:2]) || !isNumeric(raw[3:5]) {
		return ExpiryDate{}, NewDomainError("Expiry date must be in format: MM-YY")
	}
	month, _ := strconv.Atoi(raw[0:2])
	if month < 1 || month > 12 {
		return ExpiryDate{}, NewDomainError("Month must be between 01 and 12")
	}
	return ExpiryDate{month: raw[0:2], year: raw[3:5]}, nil
}

func (e ExpiryDate) Month() string { return e.month }
func (e ExpiryDate) Year() string  { return e.year }

func (e ExpiryDate) String() string {
	return e.month + "-" + e.year
}

// IsInPast reports whether the expiry date has passed, relative to the
// current UTC date. The two-digit year is interpreted as 20YY.
func (e ExpiryDate) IsInPast() bool {
	return e.isInPastAt(time.Now().UTC())
}

func (e ExpiryDate) isInPastAt(now time.Time) bool {
	month, _ := strconv.Atoi(e.month)
	year, _ := strconv.Atoi(e.year)
	year += 2000

	if year < now.Year() {
		return true
	}
	return year == now.Year() && month < int(now.Month())
}

type CVV struct {
	value string
}

func NewCVV(raw string) (CVV, error) {
	if len(raw) != 3 {
		return CVV{}, NewDomainError(fmt.Sprintf("CVV must be of length three, not %d", len(raw)))
	}
	if !isNumeric(raw) {
		return CVV{}, NewDomainError("CVV must be a numeric string.")
	}
	return CVV{value: raw}, nil
}

func (c CVV) Value() string { return c.value }

type Currency struct {
	value string
}

const (
	CurrencyPounds  = "POUNDS"
	CurrencyEuros   = "EUROS"
	CurrencyDollars = "DOLLARS"
)

func NewCurrency(raw string) (Currency, error) {
	switch raw {
	case CurrencyPounds, CurrencyEuros, CurrencyDollars:
		return Currency{value: raw}, nil
	}
	return Currency{}, NewDomainError(fmt.Sprintf("Currency type: %s is not supported.", raw))
}

func (c Currency) Value() string { return c.value }

type MonetaryAmount struct {
	amount   decimal.Decimal
	currency Currency
}

func NewMonetaryAmount(rawAmount, rawCurrency string) (MonetaryAmount, error) {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return MonetaryAmount{}, NewDomainError("Amount could not be parsed to a decimal number.")
	}

	currency, err := NewCurrency(rawCurrency)
	if err != nil {
		return MonetaryAmount{}, err
	}

	if !amount.IsPositive() {
		return MonetaryAmount{}, NewDomainError("Payment amount must be greater than 0.")
	}

	return MonetaryAmount{amount: amount, currency: currency}, nil
}

func (m MonetaryAmount) Amount() decimal.Decimal { return m.amount }
func (m MonetaryAmount) Currency() Currency      { return m.currency }

func (m MonetaryAmount) Equal(other MonetaryAmount) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

// AcquiringBankResponse is the closed set of outcomes the acquiring bank can
// report for a forwarded payment request.
type AcquiringBankResponse struct {
	value string
}

const (
	BankResponseProcessing         = "Processing"
	BankResponsePaid               = "Paid into account"
	BankResponseInsufficientCredit = "Payment could not be reconciled - insufficient credit"
	BankResponseFraudDetected      = "Payment could not be reconciled - fraud detected"
)

func NewAcquiringBankResponse(raw string) (AcquiringBankResponse, error) {
	switch raw {
	case BankResponseProcessing, BankResponsePaid, BankResponseInsufficientCredit, BankResponseFraudDetected:
		return AcquiringBankResponse{value: raw}, nil
	}
	return AcquiringBankResponse{}, NewDomainError(fmt.Sprintf("Response message: %s is not supported.", raw))
}

func (r AcquiringBankResponse) Value() string { return r.value }

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
