package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arttatum/payment-gateway/internal/mapper"
)

// The store is schema-less and flat, so the structural mapper is the only
// mechanism that reconstitutes the aggregate's nested value objects from
// persisted key/value data. The schemas below live in this package because
// rehydration assigns unexported fields directly, bypassing the validating
// constructors.

func (p *PaymentRequest) Attributes() map[string]any {
	var response any
	if p.acquiringBankResponse != nil {
		response = *p.acquiringBankResponse
	}
	return map[string]any{
		"id":                        p.id,
		"merchant_id":               p.merchantID,
		"card_number":               p.cardNumber,
		"expiry_date":               p.expiryDate,
		"cvv":                       p.cvv,
		"amount":                    p.amount,
		"is_sent_to_acquiring_bank": p.isSentToAcquiringBank,
		"acquiring_bank_response":   response,
	}
}

func (m MerchantID) Attributes() map[string]any {
	return map[string]any{"value": m.value}
}

func (c CardNumber) Attributes() map[string]any {
	return map[string]any{"value": c.value}
}

func (e ExpiryDate) Attributes() map[string]any {
	return map[string]any{"month": e.month, "year": e.year}
}

func (c CVV) Attributes() map[string]any {
	return map[string]any{"value": c.value}
}

func (c Currency) Attributes() map[string]any {
	return map[string]any{"value": c.value}
}

func (m MonetaryAmount) Attributes() map[string]any {
	return map[string]any{"amount": m.amount, "currency": m.currency}
}

func (r AcquiringBankResponse) Attributes() map[string]any {
	return map[string]any{"value": r.value}
}

// PaymentRequestMapper returns the mapper that rebuilds a PaymentRequest from
// its persisted document form, including every nested value object.
func PaymentRequestMapper() *mapper.Mapper {
	return mapper.ForType(paymentRequestSchema()).WithAttributeMappings(map[string]*mapper.Mapper{
		"merchant_id": mapper.ForType(merchantIDSchema()),
		"card_number": mapper.ForType(cardNumberSchema()),
		"expiry_date": mapper.ForType(expiryDateSchema()),
		"cvv":         mapper.ForType(cvvSchema()),
		"amount": mapper.ForType(monetaryAmountSchema()).WithAttributeMappings(map[string]*mapper.Mapper{
			"currency": mapper.ForType(currencySchema()),
		}),
		"acquiring_bank_response": mapper.ForType(acquiringBankResponseSchema()),
	})
}

func paymentRequestSchema() mapper.TypeSchema {
	return mapper.TypeSchema{
		Name: "PaymentRequest",
		New:  func() any { return &PaymentRequest{} },
		Set: func(target any, attribute string, value any) error {
			p := target.(*PaymentRequest)
			switch attribute {
			case "id":
				s, ok := value.(string)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "string", value)
				}
				p.id = s
			case "merchant_id":
				v, ok := value.(*MerchantID)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "MerchantID", value)
				}
				p.merchantID = *v
			case "card_number":
				v, ok := value.(*CardNumber)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "CardNumber", value)
				}
				p.cardNumber = *v
			case "expiry_date":
				v, ok := value.(*ExpiryDate)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "ExpiryDate", value)
				}
				p.expiryDate = *v
			case "cvv":
				v, ok := value.(*CVV)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "CVV", value)
				}
				p.cvv = *v
			case "amount":
				v, ok := value.(*MonetaryAmount)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "MonetaryAmount", value)
				}
				p.amount = *v
			case "is_sent_to_acquiring_bank":
				b, ok := value.(bool)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "bool", value)
				}
				p.isSentToAcquiringBank = b
			case "acquiring_bank_response":
				if value == nil {
					p.acquiringBankResponse = nil
					return nil
				}
				v, ok := value.(*AcquiringBankResponse)
				if !ok {
					return attributeTypeError("PaymentRequest", attribute, "AcquiringBankResponse", value)
				}
				p.acquiringBankResponse = v
			default:
				return &mapper.TypeError{Message: fmt.Sprintf("PaymentRequest has no attribute %q", attribute)}
			}
			return nil
		},
	}
}

func merchantIDSchema() mapper.TypeSchema {
	return singleValueSchema("MerchantID",
		func() any { return &MerchantID{} },
		func(target any, v string) { target.(*MerchantID).value = v },
	)
}

func cardNumberSchema() mapper.TypeSchema {
	return singleValueSchema("CardNumber",
		func() any { return &CardNumber{} },
		func(target any, v string) { target.(*CardNumber).value = v },
	)
}

func cvvSchema() mapper.TypeSchema {
	return singleValueSchema("CVV",
		func() any { return &CVV{} },
		func(target any, v string) { target.(*CVV).value = v },
	)
}

func currencySchema() mapper.TypeSchema {
	return singleValueSchema("Currency",
		func() any { return &Currency{} },
		func(target any, v string) { target.(*Currency).value = v },
	)
}

func acquiringBankResponseSchema() mapper.TypeSchema {
	return singleValueSchema("AcquiringBankResponse",
		func() any { return &AcquiringBankResponse{} },
		func(target any, v string) { target.(*AcquiringBankResponse).value = v },
	)
}

func expiryDateSchema() mapper.TypeSchema {
	return mapper.TypeSchema{
		Name: "ExpiryDate",
		New:  func() any { return &ExpiryDate{} },
		Set: func(target any, attribute string, value any) error {
			e := target.(*ExpiryDate)
			s, ok := value.(string)
			if !ok {
				return attributeTypeError("ExpiryDate", attribute, "string", value)
			}
			switch attribute {
			case "month":
				e.month = s
			case "year":
				e.year = s
			default:
				return &mapper.TypeError{Message: fmt.Sprintf("ExpiryDate has no attribute %q", attribute)}
			}
			return nil
		},
	}
}

func monetaryAmountSchema() mapper.TypeSchema {
	return mapper.TypeSchema{
		Name: "MonetaryAmount",
		New:  func() any { return &MonetaryAmount{} },
		Set: func(target any, attribute string, value any) error {
			m := target.(*MonetaryAmount)
			switch attribute {
			case "amount":
				s, ok := value.(string)
				if !ok {
					return attributeTypeError("MonetaryAmount", attribute, "string", value)
				}
				amount, err := decimal.NewFromString(s)
				if err != nil {
					return &mapper.ValueError{Message: fmt.Sprintf("persisted amount %q is not a decimal: %v", s, err)}
				}
				m.amount = amount
			case "currency":
				v, ok := value.(*Currency)
				if !ok {
					return attributeTypeError("MonetaryAmount", attribute, "Currency", value)
				}
				m.currency = *v
			default:
				return &mapper.TypeError{Message: fmt.Sprintf("MonetaryAmount has no attribute %q", attribute)}
			}
			return nil
		},
	}
}

// singleValueSchema covers the value objects persisted as {"value": ...}.
func singleValueSchema(name string, newInstance func() any, assign func(target any, v string)) mapper.TypeSchema {
	return mapper.TypeSchema{
		Name: name,
		New:  newInstance,
		Set: func(target any, attribute string, value any) error {
			if attribute != "value" {
				return &mapper.TypeError{Message: fmt.Sprintf("%s has no attribute %q", name, attribute)}
			}
			s, ok := value.(string)
			if !ok {
				return attributeTypeError(name, attribute, "string", value)
			}
			assign(target, s)
			return nil
		},
		FromScalar: func(value any) (any, error) {
			s, ok := value.(string)
			if !ok {
				return nil, &mapper.ValueError{Message: fmt.Sprintf("%s must be rebuilt from a string, received %T", name, value)}
			}
			instance := newInstance()
			assign(instance, s)
			return instance, nil
		},
	}
}

func attributeTypeError(typeName, attribute, want string, got any) error {
	return &mapper.TypeError{Message: fmt.Sprintf("%s.%s must be a %s, received %T", typeName, attribute, want, got)}
}
