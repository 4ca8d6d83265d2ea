package config

import "os"

// Config gathers every environment-derived setting in one place so the
// components themselves take plain values.
type Config struct {
	Port                           string
	Environment                    string
	PaymentRequestsTableName       string
	PaymentRequestsToForwardQueue  string
	AcquiringBankPostPaymentReqURL string
	AcquiringBankAPIKeySecretName  string
}

func FromEnv() Config {
	return Config{
		Port:                           getEnv("PORT", "8080"),
		Environment:                    getEnv("ENV", "production"),
		PaymentRequestsTableName:       getEnv("PAYMENT_REQUESTS_DYNAMODB_TABLE_NAME", "PaymentRequests"),
		PaymentRequestsToForwardQueue:  getEnv("PAYMENT_REQUESTS_TO_FORWARD_QUEUE_NAME", "payment-requests-to-forward"),
		AcquiringBankPostPaymentReqURL: os.Getenv("ACQUIRING_BANK_POST_PAYMENT_REQUEST_URL"),
		AcquiringBankAPIKeySecretName:  os.Getenv("ACQUIRING_BANK_API_KEY_SECRET_NAME"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
