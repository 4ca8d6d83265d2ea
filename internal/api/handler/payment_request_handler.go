package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arttatum/payment-gateway/internal/domain"
	"github.com/arttatum/payment-gateway/internal/service"
)

type PaymentRequestService interface {
	Submit(ctx context.Context, cmd domain.SubmitPaymentRequest) (string, error)
	ProcessResponse(ctx context.Context, cmd domain.ProcessAcquiringBankResponse) error
	GetStatus(ctx context.Context, merchantID, paymentRequestID string) (service.PaymentStatus, error)
}

type PaymentRequestHandler struct {
	service PaymentRequestService
	logger  *zap.Logger
}

func NewPaymentRequestHandler(service PaymentRequestService, logger *zap.Logger) *PaymentRequestHandler {
	return &PaymentRequestHandler{
		service: service,
		logger:  logger,
	}
}

type submitPaymentRequestBody struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	CVV        string `json:"cvv"`
}

// Submit accepts a merchant's payment request. Field validation is left to
// the command so that every invalid field is reported in one response.
func (h *PaymentRequestHandler) Submit(c *gin.Context) {
	merchantID := c.Param("merchant_id")

	var body submitPaymentRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd, err := domain.NewSubmitPaymentRequest(
		merchantID,
		body.CardNumber,
		body.ExpiryDate,
		body.Amount,
		body.Currency,
		body.CVV,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id, err := h.service.Submit(c.Request.Context(), cmd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

type acquiringBankResponseBody struct {
	PaymentRequestID string `json:"payment_request_id" binding:"required"`
	MerchantID       string `json:"merchant_id" binding:"required"`
	Response         string `json:"response" binding:"required"`
}

// HandleBankResponse records an outcome reported by the acquiring bank.
func (h *PaymentRequestHandler) HandleBankResponse(c *gin.Context) {
	var body acquiringBankResponseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_request_id, merchant_id and response are required"})
		return
	}

	cmd := domain.ProcessAcquiringBankResponse{
		PaymentRequestID: body.PaymentRequestID,
		MerchantID:       body.MerchantID,
		Response:         body.Response,
	}

	if err := h.service.ProcessResponse(c.Request.Context(), cmd); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetStatus reports the current state of a payment request to its merchant.
func (h *PaymentRequestHandler) GetStatus(c *gin.Context) {
	merchantID := c.Param("merchant_id")
	paymentRequestID := c.Param("payment_request_id")

	if uuid.Validate(paymentRequestID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_request_id is not a valid uuid"})
		return
	}
	if uuid.Validate(merchantID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "merchant_id is not a valid uuid"})
		return
	}

	status, err := h.service.GetStatus(c.Request.Context(), merchantID, paymentRequestID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// respondError maps domain errors to 400, missing aggregates to 404, and
// everything else to an opaque 500. Infrastructure detail is logged, never
// echoed to callers.
func (h *PaymentRequestHandler) respondError(c *gin.Context, err error) {
	if de, ok := domain.IsDomainError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": de.Messages})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
		return
	}

	h.logger.Error("unexpected error handling request",
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
