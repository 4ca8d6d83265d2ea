package api

import (
	"github.com/gin-gonic/gin"

	"github.com/arttatum/payment-gateway/internal/api/handler"
)

func SetupRouter(paymentRequestHandler *handler.PaymentRequestHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "up"})
	})

	v1 := r.Group("/v1")
	{
		merchants := v1.Group("/merchants/:merchant_id")
		{
			merchants.POST("/payment-requests", paymentRequestHandler.Submit)
			merchants.GET("/payment-requests/:payment_request_id", paymentRequestHandler.GetStatus)
		}

		// Callback endpoint for the acquiring bank.
		v1.POST("/acquiring-bank/responses", paymentRequestHandler.HandleBankResponse)
	}

	return r
}
