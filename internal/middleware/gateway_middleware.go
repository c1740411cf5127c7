package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/arjunrk/campusvibe/internal/payment"
)

// PaymentGatewayMiddleware attaches the configured payment gateway to every
// request so the registration flow can charge through it.
func PaymentGatewayMiddleware(gateway payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("payment_gateway", gateway)
		c.Next()
	}
}

func GetPaymentGateway(c *gin.Context) payment.Gateway {
	gateway, exists := c.Get("payment_gateway")
	if !exists {
		return nil
	}
	return gateway.(payment.Gateway)
}
