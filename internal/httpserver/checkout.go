package httpserver

import (
	"net/http"

	"gamestore/internal/domain"
	"github.com/gin-gonic/gin"
)

type confirmRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func openCheckoutHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipping domain.ShippingDetails
		if err := c.ShouldBindJSON(&shipping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		order, err := svc.OpenCheckout(c.Request.Context(), customerKey(c), shipping)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func currentDraftHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.CurrentDraft(c.Request.Context(), customerKey(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func paymentSessionHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := svc.PaymentSession(c.Request.Context(), customerKey(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
	}
}

func confirmCheckoutHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req confirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId required"})
			return
		}
		orderID, err := svc.Finalize(c.Request.Context(), customerKey(c), req.SessionID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": orderID})
	}
}
