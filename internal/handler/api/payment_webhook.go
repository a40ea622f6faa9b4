package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbook/internal/domain/payment"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/commands"
)

// Webhook bodies stay small; anything past this is not a payment event.
const maxWebhookBodyBytes = 64 * 1024

type PaymentWebhookHandler struct {
	paymentEvents commands.PaymentEventCommands
}

func NewPaymentWebhookHandler(paymentEvents commands.PaymentEventCommands) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{paymentEvents: paymentEvents}
}

// @Summary Payment event webhook
// @Description Receive asynchronous authorization events from the payment gateway
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /payments/events [post]
func (h *PaymentWebhookHandler) HandleEvent(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	event, err := payment.DecodeEvent(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Malformed event payload",
		})
		return
	}

	if err := h.paymentEvents.HandlePaymentEvent(c.Request.Context(), event); err != nil {
		// Any 5xx makes the gateway redeliver. That is correct for transient
		// database failures and harmless for inconsistencies, which stay
		// non-retriable on our side and keep alerting until fixed.
		if errors.Is(err, errs.ErrCriticalInconsistency) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Event references unknown state",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
