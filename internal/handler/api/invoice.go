package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelbook/internal/handler/middleware"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/queries"
)

type InvoiceHandler struct {
	invoiceQueries queries.InvoiceQueries
}

func NewInvoiceHandler(invoiceQueries queries.InvoiceQueries) *InvoiceHandler {
	return &InvoiceHandler{invoiceQueries: invoiceQueries}
}

// @Summary Get booking invoice
// @Description Download the invoice for a confirmed and paid booking
// @Tags bookings
// @Produce plain
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/invoice [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	guestID, ok := middleware.GetGuestID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	doc, err := h.invoiceQueries.GetInvoice(c.Request.Context(), guestID, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrPaymentNotCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is not paid yet",
			})
		case errors.Is(err, errs.ErrAuthorizationFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc)
}
