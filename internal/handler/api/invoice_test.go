//go:build unit

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hotelbook/internal/handler/api"
	"hotelbook/internal/pkg/errs"
	queriesmock "hotelbook/tests/mock/queries"
)

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockInvoice *queriesmock.MockInvoiceQueries

	guestID uuid.UUID
}

func (s *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockInvoice = queriesmock.NewMockInvoiceQueries(s.mockCtrl)
	s.guestID = uuid.New()

	handler := api.NewInvoiceHandler(s.mockInvoice)

	authMiddleware := func(c *gin.Context) {
		c.Set("guest_id", s.guestID)
		c.Next()
	}
	s.router.GET("/bookings/:id/invoice", authMiddleware, handler.GetInvoice)
}

func (s *InvoiceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInvoiceHandlerSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}

func (s *InvoiceHandlerTestSuite) get(id string) *httptest.ResponseRecorder {
	s.T().Helper()

	req := httptest.NewRequest(http.MethodGet, "/bookings/"+id+"/invoice", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *InvoiceHandlerTestSuite) TestGetInvoice() {
	bookingID := uuid.New()

	s.Run("paid booking returns the document", func() {
		s.mockInvoice.EXPECT().GetInvoice(gomock.Any(), s.guestID, bookingID).
			Return([]byte("INVOICE INV-1"), nil).Times(1)

		rec := s.get(bookingID.String())

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Header().Get("Content-Type"), "text/plain")
		s.Contains(rec.Body.String(), "INVOICE")
	})

	s.Run("invalid id returns 400", func() {
		rec := s.get("not-a-uuid")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown booking returns 404", func() {
		s.mockInvoice.EXPECT().GetInvoice(gomock.Any(), s.guestID, bookingID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := s.get(bookingID.String())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("unpaid booking returns 409", func() {
		s.mockInvoice.EXPECT().GetInvoice(gomock.Any(), s.guestID, bookingID).
			Return(nil, errs.ErrPaymentNotCompleted).Times(1)

		rec := s.get(bookingID.String())
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("gateway outage returns 502", func() {
		s.mockInvoice.EXPECT().GetInvoice(gomock.Any(), s.guestID, bookingID).
			Return(nil, errs.ErrAuthorizationFailed).Times(1)

		rec := s.get(bookingID.String())
		s.Equal(http.StatusBadGateway, rec.Code)
	})
}
