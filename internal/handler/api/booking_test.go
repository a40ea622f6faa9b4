//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hotelbook/internal/handler/api"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/commands"
	"hotelbook/internal/usecase/queries"
	commandsmock "hotelbook/tests/mock/commands"
	queriesmock "hotelbook/tests/mock/queries"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	guestID uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.guestID = uuid.New()

	// Stand-in for the JWT middleware
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("guest_id", s.guestID)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) performJSON(method, url string, body any) *httptest.ResponseRecorder {
	s.T().Helper()

	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validCreateBody() map[string]any {
	return map[string]any{
		"hotel_id":    uuid.New().String(),
		"room_number": "101",
		"start_date":  "2026-03-10",
		"end_date":    "2026-03-13",
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("success returns 201 with client secret", func() {
		result := &commands.CreateBookingResult{BookingID: uuid.New(), ClientSecret: "secret_1"}
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), s.guestID, gomock.Any()).
			Return(result, nil).Times(1)

		rec := s.performJSON(http.MethodPost, "/bookings", validCreateBody())

		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), "secret_1")
		s.Contains(rec.Body.String(), result.BookingID.String())
	})

	s.Run("missing token returns 401", func() {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("malformed body returns 400", func() {
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer test-token")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("bad date format returns 400", func() {
		body := validCreateBody()
		body["start_date"] = "10/03/2026"

		rec := s.performJSON(http.MethodPost, "/bookings", body)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("usecase errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{"invalid stay", errs.ErrInvalidStay, http.StatusBadRequest},
			{"hotel not found", errs.ErrHotelNotFound, http.StatusNotFound},
			{"room not found", errs.ErrRoomNotFound, http.StatusNotFound},
			{"guest not found", errs.ErrGuestNotFound, http.StatusNotFound},
			{"room unavailable", errs.ErrRoomUnavailable, http.StatusConflict},
			{"authorization failed", errs.ErrAuthorizationFailed, http.StatusPaymentRequired},
			{"database failure", errs.ErrDatabaseOperationFailed, http.StatusInternalServerError},
		}

		for _, c := range cases {
			s.Run(c.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), s.guestID, gomock.Any()).
					Return(nil, c.err).Times(1)

				rec := s.performJSON(http.MethodPost, "/bookings", validCreateBody())
				s.Equal(c.expectCode, rec.Code)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()

	s.Run("success returns the booking", func() {
		view := &queries.BookingView{ID: bookingID, GuestID: s.guestID, HotelName: "Grand Plaza", Status: "confirmed"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.guestID, bookingID).
			Return(view, nil).Times(1)

		rec := s.performJSON(http.MethodGet, "/bookings/"+bookingID.String(), nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Grand Plaza")
	})

	s.Run("invalid id returns 400", func() {
		rec := s.performJSON(http.MethodGet, "/bookings/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown booking returns 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.guestID, bookingID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := s.performJSON(http.MethodGet, "/bookings/"+bookingID.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("returns the guest's bookings", func() {
		items := []*queries.BookingListItem{
			{ID: uuid.New(), HotelName: "Grand Plaza", RoomNumber: "101", Status: "confirmed"},
			{ID: uuid.New(), HotelName: "Grand Plaza", RoomNumber: "102", Status: "pending"},
		}
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).
			Return(items, nil).Times(1)

		rec := s.performJSON(http.MethodGet, "/bookings", nil)

		s.Equal(http.StatusOK, rec.Code)

		var got []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Len(got, 2)
	})

	s.Run("empty list returns 200", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).
			Return(nil, nil).Times(1)

		rec := s.performJSON(http.MethodGet, "/bookings", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}
