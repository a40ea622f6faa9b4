package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Directory errors
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrGuestNotFound = errors.New("guest not found")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomUnavailable = errors.New("room unavailable for requested dates")
	ErrInvalidStay     = errors.New("invalid stay period")

	// Payment errors
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrAuthorizationFailed = errors.New("payment authorization failed")

	// A payment event referenced state this service should have recorded but
	// did not. Alerting-worthy, unlike the ordinary not-found cases above.
	ErrCriticalInconsistency = errors.New("critical booking state inconsistency")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
