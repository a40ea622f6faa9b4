package paymentgw

import (
	"context"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"

	"hotelbook/internal/domain/payment"
	"hotelbook/internal/pkg/config"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/commands"
)

var (
	errCreateAuthorization = errs.New("failed to create payment authorization")
	errVoidAuthorization   = errs.New("failed to void payment authorization")
	errGetAuthorization    = errs.New("failed to retrieve payment authorization")
)

// OmiseGateway authorizes payments as uncaptured charges. Capture happens
// out of band once the stay completes, so a void simply reverses the hold.
type OmiseGateway struct {
	client *omise.Client
}

func NewOmiseGateway(cfg config.PaymentConfig) (*OmiseGateway, error) {
	client, err := omise.NewClient(cfg.PublicKey, cfg.SecretKey)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build omise client")
	}
	return &OmiseGateway{client: client}, nil
}

func (g *OmiseGateway) CreateAuthorization(ctx context.Context, amountCents int64, currency string) (*commands.Authorization, error) {
	charge := &omise.Charge{}
	req := &operations.CreateCharge{
		Amount:      amountCents,
		Currency:    currency,
		DontCapture: true,
	}
	if err := g.client.Do(charge, req); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "omise create charge failed"), errCreateAuthorization)
	}
	if string(charge.Status) == "failed" {
		return nil, errs.Mark(
			errs.Newf("omise declined authorization: %s", failureMessage(charge)),
			errCreateAuthorization,
		)
	}
	return &commands.Authorization{
		ID:           charge.ID,
		ClientSecret: charge.AuthorizeURI,
	}, nil
}

func (g *OmiseGateway) VoidAuthorization(ctx context.Context, authorizationID string) error {
	charge := &omise.Charge{}
	if err := g.client.Do(charge, &operations.ReverseCharge{ChargeID: authorizationID}); err != nil {
		return errs.Mark(errs.Wrap(err, "omise reverse charge failed"), errVoidAuthorization)
	}
	return nil
}

func (g *OmiseGateway) GetAuthorization(ctx context.Context, authorizationID string) (payment.AuthorizationStatus, error) {
	charge := &omise.Charge{}
	if err := g.client.Do(charge, &operations.RetrieveCharge{ChargeID: authorizationID}); err != nil {
		return "", errs.Mark(errs.Wrap(err, "omise retrieve charge failed"), errGetAuthorization)
	}
	return mapChargeStatus(charge), nil
}

func mapChargeStatus(charge *omise.Charge) payment.AuthorizationStatus {
	if charge.Authorized || string(charge.Status) == "successful" {
		return payment.StatusSucceeded
	}
	switch string(charge.Status) {
	case "failed", "expired", "reversed":
		return payment.StatusFailed
	case "pending":
		if charge.AuthorizeURI != "" {
			return payment.StatusRequiresAction
		}
		return payment.StatusProcessing
	default:
		return payment.StatusProcessing
	}
}

func failureMessage(charge *omise.Charge) string {
	if charge.FailureMessage != nil {
		return *charge.FailureMessage
	}
	if charge.FailureCode != nil {
		return *charge.FailureCode
	}
	return "unknown failure"
}
