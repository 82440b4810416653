package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Authorization is the gateway's answer to an authorize call: the reference
// it assigned to the hold and the client secret the browser needs to
// complete it.
type Authorization struct {
	IntentID     string
	ClientSecret string
}

// Gateway wraps the external payment-authorization service. It holds no
// local state; the gateway's own confirmation flow is the source of truth
// for whether a charge ultimately succeeded.
type Gateway interface {
	// Authorize places a hold for the amount (minor currency units) with the
	// given correlation metadata. Errors come back as *GatewayError and are
	// never retried here; retrying an authorization can create duplicate
	// holds.
	Authorize(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Authorization, error)
}

// GatewayError wraps a gateway failure, passing the gateway's own message
// through verbatim so callers can tell "gateway rejected" from an internal
// fault.
type GatewayError struct {
	Code    string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment gateway error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsGatewayError reports whether err is (or wraps) a GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// StripeGateway implements Gateway on Stripe PaymentIntents.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway creates a Stripe-backed Gateway. The package-level Stripe
// key is set once at startup.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{logger: logger}
}

// Authorize creates a PaymentIntent for the amount and returns its client
// secret.
func (g *StripeGateway) Authorize(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Authorization, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Warn("stripe rejected authorization",
				zap.String("code", string(stripeErr.Code)),
				zap.Int64("amount", amount))
			return nil, &GatewayError{Code: string(stripeErr.Code), Message: stripeErr.Msg, Err: err}
		}
		return nil, &GatewayError{Message: err.Error(), Err: err}
	}

	g.logger.Info("payment authorized",
		zap.String("intent", intent.ID),
		zap.Int64("amount", amount),
		zap.String("currency", currency))

	return &Authorization{IntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
