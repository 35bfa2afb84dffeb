package payment

import (
	"context"
	"fmt"
	"time"

	"gamestore/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
)

const displayLabel = "Store Purchase"

// Confirmation is the outcome of looking up a checkout session: which order
// it was opened for and whether the processor collected the payment.
type Confirmation struct {
	OrderID string
	Paid    bool
}

// StripeGateway drives Stripe Checkout: the whole cart is charged as a single
// hosted-page line item and the draft order id rides along as the session's
// client reference.
type StripeGateway struct {
	currency   string
	successURL string
	cancelURL  string
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewStripeGateway configures the Stripe API key once and returns the
// gateway. Calls are bounded by timeout and surface
// domain.ErrPaymentUnavailable on any processor failure; retry is left to the
// caller.
func NewStripeGateway(apiKey, currency, successURL, cancelURL string, timeout time.Duration, logger zerolog.Logger) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
		timeout:    timeout,
		logger:     logger,
	}
}

// CreateSession opens a checkout session for the order total and returns the
// session id the storefront client redirects with.
func (g *StripeGateway) CreateSession(ctx context.Context, orderID string, total decimal.Decimal) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		ClientReferenceID: stripe.String(orderID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(MinorUnits(total)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(displayLabel),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		g.logger.Error().Err(err).Str("order_id", orderID).Msg("payment: create checkout session")
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentUnavailable, err)
	}
	return sess.ID, nil
}

// Confirm fetches a checkout session and reports whether it was paid and
// which order it belongs to.
func (g *StripeGateway) Confirm(ctx context.Context, sessionID string) (Confirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		g.logger.Error().Err(err).Str("session_id", sessionID).Msg("payment: retrieve checkout session")
		return Confirmation{}, fmt.Errorf("%w: %v", domain.ErrPaymentUnavailable, err)
	}
	return Confirmation{
		OrderID: sess.ClientReferenceID,
		Paid:    sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}

// MinorUnits converts a two-decimal currency amount into the processor's
// integer minor-unit representation (dollars to cents), truncating.
func MinorUnits(total decimal.Decimal) int64 {
	return total.Shift(2).IntPart()
}
