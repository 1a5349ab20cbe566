package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"quickcourt/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway talks to Stripe's PaymentIntents API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Mode() string { return "live" }

func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeError("create payment intent", err)
	}
	return toIntent(pi), nil
}

// ConfirmIntent returns the intent as-is once the client has already paid
// through Stripe.js, and asks Stripe to confirm it otherwise.
func (g *StripeGateway) ConfirmIntent(ctx context.Context, id string) (*Intent, error) {
	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx
	pi, err := g.api.PaymentIntents.Get(id, getParams)
	if err != nil {
		return nil, wrapStripeError("fetch payment intent", err)
	}
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return toIntent(pi), nil
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{}
	confirmParams.Context = ctx
	pi, err = g.api.PaymentIntents.Confirm(id, confirmParams)
	if err != nil {
		return nil, wrapStripeError("confirm payment intent", err)
	}
	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}

func wrapStripeError(op string, err error) error {
	msg := err.Error()
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		msg = stripeErr.Msg
	}
	utils.GetLogger().Warn("stripe call failed", zap.String("op", op), zap.String("message", msg))
	return fmt.Errorf("%w: %s: %s", ErrProvider, op, msg)
}
