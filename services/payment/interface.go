package payment

import (
	"context"
	"errors"
	"strings"

	"quickcourt/config"
	"quickcourt/utils"

	"go.uber.org/zap"
)

// Intent statuses the booking flow cares about.
const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusSucceeded             = "succeeded"
)

// ErrProvider wraps failures reported by the payment provider.
var ErrProvider = errors.New("payment provider error")

// Intent is a provider-neutral view of a payment intent.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Succeeded reports whether the provider captured the payment.
func (i *Intent) Succeeded() bool {
	return i != nil && i.Status == StatusSucceeded
}

// Gateway creates and confirms payment intents. Amounts are in major units
// (rupees); implementations convert as their provider requires.
type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Intent, error)
	ConfirmIntent(ctx context.Context, id string) (*Intent, error)
	Mode() string
}

// NewGateway picks the payment backend once, at startup.
func NewGateway(cfg config.Config) Gateway {
	if cfg.LivePayments() {
		utils.GetLogger().Info("payments: using live Stripe backend")
		return NewStripeGateway(cfg.StripeSecretKey)
	}
	utils.GetLogger().Info("payments: using mock backend", zap.String("paymentMode", strings.ToLower(cfg.PaymentMode)))
	return NewMockGateway()
}
