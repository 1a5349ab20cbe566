package payment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// MockIDPrefix marks intents fabricated by MockGateway.
const MockIDPrefix = "pi_mock_"

// MockGateway fabricates intents so the whole booking flow runs without a
// provider. Any confirmation of a mock id succeeds.
type MockGateway struct {
	seq atomic.Int64
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Mode() string { return "mock" }

func (g *MockGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrProvider)
	}
	id := fmt.Sprintf("%s%d", MockIDPrefix, g.seq.Add(1))
	return &Intent{
		ID:           id,
		ClientSecret: id + "_secret_mock",
		Status:       StatusRequiresPaymentMethod,
		Amount:       int64(math.Round(amount * 100)),
		Currency:     strings.ToLower(currency),
	}, nil
}

// ConfirmIntent succeeds for every mock id; foreign ids stay unpaid.
func (g *MockGateway) ConfirmIntent(ctx context.Context, id string) (*Intent, error) {
	if strings.HasPrefix(id, MockIDPrefix) {
		return &Intent{ID: id, Status: StatusSucceeded}, nil
	}
	return &Intent{ID: id, Status: StatusRequiresPaymentMethod}, nil
}
