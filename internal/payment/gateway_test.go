package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGateway(now time.Time) *SimulatedGateway {
	return &SimulatedGateway{now: func() time.Time { return now }}
}

func validCharge() ChargeRequest {
	return ChargeRequest{
		Amount:      decimal.NewFromInt(150),
		Description: "Tech Summit registration",
		CardNumber:  "4242 4242 4242 4242",
		CardHolder:  "Priya Sharma",
		Expiry:      "12/28",
		CVV:         "123",
	}
}

func TestChargeApprovesValidCard(t *testing.T) {
	gateway := fixedGateway(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))

	result, err := gateway.Charge(context.Background(), validCharge())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.TransactionID, "sim-"))
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), result.ChargedAt)
}

func TestChargeRejectsLuhnFailure(t *testing.T) {
	gateway := NewSimulatedGateway()

	req := validCharge()
	req.CardNumber = "4242424242424241"

	_, err := gateway.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestChargeRejectsNonNumericCard(t *testing.T) {
	gateway := NewSimulatedGateway()

	req := validCharge()
	req.CardNumber = "4242-4242-4242-4242"

	_, err := gateway.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestChargeRejectsExpiredCard(t *testing.T) {
	gateway := fixedGateway(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))

	req := validCharge()
	req.Expiry = "02/26"

	_, err := gateway.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrExpiredCard)
}

func TestChargeAcceptsCardInExpiryMonth(t *testing.T) {
	gateway := fixedGateway(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC))

	req := validCharge()
	req.Expiry = "03/26"

	_, err := gateway.Charge(context.Background(), req)
	assert.NoError(t, err)
}

func TestChargeRejectsMalformedExpiry(t *testing.T) {
	gateway := NewSimulatedGateway()

	for _, expiry := range []string{"1228", "2028/12", "13/28", "1/28", ""} {
		req := validCharge()
		req.Expiry = expiry

		_, err := gateway.Charge(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidExpiry, "expiry %q", expiry)
	}
}

func TestChargeRejectsBadCVV(t *testing.T) {
	gateway := NewSimulatedGateway()

	for _, cvv := range []string{"", "12", "12345", "12a"} {
		req := validCharge()
		req.CVV = cvv

		_, err := gateway.Charge(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidCVV, "cvv %q", cvv)
	}
}

func TestChargeRejectsMissingHolder(t *testing.T) {
	gateway := NewSimulatedGateway()

	req := validCharge()
	req.CardHolder = "   "

	_, err := gateway.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidHolder)
}

func TestChargeRejectsNonPositiveAmount(t *testing.T) {
	gateway := NewSimulatedGateway()

	req := validCharge()
	req.Amount = decimal.Zero

	_, err := gateway.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestChargeHonorsCancelledContext(t *testing.T) {
	gateway := NewSimulatedGateway()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gateway.Charge(ctx, validCharge())
	assert.ErrorIs(t, err, context.Canceled)
}
