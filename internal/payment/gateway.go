// Package payment defines the charge capability used by the registration
// flow. The production seam is the Gateway interface; the bundled
// implementation is a deterministic simulator that validates card details
// and always approves well-formed charges.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCard   = errors.New("invalid card number")
	ErrInvalidHolder = errors.New("card holder name is required")
	ErrInvalidExpiry = errors.New("invalid expiry date, expected MM/YY")
	ErrExpiredCard   = errors.New("card is expired")
	ErrInvalidCVV    = errors.New("invalid cvv")
	ErrInvalidAmount = errors.New("charge amount must be positive")
)

type ChargeRequest struct {
	Amount      decimal.Decimal
	Description string
	CardNumber  string
	CardHolder  string
	Expiry      string
	CVV         string
}

type ChargeResult struct {
	TransactionID string
	Amount        decimal.Decimal
	ChargedAt     time.Time
}

// Gateway charges an amount against a card, returning a transaction
// reference on success or a decline error.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// SimulatedGateway approves every structurally valid charge. It exists so
// the registration flow exercises the same seam a real processor would sit
// behind.
type SimulatedGateway struct {
	now func() time.Time
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{now: time.Now}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if len(number) < 13 || len(number) > 19 || !luhnValid(number) {
		return nil, ErrInvalidCard
	}
	if strings.TrimSpace(req.CardHolder) == "" {
		return nil, ErrInvalidHolder
	}
	if err := g.checkExpiry(req.Expiry); err != nil {
		return nil, err
	}
	if len(req.CVV) < 3 || len(req.CVV) > 4 || !digitsOnly(req.CVV) {
		return nil, ErrInvalidCVV
	}

	return &ChargeResult{
		TransactionID: fmt.Sprintf("sim-%s", uuid.New().String()),
		Amount:        req.Amount,
		ChargedAt:     g.now(),
	}, nil
}

func (g *SimulatedGateway) checkExpiry(expiry string) error {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return ErrInvalidExpiry
	}
	month, err := time.Parse("01", parts[0])
	if err != nil {
		return ErrInvalidExpiry
	}
	year, err := time.Parse("06", parts[1])
	if err != nil {
		return ErrInvalidExpiry
	}

	// A card is valid through the last day of its expiry month.
	expiresAt := time.Date(year.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !g.now().UTC().Before(expiresAt) {
		return ErrExpiredCard
	}
	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func luhnValid(number string) bool {
	if !digitsOnly(number) {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
