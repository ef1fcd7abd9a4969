// Package portfolio tracks the cash and share holdings of a simulated account.
package portfolio

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidTransaction is wrapped by every rejected trade.
var ErrInvalidTransaction = errors.New("invalid transaction")

// TransactionError carries the attempted trade and the ledger state it was
// rejected against.
type TransactionError struct {
	Quantity int
	Price    float64
	Cash     float64
	Shares   int
	Reason   string
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%v: %s (quantity=%d price=%.4f cash=%.2f shares=%d)",
		ErrInvalidTransaction, e.Reason, e.Quantity, e.Price, e.Cash, e.Shares)
}

func (e *TransactionError) Unwrap() error {
	return ErrInvalidTransaction
}

// Ledger is the cash and share position of a single simulation run.
//
// Trade quantities are signed: positive buys, negative sells. Sells are
// clipped to the shares held so holdings never go negative, and a buy that
// would overdraw cash is rejected without touching the ledger.
type Ledger struct {
	cash   decimal.Decimal
	shares int
}

// New returns a ledger holding initialCash and no shares.
func New(initialCash float64) (*Ledger, error) {
	if !positive(initialCash) {
		return nil, fmt.Errorf("initial cash must be positive and finite, got %v", initialCash)
	}
	return &Ledger{cash: decimal.NewFromFloat(initialCash)}, nil
}

// ApplyTrade executes quantity shares at price and returns the quantity that
// was actually filled, which differs from quantity only when a sell is clipped.
func (l *Ledger) ApplyTrade(quantity int, price float64) (int, error) {
	if quantity == 0 {
		return 0, nil
	}
	if !positive(price) {
		return 0, l.reject(quantity, price, "price must be positive")
	}

	filled := quantity
	if filled < 0 && -filled > l.shares {
		filled = -l.shares
	}

	// cash decreases on buys and increases on sells
	amount := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(filled)))
	cash := l.cash.Sub(amount)
	if cash.IsNegative() {
		return 0, l.reject(quantity, price, "cash would go negative")
	}

	l.cash = cash
	l.shares += filled
	return filled, nil
}

// positive reports whether x is a finite number above zero.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func (l *Ledger) reject(quantity int, price float64, reason string) error {
	return &TransactionError{
		Quantity: quantity,
		Price:    price,
		Cash:     l.Cash(),
		Shares:   l.shares,
		Reason:   reason,
	}
}

// NetWorth is the cash balance. Share holdings are not marked to market.
func (l *Ledger) NetWorth() float64 {
	return l.Cash()
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 {
	return l.cash.InexactFloat64()
}

// Shares returns the number of shares held.
func (l *Ledger) Shares() int {
	return l.shares
}

// Value is the liquidation value of the ledger at price.
func (l *Ledger) Value(price float64) float64 {
	return l.cash.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(l.shares)))).InexactFloat64()
}

// Snapshot is a point-in-time copy of a ledger.
type Snapshot struct {
	Cash   float64
	Shares int
}

// Snapshot returns the current state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{Cash: l.Cash(), Shares: l.shares}
}
