package journal

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount in currency, e.g. "$10,000.00" for USD.
// Unknown currency codes fall back to USD.
func FormatMoney(amount float64, currency string) string {
	if currency == "" || money.GetCurrency(currency) == nil {
		currency = money.USD
	}
	cur := money.GetCurrency(currency)

	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currency).Display()
}
