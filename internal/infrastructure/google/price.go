package google

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Micros converts a decimal price string to integer micros (price times one
// million) using exact decimal arithmetic. Binary floating point is never
// involved: 19.99 must become 19990000, not 19989999. Prices with more than
// six decimal places are rounded half away from zero.
func Micros(price string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", price, err)
	}

	micros := d.Shift(6).Round(0)
	if !micros.BigInt().IsInt64() {
		return 0, fmt.Errorf("price %q overflows micros", price)
	}
	return micros.IntPart(), nil
}
