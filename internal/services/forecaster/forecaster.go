// Package forecaster extends a price window with three synthetic rows using
// damped continuation from the second-highest observed price.
package forecaster

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

// Horizon number of synthetic rows appended to a window.
const Horizon = 3

var (
	two  = decimal.NewFromInt(2)
	four = decimal.NewFromInt(4)
)

// topTwo running state of the two highest prices seen so far. Both slots start at zero
// and only a strictly greater price moves them, so the first of equal prices wins.
type topTwo struct {
	first  decimal.Decimal
	second decimal.Decimal
}

func (t *topTwo) observe(price decimal.Decimal) {
	if price.GreaterThan(t.first) {
		t.second = t.first
		t.first = price
		return
	}
	if price.GreaterThan(t.second) {
		t.second = price
	}
}

func scanTopTwo(window []domain.Row) topTwo {
	var t topTwo
	for _, row := range window {
		t.observe(row.Price)
	}
	return t
}

// Forecaster appends forecast rows to sampled windows.
type Forecaster struct{}

// New creates a Forecaster.
func New() *Forecaster {
	return &Forecaster{}
}

// Extend returns window followed by three synthetic rows dated one, two and three
// days after the last row:
//
//	n+1 = second-highest price in the window
//	n+2 = n+1 - (last - n+1) / 2
//	n+3 = n+2 - (n+1 - n+2) / 4
//
// Prices are kept exact; rounding to two places happens on serialization.
// The window itself is left untouched.
func (f *Forecaster) Extend(window []domain.Row) ([]domain.Row, error) {
	if len(window) == 0 {
		return nil, domain.ErrEmptyWindow
	}

	top := scanTopTwo(window)
	last := window[len(window)-1]

	p1 := top.second
	p2 := p1.Sub(last.Price.Sub(p1).Div(two))
	p3 := p2.Sub(p1.Sub(p2).Div(four))

	extended := make([]domain.Row, 0, len(window)+Horizon)
	extended = append(extended, window...)
	extended = append(extended,
		last.DaysAfter(1, p1),
		last.DaysAfter(2, p2),
		last.DaysAfter(3, p3),
	)

	return extended, nil
}
