// Package domain defines core data structures used throughout the forecasting tool.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the DD-MM-YYYY layout used by price files.
const DateLayout = "02-01-2006"

// PricePlaces is the number of fractional digits a price is serialized with.
const PricePlaces = 2

// Row single daily price observation of a stock.
type Row struct {
	// Name ticker or other stock identifier.
	Name string
	// Date calendar day of the observation, UTC midnight.
	Date time.Time
	// Price observed price.
	Price decimal.Decimal
}

// NewRow constructs a Row, truncating date to the calendar day.
func NewRow(name string, date time.Time, price decimal.Decimal) Row {
	y, m, d := date.Date()
	return Row{
		Name:  name,
		Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Price: price,
	}
}

// DateString returns the date in DD-MM-YYYY form.
func (r Row) DateString() string {
	return r.Date.Format(DateLayout)
}

// PriceString returns the price rounded to two fractional digits.
func (r Row) PriceString() string {
	return r.Price.StringFixed(PricePlaces)
}

// DaysAfter returns a copy of the row moved n calendar days forward with the given price.
func (r Row) DaysAfter(n int, price decimal.Decimal) Row {
	return Row{
		Name:  r.Name,
		Date:  r.Date.AddDate(0, 0, n),
		Price: price,
	}
}

// String returns the CSV-like representation.
func (r Row) String() string {
	return fmt.Sprintf("%s,%s,%s", r.Name, r.DateString(), r.PriceString())
}

// ParseDate parses a DD-MM-YYYY date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
