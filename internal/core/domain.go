package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of the date input (HTML date picker).
const DateLayout = "2006-01-02"

const (
	Groceries     Category = "groceries"
	Gas           Category = "gas"
	Insurance     Category = "insurance"
	Utilities     Category = "utilities"
	Restaurants   Category = "restaurants"
	Entertainment Category = "entertainment"
	Misc          Category = "misc"
)

type (
	Category string

	Date struct {
		time.Time
	}

	// Expense is a validated record accepted into a store. Values are
	// never mutated once stored.
	Expense struct {
		Date        Date
		Description string
		Category    Category
		Amount      decimal.Decimal
		Recurring   bool
	}

	// CategoryOption pairs a category value with the label shown in the selector.
	CategoryOption struct {
		Value Category
		Label string
	}
)

var categoryOptions = []CategoryOption{
	{Groceries, "Groceries"},
	{Gas, "Gas"},
	{Insurance, "Insurance"},
	{Utilities, "Utilities"},
	{Restaurants, "Restaurants"},
	{Entertainment, "Entertainment"},
	{Misc, "Misc"},
}

// Categories returns the closed set of categories in selector order.
func Categories() []CategoryOption {
	return append([]CategoryOption(nil), categoryOptions...)
}

// Known reports whether c belongs to the closed category set.
func (c Category) Known() bool {
	for _, o := range categoryOptions {
		if o.Value == c {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty returns true if the date is zero
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// ISO returns the date in the input wire format.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
