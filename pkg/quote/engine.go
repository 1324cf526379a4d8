// Package quote computes indicative medical insurance quotes from a birthday.
// Nothing in this package performs I/O once a PricingTable has been built.
package quote

import (
	"time"

	"quote-wizard/pkg/models"
)

// Engine quotes against a fixed pricing table and a "today" reference.
type Engine struct {
	table    *PricingTable
	now      func() time.Time
	location *time.Location
}

type Option func(*Engine)

// WithClock replaces the wall clock used to determine today.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLocation sets the location whose calendar date counts as today.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// NewEngine creates a quote engine
func NewEngine(table *PricingTable, opts ...Option) *Engine {
	e := &Engine{
		table:    table,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateQuote quotes a birthday as of the engine's current date.
func (e *Engine) CalculateQuote(birthday string) models.QuoteResult {
	return e.QuoteAt(birthday, e.now().In(e.location))
}

// QuoteAt quotes a birthday as of today. Out-of-range ages, missing table
// entries and unparseable birthdays all produce an ineligible result.
func (e *Engine) QuoteAt(birthday string, today time.Time) models.QuoteResult {
	age, err := CalculateAge(birthday, today)
	if err != nil {
		return models.QuoteResult{}
	}

	ineligible := models.QuoteResult{Age: age}
	if age < 0 || age > MaxEligibleAge {
		return ineligible
	}

	premium, ok := e.table.Lookup(age)
	if !ok {
		return ineligible
	}
	benefits, ok := ResolveBenefits(age)
	if !ok {
		return ineligible
	}

	return models.QuoteResult{
		Age:      age,
		Premium:  premium,
		Eligible: true,
		Benefits: &benefits,
	}
}
