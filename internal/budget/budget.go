// Package budget classifies a user's total spend against their configured
// limit. The three bands and their boundaries are the business rule the
// rest of the system hangs off, so the comparisons are exact decimal math.
package budget

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// Status is the budget band a total falls in.
type Status int

const (
	// StatusUnder means the total is strictly below 90% of the limit.
	StatusUnder Status = iota
	// StatusNear means the total is at or above 90% of the limit but
	// still below it. The 90% boundary itself is Near, not Under.
	StatusNear
	// StatusOver means the total has reached or exceeded the limit.
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusNear:
		return "NEAR LIMIT"
	case StatusOver:
		return "OVER BUDGET"
	default:
		return "UNDER BUDGET"
	}
}

// Message returns the advisory line shown after every check.
func (s Status) Message() string {
	switch s {
	case StatusNear:
		return "UNDER BUDGET Note: You have reached 90% of your current budget."
	case StatusOver:
		return "OVER BUDGET: You have now exceeded your current budget."
	default:
		return "UNDER BUDGET: Your total transactions are less than 90% of your Budget Amount."
	}
}

var ninetyPercent = decimal.RequireFromString("0.9")

// Classify places a total spend into its band relative to limit.
// total < 0.9*limit is Under; 0.9*limit <= total < limit is Near;
// total >= limit is Over.
func Classify(total, limit decimal.Decimal) Status {
	threshold := limit.Mul(ninetyPercent)
	switch {
	case total.LessThan(threshold):
		return StatusUnder
	case total.LessThan(limit):
		return StatusNear
	default:
		return StatusOver
	}
}

// Summary is the result of checking a total against a limit, carrying
// everything the shell or a report footer needs to print.
type Summary struct {
	Total  decimal.Decimal
	Limit  decimal.Decimal
	Status Status
}

// Evaluate builds the summary for a total and limit.
func Evaluate(total, limit decimal.Decimal) Summary {
	return Summary{Total: total, Limit: limit, Status: Classify(total, limit)}
}

// Lines returns the block printed after mutations and under reports: the
// running total, the configured limit, and the band message.
func (s Summary) Lines() []string {
	return []string{
		"All your expenses currently total " + core.FormatCurrency(s.Total),
		"Your budget is currently set to " + core.FormatCurrency(s.Limit),
		"",
		s.Status.Message(),
	}
}

func (s Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}
