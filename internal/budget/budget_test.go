package budget

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		total string
		limit string
		want  Status
	}{
		{"well under", "320.00", "500.00", StatusUnder},
		{"just under the 90% boundary", "449.99", "500.00", StatusUnder},
		{"exactly 90% is near, not under", "450.00", "500.00", StatusNear},
		{"between 90% and the limit", "460.00", "500.00", StatusNear},
		{"just below the limit", "499.99", "500.00", StatusNear},
		{"exactly at the limit is over", "500.00", "500.00", StatusOver},
		{"over the limit", "620.50", "500.00", StatusOver},
		{"zero spend", "0.00", "500.00", StatusUnder},
		// A limit whose 90% mark has three decimal places must still
		// compare exactly: 0.9 * 333.33 = 299.997.
		{"three-decimal boundary below", "299.99", "333.33", StatusUnder},
		{"three-decimal boundary above", "300.00", "333.33", StatusNear},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(dec(tc.total), dec(tc.limit))
			if got != tc.want {
				t.Fatalf("Classify(%s, %s) = %v, want %v", tc.total, tc.limit, got, tc.want)
			}
		})
	}
}

func TestSummaryLines(t *testing.T) {
	s := Evaluate(dec("460.00"), dec("500.00"))
	out := s.String()
	for _, want := range []string{
		"All your expenses currently total $460.00",
		"Your budget is currently set to $500.00",
		"reached 90%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusUnder.String() != "UNDER BUDGET" || StatusNear.String() != "NEAR LIMIT" || StatusOver.String() != "OVER BUDGET" {
		t.Fatal("unexpected status names")
	}
}
