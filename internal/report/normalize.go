package report

import (
	"fmt"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// CorruptRecordError reports a stored value that failed normalization. It
// points at bad data in the store, not at anything the user typed, so it is
// fatal to the operation that hit it.
type CorruptRecordError struct {
	TranID int64
	Field  string
	Value  string
	Err    error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("transaction %d has a corrupt %s %q: %v", e.TranID, e.Field, e.Value, e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }

// normalize turns stored entries into display cells: ISO dates become
// dd-mm-yyyy and amounts become currency strings. withIDs prepends the
// transaction ID column used by search listings.
func normalize(entries []core.Entry, withIDs bool) ([][]string, error) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		date, err := core.DisplayDate(e.Date)
		if err != nil {
			return nil, &CorruptRecordError{TranID: e.TranID, Field: "date", Value: e.Date, Err: err}
		}
		row := []string{date, e.Time, e.Category, e.Description, core.FormatCurrency(e.Amount)}
		if withIDs {
			row = append([]string{fmt.Sprintf("%d", e.TranID)}, row...)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
