package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Reference layouts for the two date shapes the system deals in. Dates are
// persisted in ISO form and shown to the user in day-first form.
const (
	DateISO     = "2006-01-02"
	DateDisplay = "02-01-2006"
	ClockLayout = "15:04"
)

// ID allocation floors. User and transaction IDs are assigned by the store
// as MAX+1; category IDs are chosen by the user within [CategoryIDMin,
// CategoryIDMax].
const (
	FirstUserID        int64 = 1001
	FirstTransactionID int64 = 1000
	CategoryIDMin      int64 = 1000
	CategoryIDMax      int64 = 9999
)

type (
	// User is an account holder. PasswordHash is a bcrypt hash; the clear
	// text password never leaves the login prompt.
	User struct {
		ID           int64
		PasswordHash string
		FirstName    string
		LastName     string
		Budget       decimal.Decimal
	}

	// Category is a user-defined expense bucket.
	Category struct {
		ID   int64
		Name string
	}

	// Transaction is a single dated expense as stored. Date is ISO
	// (yyyy-mm-dd) and Time is 24h hh:mm.
	Transaction struct {
		ID          int64
		Date        string
		Time        string
		CategoryID  int64
		Description string
		Amount      decimal.Decimal
	}

	// Entry is a transaction joined with its category name, the shape
	// search listings and reports work on.
	Entry struct {
		TranID      int64
		Date        string
		Time        string
		Category    string
		Description string
		Amount      decimal.Decimal
	}
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrCategoryInUse         = errors.New("category has transactions associated with it")
	ErrDuplicateCategoryID   = errors.New("category ID already in use")
	ErrDuplicateCategoryName = errors.New("category name already in use")
	ErrDuplicateUser         = errors.New("user ID already in use")
)

// DisplayDate rewrites an ISO date into dd-mm-yyyy. A date that does not
// parse indicates corrupt stored data and is reported, never coerced.
func DisplayDate(iso string) (string, error) {
	d, err := time.Parse(DateISO, iso)
	if err != nil {
		return "", err
	}
	return d.Format(DateDisplay), nil
}

// ISODate rewrites a dd-mm-yyyy date into the ISO form used in queries.
func ISODate(display string) (string, error) {
	d, err := time.Parse(DateDisplay, display)
	if err != nil {
		return "", err
	}
	return d.Format(DateISO), nil
}
