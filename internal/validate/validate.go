// Package validate checks the raw field values collected by the shell and
// turns them into typed domain values. Each validator returns the typed
// value or a *FieldError; the shell re-prompts on error, so these errors
// never travel further up.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// FieldError reports why a single input field was rejected.
type FieldError struct {
	Kind   string
	Input  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

func fail(kind, input, reason string) *FieldError {
	return &FieldError{Kind: kind, Input: input, Reason: reason}
}

const (
	maxNameLen         = 15
	maxDescriptionLen  = 50
	maxCategoryNameLen = 30
	maxPasswordLen     = 20
)

// namePattern accepts letters, spaces and hyphens only.
var namePattern = regexp.MustCompile(`^[A-Za-z\s\-]+$`)

// Name validates a person's first or last name.
func Name(raw string) (string, error) {
	switch {
	case raw == "":
		return "", fail("name", raw, "cannot be blank")
	case len(raw) > maxNameLen:
		return "", fail("name", raw, fmt.Sprintf("longer than %d characters", maxNameLen))
	case !namePattern.MatchString(raw):
		return "", fail("name", raw, "only letters, spaces and hyphens are allowed")
	}
	return raw, nil
}

// Date validates a dd-mm-yyyy date and returns it parsed.
func Date(raw string) (time.Time, error) {
	d, err := time.Parse(core.DateDisplay, raw)
	if err != nil {
		return time.Time{}, fail("date", raw, "must be a real date in dd-mm-yyyy format")
	}
	return d, nil
}

// Clock validates a 24h hh:mm time and returns its canonical form.
func Clock(raw string) (string, error) {
	t, err := time.Parse(core.ClockLayout, raw)
	if err != nil {
		return "", fail("time", raw, "must be a time in hh:mm format")
	}
	return t.Format(core.ClockLayout), nil
}

// Amount validates a positive money amount in 0.00 format.
func Amount(raw string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fail("amount", raw, "must be a positive amount with exactly two decimal places")
	}
	return d, nil
}

// Description validates a transaction description.
func Description(raw string) (string, error) {
	switch {
	case raw == "":
		return "", fail("description", raw, "cannot be blank")
	case len(raw) > maxDescriptionLen:
		return "", fail("description", raw, fmt.Sprintf("longer than %d characters", maxDescriptionLen))
	}
	return raw, nil
}

// CategoryID validates a user-chosen category ID in [1000, 9999].
func CategoryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < core.CategoryIDMin || id > core.CategoryIDMax {
		return 0, fail("category ID", raw,
			fmt.Sprintf("must be a number between %d and %d", core.CategoryIDMin, core.CategoryIDMax))
	}
	return id, nil
}

// CategoryName validates a category name. Uniqueness is the store's call;
// names are compared exactly, no case folding.
func CategoryName(raw string) (string, error) {
	switch {
	case raw == "":
		return "", fail("category name", raw, "cannot be blank")
	case len(raw) > maxCategoryNameLen:
		return "", fail("category name", raw, fmt.Sprintf("longer than %d characters", maxCategoryNameLen))
	}
	return raw, nil
}

// Password validates a new password.
func Password(raw string) (string, error) {
	switch {
	case raw == "":
		return "", fail("password", raw, "cannot be blank")
	case len(raw) > maxPasswordLen:
		return "", fail("password", raw, fmt.Sprintf("longer than %d characters", maxPasswordLen))
	}
	return raw, nil
}

// invalidFilenameChars are the characters no report filename may contain.
var invalidFilenameChars = regexp.MustCompile(`["/\\:*?<>|]`)

// reservedFilenames are device names that are not usable as filenames on
// Windows, where reports may end up.
var reservedFilenames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {},
}

// Filename validates a report filename: no illegal characters, no reserved
// device names, and an extension of exactly three characters.
func Filename(raw string) (string, error) {
	if raw == "" {
		return "", fail("filename", raw, "cannot be blank")
	}
	if invalidFilenameChars.MatchString(raw) {
		return "", fail("filename", raw, "contains characters not allowed in filenames")
	}
	ext := filepath.Ext(raw)
	if ext == "" {
		return "", fail("filename", raw, "must have an extension")
	}
	if len(ext) != 4 { // dot plus three characters
		return "", fail("filename", raw, "extension must be exactly three characters (e.g. .txt, .csv)")
	}
	base := strings.ToUpper(strings.TrimSuffix(filepath.Base(raw), ext))
	if _, reserved := reservedFilenames[base]; reserved {
		return "", fail("filename", raw, "is a reserved device name")
	}
	return raw, nil
}
