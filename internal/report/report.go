// Package report turns a user's stored transactions into normalized,
// rendered tabular reports with exact totals. Every operation is a pure
// function of the filter criteria and the rows the store returns; the shell
// owns all prompting and range validation before anything lands here.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djr812/ExpenseTracker/internal/core"
	"github.com/djr812/ExpenseTracker/internal/render"
)

// Store is the read side of the persistence gateway the aggregator needs.
// Implementations must return rows ordered by date, time, then ID, and must
// signal store failure with an error, never with an empty slice.
type Store interface {
	EntriesForUser(ctx context.Context, userID int64) ([]core.Entry, error)
	EntriesByCategory(ctx context.Context, userID, catID int64) ([]core.Entry, error)
	EntriesBetweenDates(ctx context.Context, userID int64, firstISO, secondISO string) ([]core.Entry, error)
	EntriesBetweenTimes(ctx context.Context, userID int64, dateISO, firstHM, secondHM string) ([]core.Entry, error)
	EntriesAtTime(ctx context.Context, userID int64, hm string) ([]core.Entry, error)
}

// Column headers for the two report families.
var (
	reportHeaders = []string{"Date", "Time", "Category", "Description", "Amount"}
	reportAligns  = []render.Align{render.AlignRight, render.AlignRight, render.AlignCenter, render.AlignLeft, render.AlignRight}

	searchHeaders = []string{"TranID", "Date", "Time", "Category", "Description", "Amount"}
	searchAligns  = []render.Align{render.AlignRight, render.AlignRight, render.AlignRight, render.AlignCenter, render.AlignLeft, render.AlignRight}
)

// Report is a normalized, renderable result set. An empty report carries no
// rows and no total; callers print their own "nothing to report" message
// instead of rendering it.
type Report struct {
	Title      string
	Entries    []core.Entry
	Rows       [][]string
	Total      decimal.Decimal
	TotalLabel string
	withIDs    bool
	style      render.Style
}

// Empty reports whether the filtered set had no transactions. This is an
// ordinary outcome, not an error.
func (r Report) Empty() bool { return len(r.Entries) == 0 }

// TranIDs returns the IDs of the listed transactions, in display order.
// Search flows use this to bound which ID the user may pick next.
func (r Report) TranIDs() []int64 {
	ids := make([]int64, len(r.Entries))
	for i, e := range r.Entries {
		ids[i] = e.TranID
	}
	return ids
}

// Render formats the table plus, when the operation defines one, the total
// line. Rendering an empty report is a caller bug; it returns "".
func (r Report) Render() string {
	if r.Empty() {
		return ""
	}
	headers, aligns := reportHeaders, reportAligns
	if r.withIDs {
		headers, aligns = searchHeaders, searchAligns
	}
	out := render.Table(headers, r.Rows, aligns, r.style)
	if r.TotalLabel != "" {
		out += "\n\n" + r.TotalLabel + " " + core.FormatCurrency(r.Total)
	}
	return out
}

// Aggregator builds reports from a Store.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

func (a *Aggregator) build(entries []core.Entry, title, totalLabel string, withIDs bool, style render.Style) (Report, error) {
	rows, err := normalize(entries, withIDs)
	if err != nil {
		return Report{}, err
	}
	r := Report{
		Title:   title,
		Entries: entries,
		Rows:    rows,
		withIDs: withIDs,
		style:   style,
	}
	if totalLabel != "" && len(entries) > 0 {
		total := decimal.Zero
		for _, e := range entries {
			total = total.Add(e.Amount)
		}
		r.Total = total
		r.TotalLabel = totalLabel
	}
	return r, nil
}

// AllExpenses reports every transaction the user owns, date ascending. It
// carries no total; the budget check follows it instead.
func (a *Aggregator) AllExpenses(ctx context.Context, userID int64) (Report, error) {
	entries, err := a.store.EntriesForUser(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("all expenses report: %w", err)
	}
	return a.build(entries, "ALL EXPENSES REPORT", "", false, render.StylePretty)
}

// ByCategory reports the user's transactions under one category with their
// sum.
func (a *Aggregator) ByCategory(ctx context.Context, userID, catID int64) (Report, error) {
	entries, err := a.store.EntriesByCategory(ctx, userID, catID)
	if err != nil {
		return Report{}, fmt.Errorf("category report: %w", err)
	}
	return a.build(entries, "EXPENSES BY CATEGORY REPORT",
		"Your Expenses under this category total:", false, render.StylePretty)
}

// ByDateRange reports transactions between two dates inclusive. The shell
// guarantees first <= second before calling; a degenerate single-day range
// is valid and returns that day's transactions.
func (a *Aggregator) ByDateRange(ctx context.Context, userID int64, first, second time.Time) (Report, error) {
	entries, err := a.store.EntriesBetweenDates(ctx, userID,
		first.Format(core.DateISO), second.Format(core.DateISO))
	if err != nil {
		return Report{}, fmt.Errorf("date range report: %w", err)
	}
	return a.build(entries, "EXPENSES BY DATE REPORT",
		"Your Expenses between these dates total:", false, render.StylePretty)
}

// ByTimeRange reports transactions on one date between two times
// inclusive. The shell guarantees the times are ordered.
func (a *Aggregator) ByTimeRange(ctx context.Context, userID int64, date time.Time, firstHM, secondHM string) (Report, error) {
	entries, err := a.store.EntriesBetweenTimes(ctx, userID,
		date.Format(core.DateISO), firstHM, secondHM)
	if err != nil {
		return Report{}, fmt.Errorf("time range report: %w", err)
	}
	return a.build(entries, "EXPENSES BY TIME REPORT",
		"Your Expenses between these times total:", false, render.StylePretty)
}

// SearchByCategory lists a category's transactions with their IDs so the
// user can pick one to update or delete.
func (a *Aggregator) SearchByCategory(ctx context.Context, userID, catID int64) (Report, error) {
	entries, err := a.store.EntriesByCategory(ctx, userID, catID)
	if err != nil {
		return Report{}, fmt.Errorf("category search: %w", err)
	}
	return a.build(entries, "", "", true, render.StyleSimple)
}

// SearchByDate lists one day's transactions with their IDs.
func (a *Aggregator) SearchByDate(ctx context.Context, userID int64, date time.Time) (Report, error) {
	iso := date.Format(core.DateISO)
	entries, err := a.store.EntriesBetweenDates(ctx, userID, iso, iso)
	if err != nil {
		return Report{}, fmt.Errorf("date search: %w", err)
	}
	return a.build(entries, "", "", true, render.StyleSimple)
}

// SearchByTime lists transactions at an exact time of day, any date, with
// their IDs.
func (a *Aggregator) SearchByTime(ctx context.Context, userID int64, hm string) (Report, error) {
	entries, err := a.store.EntriesAtTime(ctx, userID, hm)
	if err != nil {
		return Report{}, fmt.Errorf("time search: %w", err)
	}
	return a.build(entries, "", "", true, render.StyleSimple)
}
