package report

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// memStore is an in-memory Store for aggregator tests.
type memStore struct {
	entries map[int64][]core.Entry // keyed by user
	catIDs  map[int64]int64        // tranID -> catID
	err     error
}

func (m *memStore) sorted(userID int64, keep func(core.Entry) bool) []core.Entry {
	var out []core.Entry
	for _, e := range m.entries[userID] {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].TranID < out[j].TranID
	})
	return out
}

func (m *memStore) EntriesForUser(_ context.Context, userID int64) ([]core.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(userID, func(core.Entry) bool { return true }), nil
}

func (m *memStore) EntriesByCategory(_ context.Context, userID, catID int64) ([]core.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(userID, func(e core.Entry) bool { return m.catIDs[e.TranID] == catID }), nil
}

func (m *memStore) EntriesBetweenDates(_ context.Context, userID int64, first, second string) ([]core.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(userID, func(e core.Entry) bool { return e.Date >= first && e.Date <= second }), nil
}

func (m *memStore) EntriesBetweenTimes(_ context.Context, userID int64, date, first, second string) ([]core.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(userID, func(e core.Entry) bool {
		return e.Date == date && e.Time >= first && e.Time <= second
	}), nil
}

func (m *memStore) EntriesAtTime(_ context.Context, userID int64, hm string) ([]core.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(userID, func(e core.Entry) bool { return e.Time == hm }), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	d, err := time.Parse(core.DateISO, s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixtureStore() *memStore {
	return &memStore{
		entries: map[int64][]core.Entry{
			1001: {
				{TranID: 1002, Date: "2024-01-03", Time: "18:45", Category: "Food", Description: "Dinner", Amount: dec("42.10")},
				{TranID: 1000, Date: "2024-01-01", Time: "10:00", Category: "Food", Description: "Lunch", Amount: dec("50.00")},
				{TranID: 1001, Date: "2024-01-01", Time: "08:15", Category: "Travel", Description: "Bus fare", Amount: dec("10.00")},
			},
		},
		catIDs: map[int64]int64{1000: 1000, 1002: 1000, 1001: 2000},
	}
}

func TestAllExpensesSortedAscending(t *testing.T) {
	agg := NewAggregator(fixtureStore())
	rep, err := agg.AllExpenses(context.Background(), 1001)
	require.NoError(t, err)
	require.False(t, rep.Empty())

	assert.Equal(t, []int64{1001, 1000, 1002}, rep.TranIDs())
	// No aggregate total on the all-expenses report.
	assert.Empty(t, rep.TotalLabel)

	out := rep.Render()
	assert.Contains(t, out, "01-01-2024")
	assert.Contains(t, out, "$42.10")
	assert.NotContains(t, out, "TranID")
}

func TestByCategoryFiltersAndTotals(t *testing.T) {
	agg := NewAggregator(fixtureStore())
	rep, err := agg.ByCategory(context.Background(), 1001, 1000)
	require.NoError(t, err)

	require.Len(t, rep.Entries, 2)
	assert.Equal(t, "92.10", rep.Total.StringFixed(2))
	assert.Contains(t, rep.Render(), "Your Expenses under this category total: $92.10")
	for _, e := range rep.Entries {
		assert.Equal(t, "Food", e.Category)
	}
}

func TestByDateRangeSingleDay(t *testing.T) {
	agg := NewAggregator(fixtureStore())
	rep, err := agg.ByDateRange(context.Background(), 1001, date("2024-01-01"), date("2024-01-01"))
	require.NoError(t, err)

	assert.Equal(t, []int64{1001, 1000}, rep.TranIDs())
	assert.Equal(t, "60.00", rep.Total.StringFixed(2))
	assert.Contains(t, rep.Render(), "between these dates total: $60.00")
}

func TestByTimeRange(t *testing.T) {
	agg := NewAggregator(fixtureStore())
	rep, err := agg.ByTimeRange(context.Background(), 1001, date("2024-01-01"), "08:00", "12:00")
	require.NoError(t, err)

	assert.Equal(t, []int64{1001, 1000}, rep.TranIDs())
	assert.Equal(t, "60.00", rep.Total.StringFixed(2))
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	agg := NewAggregator(fixtureStore())
	rep, err := agg.ByCategory(context.Background(), 1001, 9999)
	require.NoError(t, err)
	assert.True(t, rep.Empty())
	assert.Equal(t, "", rep.Render())
	assert.True(t, rep.Total.IsZero())
}

func TestStoreFailureIsAnError(t *testing.T) {
	agg := NewAggregator(&memStore{err: errors.New("store unreachable")})
	_, err := agg.AllExpenses(context.Background(), 1001)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unreachable")
}

func TestSearchVariantsCarryIDs(t *testing.T) {
	agg := NewAggregator(fixtureStore())
	rep, err := agg.SearchByDate(context.Background(), 1001, date("2024-01-01"))
	require.NoError(t, err)

	out := rep.Render()
	assert.Contains(t, out, "TranID")
	assert.Contains(t, out, "1000")
	// Simple style: no border rails.
	assert.False(t, strings.Contains(out, "+--"))

	byTime, err := agg.SearchByTime(context.Background(), 1001, "18:45")
	require.NoError(t, err)
	assert.Equal(t, []int64{1002}, byTime.TranIDs())
}

func TestCorruptDateAbortsReport(t *testing.T) {
	store := fixtureStore()
	store.entries[1001][0].Date = "03-01-2024" // display-formatted junk in the store
	agg := NewAggregator(store)

	_, err := agg.AllExpenses(context.Background(), 1001)
	require.Error(t, err)
	var corrupt *CorruptRecordError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, int64(1002), corrupt.TranID)
}

func TestTotalSumsExactly(t *testing.T) {
	store := &memStore{
		entries: map[int64][]core.Entry{
			1001: {
				{TranID: 1000, Date: "2024-01-01", Time: "10:00", Category: "Misc", Description: "a", Amount: dec("0.10")},
				{TranID: 1001, Date: "2024-01-01", Time: "11:00", Category: "Misc", Description: "b", Amount: dec("0.20")},
				{TranID: 1002, Date: "2024-01-01", Time: "12:00", Category: "Misc", Description: "c", Amount: dec("0.30")},
			},
		},
		catIDs: map[int64]int64{1000: 1000, 1001: 1000, 1002: 1000},
	}
	agg := NewAggregator(store)
	rep, err := agg.ByCategory(context.Background(), 1001, 1000)
	require.NoError(t, err)
	assert.True(t, rep.Total.Equal(dec("0.60")))
}
