package storage

import (
	"context"
	"fmt"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// entrySelect is the joined row shape every listing and report reads:
// transactions owned by a user, with their category name. The ORDER BY
// makes listing order deterministic: date, then time, then ID.
const entrySelect = `
	SELECT t.tranID, t.tranDate, t.tranTime, c.catName, t.tranDescription, t.tranAmount
	FROM userTransactions ut
	INNER JOIN transactions t ON t.tranID = ut.tranID
	INNER JOIN categories c ON c.catID = t.catID
	WHERE ut.userID = ?`

const entryOrder = ` ORDER BY t.tranDate, t.tranTime, t.tranID`

// EntriesForUser returns every transaction the user owns.
func (s *Store) EntriesForUser(ctx context.Context, userID int64) ([]core.Entry, error) {
	return s.queryEntries(ctx, entrySelect+entryOrder, userID)
}

// EntriesByCategory returns the user's transactions in one category.
func (s *Store) EntriesByCategory(ctx context.Context, userID, catID int64) ([]core.Entry, error) {
	return s.queryEntries(ctx, entrySelect+` AND t.catID = ?`+entryOrder, userID, catID)
}

// EntriesBetweenDates returns the user's transactions with firstISO <=
// date <= secondISO. Callers validate the ordering of the range.
func (s *Store) EntriesBetweenDates(ctx context.Context, userID int64, firstISO, secondISO string) ([]core.Entry, error) {
	return s.queryEntries(ctx,
		entrySelect+` AND t.tranDate BETWEEN ? AND ?`+entryOrder, userID, firstISO, secondISO)
}

// EntriesBetweenTimes returns the user's transactions on one date with
// firstHM <= time <= secondHM.
func (s *Store) EntriesBetweenTimes(ctx context.Context, userID int64, dateISO, firstHM, secondHM string) ([]core.Entry, error) {
	return s.queryEntries(ctx,
		entrySelect+` AND t.tranDate = ? AND t.tranTime BETWEEN ? AND ?`+entryOrder,
		userID, dateISO, firstHM, secondHM)
}

// EntriesAtTime returns the user's transactions at an exact time of day,
// on any date.
func (s *Store) EntriesAtTime(ctx context.Context, userID int64, hm string) ([]core.Entry, error) {
	return s.queryEntries(ctx, entrySelect+` AND t.tranTime = ?`+entryOrder, userID, hm)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]core.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.Entry, error) {
	var (
		e   core.Entry
		raw string
	)
	if err := row.Scan(&e.TranID, &e.Date, &e.Time, &e.Category, &e.Description, &raw); err != nil {
		return core.Entry{}, err
	}
	amount, err := core.ParseStoredAmount(raw)
	if err != nil {
		return core.Entry{}, fmt.Errorf("transaction %d has corrupt amount %q: %w", e.TranID, raw, err)
	}
	e.Amount = amount
	return e, nil
}
