package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// AddTransaction allocates the next transaction ID (1000 for a fresh
// store) and inserts the transaction row together with its ownership row
// in one database transaction; a failure rolls both back.
func (s *Store) AddTransaction(ctx context.Context, userID int64, t core.Transaction) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin add transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := nextID(ctx, tx, "SELECT COALESCE(MAX(tranID), 0) FROM transactions", core.FirstTransactionID)
	if err != nil {
		return 0, fmt.Errorf("allocate transaction ID: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO transactions (tranID, tranDate, tranTime, catID, tranDescription, tranAmount) VALUES (?, ?, ?, ?, ?, ?)",
		id, t.Date, t.Time, t.CategoryID, t.Description, t.Amount.StringFixed(2))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO userTransactions (userID, tranID) VALUES (?, ?)", userID, id)
	if err != nil {
		return 0, fmt.Errorf("insert user transaction link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		"tran_id", id, "user_id", userID, "amount", t.Amount.StringFixed(2))
	return id, nil
}

// DeleteTransaction removes a transaction and its ownership row together;
// a failure rolls both back so neither side dangles.
func (s *Store) DeleteTransaction(ctx context.Context, userID, tranID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM userTransactions WHERE userID = ? AND tranID = ?", userID, tranID)
	if err != nil {
		return fmt.Errorf("delete user transaction link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM transactions WHERE tranID = ?", tranID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction deleted", "tran_id", tranID, "user_id", userID)
	return nil
}

// UpdateTransactionDate changes one transaction's date (ISO form).
func (s *Store) UpdateTransactionDate(ctx context.Context, tranID int64, isoDate string) error {
	return s.updateTransactionColumn(ctx, tranID, "tranDate", isoDate)
}

// UpdateTransactionTime changes one transaction's time of day.
func (s *Store) UpdateTransactionTime(ctx context.Context, tranID int64, hm string) error {
	return s.updateTransactionColumn(ctx, tranID, "tranTime", hm)
}

// UpdateTransactionCategory moves a transaction to another category.
func (s *Store) UpdateTransactionCategory(ctx context.Context, tranID, catID int64) error {
	return s.updateTransactionColumn(ctx, tranID, "catID", catID)
}

// UpdateTransactionDescription replaces a transaction's description.
func (s *Store) UpdateTransactionDescription(ctx context.Context, tranID int64, description string) error {
	return s.updateTransactionColumn(ctx, tranID, "tranDescription", description)
}

// UpdateTransactionAmount replaces a transaction's amount.
func (s *Store) UpdateTransactionAmount(ctx context.Context, tranID int64, amount decimal.Decimal) error {
	return s.updateTransactionColumn(ctx, tranID, "tranAmount", amount.StringFixed(2))
}

// updateTransactionColumn updates a single column. The column name comes
// from the fixed set above, never from input.
func (s *Store) updateTransactionColumn(ctx context.Context, tranID int64, column string, value any) error {
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE transactions SET %s = ? WHERE tranID = ?", column), value, tranID)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	slog.InfoContext(ctx, "Transaction updated", "tran_id", tranID, "column", column)
	return nil
}

// Entry fetches one transaction joined with its category name.
func (s *Store) Entry(ctx context.Context, tranID int64) (core.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.tranID, t.tranDate, t.tranTime, c.catName, t.tranDescription, t.tranAmount
		FROM transactions t
		INNER JOIN categories c ON c.catID = t.catID
		WHERE t.tranID = ?`, tranID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, core.ErrNotFound
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("get transaction %d: %w", tranID, err)
	}
	return e, nil
}

// TotalForUser sums every transaction amount the user owns, exactly. The
// sum happens in decimal space, not in SQL, so no float rounding creeps in.
func (s *Store) TotalForUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.tranAmount
		FROM userTransactions ut
		INNER JOIN transactions t ON t.tranID = ut.tranID
		WHERE ut.userID = ?`, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total for user %d: %w", userID, err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scan amount: %w", err)
		}
		amount, err := core.ParseStoredAmount(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("corrupt amount %q for user %d: %w", raw, userID, err)
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}
