package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/djr812/ExpenseTracker/internal/core"
)

// Categories returns every category, ID ascending.
func (s *Store) Categories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT catID, catName FROM categories ORDER BY catID")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CreateCategory inserts a user-chosen category. Both the ID and the name
// must be unused; names compare exactly, with no case folding.
func (s *Store) CreateCategory(ctx context.Context, c core.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create category: %w", err)
	}
	defer tx.Rollback()

	if err := categoryConflicts(ctx, tx, c, 0); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO categories (catID, catName) VALUES (?, ?)", c.ID, c.Name); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create category: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "cat_id", c.ID, "name", c.Name)
	return nil
}

// RenameCategory changes a category's name, which must still be unique.
func (s *Store) RenameCategory(ctx context.Context, catID int64, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rename category: %w", err)
	}
	defer tx.Rollback()

	if err := categoryConflicts(ctx, tx, core.Category{Name: name}, catID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE categories SET catName = ? WHERE catID = ?", name, catID)
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rename category: %w", err)
	}

	slog.InfoContext(ctx, "Category renamed", "cat_id", catID, "name", name)
	return nil
}

// DeleteCategory removes a category, refusing while any transaction still
// references it. The check and the delete share one database transaction
// so a referencing insert cannot slip between them.
func (s *Store) DeleteCategory(ctx context.Context, catID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer tx.Rollback()

	var refs int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE catID = ?", catID).Scan(&refs); err != nil {
		return fmt.Errorf("count category references: %w", err)
	}
	if refs > 0 {
		return core.ErrCategoryInUse
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE catID = ?", catID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete category: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted", "cat_id", catID)
	return nil
}

// categoryConflicts reports a duplicate ID or name. ignoreID exempts the
// category being renamed from its own name check.
func categoryConflicts(ctx context.Context, tx *sql.Tx, c core.Category, ignoreID int64) error {
	if c.ID != 0 {
		var existing int64
		err := tx.QueryRowContext(ctx,
			"SELECT catID FROM categories WHERE catID = ?", c.ID).Scan(&existing)
		if err == nil {
			return core.ErrDuplicateCategoryID
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check category ID: %w", err)
		}
	}

	var existing int64
	err := tx.QueryRowContext(ctx,
		"SELECT catID FROM categories WHERE catName = ? AND catID != ?", c.Name, ignoreID).Scan(&existing)
	if err == nil {
		return core.ErrDuplicateCategoryName
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check category name: %w", err)
	}
	return nil
}
