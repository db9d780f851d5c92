// Package storage is the persistence gateway: a SQLite-backed store for
// users, categories, transactions and the user-transaction association.
// Every statement uses bound parameters, and the paired writes that keep
// the ownership invariant (transaction row + association row, and their
// deletions) run inside a single database transaction.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/djr812/ExpenseTracker/internal/core"

	_ "modernc.org/sqlite"
)

// ErrWrongPassword is returned by Authenticate when the user exists but
// the password does not match.
var ErrWrongPassword = errors.New("wrong password")

// Config controls how the store is opened. Retries paper over a database
// server that is still spinning up; they are the only retry loop in the
// system.
type Config struct {
	Path         string
	MaxRetries   int
	RetryBackoff time.Duration
}

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database, waits for it to answer a ping
// within cfg.MaxRetries attempts, and runs migrations.
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := pingWithRetry(db, cfg.MaxRetries, cfg.RetryBackoff); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(cfg.Path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func pingWithRetry(db *sql.DB, maxRetries int, backoff time.Duration) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		slog.Warn("Database not answering, retrying",
			"attempt", attempt, "max_retries", maxRetries, "error", err)
		if attempt < maxRetries {
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateUser allocates the next user ID (1001 for a fresh store), hashes
// the password with bcrypt, and inserts the account.
func (s *Store) CreateUser(ctx context.Context, password, firstName, lastName string, budget decimal.Decimal) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback()

	id, err := nextID(ctx, tx, "SELECT COALESCE(MAX(userID), 0) FROM users", core.FirstUserID)
	if err != nil {
		return 0, fmt.Errorf("allocate user ID: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (userID, userPwd, fName, lName, userBudget) VALUES (?, ?, ?, ?, ?)",
		id, string(hash), firstName, lastName, budget.StringFixed(2))
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", id)
	return id, nil
}

// NextUserID reports the ID the next registration will receive, so it can
// be announced before the details are collected.
func (s *Store) NextUserID(ctx context.Context) (int64, error) {
	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(userID) FROM users").Scan(&maxID); err != nil {
		return 0, fmt.Errorf("next user ID: %w", err)
	}
	if !maxID.Valid || maxID.Int64 < core.FirstUserID {
		return core.FirstUserID, nil
	}
	return maxID.Int64 + 1, nil
}

// GetUser fetches one account. Unknown IDs return core.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, userID int64) (core.User, error) {
	var (
		u         core.User
		rawBudget string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT userID, userPwd, fName, lName, userBudget FROM users WHERE userID = ?", userID).
		Scan(&u.ID, &u.PasswordHash, &u.FirstName, &u.LastName, &rawBudget)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	u.Budget, err = core.ParseStoredAmount(rawBudget)
	if err != nil {
		return core.User{}, fmt.Errorf("user %d has corrupt budget %q: %w", userID, rawBudget, err)
	}
	return u, nil
}

// Authenticate checks a password against the stored bcrypt hash. Unknown
// users return core.ErrNotFound; a bad password returns ErrWrongPassword,
// so the shell can tell the two apart.
func (s *Store) Authenticate(ctx context.Context, userID int64, password string) (core.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return core.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return core.User{}, ErrWrongPassword
	}
	return u, nil
}

// UpdateBudget replaces the user's budget limit.
func (s *Store) UpdateBudget(ctx context.Context, userID int64, limit decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET userBudget = ? WHERE userID = ?", limit.StringFixed(2), userID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	slog.InfoContext(ctx, "Budget updated", "user_id", userID, "budget", limit.StringFixed(2))
	return nil
}

// nextID allocates MAX+1 with a floor for a fresh table. It must run
// inside the same transaction as the insert that uses it.
func nextID(ctx context.Context, tx *sql.Tx, maxQuery string, first int64) (int64, error) {
	var current int64
	if err := tx.QueryRowContext(ctx, maxQuery).Scan(&current); err != nil {
		return 0, err
	}
	if current < first {
		return first, nil
	}
	return current + 1, nil
}
