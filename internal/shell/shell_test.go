package shell

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djr812/ExpenseTracker/internal/config"
	"github.com/djr812/ExpenseTracker/internal/core"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/storage"
)

type fixture struct {
	store *storage.Store
	cfg   *config.Config
	out   bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(storage.Config{
		Path:         filepath.Join(dir, "expenses.db"),
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return &fixture{
		store: store,
		cfg: &config.Config{
			DBPath:        filepath.Join(dir, "expenses.db"),
			ReportsDir:    filepath.Join(dir, "Reports"),
			LoginAttempts: 3,
			LogLevel:      "error",
		},
	}
}

func (f *fixture) run(t *testing.T, script string) string {
	t.Helper()
	logger := log.New(log.Config{
		Component: log.ComponentShell,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
	sh := New(f.store, f.cfg, logger, strings.NewReader(script), &f.out)
	require.NoError(t, sh.Run(context.Background()))
	return f.out.String()
}

func (f *fixture) seedUser(t *testing.T) int64 {
	t.Helper()
	id, err := f.store.CreateUser(context.Background(), "hunter2", "David", "Rogers",
		decimal.RequireFromString("500.00"))
	require.NoError(t, err)
	return id
}

func (f *fixture) seedCategory(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, f.store.CreateCategory(context.Background(), core.Category{ID: id, Name: name}))
}

func TestLoginAndQuit(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t)

	out := f.run(t, "l\n1001\nhunter2\n\nq\n")

	assert.Contains(t, out, "Welcome David")
	assert.Contains(t, out, "Goodbye")
}

func TestLoginAttemptsExhausted(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t)

	out := f.run(t, "l\n9999\nnope\n9999\nnope\n9999\nnope\n")

	assert.Contains(t, out, "That is not a valid user ID. Please try again.")
	assert.Contains(t, out, "Login Attempts exceeded")
	assert.NotContains(t, out, "MAIN MENU")
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t)

	out := f.run(t, "l\n1001\nwrong\n1001\nhunter2\n\nq\n")

	assert.Contains(t, out, "Incorrect Password. Please try again.")
	assert.Contains(t, out, "Welcome David")
}

func TestCreateUserFromEntryMenu(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "c\nsecret\nMary\nSmith\n250.00\n\nq\n")

	assert.Contains(t, out, "Your UserID will be 1001")

	u, err := f.store.Authenticate(context.Background(), 1001, "secret")
	require.NoError(t, err)
	assert.Equal(t, "Mary", u.FirstName)
	assert.True(t, u.Budget.Equal(decimal.RequireFromString("250.00")))
}

func TestAddTransactionFlow(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)
	f.seedCategory(t, 1000, "Food")

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"t", "a", // main -> transactions -> add
		"y",          // a listed category is suitable
		"1000",       // category ID
		"05-01-2024", // date
		"12:30",      // time
		"Lunch at the corner cafe", // description
		"9.99", // amount
		"",     // pause after budget check
		"r",    // back to main
		"q",    // quit
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "Expense transaction added successfully.")
	assert.Contains(t, out, "UNDER BUDGET")

	entries, err := f.store.EntriesForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-05", entries[0].Date)
	assert.Equal(t, "12:30", entries[0].Time)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("9.99")))
}

func TestBudgetCheckFromMenu(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t)

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"b", "c", "", // budget menu -> check -> pause
		"r", "q",
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "All your expenses currently total $0.00")
	assert.Contains(t, out, "Your budget is currently set to $500.00")
	assert.Contains(t, out, "UNDER BUDGET: Your total transactions are less than 90% of your Budget Amount.")
}

func TestUpdateBudgetFlow(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"b", "u", // budget menu -> update
		"not-money", // rejected
		"750.00",    // accepted
		"",          // pause
		"r", "q",
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "Please enter a valid amount for your budget.")
	assert.Contains(t, out, "Your budget is now set to $750.00")

	u, err := f.store.GetUser(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, u.Budget.Equal(decimal.RequireFromString("750.00")))
}

func TestAllExpensesReportSavedToFile(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)
	f.seedCategory(t, 1000, "Food")
	_, err := f.store.AddTransaction(context.Background(), userID, core.Transaction{
		Date:        "2024-01-05",
		Time:        "12:30",
		CategoryID:  1000,
		Description: "Lunch",
		Amount:      decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"r", "1", // reports -> all expenses
		"",        // pause after report + budget check
		"y",       // save to file
		"all.txt", // filename
		"",        // pause
		"r", "q",
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "$9.99")
	assert.Contains(t, out, "Your Report has been written to")

	saved, err := os.ReadFile(filepath.Join(f.cfg.ReportsDir, "all.txt"))
	require.NoError(t, err)
	content := string(saved)
	assert.Contains(t, content, "ALL EXPENSES REPORT")
	assert.Contains(t, content, "05-01-2024")
	assert.Contains(t, content, "$9.99")
	assert.Contains(t, content, "Your budget is currently set to $500.00")
}

func TestSearchByCategoryDelete(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)
	f.seedCategory(t, 1000, "Food")
	tranID, err := f.store.AddTransaction(context.Background(), userID, core.Transaction{
		Date:        "2024-01-05",
		Time:        "12:30",
		CategoryID:  1000,
		Description: "Lunch",
		Amount:      decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"t", "s", "c", // transactions -> search -> by category
		"1000", // category ID
		"y",    // amend one
		"1000", // the listed tranID
		"d",    // delete
		"y",    // confirm
		"",     // pause after budget check
		"r", "r", "q",
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "TranID")
	assert.Contains(t, out, "Please note: The Action CANNOT be undone")
	assert.Contains(t, out, "Expense Transaction Successfully DELETED")

	_, err = f.store.Entry(context.Background(), tranID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSearchByDateUpdateAmount(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)
	f.seedCategory(t, 1000, "Food")
	tranID, err := f.store.AddTransaction(context.Background(), userID, core.Transaction{
		Date:        "2024-01-05",
		Time:        "12:30",
		CategoryID:  1000,
		Description: "Lunch",
		Amount:      decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"t", "s", "d", // transactions -> search -> by date
		"05-01-2024", // date
		"y",          // amend one
		"1000",       // the listed tranID
		"u", "5",     // update -> amount
		"42.00", // new amount
		"",      // pause
		"r", "r", "q",
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "Expense Transaction Record updated successfully!")

	e, err := f.store.Entry(context.Background(), tranID)
	require.NoError(t, err)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("42.00")))
}

func TestCategoryLifecycleFromMenu(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t)

	script := strings.Join([]string{
		"l", "1001", "hunter2", "", // login, pause
		"c", "a", // categories -> add
		"1000", "Food", "", // new id, name, pause
		"u",                     // update
		"1000", "Groceries", "", // id, new name, pause
		"d",        // delete
		"1000", "", // id, pause
		"r", "q",
	}, "\n") + "\n"

	out := f.run(t, script)

	assert.Contains(t, out, "New Category Created")
	assert.Contains(t, out, "Category Name Updated")
	assert.Contains(t, out, "Category Deleted successfully")

	cats, err := f.store.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
}
