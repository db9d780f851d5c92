package shell

import (
	"context"
	"errors"
	"strconv"

	"github.com/djr812/ExpenseTracker/internal/core"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/render"
	"github.com/djr812/ExpenseTracker/internal/report"
	"github.com/djr812/ExpenseTracker/internal/validate"
)

func (s *Shell) transactionsMenu(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.banner("EXPENSE TRANSACTION MENU")
		s.term.println("Press:")
		s.term.println("\t (A)DD a new expense transaction")
		s.term.println("\t (S)EARCH your expense transactions")
		s.term.println("\t (R)ETURN to previous menu")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "a":
			err = s.addTransaction(ctx)
		case "s":
			err = s.searchTransactionsMenu(ctx)
		case "r":
			s.term.clear()
			return nil
		default:
			s.term.println("Invalid Choice. Please try again.")
			continue
		}
		if err != nil {
			return err
		}
	}
}

// addTransaction walks the user through a new expense: pick (or create) a
// category, then date, time, description and amount. The store writes the
// transaction and its ownership row together.
func (s *Shell) addTransaction(ctx context.Context) error {
	s.term.clear()
	s.term.banner("ADD A NEW EXPENSE TRANSACTION")
	s.term.println("Here are the available categories:")
	s.term.println()

	cats, err := s.listCategories(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	s.term.println()

	suitable, err := s.term.confirm("Is there a suitable category for your Expense Transaction (y/n)?: ")
	if err != nil {
		return err
	}
	if !suitable {
		if err := s.addCategory(ctx); err != nil {
			return err
		}
		s.term.clear()
		s.term.banner("ADD A NEW EXPENSE TRANSACTION")
		s.term.println("Here are the available categories:")
		s.term.println()
		if cats, err = s.listCategories(ctx); err != nil {
			return s.storeTrouble(ctx, "list categories", err)
		}
		s.term.println()
	}

	catID, err := s.promptExistingCategory(cats,
		"Please enter the Category ID for your expense transaction: ",
		"That is not an available Category ID. Please try again.")
	if err != nil {
		return err
	}

	tranDate, err := promptFor(s, "Please enter the expense transaction date in dd-mm-yyyy format: ",
		"That is not a valid date. Please try again.", validate.Date)
	if err != nil {
		return err
	}
	tranTime, err := promptFor(s, "Please enter the time of the transaction in hh:mm format: ",
		"That is not a valid time. Please try again.", validate.Clock)
	if err != nil {
		return err
	}
	tranDesc, err := promptFor(s, "Please enter the expense transaction description in 50 characters or less: ",
		"That is not a valid description. Please try again.", validate.Description)
	if err != nil {
		return err
	}
	tranAmt, err := promptFor(s, "Please enter the expense transaction amount in 0.00 format: $",
		"That is not a valid amount. Please try again.", validate.Amount)
	if err != nil {
		return err
	}

	tranID, err := s.store.AddTransaction(ctx, s.userID, core.Transaction{
		Date:        tranDate.Format(core.DateISO),
		Time:        tranTime,
		CategoryID:  catID,
		Description: tranDesc,
		Amount:      tranAmt,
	})
	if err != nil {
		return s.storeTrouble(ctx, "add transaction", err)
	}
	s.logger.InfoContext(ctx, "transaction added",
		log.FieldUserID, s.userID, log.FieldTranID, tranID, log.FieldCategoryID, catID)

	s.term.println()
	s.term.println("Expense transaction added successfully.")
	s.term.println()

	if err := s.checkBudget(ctx); err != nil {
		return s.storeTrouble(ctx, "budget check", err)
	}
	s.term.pause()
	return nil
}

func (s *Shell) searchTransactionsMenu(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.banner("SEARCH EXPENSE TRANSACTION MENU")
		s.term.println("Press letter to search by:")
		s.term.println("\t (C)ATEGORY")
		s.term.println("\t (D)ATE of the expense transaction")
		s.term.println("\t (T)IME of the expense transaction")
		s.term.println("\t (R)ETURN to previous menu")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "c":
			err = s.searchByCategory(ctx)
		case "d":
			err = s.searchByDate(ctx)
		case "t":
			err = s.searchByTime(ctx)
		case "r":
			s.term.clear()
			return nil
		default:
			s.term.println("Invalid Choice. Please try again.")
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) searchByCategory(ctx context.Context) error {
	s.term.clear()
	s.term.banner("SEARCH FOR AN EXPENSE TRANSACTION BY CATEGORY")
	s.term.println("Here are the available categories:")
	s.term.println()

	cats, err := s.listCategories(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	s.term.println()
	if len(cats) == 0 {
		s.term.println("There are currently no Categories. Please use the Category menu to create some.")
		s.term.println()
		s.term.pause()
		return nil
	}

	catID, err := s.promptExistingCategory(cats,
		"Please enter a Category ID to find Expense Transactions for: ",
		"That is not a currently available Category ID. Please try again.")
	if err != nil {
		return err
	}
	s.term.println()

	listing, err := s.agg.SearchByCategory(ctx, s.userID, catID)
	if err != nil {
		return s.storeTrouble(ctx, "category search", err)
	}
	if listing.Empty() {
		s.term.println("You have no Expense Transactions with that Category.")
		s.term.println()
		s.term.pause()
		return nil
	}
	s.term.println(listing.Render())
	return s.amendListed(ctx, listing)
}

func (s *Shell) searchByDate(ctx context.Context) error {
	s.term.clear()
	s.term.banner("SEARCH FOR AN EXPENSE TRANSACTION BY DATE")

	date, err := promptFor(s, "Enter the date of the expense transactions you wish to search for (dd-mm-yyyy): ",
		"That is not a valid date. Please try again.", validate.Date)
	if err != nil {
		return err
	}

	listing, err := s.agg.SearchByDate(ctx, s.userID, date)
	if err != nil {
		return s.storeTrouble(ctx, "date search", err)
	}
	if listing.Empty() {
		s.term.println("You have no expense transactions with that date.")
		s.term.println()
		s.term.pause()
		return nil
	}
	s.term.println(listing.Render())
	return s.amendListed(ctx, listing)
}

func (s *Shell) searchByTime(ctx context.Context) error {
	s.term.clear()
	s.term.banner("SEARCH FOR AN EXPENSE TRANSACTION BY TIME")

	hm, err := promptFor(s, "Enter the time of the expense transactions you wish to search for (hh:mm): ",
		"That is not a valid time. Please try again.", validate.Clock)
	if err != nil {
		return err
	}

	listing, err := s.agg.SearchByTime(ctx, s.userID, hm)
	if err != nil {
		return s.storeTrouble(ctx, "time search", err)
	}
	if listing.Empty() {
		s.term.println("You have no Expense Transactions with that time.")
		s.term.println()
		s.term.pause()
		return nil
	}
	s.term.println(listing.Render())
	return s.amendListed(ctx, listing)
}

// amendListed offers to update or delete one of the transactions a search
// just listed. Only the IDs on screen are accepted.
func (s *Shell) amendListed(ctx context.Context, listing report.Report) error {
	s.term.println()
	amend, err := s.term.confirm("Do you wish to UPDATE or DELETE one of these expense transactions? (y/n): ")
	if err != nil {
		return err
	}
	if !amend {
		return nil
	}

	valid := listing.TranIDs()
	var tranID int64
	for {
		raw, err := s.term.prompt("Enter the Expense Transaction ID you wish to adjust: ")
		if err != nil {
			return err
		}
		id, perr := strconv.ParseInt(raw, 10, 64)
		if perr == nil && containsID(valid, id) {
			tranID = id
			break
		}
		s.term.println("That is not an available Expense Transaction ID for this search. Please try again.")
	}

	s.term.println()
	s.term.printf("Press letter to change expense transaction %d:\n", tranID)
	s.term.println()
	s.term.println("\t (U)PDATE an expense transaction")
	s.term.println("\t (D)ELETE an expense transaction")
	s.term.println("\t (R)ETURN to previous menu")
	s.term.println()
	for {
		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "u":
			return s.updateTransaction(ctx, tranID)
		case "d":
			return s.deleteTransaction(ctx, tranID)
		case "r":
			s.term.clear()
			return nil
		default:
			s.term.println("Invalid Choice. Please try again.")
		}
	}
}

// updateTransaction changes one field of an existing transaction.
func (s *Shell) updateTransaction(ctx context.Context, tranID int64) error {
	s.term.clear()
	s.term.banner("UPDATE AN EXPENSE TRANSACTIONS DETAILS")

	if err := s.showEntry(ctx, tranID); err != nil {
		return s.storeTrouble(ctx, "fetch transaction", err)
	}

	s.term.println()
	s.term.println("\t (1) DATE")
	s.term.println("\t (2) TIME")
	s.term.println("\t (3) CATEGORY")
	s.term.println("\t (4) DESCRIPTION")
	s.term.println("\t (5) AMOUNT")
	s.term.println("\t (R)ETURN")
	s.term.println()

	for {
		choice, err := s.term.promptChoice("Press a number to update a field for expense transaction " + strconv.FormatInt(tranID, 10) + ": ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			newDate, err := promptFor(s, "Please enter a new date (dd-mm-yyyy): ",
				"This is not a valid date. Please try again.", validate.Date)
			if err != nil {
				return err
			}
			err = s.store.UpdateTransactionDate(ctx, tranID, newDate.Format(core.DateISO))
			return s.finishUpdate(ctx, tranID, err)
		case "2":
			newTime, err := promptFor(s, "Please enter a new time (hh:mm): ",
				"This is not a valid time. Please try again.", validate.Clock)
			if err != nil {
				return err
			}
			err = s.store.UpdateTransactionTime(ctx, tranID, newTime)
			return s.finishUpdate(ctx, tranID, err)
		case "3":
			s.term.println("Here are the available categories:")
			s.term.println()
			cats, err := s.listCategories(ctx)
			if err != nil {
				return s.storeTrouble(ctx, "list categories", err)
			}
			s.term.println()
			newCat, err := s.promptExistingCategory(cats,
				"Enter the Category you want to change to: ",
				"That is not a valid existing category. Please try again.")
			if err != nil {
				return err
			}
			err = s.store.UpdateTransactionCategory(ctx, tranID, newCat)
			return s.finishUpdate(ctx, tranID, err)
		case "4":
			newDesc, err := promptFor(s, "Please enter the new description: ",
				"That is not a valid description. Please try again.", validate.Description)
			if err != nil {
				return err
			}
			err = s.store.UpdateTransactionDescription(ctx, tranID, newDesc)
			return s.finishUpdate(ctx, tranID, err)
		case "5":
			newAmt, err := promptFor(s, "Please enter the new amount in 0.00 format: $",
				"This is not a valid amount. Please try again.", validate.Amount)
			if err != nil {
				return err
			}
			err = s.store.UpdateTransactionAmount(ctx, tranID, newAmt)
			return s.finishUpdate(ctx, tranID, err)
		case "r":
			return nil
		default:
			s.term.println("That is not a valid selection. Please try again.")
		}
	}
}

// finishUpdate reports the outcome of a field update, shows the changed
// record and re-checks the budget.
func (s *Shell) finishUpdate(ctx context.Context, tranID int64, err error) error {
	if err != nil {
		return s.storeTrouble(ctx, "update transaction", err)
	}
	s.logger.InfoContext(ctx, "transaction updated", log.FieldUserID, s.userID, log.FieldTranID, tranID)

	s.term.println()
	s.term.println("Expense Transaction Record updated successfully!")
	s.term.println("Here is the new record -:")
	s.term.println()
	if err := s.showEntry(ctx, tranID); err != nil {
		return s.storeTrouble(ctx, "fetch transaction", err)
	}
	s.term.println()
	if err := s.checkBudget(ctx); err != nil {
		return s.storeTrouble(ctx, "budget check", err)
	}
	s.term.pause()
	return nil
}

// deleteTransaction shows the record, warns, and on confirmation removes
// the transaction and its ownership row in one go.
func (s *Shell) deleteTransaction(ctx context.Context, tranID int64) error {
	s.term.clear()
	s.term.banner("DELETE AN EXPENSE TRANSACTION")

	if err := s.showEntry(ctx, tranID); err != nil {
		return s.storeTrouble(ctx, "fetch transaction", err)
	}

	s.term.println()
	s.term.println("Please note: The Action CANNOT be undone")
	s.term.println()

	confirmed, err := s.term.confirm("Please confirm that you wish to DELETE transaction number " + strconv.FormatInt(tranID, 10) + " (y/n): ")
	if err != nil {
		return err
	}
	if confirmed {
		if err := s.store.DeleteTransaction(ctx, s.userID, tranID); err != nil {
			return s.storeTrouble(ctx, "delete transaction", err)
		}
		s.logger.InfoContext(ctx, "transaction deleted", log.FieldUserID, s.userID, log.FieldTranID, tranID)
		s.term.println("Expense Transaction Successfully DELETED")
	}

	s.term.println()
	if err := s.checkBudget(ctx); err != nil {
		return s.storeTrouble(ctx, "budget check", err)
	}
	s.term.pause()
	return nil
}

var entryHeaders = []string{"TranID", "Date", "Time", "Category", "Description", "Amount"}
var entryAligns = []render.Align{render.AlignRight, render.AlignRight, render.AlignRight, render.AlignCenter, render.AlignLeft, render.AlignRight}

// showEntry prints a single transaction in the search listing layout.
func (s *Shell) showEntry(ctx context.Context, tranID int64) error {
	e, err := s.store.Entry(ctx, tranID)
	if err != nil {
		return err
	}
	display, err := core.DisplayDate(e.Date)
	if err != nil {
		return err
	}
	row := []string{
		strconv.FormatInt(e.TranID, 10),
		display,
		e.Time,
		e.Category,
		e.Description,
		core.FormatCurrency(e.Amount),
	}
	s.term.println(render.Table(entryHeaders, [][]string{row}, entryAligns, render.StyleSimple))
	return nil
}

// promptExistingCategory keeps asking until the user names one of the
// listed categories.
func (s *Shell) promptExistingCategory(cats []core.Category, label, retry string) (int64, error) {
	for {
		raw, err := s.term.prompt(label)
		if err != nil {
			return 0, err
		}
		if id, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			for _, c := range cats {
				if c.ID == id {
					return id, nil
				}
			}
		}
		s.term.println(retry)
	}
}

// storeTrouble logs a storage failure and keeps the session alive with a
// plain apology. Only input errors end the session.
func (s *Shell) storeTrouble(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	s.logger.ErrorContext(ctx, "store operation failed", log.FieldOperation, op, log.FieldError, err)
	s.term.println("Something went wrong talking to the expense database. Please try again later.")
	s.term.pause()
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
