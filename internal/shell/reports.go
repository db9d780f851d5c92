package shell

import (
	"context"
	"time"

	"github.com/djr812/ExpenseTracker/internal/report"
	"github.com/djr812/ExpenseTracker/internal/validate"
)

func (s *Shell) reportsMenu(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.banner("REPORT MENU")
		s.term.println("Press:")
		s.term.println("\t (1) Report on your current expenses")
		s.term.println("\t (2) Report on your expenses by category")
		s.term.println("\t (3) Report on your expenses by date")
		s.term.println("\t (4) Report on your expenses by time of day")
		s.term.println("\t (R)ETURN to previous menu")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = s.allExpensesReport(ctx)
		case "2":
			err = s.categoryReport(ctx)
		case "3":
			err = s.dateRangeReport(ctx)
		case "4":
			err = s.timeRangeReport(ctx)
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

func (s *Shell) allExpensesReport(ctx context.Context) error {
	s.term.clear()
	s.term.banner("ALL EXPENSES REPORT")
	s.term.println("This is a report of all your expenses to date:")
	s.term.println()

	rep, err := s.agg.AllExpenses(ctx, s.userID)
	if err != nil {
		return s.storeTrouble(ctx, "all expenses report", err)
	}
	return s.presentReport(ctx, rep, "There are no expenses to report.")
}

func (s *Shell) categoryReport(ctx context.Context) error {
	s.term.clear()
	s.term.banner("CATEGORIES REPORT")
	s.term.println("This report will provide you with all your expenses for a requested category.")
	s.term.println()

	cats, err := s.listCategories(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	if len(cats) == 0 {
		s.term.println("There are no Categories to report on.")
		s.term.println()
		s.term.pause()
		return nil
	}

	catID, err := s.promptExistingCategory(cats,
		"Please enter the Category ID to report on: ",
		"That is not an available Category ID. Please try again.")
	if err != nil {
		return err
	}

	rep, err := s.agg.ByCategory(ctx, s.userID, catID)
	if err != nil {
		return s.storeTrouble(ctx, "category report", err)
	}
	return s.presentReport(ctx, rep, "There are no expenses to report on under this Category.")
}

func (s *Shell) dateRangeReport(ctx context.Context) error {
	s.term.clear()
	s.term.banner("EXPENSES BY DATE REPORT")
	s.term.println("This report will provide your expenses between 2 specified dates.")
	s.term.println()

	first, second, err := s.promptDateRange()
	if err != nil {
		return err
	}

	rep, err := s.agg.ByDateRange(ctx, s.userID, first, second)
	if err != nil {
		return s.storeTrouble(ctx, "date range report", err)
	}
	return s.presentReport(ctx, rep, "There are no expense transactions between those dates.")
}

func (s *Shell) timeRangeReport(ctx context.Context) error {
	s.term.clear()
	s.term.banner("EXPENSES BY TIME REPORT")
	s.term.println("This report will provide your expenses between 2 specified times on ")
	s.term.println("a particular date.")
	s.term.println()

	date, firstHM, secondHM, err := s.promptTimeRange()
	if err != nil {
		return err
	}

	rep, err := s.agg.ByTimeRange(ctx, s.userID, date, firstHM, secondHM)
	if err != nil {
		return s.storeTrouble(ctx, "time range report", err)
	}
	return s.presentReport(ctx, rep, "There are no expense transactions between those times on that date.")
}

// promptDateRange collects an ordered pair of dates. Both are re-asked when
// either is malformed or the pair is out of order; a same-day pair is fine.
func (s *Shell) promptDateRange() (first, second time.Time, err error) {
	for {
		rawFirst, err := s.term.prompt("First Date (dd-mm-yyyy): ")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		rawSecond, err := s.term.prompt("Second Date (dd-mm-yyyy): ")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		first, ferr := validate.Date(rawFirst)
		second, serr := validate.Date(rawSecond)
		if ferr != nil || serr != nil || first.After(second) {
			s.term.println("These are not valid dates. Please try again.")
			continue
		}
		return first, second, nil
	}
}

// promptTimeRange collects a date plus an ordered pair of times on it.
func (s *Shell) promptTimeRange() (date time.Time, firstHM, secondHM string, err error) {
	for {
		rawDate, err := s.term.prompt("Please enter the date you wish to search (dd-mm-yyyy): ")
		if err != nil {
			return time.Time{}, "", "", err
		}
		rawFirst, err := s.term.prompt("Please enter the starting time (hh:mm): ")
		if err != nil {
			return time.Time{}, "", "", err
		}
		rawSecond, err := s.term.prompt("Please enter the ending time (hh:mm): ")
		if err != nil {
			return time.Time{}, "", "", err
		}
		date, derr := validate.Date(rawDate)
		firstHM, ferr := validate.Clock(rawFirst)
		secondHM, serr := validate.Clock(rawSecond)
		if derr != nil || ferr != nil || serr != nil || firstHM > secondHM {
			s.term.println("These are not valid date/times. Please try again.")
			continue
		}
		return date, firstHM, secondHM, nil
	}
}

// presentReport shows a rendered report with the budget standing, then
// offers to save it. Empty reports get emptyMsg instead.
func (s *Shell) presentReport(ctx context.Context, rep report.Report, emptyMsg string) error {
	if rep.Empty() {
		s.term.println(emptyMsg)
		s.term.println()
		s.term.pause()
		s.term.clear()
		return nil
	}

	body := rep.Render()
	s.term.println(body)
	if err := s.checkBudget(ctx); err != nil {
		return s.storeTrouble(ctx, "budget check", err)
	}
	s.term.pause()

	s.term.clear()
	s.term.banner("SAVE THE " + rep.Title)
	s.term.println(body)
	s.term.println()

	save, err := s.term.confirm("Would you like to save this report to a file? (y/n): ")
	if err != nil {
		return err
	}
	if save {
		if err := s.saveReport(ctx, rep.Title, body); err != nil {
			return err
		}
	}
	s.term.println()
	s.term.pause()
	s.term.clear()
	return nil
}
