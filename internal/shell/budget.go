package shell

import (
	"context"

	"github.com/djr812/ExpenseTracker/internal/budget"
	"github.com/djr812/ExpenseTracker/internal/core"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/validate"
)

func (s *Shell) budgetMenu(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.banner("BUDGET MENU")

		user, err := s.store.GetUser(ctx, s.userID)
		if err != nil {
			return s.storeTrouble(ctx, "fetch user", err)
		}
		s.term.println("Your current budget is " + core.FormatCurrency(user.Budget))
		s.term.println()
		s.term.println("Press:")
		s.term.println("\t (C)HECK your budget against your total expense transactions")
		s.term.println("\t (U)PDATE your budget amount")
		s.term.println("\t (R)ETURN to previous menu")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "c":
			if err := s.checkBudget(ctx); err != nil {
				return s.storeTrouble(ctx, "budget check", err)
			}
			s.term.pause()
		case "u":
			if err := s.updateBudget(ctx); err != nil {
				return err
			}
		case "r":
			s.term.clear()
			return nil
		default:
			s.term.println("Invalid Choice. Please try again.")
		}
	}
}

// updateBudget sets a new budget limit for the signed-in user.
func (s *Shell) updateBudget(ctx context.Context) error {
	limit, err := promptFor(s, "What would you like your budget to be (In 0.00 format): $",
		"Please enter a valid amount for your budget.", validate.Amount)
	if err != nil {
		return err
	}
	if err := s.store.UpdateBudget(ctx, s.userID, limit); err != nil {
		return s.storeTrouble(ctx, "update budget", err)
	}
	s.logger.InfoContext(ctx, "budget updated", log.FieldUserID, s.userID)
	s.term.println("Your budget is now set to " + core.FormatCurrency(limit))
	s.term.pause()
	s.term.clear()
	return nil
}

// budgetSummary recomputes the user's total spend against their limit.
func (s *Shell) budgetSummary(ctx context.Context) (budget.Summary, error) {
	total, err := s.store.TotalForUser(ctx, s.userID)
	if err != nil {
		return budget.Summary{}, err
	}
	user, err := s.store.GetUser(ctx, s.userID)
	if err != nil {
		return budget.Summary{}, err
	}
	return budget.Evaluate(total, user.Budget), nil
}

// checkBudget prints where today's total sits relative to the budget. It
// runs after every mutation and on demand from the budget menu.
func (s *Shell) checkBudget(ctx context.Context) error {
	summary, err := s.budgetSummary(ctx)
	if err != nil {
		return err
	}
	s.term.println()
	s.term.println(summary.String())
	s.term.println()
	return nil
}
