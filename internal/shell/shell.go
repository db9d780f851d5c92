// Package shell is the interactive menu-driven front end. It owns all
// prompting, input validation loops and screen output; every accepted value
// is handed to the store or the report aggregator as a typed argument along
// with the signed-in user's ID.
package shell

import (
	"context"
	"errors"
	"io"

	"github.com/djr812/ExpenseTracker/internal/config"
	"github.com/djr812/ExpenseTracker/internal/core"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/report"
	"github.com/djr812/ExpenseTracker/internal/storage"
	"github.com/djr812/ExpenseTracker/internal/validate"
)

const rule = "========================================================================"

// Shell runs the menu loop for one terminal session. At most one user is
// signed in at a time; their ID is carried here, never in a global.
type Shell struct {
	store  *storage.Store
	agg    *report.Aggregator
	cfg    *config.Config
	logger *log.Logger
	term   *terminal
	userID int64
}

func New(store *storage.Store, cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store:  store,
		agg:    report.NewAggregator(store),
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentShell),
		term:   newTerminal(in, out),
	}
}

// Run shows the entry menu and, after a successful login, the main menu.
// It returns nil when the user quits or input reaches EOF.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.printf("%s\n", logo)
		s.term.println(rule)
		s.term.printf("\n\n")
		s.term.println("Press:")
		s.term.println("\t (L)OGIN to Expense Tracker")
		s.term.println("\t (C)REATE a new user")
		s.term.println("\t (Q)UIT")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return quietEOF(err)
		}
		switch choice {
		case "l":
			ok, err := s.login(ctx)
			if err != nil {
				return quietEOF(err)
			}
			if !ok {
				s.term.println("Login Attempts exceeded. Sorry you are not allowed entry to this system.")
				return nil
			}
			return quietEOF(s.mainMenu(ctx))
		case "c":
			if err := s.createUser(ctx); err != nil {
				return quietEOF(err)
			}
		case "q":
			s.term.println("Goodbye !")
			return nil
		default:
			s.term.println("Invalid Selection. Please try again.")
			s.term.pause()
		}
	}
}

// login gives the user a fixed number of attempts to present a valid user
// ID and password. It reports whether a session was established.
func (s *Shell) login(ctx context.Context) (bool, error) {
	for attempt := 0; attempt < s.cfg.LoginAttempts; attempt++ {
		rawID, err := s.term.prompt("Please enter your user ID: ")
		if err != nil {
			return false, err
		}
		pwd, err := s.term.promptPassword("Please enter your password: ")
		if err != nil {
			return false, err
		}

		s.term.println()
		s.term.println("Please wait while I validate your credentials")

		userID, err := parseUserID(rawID)
		if err != nil {
			s.term.println("That is not a valid user ID. Please try again.")
			continue
		}

		user, err := s.store.Authenticate(ctx, userID, pwd)
		switch {
		case err == nil:
			s.userID = user.ID
			s.term.println()
			s.term.println("Welcome " + user.FirstName)
			s.term.pause()
			return true, nil
		case errors.Is(err, core.ErrNotFound):
			s.term.println("That is not a valid user ID. Please try again.")
		case errors.Is(err, storage.ErrWrongPassword):
			s.term.println("Incorrect Password. Please try again.")
		default:
			s.logger.ErrorContext(ctx, "login failed", log.FieldError, err, log.FieldUserID, userID)
			return false, nil
		}
	}
	return false, nil
}

// createUser collects a new user's details and announces the ID the store
// will assign before asking for anything else, as the sign-up flow promises.
func (s *Shell) createUser(ctx context.Context) error {
	s.term.println()
	s.term.println("Accessing the database to create your new user entry")

	nextID, err := s.store.NextUserID(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "user ID allocation failed", log.FieldError, err)
		s.term.println("The user database is unavailable right now. Please try again later.")
		s.term.pause()
		return nil
	}
	s.term.printf("Your UserID will be %d\n", nextID)

	pwd, err := promptPasswordFor(s, "Please enter your password: ",
		"Your password cannot be blank and must be less than 20 characters.")
	if err != nil {
		return err
	}
	firstName, err := promptFor(s, "Please enter your First Name: ",
		"That is not a valid First Name. Please Try again.", validate.Name)
	if err != nil {
		return err
	}
	lastName, err := promptFor(s, "Please enter your Last Name: ",
		"That is not a valid last name. Please try again.", validate.Name)
	if err != nil {
		return err
	}
	budgetAmt, err := promptFor(s, "Please enter you budget limit (in 0.00 format): $",
		"That is not a valid budget amount. Please try again.", validate.Amount)
	if err != nil {
		return err
	}

	userID, err := s.store.CreateUser(ctx, pwd, firstName, lastName, budgetAmt)
	if err != nil {
		s.logger.ErrorContext(ctx, "user creation failed", log.FieldError, err)
		s.term.println("Your user could not be created. Please try again later.")
	} else {
		s.logger.InfoContext(ctx, "user created", log.FieldUserID, userID)
	}

	s.term.pause()
	s.term.clear()
	return nil
}

// mainMenu is the top level menu of a signed-in session.
func (s *Shell) mainMenu(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.banner("MAIN MENU")
		s.term.printf("\n\n")
		s.term.println("Press:")
		s.term.println("\t (T)RANSACTIONS")
		s.term.println("\t (C)ATEGORIES")
		s.term.println("\t (B)UDGET")
		s.term.println("\t (R)EPORTS")
		s.term.println("\t (Q)UIT")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "t":
			err = s.transactionsMenu(ctx)
		case "c":
			err = s.categoriesMenu(ctx)
		case "b":
			err = s.budgetMenu(ctx)
		case "r":
			err = s.reportsMenu(ctx)
		case "q":
			s.term.println()
			s.term.println("Goodbye")
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

// quietEOF maps input exhaustion to a clean exit.
func quietEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
