package shell

import (
	"context"
	"errors"

	"github.com/djr812/ExpenseTracker/internal/core"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/validate"
)

func (s *Shell) categoriesMenu(ctx context.Context) error {
	for {
		s.term.clear()
		s.term.banner("CATEGORIES MENU")
		s.term.println("Press:")
		s.term.println("\t (A)DD a new category")
		s.term.println("\t (U)PDATE a category name")
		s.term.println("\t (D)ELETE a category (if empty)")
		s.term.println("\t (R)ETURN to previous menu")
		s.term.println()

		choice, err := s.term.promptChoice("What would you like to do?: ")
		if err != nil {
			return err
		}
		switch choice {
		case "a":
			err = s.addCategory(ctx)
		case "u":
			err = s.renameCategory(ctx)
		case "d":
			err = s.removeCategory(ctx)
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

// listCategories prints the current categories and returns them.
func (s *Shell) listCategories(ctx context.Context) ([]core.Category, error) {
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return cats, nil
	}
	s.term.println("ID \tCategory")
	for _, c := range cats {
		s.term.printf("%d\t%s\n", c.ID, c.Name)
	}
	return cats, nil
}

// addCategory creates a new category with a user-chosen ID. The store is
// the authority on uniqueness; the shell just re-prompts on conflicts.
func (s *Shell) addCategory(ctx context.Context) error {
	s.term.clear()
	s.term.banner("ADD A NEW CATEGORY")
	s.term.println("Current Categories:")
	s.term.println()

	cats, err := s.listCategories(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	if len(cats) == 0 {
		s.term.println("There are no current categories.")
	}
	s.term.println()

	for {
		catID, err := s.promptNewCategoryID(ctx, cats)
		if err != nil {
			return err
		}
		catName, err := s.promptNewCategoryName(cats)
		if err != nil {
			return err
		}

		cerr := s.store.CreateCategory(ctx, core.Category{ID: catID, Name: catName})
		switch {
		case cerr == nil:
			s.logger.InfoContext(ctx, "category created", log.FieldCategoryID, catID)
			s.term.println()
			s.term.println("New Category Created")
			s.term.println("Here is the new list of Categories:")
			s.term.println()
			if _, err := s.listCategories(ctx); err != nil {
				return s.storeTrouble(ctx, "list categories", err)
			}
			s.term.println()
			s.term.pause()
			s.term.clear()
			return nil
		case errors.Is(cerr, core.ErrDuplicateCategoryID):
			s.term.println("That ID is not valid. Please try again.")
			s.term.println("Valid category IDs are between 1000 and 9999 and cannot have been already used")
		case errors.Is(cerr, core.ErrDuplicateCategoryName):
			s.term.println("That is not a valid Category Name. Please try again.")
		default:
			return s.storeTrouble(ctx, "create category", cerr)
		}
	}
}

func (s *Shell) promptNewCategoryID(ctx context.Context, existing []core.Category) (int64, error) {
	for {
		raw, err := s.term.prompt("Please enter a new Category ID between 1000 and 9999: ")
		if err != nil {
			return 0, err
		}
		id, perr := validate.CategoryID(raw)
		if perr == nil && !categoryIDTaken(existing, id) {
			return id, nil
		}
		s.term.println("That ID is not valid. Please try again.")
		s.term.println("Valid category IDs are between 1000 and 9999 and cannot have been already used")
	}
}

func (s *Shell) promptNewCategoryName(existing []core.Category) (string, error) {
	for {
		raw, err := s.term.prompt("Please enter a name for the new Category: ")
		if err != nil {
			return "", err
		}
		name, perr := validate.CategoryName(raw)
		if perr == nil && !categoryNameTaken(existing, name) {
			return name, nil
		}
		s.term.println("That is not a valid Category Name. Please try again.")
	}
}

// renameCategory changes an existing category's name.
func (s *Shell) renameCategory(ctx context.Context) error {
	s.term.clear()
	s.term.banner("UPDATE A CATEGORY")
	s.term.println("Current Categories:")

	cats, err := s.listCategories(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	if len(cats) == 0 {
		s.term.println("There are no categories available.")
		s.term.println("Return to the previous menu and use (A)DD to add a Category")
		s.term.println()
		s.term.pause()
		return nil
	}
	s.term.println()

	catID, err := s.promptExistingCategory(cats,
		"What is the Category ID you wish to update?: ",
		"This is not a valid Category ID. Please try again.")
	if err != nil {
		return err
	}
	newName, err := s.promptNewCategoryName(cats)
	if err != nil {
		return err
	}

	rerr := s.store.RenameCategory(ctx, catID, newName)
	switch {
	case rerr == nil:
		s.logger.InfoContext(ctx, "category renamed", log.FieldCategoryID, catID)
	case errors.Is(rerr, core.ErrDuplicateCategoryName):
		s.term.println("That is not a valid category name. Please try again.")
		return nil
	default:
		return s.storeTrouble(ctx, "rename category", rerr)
	}

	s.term.println()
	s.term.println("Category Name Updated")
	s.term.println()
	s.term.println("Here is the updated list of Categories:")
	s.term.println()
	if _, err := s.listCategories(ctx); err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	s.term.println()
	s.term.pause()
	s.term.clear()
	return nil
}

// removeCategory deletes a category that no transaction references.
func (s *Shell) removeCategory(ctx context.Context) error {
	s.term.clear()
	s.term.banner("DELETE A CATEGORY")
	s.term.println("Current Categories:")

	cats, err := s.listCategories(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	s.term.println()
	if len(cats) == 0 {
		s.term.println("There are no Categories to Delete.")
		s.term.println()
		s.term.pause()
		return nil
	}

	catID, err := s.promptExistingCategory(cats,
		"What is the Category ID you wish to delete?: ",
		"This is not a valid Category ID. Please try again.")
	if err != nil {
		return err
	}

	derr := s.store.DeleteCategory(ctx, catID)
	switch {
	case derr == nil:
		s.logger.InfoContext(ctx, "category deleted", log.FieldCategoryID, catID)
		s.term.println("Category Deleted successfully")
	case errors.Is(derr, core.ErrCategoryInUse):
		s.term.println()
		s.term.println("You cannot delete that Category - there are expense transactions associated with it.")
		s.term.println("The administrator will first need to delete all the existing transactions from all users.")
		s.term.println()
		s.term.pause()
		return nil
	default:
		return s.storeTrouble(ctx, "delete category", derr)
	}

	s.term.println()
	if _, err := s.listCategories(ctx); err != nil {
		return s.storeTrouble(ctx, "list categories", err)
	}
	s.term.println()
	s.term.pause()
	s.term.clear()
	return nil
}

func categoryIDTaken(cats []core.Category, id int64) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}

func categoryNameTaken(cats []core.Category, name string) bool {
	for _, c := range cats {
		if c.Name == name {
			return true
		}
	}
	return false
}
