package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/validate"
)

// saveReport writes a rendered report, under a banner heading and followed
// by the budget standing, to a file in the configured reports directory.
// An existing file with the same name is overwritten.
func (s *Shell) saveReport(ctx context.Context, title, body string) error {
	if err := os.MkdirAll(s.cfg.ReportsDir, 0755); err != nil {
		s.logger.ErrorContext(ctx, "reports directory unavailable", log.FieldError, err)
		s.term.println("The reports folder could not be created. Your report was not saved.")
		return nil
	}

	var filename string
	for {
		raw, err := s.term.prompt("\nEnter a filename for the report: ")
		if err != nil {
			return err
		}
		name, perr := validate.Filename(raw)
		if perr != nil {
			var fe *validate.FieldError
			if errors.As(perr, &fe) {
				s.term.println("\nError: filename " + fe.Reason + ".")
			}
			s.term.println("That is not a valid filename. Please try again.")
			continue
		}
		filename = name
		break
	}

	summary, err := s.budgetSummary(ctx)
	if err != nil {
		return s.storeTrouble(ctx, "budget check", err)
	}

	var sb strings.Builder
	sb.WriteString(rule + "\n")
	pad := (len(rule) - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(body + "\n")
	sb.WriteString("\n" + summary.String() + "\n")

	path := filepath.Join(s.cfg.ReportsDir, filename)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		s.logger.ErrorContext(ctx, "report write failed", log.FieldError, err, log.FieldFilename, filename)
		s.term.println("The report could not be written. Please try again.")
		return nil
	}
	s.logger.InfoContext(ctx, "report saved",
		log.FieldReportTitle, title, log.FieldFilename, filename, log.FieldUserID, s.userID)
	s.term.println("\nYour Report has been written to " + path)
	return nil
}
