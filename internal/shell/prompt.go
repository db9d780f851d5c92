package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/djr812/ExpenseTracker/internal/validate"
)

// terminal wraps the session's input and output streams. Reads always come
// from the bufio reader so that tests can drive the shell with a plain
// strings.Reader.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}

func (t *terminal) println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// readLine returns the next input line with surrounding whitespace removed.
func (t *terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// prompt prints a label and reads one line.
func (t *terminal) prompt(label string) (string, error) {
	t.printf("%s", label)
	return t.readLine()
}

// promptChoice reads a single menu selection, lower-cased.
func (t *terminal) promptChoice(label string) (string, error) {
	raw, err := t.prompt(label)
	if err != nil {
		return "", err
	}
	return strings.ToLower(raw), nil
}

// promptPassword reads a password without echoing when stdin is a real
// terminal. Anywhere else (tests, pipes) it falls back to a plain line read.
func (t *terminal) promptPassword(label string) (string, error) {
	t.printf("%s", label)
	fd := int(os.Stdin.Fd())
	if _, ok := t.out.(*os.File); ok && term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		t.println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return t.readLine()
}

// confirm asks a y/n question until it gets one of the two answers.
func (t *terminal) confirm(label string) (bool, error) {
	for {
		raw, err := t.promptChoice(label)
		if err != nil {
			return false, err
		}
		switch raw {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			t.println("That is not a valid answer. Please try again.")
		}
	}
}

// pause waits for the user to acknowledge what is on screen.
func (t *terminal) pause() {
	t.println("Press Enter to continue...")
	_, _ = t.readLine()
}

// clear wipes the screen with an ANSI escape.
func (t *terminal) clear() {
	t.printf("\x1b[2J\x1b[H")
}

// banner prints a menu heading between two rules.
func (t *terminal) banner(title string) {
	t.println()
	t.println(rule)
	pad := (len(rule) - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	t.println(strings.Repeat(" ", pad) + title)
	t.println(rule)
	t.println()
}

// promptFor keeps asking until the validator accepts the input, printing
// retry after each rejection.
func promptFor[T any](s *Shell, label, retry string, parse func(string) (T, error)) (T, error) {
	for {
		raw, err := s.term.prompt(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, perr := parse(raw)
		if perr != nil {
			s.term.println(retry)
			continue
		}
		return v, nil
	}
}

// promptPasswordFor is promptFor with echo suppressed.
func promptPasswordFor(s *Shell, label, retry string) (string, error) {
	for {
		raw, err := s.term.promptPassword(label)
		if err != nil {
			return "", err
		}
		pwd, perr := validate.Password(raw)
		if perr != nil {
			s.term.println(retry)
			continue
		}
		return pwd, nil
	}
}

// parseUserID accepts the numeric IDs the store hands out.
func parseUserID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
