// Package promptx implements the operator prompts used before destructive
// maintenance tasks and for the token command.
package promptx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/authmaint/internal/common"
)

// Test seams for terminal interaction.
var (
	readPassword = term.ReadPassword
	isTerminal   = func(r io.Reader) bool {
		f, ok := r.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

// Confirm asks the operator to type "yes" before a destructive task runs.
// With assumeYes set the prompt is skipped. When r is not an interactive
// terminal the task is refused: non-interactive runs must pass -y explicitly.
func Confirm(r io.Reader, w io.Writer, what string, assumeYes bool) error {
	if assumeYes {
		return nil
	}

	if !isTerminal(r) {
		return fmt.Errorf("%w: refusing to run %q without -y on a non-interactive stdin", common.ErrorAborted, what)
	}

	fmt.Fprintf(w, "About to %s. This cannot be undone.\nType 'yes' to proceed: ", what)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", common.ErrorAborted, err)
	}
	if strings.TrimSpace(line) != "yes" {
		return common.ErrorAborted
	}

	return nil
}

// GetPassword prints a password prompt to w and reads a password from the
// operator's terminal without echo. A newline is printed after the read to
// keep the output tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
