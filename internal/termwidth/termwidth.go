// Package termwidth reports the usable width of the output terminal.
package termwidth

import (
	"os"

	"golang.org/x/term"

	"github.com/Dicklesworthstone/acctop/internal/errors"
)

// DefaultWidth is used whenever the real width cannot be determined,
// e.g. when stdout is piped to a file.
const DefaultWidth = 80

// Provider reports the current terminal width in columns.
type Provider interface {
	Width() (int, error)
}

// fdProvider queries the size of a file descriptor.
type fdProvider struct {
	fd int
}

// Stdout returns a Provider backed by the process's standard output.
func Stdout() Provider {
	return fdProvider{fd: int(os.Stdout.Fd())}
}

func (p fdProvider) Width() (int, error) {
	w, _, err := term.GetSize(p.fd)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrTerminal,
			"terminal size unavailable",
			"Output is not attached to a terminal; using the default width.")
	}
	if w <= 0 {
		return 0, errors.New(errors.ErrTerminal, "terminal reported zero width", "")
	}
	return w, nil
}

// Fixed is a Provider that always reports the same width. The full-screen
// view uses it with the size delivered by the window-size message.
type Fixed int

func (f Fixed) Width() (int, error) {
	if f <= 0 {
		return 0, errors.New(errors.ErrTerminal, "no width reported yet", "")
	}
	return int(f), nil
}

// Or returns p's width, or fallback if p is nil or fails. The error
// reports why the fallback was used.
func Or(p Provider, fallback int) (int, error) {
	if p == nil {
		return fallback, nil
	}
	w, err := p.Width()
	if err != nil {
		return fallback, err
	}
	return w, nil
}
