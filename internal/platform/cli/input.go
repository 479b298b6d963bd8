package cli

import (
	"bufio"
	"io"
	"os"
	"unicode"

	"golang.org/x/term"
)

// charReader yields one meaningful character per call.
type charReader interface {
	ReadChar() (rune, error)
}

// newCharReader picks a raw single-key reader for terminals and a
// whitespace-skipping reader for everything else (pipes, files, tests).
func newCharReader(in io.Reader) charReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &rawReader{fd: int(f.Fd()), r: bufio.NewReader(f)}
	}
	return &lineReader{r: bufio.NewReader(in)}
}

// lineReader reads characters from a stream, ignoring whitespace so that
// scripted input like "n r p q q" behaves like individual key presses.
type lineReader struct {
	r *bufio.Reader
}

func (l *lineReader) ReadChar() (rune, error) {
	for {
		ch, _, err := l.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if unicode.IsSpace(ch) {
			continue
		}
		return ch, nil
	}
}

// rawReader switches the terminal to raw mode for the duration of one key
// press, so the player does not have to hit Enter.
type rawReader struct {
	fd int
	r  *bufio.Reader
}

func (t *rawReader) ReadChar() (rune, error) {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return 0, err
	}
	//nolint:errcheck // Best-effort restore, the next read retries raw mode
	defer term.Restore(t.fd, state)

	for {
		ch, _, err := t.r.ReadRune()
		if err != nil {
			return 0, err
		}
		switch ch {
		case 3, 4: // ctrl+c, ctrl+d
			return 0, io.EOF
		case '\r', '\n', ' ', '\t':
			continue
		}
		return ch, nil
	}
}
