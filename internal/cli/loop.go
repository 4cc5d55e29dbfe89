package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxLineBytes bounds one input line. Longer lines are rejected and the
// session continues.
const MaxLineBytes = 1 << 20

var errLineTooLong = fmt.Errorf("line longer than %d bytes", MaxLineBytes)

// RunLines reads commands from r until quit or EOF, echoing a prompt and
// a separator through the session's printer. It returns the first fatal
// error.
func RunLines(r io.Reader, s *Session) error {
	br := bufio.NewReader(r)
	out := s.p.Writer()
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, errLineTooLong) {
			s.fail(&Error{Kind: MalformedCommand, Err: err})
			s.p.Line(separator)
			continue
		}
		if err != nil {
			return &Error{Kind: IO, Err: fmt.Errorf("read input: %w", err)}
		}

		quit, err := s.Exec(line)
		if IsFatal(err) {
			return err
		}
		if quit {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			s.p.Line(separator)
		}
	}
}

// readLine returns the next line without its terminator. An over-long line
// is consumed whole and reported as errLineTooLong. io.EOF is returned only
// when no bytes remain.
func readLine(br *bufio.Reader) (string, error) {
	var b strings.Builder
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (b.Len() > 0 || tooLong) {
				break
			}
			return "", err
		}
		if !tooLong {
			if b.Len()+len(chunk) > MaxLineBytes {
				tooLong = true
				b.Reset()
			} else {
				b.Write(chunk)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return b.String(), nil
}
