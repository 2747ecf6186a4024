// Package command splits an exec command line into arguments.
package command

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmpty = errors.New("empty command")

// Parse splits s on spaces. Single and double quotes group characters into
// one argument and may be mixed with unquoted text (`a"b c"d` is `ab cd`);
// inside quotes a backslash escapes the quote character or a backslash.
func Parse(s string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inArg   bool
	)

	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		case '"', '\'':
			end, err := readQuoted(s, i, &current)
			if err != nil {
				return nil, err
			}
			i = end
			inArg = true
		default:
			current.WriteByte(c)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}

	if len(args) == 0 {
		return nil, ErrEmpty
	}
	return args, nil
}

// readQuoted consumes the quoted section opening at s[start] into sb and
// returns the index of its closing quote.
func readQuoted(s string, start int, sb *strings.Builder) (int, error) {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return i, nil
		case c == '\\' && i+1 < len(s) && (s[i+1] == quote || s[i+1] == '\\'):
			sb.WriteByte(s[i+1])
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return 0, fmt.Errorf("unterminated %c quote at position %d", quote, start)
}
