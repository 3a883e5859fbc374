package repository_test

import (
	"errors"
	"strings"
)

// scanLiterals reads consecutive standard SQL string literals separated by
// ", " and returns their decoded values and the unread remainder.
func scanLiterals(s string) ([]string, string, error) {
	var out []string
	for {
		if !strings.HasPrefix(s, "'") {
			return out, s, nil
		}
		var sb strings.Builder
		i := 1
		closed := false
		for i < len(s) {
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					sb.WriteByte('\'')
					i += 2
					continue
				}
				closed = true
				i++
				break
			}
			sb.WriteByte(s[i])
			i++
		}
		if !closed {
			return nil, "", errors.New("unterminated literal")
		}
		out = append(out, sb.String())
		s = s[i:]
		if strings.HasPrefix(s, ", '") {
			s = s[2:]
		}
	}
}

// scanTuples parses "(lit, lit), (lit, lit)" into rows of decoded values.
func scanTuples(s string) ([][]string, error) {
	var rows [][]string
	for len(s) > 0 {
		if !strings.HasPrefix(s, "(") {
			return nil, errors.New("expected tuple start")
		}
		values, rest, err := scanLiterals(s[1:])
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(rest, ")") {
			return nil, errors.New("expected tuple end")
		}
		rows = append(rows, values)
		s = strings.TrimPrefix(rest[1:], ", ")
	}
	return rows, nil
}
