package tools

import (
	"fmt"
	"strings"
)

// SplitArgs splits a raw argument string into argv the way a POSIX shell
// tokenizer would, without ever running one. Unquoted whitespace
// separates tokens, single quotes are fully literal, double quotes honor
// backslash escapes of the quote and the backslash itself, and a quoted
// phrase stays one token. No variable, glob or command expansion of any
// kind happens.
func SplitArgs(s string) ([]string, error) {
	var (
		args []string
		cur  strings.Builder
		have bool // a token is open; distinguishes "" from no token
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			if have {
				args = append(args, cur.String())
				cur.Reset()
				have = false
			}
		case '\'':
			have = true
			j := strings.IndexByte(s[i+1:], '\'')
			if j < 0 {
				return nil, fmt.Errorf("unterminated single quote at offset %d", i)
			}
			cur.WriteString(s[i+1 : i+1+j])
			i += j + 1
		case '"':
			have = true
			start := i
			closed := false
			for i++; i < len(s); i++ {
				c = s[i]
				if c == '"' {
					closed = true
					break
				}
				if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
					i++
					c = s[i]
				}
				cur.WriteByte(c)
			}
			if !closed {
				return nil, fmt.Errorf("unterminated double quote at offset %d", start)
			}
		case '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("trailing backslash")
			}
			i++
			cur.WriteByte(s[i])
			have = true
		default:
			cur.WriteByte(c)
			have = true
		}
	}
	if have {
		args = append(args, cur.String())
	}
	return args, nil
}
