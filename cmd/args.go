package cmd

import (
	"errors"
	"strings"
)

var ErrUnbalancedQuotes = errors.New("unbalanced quotes in request")

// splitArgs splits a command line into arguments the way redis-cli does.
// Double quoted arguments understand \n \r \t \b \a \\ \" and \xHH escapes,
// single quoted arguments only \'. A closing quote must be followed by a
// space or the end of the line.
func splitArgs(line string) ([]string, error) {
	var argv []string
	p := 0

	for {
		for p < len(line) && isSpace(line[p]) {
			p++
		}
		if p >= len(line) {
			return argv, nil
		}

		var (
			current strings.Builder
			inDQ    bool
			inSQ    bool
			done    bool
		)
		for !done {
			if inDQ {
				if p >= len(line) {
					return nil, ErrUnbalancedQuotes
				}
				switch {
				case line[p] == '\\' && p+3 < len(line) && line[p+1] == 'x' &&
					isHexDigit(line[p+2]) && isHexDigit(line[p+3]):
					current.WriteByte(hexDigitToInt(line[p+2])<<4 | hexDigitToInt(line[p+3]))
					p += 3
				case line[p] == '\\' && p+1 < len(line):
					p++
					switch line[p] {
					case 'n':
						current.WriteByte('\n')
					case 'r':
						current.WriteByte('\r')
					case 't':
						current.WriteByte('\t')
					case 'b':
						current.WriteByte('\b')
					case 'a':
						current.WriteByte('\a')
					default:
						current.WriteByte(line[p])
					}
				case line[p] == '"':
					// closing quote must be followed by a space or nothing at all
					if p+1 < len(line) && !isSpace(line[p+1]) {
						return nil, ErrUnbalancedQuotes
					}
					done = true
				default:
					current.WriteByte(line[p])
				}
			} else if inSQ {
				if p >= len(line) {
					return nil, ErrUnbalancedQuotes
				}
				switch {
				case line[p] == '\\' && p+1 < len(line) && line[p+1] == '\'':
					p++
					current.WriteByte('\'')
				case line[p] == '\'':
					if p+1 < len(line) && !isSpace(line[p+1]) {
						return nil, ErrUnbalancedQuotes
					}
					done = true
				default:
					current.WriteByte(line[p])
				}
			} else {
				if p >= len(line) {
					break
				}
				switch line[p] {
				case ' ', '\n', '\r', '\t', 0:
					done = true
				case '"':
					inDQ = true
				case '\'':
					inSQ = true
				default:
					current.WriteByte(line[p])
				}
			}
			if p < len(line) {
				p++
			}
		}
		argv = append(argv, current.String())
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\n', '\r', '\t', '\v', '\f':
		return true
	}
	return false
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexDigitToInt(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
