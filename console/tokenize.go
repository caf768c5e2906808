/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package console

import "unicode"

// Tokenize splits line on whitespace. A double-quoted run is one token with
// the quotes removed; inside quotes \" is a literal quote. An unterminated
// quote extends to the end of the line.
func Tokenize(line string) []string {
	var (
		tokens  []string
		current []rune
		inQuote bool
		started bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			current = append(current, '"')
			i++
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && unicode.IsSpace(r):
			if started {
				tokens = append(tokens, string(current))
				current = current[:0]
				started = false
			}
		default:
			current = append(current, r)
			started = true
		}
	}
	if started {
		tokens = append(tokens, string(current))
	}
	return tokens
}
