// Package strings provides string helpers for user-facing messages.
package strings

import "strconv"

// Pluralize returns word for a count of one and word+"s" otherwise.
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// Count formats count followed by word in the matching form, e.g.
// "1 row" or "6 rows".
func Count(count int, word string) string {
	return strconv.Itoa(count) + " " + Pluralize(word, count)
}
