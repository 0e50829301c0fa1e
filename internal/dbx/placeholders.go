package dbx

import (
	"strconv"
	"strings"
)

// Placeholders renders "$1, $2, ..., $n" for building IN (...) lists.
// Returns an empty string for n <= 0.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		b.WriteString("$")
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}
