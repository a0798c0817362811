package currency

import (
	"strconv"
	"strings"
)

// Currencies written with a dot as the thousands separator.
var dotSeparated = map[string]bool{
	"IDR": true,
	"EUR": true,
	"VND": true,
}

// Format renders a whole-unit amount as "INR 12,500". An empty code leaves out the prefix.
func Format(amount int64, code string) string {
	code = strings.ToUpper(code)

	negative := amount < 0
	if negative {
		amount = -amount
	}

	sep := ","
	if dotSeparated[code] {
		sep = "."
	}
	result := addThousandsSeparator(strconv.FormatInt(amount, 10), sep)

	if code != "" {
		result = code + " " + result
	}
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(n + (n-1)/3)

	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteString(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
