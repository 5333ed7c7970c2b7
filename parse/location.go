package parse

import "strings"

// SplitLocation splits a free-text location into street and city on the
// first comma. Without a usable comma the whole trimmed string is the
// street and city is empty.
func SplitLocation(s string) (street, city string) {
	if strings.TrimSpace(s) == "" {
		return "", ""
	}
	left, right, found := strings.Cut(s, ",")
	if found {
		if r := strings.TrimSpace(right); r != "" {
			return strings.TrimSpace(left), r
		}
	}
	return strings.TrimSpace(s), ""
}
