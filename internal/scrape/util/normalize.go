package util

import (
	"regexp"
	"strings"
)

// jobCodePattern matches internal requisition codes such as "23FA0824"
// (2 digits, 2 uppercase letters, 4 digits) and bare digit runs.
var jobCodePattern = regexp.MustCompile(`^(?:\d{2}[A-Z]{2}\d{4}|\d+)$`)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// LooksLikeJobCode reports whether s is an internal ID rather than a
// human-readable label. The whole string must match.
func LooksLikeJobCode(s string) bool {
	return jobCodePattern.MatchString(s)
}

// JoinLabels cleans each fragment, drops empties and job codes, and joins
// the rest with ", ".
func JoinLabels(fragments []string) string {
	var out []string
	for _, f := range fragments {
		f = CleanText(f)
		if f == "" || LooksLikeJobCode(f) {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, ", ")
}
