package models

import "strings"

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
