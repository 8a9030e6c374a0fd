package render

import "strings"

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func bullet(s string) string {
	return "• " + s
}
