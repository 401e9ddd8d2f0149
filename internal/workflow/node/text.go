package node

import (
	"strings"
	"unicode/utf8"
)

// TruncateByRunes 按 rune 数截断，保证不切坏多字节字符
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// FlattenNewlines 将换行压平为单个空格
func FlattenNewlines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
