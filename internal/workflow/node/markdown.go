package node

import (
	"regexp"
	"strings"
)

// fencedJSONRe 匹配正文中的 ```json 围栏块
var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n\\s*```")

// StripFencedEntityBlock 摘除正文尾部携带 skills/tags 数组的 JSON 围栏块。
// 返回摘除后的正文和围栏块内容；BLOG/编辑输出没有该块属正常情况。
func StripFencedEntityBlock(body string) (string, string) {
	matches := fencedJSONRe.FindAllStringSubmatchIndex(body, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		block := body[m[2]:m[3]]
		if strings.Contains(block, "\"skills\"") || strings.Contains(block, "\"tags\"") {
			clean := body[:m[0]] + body[m[1]:]
			return strings.TrimSpace(clean), strings.TrimSpace(block)
		}
	}
	return strings.TrimSpace(body), ""
}

// preamblePrefixes 模型常见的客套开场白（小写比较）
var preamblePrefixes = []string{
	"here is",
	"here's",
	"here you go",
	"sure,",
	"sure!",
	"certainly",
	"of course",
	"below is",
	"i've created",
	"i have created",
}

// StripPreamble 去掉正文开头的客套开场白行
func StripPreamble(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	for len(lines) > 0 {
		first := strings.ToLower(strings.TrimSpace(lines[0]))
		if first == "" {
			lines = lines[1:]
			continue
		}
		matched := false
		for _, p := range preamblePrefixes {
			if strings.HasPrefix(first, p) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// StripLeadingHeading 去掉正文开头游离的一级标题（标题从不内嵌在正文里）
func StripLeadingHeading(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "# ") {
		return trimmed
	}
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		return strings.TrimSpace(trimmed[idx+1:])
	}
	return ""
}

// DeriveExcerpt 派生摘要：结构化数据里有就用，否则取正文前 200 字符压平加省略号
func DeriveExcerpt(structuredExcerpt, body string) string {
	if e := strings.TrimSpace(structuredExcerpt); e != "" {
		return e
	}
	flat := FlattenNewlines(body)
	if flat == "" {
		return ""
	}
	if len([]rune(flat)) <= 200 {
		return flat
	}
	return TruncateByRunes(flat, 200) + "..."
}
