package node

import (
	"regexp"
	"strings"
)

// 元数据回退提取：当抽取模型调用失败时，对原始对话文本做尽力而为的
// 正则提取。启发式规则整理为有序数据表，便于单独调整和测试。

var (
	githubURLRe  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w.-]+/[\w.-]+`)
	devpostURLRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?devpost\.com/software/[\w.-]+`)
)

// ExtractGithubURL 提取第一个 GitHub 仓库链接（归一化为 https）
func ExtractGithubURL(text string) string {
	return normalizeURL(githubURLRe.FindString(text))
}

// ExtractDevpostURL 提取第一个 Devpost 链接（归一化为 https）
func ExtractDevpostURL(text string) string {
	return normalizeURL(devpostURLRe.FindString(text))
}

func normalizeURL(u string) string {
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(u), "http") {
		return "https://" + u
	}
	return u
}

// ongoingKeywords 进行中状态关键词（小写）
var ongoingKeywords = []string{
	"ongoing",
	"currently",
	"still working",
	"in progress",
	"work in progress",
	"present",
}

// DetectOngoing 判断文本是否暗示项目/经历仍在进行
func DetectOngoing(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range ongoingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// locationRules 地点类型关键词规则，按优先级排列
var locationRules = []struct {
	keywords []string
	value    string
}{
	{[]string{"remote", "work from home", "wfh"}, "REMOTE"},
	{[]string{"hybrid"}, "HYBRID"},
	{[]string{"onsite", "on-site", "on site", "in office", "in-office"}, "ONSITE"},
}

// DetectLocationType 判断工作地点类型，未命中返回空串
func DetectLocationType(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range locationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.value
			}
		}
	}
	return ""
}
