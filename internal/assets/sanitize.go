package assets

import (
	"regexp"
	"strings"
)

// AllowedExtensions 是图片类目录接受的扩展名（小写、无点）。
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"pdf":  {},
	"docx": {},
	"txt":  {},
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Allowed 报告 name 的扩展名是否在 AllowedExtensions 中。
func Allowed(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	_, ok := AllowedExtensions[strings.ToLower(name[i+1:])]
	return ok
}

// SanitizeName 去掉路径分隔与不安全字符，结果只包含 [A-Za-z0-9._-]，且不以点或下划线开头。
func SanitizeName(name string) string {
	// 先把反斜杠统一成斜杠，再把路径分隔当作空白，防止目录穿越。
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(name, "/", " ")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}
