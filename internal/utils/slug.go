package utils

import (
	"math/rand"
	"strings"
	"unicode"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandString 生成指定长度的随机小写字符串
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

// Slugify 把标题转成 URL slug，附 6 位随机后缀保证唯一
func Slugify(title string) string {
	var b strings.Builder
	prevDash := true // 抑制开头的 '-'
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "article"
	}
	if len(slug) > 80 {
		slug = slug[:80]
	}
	return slug + "-" + RandString(6)
}
