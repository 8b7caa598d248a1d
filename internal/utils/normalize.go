package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// NormalizeContact 把联系方式归一化成纯数字串
// 例如 "(212) 555-0100" 归一化为 "2125550100"
func NormalizeContact(contact string) string {
	var b strings.Builder
	for _, r := range contact {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName 生成用于索引的人名键
// 汉字转成拼音，字母和数字转成小写，其余字符全部丢弃
func NormalizeName(name string) string {
	var b strings.Builder
	args := pinyin.NewArgs()

	for _, r := range name {
		if unicode.Is(unicode.Han, r) {
			readings := pinyin.SinglePinyin(r, args)
			if len(readings) > 0 {
				b.WriteString(readings[0])
			}
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}
