package parser

import "strings"

const sectionMarker = "SECT="

// 文档中会被消费的小节名
const (
	SectionStaff    = "staff"
	SectionService  = "service"
	SectionSchedule = "xln"
	SectionHoliday  = "holiday"
)

// SplitSections 把整个文档按行首的 SECT=<name> 标记切分成若干命名小节
// 每个小节的内容从标记行的下一行开始，到下一个标记或文档末尾为止
// 缺失的小节在结果中没有对应的键，调用方按空内容处理，这不是错误
func SplitSections(doc string) map[string]string {
	sections := make(map[string]string)

	pos := 0
	for {
		markerIdx := indexAtLineStart(doc, sectionMarker, pos)
		if markerIdx < 0 {
			break
		}

		// 标记行的剩余部分是小节名
		lineEnd := strings.IndexByte(doc[markerIdx:], '\n')
		if lineEnd < 0 {
			// 标记行就是最后一行，小节内容为空
			name := strings.TrimSpace(doc[markerIdx+len(sectionMarker):])
			if name != "" {
				sections[name] = ""
			}
			break
		}
		lineEnd += markerIdx

		name := strings.TrimSpace(doc[markerIdx+len(sectionMarker) : lineEnd])
		bodyStart := lineEnd + 1

		nextMarker := indexAtLineStart(doc, sectionMarker, bodyStart)
		bodyEnd := len(doc)
		if nextMarker >= 0 {
			bodyEnd = nextMarker
		}

		if name != "" {
			sections[name] = doc[bodyStart:bodyEnd]
		}

		if nextMarker < 0 {
			break
		}
		pos = nextMarker
	}

	return sections
}

// indexAtLineStart 从 from 开始查找出现在行首的 needle，找不到时返回 -1
//
// 查找过程会跳过 <...> 内嵌字节块的内容：块里的字节值完全可能恰好组成
// 换行加标记的样子（比如 0x0A 'N' 'A' 'M' 'E' '='），不能让它们参与任何
// 切分。找不到结束定界符的 < 按普通字符处理，这样被截断的块只影响它
// 自己所在的那条记录。
func indexAtLineStart(s, needle string, from int) int {
	i := from
	for i < len(s) {
		if s[i] == blockOpen {
			if end := strings.IndexByte(s[i+1:], blockClose); end >= 0 {
				i += end + 2
				continue
			}
		}
		if (i == 0 || s[i-1] == '\n') && strings.HasPrefix(s[i:], needle) {
			return i
		}
		i++
	}
	return -1
}
