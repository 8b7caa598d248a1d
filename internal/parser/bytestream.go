package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
)

// 引导内嵌字节块的字段：ROW = 为主班，SPID = 为拆分班次的副班
const (
	KeyPrimaryRow   = "ROW ="
	KeySecondaryRow = "SPID ="
)

// 字节块的定界符
const (
	blockOpen  = '<'
	blockClose = '>'
)

// ErrBlockNotFound 表示记录中没有对应的引导字段
var ErrBlockNotFound = errors.New("记录中没有内嵌字节块")

// ErrBlockUnterminated 表示字节块没有结束定界符
// 调用方应当只放弃这一条记录，文档中的其余记录继续解析
var ErrBlockUnterminated = errors.New("内嵌字节块没有结束定界符")

// ExtractBlock 从记录文本中提取 key 引导的内嵌字节块
//
// 引导字段之后是五个数字组成的头部（start count direction increment bytesPerEntry），
// 然后是 < 与 > 之间的原始字节。字节块可能跨越多行，内容中也可能出现看起来像换行
// 的字节值，所以必须逐字节扫描结束定界符，而不能假定块在一行内结束。
//
// 文档是按单字节编码解码出来的，每个码点都小于 0x100，这里按码点到字节的
// 双射关系原样还原，不做任何替换或归一化。
func ExtractBlock(record, key string) (*domain.RawByteBlock, error) {
	// 引导字段必须出现在行首，而且不能落在别的字节块里，
	// 否则主块负载中恰好出现的 SPID 字样会被误认成副块
	keyIdx := indexAtLineStart(record, key, 0)
	if keyIdx < 0 {
		return nil, ErrBlockNotFound
	}

	headStart := keyIdx + len(key)
	openIdx := strings.IndexByte(record[headStart:], blockOpen)
	if openIdx < 0 {
		return nil, ErrBlockUnterminated
	}
	openIdx += headStart

	block := &domain.RawByteBlock{}
	head := strings.Fields(record[headStart:openIdx])
	if len(head) < 5 {
		return nil, fmt.Errorf("字节块头部只有 %d 个数字，应为 5 个", len(head))
	}
	block.Start = headInt(head[0])
	block.Count = headInt(head[1])
	block.Direction = headInt(head[2])
	block.Increment = headInt(head[3])
	block.BytesPerEntry = headInt(head[4])

	data, err := decodeSingleByte(record[openIdx+1:])
	if err != nil {
		return nil, err
	}
	block.Data = data

	return block, nil
}

// headInt 解析头部数字，格式损坏时取 0
func headInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// decodeSingleByte 逐码点扫描到结束定界符，把每个码点还原成一个字节
func decodeSingleByte(s string) ([]byte, error) {
	data := make([]byte, 0, len(s))

	for _, r := range s {
		if r == blockClose {
			return data, nil
		}
		if r > 0xFF {
			return nil, fmt.Errorf("字节块中出现超出单字节范围的码点 U+%04X", r)
		}
		data = append(data, byte(r))
	}

	return nil, ErrBlockUnterminated
}
