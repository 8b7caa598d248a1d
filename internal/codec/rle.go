package codec

import (
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
)

const (
	// 字节块开头固定跳过的头部字节数
	rleHeaderLen = 2
	// 合法游程计数的上限，超出即视为数据损坏
	maxRunLength = 50
)

// Decoded RLE 展开的结果
type Decoded struct {
	// Base 基础轮换序列，每个字节对应一天
	Base []byte
	// Patches 基础序列之后扫描出来的所有补丁块，按文件顺序排列
	Patches []domain.Patch
	// Resyncs 解码过程中因计数越界而跳字节重新同步的次数
	Resyncs int
}

// Decode 展开一个字节块的 RLE 编码
//
// 跳过两字节头部后按 (count, value) 对读取：计数在 1~50 之间时输出 count 个
// value；计数越界说明数据损坏，向前滑动一个字节重新同步而不是中止；遇到保留
// 标记对 (252, 7) 时结束线性展开，剩余部分交给补丁扫描。
//
// 记录头部的方向标志为负时，字节流按最新在前排列，展开后要先反转再做日期校准。
func Decode(block *domain.RawByteBlock) *Decoded {
	d := &Decoded{
		Base: make([]byte, 0, len(block.Data)),
	}

	data := block.Data
	i := rleHeaderLen
	if i > len(data) {
		i = len(data)
	}

	for i+1 < len(data) {
		count, value := data[i], data[i+1]

		if count == domain.PatchMarker && value == domain.PatchMarkerArg {
			break
		}

		if count == 0 || count > maxRunLength {
			// 计数越界，跳一个字节重新同步，流的剩余部分还能继续解码
			i++
			d.Resyncs++
			continue
		}

		for j := 0; j < int(count); j++ {
			d.Base = append(d.Base, value)
		}
		i += 2
	}

	d.Patches = ScanPatches(data[i:])

	if block.Direction < 0 {
		reverse(d.Base)
	}

	return d
}

// Encode 把展开后的序列重新压缩成 (count, value) 对，不含头部与补丁
// 游程最长 50，与解码端的计数上限一致
func Encode(seq []byte) []byte {
	out := make([]byte, 0, len(seq))

	i := 0
	for i < len(seq) {
		value := seq[i]
		n := 1
		for i+n < len(seq) && seq[i+n] == value && n < maxRunLength {
			n++
		}
		out = append(out, byte(n), value)
		i += n
	}

	return out
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
