package domain

// 字节流中的保留哨兵值，它们永远不表示真实的人员或服务 id
const (
	// SentinelEmpty 表示当天没有排班
	SentinelEmpty byte = 0
	// SentinelDisabled 表示该位置被停用，同样按空处理
	SentinelDisabled byte = 250
	// SentinelUnfilled 表示未填班，按空处理但原始值要保留下来
	SentinelUnfilled byte = 255
	// PatchMarker 和 PatchMarkerArg 组成 (252, 7) 标记对，表示补丁块的开始
	PatchMarker    byte = 252
	PatchMarkerArg byte = 7
)

// RawByteBlock 从文本记录中提取出来的内嵌字节块
// 头部五个数字来自引导字段，Data 是定界符之间的原始字节
type RawByteBlock struct {
	Start         int64
	Count         int64
	Direction     int64 // 小于 0 表示字节流按最新在前排列，需要反转
	Increment     int64
	BytesPerEntry int64
	Data          []byte
}

// Patch 一个按周对齐的覆盖块
type Patch struct {
	// RawWeekOffset 是补丁头部中的原始周偏移字节
	RawWeekOffset byte `json:"rawWeekOffset"`
	// Week 是校准后的绝对周偏移，由校准常数算出；扫描阶段尚未校准时为零
	Week int `json:"week"`
	// Days 按天排列的覆盖字节值
	Days []byte `json:"days"`
}
