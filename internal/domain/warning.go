package domain

type WarningCode string

const (
	// WarnUnterminatedBlob 内嵌字节块没有找到结束定界符，该记录被放弃
	WarnUnterminatedBlob WarningCode = "unterminated_blob"
	// WarnCorruptRun RLE 流中出现越界的计数字节，已跳字节重新同步
	WarnCorruptRun WarningCode = "corrupt_run"
	// WarnZeroOverride 补丁负载中出现零值字节，其语义有歧义，结果依赖所选策略
	WarnZeroOverride WarningCode = "zero_override_ambiguity"
)

// Warning 解码过程中的非致命问题
// 单条记录损坏不会让整个文档解码失败，只会留下对应的警告
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	// Record 指出问题所在记录的名字，文档级问题时为空
	Record string `json:"record,omitempty"`
}
