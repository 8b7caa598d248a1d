package domain

// ServiceType 服务记录的类型代码
type ServiceType string

const (
	ServiceTypeService   ServiceType = "service"
	ServiceTypeSpecial   ServiceType = "special"
	ServiceTypeComposite ServiceType = "composite"
)

// 导出文档中服务记录 TYPE 字段的原始取值
const (
	RawServiceTypeService   int64 = 0
	RawServiceTypeSpecial   int64 = 1
	RawServiceTypeComposite int64 = 2
)

func ServiceTypeFromRaw(raw int64) ServiceType {
	switch raw {
	case RawServiceTypeSpecial:
		return ServiceTypeSpecial
	case RawServiceTypeComposite:
		return ServiceTypeComposite
	default:
		return ServiceTypeService
	}
}

type Service struct {
	// SeqID 是文档内部的序号 id，解码排班字节流时的连接键
	SeqID int64 `json:"seqID"`
	// UniqID 是外部唯一 id，不参与字节流解码
	UniqID int64       `json:"uniqID"`
	Name   string      `json:"name"`
	Type   ServiceType `json:"type"`
	// ParentSeqID 指向上级服务，没有上级时为 nil
	ParentSeqID *int64 `json:"parentSeqID,omitempty"`
	// BeginQuarter / EndQuarter 以一刻钟为单位表示班次的起止时间
	BeginQuarter *int32 `json:"beginQuarter,omitempty"`
	EndQuarter   *int32 `json:"endQuarter,omitempty"`
}
