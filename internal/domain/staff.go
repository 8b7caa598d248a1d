package domain

// StaffType 人员记录的类型代码
type StaffType string

const (
	StaffTypeStaff     StaffType = "staff"    // 普通人员
	StaffTypeProvider  StaffType = "provider" // 医疗提供者
	StaffTypeComposite StaffType = "composite"
)

// 导出文档中人员记录 TYPE 字段的原始取值
const (
	RawStaffTypeStaff     int64 = 0
	RawStaffTypeProvider  int64 = 1
	RawStaffTypeComposite int64 = 2
)

// StaffTypeFromRaw 把记录中的原始类型代码映射为枚举
// 未知代码一律按普通人员处理
func StaffTypeFromRaw(raw int64) StaffType {
	switch raw {
	case RawStaffTypeProvider:
		return StaffTypeProvider
	case RawStaffTypeComposite:
		return StaffTypeComposite
	default:
		return StaffTypeStaff
	}
}

type StaffMember struct {
	// SeqID 是文档内部的序号 id，也是字节流解码时唯一合法的连接键
	SeqID int64 `json:"seqID"`
	// UniqID 是外部唯一 id，和 SeqID 是两个不同的标识，绝不能混用
	UniqID int64     `json:"uniqID"`
	Name   string    `json:"name"`
	Abbrev string    `json:"abbrev"`
	Type   StaffType `json:"type"`
	Pager  *string   `json:"pager,omitempty"`
	Phone  *string   `json:"phone,omitempty"`
	Email  *string   `json:"email,omitempty"`
}
