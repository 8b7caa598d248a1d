package domain

import "time"

// AssignmentSlot 某一天排班中的一个人员位置（主班或副班）
type AssignmentSlot struct {
	// RawID 是解码出来的原始字节值，始终保留以便审计
	RawID byte `json:"rawID"`
	// StaffSeqID 解析成功时指向人员表中的序号 id，否则为 nil
	StaffSeqID *int64  `json:"staffSeqID,omitempty"`
	StaffName  *string `json:"staffName,omitempty"`
	// Unresolved 表示该 id 在人员表中不存在，但记录不会被丢弃
	Unresolved bool `json:"unresolved,omitempty"`
}

type ScheduleAssignment struct {
	Date         time.Time `json:"date"`
	ServiceSeqID int64     `json:"serviceSeqID"`
	ServiceName  string    `json:"serviceName"`
	// Primary 为 nil 时表示当天主班为空（哨兵值 0 或 250）
	Primary *AssignmentSlot `json:"primary,omitempty"`
	// Secondary 是拆分班次的副班位置，独立解析
	Secondary *AssignmentSlot `json:"secondary,omitempty"`
	IsEmpty   bool            `json:"isEmpty"`
}
