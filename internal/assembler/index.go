package assembler

import (
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/utils"
)

// Indexes 供下游协作方使用的查找结构
// 随每次解析结果一起返回，生命周期和结果相同
type Indexes struct {
	StaffBySeq   map[int64]*domain.StaffMember `json:"-"`
	ServiceBySeq map[int64]*domain.Service     `json:"-"`
	// StaffByContact 以归一化后的纯数字联系方式（呼机或电话）为键
	StaffByContact map[string]*domain.StaffMember `json:"-"`
	// StaffByName 以归一化后的人名（汉字转拼音）为键
	StaffByName map[string]*domain.StaffMember `json:"-"`
}

// BuildIndexes 从人员表和服务表构建查找结构
func BuildIndexes(staff []*domain.StaffMember, services []*domain.Service) *Indexes {
	idx := &Indexes{
		StaffBySeq:     make(map[int64]*domain.StaffMember),
		ServiceBySeq:   make(map[int64]*domain.Service),
		StaffByContact: make(map[string]*domain.StaffMember),
		StaffByName:    make(map[string]*domain.StaffMember),
	}

	for _, m := range staff {
		idx.StaffBySeq[m.SeqID] = m

		if m.Pager != nil {
			if key := utils.NormalizeContact(*m.Pager); key != "" {
				idx.StaffByContact[key] = m
			}
		}
		if m.Phone != nil {
			if key := utils.NormalizeContact(*m.Phone); key != "" {
				idx.StaffByContact[key] = m
			}
		}

		if key := utils.NormalizeName(m.Name); key != "" {
			idx.StaffByName[key] = m
		}
	}

	for _, s := range services {
		idx.ServiceBySeq[s.SeqID] = s
	}

	return idx
}
