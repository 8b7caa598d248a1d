package assembler

import (
	"time"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
)

// Assembler 把解码后的逐日人员 id 序列与人员/服务表连接成排班记录
//
// 连接键只能是文档内部的序号 id（SeqID）。所有查找表都是每次解析时
// 新建的局部结构，不存在任何进程级的共享状态。
type Assembler struct {
	staffBySeq   map[int64]*domain.StaffMember
	serviceBySeq map[int64]*domain.Service
}

func New(staff []*domain.StaffMember, services []*domain.Service) *Assembler {
	a := &Assembler{
		staffBySeq:   make(map[int64]*domain.StaffMember),
		serviceBySeq: make(map[int64]*domain.Service),
	}

	for _, m := range staff {
		a.staffBySeq[m.SeqID] = m
	}
	for _, s := range services {
		a.serviceBySeq[s.SeqID] = s
	}

	return a
}

// Assemble 把某个服务的主班/副班序列按日期组装成排班记录
//
// primary 与 dates 等长；secondary 可以为 nil 或比 primary 短，副班位置
// 独立解析。哨兵值 0 和 250 表示当天为空；255 同样按空处理，但原始值
// 保留下来供审计。查不到的 id 保留原始数字并标记为未解析，不会被丢弃。
func (a *Assembler) Assemble(svc *domain.Service, primary []byte, secondary []byte, dates []time.Time) []*domain.ScheduleAssignment {
	assignments := make([]*domain.ScheduleAssignment, 0, len(primary))

	for i, raw := range primary {
		if i >= len(dates) {
			break
		}

		assignment := &domain.ScheduleAssignment{
			Date:         dates[i],
			ServiceSeqID: svc.SeqID,
			ServiceName:  svc.Name,
		}

		slot, empty := a.resolveSlot(raw)
		assignment.Primary = slot
		assignment.IsEmpty = empty

		if secondary != nil && i < len(secondary) {
			secondarySlot, _ := a.resolveSlot(secondary[i])
			assignment.Secondary = secondarySlot
		}

		assignments = append(assignments, assignment)
	}

	return assignments
}

// resolveSlot 把一个原始字节值解析成排班位置，返回该位置是否为空
func (a *Assembler) resolveSlot(raw byte) (*domain.AssignmentSlot, bool) {
	switch raw {
	case domain.SentinelEmpty, domain.SentinelDisabled:
		return nil, true
	case domain.SentinelUnfilled:
		// 未填班按空处理，但原始值要保留下来
		return &domain.AssignmentSlot{RawID: raw}, true
	}

	if m, exists := a.staffBySeq[int64(raw)]; exists {
		return &domain.AssignmentSlot{
			RawID:      raw,
			StaffSeqID: &m.SeqID,
			StaffName:  &m.Name,
		}, false
	}

	// 人员表里没有这个 id，保留原始数字并标记为未解析
	return &domain.AssignmentSlot{
		RawID:      raw,
		Unresolved: true,
	}, false
}

// Service 按序号 id 查服务，排班小节中的记录不一定在服务表里
func (a *Assembler) Service(seqID int64) (*domain.Service, bool) {
	s, exists := a.serviceBySeq[seqID]
	return s, exists
}
