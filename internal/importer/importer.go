package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/assembler"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/codec"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/parser"
)

// Options 一次解析的可配置参数
// 周偏移校准常数和零值覆盖策略在格式中不是自描述的，必须由调用方配置
type Options struct {
	// PatchWeekOffset 补丁周偏移校准常数：calibratedWeek = weekOffsetByte + PatchWeekOffset
	PatchWeekOffset int `validate:"gte=-255,lte=255"`
	// ZeroOverridePolicy 补丁负载中零值字节的解释策略
	ZeroOverridePolicy codec.ZeroOverridePolicy `validate:"oneof=inherit replace"`
	// ReferenceDate 解码序列最后一项对应的真实日期
	// 为 nil 时退回启发式假设：最后一项对应解析当天
	ReferenceDate *time.Time
	// ScheduleDays 排班展开的天数，0 表示取解码序列的自然长度
	ScheduleDays int `validate:"gte=0,lte=3660"`
}

// DefaultOptions 各个开放问题的文档化默认值
func DefaultOptions() Options {
	return Options{
		PatchWeekOffset:    0,
		ZeroOverridePolicy: codec.ZeroInherit,
		ScheduleDays:       0,
	}
}

// OptionsFromConfig 把环境配置换算成解析参数
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	opts.PatchWeekOffset = cfg.Decoder.PatchWeekOffset
	opts.ZeroOverridePolicy = codec.ZeroOverridePolicy(cfg.Decoder.ZeroOverridePolicy)
	opts.ScheduleDays = cfg.Decoder.ScheduleDays

	if cfg.Decoder.ReferenceDate != "" {
		ref, err := time.Parse(time.RFC3339, cfg.Decoder.ReferenceDate)
		if err != nil {
			return opts, fmt.Errorf("参考日期格式错误: %w", err)
		}
		opts.ReferenceDate = &ref
	}

	return opts, nil
}

// Result 一次解析的全部产物
// 所有实体和查找表都是本次调用新建的，解析器自身不保留任何状态
type Result struct {
	// ID 本次解析的关联 id，用于把日志中的警告和结果对应起来
	ID       uuid.UUID                    `json:"id"`
	Staff    []*domain.StaffMember        `json:"staff"`
	Services []*domain.Service            `json:"services"`
	Holidays []*domain.Holiday            `json:"holidays"`
	Schedule []*domain.ScheduleAssignment `json:"schedule"`
	Warnings []domain.Warning             `json:"warnings"`
	Indexes  *assembler.Indexes           `json:"-"`
}

// AssignmentsOn 取出某一天的全部排班记录
func (r *Result) AssignmentsOn(date time.Time) []*domain.ScheduleAssignment {
	day := calendar.Midnight(date.UTC())

	var assignments []*domain.ScheduleAssignment
	for _, a := range r.Schedule {
		if a.Date.Equal(day) {
			assignments = append(assignments, a)
		}
	}
	return assignments
}

// ErrEmptyDocument 空文档是唯一的硬性前置条件错误
var ErrEmptyDocument = errors.New("文档为空")

// Parse 解码一份排班导出文档
//
// 这是一个纯函数：没有任何 I/O，也不修改共享状态，相同的输入总是产生相同的
// 输出（ID 和依赖解析时刻的默认锚定日期除外）。除了空文档之外的所有问题都按
// 尽力而为处理，单条损坏的记录只会产生警告，不会让整个文档解码失败。
func Parse(document string, opts Options) (*Result, error) {
	if document == "" {
		return nil, ErrEmptyDocument
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("解析参数不合法: %w", err)
	}

	sections := parser.SplitSections(document)

	result := &Result{
		ID:       uuid.New(),
		Staff:    parser.ParseStaffSection(sections[parser.SectionStaff]),
		Services: parser.ParseServiceSection(sections[parser.SectionService]),
		Holidays: parser.ParseHolidaySection(sections[parser.SectionHoliday]),
		Schedule: make([]*domain.ScheduleAssignment, 0),
	}

	asm := assembler.New(result.Staff, result.Services)

	anchor := calendar.AnchorToday
	if opts.ReferenceDate != nil {
		anchor = calendar.AnchorAt(*opts.ReferenceDate)
	}

	overlayOpts := codec.OverlayOptions{
		WeekCalibration: opts.PatchWeekOffset,
		ZeroPolicy:      opts.ZeroOverridePolicy,
	}

	for _, record := range parser.SplitRecords(sections[parser.SectionSchedule]) {
		recordSvc := parser.ParseServiceRecord(record)

		// 服务表里已有同序号的记录时以表中的为准
		svc := recordSvc
		if known, exists := asm.Service(recordSvc.SeqID); exists {
			svc = known
		}

		primary, warnings := decodeRow(record, parser.KeyPrimaryRow, opts.ScheduleDays, overlayOpts, svc.Name)
		result.Warnings = append(result.Warnings, warnings...)
		if primary == nil {
			// 主班字节块缺失或损坏，放弃这一条记录，其余记录继续解析
			continue
		}

		secondary, warnings := decodeRow(record, parser.KeySecondaryRow, len(primary), overlayOpts, svc.Name)
		result.Warnings = append(result.Warnings, warnings...)

		dates := calendar.Calibrate(len(primary), anchor)
		result.Schedule = append(result.Schedule, asm.Assemble(svc, primary, secondary, dates)...)
	}

	result.Indexes = assembler.BuildIndexes(result.Staff, result.Services)

	return result, nil
}

// ParseBytes 先按单字节编码（ISO 8859-1）解码原始字节再解析
// 这个格式依赖 0~255 整个字节范围的精确往返，任何多字节文本解码都是不合法的
func ParseBytes(raw []byte, opts Options) (*Result, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("无法按单字节编码解码文档: %w", err)
	}

	return Parse(string(decoded), opts)
}

// decodeRow 提取并解码一条记录中由 key 引导的排班字节块
// 块不存在时返回 (nil, nil)；块损坏时返回 (nil, 警告)
func decodeRow(record, key string, days int, overlayOpts codec.OverlayOptions, recordName string) ([]byte, []domain.Warning) {
	block, err := parser.ExtractBlock(record, key)
	if err != nil {
		if errors.Is(err, parser.ErrBlockNotFound) {
			return nil, nil
		}
		return nil, []domain.Warning{{
			Code:    domain.WarnUnterminatedBlob,
			Message: err.Error(),
			Record:  recordName,
		}}
	}

	decoded := codec.Decode(block)

	var warnings []domain.Warning
	if decoded.Resyncs > 0 {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnCorruptRun,
			Message: fmt.Sprintf("RLE 流中有 %d 处计数越界，已跳字节重新同步", decoded.Resyncs),
			Record:  recordName,
		})
	}

	expanded, overlayWarnings := codec.Overlay(decoded.Base, decoded.Patches, days, overlayOpts)
	for i := range overlayWarnings {
		overlayWarnings[i].Record = recordName
	}
	warnings = append(warnings, overlayWarnings...)

	if len(expanded) == 0 {
		return nil, warnings
	}

	return expanded, warnings
}
