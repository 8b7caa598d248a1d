package parser

import (
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
)

// 记录的起始字段，小节内容在每个行首的 NAME= 处切分出一条记录
const recordMarker = "NAME="

// 扁平记录中的字段键
// SEQ 是文档内部的序号 id（字节流解码的连接键），UNIQ 是外部唯一 id
// 这两个字段含义完全不同，解码排班时只能用 SEQ
const (
	fieldSeqID   = "SEQ"
	fieldUniqID  = "UNIQ"
	fieldAbbrev  = "ABBR"
	fieldType    = "TYPE"
	fieldPager   = "PAGER"
	fieldPhone   = "PHONE"
	fieldEmail   = "EMAIL"
	fieldParent  = "PARENT"
	fieldBegin   = "BEGIN"
	fieldEnd     = "END"
	fieldHoliday = "DAY"
)

// SplitRecords 把小节内容在行首的 NAME= 处切分成若干条记录
// 每条记录都以自己的 NAME= 行开头
func SplitRecords(body string) []string {
	var records []string

	start := indexAtLineStart(body, recordMarker, 0)
	for start >= 0 {
		next := indexAtLineStart(body, recordMarker, start+len(recordMarker))
		end := len(body)
		if next >= 0 {
			end = next
		}
		records = append(records, body[start:end])
		start = next
	}

	return records
}

// recordName 返回记录 NAME= 行的内容
func recordName(record string) string {
	value, _ := fieldString(record, "NAME")
	return value
}

// fieldString 在记录中查找行首的 KEY=value 字段，返回去除首尾空白后的值
func fieldString(record, key string) (string, bool) {
	idx := indexAtLineStart(record, key+"=", 0)
	if idx < 0 {
		return "", false
	}
	valueStart := idx + len(key) + 1
	valueEnd := strings.IndexByte(record[valueStart:], '\n')
	if valueEnd < 0 {
		valueEnd = len(record)
	} else {
		valueEnd += valueStart
	}
	return strings.TrimSpace(record[valueStart:valueEnd]), true
}

// fieldInt 解析整数字段，字段缺失或内容不是数字时一律取 0
func fieldInt(record, key string) int64 {
	value, ok := fieldString(record, key)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// fieldStringPtr 解析可选字符串字段，缺失或为空时返回 nil 而不是哨兵值
func fieldStringPtr(record, key string) *string {
	value, ok := fieldString(record, key)
	if !ok || value == "" {
		return nil
	}
	return &value
}

// fieldIntPtr 解析可选整数字段，缺失时返回 nil
func fieldIntPtr(record, key string) *int64 {
	value, ok := fieldString(record, key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseStaffSection 解析人员小节，聚合类型的记录不会进入人员表
func ParseStaffSection(body string) []*domain.StaffMember {
	staff := make([]*domain.StaffMember, 0)

	for _, record := range SplitRecords(body) {
		rawType := fieldInt(record, fieldType)
		if rawType == domain.RawStaffTypeComposite {
			// 聚合记录只承载排班字节块，不是真实人员
			continue
		}

		abbrev, _ := fieldString(record, fieldAbbrev)
		staff = append(staff, &domain.StaffMember{
			SeqID:  fieldInt(record, fieldSeqID),
			UniqID: fieldInt(record, fieldUniqID),
			Name:   recordName(record),
			Abbrev: abbrev,
			Type:   domain.StaffTypeFromRaw(rawType),
			Pager:  fieldStringPtr(record, fieldPager),
			Phone:  fieldStringPtr(record, fieldPhone),
			Email:  fieldStringPtr(record, fieldEmail),
		})
	}

	return staff
}

// ParseServiceSection 解析服务小节，聚合类型的记录同样被跳过
func ParseServiceSection(body string) []*domain.Service {
	services := make([]*domain.Service, 0)

	for _, record := range SplitRecords(body) {
		rawType := fieldInt(record, fieldType)
		if rawType == domain.RawServiceTypeComposite {
			continue
		}
		services = append(services, parseServiceRecord(record))
	}

	return services
}

// ParseServiceRecord 把一条记录按服务的字段结构解析出来
// 排班小节中的聚合记录也用这个结构来描述自己所属的服务
func ParseServiceRecord(record string) *domain.Service {
	return parseServiceRecord(record)
}

func parseServiceRecord(record string) *domain.Service {
	svc := &domain.Service{
		SeqID:       fieldInt(record, fieldSeqID),
		UniqID:      fieldInt(record, fieldUniqID),
		Name:        recordName(record),
		Type:        domain.ServiceTypeFromRaw(fieldInt(record, fieldType)),
		ParentSeqID: fieldIntPtr(record, fieldParent),
	}

	if q := fieldIntPtr(record, fieldBegin); q != nil {
		begin := int32(*q)
		svc.BeginQuarter = &begin
	}
	if q := fieldIntPtr(record, fieldEnd); q != nil {
		end := int32(*q)
		svc.EndQuarter = &end
	}

	return svc
}

// ParseHolidaySection 解析节假日小节
// 日期由 DAY 字段中的儒略日计数从固定纪元换算得到
func ParseHolidaySection(body string) []*domain.Holiday {
	holidays := make([]*domain.Holiday, 0)

	for _, record := range SplitRecords(body) {
		jdn := fieldInt(record, fieldHoliday)
		holidays = append(holidays, &domain.Holiday{
			Date: calendar.DateFromJDN(jdn),
			JDN:  jdn,
			Type: int32(fieldInt(record, fieldType)),
			Name: recordName(record),
		})
	}

	return holidays
}
