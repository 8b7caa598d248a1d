package codec

import (
	"bytes"
	"fmt"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
)

// ZeroOverridePolicy 补丁负载中零值字节的解释策略
//
// 现有证据无法确定零值到底表示“沿用基础轮换”还是“明确置空”，
// 所以两种行为都实现为可选策略，默认取不抹掉基础数据的保守解释，
// 并在结果中留下警告而不是悄悄选一种。
type ZeroOverridePolicy string

const (
	// ZeroInherit 零值字节沿用基础轮换在该位置的值（默认）
	ZeroInherit ZeroOverridePolicy = "inherit"
	// ZeroReplace 零值字节把该天明确置空
	ZeroReplace ZeroOverridePolicy = "replace"
)

// OverlayOptions 叠加补丁时的可配置参数
type OverlayOptions struct {
	// WeekCalibration 周偏移校准常数：calibratedWeek = weekOffsetByte + WeekCalibration
	// 这个常数是经验校准出来的，不能写死，要先用已知正确的班表验证
	WeekCalibration int
	ZeroPolicy      ZeroOverridePolicy
}

// ScanPatches 在字节区间内扫描所有补丁块
//
// 每个块以标记对 (252, 7) 开头，接着是周偏移字节和分隔字节，负载一直延伸到
// 下一个标记字节或流的末尾。分隔字节非零的块不是真正的补丁（是其他内嵌元数据），
// 要跳过。
func ScanPatches(data []byte) []domain.Patch {
	var patches []domain.Patch

	i := 0
	for i < len(data) {
		if data[i] != domain.PatchMarker {
			i++
			continue
		}
		if i+3 >= len(data) || data[i+1] != domain.PatchMarkerArg {
			i++
			continue
		}

		weekOffset := data[i+2]
		separator := data[i+3]

		payloadStart := i + 4
		end := bytes.IndexByte(data[payloadStart:], domain.PatchMarker)
		if end < 0 {
			end = len(data)
		} else {
			end += payloadStart
		}

		if separator == 0 {
			days := make([]byte, end-payloadStart)
			copy(days, data[payloadStart:end])
			patches = append(patches, domain.Patch{
				RawWeekOffset: weekOffset,
				Days:          days,
			})
		}

		i = end
	}

	return patches
}

// CalibratePatches 返回带校准周偏移的补丁副本，不修改调用方的切片
func CalibratePatches(patches []domain.Patch, calibration int) []domain.Patch {
	calibrated := make([]domain.Patch, len(patches))
	for i, p := range patches {
		days := make([]byte, len(p.Days))
		copy(days, p.Days)
		calibrated[i] = domain.Patch{
			RawWeekOffset: p.RawWeekOffset,
			Week:          int(p.RawWeekOffset) + calibration,
			Days:          days,
		}
	}
	return calibrated
}

// Overlay 把基础轮换平铺到所需天数后按文件顺序叠加所有补丁
//
// 基础序列按模长度循环平铺；每个补丁先用校准常数算出绝对周偏移，再把负载
// 逐天覆盖到 startDay = week*7 起的位置上，越界的天数直接丢弃；后出现的补丁
// 覆盖先出现的（last-write-wins）。days 为 0 时取基础序列的自然长度。
// 传入的 patches 不会被修改。
func Overlay(base []byte, patches []domain.Patch, days int, opts OverlayOptions) ([]byte, []domain.Warning) {
	if len(base) == 0 {
		return []byte{}, nil
	}
	if days <= 0 {
		days = len(base)
	}
	if opts.ZeroPolicy == "" {
		opts.ZeroPolicy = ZeroInherit
	}

	out := make([]byte, days)
	for d := range out {
		out[d] = base[d%len(base)]
	}

	var warnings []domain.Warning

	for _, p := range CalibratePatches(patches, opts.WeekCalibration) {
		startDay := p.Week * 7

		zeroSeen := false
		for d, v := range p.Days {
			pos := startDay + d
			if pos < 0 || pos >= len(out) {
				// 补丁绝不能越过基础排班数组的边界
				continue
			}

			if v == 0 {
				zeroSeen = true
				if opts.ZeroPolicy == ZeroInherit {
					continue
				}
				out[pos] = domain.SentinelEmpty
				continue
			}

			out[pos] = v
		}

		if zeroSeen {
			warnings = append(warnings, domain.Warning{
				Code: domain.WarnZeroOverride,
				Message: fmt.Sprintf(
					"第 %d 周的补丁负载中含有零值字节，按 %s 策略处理，其语义在格式中并不确定",
					p.Week, opts.ZeroPolicy,
				),
			})
		}
	}

	return out, warnings
}
