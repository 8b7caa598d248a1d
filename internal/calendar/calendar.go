package calendar

import "time"

// 节假日儒略日计数的固定纪元，换算是精确的，不需要任何校准
var jdnEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const millisPerDay = 86_400_000

// DateFromJDN 把儒略日计数换算成日历日期：epoch + jdn * 86,400,000 毫秒
func DateFromJDN(jdn int64) time.Time {
	return jdnEpoch.Add(time.Duration(jdn) * millisPerDay * time.Millisecond)
}

// AnchorStrategy 返回解码序列中最后一项对应的日期
//
// 主排班的日期没有完全自描述的锚点，默认策略只是一个启发式假设，
// 知道真实参考日期的调用方应当用 AnchorAt 替换它。
type AnchorStrategy func(length int) time.Time

// AnchorToday 默认锚定策略：假设序列最后一项对应解析当天（UTC）
func AnchorToday(length int) time.Time {
	return Midnight(time.Now().UTC())
}

// AnchorAt 用已知的参考日期锚定序列最后一项
func AnchorAt(ref time.Time) AnchorStrategy {
	day := Midnight(ref.UTC())
	return func(length int) time.Time {
		return day
	}
}

// Midnight 截断到当天零点
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Calibrate 按锚定策略给长度为 n 的序列算出逐项日期
// 最后一项取锚定日期，往前每项回退一天
func Calibrate(n int, anchor AnchorStrategy) []time.Time {
	if n <= 0 {
		return nil
	}
	if anchor == nil {
		anchor = AnchorToday
	}

	last := anchor(n)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = last.AddDate(0, 0, -(n - 1 - i))
	}

	return dates
}
