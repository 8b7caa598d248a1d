package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/charmap"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/codec"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/parser"
)

// inspect 用来观察导出文件的内部结构：各小节的记录数、字节块大小以及
// 补丁块的原始/校准周偏移。校准常数需要用已知正确的班表来验证，
// 这个工具就是做这件事用的。
func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	/**********************************************
	 * 读入导出文件
	 **********************************************/
	if len(os.Args) < 2 {
		logger.Error("用法: inspect <导出文件>")
		return
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("无法读取导出文件", "path", os.Args[1], "error", err)
		return
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		logger.Error("无法按单字节编码解码文档", "error", err)
		return
	}

	/**********************************************
	 * 输出结构信息
	 **********************************************/
	sections := parser.SplitSections(string(decoded))

	for _, name := range []string{parser.SectionStaff, parser.SectionService, parser.SectionSchedule, parser.SectionHoliday} {
		body, exists := sections[name]
		if !exists {
			fmt.Printf("小节 %-8s 缺失\n", name)
			continue
		}

		records := parser.SplitRecords(body)
		fmt.Printf("小节 %-8s %d 条记录\n", name, len(records))

		if name != parser.SectionSchedule {
			continue
		}

		for _, record := range records {
			inspectScheduleRecord(record, cfg.Decoder.PatchWeekOffset)
		}
	}
}

func inspectScheduleRecord(record string, weekCalibration int) {
	for _, key := range []string{parser.KeyPrimaryRow, parser.KeySecondaryRow} {
		block, err := parser.ExtractBlock(record, key)
		if err != nil {
			if errors.Is(err, parser.ErrBlockNotFound) {
				continue
			}
			fmt.Printf("  %s %s: 字节块损坏: %v\n", recordTitle(record), key, err)
			continue
		}

		decoded := codec.Decode(block)
		fmt.Printf("  %s %s: %d 字节, 基础序列 %d 天, 方向 %d, 重同步 %d 次\n",
			recordTitle(record), key, len(block.Data), len(decoded.Base), block.Direction, decoded.Resyncs)

		for _, patch := range codec.CalibratePatches(decoded.Patches, weekCalibration) {
			fmt.Printf("    补丁: 原始周偏移 %d, 校准后第 %d 周, %d 天负载\n",
				patch.RawWeekOffset, patch.Week, len(patch.Days))
		}
	}
}

func recordTitle(record string) string {
	svc := parser.ParseServiceRecord(record)
	if svc.Name == "" {
		return fmt.Sprintf("记录 #%d", svc.SeqID)
	}
	return svc.Name
}
