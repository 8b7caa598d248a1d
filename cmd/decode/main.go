package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/importer"
)

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

	opts, err := importer.OptionsFromConfig(cfg)
	if err != nil {
		logger.Error("解析参数不合法", "error", err)
		return
	}

	/**********************************************
	 * 读入导出文件
	 **********************************************/
	if len(os.Args) < 2 {
		logger.Error("用法: decode <导出文件>")
		return
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("无法读取导出文件", "path", os.Args[1], "error", err)
		return
	}

	/**********************************************
	 * 解码
	 **********************************************/
	result, err := importer.ParseBytes(raw, opts)
	if err != nil {
		logger.Error("无法解码导出文档", "error", err)
		return
	}

	logger.Info("解码完成",
		"id", result.ID,
		"staff", len(result.Staff),
		"services", len(result.Services),
		"holidays", len(result.Holidays),
		"assignments", len(result.Schedule),
		"warnings", len(result.Warnings),
	)

	for _, warning := range result.Warnings {
		logger.Warn("解码警告", "code", warning.Code, "record", warning.Record, "message", warning.Message)
	}

	/**********************************************
	 * 输出结果
	 **********************************************/
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("无法输出解码结果", "error", err)
	}
}
