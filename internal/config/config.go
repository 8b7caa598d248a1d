package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Decoder     struct {
		// PatchWeekOffset 补丁周偏移的校准常数，取值要先用已知正确的班表验证
		PatchWeekOffset int `env:"PATCH_WEEK_OFFSET" envDefault:"0"`
		// ZeroOverridePolicy 补丁负载中零值字节的解释策略：inherit 或 replace
		ZeroOverridePolicy string `env:"ZERO_OVERRIDE_POLICY" envDefault:"inherit"`
		// ReferenceDate 序列最后一项对应的真实日期（RFC3339），留空时假设为解析当天
		ReferenceDate string `env:"REFERENCE_DATE"`
		// ScheduleDays 排班展开的天数，0 表示取解码序列的自然长度
		ScheduleDays int `env:"SCHEDULE_DAYS" envDefault:"0"`
	} `envPrefix:"ROSTER_DECODER_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
