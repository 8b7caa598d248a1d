package domain

import "time"

type Holiday struct {
	Date time.Time `json:"date"`
	// JDN 是从 2000-01-01 纪元起算的儒略日计数
	JDN  int64  `json:"jdn"`
	Type int32  `json:"type"`
	Name string `json:"name"`
}
