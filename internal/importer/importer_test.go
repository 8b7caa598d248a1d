package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/codec"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/domain"
	"github.com/sysu-ecnc-dev/roster-importer/backend/internal/importer"
)

// blobString 把字节序列编码成文档中的单字节码点串
func blobString(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// fixtureDocument 一份最小但完整的导出文档
//
// 排班字节块：两字节头部，基础轮换 (3,11)(4,12) 展开成 7 天，
// 之后是一个第 0 周、覆盖第 0 天为 12 的补丁块。
func fixtureDocument() string {
	blob := []byte{0, 0, 3, 11, 4, 12, 252, 7, 0, 0, 12}

	return "SECT=staff\n" +
		"NAME=张伟\nSEQ=11\nUNIQ=5001\nABBR=ZW\nTYPE=0\nPHONE=(212) 555-0100\n" +
		"NAME=李娜\nSEQ=12\nUNIQ=5002\nABBR=LN\nTYPE=0\nPAGER=83021\n" +
		"SECT=service\n" +
		"NAME=总值班\nSEQ=40\nUNIQ=7001\nTYPE=0\nBEGIN=32\nEND=68\n" +
		"SECT=xln\n" +
		"NAME=总值班\nSEQ=40\nUNIQ=7001\nTYPE=2\n" +
		"ROW = 0 7 1 1 1 <" + blobString(blob) + ">\n" +
		"SECT=holiday\n" +
		"NAME=元旦\nDAY=9000\nTYPE=1\n"
}

func fixtureOptions() importer.Options {
	ref := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	opts := importer.DefaultOptions()
	opts.ReferenceDate = &ref
	opts.ScheduleDays = 7
	return opts
}

func TestParse(t *testing.T) {
	result, err := importer.Parse(fixtureDocument(), fixtureOptions())

	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.ID.String())

	require.Len(t, result.Staff, 2)
	require.Len(t, result.Services, 1)
	require.Len(t, result.Holidays, 1)
	require.Len(t, result.Schedule, 7)
	assert.Empty(t, result.Warnings)

	// 基础轮换是 11 11 11 12 12 12 12，第 0 周的补丁把第 0 天覆盖成 12
	assert.Equal(t, "李娜", *result.Schedule[0].Primary.StaffName)
	assert.Equal(t, "张伟", *result.Schedule[1].Primary.StaffName)
	assert.Equal(t, "张伟", *result.Schedule[2].Primary.StaffName)
	assert.Equal(t, "李娜", *result.Schedule[3].Primary.StaffName)

	// 最后一项锚定在参考日期，往前逐天回退
	assert.True(t, result.Schedule[6].Date.Equal(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, result.Schedule[0].Date.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))

	// 排班记录连接到服务表中的记录
	assert.Equal(t, int64(40), result.Schedule[0].ServiceSeqID)
	assert.Equal(t, "总值班", result.Schedule[0].ServiceName)

	// 节假日用固定纪元换算，精确无校准
	assert.True(t, result.Holidays[0].Date.Equal(time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC)))

	// 按日期取当天的排班
	onDay := result.AssignmentsOn(time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC))
	require.Len(t, onDay, 1)
	assert.Equal(t, "李娜", *onDay[0].Primary.StaffName)

	// 查找结构随结果一起返回
	require.NotNil(t, result.Indexes)
	assert.Equal(t, result.Staff[0], result.Indexes.StaffBySeq[11])
	assert.Equal(t, result.Staff[0], result.Indexes.StaffByContact["2125550100"])
	assert.Equal(t, result.Staff[1], result.Indexes.StaffByName["lina"])
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := importer.Parse("", importer.DefaultOptions())
	assert.ErrorIs(t, err, importer.ErrEmptyDocument)
}

func TestParse_InvalidOptions(t *testing.T) {
	opts := importer.DefaultOptions()
	opts.ZeroOverridePolicy = "bogus"

	_, err := importer.Parse(fixtureDocument(), opts)
	assert.Error(t, err)
}

func TestParse_NoStaffSection(t *testing.T) {
	// 缺失人员小节时得到空表，而不是错误
	result, err := importer.Parse("SECT=service\nNAME=总值班\nSEQ=40\n", importer.DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, result.Staff)
	assert.Len(t, result.Services, 1)
}

func TestParse_UnterminatedBlobSkipsOnlyThatRecord(t *testing.T) {
	// 文件在第二条排班记录的字节块中间被截断，只放弃这一条，
	// 前面的记录照常解析
	doc := "SECT=staff\n" +
		"NAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"SECT=xln\n" +
		"NAME=好记录\nSEQ=42\nTYPE=2\nROW = 0 7 1 1 1 <" + blobString([]byte{0, 0, 2, 11}) + ">\n" +
		"NAME=坏记录\nSEQ=41\nTYPE=2\nROW = 0 7 1 1 1 <" + blobString([]byte{0, 0, 2, 11})

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.WarnUnterminatedBlob, result.Warnings[0].Code)

	require.Len(t, result.Schedule, 2)
	for _, a := range result.Schedule {
		assert.Equal(t, int64(42), a.ServiceSeqID)
	}
}

func TestParse_BlobWithMarkerLookalikeBytes(t *testing.T) {
	// 字节块里完全可能出现 0x0A 'N' 'A' 'M' 'E' '=' 这样的字节序列
	// （游程 (10, 78) 后面跟着 65 77 69 61），它们不能把记录从块中间切开
	blob := []byte{0, 0, 2, 11, 10, 'N', 'A', 'M', 'E', '=', 2, 11}
	doc := "SECT=staff\n" +
		"NAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"SECT=xln\n" +
		"NAME=总值班\nSEQ=40\nTYPE=2\nROW = 0 14 1 1 1 <" + blobString(blob) + ">\n"

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	for _, w := range result.Warnings {
		assert.NotEqual(t, domain.WarnUnterminatedBlob, w.Code)
	}

	// 整个块都解码了：2 天 11，10 天 78，游程 65 起重同步，最后又 2 天 11
	require.Len(t, result.Schedule, 14)
	require.NotNil(t, result.Schedule[0].Primary)
	assert.Equal(t, "张伟", *result.Schedule[0].Primary.StaffName)
	require.NotNil(t, result.Schedule[13].Primary)
	assert.Equal(t, "张伟", *result.Schedule[13].Primary.StaffName)
}

func TestParse_SentinelsSurfaceAsEmpty(t *testing.T) {
	// 哨兵值永远不会被解析成人员名字
	blob := []byte{0, 0, 1, 11, 1, 0, 1, 250, 1, 255}
	doc := "SECT=staff\nNAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"SECT=xln\nNAME=总值班\nSEQ=40\nTYPE=2\nROW = 0 4 1 1 1 <" + blobString(blob) + ">\n"

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Schedule, 4)

	assert.False(t, result.Schedule[0].IsEmpty)
	assert.True(t, result.Schedule[1].IsEmpty)
	assert.True(t, result.Schedule[2].IsEmpty)
	assert.True(t, result.Schedule[3].IsEmpty)
	require.NotNil(t, result.Schedule[3].Primary)
	assert.Equal(t, byte(255), result.Schedule[3].Primary.RawID)
	assert.Nil(t, result.Schedule[3].Primary.StaffName)
}

func TestParse_SecondaryRow(t *testing.T) {
	primary := []byte{0, 0, 2, 11}
	secondary := []byte{0, 0, 2, 12}
	doc := "SECT=staff\n" +
		"NAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"NAME=李娜\nSEQ=12\nUNIQ=5002\nTYPE=0\n" +
		"SECT=xln\nNAME=总值班\nSEQ=40\nTYPE=2\n" +
		"ROW = 0 2 1 1 1 <" + blobString(primary) + ">\n" +
		"SPID = 0 2 1 1 1 <" + blobString(secondary) + ">\n"

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Schedule, 2)
	assert.Equal(t, "张伟", *result.Schedule[0].Primary.StaffName)
	require.NotNil(t, result.Schedule[0].Secondary)
	assert.Equal(t, "李娜", *result.Schedule[0].Secondary.StaffName)
}

func TestParse_ZeroOverrideWarning(t *testing.T) {
	// 补丁负载中出现零值时结果要带上歧义警告
	blob := []byte{0, 0, 3, 11, 252, 7, 0, 0, 0, 12}
	doc := "SECT=staff\nNAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"SECT=xln\nNAME=总值班\nSEQ=40\nTYPE=2\nROW = 0 3 1 1 1 <" + blobString(blob) + ">\n"

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.WarnZeroOverride, result.Warnings[0].Code)
	assert.Equal(t, "总值班", result.Warnings[0].Record)
}

func TestParse_ReferentialTransparency(t *testing.T) {
	// 相同的输入必须产生相同的输出（关联 id 除外）
	opts := fixtureOptions()

	first, err := importer.Parse(fixtureDocument(), opts)
	require.NoError(t, err)
	second, err := importer.Parse(fixtureDocument(), opts)
	require.NoError(t, err)

	assert.Equal(t, first.Staff, second.Staff)
	assert.Equal(t, first.Services, second.Services)
	assert.Equal(t, first.Holidays, second.Holidays)
	assert.Equal(t, first.Schedule, second.Schedule)
}

func TestParseBytes_SingleByteDecoding(t *testing.T) {
	// 原始字节按 ISO 8859-1 解码，高位字节必须无损进入字节块
	blob := []byte{0, 0, 2, 200}
	raw := append([]byte("SECT=staff\nNAME=A\nSEQ=200\nUNIQ=5001\nTYPE=0\n"+
		"SECT=xln\nNAME=B\nSEQ=40\nTYPE=2\nROW = 0 2 1 1 1 <"), blob...)
	raw = append(raw, '>', '\n')

	result, err := importer.ParseBytes(raw, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Schedule, 2)
	require.NotNil(t, result.Schedule[0].Primary)
	assert.Equal(t, byte(200), result.Schedule[0].Primary.RawID)
	assert.Equal(t, "A", *result.Schedule[0].Primary.StaffName)
}

func TestParse_NewestFirstDirection(t *testing.T) {
	// 方向为负的字节流按最新在前排列，展开后先反转再定日期
	blob := []byte{0, 0, 1, 11, 2, 12}
	doc := "SECT=staff\n" +
		"NAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"NAME=李娜\nSEQ=12\nUNIQ=5002\nTYPE=0\n" +
		"SECT=xln\nNAME=总值班\nSEQ=40\nTYPE=2\nROW = 0 3 -1 1 1 <" + blobString(blob) + ">\n"

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Schedule, 3)
	// 原始展开是 11 12 12，反转后是 12 12 11
	assert.Equal(t, "李娜", *result.Schedule[0].Primary.StaffName)
	assert.Equal(t, "李娜", *result.Schedule[1].Primary.StaffName)
	assert.Equal(t, "张伟", *result.Schedule[2].Primary.StaffName)
}

func TestParse_CorruptRunWarning(t *testing.T) {
	blob := []byte{0, 0, 200, 2, 11}
	doc := "SECT=staff\nNAME=张伟\nSEQ=11\nUNIQ=5001\nTYPE=0\n" +
		"SECT=xln\nNAME=总值班\nSEQ=40\nTYPE=2\nROW = 0 2 1 1 1 <" + blobString(blob) + ">\n"

	result, err := importer.Parse(doc, importer.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.WarnCorruptRun, result.Warnings[0].Code)
	require.Len(t, result.Schedule, 2)
}

func TestOptionsDefaults(t *testing.T) {
	opts := importer.DefaultOptions()

	assert.Equal(t, 0, opts.PatchWeekOffset)
	assert.Equal(t, codec.ZeroInherit, opts.ZeroOverridePolicy)
	assert.Nil(t, opts.ReferenceDate)
}
