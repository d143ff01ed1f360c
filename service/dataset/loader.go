/*
 * @module service/dataset/loader
 * @description 数据集加载器，负责上传字节流的编码识别、CSV解析和列类型推断
 * @architecture 分层架构 - 数据接入层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 原始字节 -> 编码解码 -> CSV解析 -> 类型推断 -> 内存表
 * @rules 解析失败返回ParseError并阻断后续操作，列类型只在加载时推断一次
 * @dependencies golang.org/x/text, github.com/spf13/cast, encoding/csv
 * @refs service/dataset/service, service/models
 */

package dataset

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"datacleaner-service/service/models"

	"github.com/spf13/cast"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Loader 数据集加载器
type Loader struct{}

// NewLoader 创建数据集加载器实例
func NewLoader() *Loader {
	return &Loader{}
}

// missingMarkers 缺失值标记集合，匹配时忽略大小写和首尾空白
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nan":  true,
}

// fallbackEncodings 非UTF-8输入的候选编码，按顺序尝试
var fallbackEncodings = []encoding.Encoding{
	simplifiedchinese.GBK,
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// Load 解析上传的分隔文本字节流，返回带列类型的内存表
func (l *Loader) Load(data []byte) (*models.Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, models.NewParseError("上传内容为空")
	}

	text, err := l.decode(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, models.NewParseError("不是有效的CSV格式: %v", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, models.NewParseError("数据集不包含任何列")
	}

	header := records[0]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, models.NewParseError("列名重复: %s", name)
		}
		seen[name] = true
	}

	table := &models.Table{Columns: make([]models.Column, len(header))}
	for i, name := range header {
		table.Columns[i] = models.Column{
			Name:  name,
			Cells: make([]models.Cell, 0, len(records)-1),
		}
	}

	for _, record := range records[1:] {
		for i := range table.Columns {
			table.Columns[i].Cells = append(table.Columns[i].Cells, parseCell(record[i]))
		}
	}

	for i := range table.Columns {
		table.Columns[i].Kind = inferKind(&table.Columns[i])
	}

	return table, nil
}

// decode 将上传字节流解码为UTF-8文本
// 尝试顺序：UTF-8 -> GBK -> Windows-1252 -> ISO-8859-1
// x/text解码器对非法序列输出替换符而不报错，因此出现替换符视为该编码不匹配
func (l *Loader) decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, enc := range fallbackEncodings {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			continue
		}
		if !bytes.ContainsRune(decoded, utf8.RuneError) {
			return string(decoded), nil
		}
	}

	return "", models.NewParseError("无法识别文件编码")
}

// parseCell 解析单元格原始值，识别缺失值标记
func parseCell(raw string) models.Cell {
	trimmed := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(trimmed)] {
		return models.Cell{Missing: true}
	}
	return models.Cell{Value: trimmed}
}

// inferKind 推断列类型：至少存在一个非缺失值且全部非缺失值可解析为数值时为数值列
func inferKind(col *models.Column) models.ColumnKind {
	hasValue := false
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		hasValue = true
		if _, err := cast.ToFloat64E(cell.Value); err != nil {
			return models.ColumnKindCategorical
		}
	}
	if !hasValue {
		return models.ColumnKindCategorical
	}
	return models.ColumnKindNumeric
}
