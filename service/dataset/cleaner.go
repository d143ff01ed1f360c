/*
 * @module service/dataset/cleaner
 * @description 数据清洗器，按方法枚举分发执行填充、去重、离群值处理、标准化和分类编码
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 清洗请求 -> 方法分发 -> 就地修改内存表 -> 返回结果与警告
 * @rules 失败模式统一为"不操作+警告"，任何清洗方法都不返回中止性错误
 * @dependencies datacleaner-service/service/models, github.com/spf13/cast
 * @refs service/dataset/detector, service/dataset/service
 */

package dataset

import (
	"fmt"

	"datacleaner-service/service/models"

	"github.com/spf13/cast"
)

// Cleaner 数据清洗器
type Cleaner struct{}

// NewCleaner 创建数据清洗器实例
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Apply 对指定列执行一种清洗方法，就地修改表并返回结果
// 表级方法（remove_duplicates）忽略列参数
func (c *Cleaner) Apply(table *models.Table, column string, method models.CleanMethod) *models.CleanResult {
	result := &models.CleanResult{}

	if !models.IsValidCleanMethod(method) {
		return noop(result, "不支持的清洗方法: %s", method)
	}

	if method == models.MethodRemoveDuplicates {
		c.removeDuplicates(table, result)
		return result
	}

	idx := table.ColumnIndex(column)
	if idx < 0 {
		return noop(result, "列不存在: %s", column)
	}
	col := &table.Columns[idx]

	switch method {
	case models.MethodImputeMean:
		c.imputeMean(col, result)
	case models.MethodImputeMedian:
		c.imputeMedian(col, result)
	case models.MethodImputeMode:
		c.imputeMode(col, result)
	case models.MethodDropMissingRows:
		c.dropMissingRows(table, idx, result)
	case models.MethodDropColumn:
		c.dropColumn(table, idx, result)
	case models.MethodRemoveOutliers:
		c.removeOutliers(table, idx, result)
	case models.MethodCapOutliers:
		c.capOutliers(col, result)
	case models.MethodStandardize:
		c.standardize(col, result)
	case models.MethodOneHotEncode:
		c.oneHotEncode(table, idx, result)
	case models.MethodLabelEncode:
		c.labelEncode(col, result)
	}

	return result
}

// noop 记录警告并保持表不变
func noop(result *models.CleanResult, format string, args ...interface{}) *models.CleanResult {
	result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	return result
}

// requireNumeric 校验数值列前置条件
func requireNumeric(col *models.Column, result *models.CleanResult) bool {
	if col.Kind != models.ColumnKindNumeric {
		noop(result, "列 '%s' 不是数值列，无法执行该方法", col.Name)
		return false
	}
	return true
}

// requireCategorical 校验分类列前置条件
func requireCategorical(col *models.Column, result *models.CleanResult) bool {
	if col.Kind != models.ColumnKindCategorical {
		noop(result, "列 '%s' 不是分类列，无法执行该方法", col.Name)
		return false
	}
	return true
}

// imputeMean 均值填充缺失值
func (c *Cleaner) imputeMean(col *models.Column, result *models.CleanResult) {
	if !requireNumeric(col, result) {
		return
	}
	values := numericValues(col)
	if len(values) == 0 {
		noop(result, "列 '%s' 全部缺失，均值无定义，保持不变", col.Name)
		return
	}
	fillMissing(col, formatNumeric(mean(values)))
	result.Applied = true
}

// imputeMedian 中位数填充缺失值
func (c *Cleaner) imputeMedian(col *models.Column, result *models.CleanResult) {
	if !requireNumeric(col, result) {
		return
	}
	values := numericValues(col)
	if len(values) == 0 {
		noop(result, "列 '%s' 全部缺失，中位数无定义，保持不变", col.Name)
		return
	}
	fillMissing(col, formatNumeric(median(values)))
	result.Applied = true
}

// imputeMode 众数填充缺失值，平局取首次出现的值
func (c *Cleaner) imputeMode(col *models.Column, result *models.CleanResult) {
	value, ok := modeValue(col)
	if !ok {
		noop(result, "列 '%s' 全部缺失，众数无定义，保持不变", col.Name)
		return
	}
	fillMissing(col, value)
	result.Applied = true
}

// fillMissing 将列中所有缺失单元格替换为指定值
func fillMissing(col *models.Column, value string) {
	for i := range col.Cells {
		if col.Cells[i].Missing {
			col.Cells[i] = models.Cell{Value: value}
		}
	}
}

// dropMissingRows 删除该列缺失值所在的整行
func (c *Cleaner) dropMissingRows(table *models.Table, idx int, result *models.CleanResult) {
	col := &table.Columns[idx]
	keep := make([]int, 0, len(col.Cells))
	for i := range col.Cells {
		if !col.Cells[i].Missing {
			keep = append(keep, i)
		}
	}
	keepRows(table, keep)
	result.Applied = true
}

// dropColumn 删除整列，会话内不可逆
func (c *Cleaner) dropColumn(table *models.Table, idx int, result *models.CleanResult) {
	table.Columns = append(table.Columns[:idx], table.Columns[idx+1:]...)
	result.Applied = true
}

// removeDuplicates 删除整行重复的后续出现，保留首次出现
func (c *Cleaner) removeDuplicates(table *models.Table, result *models.CleanResult) {
	rows := table.RowCount()
	seen := make(map[string]bool, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := table.RowKey(i)
		if !seen[key] {
			seen[key] = true
			keep = append(keep, i)
		}
	}
	keepRows(table, keep)
	result.Applied = true
}

// removeOutliers 删除该列Tukey围栏之外的值所在行
// 围栏在删除前一次性计算；缺失单元格不视为离群值，其所在行保留
func (c *Cleaner) removeOutliers(table *models.Table, idx int, result *models.CleanResult) {
	col := &table.Columns[idx]
	if !requireNumeric(col, result) {
		return
	}
	values := numericValues(col)
	if len(values) == 0 {
		noop(result, "列 '%s' 没有可用数值，保持不变", col.Name)
		return
	}
	lower, upper := tukeyFences(values)

	keep := make([]int, 0, len(col.Cells))
	for i, cell := range col.Cells {
		if cell.Missing {
			keep = append(keep, i)
			continue
		}
		v := cast.ToFloat64(cell.Value)
		if v >= lower && v <= upper {
			keep = append(keep, i)
		}
	}
	keepRows(table, keep)
	result.Applied = true
}

// capOutliers 将围栏之外的值截断到最近的围栏边界，不删除行
func (c *Cleaner) capOutliers(col *models.Column, result *models.CleanResult) {
	if !requireNumeric(col, result) {
		return
	}
	values := numericValues(col)
	if len(values) == 0 {
		noop(result, "列 '%s' 没有可用数值，保持不变", col.Name)
		return
	}
	lower, upper := tukeyFences(values)

	for i := range col.Cells {
		if col.Cells[i].Missing {
			continue
		}
		v := cast.ToFloat64(col.Cells[i].Value)
		if v < lower {
			col.Cells[i].Value = formatNumeric(lower)
		} else if v > upper {
			col.Cells[i].Value = formatNumeric(upper)
		}
	}
	result.Applied = true
}

// standardize 标准化为零均值单位方差，使用样本标准差
func (c *Cleaner) standardize(col *models.Column, result *models.CleanResult) {
	if !requireNumeric(col, result) {
		return
	}
	values := numericValues(col)
	std := sampleStdDev(values)
	if std == 0 {
		noop(result, "列 '%s' 方差为零，无法标准化，保持不变", col.Name)
		return
	}
	m := mean(values)

	for i := range col.Cells {
		if col.Cells[i].Missing {
			continue
		}
		v := cast.ToFloat64(col.Cells[i].Value)
		col.Cells[i].Value = formatNumeric((v - m) / std)
	}
	result.Applied = true
}

// oneHotEncode 独热编码：按首次出现顺序为每个非缺失取值生成一个指示列
// 指示列在原列位置插入，命名为 原列名_取值，缺失行各指示列均为0
func (c *Cleaner) oneHotEncode(table *models.Table, idx int, result *models.CleanResult) {
	col := &table.Columns[idx]
	if !requireCategorical(col, result) {
		return
	}

	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for _, cell := range col.Cells {
		if cell.Missing || seen[cell.Value] {
			continue
		}
		seen[cell.Value] = true
		distinct = append(distinct, cell.Value)
	}
	if len(distinct) == 0 {
		noop(result, "列 '%s' 全部缺失，无法编码，保持不变", col.Name)
		return
	}

	used := make(map[string]bool, len(table.Columns))
	for _, name := range table.ColumnNames() {
		used[name] = true
	}

	encoded := make([]models.Column, 0, len(distinct))
	for _, value := range distinct {
		name := indicatorName(col.Name, value, used)
		used[name] = true
		indicator := models.Column{
			Name:  name,
			Kind:  models.ColumnKindNumeric,
			Cells: make([]models.Cell, len(col.Cells)),
		}
		for i, cell := range col.Cells {
			if !cell.Missing && cell.Value == value {
				indicator.Cells[i] = models.Cell{Value: "1"}
			} else {
				indicator.Cells[i] = models.Cell{Value: "0"}
			}
		}
		encoded = append(encoded, indicator)
	}

	columns := make([]models.Column, 0, len(table.Columns)-1+len(encoded))
	columns = append(columns, table.Columns[:idx]...)
	columns = append(columns, encoded...)
	columns = append(columns, table.Columns[idx+1:]...)
	table.Columns = columns
	result.Applied = true
}

// indicatorName 生成不与现有列冲突的指示列名
func indicatorName(column, value string, used map[string]bool) string {
	name := column + "_" + value
	if !used[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !used[candidate] {
			return candidate
		}
	}
}

// labelEncode 标签编码：按首次出现顺序分配整数编码
// 编码不保证在行序不同的重新上传之间稳定；缺失单元格保持缺失
func (c *Cleaner) labelEncode(col *models.Column, result *models.CleanResult) {
	if !requireCategorical(col, result) {
		return
	}

	codes := make(map[string]int)
	next := 0
	applied := false
	for i := range col.Cells {
		if col.Cells[i].Missing {
			continue
		}
		code, ok := codes[col.Cells[i].Value]
		if !ok {
			code = next
			codes[col.Cells[i].Value] = code
			next++
		}
		col.Cells[i].Value = cast.ToString(code)
		applied = true
	}
	if !applied {
		noop(result, "列 '%s' 全部缺失，无法编码，保持不变", col.Name)
		return
	}
	col.Kind = models.ColumnKindNumeric
	result.Applied = true
}

// keepRows 只保留指定行索引，跨所有列保持行数不变式
func keepRows(table *models.Table, keep []int) {
	for c := range table.Columns {
		cells := make([]models.Cell, 0, len(keep))
		for _, i := range keep {
			cells = append(cells, table.Columns[c].Cells[i])
		}
		table.Columns[c].Cells = cells
	}
}
