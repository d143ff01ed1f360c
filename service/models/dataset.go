/*
 * @module service/models/dataset
 * @description 数据集核心模型，定义内存表结构、列类型、清洗方法枚举和相关请求响应结构
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 上传创建 -> 清洗操作就地修改 -> 导出序列化
 * @rules 所有列长度必须一致（行数不变式），列类型在加载时推断一次后不再变化
 * @dependencies 无第三方依赖，纯数据结构定义
 * @refs service/dataset, service/session
 */

package models

import (
	"fmt"
	"time"
)

// ColumnKind 列类型
type ColumnKind string

const (
	// ColumnKindNumeric 数值列：所有非缺失单元格都可解析为浮点数
	ColumnKindNumeric ColumnKind = "numeric"
	// ColumnKindCategorical 分类列：包含至少一个非数值单元格，或全部缺失
	ColumnKindCategorical ColumnKind = "categorical"
)

// Cell 表格单元格，缺失标记与任何有效值互斥
type Cell struct {
	Value   string `json:"value"`
	Missing bool   `json:"missing,omitempty"`
}

// Column 命名列，类型在加载时推断并固定
type Column struct {
	Name  string     `json:"name"`
	Kind  ColumnKind `json:"kind"`
	Cells []Cell     `json:"cells"`
}

// Table 内存数据表，列有序且等长
type Table struct {
	Columns []Column `json:"columns"`
}

// RowCount 返回行数
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount 返回列数
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnIndex 按名称查找列索引，未找到返回-1
func (t *Table) ColumnIndex(name string) int {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames 返回按顺序排列的列名
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// RowKey 返回第i行的唯一键，用于整行重复判定
func (t *Table) RowKey(i int) string {
	key := ""
	for c := range t.Columns {
		cell := t.Columns[c].Cells[i]
		if cell.Missing {
			key += "\x00\x01"
		} else {
			key += "\x00" + cell.Value
		}
	}
	return key
}

// CleanMethod 清洗方法枚举
type CleanMethod string

const (
	MethodImputeMean       CleanMethod = "impute_mean"       // 均值填充缺失值（数值列）
	MethodImputeMedian     CleanMethod = "impute_median"     // 中位数填充缺失值（数值列）
	MethodImputeMode       CleanMethod = "impute_mode"       // 众数填充缺失值（任意列）
	MethodDropMissingRows  CleanMethod = "drop_missing_rows" // 删除该列缺失值所在行
	MethodDropColumn       CleanMethod = "drop_column"       // 删除整列
	MethodRemoveDuplicates CleanMethod = "remove_duplicates" // 删除整行重复（表级）
	MethodRemoveOutliers   CleanMethod = "remove_outliers"   // 删除离群值所在行（数值列）
	MethodCapOutliers      CleanMethod = "cap_outliers"      // 离群值截断到围栏边界（数值列）
	MethodStandardize      CleanMethod = "standardize"       // 标准化为零均值单位方差（数值列）
	MethodOneHotEncode     CleanMethod = "one_hot_encode"    // 独热编码（分类列）
	MethodLabelEncode      CleanMethod = "label_encode"      // 标签编码（分类列）
)

// AllCleanMethods 所有清洗方法，顺序固定
var AllCleanMethods = []CleanMethod{
	MethodImputeMean,
	MethodImputeMedian,
	MethodImputeMode,
	MethodDropMissingRows,
	MethodDropColumn,
	MethodRemoveDuplicates,
	MethodRemoveOutliers,
	MethodCapOutliers,
	MethodStandardize,
	MethodOneHotEncode,
	MethodLabelEncode,
}

// IsValidCleanMethod 判断方法名是否合法
func IsValidCleanMethod(method CleanMethod) bool {
	for _, m := range AllCleanMethods {
		if m == method {
			return true
		}
	}
	return false
}

// ParseError 数据集解析错误，上传阶段唯一的中止性错误
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("数据集解析失败: %s", e.Reason)
}

// NewParseError 创建解析错误
func NewParseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// ColumnIssue 单列质量问题描述符，按需计算不做存储
type ColumnIssue struct {
	Column       string     `json:"column"`
	Kind         ColumnKind `json:"kind"`
	MissingCount int        `json:"missing_count"`
	OutlierCount int        `json:"outlier_count"`
}

// IssueReport 数据质量检测报告
type IssueReport struct {
	Columns       []ColumnIssue `json:"columns"`
	DuplicateRows int           `json:"duplicate_rows"`
}

// HasIssues 判断报告中是否存在任何质量问题
func (r *IssueReport) HasIssues() bool {
	if r.DuplicateRows > 0 {
		return true
	}
	for _, c := range r.Columns {
		if c.MissingCount > 0 || c.OutlierCount > 0 {
			return true
		}
	}
	return false
}

// AppliedOperation 会话内已执行的清洗操作记录
type AppliedOperation struct {
	Column    string      `json:"column,omitempty"`
	Method    CleanMethod `json:"method"`
	Warnings  []string    `json:"warnings,omitempty"`
	AppliedAt time.Time   `json:"applied_at"`
}

// ColumnDescriptor 列概览描述符
type ColumnDescriptor struct {
	Name         string     `json:"name"`
	Kind         ColumnKind `json:"kind"`
	MissingCount int        `json:"missing_count"`
	OutlierCount int        `json:"outlier_count"`
}

// DatasetOverview 数据集概览
type DatasetOverview struct {
	Rows    int                `json:"rows"`
	Columns int                `json:"columns"`
	Fields  []ColumnDescriptor `json:"fields"`
	Preview [][]string         `json:"preview"`
	Headers []string           `json:"headers"`
	History []AppliedOperation `json:"history,omitempty"`
}

// CleanRequest 清洗请求
type CleanRequest struct {
	Column string      `json:"column"`
	Method CleanMethod `json:"method"`
}

// CleanResult 清洗结果，失败模式为"不操作+警告"，不会中止
type CleanResult struct {
	Applied  bool     `json:"applied"`
	Warnings []string `json:"warnings,omitempty"`
}

// UploadResponse 上传响应
type UploadResponse struct {
	SessionID string           `json:"session_id"`
	Overview  *DatasetOverview `json:"overview"`
	Issues    *IssueReport     `json:"issues"`
}

// CleanResponse 清洗响应
type CleanResponse struct {
	Result   *CleanResult     `json:"result"`
	Overview *DatasetOverview `json:"overview"`
	Issues   *IssueReport     `json:"issues"`
}

// MethodsResponse 列可用清洗方法响应
type MethodsResponse struct {
	Column  string        `json:"column"`
	Kind    ColumnKind    `json:"kind"`
	Methods []CleanMethod `json:"methods"`
}
